package maze

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"escapemaze/pkg/engine/world"
	"escapemaze/pkg/game/pathfind"
)

// Invariant violations reported by Validate
var (
	ErrStartIsExit          = errors.New("start and exit are the same cell")
	ErrOccupiedEndpoint     = errors.New("endpoint occupied")
	ErrDuplicateCollectible = errors.New("duplicate collectible")
	ErrSharedCell           = errors.New("collectible shares a cell with an obstacle")
	ErrUnreachable          = errors.New("exit unreachable")
)

// Validate checks every structural guarantee of a generated maze and returns
// all violations joined together, or nil.
func Validate(m *Maze, opts pathfind.Options) error {
	if m == nil || m.Grid == nil {
		return errors.New("maze has no grid")
	}
	if err := pathfind.CheckEndpoints(m.Grid, m.Start, m.Exit); err != nil {
		return err
	}

	var errs []error
	if m.Start == m.Exit {
		errs = append(errs, fmt.Errorf("%w: %s", ErrStartIsExit, m.Start))
	}

	endpoints := mapset.New[world.Position]()
	endpoints.Put(m.Start)
	endpoints.Put(m.Exit)

	obstacleCells := mapset.New[world.Position]()
	for _, o := range m.Obstacles {
		if endpoints.Has(o.Pos) {
			errs = append(errs, fmt.Errorf("%w: obstacle %s", ErrOccupiedEndpoint, o))
		}
		obstacleCells.Put(o.Pos)
	}

	itemCells := mapset.New[world.Position]()
	for _, c := range m.Collectibles {
		switch {
		case endpoints.Has(c.Pos):
			errs = append(errs, fmt.Errorf("%w: collectible %s", ErrOccupiedEndpoint, c))
		case itemCells.Has(c.Pos):
			errs = append(errs, fmt.Errorf("%w at %s", ErrDuplicateCollectible, c.Pos))
		case obstacleCells.Has(c.Pos):
			errs = append(errs, fmt.Errorf("%w: %s", ErrSharedCell, c))
		}
		itemCells.Put(c.Pos)
	}

	if !pathfind.IsReachable(m.Grid, m.Start, m.Exit, m.Obstacles, opts).Reachable {
		errs = append(errs, fmt.Errorf("%w: %s from %s", ErrUnreachable, m.Exit, m.Start))
	}

	return errors.Join(errs...)
}

// Validate checks m with the engine's movement rules
func (e *Engine) Validate(m *Maze) error {
	return Validate(m, e.searchOptions())
}
