// Package pathfind answers reachability questions over a maze grid: an
// unweighted breadth-first search for exact shortest paths, and an A* search
// where obstacle cells carry an elevated step cost.
//
// Both searches work on the flattened y*size+x arena of the grid, so the
// visited set and parent links are plain slices.
package pathfind

import (
	"errors"
	"fmt"

	"escapemaze/pkg/engine/world"
)

// ErrOutOfBounds is returned when a position lies outside the grid
var ErrOutOfBounds = errors.New("position out of bounds")

// Options controls the neighbourhood used by both searches
type Options struct {
	Diagonal bool
}

// Heuristic returns the admissible distance estimate for the neighbourhood:
// Chebyshev with diagonals, Manhattan without.
func (o Options) Heuristic(a, b world.Position) int {
	if o.Diagonal {
		return world.Chebyshev(a, b)
	}
	return world.Manhattan(a, b)
}

// CheckEndpoints reports start and exit positions that fall outside the grid.
// The returned error wraps ErrOutOfBounds.
func CheckEndpoints(grid *world.Grid, start, exit world.Position) error {
	var errs []error
	if !grid.InBounds(start) {
		errs = append(errs, fmt.Errorf("start %s: %w", start, ErrOutOfBounds))
	}
	if !grid.InBounds(exit) {
		errs = append(errs, fmt.Errorf("exit %s: %w", exit, ErrOutOfBounds))
	}
	return errors.Join(errs...)
}

// reconstruct walks parent links back from end and returns the path in
// start-to-end order.
func reconstruct(grid *world.Grid, parent []int, end int) []world.Position {
	var path []world.Position
	for idx := end; idx >= 0; idx = parent[idx] {
		path = append(path, grid.PositionOf(idx))
	}
	for i := 0; i < len(path)/2; i++ {
		j := len(path) - 1 - i
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// newParents returns a parent arena with every entry unset
func newParents(n int) []int {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	return parent
}
