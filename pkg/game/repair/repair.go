// Package repair clears obstacles off a maze until its exit becomes
// reachable again.
package repair

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"escapemaze/pkg/engine/world"
	"escapemaze/pkg/game/entities"
	"escapemaze/pkg/game/pathfind"
)

// Log records repair iterations at Debug level
var Log = logrus.New()

// Defaults
const (
	DefaultObstacleCost  = 10
	DefaultMaxIterations = 50
)

// Input is the maze state handed to Repair. With Options.Mutate the grid and
// obstacle slice are owned by Repair for the duration of the call and come
// back, mutated, in the Result; callers must use Result.Obstacles afterwards
// since the input slice shares its backing array.
type Input struct {
	Grid      *world.Grid
	Obstacles entities.Obstacles
	Start     world.Position
	Exit      world.Position
}

// Options tunes the repair loop
type Options struct {
	Diagonal      bool
	ObstacleCost  int
	MaxIterations int
	// Mutate repairs the input in place. Otherwise a copy is repaired and
	// the input is left untouched.
	Mutate bool
}

// DefaultOptions returns the engine defaults
func DefaultOptions() Options {
	return Options{
		ObstacleCost:  DefaultObstacleCost,
		MaxIterations: DefaultMaxIterations,
		Mutate:        true,
	}
}

func (o Options) search() pathfind.Options {
	return pathfind.Options{Diagonal: o.Diagonal}
}

// Removal records one cleared obstacle
type Removal struct {
	Pos     world.Position
	OldType entities.ObstacleType
}

// MarshalJSON encodes the removal as {"x","y","old_type"}
func (r Removal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X       int                   `json:"x"`
		Y       int                   `json:"y"`
		OldType entities.ObstacleType `json:"old_type"`
	}{r.Pos.X, r.Pos.Y, r.OldType})
}

// Result is the outcome of a repair
type Result struct {
	Repaired bool `json:"repaired"`
	// Removed lists cleared obstacles in removal order
	Removed []Removal        `json:"removed"`
	Path    []world.Position `json:"path"`
	// Candidate is the least-cost route used to pick obstacles, nil when the
	// exit is disconnected on the raw grid.
	Candidate  []world.Position `json:"candidate"`
	Iterations int              `json:"iterations"`

	Grid      *world.Grid        `json:"-"`
	Obstacles entities.Obstacles `json:"-"`
}

// Repair removes obstacles along a least-cost candidate path until the exit
// is reachable, falling back to obstacles next to the exit when the
// candidate path holds nothing removable. Immutable obstacles are never
// removed. At most MaxIterations obstacles are cleared.
func Repair(in Input, opts Options) Result {
	grid, obstacles := in.Grid, in.Obstacles
	if !opts.Mutate {
		grid, obstacles = grid.Clone(), obstacles.Clone()
	}
	res := Result{Grid: grid, Obstacles: obstacles}

	costs := pathfind.ObstacleCosts(grid, obstacles, opts.ObstacleCost)
	candidate, ok := pathfind.LeastCostPath(grid, in.Start, in.Exit, costs, opts.search())
	if !ok {
		Log.WithFields(logrus.Fields{
			"start": in.Start, "exit": in.Exit,
		}).Debug("no candidate path")
		return res
	}
	res.Candidate = candidate

	for res.Iterations < opts.MaxIterations {
		if pathfind.IsReachable(grid, in.Start, in.Exit, obstacles, opts.search()).Reachable {
			break
		}

		i, onPath := nextOnPath(obstacles, candidate)
		if i < 0 {
			i = nextNearExit(obstacles, in.Exit, opts.Diagonal)
		}
		if i < 0 {
			Log.WithField("iteration", res.Iterations).Debug("nothing removable, stopping")
			break
		}

		removed := obstacles[i]
		res.Removed = append(res.Removed, Removal{Pos: removed.Pos, OldType: removed.Type})
		obstacles = obstacles.Remove(i)
		if onPath && grid.Tile(removed.Pos) == world.Wall {
			grid.SetTile(removed.Pos, world.Open)
		}
		res.Iterations++

		Log.WithFields(logrus.Fields{
			"iteration": res.Iterations, "pos": removed.Pos, "type": removed.Type,
			"on_path": onPath,
		}).Debug("removed obstacle")
	}

	final := pathfind.IsReachable(grid, in.Start, in.Exit, obstacles, opts.search())
	res.Repaired = final.Reachable
	res.Path = final.Path
	res.Obstacles = obstacles
	return res
}

// nextOnPath returns the index of the first removable obstacle met walking
// the candidate path, or -1.
func nextOnPath(obstacles entities.Obstacles, path []world.Position) (int, bool) {
	for _, p := range path {
		if i := obstacles.IndexRemovableAt(p); i >= 0 {
			return i, true
		}
	}
	return -1, false
}

// nextNearExit returns the index of the first removable obstacle adjacent
// to the exit in search order, or -1.
func nextNearExit(obstacles entities.Obstacles, exit world.Position, diagonal bool) int {
	for _, p := range exit.Neighbors(diagonal) {
		if i := obstacles.IndexRemovableAt(p); i >= 0 {
			return i
		}
	}
	return -1
}
