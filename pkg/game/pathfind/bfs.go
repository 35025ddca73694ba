package pathfind

import (
	"github.com/zyedidia/generic/queue"

	"escapemaze/pkg/engine/world"
	"escapemaze/pkg/game/entities"
)

// Reachability is the outcome of a breadth-first search
type Reachability struct {
	Reachable bool             `json:"reachable"`
	Path      []world.Position `json:"path"`
	// Visited lists every expanded cell in dequeue order
	Visited []world.Position `json:"visited"`
}

// IsReachable runs a breadth-first search from start to exit. A neighbour is
// expandable when it is in bounds, its tile is passable and no obstacle
// occupies it. The start cell is always expanded. The returned path is
// shortest by step count and includes both endpoints; it is empty when the
// exit cannot be reached.
func IsReachable(grid *world.Grid, start, exit world.Position, obstacles entities.Obstacles, opts Options) Reachability {
	var res Reachability
	if !grid.InBounds(start) {
		return res
	}

	blocked := obstacles.Mask(grid)
	parent := newParents(grid.Len())
	seen := make([]bool, grid.Len())
	dirs := world.Directions(opts.Diagonal)

	startIdx := grid.Index(start)
	seen[startIdx] = true
	q := queue.New[int]()
	q.Enqueue(startIdx)

	for !q.Empty() {
		idx := q.Dequeue()
		current := grid.PositionOf(idx)
		res.Visited = append(res.Visited, current)

		if current == exit {
			res.Reachable = true
			res.Path = reconstruct(grid, parent, idx)
			return res
		}

		for _, d := range dirs {
			next := current.Step(d)
			if !grid.IsPassable(next) {
				continue
			}
			nIdx := grid.Index(next)
			if seen[nIdx] || blocked[nIdx] {
				continue
			}
			seen[nIdx] = true
			parent[nIdx] = idx
			q.Enqueue(nIdx)
		}
	}

	return res
}
