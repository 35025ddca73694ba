package pathfind

import (
	"github.com/zyedidia/generic/heap"

	"escapemaze/pkg/engine/world"
	"escapemaze/pkg/game/entities"
)

// DefaultStepCost is the cost of entering a cell with no override
const DefaultStepCost = 1

// ObstacleCosts builds the per-cell step cost field for LeastCostPath.
// Cells holding an obstacle cost obstacleCost, every other cell costs
// DefaultStepCost.
func ObstacleCosts(grid *world.Grid, obstacles entities.Obstacles, obstacleCost int) []int {
	costs := make([]int, grid.Len())
	for i := range costs {
		costs[i] = DefaultStepCost
	}
	for _, o := range obstacles {
		if grid.InBounds(o.Pos) {
			costs[grid.Index(o.Pos)] = obstacleCost
		}
	}
	return costs
}

type openNode struct {
	idx int
	g   int
	f   int
}

// lessNode orders the open set by lowest f, then lowest g, then lowest
// arena index, so equal-cost searches always expand in the same order.
func lessNode(a, b openNode) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	return a.idx < b.idx
}

// LeastCostPath runs an A* search from start to exit. Walls are impassable;
// obstacles are not, they only make the entered cell more expensive. Each
// step costs costs[index] of the cell being entered (DefaultStepCost when
// costs is nil). Returns false when the exit is disconnected from start on
// the raw grid.
func LeastCostPath(grid *world.Grid, start, exit world.Position, costs []int, opts Options) ([]world.Position, bool) {
	if !grid.InBounds(start) || !grid.InBounds(exit) {
		return nil, false
	}

	n := grid.Len()
	gScore := make([]int, n)
	for i := range gScore {
		gScore[i] = -1
	}
	parent := newParents(n)
	closed := make([]bool, n)
	dirs := world.Directions(opts.Diagonal)

	startIdx := grid.Index(start)
	exitIdx := grid.Index(exit)
	gScore[startIdx] = 0

	open := heap.New[openNode](lessNode)
	open.Push(openNode{idx: startIdx, g: 0, f: opts.Heuristic(start, exit)})

	for open.Size() > 0 {
		current, _ := open.Pop()
		if closed[current.idx] || current.g != gScore[current.idx] {
			// Stale entry superseded by a cheaper push
			continue
		}
		closed[current.idx] = true

		if current.idx == exitIdx {
			return reconstruct(grid, parent, exitIdx), true
		}

		pos := grid.PositionOf(current.idx)
		for _, d := range dirs {
			next := pos.Step(d)
			if !grid.IsPassable(next) {
				continue
			}
			nIdx := grid.Index(next)
			if closed[nIdx] {
				continue
			}
			step := DefaultStepCost
			if costs != nil {
				step = costs[nIdx]
			}
			tentative := current.g + step
			if gScore[nIdx] >= 0 && tentative >= gScore[nIdx] {
				continue
			}
			gScore[nIdx] = tentative
			parent[nIdx] = current.idx
			open.Push(openNode{idx: nIdx, g: tentative, f: tentative + opts.Heuristic(next, exit)})
		}
	}

	return nil, false
}

// PathCost returns the summed step cost of walking path, excluding the
// starting cell.
func PathCost(grid *world.Grid, path []world.Position, costs []int) int {
	total := 0
	for i := 1; i < len(path); i++ {
		if costs == nil {
			total += DefaultStepCost
			continue
		}
		total += costs[grid.Index(path[i])]
	}
	return total
}
