package world

import (
	"github.com/zyedidia/generic/queue"
)

// LabelCorridors assigns every passable cell the id of its corridor (a maximal
// 4-connected region of passable tiles). Walls are labelled -1. Ids are dense,
// start at 0 and follow row-major order of each corridor's first cell.
func LabelCorridors(g *Grid) (labels []int, count int) {
	labels = make([]int, g.Len())
	for i := range labels {
		labels[i] = -1
	}

	for i, t := range g.tiles {
		if !t.Passable() || labels[i] >= 0 {
			continue
		}
		labels[i] = count
		q := queue.New[Position]()
		q.Enqueue(g.PositionOf(i))
		for !q.Empty() {
			current := q.Dequeue()
			for _, d := range CardinalDirections() {
				next := current.Step(d)
				if !g.IsPassable(next) {
					continue
				}
				idx := g.Index(next)
				if labels[idx] >= 0 {
					continue
				}
				labels[idx] = count
				q.Enqueue(next)
			}
		}
		count++
	}

	return labels, count
}

// CountCorridors returns the number of disconnected corridors in the grid
func CountCorridors(g *Grid) int {
	_, count := LabelCorridors(g)
	return count
}
