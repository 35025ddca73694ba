package generator

import (
	"math/rand/v2"

	"escapemaze/pkg/engine/world"
)

// openingsFactor scales the number of wall puncture attempts with the grid side
const openingsFactor = 0.8

// carveSteps are the step-2 moves between corridor cells, in pre-shuffle order
var carveSteps = [4][2]int{{0, -2}, {2, 0}, {0, 2}, {-2, 0}}

// BacktrackerGenerator carves a perfect maze by randomized recursive
// backtracking from (1,1), then optionally punctures extra walls.
type BacktrackerGenerator struct {
	Openings bool
}

// Name returns the name of this generator
func (g *BacktrackerGenerator) Name() string {
	if g.Openings {
		return "Recursive Backtracker"
	}
	return "Perfect Maze"
}

// Generate creates a new grid of the given side length
func (g *BacktrackerGenerator) Generate(size int, r *rand.Rand) Carving {
	grid := Carve(size, r)
	c := Carving{Grid: grid}
	if g.Openings {
		c.Openings = AddOpenings(grid, r)
	}
	return c
}

// Carve returns a fully walled grid with a spanning-tree corridor network
// rooted at (1,1). Corridor cells sit on odd coordinates, separated by a
// one-cell wall lattice. Grids smaller than 3 have no interior and stay walled.
func Carve(size int, r *rand.Rand) *world.Grid {
	grid := world.NewGrid(size)
	if size < 3 {
		return grid
	}

	var visit func(p world.Position)
	visit = func(p world.Position) {
		grid.SetTile(p, world.Open)

		steps := carveSteps
		r.Shuffle(len(steps), func(i, j int) { steps[i], steps[j] = steps[j], steps[i] })

		for _, s := range steps {
			next := p.Offset(s[0], s[1])
			if !grid.IsInterior(next) || grid.Tile(next) != world.Wall {
				continue
			}
			grid.SetTile(p.Offset(s[0]/2, s[1]/2), world.Open)
			visit(next)
		}
	}

	visit(world.Pos(1, 1))
	return grid
}

// AddOpenings makes floor(0.8*size) attempts to puncture a random interior
// wall. A wall is opened only when at least two of its orthogonal neighbours
// are already open, so it always joins existing corridors. Returns the
// number of walls opened.
func AddOpenings(grid *world.Grid, r *rand.Rand) int {
	size := grid.Size()
	if size < 3 {
		return 0
	}

	attempts := int(float64(size) * openingsFactor)
	opened := 0
	for i := 0; i < attempts; i++ {
		p := world.Pos(r.IntN(size-2)+1, r.IntN(size-2)+1)
		if grid.Tile(p) != world.Wall {
			continue
		}
		if openNeighbors(grid, p) >= 2 {
			grid.SetTile(p, world.Open)
			opened++
		}
	}
	return opened
}

// openNeighbors counts the orthogonally adjacent open cells
func openNeighbors(grid *world.Grid, p world.Position) int {
	n := 0
	for _, d := range world.CardinalDirections() {
		if grid.Tile(p.Step(d)) == world.Open {
			n++
		}
	}
	return n
}
