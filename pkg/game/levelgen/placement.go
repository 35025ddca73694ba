// Package levelgen places the start, exit, obstacles and collectibles onto a
// carved grid.
package levelgen

import (
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"

	"escapemaze/pkg/engine/world"
	"escapemaze/pkg/game/entities"
)

// Placement constants
const (
	ObstacleFactor         = 0.6 // obstacle draws per unit of grid side
	MaxCollectibles        = 8
	CollectibleMaxAttempts = 50
)

// Placement is everything laid onto a grid after carving
type Placement struct {
	Start world.Position
	Exit  world.Position

	// ExitRelocated is set when the default exit failed validation and the
	// farthest valid cell was used instead.
	ExitRelocated bool
	// ExitValid is false when no cell passed exit validation and the
	// default exit was kept anyway.
	ExitValid bool

	Obstacles    entities.Obstacles
	Collectibles entities.Collectibles
}

// DefaultStart returns the fixed start cell
func DefaultStart() world.Position {
	return world.Pos(1, 1)
}

// DefaultExit returns the tentative exit cell for a grid of the given side
func DefaultExit(size int) world.Position {
	return world.Pos(size-2, size-2)
}

// Place chooses start and exit and scatters obstacles and collectibles
func Place(grid *world.Grid, r *rand.Rand) Placement {
	p := Placement{
		Start:     DefaultStart(),
		Exit:      DefaultExit(grid.Size()),
		ExitValid: true,
	}

	if !ValidateExit(grid, p.Exit) {
		if exit, ok := FindFarthestExit(grid, p.Start); ok {
			p.Exit = exit
			p.ExitRelocated = true
		} else {
			p.ExitValid = false
		}
	}

	avoid := mapset.New[world.Position]()
	avoid.Put(p.Start)
	avoid.Put(p.Exit)

	p.Obstacles = PlaceObstacles(grid, r, &avoid)
	p.Collectibles = PlaceCollectibles(grid, r, p.Obstacles, &avoid)
	return p
}

// ValidateExit returns true if at least one orthogonal neighbour of exit is passable
func ValidateExit(grid *world.Grid, exit world.Position) bool {
	for _, d := range world.CardinalDirections() {
		if grid.IsPassable(exit.Step(d)) {
			return true
		}
	}
	return false
}

// FindFarthestExit scans the open interior cells that pass exit validation
// and returns the one with the greatest Manhattan distance from start. Ties
// go to the first cell in row-major order. The start cell itself is never
// returned.
func FindFarthestExit(grid *world.Grid, start world.Position) (world.Position, bool) {
	var best world.Position
	bestDist := -1

	size := grid.Size()
	for y := 1; y < size-1; y++ {
		for x := 1; x < size-1; x++ {
			p := world.Pos(x, y)
			if p == start || grid.Tile(p) != world.Open || !ValidateExit(grid, p) {
				continue
			}
			if d := world.Manhattan(p, start); d > bestDist {
				best, bestDist = p, d
			}
		}
	}

	return best, bestDist >= 0
}

// PlaceObstacles makes floor(0.6*size) draws over the whole grid. A draw
// becomes an obstacle only if it lands on an open cell not in avoid. Draws
// are not deduplicated, so two obstacles may share a cell.
func PlaceObstacles(grid *world.Grid, r *rand.Rand, avoid *mapset.Set[world.Position]) entities.Obstacles {
	size := grid.Size()
	draws := int(float64(size) * ObstacleFactor)
	types := entities.AllObstacleTypes()

	var obstacles entities.Obstacles
	for i := 0; i < draws; i++ {
		p := world.Pos(r.IntN(size), r.IntN(size))
		if grid.Tile(p) != world.Open || avoid.Has(p) {
			continue
		}
		obstacles = append(obstacles, entities.NewObstacle(p, types[r.IntN(len(types))]))
	}
	return obstacles
}

// PlaceCollectibles places up to MaxCollectibles items, cycling through the
// collectible types. Each item gets CollectibleMaxAttempts random draws to
// find an open cell free of obstacles, other items and avoid; an item that
// runs out of draws is skipped.
func PlaceCollectibles(grid *world.Grid, r *rand.Rand, obstacles entities.Obstacles, avoid *mapset.Set[world.Position]) entities.Collectibles {
	size := grid.Size()

	occupied := mapset.New[world.Position]()
	for _, o := range obstacles {
		occupied.Put(o.Pos)
	}

	var collectibles entities.Collectibles
	for i := 0; i < MaxCollectibles; i++ {
		for attempt := 0; attempt < CollectibleMaxAttempts; attempt++ {
			p := world.Pos(r.IntN(size), r.IntN(size))
			if grid.Tile(p) != world.Open || occupied.Has(p) || avoid.Has(p) {
				continue
			}
			collectibles = append(collectibles, entities.NewCollectible(p, entities.CollectibleTypeFor(i)))
			occupied.Put(p)
			break
		}
	}
	return collectibles
}
