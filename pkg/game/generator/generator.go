// Package generator carves the corridor network of a maze grid.
package generator

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"escapemaze/pkg/engine/world"
)

// Carving is the output of a grid generator
type Carving struct {
	Grid *world.Grid
	// Openings is the number of extra walls punctured after carving
	Openings int
}

// GridGenerator is an interface for map generation algorithms
type GridGenerator interface {
	Generate(size int, r *rand.Rand) Carving
	Name() string
}

// Available generators
var (
	Backtracker = &BacktrackerGenerator{Openings: true}
	PerfectMaze = &BacktrackerGenerator{}
	Rooms       = &BSPGenerator{}
)

// DefaultGenerator is the default map generator
var DefaultGenerator GridGenerator = Backtracker

// Generators maps command-line names to generators
var Generators = map[string]GridGenerator{
	"backtracker": Backtracker,
	"perfect":     PerfectMaze,
	"bsp":         Rooms,
}

// Names returns the registered generator names, sorted
func Names() []string {
	names := make([]string, 0, len(Generators))
	for name := range Generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the generator registered under name
func Lookup(name string) (GridGenerator, error) {
	g, ok := Generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator %q, available: %v", name, Names())
	}
	return g, nil
}
