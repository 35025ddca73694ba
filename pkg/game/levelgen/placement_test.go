package levelgen

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"escapemaze/pkg/engine/world"
	"escapemaze/pkg/game/generator"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestValidateExit(t *testing.T) {
	g := world.MustParseGrid(
		"#####",
		"#   #",
		"#####",
		"## ##",
		"#####",
	)
	assert.True(t, ValidateExit(g, world.Pos(2, 2)), "wall cell below an open cell")
	assert.True(t, ValidateExit(g, world.Pos(1, 1)))
	assert.False(t, ValidateExit(g, world.Pos(3, 4)), "diagonal neighbour does not count")
	assert.False(t, ValidateExit(g, world.Pos(0, 4)))
}

func TestFindFarthestExit(t *testing.T) {
	g := world.MustParseGrid(
		"######",
		"#    #",
		"# ## #",
		"#  # #",
		"#  ###",
		"######",
	)
	exit, ok := FindFarthestExit(g, world.Pos(1, 1))
	require.True(t, ok)
	assert.Equal(t, world.Pos(4, 3), exit)
}

func TestFindFarthestExit_TiesGoToRowMajorFirst(t *testing.T) {
	g := world.MustParseGrid(
		"#####",
		"#   #",
		"# # #",
		"#   #",
		"#####",
	)
	// All four corners of the ring are two steps from the centre
	exit, ok := FindFarthestExit(g, world.Pos(2, 2))
	require.True(t, ok)
	assert.Equal(t, world.Pos(1, 1), exit)
}

func TestFindFarthestExit_NeverReturnsStart(t *testing.T) {
	g := world.MustParseGrid(
		"#####",
		"# ###",
		"#####",
		"#####",
		"#####",
	)
	_, ok := FindFarthestExit(g, world.Pos(1, 1))
	assert.False(t, ok)
}

func TestPlace_RelocatesWalledExit(t *testing.T) {
	// Size 12: the default exit (10,10) sits on the wall lattice
	g := generator.Carve(12, newRand(5))
	require.Equal(t, world.Wall, g.Tile(DefaultExit(12)))

	require.False(t, ValidateExit(g, DefaultExit(12)))

	p := Place(g, newRand(6))
	assert.Equal(t, DefaultStart(), p.Start)
	assert.True(t, p.ExitValid)
	assert.True(t, p.ExitRelocated)
	assert.Equal(t, world.Open, g.Tile(p.Exit))
	assert.NotEqual(t, p.Start, p.Exit)
}

func TestPlace_KeepsValidDefaultExit(t *testing.T) {
	g := generator.Carve(11, newRand(9))
	p := Place(g, newRand(10))
	assert.Equal(t, DefaultExit(11), p.Exit)
	assert.False(t, p.ExitRelocated)
	assert.True(t, p.ExitValid)
}

func TestPlace_NoValidExitKeepsDefault(t *testing.T) {
	g := world.NewGrid(6)
	p := Place(g, newRand(1))
	assert.False(t, p.ExitValid)
	assert.Equal(t, DefaultExit(6), p.Exit)
	assert.Empty(t, p.Obstacles)
	assert.Empty(t, p.Collectibles)
}

func TestPlace_Invariants(t *testing.T) {
	size := 12
	maxObstacles := int(float64(size) * ObstacleFactor)
	for seed := uint64(1); seed <= 200; seed++ {
		c := generator.DefaultGenerator.Generate(size, newRand(seed))
		p := Place(c.Grid, newRand(seed*31))

		require.NotEqual(t, p.Start, p.Exit, "seed %d", seed)
		require.True(t, c.Grid.InBounds(p.Exit))

		assert.LessOrEqual(t, len(p.Obstacles), maxObstacles)
		for _, o := range p.Obstacles {
			assert.Equal(t, world.Open, c.Grid.Tile(o.Pos))
			assert.NotEqual(t, p.Start, o.Pos)
			assert.NotEqual(t, p.Exit, o.Pos)
		}

		seen := mapset.New[world.Position]()
		assert.LessOrEqual(t, len(p.Collectibles), MaxCollectibles)
		for _, item := range p.Collectibles {
			assert.False(t, seen.Has(item.Pos), "duplicate collectible at %s", item.Pos)
			seen.Put(item.Pos)
			assert.False(t, p.Obstacles.Has(item.Pos))
			assert.NotEqual(t, p.Start, item.Pos)
			assert.NotEqual(t, p.Exit, item.Pos)
			assert.False(t, item.Collected)
		}
	}
}

func TestPlaceCollectibles_TypesCycleByIndex(t *testing.T) {
	g := world.MustParseGrid(
		"#######",
		"#     #",
		"#     #",
		"#     #",
		"#     #",
		"#     #",
		"#######",
	)
	avoid := mapset.New[world.Position]()
	items := PlaceCollectibles(g, newRand(3), nil, &avoid)
	// 25 open cells and 50 draws per item: all eight land
	require.Len(t, items, MaxCollectibles)
	for i, item := range items {
		assert.Equal(t, i%4, int(item.Type))
	}
}

func TestPlaceObstacles_OnlyOpenCells(t *testing.T) {
	g := world.MustParseGrid(
		"#####",
		"#   #",
		"#####",
		"#####",
		"#####",
	)
	avoid := mapset.New[world.Position]()
	avoid.Put(world.Pos(1, 1))
	for seed := uint64(1); seed <= 50; seed++ {
		for _, o := range PlaceObstacles(g, newRand(seed), &avoid) {
			assert.Contains(t, []world.Position{world.Pos(2, 1), world.Pos(3, 1)}, o.Pos)
		}
	}
}
