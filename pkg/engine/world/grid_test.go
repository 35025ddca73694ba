package world

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_FullyWalled(t *testing.T) {
	g := NewGrid(5)
	require.Equal(t, 5, g.Size())
	require.Equal(t, 25, g.Len())
	assert.Equal(t, 25, g.CountTiles(Wall))
	assert.False(t, g.IsPassable(Pos(2, 2)))
}

func TestNewGrid_PanicsOnNonPositiveSize(t *testing.T) {
	assert.Panics(t, func() { NewGrid(0) })
}

func TestGrid_IndexRoundTrip(t *testing.T) {
	g := NewGrid(7)
	for i := 0; i < g.Len(); i++ {
		p := g.PositionOf(i)
		if got := g.Index(p); got != i {
			t.Errorf("Index(PositionOf(%d)) = %d", i, got)
		}
	}
	assert.Equal(t, 3*7+4, g.Index(Pos(4, 3)))
}

func TestGrid_BoundsAndPerimeter(t *testing.T) {
	g := NewGrid(4)
	tests := []struct {
		p         Position
		inBounds  bool
		interior  bool
		perimeter bool
	}{
		{Pos(0, 0), true, false, true},
		{Pos(1, 1), true, true, false},
		{Pos(2, 2), true, true, false},
		{Pos(3, 1), true, false, true},
		{Pos(-1, 0), false, false, false},
		{Pos(0, 4), false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			assert.Equal(t, tt.inBounds, g.InBounds(tt.p))
			assert.Equal(t, tt.interior, g.IsInterior(tt.p))
			assert.Equal(t, tt.perimeter, g.IsOnPerimeter(tt.p))
		})
	}
}

func TestGrid_TileOutOfBoundsIsWall(t *testing.T) {
	g := MustParseGrid(
		"  ",
		"  ",
	)
	assert.Equal(t, Open, g.Tile(Pos(1, 1)))
	assert.Equal(t, Wall, g.Tile(Pos(2, 1)))
	assert.False(t, g.SetTile(Pos(-1, 0), Open))
}

func TestParseGrid_Errors(t *testing.T) {
	_, err := ParseGrid(nil)
	assert.Error(t, err)

	_, err = ParseGrid([]string{"##", "#"})
	assert.ErrorContains(t, err, "row 2")

	_, err = ParseGrid([]string{"#x", "##"})
	assert.ErrorContains(t, err, "unknown tile symbol")
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := NewGrid(3)
	c := g.Clone()
	require.True(t, g.Equal(c))

	c.SetTile(Pos(1, 1), Open)
	assert.Equal(t, Wall, g.Tile(Pos(1, 1)))
	assert.False(t, g.Equal(c))
}

func TestGrid_JSONRoundTrip(t *testing.T) {
	g := MustParseGrid(
		"###",
		"# E",
		"###",
	)
	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `["###","# E","###"]`, string(data))

	var back Grid
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, g.Equal(&back))
}

func TestTile_Passable(t *testing.T) {
	assert.False(t, Wall.Passable())
	assert.True(t, Open.Passable())
	assert.True(t, ExitMarker.Passable())
	assert.True(t, PlayerMarker.Passable())
}

func TestDirections_Order(t *testing.T) {
	cardinal := Directions(false)
	require.Len(t, cardinal, 4)
	dx, dy := cardinal[0].Delta()
	assert.Equal(t, [2]int{0, 1}, [2]int{dx, dy}, "first search step is (0,1)")

	all := Directions(true)
	require.Len(t, all, 8)
	for _, d := range all[4:] {
		assert.True(t, d.IsDiagonal(), "%v should be diagonal", d)
		assert.Equal(t, d, d.Opposite().Opposite())
	}
}

func TestDistances(t *testing.T) {
	a, b := Pos(1, 1), Pos(4, 3)
	assert.Equal(t, 5, Manhattan(a, b))
	assert.Equal(t, 3, Chebyshev(a, b))
	assert.Equal(t, 0, Manhattan(a, a))
}

func TestCountCorridors(t *testing.T) {
	g := MustParseGrid(
		"#####",
		"# # #",
		"#####",
		"#   #",
		"#####",
	)
	assert.Equal(t, 3, CountCorridors(g))

	labels, count := LabelCorridors(g)
	require.Equal(t, 3, count)
	assert.Equal(t, -1, labels[g.Index(Pos(0, 0))])
	assert.Equal(t, labels[g.Index(Pos(1, 3))], labels[g.Index(Pos(3, 3))])
	assert.NotEqual(t, labels[g.Index(Pos(1, 1))], labels[g.Index(Pos(3, 1))])
}

func TestCountCorridors_DiagonalDoesNotJoin(t *testing.T) {
	g := MustParseGrid(
		"####",
		"# ##",
		"## #",
		"####",
	)
	assert.Equal(t, 2, CountCorridors(g))
}
