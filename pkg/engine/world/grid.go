package world

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Grid is a square tile map stored as a flat arena indexed by y*size+x
type Grid struct {
	size  int
	tiles []Tile
}

// NewGrid creates a fully walled grid with the given side length
func NewGrid(size int) *Grid {
	if size <= 0 {
		panic("Grid size must be positive")
	}
	return &Grid{
		size:  size,
		tiles: make([]Tile, size*size),
	}
}

// ParseGrid builds a grid from layout rows. All rows must have the same
// length as the number of rows.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("layout has no rows")
	}
	g := NewGrid(len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != g.size {
			return nil, fmt.Errorf("row %d must have %d characters, got %d", y+1, g.size, len(runes))
		}
		for x, r := range runes {
			t, err := ParseTile(r)
			if err != nil {
				return nil, fmt.Errorf("row %d, col %d: %w", y+1, x+1, err)
			}
			g.tiles[y*g.size+x] = t
		}
	}
	return g, nil
}

// MustParseGrid is ParseGrid for fixed layouts. It panics on a malformed layout.
func MustParseGrid(rows ...string) *Grid {
	g, err := ParseGrid(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the side length of the grid
func (g *Grid) Size() int {
	return g.size
}

// Len returns the number of cells in the grid
func (g *Grid) Len() int {
	return len(g.tiles)
}

// InBounds checks if a position is within grid bounds
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

// IsInterior checks if a position is inside the 1-cell perimeter
func (g *Grid) IsInterior(p Position) bool {
	return p.X >= 1 && p.X < g.size-1 && p.Y >= 1 && p.Y < g.size-1
}

// IsOnPerimeter checks if a position is on the edge of the grid
func (g *Grid) IsOnPerimeter(p Position) bool {
	return g.InBounds(p) && !g.IsInterior(p)
}

// Index flattens a position into its arena index. The position must be in bounds.
func (g *Grid) Index(p Position) int {
	return p.Y*g.size + p.X
}

// PositionOf is the inverse of Index
func (g *Grid) PositionOf(i int) Position {
	return Position{X: i % g.size, Y: i / g.size}
}

// Tile returns the tile at p, or Wall when p is out of bounds
func (g *Grid) Tile(p Position) Tile {
	if !g.InBounds(p) {
		return Wall
	}
	return g.tiles[g.Index(p)]
}

// SetTile sets the tile at p. Returns false if out of bounds.
func (g *Grid) SetTile(p Position, t Tile) bool {
	if !g.InBounds(p) {
		return false
	}
	g.tiles[g.Index(p)] = t
	return true
}

// IsPassable returns true if p is in bounds and holds a passable tile
func (g *Grid) IsPassable(p Position) bool {
	return g.Tile(p).Passable()
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.tiles))
	copy(tiles, g.tiles)
	return &Grid{size: g.size, tiles: tiles}
}

// Equal reports whether two grids have the same size and tiles
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.size != other.size {
		return false
	}
	for i, t := range g.tiles {
		if other.tiles[i] != t {
			return false
		}
	}
	return true
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(p Position, t Tile)) {
	for i, t := range g.tiles {
		fn(g.PositionOf(i), t)
	}
}

// CountTiles counts the cells holding the given tile
func (g *Grid) CountTiles(t Tile) int {
	n := 0
	for _, tile := range g.tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// Rows returns the layout as one string per row
func (g *Grid) Rows() []string {
	rows := make([]string, g.size)
	var b strings.Builder
	for y := 0; y < g.size; y++ {
		b.Reset()
		for x := 0; x < g.size; x++ {
			b.WriteRune(g.tiles[y*g.size+x].Symbol())
		}
		rows[y] = b.String()
	}
	return rows
}

// String returns the layout with one row per line
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

// MarshalJSON encodes the grid as its layout rows
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Rows())
}

// UnmarshalJSON decodes layout rows produced by MarshalJSON
func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	parsed, err := ParseGrid(rows)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}
