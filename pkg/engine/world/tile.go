// Package world provides square tile grids and coordinate primitives.
// These are engine-level constructs with no knowledge of obstacles or items.
package world

import "fmt"

// Tile is the symbol stored in a grid cell
type Tile uint8

// Tile constants. Only Open, ExitMarker and PlayerMarker are passable.
const (
	Wall Tile = iota
	Open
	ExitMarker
	PlayerMarker
)

// Passable returns true if a walker may stand on the tile
func (t Tile) Passable() bool {
	switch t {
	case Open, ExitMarker, PlayerMarker:
		return true
	default:
		return false
	}
}

// Symbol returns the single-character symbol used in layouts and dumps
func (t Tile) Symbol() rune {
	switch t {
	case Open:
		return ' '
	case ExitMarker:
		return 'E'
	case PlayerMarker:
		return '@'
	default:
		return '#'
	}
}

// String returns the tile name
func (t Tile) String() string {
	switch t {
	case Wall:
		return "wall"
	case Open:
		return "open"
	case ExitMarker:
		return "exit"
	case PlayerMarker:
		return "player"
	default:
		return "unknown"
	}
}

// ParseTile converts a layout symbol back into a tile. '.' is accepted as open.
func ParseTile(r rune) (Tile, error) {
	switch r {
	case '#':
		return Wall, nil
	case ' ', '.':
		return Open, nil
	case 'E':
		return ExitMarker, nil
	case '@':
		return PlayerMarker, nil
	default:
		return Wall, fmt.Errorf("unknown tile symbol %q", r)
	}
}
