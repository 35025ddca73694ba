package world

// Direction represents a compass step on the grid. Y grows downwards.
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
)

// searchOrder is the neighbour order used by every search. Changing it
// changes which of several equal-length paths is reported.
var searchOrder = []Direction{South, East, North, West}

// diagonalOrder is appended to searchOrder when diagonal movement is enabled
var diagonalOrder = []Direction{SouthEast, NorthWest, NorthEast, SouthWest}

// CardinalDirections returns the four axis-aligned directions for iteration
func CardinalDirections() []Direction {
	return []Direction{North, East, South, West}
}

// Directions returns the neighbour order for searches, with or without diagonals
func Directions(diagonal bool) []Direction {
	if !diagonal {
		return searchOrder
	}
	dirs := make([]Direction, 0, len(searchOrder)+len(diagonalOrder))
	dirs = append(dirs, searchOrder...)
	return append(dirs, diagonalOrder...)
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case NorthEast:
		return "NorthEast"
	case SouthEast:
		return "SouthEast"
	case SouthWest:
		return "SouthWest"
	case NorthWest:
		return "NorthWest"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is one of the eight compass steps
func (d Direction) IsValid() bool {
	return d >= North && d <= NorthWest
}

// IsDiagonal returns true for the four diagonal directions
func (d Direction) IsDiagonal() bool {
	return d >= NorthEast && d <= NorthWest
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case NorthEast:
		return SouthWest
	case SouthWest:
		return NorthEast
	case SouthEast:
		return NorthWest
	case NorthWest:
		return SouthEast
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	case NorthEast:
		return 1, -1
	case SouthEast:
		return 1, 1
	case SouthWest:
		return -1, 1
	case NorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}
