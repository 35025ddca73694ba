package world

import "fmt"

// Position is a 0-indexed grid coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos is shorthand for Position{X: x, Y: y}
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns the position as "x,y"
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Step returns the position one step away in the given direction
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Offset returns the position shifted by dx, dy
func (p Position) Offset(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Neighbors returns the adjacent positions in search order. Bounds are not checked.
func (p Position) Neighbors(diagonal bool) []Position {
	dirs := Directions(diagonal)
	out := make([]Position, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, p.Step(d))
	}
	return out
}

// Manhattan calculates the Manhattan distance between two positions
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Chebyshev calculates the Chebyshev (king move) distance between two positions
func Chebyshev(a, b Position) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
