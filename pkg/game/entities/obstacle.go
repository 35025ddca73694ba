// Package entities defines the obstacles and collectibles placed on a maze.
package entities

import (
	"encoding/json"
	"fmt"

	"escapemaze/pkg/engine/world"
)

// ObstacleType represents the closed set of obstacle kinds
type ObstacleType int

const (
	ObstacleFire   ObstacleType = iota // Burning corridor
	ObstacleStairs                     // Collapsed stairwell
	ObstacleDoor                       // Jammed door
)

// ObstacleInfo contains display information for each obstacle type
type ObstacleInfo struct {
	Name   string
	Icon   string
	Symbol rune // plain-text map symbol
}

// ObstacleTypes maps obstacle types to their display information
var ObstacleTypes = map[ObstacleType]ObstacleInfo{
	ObstacleFire:   {Name: "fire", Icon: "▲", Symbol: 'F'},
	ObstacleStairs: {Name: "stairs", Icon: "≡", Symbol: 'S'},
	ObstacleDoor:   {Name: "door", Icon: "▣", Symbol: 'D'},
}

// AllObstacleTypes returns the obstacle types in draw order
func AllObstacleTypes() []ObstacleType {
	return []ObstacleType{ObstacleFire, ObstacleStairs, ObstacleDoor}
}

// String returns the obstacle type name
func (t ObstacleType) String() string {
	if info, ok := ObstacleTypes[t]; ok {
		return info.Name
	}
	return "unknown"
}

// ParseObstacleType converts a name back into an obstacle type
func ParseObstacleType(name string) (ObstacleType, error) {
	for _, t := range AllObstacleTypes() {
		if ObstacleTypes[t].Name == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown obstacle type %q", name)
}

// MarshalText encodes the type by name
func (t ObstacleType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name
func (t *ObstacleType) UnmarshalText(text []byte) error {
	parsed, err := ParseObstacleType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Obstacle blocks a cell until it is removed by repair.
// Immutable obstacles are never removed.
type Obstacle struct {
	Pos       world.Position `json:"pos"`
	Type      ObstacleType   `json:"type"`
	Immutable bool           `json:"immutable,omitempty"`
}

// NewObstacle creates a removable obstacle at p
func NewObstacle(p world.Position, t ObstacleType) Obstacle {
	return Obstacle{Pos: p, Type: t}
}

// Obstacles is an ordered obstacle list. Order is placement order.
type Obstacles []Obstacle

// IndexAt returns the index of the first obstacle at p, or -1
func (o Obstacles) IndexAt(p world.Position) int {
	for i := range o {
		if o[i].Pos == p {
			return i
		}
	}
	return -1
}

// IndexRemovableAt returns the index of the first non-immutable obstacle at p, or -1
func (o Obstacles) IndexRemovableAt(p world.Position) int {
	for i := range o {
		if o[i].Pos == p && !o[i].Immutable {
			return i
		}
	}
	return -1
}

// Has returns true if any obstacle occupies p
func (o Obstacles) Has(p world.Position) bool {
	return o.IndexAt(p) >= 0
}

// Remove deletes the obstacle at index i, preserving order
func (o Obstacles) Remove(i int) Obstacles {
	return append(o[:i], o[i+1:]...)
}

// Clone returns an independent copy
func (o Obstacles) Clone() Obstacles {
	if o == nil {
		return nil
	}
	out := make(Obstacles, len(o))
	copy(out, o)
	return out
}

// Mask returns a per-cell occupancy mask for a grid of the given size.
// Obstacles outside the grid are ignored.
func (o Obstacles) Mask(g *world.Grid) []bool {
	mask := make([]bool, g.Len())
	for _, obs := range o {
		if g.InBounds(obs.Pos) {
			mask[g.Index(obs.Pos)] = true
		}
	}
	return mask
}

// String implements fmt.Stringer
func (o Obstacle) String() string {
	s := fmt.Sprintf("%s@%s", o.Type, o.Pos)
	if o.Immutable {
		s += "!"
	}
	return s
}

// obstacleJSON keeps the flat x/y layout consumers expect
type obstacleJSON struct {
	X         int          `json:"x"`
	Y         int          `json:"y"`
	Type      ObstacleType `json:"type"`
	Immutable bool         `json:"immutable,omitempty"`
}

// MarshalJSON encodes the obstacle as {"x","y","type"}
func (o Obstacle) MarshalJSON() ([]byte, error) {
	return json.Marshal(obstacleJSON{X: o.Pos.X, Y: o.Pos.Y, Type: o.Type, Immutable: o.Immutable})
}

// UnmarshalJSON decodes the flat layout
func (o *Obstacle) UnmarshalJSON(data []byte) error {
	var raw obstacleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Obstacle{Pos: world.Pos(raw.X, raw.Y), Type: raw.Type, Immutable: raw.Immutable}
	return nil
}
