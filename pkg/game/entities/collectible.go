package entities

import (
	"encoding/json"
	"fmt"

	"escapemaze/pkg/engine/world"
)

// CollectibleType represents the closed set of pickup kinds
type CollectibleType int

const (
	CollectibleExtinguisher CollectibleType = iota
	CollectibleFirstAid
	CollectibleFlashlight
	CollectiblePhone
)

// CollectibleInfo contains display information for each collectible type
type CollectibleInfo struct {
	Name   string
	Icon   string
	Symbol rune
}

// CollectibleTypes maps collectible types to their display information
var CollectibleTypes = map[CollectibleType]CollectibleInfo{
	CollectibleExtinguisher: {Name: "extinguisher", Icon: "✚", Symbol: 'x'},
	CollectibleFirstAid:     {Name: "firstaid", Icon: "♥", Symbol: '+'},
	CollectibleFlashlight:   {Name: "flashlight", Icon: "☼", Symbol: 'f'},
	CollectiblePhone:        {Name: "phone", Icon: "☏", Symbol: 'p'},
}

// AllCollectibleTypes returns the collectible types in cycling order
func AllCollectibleTypes() []CollectibleType {
	return []CollectibleType{
		CollectibleExtinguisher,
		CollectibleFirstAid,
		CollectibleFlashlight,
		CollectiblePhone,
	}
}

// CollectibleTypeFor returns the type of the i-th placed collectible
func CollectibleTypeFor(i int) CollectibleType {
	all := AllCollectibleTypes()
	return all[i%len(all)]
}

// String returns the collectible type name
func (t CollectibleType) String() string {
	if info, ok := CollectibleTypes[t]; ok {
		return info.Name
	}
	return "unknown"
}

// ParseCollectibleType converts a name back into a collectible type
func ParseCollectibleType(name string) (CollectibleType, error) {
	for _, t := range AllCollectibleTypes() {
		if CollectibleTypes[t].Name == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown collectible type %q", name)
}

// MarshalText encodes the type by name
func (t CollectibleType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name
func (t *CollectibleType) UnmarshalText(text []byte) error {
	parsed, err := ParseCollectibleType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Collectible is an item lying on an open cell. Collected is owned by the
// game-state consumer; the engine only ever creates collectibles uncollected.
type Collectible struct {
	Pos       world.Position
	Type      CollectibleType
	Collected bool
}

// NewCollectible creates an uncollected item at p
func NewCollectible(p world.Position, t CollectibleType) Collectible {
	return Collectible{Pos: p, Type: t}
}

// Collectibles is an ordered collectible list
type Collectibles []Collectible

// Has returns true if any collectible occupies p
func (c Collectibles) Has(p world.Position) bool {
	for i := range c {
		if c[i].Pos == p {
			return true
		}
	}
	return false
}

// Clone returns an independent copy
func (c Collectibles) Clone() Collectibles {
	if c == nil {
		return nil
	}
	out := make(Collectibles, len(c))
	copy(out, c)
	return out
}

// String implements fmt.Stringer
func (c Collectible) String() string {
	return fmt.Sprintf("%s@%s", c.Type, c.Pos)
}

type collectibleJSON struct {
	X         int             `json:"x"`
	Y         int             `json:"y"`
	Type      CollectibleType `json:"type"`
	Collected bool            `json:"collected"`
}

// MarshalJSON encodes the collectible as {"x","y","type","collected"}
func (c Collectible) MarshalJSON() ([]byte, error) {
	return json.Marshal(collectibleJSON{X: c.Pos.X, Y: c.Pos.Y, Type: c.Type, Collected: c.Collected})
}

// UnmarshalJSON decodes the flat layout
func (c *Collectible) UnmarshalJSON(data []byte) error {
	var raw collectibleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Collectible{Pos: world.Pos(raw.X, raw.Y), Type: raw.Type, Collected: raw.Collected}
	return nil
}
