package maze

import (
	"time"

	"github.com/google/uuid"

	"escapemaze/pkg/engine/world"
	"escapemaze/pkg/game/entities"
	"escapemaze/pkg/game/pathfind"
	"escapemaze/pkg/game/repair"
)

// Maze is a generated, reachability-checked maze
type Maze struct {
	ID           uuid.UUID             `json:"id"`
	Size         int                   `json:"size"`
	Grid         *world.Grid           `json:"grid"`
	Start        world.Position        `json:"start"`
	Exit         world.Position        `json:"exit"`
	Obstacles    entities.Obstacles    `json:"obstacles"`
	Collectibles entities.Collectibles `json:"collectibles"`

	// Attempts is the number of full generations it took, starting at 1
	Attempts int `json:"attempts"`
	// Repaired is set when obstacles had to be cleared to reach the exit
	Repaired bool `json:"repaired"`
	// Notice is the user-facing message for a repaired maze
	Notice string `json:"notice,omitempty"`

	Diagnostics *Diagnostics `json:"diagnostics,omitempty"`
}

// Diagnostics is debug detail about how a maze was produced
type Diagnostics struct {
	// Reachability is the check run right after placement
	Reachability pathfind.Reachability `json:"reachability"`
	// Repair is nil when the maze was reachable without repair
	Repair *repair.Result `json:"repair,omitempty"`

	Generator     string        `json:"generator"`
	Corridors     int           `json:"corridors"`
	Openings      int           `json:"openings"`
	ExitRelocated bool          `json:"exit_relocated"`
	Elapsed       time.Duration `json:"elapsed"`
}

// Path returns the shortest start-to-exit path of the final maze
func (d *Diagnostics) Path() []world.Position {
	if d.Repair != nil {
		return d.Repair.Path
	}
	return d.Reachability.Path
}

// Layout returns a copy of the grid with the player and exit markers stamped
func (m *Maze) Layout() *world.Grid {
	g := m.Grid.Clone()
	g.SetTile(m.Exit, world.ExitMarker)
	g.SetTile(m.Start, world.PlayerMarker)
	return g
}

// Removed returns the positions cleared by repair, if diagnostics were kept
func (m *Maze) Removed() []world.Position {
	if m.Diagnostics == nil || m.Diagnostics.Repair == nil {
		return nil
	}
	out := make([]world.Position, 0, len(m.Diagnostics.Repair.Removed))
	for _, r := range m.Diagnostics.Repair.Removed {
		out = append(out, r.Pos)
	}
	return out
}
