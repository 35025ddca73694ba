// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"escapemaze/pkg/game/entities"
	"escapemaze/pkg/game/maze"
	"escapemaze/pkg/game/renderer"
)

// DefaultDumpFilename is written by DumpToFile when no path is given
const DefaultDumpFilename = "map.txt"

// WriteDump writes a full debug dump of m: metadata, legend, the plain map,
// one extra map with the requested diagnostic layers, and entity lists.
// Format is human- and LLM-readable (sections, key: value, consistent structure).
func WriteDump(w io.Writer, m *maze.Maze, layers renderer.Layers) error {
	if m == nil || m.Grid == nil {
		return errors.New("no maze")
	}
	ew := &errWriter{w: w}

	// --- Metadata ---
	ew.println("=== MAP DUMP DEBUG (maze layout, reachability, repair) ===")
	ew.println("")
	ew.println("--- Metadata ---")
	ew.printf("maze_id: %s\n", m.ID)
	ew.printf("grid_size: %d\n", m.Size)
	ew.printf("coordinate_system: x,y (0-based, x=column, y=row)\n")
	ew.printf("start_cell: %s\n", m.Start)
	ew.printf("exit_cell: %s\n", m.Exit)
	ew.printf("attempts: %d\n", m.Attempts)
	ew.printf("repaired: %v\n", m.Repaired)
	ew.printf("obstacles: %d\n", len(m.Obstacles))
	ew.printf("collectibles: %d\n", len(m.Collectibles))
	if d := m.Diagnostics; d != nil {
		ew.printf("generator: %q\n", d.Generator)
		ew.printf("corridors: %d\n", d.Corridors)
		ew.printf("openings: %d\n", d.Openings)
		ew.printf("exit_relocated: %v\n", d.ExitRelocated)
		ew.printf("initially_reachable: %v\n", d.Reachability.Reachable)
		ew.printf("cells_visited: %d\n", len(d.Reachability.Visited))
		ew.printf("path_length: %d\n", len(d.Path()))
		ew.printf("elapsed: %s\n", d.Elapsed)
	} else {
		ew.println("diagnostics: none (generate with debug enabled for layers)")
	}
	if m.Notice != "" {
		ew.printf("notice: %q\n", m.Notice)
	}
	ew.println("")

	// --- Legend ---
	ew.println("--- Legend (cell symbols) ---")
	if ew.err == nil {
		ew.err = renderer.RenderLegend(w, renderer.Options{Layers: layers})
	}
	ew.println("")

	// --- Map: plain ---
	ew.println("--- Map (layout only) ---")
	if ew.err == nil {
		ew.err = renderer.RenderMaze(w, m, renderer.Options{})
	}
	ew.println("")

	// --- Map: layers ---
	if layers.Any() {
		ew.printf("--- Map (layers: visited=%v path=%v repaired=%v) ---\n", layers.Visited, layers.Path, layers.Repaired)
		if ew.err == nil {
			ew.err = renderer.RenderMaze(w, m, renderer.Options{Layers: layers})
		}
		ew.println("")
	}

	// --- Entities ---
	ew.println("--- Entities (all with x,y and state) ---")
	ew.println("Obstacles:")
	if len(m.Obstacles) == 0 {
		ew.println("  (none)")
	}
	for _, o := range m.Obstacles {
		ew.printf("  x: %d y: %d type: %s immutable: %v\n", o.Pos.X, o.Pos.Y, o.Type, o.Immutable)
	}
	ew.println("")

	ew.println("Collectibles:")
	if len(m.Collectibles) == 0 {
		ew.println("  (none)")
	}
	for _, c := range m.Collectibles {
		ew.printf("  x: %d y: %d type: %s collected: %v\n", c.Pos.X, c.Pos.Y, c.Type, c.Collected)
	}
	ew.println("")

	if m.Diagnostics != nil && m.Diagnostics.Repair != nil {
		rep := m.Diagnostics.Repair
		ew.println("Repair:")
		ew.printf("  iterations: %d candidate_length: %d\n", rep.Iterations, len(rep.Candidate))
		for _, r := range rep.Removed {
			ew.printf("  removed x: %d y: %d old_type: %s\n", r.Pos.X, r.Pos.Y, entities.ObstacleTypes[r.OldType].Name)
		}
		ew.println("")
	}

	ew.println("=== END MAP DUMP ===")
	return ew.err
}

// DumpToFile writes the dump to path (DefaultDumpFilename when empty) and
// returns the absolute path written.
func DumpToFile(path string, m *maze.Maze, layers renderer.Layers) (string, error) {
	if path == "" {
		path = DefaultDumpFilename
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteDump(f, m, layers); err != nil {
		return absPath, err
	}
	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}

// errWriter keeps the first write error and drops later writes
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}
