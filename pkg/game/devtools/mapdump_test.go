package devtools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escapemaze/pkg/game/config"
	"escapemaze/pkg/game/maze"
	"escapemaze/pkg/game/renderer"
)

func generate(t *testing.T, debug bool) *maze.Maze {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 11
	cfg.Debug = debug
	e, err := maze.New(cfg)
	require.NoError(t, err)
	m, err := e.Generate()
	require.NoError(t, err)
	return m
}

func TestWriteDump_Sections(t *testing.T) {
	m := generate(t, true)

	var sb strings.Builder
	require.NoError(t, WriteDump(&sb, m, renderer.Layers{Visited: true, Path: true, Repaired: true}))
	out := sb.String()

	for _, want := range []string{
		"--- Metadata ---",
		"maze_id: " + m.ID.String(),
		"grid_size: 12",
		"start_cell: " + m.Start.String(),
		"exit_cell: " + m.Exit.String(),
		"corridors: 1",
		"--- Legend (cell symbols) ---",
		"--- Map (layout only) ---",
		"--- Map (layers: visited=true path=true repaired=true) ---",
		"Obstacles:",
		"Collectibles:",
		"=== END MAP DUMP ===",
	} {
		assert.Contains(t, out, want)
	}

	var plain strings.Builder
	require.NoError(t, renderer.RenderMaze(&plain, m, renderer.Options{}))
	assert.Contains(t, out, plain.String())
	assert.Equal(t, len(m.Obstacles), strings.Count(out, "  x: ")-len(m.Collectibles))
}

func TestWriteDump_WithoutDiagnostics(t *testing.T) {
	m := generate(t, false)

	var sb strings.Builder
	require.NoError(t, WriteDump(&sb, m, renderer.Layers{Path: true}))
	out := sb.String()
	assert.Contains(t, out, "diagnostics: none")
	assert.NotContains(t, out, "Repair:")
}

func TestWriteDump_NoMaze(t *testing.T) {
	var sb strings.Builder
	assert.Error(t, WriteDump(&sb, nil, renderer.Layers{}))
}

func TestDumpToFile(t *testing.T) {
	m := generate(t, true)
	path := filepath.Join(t.TempDir(), "dump.txt")

	abs, err := DumpToFile(path, m, renderer.Layers{})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	data, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "=== MAP DUMP DEBUG"))
	assert.NotContains(t, string(data), "--- Map (layers:")
}
