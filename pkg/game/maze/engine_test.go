package maze

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"escapemaze/pkg/engine/world"
	"escapemaze/pkg/game/config"
	"escapemaze/pkg/game/entities"
	"escapemaze/pkg/game/generator"
	"escapemaze/pkg/game/i18n"
	"escapemaze/pkg/game/pathfind"
	"escapemaze/pkg/game/repair"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	Log.SetLevel(logrus.WarnLevel)
	repair.Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func seeded(t *testing.T, cfg config.Config, seed uint64, opts ...Option) *Engine {
	t.Helper()
	cfg.Seed = seed
	e, err := New(cfg, opts...)
	require.NoError(t, err)
	return e
}

// walledGenerator never carves anything, so no exit can ever be reached
type walledGenerator struct {
	calls int
}

func (g *walledGenerator) Generate(size int, r *rand.Rand) generator.Carving {
	g.calls++
	return generator.Carving{Grid: world.NewGrid(size)}
}

func (g *walledGenerator) Name() string {
	return "Walled"
}

func TestGenerate_ExitAlwaysReachable(t *testing.T) {
	sizes := []int{5, 6, 7, 12, 21}
	seeds := uint64(40)
	if testing.Short() {
		seeds = 5
	}

	for _, size := range sizes {
		for _, diagonal := range []bool{false, true} {
			t.Run(fmt.Sprintf("size=%d/diagonal=%v", size, diagonal), func(t *testing.T) {
				cfg := config.Default()
				cfg.GridSize = size
				cfg.AllowDiagonal = diagonal

				for seed := uint64(1); seed <= seeds; seed++ {
					e := seeded(t, cfg, seed)
					m, err := e.Generate()
					require.NoError(t, err, "seed %d", seed)

					assert.Equal(t, size, m.Size)
					assert.GreaterOrEqual(t, m.Attempts, 1)
					assert.NoError(t, e.Validate(m), "seed %d", seed)

					res, err := e.IsReachable(m.Grid, m.Start, m.Exit, m.Obstacles)
					require.NoError(t, err)
					assert.True(t, res.Reachable)
				}
			})
		}
	}
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	a, err := seeded(t, config.Default(), 99).Generate()
	require.NoError(t, err)
	b, err := seeded(t, config.Default(), 99).Generate()
	require.NoError(t, err)

	assert.True(t, a.Grid.Equal(b.Grid))
	assert.Equal(t, a.Exit, b.Exit)
	assert.Equal(t, a.Obstacles, b.Obstacles)
	assert.Equal(t, a.Collectibles, b.Collectibles)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerate_DiagnosticsOnlyInDebug(t *testing.T) {
	m, err := seeded(t, config.Default(), 7).Generate()
	require.NoError(t, err)
	assert.Nil(t, m.Diagnostics)
	assert.Nil(t, m.Removed())

	cfg := config.Default()
	cfg.Debug = true
	m, err = seeded(t, cfg, 7).Generate()
	require.NoError(t, err)
	require.NotNil(t, m.Diagnostics)

	d := m.Diagnostics
	assert.Equal(t, generator.DefaultGenerator.Name(), d.Generator)
	assert.Equal(t, 1, d.Corridors)
	assert.NotEmpty(t, d.Reachability.Visited)
	assert.Positive(t, d.Elapsed)

	path := d.Path()
	require.NotEmpty(t, path)
	assert.Equal(t, m.Start, path[0])
	assert.Equal(t, m.Exit, path[len(path)-1])
}

func TestGenerate_RepairedMazeCarriesNotice(t *testing.T) {
	cfg := config.Default()
	cfg.Debug = true

	for seed := uint64(1); seed <= 500; seed++ {
		m, err := seeded(t, cfg, seed).Generate()
		require.NoError(t, err)
		if !m.Repaired {
			assert.Empty(t, m.Notice)
			assert.Nil(t, m.Diagnostics.Repair)
			continue
		}

		assert.Equal(t, i18n.New("en").Get(i18n.MapRepaired), m.Notice)
		require.NotNil(t, m.Diagnostics.Repair)
		assert.False(t, m.Diagnostics.Reachability.Reachable)
		assert.NotEmpty(t, m.Removed())
		assert.NoError(t, Validate(m, pathfind.Options{}))
		return
	}
	t.Fatal("no seed produced a maze that needed repair")
}

func TestGenerate_CopyModeStillReachable(t *testing.T) {
	cfg := config.Default()
	cfg.MutateGrid = false
	for seed := uint64(1); seed <= 50; seed++ {
		e := seeded(t, cfg, seed)
		m, err := e.Generate()
		require.NoError(t, err)
		assert.NoError(t, e.Validate(m))
	}
}

func TestGenerate_GivesUpAfterMaxAttempts(t *testing.T) {
	logger, hook := test.NewNullLogger()
	gen := &walledGenerator{}

	cfg := config.Default()
	cfg.MaxAttempts = 3
	e := seeded(t, cfg, 1, WithGenerator(gen), WithLogger(logger))

	m, err := e.Generate()
	assert.Nil(t, m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.True(t, errors.Is(err, ErrNoPath))

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, 3, genErr.Attempts)
	assert.Equal(t, 3, gen.calls)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "giving up", hook.LastEntry().Message)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestGenerationError_Message(t *testing.T) {
	err := &GenerationError{Attempts: 4, Last: ErrRepairExhausted}
	assert.Equal(t, "could not produce a valid maze after 4 attempts: repair exhausted", err.Error())
	assert.ErrorIs(t, err, ErrRepairExhausted)

	bare := &GenerationError{Attempts: 1}
	assert.ErrorIs(t, bare, ErrGenerationFailed)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.GridSize = 2
	_, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestEngine_IsReachableChecksBounds(t *testing.T) {
	e := seeded(t, config.Default(), 1)
	g := world.NewGrid(5)
	_, err := e.IsReachable(g, world.Pos(1, 1), world.Pos(7, 7), nil)
	assert.ErrorIs(t, err, pathfind.ErrOutOfBounds)
}

func TestEngine_RepairUsesConfiguredMode(t *testing.T) {
	cfg := config.Default()
	cfg.MutateGrid = false
	e := seeded(t, cfg, 1)

	g := world.MustParseGrid(
		"#####",
		"#   #",
		"#####",
		"#####",
		"#####",
	)
	obs := entities.Obstacles{entities.NewObstacle(world.Pos(2, 1), entities.ObstacleFire)}
	res, err := e.Repair(repair.Input{Grid: g, Obstacles: obs, Start: world.Pos(1, 1), Exit: world.Pos(3, 1)})
	require.NoError(t, err)
	assert.True(t, res.Repaired)
	assert.Len(t, obs, 1, "input untouched in copy mode")
	assert.Empty(t, res.Obstacles)

	_, err = e.Repair(repair.Input{Grid: g, Start: world.Pos(-1, 1), Exit: world.Pos(3, 1)})
	assert.ErrorIs(t, err, pathfind.ErrOutOfBounds)
}

func TestMaze_Layout(t *testing.T) {
	m, err := seeded(t, config.Default(), 3).Generate()
	require.NoError(t, err)

	layout := m.Layout()
	assert.Equal(t, world.PlayerMarker, layout.Tile(m.Start))
	assert.Equal(t, world.ExitMarker, layout.Tile(m.Exit))
	assert.Equal(t, world.Open, m.Grid.Tile(m.Start), "layout must not touch the maze grid")
}

func TestMaze_JSON(t *testing.T) {
	m, err := seeded(t, config.Default(), 3).Generate()
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded struct {
		ID   string   `json:"id"`
		Size int      `json:"size"`
		Grid []string `json:"grid"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m.ID.String(), decoded.ID)
	assert.Len(t, decoded.Grid, m.Size)
	assert.NotContains(t, string(data), "diagnostics")
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	g := world.MustParseGrid(
		"#####",
		"#   #",
		"#####",
		"#   #",
		"#####",
	)
	m := &Maze{
		Grid:  g,
		Start: world.Pos(1, 1),
		Exit:  world.Pos(3, 3),
		Obstacles: entities.Obstacles{
			entities.NewObstacle(world.Pos(2, 1), entities.ObstacleDoor),
		},
		Collectibles: entities.Collectibles{
			entities.NewCollectible(world.Pos(2, 1), entities.CollectiblePhone),
			entities.NewCollectible(world.Pos(3, 3), entities.CollectibleFirstAid),
			entities.NewCollectible(world.Pos(1, 3), entities.CollectibleFlashlight),
			entities.NewCollectible(world.Pos(1, 3), entities.CollectibleFlashlight),
		},
	}

	err := Validate(m, pathfind.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSharedCell)
	assert.ErrorIs(t, err, ErrOccupiedEndpoint)
	assert.ErrorIs(t, err, ErrDuplicateCollectible)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.NotErrorIs(t, err, ErrStartIsExit)

	m.Exit = m.Start
	assert.ErrorIs(t, Validate(m, pathfind.Options{}), ErrStartIsExit)
}
