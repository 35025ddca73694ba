// Package maze generates escape mazes whose exit is guaranteed reachable.
//
// Generation runs carve, place, check and, when the exit is cut off, repair.
// A maze whose repair fails is discarded and generated again, up to the
// configured number of attempts.
package maze

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"escapemaze/pkg/engine/world"
	"escapemaze/pkg/game/config"
	"escapemaze/pkg/game/entities"
	"escapemaze/pkg/game/generator"
	"escapemaze/pkg/game/i18n"
	"escapemaze/pkg/game/levelgen"
	"escapemaze/pkg/game/pathfind"
	"escapemaze/pkg/game/repair"
)

// Log is the default engine logger, replaced with WithLogger
var Log = logrus.New()

// Engine generates mazes for one configuration. An Engine owns its random
// source and is not safe for concurrent use.
type Engine struct {
	cfg     config.Config
	log     logrus.FieldLogger
	rng     *rand.Rand
	gen     generator.GridGenerator
	catalog *i18n.Catalog
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger replaces the package logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithRand replaces the seeded random source
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithGenerator replaces the grid generator
func WithGenerator(g generator.GridGenerator) Option {
	return func(e *Engine) { e.gen = g }
}

// WithCatalog sets the catalogue used for the repair notice
func WithCatalog(c *i18n.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// NewRand returns a PCG source for seed, or a randomly seeded one when seed is 0
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// New validates cfg and returns an Engine
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg: cfg,
		log: Log,
		gen: generator.DefaultGenerator,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRand(cfg.Seed)
	}
	if e.catalog == nil {
		e.catalog = i18n.New(i18n.DefaultLanguage)
	}
	return e, nil
}

// Config returns the engine configuration
func (e *Engine) Config() config.Config {
	return e.cfg
}

func (e *Engine) searchOptions() pathfind.Options {
	return pathfind.Options{Diagonal: e.cfg.AllowDiagonal}
}

func (e *Engine) repairOptions() repair.Options {
	return repair.Options{
		Diagonal:      e.cfg.AllowDiagonal,
		ObstacleCost:  e.cfg.ObstacleCost,
		MaxIterations: e.cfg.MaxRepairIterations,
		Mutate:        e.cfg.MutateGrid,
	}
}

// Generate produces a maze whose exit is reachable from its start. Failed
// repairs trigger a full regeneration; after MaxAttempts failures a
// *GenerationError is returned.
func (e *Engine) Generate() (*Maze, error) {
	began := time.Now()

	var last error
	for attempt := 1; attempt <= e.cfg.MaxAttempts; attempt++ {
		m, err := e.generateOnce(attempt)
		if err != nil {
			last = err
			e.log.WithFields(logrus.Fields{
				"attempt": attempt, "reason": err,
			}).Warn("could not repair map, regenerating")
			continue
		}

		m.Attempts = attempt
		if m.Diagnostics != nil {
			m.Diagnostics.Elapsed = time.Since(began)
		}
		return m, nil
	}

	e.log.WithFields(logrus.Fields{
		"attempts": e.cfg.MaxAttempts, "reason": last,
	}).Error("giving up")
	return nil, &GenerationError{Attempts: e.cfg.MaxAttempts, Last: last}
}

func (e *Engine) generateOnce(attempt int) (*Maze, error) {
	carving := e.gen.Generate(e.cfg.GridSize, e.rng)
	grid := carving.Grid
	placement := levelgen.Place(grid, e.rng)

	m := &Maze{
		ID:           uuid.New(),
		Size:         grid.Size(),
		Grid:         grid,
		Start:        placement.Start,
		Exit:         placement.Exit,
		Obstacles:    placement.Obstacles,
		Collectibles: placement.Collectibles,
	}
	genLog := e.log.WithFields(logrus.Fields{"maze": m.ID, "attempt": attempt})

	if !placement.ExitValid {
		genLog.WithField("exit", m.Exit).Warn("no valid exit cell, keeping default")
	}

	reach := pathfind.IsReachable(grid, m.Start, m.Exit, m.Obstacles, e.searchOptions())
	var rep *repair.Result

	if !reach.Reachable {
		genLog.Info("exit unreachable, attempting repair")
		res := repair.Repair(repair.Input{
			Grid:      grid,
			Obstacles: m.Obstacles,
			Start:     m.Start,
			Exit:      m.Exit,
		}, e.repairOptions())

		if !res.Repaired {
			if res.Candidate == nil {
				return nil, ErrNoPath
			}
			return nil, fmt.Errorf("%w: %d obstacles removed in %d iterations", ErrRepairExhausted, len(res.Removed), res.Iterations)
		}

		m.Grid = res.Grid
		m.Obstacles = res.Obstacles
		m.Repaired = true
		m.Notice = e.catalog.Get(i18n.MapRepaired)
		rep = &res
		genLog.WithField("removed", len(res.Removed)).Info("map repaired")
	}

	if e.cfg.Debug {
		m.Diagnostics = &Diagnostics{
			Reachability:  reach,
			Repair:        rep,
			Generator:     e.gen.Name(),
			Corridors:     world.CountCorridors(m.Grid),
			Openings:      carving.Openings,
			ExitRelocated: placement.ExitRelocated,
		}
	}
	return m, nil
}

// IsReachable checks whether exit can be reached from start with the
// engine's movement rules.
func (e *Engine) IsReachable(grid *world.Grid, start, exit world.Position, obstacles entities.Obstacles) (pathfind.Reachability, error) {
	if err := pathfind.CheckEndpoints(grid, start, exit); err != nil {
		return pathfind.Reachability{}, err
	}
	return pathfind.IsReachable(grid, start, exit, obstacles, e.searchOptions()), nil
}

// Repair runs the repair loop with the engine's settings. With MutateGrid
// the input grid and obstacles are repaired in place.
func (e *Engine) Repair(in repair.Input) (repair.Result, error) {
	if err := pathfind.CheckEndpoints(in.Grid, in.Start, in.Exit); err != nil {
		return repair.Result{}, err
	}
	return repair.Repair(in, e.repairOptions()), nil
}
