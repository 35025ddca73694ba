package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"escapemaze/pkg/engine/terminal"
	"escapemaze/pkg/game/config"
	"escapemaze/pkg/game/devtools"
	"escapemaze/pkg/game/generator"
	"escapemaze/pkg/game/i18n"
	"escapemaze/pkg/game/maze"
	"escapemaze/pkg/game/pathfind"
	"escapemaze/pkg/game/renderer"
	"escapemaze/pkg/game/verify"
)

// engineFlags override the resolved configuration when set
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "size", Usage: "grid side length"},
		&cli.BoolFlag{Name: "diagonal", Usage: "allow diagonal movement"},
		&cli.IntFlag{Name: "obstacle-cost", Usage: "A* cost of stepping onto an obstacle"},
		&cli.IntFlag{Name: "max-repair-iterations", Usage: "obstacles cleared at most per repair"},
		&cli.IntFlag{Name: "max-attempts", Usage: "full regenerations before giving up"},
		&cli.BoolFlag{Name: "no-mutate", Usage: "repair a copy instead of the generated grid"},
		&cli.BoolFlag{Name: "debug", Usage: "keep search and repair diagnostics"},
		&cli.Uint64Flag{Name: "seed", Usage: "random seed (0 picks one)"},
		&cli.StringFlag{
			Name:  "generator",
			Value: "backtracker",
			Usage: fmt.Sprintf("grid generator %v", generator.Names()),
		},
	}
}

func resolveConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Resolve(cmd.String("config"))
	if err != nil {
		return cfg, err
	}
	return applyFlags(cmd, cfg), nil
}

func applyFlags(cmd *cli.Command, cfg config.Config) config.Config {
	if cmd.IsSet("size") {
		cfg.GridSize = int(cmd.Int("size"))
	}
	if cmd.IsSet("diagonal") {
		cfg.AllowDiagonal = cmd.Bool("diagonal")
	}
	if cmd.IsSet("obstacle-cost") {
		cfg.ObstacleCost = int(cmd.Int("obstacle-cost"))
	}
	if cmd.IsSet("max-repair-iterations") {
		cfg.MaxRepairIterations = int(cmd.Int("max-repair-iterations"))
	}
	if cmd.IsSet("max-attempts") {
		cfg.MaxAttempts = int(cmd.Int("max-attempts"))
	}
	if cmd.IsSet("no-mutate") {
		cfg.MutateGrid = !cmd.Bool("no-mutate")
	}
	if cmd.IsSet("debug") {
		cfg.Debug = cmd.Bool("debug")
	}
	if cmd.IsSet("seed") {
		cfg.Seed = uint64(cmd.Uint64("seed"))
	}
	return cfg
}

func newEngine(cmd *cli.Command, force func(*config.Config)) (*maze.Engine, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	if force != nil {
		force(&cfg)
	}
	gen, err := generator.Lookup(cmd.String("generator"))
	if err != nil {
		return nil, err
	}
	return maze.New(cfg,
		maze.WithLogger(log.WithField("cmd", cmd.Name)),
		maze.WithGenerator(gen),
		maze.WithCatalog(i18n.Current()),
	)
}

// generateMaze runs the engine and turns a GenerationError into the
// localised failure message.
func generateMaze(e *maze.Engine) (*maze.Maze, error) {
	m, err := e.Generate()
	var genErr *maze.GenerationError
	if errors.As(err, &genErr) {
		return nil, cli.Exit(i18n.Getf(i18n.GenerationFailed, genErr.Attempts), 1)
	}
	return m, err
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "generate a maze and print it",
		Flags: append(engineFlags(),
			&cli.BoolFlag{Name: "json", Usage: "print the maze as JSON"},
			&cli.BoolFlag{Name: "no-color", Usage: "plain ASCII output"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := newEngine(cmd, nil)
			if err != nil {
				return err
			}
			m, err := generateMaze(e)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			if cmd.Bool("json") {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			}

			opts := renderer.Options{Color: !cmd.Bool("no-color") && terminal.StdoutIsTerminal()}
			if !terminal.Fits(m.Size, 1) {
				log.WithField("size", m.Size).Warn("maze is wider than the terminal")
			}
			return renderer.WriteMaze(out, m, opts, terminal.GetWidth())
		},
	}
}

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "write a debug dump of a maze with search and repair layers",
		Flags: append(engineFlags(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: devtools.DefaultDumpFilename, Usage: "dump file"},
			&cli.BoolFlag{Name: "visited", Usage: "draw cells visited by the reachability search"},
			&cli.BoolFlag{Name: "path", Usage: "draw the shortest path"},
			&cli.BoolFlag{Name: "repaired", Usage: "draw cells cleared by repair"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			layers := renderer.Layers{
				Visited:  cmd.Bool("visited"),
				Path:     cmd.Bool("path"),
				Repaired: cmd.Bool("repaired"),
			}
			e, err := newEngine(cmd, func(c *config.Config) {
				// Layers are drawn from diagnostics
				if layers.Any() {
					c.Debug = true
				}
			})
			if err != nil {
				return err
			}
			m, err := generateMaze(e)
			if err != nil {
				return err
			}

			path, err := devtools.DumpToFile(cmd.String("out"), m, layers)
			if err != nil {
				return fmt.Errorf("failed to write dump: %w", err)
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, path)
			return err
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "generate many mazes and check every exit is reachable",
		Flags: append(engineFlags(),
			&cli.IntFlag{Name: "tries", Value: 100, Usage: "number of mazes to generate"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			e, err := newEngine(cmd, nil)
			if err != nil {
				return err
			}

			opts := pathfind.Options{Diagonal: e.Config().AllowDiagonal}
			rep := verify.Run(e.Generate, int(cmd.Int("tries")), opts)
			if err := rep.Write(cmd.Root().Writer); err != nil {
				return err
			}
			if !rep.OK() {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}
