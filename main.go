// Command escapemaze generates disaster escape mazes whose exit is always
// reachable from the start, dumps them with search diagnostics and runs a
// reachability self-test.
//
// Configuration is read from defaults, then a JSON file (--config or
// MAZE_CONFIG), then MAZE_* environment variables (a .env file is loaded
// first when present), then command-line flags.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"escapemaze/pkg/game/config"
	"escapemaze/pkg/game/i18n"
	"escapemaze/pkg/game/maze"
	"escapemaze/pkg/game/repair"
	"escapemaze/pkg/game/verify"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "escapemaze"
)

var log = logrus.New()

// loggers are configured together from the global flags
func loggers() []*logrus.Logger {
	return []*logrus.Logger{log, maze.Log, repair.Log, verify.Log}
}

func setupLogging(level string, asJSON bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	for _, l := range loggers() {
		l.SetLevel(lvl)
		l.SetOutput(os.Stderr)
		if asJSON {
			l.SetFormatter(&logrus.JSONFormatter{})
		} else {
			l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		}
	}
	return nil
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    AppName,
		Usage:   "generate escape mazes with a guaranteed reachable exit",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "JSON configuration file",
				Sources: cli.EnvVars(config.EnvConfigFile),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warning",
				Usage: "log level (debug, info, warning, error)",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "log as JSON",
			},
			&cli.StringFlag{
				Name:    "lang",
				Value:   i18n.DefaultLanguage,
				Usage:   "message language",
				Sources: cli.EnvVars("MAZE_LANG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := setupLogging(cmd.String("log-level"), cmd.Bool("log-json")); err != nil {
				return ctx, err
			}
			loaded, err := config.LoadDotEnv()
			if err != nil {
				return ctx, err
			}
			if loaded {
				log.Debug("loaded .env")
			}
			return ctx, i18n.SetLanguage(cmd.String("lang"))
		},
		Commands: []*cli.Command{
			generateCommand(),
			dumpCommand(),
			verifyCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Fatal("escapemaze failed")
	}
}
