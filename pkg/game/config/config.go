// Package config holds the engine configuration and loads it from defaults,
// a JSON file and MAZE_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Bounds
const (
	MinGridSize     = 5
	MaxGridSize     = 101
	MinObstacleCost = 2
)

// Defaults
const (
	DefaultGridSize            = 12
	DefaultObstacleCost        = 10
	DefaultMaxRepairIterations = 50
	DefaultMaxAttempts         = 25
)

// Environment variables
const (
	EnvConfigFile          = "MAZE_CONFIG"
	EnvConfigDir           = "CONFIG_DIR"
	EnvGridSize            = "MAZE_GRID_SIZE"
	EnvAllowDiagonal       = "MAZE_ALLOW_DIAGONAL"
	EnvObstacleCost        = "MAZE_OBSTACLE_COST"
	EnvMaxRepairIterations = "MAZE_MAX_REPAIR_ITERATIONS"
	EnvMutateGrid          = "MAZE_MUTATE_GRID"
	EnvDebug               = "MAZE_DEBUG"
	EnvMaxAttempts         = "MAZE_MAX_ATTEMPTS"
	EnvSeed                = "MAZE_SEED"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("config validation")

// Config is the engine configuration
type Config struct {
	GridSize            int  `json:"grid_size"`
	AllowDiagonal       bool `json:"allow_diagonal"`
	ObstacleCost        int  `json:"obstacle_cost"`
	MaxRepairIterations int  `json:"max_repair_iterations"`
	MutateGrid          bool `json:"mutate_grid"`
	Debug               bool `json:"debug"`
	// MaxAttempts caps full regenerations after failed repairs
	MaxAttempts int `json:"max_attempts"`
	// Seed fixes the random source; 0 draws a fresh seed
	Seed uint64 `json:"seed"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		GridSize:            DefaultGridSize,
		ObstacleCost:        DefaultObstacleCost,
		MaxRepairIterations: DefaultMaxRepairIterations,
		MutateGrid:          true,
		MaxAttempts:         DefaultMaxAttempts,
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

// Validate checks the configuration for usable values
func (c Config) Validate() error {
	if c.GridSize < MinGridSize || c.GridSize > MaxGridSize {
		return invalid("grid_size must be between %d and %d, got %d", MinGridSize, MaxGridSize, c.GridSize)
	}
	if c.ObstacleCost < MinObstacleCost {
		return invalid("obstacle_cost must be at least %d, got %d", MinObstacleCost, c.ObstacleCost)
	}
	if c.MaxRepairIterations < 1 {
		return invalid("max_repair_iterations must be positive, got %d", c.MaxRepairIterations)
	}
	if c.MaxAttempts < 1 {
		return invalid("max_attempts must be positive, got %d", c.MaxAttempts)
	}
	return nil
}

// Load reads a JSON file over the defaults and validates the result. Fields
// missing from the file keep their default values. A relative path is
// resolved against CONFIG_DIR when that variable is set.
func Load(filename string) (Config, error) {
	configPath := filename
	if configDir := os.Getenv(EnvConfigDir); configDir != "" && !filepath.IsAbs(filename) {
		configPath = filepath.Join(configDir, filename)
	}

	cfg := Default()
	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from MAZE_* environment variables
func ApplyEnv(cfg Config) (Config, error) {
	ints := []struct {
		name string
		dst  *int
	}{
		{EnvGridSize, &cfg.GridSize},
		{EnvObstacleCost, &cfg.ObstacleCost},
		{EnvMaxRepairIterations, &cfg.MaxRepairIterations},
		{EnvMaxAttempts, &cfg.MaxAttempts},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", v.name, err)
		}
		*v.dst = n
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{EnvAllowDiagonal, &cfg.AllowDiagonal},
		{EnvMutateGrid, &cfg.MutateGrid},
		{EnvDebug, &cfg.Debug},
	}
	for _, v := range bools {
		raw, ok := os.LookupEnv(v.name)
		if !ok || raw == "" {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", v.name, err)
		}
		*v.dst = b
	}

	if raw, ok := os.LookupEnv(EnvSeed); ok && raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}

	return cfg, nil
}

// Resolve builds the configuration from defaults, then the JSON file named
// by filename or MAZE_CONFIG (if any), then the environment.
func Resolve(filename string) (Config, error) {
	if filename == "" {
		filename = os.Getenv(EnvConfigFile)
	}

	cfg := Default()
	if filename != "" {
		loaded, err := Load(filename)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	cfg, err := ApplyEnv(cfg)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadDotEnv loads .env files into the environment if they exist. Variables
// already set are not overridden. Returns true if any file was loaded.
func LoadDotEnv(filenames ...string) (bool, error) {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	var existing []string
	for _, f := range filenames {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return false, nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return false, err
	}
	return true, nil
}
