// Package config loads settings shared by the console and the script runner.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the host settings; flags may override what Load returns.
type Config struct {
	// Scripts run at the same time by duckscript.
	Jobs int `env:"DUCK_JOBS" envDefault:"4"`
	// Print the FEN of each returned GameState instead of its raw masks.
	PrintFEN bool `env:"DUCK_PRINT_FEN" envDefault:"false"`
	// Optional Lua file run in every fresh interpreter before user code.
	Prelude string `env:"DUCK_PRELUDE"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the hosts cannot run with.
func (c Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	return nil
}
