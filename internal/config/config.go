// Package config loads server configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int `env:"PORT" envDefault:"8080"`

	// Store selects the persistence backend: "sqlite" or "memory".
	Store string `env:"STORE" envDefault:"sqlite"`

	// DBPath is the SQLite database file path.
	DBPath string `env:"DB_PATH" envDefault:"./data/divvy.db"`

	// LedgerKey is the persistence key for this session's ledger.
	LedgerKey string `env:"LEDGER_KEY" envDefault:"default"`

	// LogLevel is the slog level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Store != "sqlite" && cfg.Store != "memory" {
		return Config{}, fmt.Errorf("invalid STORE %q: must be sqlite or memory", cfg.Store)
	}
	return cfg, nil
}
