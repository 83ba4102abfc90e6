// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Backend selects where the progress record lives.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Config holds settings shared by every command. Empty paths mean the
// XDG defaults.
type Config struct {
	Progress string     `env:"MATHJOURNEY_PROGRESS"`
	DB       string     `env:"MATHJOURNEY_DB"`
	Backend  Backend    `env:"MATHJOURNEY_BACKEND"   envDefault:"file"`
	LogLevel slog.Level `env:"MATHJOURNEY_LOG_LEVEL" envDefault:"warn"`
	Hints    bool       `env:"MATHJOURNEY_HINTS"     envDefault:"true"`

	// Lessons overrides the built-in lesson catalog with a YAML file.
	Lessons string `env:"MATHJOURNEY_LESSONS"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendFile, BackendSQLite)
	}
}

// NewLogger returns a text logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}
