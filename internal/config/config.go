// Package config loads retentionwatch configuration by layering
// defaults, an optional YAML file, and RETENTION_WATCH_* environment
// variables. CLI flags override the loaded values at the command layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Database driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// EnvPrefix is the prefix for configuration environment variables,
// e.g. RETENTION_WATCH_DUE_SOON_DAYS or RETENTION_WATCH_DATABASE_URL.
const EnvPrefix = "RETENTION_WATCH_"

// ConfigFileEnv names an optional YAML config file to layer over the
// defaults.
const ConfigFileEnv = "RETENTION_WATCH_CONFIG"

// Config holds the tool's settings.
type Config struct {
	// DueSoonDays flags check-ins this many days out as due soon.
	DueSoonDays int `koanf:"due_soon_days"`

	// MaxHighRisk caps the high-risk roster; zero means unlimited.
	MaxHighRisk int `koanf:"max_high_risk"`

	// Lenient counts and skips malformed rows instead of aborting.
	Lenient bool `koanf:"lenient"`

	// DBDriver selects the run store: sqlite (default) or postgres.
	DBDriver string `koanf:"db_driver"`

	// DBPath is the SQLite database file. Empty means the default
	// ~/.retentionwatch/retentionwatch.db.
	DBPath string `koanf:"db_path"`

	// DatabaseURL is the Postgres DSN, required with db_driver=postgres.
	DatabaseURL string `koanf:"database_url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DueSoonDays: 7,
		MaxHighRisk: 0,
		DBDriver:    DriverSQLite,
	}
}

// Load builds a Config by layering defaults, the optional YAML file
// named by RETENTION_WATCH_CONFIG, and RETENTION_WATCH_* env vars
// (lowest to highest precedence).
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Map env keys like RETENTION_WATCH_DUE_SOON_DAYS -> due_soon_days
	// to match the koanf tags on the struct.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the pipeline cannot honor.
func (c *Config) Validate() error {
	if c.DueSoonDays < 0 {
		return fmt.Errorf("due_soon_days must be >= 0, got %d", c.DueSoonDays)
	}
	if c.MaxHighRisk < 0 {
		return fmt.Errorf("max_high_risk must be >= 0, got %d", c.MaxHighRisk)
	}
	switch c.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required with db_driver=postgres")
		}
	default:
		return fmt.Errorf("unknown db_driver %q", c.DBDriver)
	}
	return nil
}
