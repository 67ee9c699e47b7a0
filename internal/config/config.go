// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the catalog service.
// Environment variables are parsed from the REELGRAPH_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage backend: memory, sqlite or postgres.
	DBDriver string `envconfig:"DB_DRIVER" default:"memory"`

	// SQLite Configuration
	SQLitePath string `envconfig:"SQLITE_PATH" default:"reelgraph.db"`

	// Postgres Configuration
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Health probe cadence and per-probe timeout, in seconds.
	HealthIntervalSeconds int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"10"`
	HealthTimeoutSeconds  int `envconfig:"HEALTH_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates the selected driver and its required settings.
func (c *Config) ResolveDefaults() error {
	switch c.DBDriver {
	case "memory":
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("REELGRAPH_SQLITE_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("REELGRAPH_POSTGRES_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	return nil
}

// New creates a Config by parsing environment variables.
// Variables are prefixed with REELGRAPH_, e.g. REELGRAPH_HTTP_PORT.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("REELGRAPH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Bool("postgres_dsn_present", cfg.PostgresDSN != "").
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		Environment:           EnvTesting,
		HTTPPort:              8080,
		DBDriver:              "memory",
		HealthIntervalSeconds: 1,
		HealthTimeoutSeconds:  1,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool { return c.Environment == EnvTesting }

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }
