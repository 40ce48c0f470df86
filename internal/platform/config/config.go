// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a
strongly-typed Go struct, providing early validation and default values.

Architecture:

  - Immutability: once loaded, configuration is read-only.
  - DI-Friendly: passed to core components (DB, Redis, TokenService) via
    constructors; no ambient global state, including the signing secret.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Narkh API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// TokenSecret is the process-wide HMAC secret signing every session,
	// refresh, and reset token. Minimum 32 bytes, enforced at startup.
	TokenSecret string `env:"TOKEN_SECRET,required"`

	// WebOrigin is the single browser origin allowed by CORS (credentials on).
	WebOrigin string `env:"WEB_ORIGIN" envDefault:"https://narkh.app"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
// It fails fast when any field marked 'required' is missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedWebOrigin returns the single origin permitted by the CORS layer.
func (c *Config) AllowedWebOrigin() string {
	return c.WebOrigin
}
