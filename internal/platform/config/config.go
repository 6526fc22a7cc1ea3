// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

/*
Package config loads and validates application configuration from
environment variables.

# Twelve-Factor

All runtime configuration comes from the environment. There are no config
files; deployment targets (Docker, Kubernetes, systemd) each have their own
native way of injecting environment variables.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting the application reads.
type Config struct {
	// ServerPort is the TCP port the HTTP server listens on.
	ServerPort int `env:"SERVER_PORT" envDefault:"8080"`
	// Environment selects runtime behavior: "development" or "production".
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	// Debug enables verbose slog output at Debug level.
	Debug bool `env:"DEBUG" envDefault:"false"`

	// DatabaseURL is the Postgres connection string (pgx pool format).
	DatabaseURL string `env:"DATABASE_URL,required"`
	// RedisURL is the Redis connection string used by the list cache.
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	// MigrationPath points at the SQL migration directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"file://data/migrations"`

	// JWTSecret signs and verifies all issued tokens. Must be set.
	JWTSecret string `env:"JWT_SECRET,required"`
	// AccessTokenTTL is the lifetime of issued access tokens.
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"3600s"`
	// RefreshTokenTTL is the lifetime of issued refresh tokens.
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"604800s"`

	// ExtraOrigins lists additional allowed CORS origins, comma separated.
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate enforces constraints that struct tags cannot express.
func (c *Config) validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("config: SERVER_PORT %d out of range", c.ServerPort)
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("config: JWT_SECRET must be at least 32 bytes")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("config: token TTLs must be positive")
	}
	if c.Environment != "development" && c.Environment != "production" {
		return fmt.Errorf("config: unknown ENVIRONMENT %q", c.Environment)
	}
	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the CORS origin allowlist enforced in production.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}
