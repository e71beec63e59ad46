// Copyright (c) 2026 CampusShare. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into strongly-typed
Go structs, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Two schemas live here: [Config] for the CLI client and [BackendConfig] for the
in-memory reference backend. Both are read-only once loaded and passed to
components through constructors.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Token Store Kinds

const (
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
	TokenStoreMemory = "memory"
)

// # Client Configuration Schema

// Config holds all runtime configuration for the CampusShare client.
type Config struct {

	// General settings
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	// REST backend
	APIURL         string        `env:"CAMPUS_API_URL"         envDefault:"http://localhost:8080/api/v1"`
	RequestTimeout time.Duration `env:"CAMPUS_REQUEST_TIMEOUT" envDefault:"15s"`

	// Outbound throttling applied by the HTTP adapter
	RateLimitRPS   float64 `env:"CAMPUS_RATE_LIMIT_RPS"   envDefault:"10"`
	RateLimitBurst int     `env:"CAMPUS_RATE_LIMIT_BURST" envDefault:"20"`

	// Durable token persistence
	TokenStore string `env:"CAMPUS_TOKEN_STORE" envDefault:"file"`
	TokenFile  string `env:"CAMPUS_TOKEN_FILE"`
	RedisURL   string `env:"CAMPUS_REDIS_URL"`
	TokenKey   string `env:"CAMPUS_TOKEN_KEY"   envDefault:"campusshare:session:token"`

	// Delay before a filter-driven reload is issued
	Debounce time.Duration `env:"CAMPUS_DEBOUNCE" envDefault:"500ms"`
}

// # Backend Configuration Schema

// BackendConfig holds runtime configuration for the reference backend.
type BackendConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`

	ServerPort string        `env:"MOCKAPI_PORT"       envDefault:"8080"`
	JWTSecret  string        `env:"MOCKAPI_JWT_SECRET" envDefault:"campusshare-dev-secret"`
	TokenTTL   time.Duration `env:"MOCKAPI_TOKEN_TTL"  envDefault:"24h"`

	// Optional administrator seeded at startup
	SeedAdminEmail    string `env:"MOCKAPI_SEED_ADMIN_EMAIL"`
	SeedAdminPassword string `env:"MOCKAPI_SEED_ADMIN_PASSWORD"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// The token file defaults to the user's home directory, which env tags cannot express.
	if cfg.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home directory: %w", err)
		}
		cfg.TokenFile = filepath.Join(home, ".campusshare", "token")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadBackend parses environment variables into a [BackendConfig] struct.
func LoadBackend() (*BackendConfig, error) {
	cfg := &BackendConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// validate rejects combinations that env tags cannot express.
func (c *Config) validate() error {
	switch c.TokenStore {
	case TokenStoreFile, TokenStoreMemory:
	case TokenStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: CAMPUS_REDIS_URL is required when CAMPUS_TOKEN_STORE=redis")
		}
	default:
		return fmt.Errorf("config: unknown CAMPUS_TOKEN_STORE %q", c.TokenStore)
	}
	return nil
}

// IsDevelopment reports whether the process is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsDevelopment reports whether the backend is running in development mode.
func (c *BackendConfig) IsDevelopment() bool {
	return c.Environment == "development"
}
