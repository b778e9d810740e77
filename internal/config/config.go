// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/stellarlog/internal/graph"
	"github.com/tomtom215/stellarlog/internal/insights"
	"github.com/tomtom215/stellarlog/internal/validation"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config File: optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: STELLARLOG_<SECTION>__<KEY> overrides
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	builder := graph.NewBuilder(cfg.Graph)
type Config struct {
	Logging   LoggingConfig   `koanf:"logging"`
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Directory DirectoryConfig `koanf:"directory"`
	Graph     graph.Config    `koanf:"graph"`
	Insights  insights.Config `koanf:"insights"`
	Cache     CacheConfig     `koanf:"cache"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// ServerConfig holds HTTP server settings for the query API.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// CORSOrigins lists the origins allowed to call the API. "*" allows any.
	CORSOrigins []string `koanf:"cors_origins"`

	// Rate limiting is per client IP over RateLimitWindow.
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// MaxBodyBytes caps the size of a posted catalog.
	// Default: 10MB
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"gt=0"`
}

// Addr returns the listen address.
//
//nolint:gocritic // hugeParam: value receiver keeps the config immutable at call sites
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig locates the catalog snapshot and controls reloading.
type CatalogConfig struct {
	// Path is the JSON or YAML catalog file. Empty starts with no snapshot
	// until one is posted through the admin API.
	Path string `koanf:"path"`

	// ReloadInterval is how often the file's modification time is checked.
	// Zero disables reloading.
	// Default: 30s
	ReloadInterval time.Duration `koanf:"reload_interval" validate:"gte=0"`
}

// Directory backends.
const (
	DirectoryNone   = "none"
	DirectoryMemory = "memory"
	DirectoryBadger = "badger"
)

// DirectoryConfig selects the author directory used to decorate author nodes.
type DirectoryConfig struct {
	// Backend is one of none, memory, badger.
	// Default: none
	Backend string `koanf:"backend" validate:"oneof=none memory badger"`

	// Path is the BadgerDB directory when Backend is badger.
	Path string `koanf:"path"`

	// SeedFile optionally loads author profiles (JSON or YAML list) into
	// the directory at startup.
	SeedFile string `koanf:"seed_file"`

	// Circuit breaker around lookups.
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures" validate:"gt=0"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
	LookupTimeout      time.Duration `koanf:"lookup_timeout" validate:"gt=0"`
}

// CacheConfig controls memoization of derived results.
type CacheConfig struct {
	// Capacity is the number of cached results across all snapshot versions.
	// Default: 64
	Capacity int `koanf:"capacity" validate:"gt=0"`

	// TTL expires cached results. Zero keeps them until evicted.
	TTL time.Duration `koanf:"ttl" validate:"gte=0"`
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if verrs := validation.ValidateStruct(c); verrs != nil {
		return verrs
	}

	if c.Directory.Backend == DirectoryBadger && strings.TrimSpace(c.Directory.Path) == "" {
		return fmt.Errorf("directory.path is required when directory.backend=%s", DirectoryBadger)
	}

	if err := c.Graph.Validate(); err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	if err := c.Insights.Validate(); err != nil {
		return fmt.Errorf("insights: %w", err)
	}
	return nil
}

// Load reads configuration from defaults, the optional config file and the
// environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
