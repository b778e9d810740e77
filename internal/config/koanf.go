// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/stellarlog/internal/graph"
	"github.com/tomtom215/stellarlog/internal/insights"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is not set.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/stellarlog/config.yaml",
	"/etc/stellarlog/config.yml",
}

// ConfigPathEnvVar names an explicit config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix prefixes every structured environment override.
// Nested keys are separated by a double underscore:
//
//	STELLARLOG_GRAPH__BUCKET_WINDOW=8 -> graph.bucket_window
const EnvPrefix = "STELLARLOG_"

// defaultConfig returns a Config with every default applied.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Port:            8411,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			MaxBodyBytes:    10 << 20,
		},
		Catalog: CatalogConfig{
			ReloadInterval: 30 * time.Second,
		},
		Directory: DirectoryConfig{
			Backend:            DirectoryNone,
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
			LookupTimeout:      2 * time.Second,
		},
		Graph:    graph.DefaultConfig(),
		Insights: insights.DefaultConfig(),
		Cache: CacheConfig{
			Capacity: 64,
		},
	}
}

// LoadWithKoanf loads configuration in three layers: struct defaults, an
// optional YAML file, then environment variables.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from the
// environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envAliases maps short, conventional variable names onto config paths.
var envAliases = map[string]string{
	"http_port":         "server.port",
	"http_host":         "server.host",
	"log_level":         "logging.level",
	"log_format":        "logging.format",
	"cors_origins":      "server.cors_origins",
	"catalog_path":      "catalog.path",
	"directory_path":    "directory.path",
	"disable_ratelimit": "server.rate_limit_disabled",
}

// envTransformFunc transforms environment variable names to koanf paths.
//
// Examples:
//   - STELLARLOG_GRAPH__BUCKET_WINDOW -> graph.bucket_window
//   - STELLARLOG_INSIGHTS__VELOCITY__WINDOW_MONTHS -> insights.velocity.window_months
//   - HTTP_PORT -> server.port
//   - LOG_LEVEL -> logging.level
//
// Unrelated variables map to "" and are skipped.
func envTransformFunc(key string) string {
	if rest, ok := strings.CutPrefix(key, EnvPrefix); ok {
		if rest == "" {
			return ""
		}
		return strings.ReplaceAll(strings.ToLower(rest), "__", ".")
	}

	if mapped, ok := envAliases[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
