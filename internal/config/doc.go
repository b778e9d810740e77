// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

/*
Package config provides centralized configuration management for Stellarlog.

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Struct defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, else the first of DefaultConfigPaths
 3. Environment variables

# Environment Variables

Any key can be set with the STELLARLOG_ prefix, using a double underscore
between nested sections:

	STELLARLOG_SERVER__PORT=9000
	STELLARLOG_GRAPH__MIN_CONNECTION_SCORE=15
	STELLARLOG_INSIGHTS__VELOCITY__WINDOW_MONTHS=12
	STELLARLOG_DIRECTORY__BACKEND=badger

A few short aliases are also accepted: HTTP_PORT, HTTP_HOST, LOG_LEVEL,
LOG_FORMAT, CORS_ORIGINS (comma-separated), CATALOG_PATH, DIRECTORY_PATH and
DISABLE_RATELIMIT.

# Sections

  - logging: level, format, caller
  - server: listen address, timeouts, CORS, rate limiting
  - catalog: snapshot file and reload interval
  - directory: author directory backend and circuit breaker
  - graph: scoring weights and sparsification heuristics (graph.Config)
  - insights: bridge weights, velocity, influence, evolution (insights.Config)
  - cache: memoization capacity and TTL

# Validation

Validate applies validator struct tags, then the cross-field checks of
graph.Config and insights.Config. LoadWithKoanf fails on the first invalid
setting.
*/
package config
