// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

/*
Package metrics provides Prometheus instrumentation for Stellarlog.

All collectors are registered with the default registry at init through
promauto and exposed by the API server at /metrics.

Metric families:

  - stellarlog_engine_*: computation latency and memo cache effectiveness
  - stellarlog_graph_*: shape of the most recently built graph
  - stellarlog_catalog_*: snapshot size, reloads and rejected records
  - stellarlog_directory_lookups_total, stellarlog_circuit_breaker_state:
    author directory health
  - stellarlog_api_*: HTTP request counts, latency and concurrency
*/
package metrics
