// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package models

import (
	"time"
)

// APIResponse is the envelope every HTTP endpoint returns.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
//	{
//	  "status": "success",
//	  "data": {"entities": [...], "edges": [...]},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 3,
//	    "snapshot_version": "9f2c...",
//	    "cached": true
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp       time.Time `json:"timestamp"`
	QueryTimeMS     int64     `json:"query_time_ms,omitempty"`
	SnapshotVersion string    `json:"snapshot_version,omitempty"`
	Cached          bool      `json:"cached,omitempty"`
}

// APIError carries a machine-readable code and a human-readable message.
//
// Codes used by the API:
//   - VALIDATION_ERROR: bad query parameters or request body
//   - NOT_FOUND: unknown entity or edge
//   - NO_SNAPSHOT: no catalog has been loaded yet
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the health endpoint.
type HealthStatus struct {
	Status          string    `json:"status"`
	Version         string    `json:"version"`
	SnapshotVersion string    `json:"snapshot_version,omitempty"`
	Records         int       `json:"records"`
	LoadedAt        time.Time `json:"loaded_at,omitempty"`
	Uptime          float64   `json:"uptime_seconds"`
}
