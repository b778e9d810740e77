// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/stellarlog/internal/engine"
	"github.com/tomtom215/stellarlog/internal/models"
)

// defaultMaxBodyBytes caps posted catalogs when no limit is configured.
const defaultMaxBodyBytes = 10 << 20

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, health
//   - handlers_graph.go: graph and node queries
//   - handlers_insights.go: clusters, bridges, velocity, influence, evolution
//   - handlers_admin.go: catalog replacement, export, rebuild
type Handler struct {
	engine       *engine.Engine
	version      string
	startTime    time.Time
	maxBodyBytes int64
}

// NewHandler creates the API handler. version is reported by the health
// endpoint; maxBodyBytes caps posted catalogs (0 selects 10MB).
func NewHandler(eng *engine.Engine, version string, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &Handler{
		engine:       eng,
		version:      version,
		startTime:    time.Now(),
		maxBodyBytes: maxBodyBytes,
	}
}

// Health reports process and snapshot status. It answers 200 even without
// a snapshot, with status "degraded".
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	health := models.HealthStatus{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}

	st, err := h.engine.Status()
	switch {
	case errors.Is(err, engine.ErrNoSnapshot):
		health.Status = "degraded"
	case err != nil:
		respondEngineError(w, err)
		return
	default:
		health.SnapshotVersion = st.Version
		health.Records = st.Records
		health.LoadedAt = st.LoadedAt
	}

	respondSuccess(w, start, engine.Meta{Version: health.SnapshotVersion}, health)
}
