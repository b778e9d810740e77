// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/stellarlog/internal/insights"
)

// ClustersRequest selects the cluster variant.
type ClustersRequest struct {
	Kind string `json:"kind" validate:"oneof=thematic temporal"`
}

// BridgesRequest selects conceptual, temporal, or all bridges.
type BridgesRequest struct {
	Kind string `json:"kind" validate:"oneof=all conceptual temporal"`
}

func queryOrDefault(r *http.Request, key, def string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return def
}

// Clusters returns thematic (default) or temporal clusters.
func (h *Handler) Clusters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := ClustersRequest{Kind: queryOrDefault(r, "kind", string(insights.ClusterThematic))}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	clusters, meta, err := h.engine.Clusters(r.Context(), insights.ClusterKind(req.Kind))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondSuccess(w, start, meta, clusters)
}

// Bridges returns conceptual and temporal bridges merged by strength
// (kind=all, the default), or one of them with kind=conceptual|temporal.
func (h *Handler) Bridges(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := BridgesRequest{Kind: queryOrDefault(r, "kind", string(insights.BridgeScopeAll))}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	bridges, meta, err := h.engine.Bridges(r.Context(), insights.BridgeScope(req.Kind))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondSuccess(w, start, meta, bridges)
}

// Velocity returns per-theme reading velocity and trend.
func (h *Handler) Velocity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	velocity, meta, err := h.engine.Velocity(r.Context())
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondSuccess(w, start, meta, velocity)
}

// Influence returns the author influence network.
func (h *Handler) Influence(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	influence, meta, err := h.engine.Influence(r.Context())
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondSuccess(w, start, meta, influence)
}

// Evolution returns concept timelines across literary eras.
func (h *Handler) Evolution(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	evolution, meta, err := h.engine.Evolution(r.Context())
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondSuccess(w, start, meta, evolution)
}
