// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/stellarlog/internal/engine"
	"github.com/tomtom215/stellarlog/internal/graph"
)

// GraphRequest filters the edge list of GET /graph.
type GraphRequest struct {
	Types    []string `json:"types" validate:"dive,oneof=theme author authorship membership"`
	MinScore int      `json:"min_score" validate:"gte=0"`
}

// NeighborsRequest selects first or second degree neighbors.
type NeighborsRequest struct {
	Degree int `json:"degree" validate:"oneof=1 2"`
}

// RelatedRequest bounds the ranked neighbor list. Zero returns all.
type RelatedRequest struct {
	Limit int `json:"limit" validate:"gte=0,lte=500"`
}

// EdgeRequest names both endpoints of an edge.
type EdgeRequest struct {
	A string `json:"a" validate:"notblank"`
	B string `json:"b" validate:"notblank"`
}

// NeighborsResponse lists the neighbors of one entity.
type NeighborsResponse struct {
	ID        string   `json:"id"`
	Degree    int      `json:"degree"`
	Neighbors []string `json:"neighbors"`
}

// RelatedResponse lists the strongest connections of one entity.
type RelatedResponse struct {
	ID      string          `json:"id"`
	Related []graph.Related `json:"related"`
}

// BreakdownResponse explains the connections of one entity.
type BreakdownResponse struct {
	ID string `json:"id"`
	graph.Breakdown
}

// EdgeResponse explains why two entities are connected.
type EdgeResponse struct {
	A string `json:"a"`
	B string `json:"b"`
	graph.EdgeSummary
}

// Graph returns the entities, the (optionally filtered) edges and the stats.
func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	minScore, ok := getIntParam(r, "min_score", 0)
	if !ok {
		invalidParam(w, "min_score")
		return
	}
	req := GraphRequest{
		Types:    parseCommaSeparated(r.URL.Query().Get("types")),
		MinScore: minScore,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	g, meta, err := h.engine.Graph(r.Context())
	if err != nil {
		respondEngineError(w, err)
		return
	}

	if len(req.Types) == 0 && req.MinScore == 0 {
		respondSuccess(w, start, meta, g)
		return
	}

	types := make([]graph.EdgeType, len(req.Types))
	for i, t := range req.Types {
		types[i] = graph.EdgeType(t)
	}
	respondSuccess(w, start, meta, &engine.GraphResult{
		Entities: g.Entities,
		Edges:    graph.Filter(g.Edges, graph.FilterOptions{Types: types, MinScore: req.MinScore}),
		Stats:    g.Stats,
	})
}

// lookupNode resolves the {id} path parameter, answering 404 itself when the
// entity does not exist.
func (h *Handler) lookupNode(w http.ResponseWriter, r *http.Request) (*engine.GraphResult, engine.Meta, string, bool) {
	id := chi.URLParam(r, "id")

	g, meta, err := h.engine.Graph(r.Context())
	if err != nil {
		respondEngineError(w, err)
		return nil, meta, id, false
	}
	if _, ok := g.Entity(id); !ok {
		respondError(w, http.StatusNotFound, codeNotFound, "Entity not found", nil)
		return nil, meta, id, false
	}
	return g, meta, id, true
}

// Neighbors returns the direct or second degree neighbors of an entity.
func (h *Handler) Neighbors(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	degree, ok := getIntParam(r, "degree", 1)
	if !ok {
		invalidParam(w, "degree")
		return
	}
	req := NeighborsRequest{Degree: degree}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	g, meta, id, ok := h.lookupNode(w, r)
	if !ok {
		return
	}

	neighbors := g.Index.DirectNeighbors(id)
	if req.Degree == 2 {
		neighbors = g.Index.SecondDegreeNeighbors(id)
	}
	respondSuccess(w, start, meta, NeighborsResponse{ID: id, Degree: req.Degree, Neighbors: neighbors})
}

// Related returns the strongest connections of an entity.
func (h *Handler) Related(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, ok := getIntParam(r, "limit", 10)
	if !ok {
		invalidParam(w, "limit")
		return
	}
	req := RelatedRequest{Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	g, meta, id, ok := h.lookupNode(w, r)
	if !ok {
		return
	}
	respondSuccess(w, start, meta, RelatedResponse{ID: id, Related: g.Index.TopRelated(id, req.Limit)})
}

// Breakdown aggregates the connection reasons of an entity.
func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	g, meta, id, ok := h.lookupNode(w, r)
	if !ok {
		return
	}
	respondSuccess(w, start, meta, BreakdownResponse{ID: id, Breakdown: g.Index.ConnectionBreakdown(id)})
}

// Edge explains the connection between two entities.
func (h *Handler) Edge(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := EdgeRequest{A: r.URL.Query().Get("a"), B: r.URL.Query().Get("b")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	g, meta, err := h.engine.Graph(r.Context())
	if err != nil {
		respondEngineError(w, err)
		return
	}

	summary, ok := g.Index.EdgeData(req.A, req.B)
	if !ok {
		respondError(w, http.StatusNotFound, codeNotFound, "Entities are not connected", nil)
		return
	}
	respondSuccess(w, start, meta, EdgeResponse{A: req.A, B: req.B, EdgeSummary: summary})
}
