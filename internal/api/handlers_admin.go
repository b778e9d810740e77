// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package api

import (
	"errors"
	"mime"
	"net/http"
	"sort"
	"time"

	"github.com/tomtom215/stellarlog/internal/catalog"
	"github.com/tomtom215/stellarlog/internal/engine"
	"github.com/tomtom215/stellarlog/internal/graph"
	"github.com/tomtom215/stellarlog/internal/logging"
	"github.com/tomtom215/stellarlog/internal/models"
)

// CatalogUpdateResponse reports the outcome of a catalog replacement.
type CatalogUpdateResponse struct {
	Version   string         `json:"version"`
	Records   int            `json:"records"`
	Authors   int            `json:"authors"`
	Dropped   int            `json:"dropped"`
	DroppedBy map[string]int `json:"dropped_by,omitempty"`
}

// RebuildResponse reports the graph produced by an administrative rebuild.
type RebuildResponse struct {
	Version string      `json:"version"`
	Stats   graph.Stats `json:"stats"`
}

// requestFormat picks the catalog encoding from ?format= or Content-Type.
// JSON is the default.
func requestFormat(r *http.Request) (catalog.Format, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return catalog.ParseFormat(f)
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return catalog.FormatJSON, nil
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return catalog.FormatYAML, nil
	default:
		return catalog.FormatJSON, nil
	}
}

// ReplaceCatalog replaces the active snapshot with the posted document.
func (h *Handler) ReplaceCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	format, err := requestFormat(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	res, err := catalog.Load(body, format)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, codeValidation, "Catalog exceeds the size limit", nil)
			return
		}
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid catalog document", err)
		return
	}

	if err := h.engine.ApplyCatalog(r.Context(), res); err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to apply catalog", err)
		return
	}

	snap, err := h.engine.Snapshot()
	if err != nil {
		respondEngineError(w, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("version", snap.Version()).Int("records", len(res.Records)).Int("dropped", res.Dropped).Msg("Catalog replaced via API")

	respondSuccess(w, start, engine.Meta{Version: snap.Version()}, CatalogUpdateResponse{
		Version:   snap.Version(),
		Records:   len(res.Records),
		Authors:   len(snap.Profiles),
		Dropped:   res.Dropped,
		DroppedBy: res.DroppedBy,
	})
}

// ExportCatalog writes the active snapshot as a catalog document.
func (h *Handler) ExportCatalog(w http.ResponseWriter, r *http.Request) {
	format := catalog.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := catalog.ParseFormat(f)
		if err != nil {
			respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
			return
		}
		format = parsed
	}

	snap, err := h.engine.Snapshot()
	if err != nil {
		respondEngineError(w, err)
		return
	}

	authors := make([]models.AuthorProfile, 0, len(snap.Profiles))
	for _, p := range snap.Profiles {
		authors = append(authors, p)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].Name < authors[j].Name })

	if format == catalog.FormatYAML {
		w.Header().Set("Content-Type", "application/yaml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set("X-Snapshot-Version", snap.Version())

	doc := &catalog.Document{Records: snap.Records, Authors: authors}
	if err := catalog.Encode(w, format, doc); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to export catalog")
	}
}

// Rebuild drops memoized results, re-resolves author profiles and rebuilds
// the graph.
func (h *Handler) Rebuild(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	g, meta, err := h.engine.Rebuild(r.Context())
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondSuccess(w, start, meta, RebuildResponse{Version: meta.Version, Stats: g.Stats})
}
