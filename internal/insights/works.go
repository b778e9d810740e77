// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package insights

import (
	"strings"
	"time"

	"github.com/tomtom215/stellarlog/internal/graph"
	"github.com/tomtom215/stellarlog/internal/models"
)

// work is a catalog record with normalized tag sets.
type work struct {
	id         string
	author     string
	tags       []string
	temporal   []string
	historical []string
	createdAt  time.Time
}

// allTags returns conceptual, temporal and legacy tags as one distinct list.
func (w *work) allTags() []string {
	return graph.NormalizeTags(w.tags, w.temporal, w.historical)
}

// contextTags returns temporal and legacy tags as one distinct list.
func (w *work) contextTags() []string {
	return graph.NormalizeTags(w.temporal, w.historical)
}

// normalizeWorks drops records without an id, keeps the first record of a
// repeated id and normalizes every tag list.
func normalizeWorks(records []models.CatalogRecord) []work {
	out := make([]work, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		r := &records[i]
		if !r.HasID() {
			continue
		}
		id := strings.TrimSpace(r.ID)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, work{
			id:         id,
			author:     r.KnownAuthor(),
			tags:       graph.NormalizeTags(r.Tags),
			temporal:   graph.NormalizeTags(r.TemporalContextTags),
			historical: graph.NormalizeTags(r.HistoricalContextTags),
			createdAt:  r.CreatedAt,
		})
	}
	return out
}

// intersect returns the values of a also present in b, in a's order. Both
// inputs are already normalized.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inB := make(map[string]struct{}, len(b))
	for _, t := range b {
		inB[t] = struct{}{}
	}
	var out []string
	for _, t := range a {
		if _, ok := inB[t]; ok {
			out = append(out, t)
		}
	}
	return out
}
