// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package insights

import (
	"sort"

	"github.com/tomtom215/stellarlog/internal/graph"
	"github.com/tomtom215/stellarlog/internal/models"
	"github.com/tomtom215/stellarlog/internal/taxonomy"
)

// ClusterKind distinguishes the two cluster variants.
type ClusterKind string

const (
	ClusterThematic ClusterKind = "thematic"
	ClusterTemporal ClusterKind = "temporal"
)

// Cluster groups the works sharing one tag value.
type Cluster struct {
	ID       string      `json:"id"`
	Kind     ClusterKind `json:"kind"`
	Theme    string      `json:"theme"`
	Books    []string    `json:"books"`
	Strength int         `json:"strength"`

	// Populated for temporal clusters: the members' temporal tags split by
	// vocabulary.
	HistoricalForces     []string `json:"historicalForces,omitempty"`
	TechnologicalContext []string `json:"technologicalContext,omitempty"`
}

// ThematicClusters groups works by every conceptual, temporal and legacy
// context tag they carry.
func (a *Analyzer) ThematicClusters(records []models.CatalogRecord) []Cluster {
	return a.clusters(normalizeWorks(records), ClusterThematic, (*work).allTags)
}

// TemporalClusters groups works by temporal context tag only, attaching the
// historical forces and technological contexts found among the members.
func (a *Analyzer) TemporalClusters(records []models.CatalogRecord) []Cluster {
	works := normalizeWorks(records)
	clusters := a.clusters(works, ClusterTemporal, func(w *work) []string { return w.temporal })

	byID := make(map[string]*work, len(works))
	for i := range works {
		byID[works[i].id] = &works[i]
	}
	for i := range clusters {
		var memberTags [][]string
		for _, id := range clusters[i].Books {
			memberTags = append(memberTags, byID[id].temporal)
		}
		_, forces, tech := taxonomy.Split(graph.NormalizeTags(memberTags...))
		clusters[i].HistoricalForces = forces
		clusters[i].TechnologicalContext = tech
	}
	return clusters
}

func (a *Analyzer) clusters(works []work, kind ClusterKind, tagsOf func(*work) []string) []Cluster {
	var order []string
	members := make(map[string][]string)
	for i := range works {
		for _, t := range tagsOf(&works[i]) {
			if _, ok := members[t]; !ok {
				order = append(order, t)
			}
			members[t] = append(members[t], works[i].id)
		}
	}

	out := make([]Cluster, 0, len(order))
	for _, t := range order {
		books := members[t]
		if len(books) < a.cfg.MinClusterSize {
			continue
		}
		out = append(out, Cluster{
			ID:       string(kind) + ":" + t,
			Kind:     kind,
			Theme:    t,
			Books:    books,
			Strength: len(books),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Strength > out[j].Strength
	})
	return out
}
