// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/stellarlog/internal/graph"
	"github.com/tomtom215/stellarlog/internal/insights"
	"github.com/tomtom215/stellarlog/internal/metrics"
)

// Result components, used as memo keys and metric labels.
const (
	componentGraph     = "graph"
	componentClusters  = "clusters"
	componentBridges   = "bridges"
	componentVelocity  = "velocity"
	componentInfluence = "influence"
	componentEvolution = "evolution"
)

// GraphResult is the built graph of one snapshot. It is shared between
// callers and must be treated as read-only.
type GraphResult struct {
	Entities []graph.Entity `json:"entities"`
	Edges    []graph.Edge   `json:"edges"`
	Stats    graph.Stats    `json:"stats"`

	Index *graph.Index `json:"-"`

	byID map[string]int
}

// Entity returns the entity with id.
func (g *GraphResult) Entity(id string) (graph.Entity, bool) {
	i, ok := g.byID[id]
	if !ok {
		return graph.Entity{}, false
	}
	return g.Entities[i], true
}

// Graph returns the entity graph of the active snapshot.
func (e *Engine) Graph(ctx context.Context) (*GraphResult, Meta, error) {
	return memo(ctx, e, componentGraph, componentGraph, e.buildGraph)
}

func (e *Engine) buildGraph(s *Snapshot) *GraphResult {
	entities := graph.BuildEntities(s.Records, s.Profiles)
	edges := e.builder.Build(entities)

	books := 0
	byID := make(map[string]int, len(entities))
	for i := range entities {
		byID[entities[i].ID] = i
		if entities[i].NodeType == graph.NodeBook {
			books++
		}
	}

	res := &GraphResult{
		Entities: entities,
		Edges:    edges,
		Stats:    graph.Summarize(entities, edges, e.builder.Bucketed(books)),
		Index:    graph.NewIndex(edges),
		byID:     byID,
	}
	recordShape(res.Stats)
	return res
}

func recordShape(st graph.Stats) {
	entities := map[string]int{
		string(graph.NodeBook):        st.Books,
		string(graph.NodeAuthor):      st.Authors,
		string(graph.NodeProtagonist): st.Protagonists,
	}
	edges := make(map[string]int, len(st.EdgesByType))
	for t, n := range st.EdgesByType {
		edges[string(t)] = n
	}
	metrics.RecordGraphShape(entities, edges, st.Bucketed)
}

// Clusters returns thematic or temporal clusters.
func (e *Engine) Clusters(ctx context.Context, kind insights.ClusterKind) ([]insights.Cluster, Meta, error) {
	switch kind {
	case insights.ClusterThematic:
		return memo(ctx, e, componentClusters, "clusters:thematic", func(s *Snapshot) []insights.Cluster {
			return e.analyzer.ThematicClusters(s.Records)
		})
	case insights.ClusterTemporal:
		return memo(ctx, e, componentClusters, "clusters:temporal", func(s *Snapshot) []insights.Cluster {
			return e.analyzer.TemporalClusters(s.Records)
		})
	default:
		return nil, Meta{}, fmt.Errorf("unknown cluster kind %q", kind)
	}
}

// Bridges returns the bridges in scope: conceptual, temporal, or both merged
// and sorted by strength.
func (e *Engine) Bridges(ctx context.Context, scope insights.BridgeScope) ([]insights.Bridge, Meta, error) {
	switch scope {
	case insights.BridgeScopeAll:
		return memo(ctx, e, componentBridges, "bridges:all", func(s *Snapshot) []insights.Bridge {
			return e.analyzer.AllBridges(s.Records)
		})
	case insights.BridgeScopeConceptual:
		return memo(ctx, e, componentBridges, "bridges:conceptual", func(s *Snapshot) []insights.Bridge {
			return e.analyzer.Bridges(s.Records)
		})
	case insights.BridgeScopeTemporal:
		return memo(ctx, e, componentBridges, "bridges:temporal", func(s *Snapshot) []insights.Bridge {
			return e.analyzer.TemporalBridges(s.Records)
		})
	default:
		return nil, Meta{}, fmt.Errorf("unknown bridge scope %q", scope)
	}
}

// Velocity returns per-theme reading velocity. The result is memoized per
// UTC hour and the trailing window is anchored to the start of that hour, so
// every caller within the hour sees the same window.
func (e *Engine) Velocity(ctx context.Context) ([]insights.Velocity, Meta, error) {
	anchor := e.clock().UTC().Truncate(time.Hour)
	key := "velocity:" + anchor.Format("2006-01-02T15")
	return memo(ctx, e, componentVelocity, key, func(s *Snapshot) []insights.Velocity {
		return e.analyzer.Velocity(s.Records, anchor)
	})
}

// Influence returns per-author influence links.
func (e *Engine) Influence(ctx context.Context) ([]insights.Influence, Meta, error) {
	return memo(ctx, e, componentInfluence, componentInfluence, func(s *Snapshot) []insights.Influence {
		return e.analyzer.Influence(s.Records)
	})
}

// Evolution returns concept timelines across literary eras.
func (e *Engine) Evolution(ctx context.Context) ([]insights.Evolution, Meta, error) {
	return memo(ctx, e, componentEvolution, componentEvolution, func(s *Snapshot) []insights.Evolution {
		return e.analyzer.Evolution(s.Records)
	})
}
