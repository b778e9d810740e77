// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/stellarlog/internal/catalog"
	"github.com/tomtom215/stellarlog/internal/engine"
	"github.com/tomtom215/stellarlog/internal/graph"
	"github.com/tomtom215/stellarlog/internal/insights"
)

// Report is everything analyze prints.
type Report struct {
	Version          string               `json:"version"`
	Records          int                  `json:"records"`
	Dropped          int                  `json:"dropped"`
	Stats            graph.Stats          `json:"stats"`
	ThematicClusters []insights.Cluster   `json:"thematicClusters"`
	TemporalClusters []insights.Cluster   `json:"temporalClusters"`
	Bridges          []insights.Bridge    `json:"bridges"`
	TemporalBridges  []insights.Bridge    `json:"temporalBridges"`
	Velocity         []insights.Velocity  `json:"velocity"`
	Influence        []insights.Influence `json:"influence"`
	Evolution        []insights.Evolution `json:"evolution"`
	Edges            []graph.Edge         `json:"edges,omitempty"`
}

func newAnalyzeCmd() *cobra.Command {
	var withEdges bool

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Print graph stats and insights for a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			res, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			eng := engine.New(engine.Options{Graph: cfg.Graph, Insights: cfg.Insights})
			if err := eng.ApplyCatalog(cmd.Context(), res); err != nil {
				return err
			}
			report, err := analyze(cmd.Context(), eng, withEdges)
			if err != nil {
				return err
			}
			report.Dropped = res.Dropped
			return writeReport(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().BoolVar(&withEdges, "edges", false, "include the full edge list")
	return cmd
}

// analyze runs every query against the engine's active snapshot.
func analyze(ctx context.Context, eng *engine.Engine, withEdges bool) (*Report, error) {
	g, meta, err := eng.Graph(ctx)
	if err != nil {
		return nil, err
	}
	st, err := eng.Status()
	if err != nil {
		return nil, err
	}

	r := &Report{Version: meta.Version, Records: st.Records, Stats: g.Stats}
	if withEdges {
		r.Edges = g.Edges
	}

	if r.ThematicClusters, _, err = eng.Clusters(ctx, insights.ClusterThematic); err != nil {
		return nil, err
	}
	if r.TemporalClusters, _, err = eng.Clusters(ctx, insights.ClusterTemporal); err != nil {
		return nil, err
	}
	if r.Bridges, _, err = eng.Bridges(ctx, insights.BridgeScopeConceptual); err != nil {
		return nil, err
	}
	if r.TemporalBridges, _, err = eng.Bridges(ctx, insights.BridgeScopeTemporal); err != nil {
		return nil, err
	}
	if r.Velocity, _, err = eng.Velocity(ctx); err != nil {
		return nil, err
	}
	if r.Influence, _, err = eng.Influence(ctx); err != nil {
		return nil, err
	}
	if r.Evolution, _, err = eng.Evolution(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func writeReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
