// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package insights

import (
	"fmt"
)

// Config holds the weights and windows of every analysis.
type Config struct {
	Bridges   BridgeConfig    `json:"bridges" koanf:"bridges"`
	Velocity  VelocityConfig  `json:"velocity" koanf:"velocity"`
	Influence InfluenceConfig `json:"influence" koanf:"influence"`
	Evolution EvolutionConfig `json:"evolution" koanf:"evolution"`

	// MinClusterSize drops clusters with fewer members.
	// Default: 2.
	MinClusterSize int `json:"min_cluster_size" koanf:"min_cluster_size"`
}

// BridgeConfig weights each bridge type.
type BridgeConfig struct {
	Conceptual    float64 `json:"conceptual" koanf:"conceptual"`
	Temporal      float64 `json:"temporal" koanf:"temporal"`
	Historical    float64 `json:"historical" koanf:"historical"`
	CrossTemporal float64 `json:"cross_temporal" koanf:"cross_temporal"`
	CrossTaxonomy float64 `json:"cross_taxonomy" koanf:"cross_taxonomy"`
	Force         float64 `json:"force" koanf:"force"`
	Tech          float64 `json:"tech" koanf:"tech"`
	Evolution     float64 `json:"evolution" koanf:"evolution"`
}

// VelocityConfig controls reading velocity and trend detection.
type VelocityConfig struct {
	// WindowMonths is the trailing window measured back from now.
	// Default: 6.
	WindowMonths int `json:"window_months" koanf:"window_months"`

	// MinOccurrences drops rarer tags.
	// Default: 2.
	MinOccurrences int `json:"min_occurrences" koanf:"min_occurrences"`

	// AcceleratingFactor and SlowingFactor compare the second half of the
	// window against the first.
	// Default: 1.2 and 0.8.
	AcceleratingFactor float64 `json:"accelerating_factor" koanf:"accelerating_factor"`
	SlowingFactor      float64 `json:"slowing_factor" koanf:"slowing_factor"`
}

// InfluenceConfig controls the author influence network.
type InfluenceConfig struct {
	ConceptualWeight float64 `json:"conceptual_weight" koanf:"conceptual_weight"`
	ContextWeight    float64 `json:"context_weight" koanf:"context_weight"`

	// TopN is how many outgoing links each author keeps.
	// Default: 5.
	TopN int `json:"top_n" koanf:"top_n"`
}

// EvolutionConfig controls theme evolution tracking.
type EvolutionConfig struct {
	// MinEras drops themes seen in fewer eras.
	// Default: 2.
	MinEras int `json:"min_eras" koanf:"min_eras"`

	// EraMultiplier scales the era count into the evolution strength.
	// Default: 1.5.
	EraMultiplier float64 `json:"era_multiplier" koanf:"era_multiplier"`
}

// DefaultConfig returns the default analysis configuration.
func DefaultConfig() Config {
	return Config{
		Bridges: BridgeConfig{
			Conceptual:    2.0,
			Temporal:      1.8,
			Historical:    1.5,
			CrossTemporal: 3.5,
			CrossTaxonomy: 3.0,
			Force:         2.5,
			Tech:          2.5,
			Evolution:     3.0,
		},
		Velocity: VelocityConfig{
			WindowMonths:       6,
			MinOccurrences:     2,
			AcceleratingFactor: 1.2,
			SlowingFactor:      0.8,
		},
		Influence: InfluenceConfig{
			ConceptualWeight: 2.0,
			ContextWeight:    1.5,
			TopN:             5,
		},
		Evolution: EvolutionConfig{
			MinEras:       2,
			EraMultiplier: 1.5,
		},
		MinClusterSize: 2,
	}
}

// Validate checks the configuration for consistency.
//
//nolint:gocritic // value receiver keeps Config usable as a plain value
func (c Config) Validate() error {
	weights := map[string]float64{
		"bridges.conceptual":          c.Bridges.Conceptual,
		"bridges.temporal":            c.Bridges.Temporal,
		"bridges.historical":          c.Bridges.Historical,
		"bridges.cross_temporal":      c.Bridges.CrossTemporal,
		"bridges.cross_taxonomy":      c.Bridges.CrossTaxonomy,
		"bridges.force":               c.Bridges.Force,
		"bridges.tech":                c.Bridges.Tech,
		"bridges.evolution":           c.Bridges.Evolution,
		"influence.conceptual_weight": c.Influence.ConceptualWeight,
		"influence.context_weight":    c.Influence.ContextWeight,
		"evolution.era_multiplier":    c.Evolution.EraMultiplier,
	}
	for name, w := range weights {
		if w < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", name, w)
		}
	}

	if c.Velocity.WindowMonths < 1 {
		return fmt.Errorf("velocity.window_months must be positive, got %d", c.Velocity.WindowMonths)
	}
	if c.Velocity.MinOccurrences < 1 {
		return fmt.Errorf("velocity.min_occurrences must be positive, got %d", c.Velocity.MinOccurrences)
	}
	if c.Velocity.SlowingFactor <= 0 || c.Velocity.SlowingFactor > c.Velocity.AcceleratingFactor {
		return fmt.Errorf("velocity.slowing_factor must be in (0, accelerating_factor], got %f", c.Velocity.SlowingFactor)
	}
	if c.Influence.TopN < 1 {
		return fmt.Errorf("influence.top_n must be positive, got %d", c.Influence.TopN)
	}
	if c.Evolution.MinEras < 1 {
		return fmt.Errorf("evolution.min_eras must be positive, got %d", c.Evolution.MinEras)
	}
	if c.MinClusterSize < 2 {
		return fmt.Errorf("min_cluster_size must be at least 2, got %d", c.MinClusterSize)
	}
	return nil
}
