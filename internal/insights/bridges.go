// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/stellarlog/internal/models"
	"github.com/tomtom215/stellarlog/internal/taxonomy"
)

// BridgeType labels what a bridge crosses.
type BridgeType string

const (
	BridgeConceptual    BridgeType = "conceptual"
	BridgeTemporal      BridgeType = "temporal"
	BridgeHistorical    BridgeType = "historical"
	BridgeCrossTemporal BridgeType = "cross_temporal"
	BridgeCrossTaxonomy BridgeType = "cross_taxonomy"
	BridgeForce         BridgeType = "force"
	BridgeTech          BridgeType = "tech"
	BridgeEvolution     BridgeType = "evolution"
)

// BridgeScope selects which bridge analyses a query covers.
type BridgeScope string

const (
	BridgeScopeAll        BridgeScope = "all"
	BridgeScopeConceptual BridgeScope = "conceptual"
	BridgeScopeTemporal   BridgeScope = "temporal"
)

// Bridge is a connection between two works that cuts across taxonomies or
// eras. A pair may be joined by several bridges.
type Bridge struct {
	From        string     `json:"from"`
	To          string     `json:"to"`
	Type        BridgeType `json:"bridgeType"`
	Concept     string     `json:"bridgeConcept"`
	Description string     `json:"description"`
	Strength    float64    `json:"strength"`
}

// Bridges compares every pair of works and emits one bridge per shared tag
// in each taxonomy, plus compound bridges for pairs that overlap in both
// conceptual and temporal tags, or conceptual and legacy context tags.
// Pairs are never bucketed. The result is sorted by strength, strongest
// first.
func (a *Analyzer) Bridges(records []models.CatalogRecord) []Bridge {
	works := normalizeWorks(records)
	w := a.cfg.Bridges

	out := []Bridge{}
	for i := 0; i < len(works); i++ {
		for j := i + 1; j < len(works); j++ {
			x, y := &works[i], &works[j]

			conceptual := intersect(x.tags, y.tags)
			temporal := intersect(x.temporal, y.temporal)
			historical := intersect(x.historical, y.historical)

			for _, t := range conceptual {
				out = append(out, Bridge{x.id, y.id, BridgeConceptual, t,
					fmt.Sprintf("Both explore %s", t), w.Conceptual})
			}
			for _, t := range temporal {
				out = append(out, Bridge{x.id, y.id, BridgeTemporal, t,
					fmt.Sprintf("Both written against %s", t), w.Temporal})
			}
			for _, t := range historical {
				out = append(out, Bridge{x.id, y.id, BridgeHistorical, t,
					fmt.Sprintf("Both shaped by %s", t), w.Historical})
			}

			if len(conceptual) > 0 && len(temporal) > 0 {
				concept := conceptual[0] + " + " + temporal[0]
				out = append(out, Bridge{x.id, y.id, BridgeCrossTemporal, concept,
					fmt.Sprintf("%s seen through %s", conceptual[0], temporal[0]), w.CrossTemporal})
			}
			if len(conceptual) > 0 && len(historical) > 0 {
				concept := conceptual[0] + " + " + historical[0]
				out = append(out, Bridge{x.id, y.id, BridgeCrossTaxonomy, concept,
					fmt.Sprintf("%s linked with %s", conceptual[0], historical[0]), w.CrossTaxonomy})
			}
		}
	}
	sortBridges(out)
	return out
}

// TemporalBridges compares pairs of works from different literary eras and
// emits a bridge when they still share historical forces or technological
// contexts. Works whose era cannot be resolved are skipped. Pairs sharing
// both get an additional evolution bridge.
func (a *Analyzer) TemporalBridges(records []models.CatalogRecord) []Bridge {
	works := normalizeWorks(records)
	w := a.cfg.Bridges

	type profile struct {
		era    string
		forces []string
		tech   []string
	}
	profiles := make([]profile, len(works))
	for i := range works {
		ctx := works[i].contextTags()
		_, forces, tech := taxonomy.Split(ctx)
		profiles[i] = profile{era: taxonomy.FirstLiteraryEra(ctx), forces: forces, tech: tech}
	}

	out := []Bridge{}
	for i := 0; i < len(works); i++ {
		for j := i + 1; j < len(works); j++ {
			p, q := profiles[i], profiles[j]
			if p.era == "" || q.era == "" || p.era == q.era {
				continue
			}
			x, y := works[i].id, works[j].id
			span := p.era + " to " + q.era

			forces := intersect(p.forces, q.forces)
			tech := intersect(p.tech, q.tech)

			if len(forces) > 0 {
				out = append(out, Bridge{x, y, BridgeForce, strings.Join(forces, ", "),
					fmt.Sprintf("%s echoes from %s", strings.Join(forces, ", "), span), w.Force})
			}
			if len(tech) > 0 {
				out = append(out, Bridge{x, y, BridgeTech, strings.Join(tech, ", "),
					fmt.Sprintf("%s reimagined from %s", strings.Join(tech, ", "), span), w.Tech})
			}
			if len(forces) > 0 && len(tech) > 0 {
				concept := forces[0] + " + " + tech[0]
				out = append(out, Bridge{x, y, BridgeEvolution, concept,
					fmt.Sprintf("%s and %s evolve from %s", forces[0], tech[0], span), w.Evolution})
			}
		}
	}
	sortBridges(out)
	return out
}

// AllBridges merges the conceptual and temporal bridges into one list sorted
// by strength, strongest first.
func (a *Analyzer) AllBridges(records []models.CatalogRecord) []Bridge {
	out := a.Bridges(records)
	out = append(out, a.TemporalBridges(records)...)
	sortBridges(out)
	return out
}

func sortBridges(b []Bridge) {
	sort.SliceStable(b, func(i, j int) bool {
		return b[i].Strength > b[j].Strength
	})
}
