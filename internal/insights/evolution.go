// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package insights

import (
	"sort"

	"github.com/tomtom215/stellarlog/internal/models"
	"github.com/tomtom215/stellarlog/internal/taxonomy"
)

// EraManifestation is one step of a theme's timeline.
type EraManifestation struct {
	Era           string   `json:"era"`
	BookIDs       []string `json:"bookIds"`
	Manifestation string   `json:"manifestation"`
}

// Evolution traces one conceptual theme across literary eras.
type Evolution struct {
	ConceptualTheme   string             `json:"conceptualTheme"`
	Timeline          []EraManifestation `json:"timeline"`
	EvolutionStrength float64            `json:"evolutionStrength"`
}

// Evolution buckets every work under each (conceptual tag, literary era)
// combination it carries and keeps the themes present in at least MinEras
// eras. Timelines follow the canonical era sequence. Results are sorted by
// strength, strongest first.
func (a *Analyzer) Evolution(records []models.CatalogRecord) []Evolution {
	works := normalizeWorks(records)
	cfg := a.cfg.Evolution

	var themes []string
	byTheme := make(map[string]map[string][]string)
	for i := range works {
		eras := taxonomy.LiteraryEras(works[i].contextTags())
		if len(eras) == 0 {
			continue
		}
		for _, theme := range works[i].tags {
			buckets, ok := byTheme[theme]
			if !ok {
				buckets = make(map[string][]string)
				byTheme[theme] = buckets
				themes = append(themes, theme)
			}
			for _, era := range eras {
				buckets[era] = append(buckets[era], works[i].id)
			}
		}
	}

	out := []Evolution{}
	for _, theme := range themes {
		buckets := byTheme[theme]
		if len(buckets) < cfg.MinEras {
			continue
		}

		eras := make([]string, 0, len(buckets))
		for era := range buckets {
			eras = append(eras, era)
		}
		sort.Slice(eras, func(i, j int) bool {
			ri, _ := taxonomy.EraRank(eras[i])
			rj, _ := taxonomy.EraRank(eras[j])
			return ri < rj
		})

		timeline := make([]EraManifestation, 0, len(eras))
		for _, era := range eras {
			timeline = append(timeline, EraManifestation{
				Era:           era,
				BookIDs:       buckets[era],
				Manifestation: theme + " in " + era,
			})
		}
		out = append(out, Evolution{
			ConceptualTheme:   theme,
			Timeline:          timeline,
			EvolutionStrength: float64(len(eras)) * cfg.EraMultiplier,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EvolutionStrength > out[j].EvolutionStrength
	})
	return out
}
