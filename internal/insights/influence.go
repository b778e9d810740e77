// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package insights

import (
	"sort"
	"strings"

	"github.com/tomtom215/stellarlog/internal/graph"
	"github.com/tomtom215/stellarlog/internal/models"
)

// fallbackInfluenceLabel names a link when no overlap term is available.
const fallbackInfluenceLabel = "Shared themes"

// InfluenceLink is one weighted, labeled connection to another author.
type InfluenceLink struct {
	TargetAuthor   string  `json:"targetAuthor"`
	Strength       float64 `json:"strength"`
	ConceptualLink string  `json:"conceptualLink"`
}

// Influence lists the strongest links from one author.
type Influence struct {
	Author     string          `json:"author"`
	Influences []InfluenceLink `json:"influences"`
}

// Influence builds the author influence network. Each author's works are
// pooled into a set of conceptual tags and a set of legacy context tags; the
// link to every other author is weighted by the size of both overlaps. Each
// author keeps its TopN strongest links. Authors without links are omitted.
// Authors appear in first-seen order.
func (a *Analyzer) Influence(records []models.CatalogRecord) []Influence {
	works := normalizeWorks(records)
	cfg := a.cfg.Influence

	type pool struct {
		name       string
		conceptual [][]string
		context    [][]string
	}
	var order []string
	pools := make(map[string]*pool)
	for i := range works {
		if works[i].author == "" {
			continue
		}
		key := strings.ToLower(works[i].author)
		p, ok := pools[key]
		if !ok {
			p = &pool{name: works[i].author}
			pools[key] = p
			order = append(order, key)
		}
		p.conceptual = append(p.conceptual, works[i].tags)
		p.context = append(p.context, works[i].historical)
	}

	type tagSets struct {
		name       string
		conceptual []string
		context    []string
	}
	authors := make([]tagSets, len(order))
	for i, key := range order {
		p := pools[key]
		authors[i] = tagSets{
			name:       p.name,
			conceptual: graph.NormalizeTags(p.conceptual...),
			context:    graph.NormalizeTags(p.context...),
		}
	}

	out := []Influence{}
	for i := range authors {
		var links []InfluenceLink
		for j := range authors {
			if i == j {
				continue
			}
			conceptual := intersect(authors[i].conceptual, authors[j].conceptual)
			context := intersect(authors[i].context, authors[j].context)
			weight := float64(len(conceptual))*cfg.ConceptualWeight + float64(len(context))*cfg.ContextWeight
			if weight <= 0 {
				continue
			}
			links = append(links, InfluenceLink{
				TargetAuthor:   authors[j].name,
				Strength:       weight,
				ConceptualLink: influenceLabel(conceptual, context),
			})
		}
		if len(links) == 0 {
			continue
		}
		sort.SliceStable(links, func(x, y int) bool {
			return links[x].Strength > links[y].Strength
		})
		if len(links) > cfg.TopN {
			links = links[:cfg.TopN]
		}
		out = append(out, Influence{Author: authors[i].name, Influences: links})
	}
	return out
}

// influenceLabel joins the first conceptual and first context overlap.
func influenceLabel(conceptual, context []string) string {
	var parts []string
	if len(conceptual) > 0 {
		parts = append(parts, conceptual[0])
	}
	if len(context) > 0 {
		parts = append(parts, context[0])
	}
	if len(parts) == 0 {
		return fallbackInfluenceLabel
	}
	return strings.Join(parts, " + ")
}
