// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package graph

import (
	"sort"
)

// EdgeSummary is what the index remembers about one connected pair.
type EdgeSummary struct {
	Type            EdgeType `json:"type"`
	Score           int      `json:"score"`
	Reasons         []Reason `json:"reasons"`
	SharedTags      []string `json:"sharedTags"`
	SharedThemes    []string `json:"sharedThemes,omitempty"`
	SharedSubgenres []string `json:"sharedSubgenres,omitempty"`
	SharedEra       string   `json:"sharedEra,omitempty"`
}

// Related is a ranked direct neighbor.
type Related struct {
	ID      string   `json:"id"`
	Score   int      `json:"score"`
	Reasons []Reason `json:"reasons"`
}

// Breakdown aggregates the connections of one entity.
type Breakdown struct {
	SameAuthor       int      `json:"sameAuthor"`
	SharedThemes     []string `json:"sharedThemes"`
	SharedSubgenres  []string `json:"sharedSubgenres"`
	SharedEras       []string `json:"sharedEras"`
	TotalConnections int      `json:"totalConnections"`
}

// Index answers neighbor and explanation queries over a built edge list.
// It is immutable after construction and safe for concurrent reads.
type Index struct {
	neighbors map[string][]string
	pairs     map[string]EdgeSummary
	edgeCount int
}

// NewIndex builds the adjacency maps for edges. Self-loops are ignored and,
// if a pair appears more than once, the higher score is kept.
func NewIndex(edges []Edge) *Index {
	idx := &Index{
		neighbors: make(map[string][]string),
		pairs:     make(map[string]EdgeSummary, len(edges)),
	}

	for i := range edges {
		e := &edges[i]
		if e.From == e.To {
			continue
		}
		key := e.Key()
		summary := EdgeSummary{
			Type:            e.Type,
			Score:           e.Score,
			Reasons:         e.Reasons,
			SharedTags:      e.SharedTags,
			SharedThemes:    e.SharedThemes,
			SharedSubgenres: e.SharedSubgenres,
			SharedEra:       e.SharedEra,
		}
		if cur, ok := idx.pairs[key]; ok {
			if summary.Score > cur.Score {
				idx.pairs[key] = summary
			}
			continue
		}
		idx.pairs[key] = summary
		idx.neighbors[e.From] = append(idx.neighbors[e.From], e.To)
		idx.neighbors[e.To] = append(idx.neighbors[e.To], e.From)
	}
	idx.edgeCount = len(idx.pairs)
	return idx
}

// EdgeCount returns the number of distinct pairs in the index.
func (idx *Index) EdgeCount() int {
	return idx.edgeCount
}

// Degree returns the number of direct neighbors of id.
func (idx *Index) Degree(id string) int {
	return len(idx.neighbors[id])
}

// DirectNeighbors returns the ids connected to id. The slice is a copy and
// is empty, never nil, when id has no edges.
func (idx *Index) DirectNeighbors(id string) []string {
	return append([]string{}, idx.neighbors[id]...)
}

// SecondDegreeNeighbors returns the ids exactly two hops from id: reachable
// through a neighbor but neither id itself nor one of its direct neighbors.
func (idx *Index) SecondDegreeNeighbors(id string) []string {
	direct := idx.neighbors[id]
	exclude := make(map[string]struct{}, len(direct)+1)
	exclude[id] = struct{}{}
	for _, n := range direct {
		exclude[n] = struct{}{}
	}

	out := []string{}
	for _, n := range direct {
		for _, m := range idx.neighbors[n] {
			if _, skip := exclude[m]; skip {
				continue
			}
			exclude[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}

// EdgeData returns the stored summary for the pair (a, b) in either order.
func (idx *Index) EdgeData(a, b string) (EdgeSummary, bool) {
	s, ok := idx.pairs[PairKey(a, b)]
	return s, ok
}

// TopRelated returns the direct neighbors of id ranked by edge score, highest
// first, ties broken by id. A non-positive limit returns every neighbor.
func (idx *Index) TopRelated(id string, limit int) []Related {
	direct := idx.neighbors[id]
	out := make([]Related, 0, len(direct))
	for _, n := range direct {
		s := idx.pairs[PairKey(id, n)]
		out = append(out, Related{ID: n, Score: s.Score, Reasons: s.Reasons})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ConnectionBreakdown aggregates the reasons behind every connection of id.
func (idx *Index) ConnectionBreakdown(id string) Breakdown {
	bd := Breakdown{
		SharedThemes:    []string{},
		SharedSubgenres: []string{},
		SharedEras:      []string{},
	}
	themes := make(map[string]struct{})
	subgenres := make(map[string]struct{})
	eras := make(map[string]struct{})

	for _, n := range idx.neighbors[id] {
		s := idx.pairs[PairKey(id, n)]
		bd.TotalConnections++
		if HasReason(s.Reasons, ReasonSameAuthor) {
			bd.SameAuthor++
		}
		if HasReason(s.Reasons, ReasonSharedTheme) {
			bd.SharedThemes = appendUnique(bd.SharedThemes, themes, s.SharedThemes...)
		}
		if HasReason(s.Reasons, ReasonSharedSubgenre) {
			bd.SharedSubgenres = appendUnique(bd.SharedSubgenres, subgenres, s.SharedSubgenres...)
		}
		if HasReason(s.Reasons, ReasonSharedEra) && s.SharedEra != "" {
			bd.SharedEras = appendUnique(bd.SharedEras, eras, s.SharedEra)
		}
	}
	return bd
}

func appendUnique(dst []string, seen map[string]struct{}, values ...string) []string {
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}
