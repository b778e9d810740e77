// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package graph

// FilterOptions narrows an edge list for display.
type FilterOptions struct {
	// Types keeps only edges of these types. Empty keeps all types.
	Types []EdgeType

	// MinScore drops edges scoring below it.
	MinScore int
}

// Filter returns the edges matching opts, preserving order.
func Filter(edges []Edge, opts FilterOptions) []Edge {
	allowed := make(map[EdgeType]struct{}, len(opts.Types))
	for _, t := range opts.Types {
		allowed[t] = struct{}{}
	}

	out := make([]Edge, 0, len(edges))
	for i := range edges {
		if edges[i].Score < opts.MinScore {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[edges[i].Type]; !ok {
				continue
			}
		}
		out = append(out, edges[i])
	}
	return out
}

// Stats summarizes a built graph.
type Stats struct {
	Books        int              `json:"books"`
	Authors      int              `json:"authors"`
	Protagonists int              `json:"protagonists"`
	Edges        int              `json:"edges"`
	EdgesByType  map[EdgeType]int `json:"edgesByType"`
	Bucketed     bool             `json:"bucketed"`
}

// Summarize counts entities by variant and edges by type.
func Summarize(entities []Entity, edges []Edge, bucketed bool) Stats {
	st := Stats{
		Edges:       len(edges),
		EdgesByType: make(map[EdgeType]int),
		Bucketed:    bucketed,
	}
	for i := range entities {
		switch entities[i].NodeType {
		case NodeBook:
			st.Books++
		case NodeAuthor:
			st.Authors++
		case NodeProtagonist:
			st.Protagonists++
		}
	}
	for i := range edges {
		st.EdgesByType[edges[i].Type]++
	}
	return st
}
