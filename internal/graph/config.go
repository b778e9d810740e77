// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package graph

import (
	"fmt"
)

// Config holds the scoring weights and the sparsification heuristics of the
// graph builder.
type Config struct {
	// MinConnectionScore is the inclusive score threshold for keeping a
	// book-to-book edge.
	// Default: 10.
	MinConnectionScore int `json:"min_connection_score" koanf:"min_connection_score"`

	// SameAuthorWeight is added when two books share a known author.
	// Default: 50.
	SameAuthorWeight int `json:"same_author_weight" koanf:"same_author_weight"`

	// ThemeWeight is added per shared conceptual tag, up to ThemeCap.
	// Default: 10 per tag, capped at 40.
	ThemeWeight int `json:"theme_weight" koanf:"theme_weight"`
	ThemeCap    int `json:"theme_cap" koanf:"theme_cap"`

	// SubgenreWeight is added per shared context tag, up to SubgenreCap.
	// Default: 15 per tag, capped at 45.
	SubgenreWeight int `json:"subgenre_weight" koanf:"subgenre_weight"`
	SubgenreCap    int `json:"subgenre_cap" koanf:"subgenre_cap"`

	// EraWeight is added when both books resolve to the same era and no
	// context tag was already shared.
	// Default: 5.
	EraWeight int `json:"era_weight" koanf:"era_weight"`

	// AuthorshipScore is the fixed score of author-to-book edges.
	// Default: 40.
	AuthorshipScore int `json:"authorship_score" koanf:"authorship_score"`

	// MembershipScore is the fixed score of protagonist-to-book edges.
	// Default: 35.
	MembershipScore int `json:"membership_score" koanf:"membership_score"`

	// AuthorMembershipScore is the fixed score of protagonist-to-author edges.
	// Default: 25.
	AuthorMembershipScore int `json:"author_membership_score" koanf:"author_membership_score"`

	// LargeGraphThreshold is the book count above which pairwise scoring is
	// replaced by bucketed candidate generation.
	// Default: 60.
	LargeGraphThreshold int `json:"large_graph_threshold" koanf:"large_graph_threshold"`

	// BucketWindow is how many members of each tag bucket are compared
	// pairwise when bucketing is active. Members beyond the window are only
	// reached through other buckets.
	// Default: 6.
	BucketWindow int `json:"bucket_window" koanf:"bucket_window"`

	// MaxVisibleConnections sizes the output: the builder keeps at most
	// twice this many edges.
	// Default: 80.
	MaxVisibleConnections int `json:"max_visible_connections" koanf:"max_visible_connections"`
}

// DefaultConfig returns the default graph configuration.
func DefaultConfig() Config {
	return Config{
		MinConnectionScore:    10,
		SameAuthorWeight:      50,
		ThemeWeight:           10,
		ThemeCap:              40,
		SubgenreWeight:        15,
		SubgenreCap:           45,
		EraWeight:             5,
		AuthorshipScore:       40,
		MembershipScore:       35,
		AuthorMembershipScore: 25,
		LargeGraphThreshold:   60,
		BucketWindow:          6,
		MaxVisibleConnections: 80,
	}
}

// EdgeLimit is the maximum number of edges the builder returns.
//
//nolint:gocritic // value receiver keeps Config usable as a plain value
func (c Config) EdgeLimit() int {
	return c.MaxVisibleConnections * 2
}

// Validate checks the configuration for consistency.
//
//nolint:gocritic // value receiver keeps Config usable as a plain value
func (c Config) Validate() error {
	nonNegative := []struct {
		name  string
		value int
	}{
		{"min_connection_score", c.MinConnectionScore},
		{"same_author_weight", c.SameAuthorWeight},
		{"theme_weight", c.ThemeWeight},
		{"subgenre_weight", c.SubgenreWeight},
		{"era_weight", c.EraWeight},
		{"authorship_score", c.AuthorshipScore},
		{"membership_score", c.MembershipScore},
		{"author_membership_score", c.AuthorMembershipScore},
		{"large_graph_threshold", c.LargeGraphThreshold},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", f.name, f.value)
		}
	}

	if c.ThemeCap < c.ThemeWeight {
		return fmt.Errorf("theme_cap must be at least theme_weight (%d), got %d", c.ThemeWeight, c.ThemeCap)
	}
	if c.SubgenreCap < c.SubgenreWeight {
		return fmt.Errorf("subgenre_cap must be at least subgenre_weight (%d), got %d", c.SubgenreWeight, c.SubgenreCap)
	}
	if c.BucketWindow < 2 {
		return fmt.Errorf("bucket_window must be at least 2, got %d", c.BucketWindow)
	}
	if c.MaxVisibleConnections < 1 {
		return fmt.Errorf("max_visible_connections must be positive, got %d", c.MaxVisibleConnections)
	}
	return nil
}
