// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package graph

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/tomtom215/stellarlog/internal/models"
)

func TestBuilder_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		books       []Entity
		wantEdges   int
		wantScore   int
		wantReasons []Reason
		wantShared  []string
		wantType    EdgeType
	}{
		{
			name: "same author",
			books: []Entity{
				book("b1", "X", []string{"AI"}, nil),
				book("b2", "X", []string{"Robots"}, nil),
			},
			wantEdges:   1,
			wantScore:   50,
			wantReasons: []Reason{ReasonSameAuthor},
			wantShared:  []string{},
			wantType:    EdgeAuthor,
		},
		{
			name: "one shared theme",
			books: []Entity{
				book("b1", "X", []string{"AI", "Space"}, nil),
				book("b2", "Y", []string{"AI"}, nil),
			},
			wantEdges:   1,
			wantScore:   10,
			wantReasons: []Reason{ReasonSharedTheme},
			wantShared:  []string{"AI"},
			wantType:    EdgeTheme,
		},
		{
			name: "one shared context tag",
			books: []Entity{
				book("b1", "X", nil, []string{"Space Race"}),
				book("b2", "Y", nil, []string{"Space Race"}),
			},
			wantEdges:   1,
			wantScore:   15,
			wantReasons: []Reason{ReasonSharedSubgenre},
			wantShared:  []string{"Space Race"},
			wantType:    EdgeTheme,
		},
		{
			name: "shared era only",
			books: []Entity{
				book("b1", "X", nil, []string{"Atomic Age (1950s)"}),
				book("b2", "Y", nil, []string{"Atomic Age (1950s)"}),
			},
			wantEdges: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			edges := NewBuilder(DefaultConfig()).Build(tt.books)
			if len(edges) != tt.wantEdges {
				t.Fatalf("len(edges) = %d, want %d", len(edges), tt.wantEdges)
			}
			if tt.wantEdges == 0 {
				return
			}
			e := edges[0]
			if e.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", e.Score, tt.wantScore)
			}
			if !reflect.DeepEqual(e.Reasons, tt.wantReasons) {
				t.Errorf("Reasons = %v, want %v", e.Reasons, tt.wantReasons)
			}
			if !reflect.DeepEqual(e.SharedTags, tt.wantShared) {
				t.Errorf("SharedTags = %v, want %v", e.SharedTags, tt.wantShared)
			}
			if e.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", e.Type, tt.wantType)
			}
		})
	}
}

func TestBuilder_EmptyAndSingle(t *testing.T) {
	t.Parallel()

	b := NewBuilder(Config{})
	if got := b.Build(nil); got == nil || len(got) != 0 {
		t.Errorf("Build(nil) = %v, want empty non-nil", got)
	}
	if got := b.Build([]Entity{book("b1", "X", []string{"AI"}, nil)}); len(got) != 0 {
		t.Errorf("Build(single) = %v, want empty", got)
	}
	missing := []Entity{book("", "X", []string{"AI"}, nil), book("b2", "X", []string{"AI"}, nil)}
	if got := b.Build(missing); len(got) != 0 {
		t.Errorf("Build(missing id) = %v, want empty", got)
	}
}

func TestBuilder_StructuralEdges(t *testing.T) {
	t.Parallel()

	records := []models.CatalogRecord{
		{ID: "r1", Title: "Neuromancer", Author: "William Gibson", Tags: []string{"AI"}, Protagonist: "Case"},
		{ID: "r2", Title: "Count Zero", Author: "william gibson", Tags: []string{"AI"}},
		{ID: "r3", Title: "Lost", Author: "Unknown Author", Protagonist: "Nobody"},
	}
	entities := BuildEntities(records, nil)
	edges := NewBuilder(DefaultConfig()).Build(entities)
	idx := NewIndex(edges)

	authorID := AuthorEntityID("William Gibson")
	caseID := ProtagonistEntityID("Case")
	nobodyID := ProtagonistEntityID("Nobody")

	checks := []struct {
		a, b     string
		wantType EdgeType
		score    int
		reason   Reason
	}{
		{authorID, "r1", EdgeAuthorship, 40, ReasonWrote},
		{authorID, "r2", EdgeAuthorship, 40, ReasonWrote},
		{caseID, "r1", EdgeMembership, 35, ReasonAppearsIn},
		{caseID, authorID, EdgeMembership, 25, ReasonAuthoredBy},
		{nobodyID, "r3", EdgeMembership, 35, ReasonAppearsIn},
		{"r1", "r2", EdgeAuthor, 60, ReasonSameAuthor},
	}
	for _, c := range checks {
		got, ok := idx.EdgeData(c.a, c.b)
		if !ok {
			t.Errorf("EdgeData(%s, %s) missing", c.a, c.b)
			continue
		}
		if got.Type != c.wantType || got.Score != c.score || got.Reasons[0] != c.reason {
			t.Errorf("EdgeData(%s, %s) = %+v, want type %s score %d reason %s", c.a, c.b, got, c.wantType, c.score, c.reason)
		}
	}

	if idx.Degree(nobodyID) != 1 {
		t.Errorf("Degree(%s) = %d, want 1 (no author edge for unknown author)", nobodyID, idx.Degree(nobodyID))
	}
	if len(edges) != 6 {
		t.Errorf("len(edges) = %d, want 6", len(edges))
	}
	if edges[0].Score != 60 {
		t.Errorf("edges[0].Score = %d, want highest score first", edges[0].Score)
	}
}

func TestBuilder_NoDuplicatePairs(t *testing.T) {
	t.Parallel()

	var books []Entity
	for i := 0; i < 70; i++ {
		books = append(books, book(fmt.Sprintf("b%02d", i), fmt.Sprintf("A%d", i%5), []string{"Space", fmt.Sprintf("t%d", i%7)}, []string{"Cold War"}))
	}
	edges := NewBuilder(DefaultConfig()).Build(books)

	seen := make(map[string]struct{})
	for _, e := range edges {
		if _, dup := seen[e.Key()]; dup {
			t.Fatalf("duplicate edge for %s", e.Key())
		}
		seen[e.Key()] = struct{}{}
		if e.Score < 10 || len(e.Reasons) == 0 {
			t.Errorf("edge %s score %d reasons %v violates threshold", e.Key(), e.Score, e.Reasons)
		}
	}
	for i := 1; i < len(edges); i++ {
		if edges[i].Score > edges[i-1].Score {
			t.Fatalf("edges not sorted at %d: %d > %d", i, edges[i].Score, edges[i-1].Score)
		}
	}
}

func TestBuilder_Cap(t *testing.T) {
	t.Parallel()

	var books []Entity
	for i := 0; i < 20; i++ {
		books = append(books, book(fmt.Sprintf("b%02d", i), fmt.Sprintf("A%d", i), []string{"Space"}, nil))
	}
	edges := NewBuilder(DefaultConfig()).Build(books)
	if len(edges) != 160 {
		t.Errorf("len(edges) = %d, want 160 (190 candidates capped)", len(edges))
	}
	if edges[0].Key() != PairKey("b00", "b01") {
		t.Errorf("edges[0] = %s, want ties ordered by key", edges[0].Key())
	}
}

func TestBuilder_BucketWindow(t *testing.T) {
	t.Parallel()

	b := NewBuilder(DefaultConfig())
	if b.Bucketed(60) {
		t.Error("Bucketed(60) = true, want false at threshold")
	}
	if !b.Bucketed(61) {
		t.Error("Bucketed(61) = false, want true above threshold")
	}

	var books []Entity
	for i := 0; i < 62; i++ {
		tags := []string{"common"}
		if i >= 60 {
			tags = append(tags, "rare")
		}
		books = append(books, book(fmt.Sprintf("b%02d", i), fmt.Sprintf("A%d", i), tags, nil))
	}
	edges := b.Build(books)
	idx := NewIndex(edges)

	// 15 pairs inside the first six members of "common" plus the "rare" pair.
	if len(edges) != 16 {
		t.Errorf("len(edges) = %d, want 16", len(edges))
	}
	if got, ok := idx.EdgeData("b60", "b61"); !ok || got.Score != 20 {
		t.Errorf("EdgeData(b60, b61) = %+v, %v, want score 20", got, ok)
	}
	if _, ok := idx.EdgeData("b00", "b05"); !ok {
		t.Error("pair inside the window should be connected")
	}
	if _, ok := idx.EdgeData("b00", "b06"); ok {
		t.Error("pair outside the window should not be scored")
	}
}

func TestBuilder_AuthorBucketsAreExhaustive(t *testing.T) {
	t.Parallel()

	var books []Entity
	for i := 0; i < 61; i++ {
		author := fmt.Sprintf("A%d", i)
		if i%10 == 0 {
			author = "Prolific"
		}
		books = append(books, book(fmt.Sprintf("b%02d", i), author, nil, nil))
	}
	edges := NewBuilder(DefaultConfig()).Build(books)

	// seven books by the same author give 21 pairs
	if len(edges) != 21 {
		t.Errorf("len(edges) = %d, want 21", len(edges))
	}
	for _, e := range edges {
		if e.Type != EdgeAuthor || e.Score != 50 {
			t.Errorf("edge %s = %s/%d, want author/50", e.Key(), e.Type, e.Score)
		}
	}
}
