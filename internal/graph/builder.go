// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package graph

import (
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/stellarlog/internal/models"
)

// Builder constructs the edge set of a visible entity set.
type Builder struct {
	cfg    Config
	scorer *Scorer
}

// NewBuilder creates a builder. Zero-valued configs fall back to defaults.
//
//nolint:gocritic // Config is copied so later caller edits do not leak in
func NewBuilder(cfg Config) *Builder {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return &Builder{cfg: cfg, scorer: NewScorer(cfg)}
}

// Config returns the configuration the builder was created with.
func (b *Builder) Config() Config {
	return b.cfg
}

// Bucketed reports whether a snapshot with the given number of books is
// large enough to switch to bucketed candidate generation.
func (b *Builder) Bucketed(bookCount int) bool {
	return bookCount > b.cfg.LargeGraphThreshold
}

// Build returns the scored, deduplicated and capped edge list for entities.
//
// Book pairs are scored exhaustively for small snapshots. Above the large
// graph threshold only pairs sharing an author, or sharing a tag within the
// first BucketWindow members of that tag's bucket, are scored. Authorship and
// membership edges are always added. The result is sorted by score
// descending (pair key ascending on ties) and truncated to EdgeLimit.
//
// Entities without an id are ignored. The result is never nil.
func (b *Builder) Build(entities []Entity) []Edge {
	var books, authors, protagonists []*Entity
	seen := make(map[string]struct{}, len(entities))
	for i := range entities {
		e := &entities[i]
		if strings.TrimSpace(e.ID) == "" {
			continue
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}

		switch e.NodeType {
		case NodeBook:
			books = append(books, e)
		case NodeAuthor:
			authors = append(authors, e)
		case NodeProtagonist:
			protagonists = append(protagonists, e)
		}
	}

	if len(seen) < 2 {
		return []Edge{}
	}

	best := make(map[string]Edge)
	keep := func(e Edge) {
		key := e.Key()
		if cur, ok := best[key]; !ok || e.Score > cur.Score {
			best[key] = e
		}
	}

	if b.Bucketed(len(books)) {
		b.bucketedCandidates(books, keep)
	} else {
		for i := 0; i < len(books); i++ {
			for j := i + 1; j < len(books); j++ {
				b.scorePair(books[i], books[j], keep)
			}
		}
	}

	b.structuralEdges(books, authors, protagonists, keep)

	edges := make([]Edge, 0, len(best))
	for _, e := range best {
		edges = append(edges, e)
	}
	sortEdges(edges)

	if limit := b.cfg.EdgeLimit(); len(edges) > limit {
		edges = edges[:limit]
	}
	return edges
}

// bucketedCandidates scores pairs within each author bucket, and pairs among
// the first BucketWindow members of each tag bucket. Bucket members keep
// entity input order.
func (b *Builder) bucketedCandidates(books []*Entity, keep func(Edge)) {
	var authorOrder, tagOrder []string
	byAuthor := make(map[string][]int)
	byTag := make(map[string][]int)

	for i, book := range books {
		if name := models.KnownAuthorName(book.Author); name != "" {
			key := strings.ToLower(name)
			if _, ok := byAuthor[key]; !ok {
				authorOrder = append(authorOrder, key)
			}
			byAuthor[key] = append(byAuthor[key], i)
		}

		for _, t := range NormalizeTags(book.Tags, book.ContextTags) {
			if _, ok := byTag[t]; !ok {
				tagOrder = append(tagOrder, t)
			}
			byTag[t] = append(byTag[t], i)
		}
	}

	scored := make(map[[2]int]struct{})
	scoreWithin := func(members []int) {
		for x := 0; x < len(members); x++ {
			for y := x + 1; y < len(members); y++ {
				pair := [2]int{members[x], members[y]}
				if _, done := scored[pair]; done {
					continue
				}
				scored[pair] = struct{}{}
				b.scorePair(books[pair[0]], books[pair[1]], keep)
			}
		}
	}

	for _, key := range authorOrder {
		if members := byAuthor[key]; len(members) >= 2 {
			scoreWithin(members)
		}
	}
	for _, t := range tagOrder {
		members := byTag[t]
		if len(members) < 2 {
			continue
		}
		if len(members) > b.cfg.BucketWindow {
			members = members[:b.cfg.BucketWindow]
		}
		scoreWithin(members)
	}
}

func (b *Builder) scorePair(x, y *Entity, keep func(Edge)) {
	if x.ID == y.ID {
		return
	}
	res := b.scorer.Score(x, y)
	if !res.ShouldConnect {
		return
	}

	edgeType := EdgeTheme
	if HasReason(res.Reasons, ReasonSameAuthor) {
		edgeType = EdgeAuthor
	}
	keep(Edge{
		From:            x.ID,
		To:              y.ID,
		Type:            edgeType,
		Score:           res.Score,
		Reasons:         res.Reasons,
		SharedTags:      orEmpty(res.SharedTags),
		Strength:        strength(res.Score),
		SharedThemes:    res.SharedThemes,
		SharedSubgenres: res.SharedSubgenres,
		SharedEra:       res.SharedEra,
	})
}

// structuralEdges links authors to their books and protagonists to their
// book and author. Unmatched references produce no edge.
func (b *Builder) structuralEdges(books, authors, protagonists []*Entity, keep func(Edge)) {
	for _, a := range authors {
		for _, book := range books {
			name := models.KnownAuthorName(book.Author)
			if name == "" || !strings.EqualFold(name, strings.TrimSpace(a.Title)) {
				continue
			}
			keep(structural(a.ID, book.ID, EdgeAuthorship, b.cfg.AuthorshipScore, ReasonWrote))
		}
	}

	for _, p := range protagonists {
		bookTitle := ""
		if p.Character != nil {
			bookTitle = strings.TrimSpace(p.Character.BookTitle)
		}
		if bookTitle != "" {
			for _, book := range books {
				if strings.EqualFold(strings.TrimSpace(book.Title), bookTitle) {
					keep(structural(p.ID, book.ID, EdgeMembership, b.cfg.MembershipScore, ReasonAppearsIn))
					break
				}
			}
		}

		name := models.KnownAuthorName(p.Author)
		if name == "" {
			continue
		}
		for _, a := range authors {
			if strings.EqualFold(strings.TrimSpace(a.Title), name) {
				keep(structural(p.ID, a.ID, EdgeMembership, b.cfg.AuthorMembershipScore, ReasonAuthoredBy))
				break
			}
		}
	}
}

func structural(from, to string, t EdgeType, score int, reason Reason) Edge {
	return Edge{
		From:       from,
		To:         to,
		Type:       t,
		Score:      score,
		Reasons:    []Reason{reason},
		SharedTags: []string{},
		Strength:   strength(score),
	}
}

// sortEdges orders edges by score descending, then by pair key.
func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Score != edges[j].Score {
			return edges[i].Score > edges[j].Score
		}
		return edges[i].Key() < edges[j].Key()
	})
}

// strength maps a score onto [0, 1] with two decimals.
func strength(score int) float64 {
	s := math.Min(float64(score)/100, 1)
	return math.Round(s*100) / 100
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
