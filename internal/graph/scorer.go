// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package graph

import (
	"strings"

	"github.com/tomtom215/stellarlog/internal/models"
	"github.com/tomtom215/stellarlog/internal/taxonomy"
)

// ScoreResult is the outcome of comparing two entities.
type ScoreResult struct {
	Score           int
	Reasons         []Reason
	SharedTags      []string
	SharedThemes    []string
	SharedSubgenres []string
	SharedEra       string
	ShouldConnect   bool
}

// Scorer rates the relationship between two entities from their overlapping
// attributes. It is safe for concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the given weights.
//
//nolint:gocritic // Config is copied so later caller edits do not leak in
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score compares a and b. Every factor is evaluated independently and in a
// fixed order: same author, shared conceptual tags, shared context tags and
// shared era. Context tags that read like an era count toward the era factor
// only, and the era factor applies only when no other context tag was shared.
//
// Score is symmetric in its arguments apart from the order of SharedTags.
func (s *Scorer) Score(a, b *Entity) ScoreResult {
	var res ScoreResult

	if authorA := models.KnownAuthorName(a.Author); authorA != "" &&
		strings.EqualFold(authorA, models.KnownAuthorName(b.Author)) {
		res.Score += s.cfg.SameAuthorWeight
		res.Reasons = append(res.Reasons, ReasonSameAuthor)
	}

	if themes := intersect(a.Tags, b.Tags); len(themes) > 0 {
		res.Score += min(len(themes)*s.cfg.ThemeWeight, s.cfg.ThemeCap)
		res.Reasons = append(res.Reasons, ReasonSharedTheme)
		res.SharedThemes = themes
		res.SharedTags = append(res.SharedTags, themes...)
	}

	if shared := intersect(subgenres(a.ContextTags), subgenres(b.ContextTags)); len(shared) > 0 {
		res.Score += min(len(shared)*s.cfg.SubgenreWeight, s.cfg.SubgenreCap)
		res.Reasons = append(res.Reasons, ReasonSharedSubgenre)
		res.SharedSubgenres = shared
		res.SharedTags = append(res.SharedTags, shared...)
	}

	if len(res.SharedSubgenres) == 0 {
		eraA := taxonomy.EraLike(a.ContextTags)
		if eraA != "" && eraA == taxonomy.EraLike(b.ContextTags) {
			res.Score += s.cfg.EraWeight
			res.Reasons = append(res.Reasons, ReasonSharedEra)
			res.SharedEra = eraA
			res.SharedTags = append(res.SharedTags, eraA)
		}
	}

	res.ShouldConnect = res.Score >= s.cfg.MinConnectionScore && len(res.Reasons) > 0
	return res
}

// subgenres returns the context tags that do not look like an era.
func subgenres(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !taxonomy.IsEraLike(t) {
			out = append(out, t)
		}
	}
	return out
}

// intersect returns the distinct non-blank values present in both lists, in
// the order they appear in a.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inB := make(map[string]struct{}, len(b))
	for _, t := range b {
		if t = strings.TrimSpace(t); t != "" {
			inB[t] = struct{}{}
		}
	}
	var out []string
	seen := make(map[string]struct{})
	for _, t := range a {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := inB[t]; !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
