// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

// Package taxonomy classifies controlled-vocabulary context tags.
//
// Every temporal context tag belongs to at most one of three fixed
// vocabularies: literary eras, historical forces, and technological
// contexts. Anything else is uncategorized. The package also owns the
// canonical ordering of literary eras used by the evolution tracker and the
// looser "era-like" pattern the connection scorer uses to pick an era out of
// an arbitrary context tag list.
package taxonomy

import (
	"regexp"
	"strings"
)

// Category is the taxonomic bucket of a context tag.
type Category string

const (
	// Uncategorized is returned for tags outside every vocabulary.
	Uncategorized Category = ""

	// LiteraryEra covers periods of science fiction publishing.
	LiteraryEra Category = "literaryEra"

	// HistoricalForces covers the social and political forces a work reflects.
	HistoricalForces Category = "historicalForces"

	// TechnologicalContext covers the technology a work was written against.
	TechnologicalContext Category = "technologicalContext"
)

// Eras is the canonical literary era sequence, oldest first.
var Eras = []string{
	"Proto-SF Era (pre-1926)",
	"Pulp Era (1926-1937)",
	"Golden Age (1938-1950)",
	"Atomic Age (1950s)",
	"New Wave (1960s-1970s)",
	"Cyberpunk Era (1980s)",
	"Post-Cyberpunk (1990s)",
	"New Space Opera (2000s)",
	"Contemporary (2010s+)",
}

// Forces is the historical force vocabulary.
var Forces = []string{
	"Cold War",
	"Space Race",
	"Civil Rights Movement",
	"Decolonization",
	"Globalization",
	"Climate Crisis",
	"Post-9/11",
	"Nuclear Anxiety",
	"Counterculture",
	"Feminist Movement",
	"Industrial Revolution",
	"World War II",
	"Economic Inequality",
}

// Technologies is the technological context vocabulary.
var Technologies = []string{
	"Atomic Power",
	"Early Computing",
	"Space Flight",
	"Personal Computing",
	"Internet",
	"Biotechnology",
	"Genetic Engineering",
	"Artificial Intelligence",
	"Virtual Reality",
	"Nanotechnology",
	"Social Media",
	"Quantum Computing",
}

// eraPattern matches tags that read like an era even when they are not in
// the controlled vocabulary ("Victorian Age", "1970s", "1938-1950").
var eraPattern = regexp.MustCompile(`(?i)(\bera\b|\bage\b|\bwave\b|\d{4}s|\d{4}-\d{4})`)

var (
	categories = buildCategories()
	eraRank    = buildEraRank()
)

func buildCategories() map[string]Category {
	m := make(map[string]Category, len(Eras)+len(Forces)+len(Technologies))
	for _, t := range Eras {
		m[t] = LiteraryEra
	}
	for _, t := range Forces {
		m[t] = HistoricalForces
	}
	for _, t := range Technologies {
		m[t] = TechnologicalContext
	}
	return m
}

func buildEraRank() map[string]int {
	m := make(map[string]int, len(Eras))
	for i, e := range Eras {
		m[e] = i
	}
	return m
}

// Classify returns the vocabulary a tag belongs to, or Uncategorized.
// Matching is exact after trimming surrounding whitespace.
func Classify(tag string) Category {
	return categories[strings.TrimSpace(tag)]
}

// EraRank returns the position of an era in the canonical sequence.
// The second return value is false for tags that are not literary eras.
func EraRank(era string) (int, bool) {
	r, ok := eraRank[strings.TrimSpace(era)]
	return r, ok
}

// IsEraLike reports whether a tag looks like an era label.
func IsEraLike(tag string) bool {
	return eraPattern.MatchString(tag)
}

// EraLike returns the first tag that looks like an era label, or "".
func EraLike(tags []string) string {
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" && IsEraLike(t) {
			return t
		}
	}
	return ""
}

// LiteraryEras returns every tag in tags that is a vocabulary literary era,
// in input order.
func LiteraryEras(tags []string) []string {
	var out []string
	for _, t := range tags {
		if Classify(t) == LiteraryEra {
			out = append(out, strings.TrimSpace(t))
		}
	}
	return out
}

// FirstLiteraryEra returns the first vocabulary literary era in tags, or "".
func FirstLiteraryEra(tags []string) string {
	for _, t := range tags {
		if Classify(t) == LiteraryEra {
			return strings.TrimSpace(t)
		}
	}
	return ""
}

// Split partitions tags by category, preserving input order. Tags outside
// every vocabulary are dropped.
func Split(tags []string) (eras, forces, technologies []string) {
	for _, t := range tags {
		switch Classify(t) {
		case LiteraryEra:
			eras = append(eras, strings.TrimSpace(t))
		case HistoricalForces:
			forces = append(forces, strings.TrimSpace(t))
		case TechnologicalContext:
			technologies = append(technologies, strings.TrimSpace(t))
		case Uncategorized:
		}
	}
	return eras, forces, technologies
}
