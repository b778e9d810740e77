// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package graph

import (
	"strings"

	"github.com/tomtom215/stellarlog/internal/models"
)

const (
	authorIDPrefix      = "author:"
	protagonistIDPrefix = "protagonist:"

	// maxAuthorTags is how many aggregated tags an author entity displays.
	maxAuthorTags = 3
)

// AuthorEntityID returns the entity id synthesized for an author name.
func AuthorEntityID(name string) string {
	return authorIDPrefix + strings.ToLower(strings.TrimSpace(name))
}

// ProtagonistEntityID returns the entity id synthesized for a protagonist name.
func ProtagonistEntityID(name string) string {
	return protagonistIDPrefix + strings.ToLower(strings.TrimSpace(name))
}

// BuildEntities derives the visible entity set of a snapshot: one book per
// record, one author per distinct known author and one protagonist per
// distinct protagonist name. Books come first in record order, followed by
// authors and protagonists in first-seen order.
//
// profiles maps lowercased author names to directory entries and may be nil.
// Records without an id are skipped, and only the first record with a given
// id is used.
func BuildEntities(records []models.CatalogRecord, profiles map[string]models.AuthorProfile) []Entity {
	books := make([]Entity, 0, len(records))
	seenBooks := make(map[string]struct{}, len(records))

	type authorAgg struct {
		name  string
		tags  []string
		seen  map[string]struct{}
		books int
	}
	var authorOrder []string
	authors := make(map[string]*authorAgg)

	var protagonists []Entity
	seenProtagonists := make(map[string]struct{})

	for i := range records {
		r := &records[i]
		if !r.HasID() {
			continue
		}
		id := strings.TrimSpace(r.ID)
		if _, dup := seenBooks[id]; dup {
			continue
		}
		seenBooks[id] = struct{}{}

		tags := NormalizeTags(r.Tags)
		contextTags := NormalizeTags(r.TemporalContextTags, r.HistoricalContextTags)

		books = append(books, Entity{
			ID:          id,
			NodeType:    NodeBook,
			Title:       strings.TrimSpace(r.Title),
			Author:      strings.TrimSpace(r.Author),
			Tags:        tags,
			ContextTags: contextTags,
			Book: &BookDetail{
				TransmissionID:  r.ID,
				PublicationYear: r.PublicationYear,
				CreatedAt:       r.CreatedAt,
			},
		})

		if name := r.KnownAuthor(); name != "" {
			key := strings.ToLower(name)
			agg, ok := authors[key]
			if !ok {
				agg = &authorAgg{name: name, seen: make(map[string]struct{})}
				authors[key] = agg
				authorOrder = append(authorOrder, key)
			}
			agg.books++
			for _, t := range tags {
				if _, dup := agg.seen[t]; !dup {
					agg.seen[t] = struct{}{}
					agg.tags = append(agg.tags, t)
				}
			}
		}

		if name := strings.TrimSpace(r.Protagonist); name != "" {
			pid := ProtagonistEntityID(name)
			if _, dup := seenProtagonists[pid]; dup {
				continue
			}
			seenProtagonists[pid] = struct{}{}
			protagonists = append(protagonists, Entity{
				ID:          pid,
				NodeType:    NodeProtagonist,
				Title:       name,
				Author:      strings.TrimSpace(r.Author),
				Tags:        tags,
				ContextTags: contextTags,
				Character: &ProtagonistDetail{
					BookTitle:   strings.TrimSpace(r.Title),
					PortraitURL: r.ProtagonistPortraitURL,
					Intro:       r.ProtagonistIntro,
				},
			})
		}
	}

	out := make([]Entity, 0, len(books)+len(authorOrder)+len(protagonists))
	out = append(out, books...)
	for _, key := range authorOrder {
		agg := authors[key]
		tags := agg.tags
		if len(tags) > maxAuthorTags {
			tags = tags[:maxAuthorTags]
		}
		detail := &AuthorDetail{BookCount: agg.books}
		if p, ok := profiles[key]; ok {
			detail.Profile = &AuthorRef{ID: p.ID, PortraitURL: p.PortraitURL, Bio: p.Bio}
		}
		out = append(out, Entity{
			ID:          AuthorEntityID(agg.name),
			NodeType:    NodeAuthor,
			Title:       agg.name,
			Author:      agg.name,
			Tags:        append([]string{}, tags...),
			ContextTags: []string{},
			Writer:      detail,
		})
	}
	out = append(out, protagonists...)
	return out
}

// NormalizeTags concatenates tag lists, trimming values and dropping blanks
// and repeats. The first occurrence of each value keeps its position.
// The result is never nil.
func NormalizeTags(lists ...[]string) []string {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	for _, l := range lists {
		for _, t := range l {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// AuthorNames returns the distinct known author names of the records, in
// first-seen order. It is the lookup set handed to the author directory.
func AuthorNames(records []models.CatalogRecord) []string {
	var names []string
	seen := make(map[string]struct{})
	for i := range records {
		name := records[i].KnownAuthor()
		if name == "" || !records[i].HasID() {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}
	return names
}
