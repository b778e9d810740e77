// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package models

import (
	"strings"
	"time"
)

// UnknownAuthor is the placeholder author the catalog assigns to works whose
// author was never recorded. It never produces an author entity and never
// counts as a shared author.
const UnknownAuthor = "Unknown Author"

// CatalogRecord is a single tracked work as supplied by the catalog store.
//
// Any of the tag slices may be nil; every consumer treats nil as empty.
// Records without an ID are excluded from all derived structures. The ID is
// the only field that can exclude a record.
type CatalogRecord struct {
	ID                     string    `json:"id" yaml:"id" validate:"notblank"`
	Title                  string    `json:"title" yaml:"title"`
	Author                 string    `json:"author" yaml:"author"`
	Tags                   []string  `json:"tags" yaml:"tags"`
	TemporalContextTags    []string  `json:"temporal_context_tags" yaml:"temporal_context_tags"`
	HistoricalContextTags  []string  `json:"historical_context_tags" yaml:"historical_context_tags"`
	PublicationYear        *int      `json:"publication_year,omitempty" yaml:"publication_year,omitempty"`
	CreatedAt              time.Time `json:"created_at" yaml:"created_at"`
	Protagonist            string    `json:"protagonist,omitempty" yaml:"protagonist,omitempty"`
	ProtagonistPortraitURL string    `json:"protagonist_portrait_url,omitempty" yaml:"protagonist_portrait_url,omitempty"`
	ProtagonistIntro       string    `json:"protagonist_intro,omitempty" yaml:"protagonist_intro,omitempty"`
}

// HasID reports whether the record carries a usable identifier.
func (r *CatalogRecord) HasID() bool {
	return strings.TrimSpace(r.ID) != ""
}

// KnownAuthor returns the trimmed author name, or "" when the author is
// blank or the UnknownAuthor placeholder.
func (r *CatalogRecord) KnownAuthor() string {
	return KnownAuthorName(r.Author)
}

// KnownAuthorName normalizes an author name, mapping blanks and the
// UnknownAuthor placeholder to "".
func KnownAuthorName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, UnknownAuthor) {
		return ""
	}
	return name
}

// AuthorProfile is an external author directory entry used to decorate
// synthesized author entities. A PortraitURL that is not an absolute URL is
// cleared on load; the rest of the profile is kept.
type AuthorProfile struct {
	ID          string `json:"id" yaml:"id" validate:"notblank"`
	Name        string `json:"name" yaml:"name" validate:"notblank"`
	PortraitURL string `json:"portrait_url,omitempty" yaml:"portrait_url,omitempty"`
	Bio         string `json:"bio,omitempty" yaml:"bio,omitempty"`
}
