// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package graph

import (
	"time"
)

// NodeType discriminates the Entity variants.
type NodeType string

const (
	// NodeBook is a tracked work from the catalog.
	NodeBook NodeType = "book"

	// NodeAuthor is synthesized once per distinct known author.
	NodeAuthor NodeType = "author"

	// NodeProtagonist is synthesized once per distinct protagonist name.
	NodeProtagonist NodeType = "protagonist"
)

// EdgeType is the closed set of edge kinds.
type EdgeType string

const (
	// EdgeTheme connects two books through shared tags or era.
	EdgeTheme EdgeType = "theme"

	// EdgeAuthor connects two books by the same author.
	EdgeAuthor EdgeType = "author"

	// EdgeAuthorship connects an author entity to a book they wrote.
	EdgeAuthorship EdgeType = "authorship"

	// EdgeMembership connects a protagonist to its book or author.
	EdgeMembership EdgeType = "membership"
)

// Reason explains one contribution to an edge score.
type Reason string

const (
	ReasonSameAuthor     Reason = "same_author"
	ReasonSharedTheme    Reason = "shared_theme"
	ReasonSharedSubgenre Reason = "shared_subgenre"
	ReasonSharedEra      Reason = "shared_era"
	ReasonWrote          Reason = "wrote"
	ReasonAppearsIn      Reason = "appears_in"
	ReasonAuthoredBy     Reason = "authored_by"
)

// Entity is a graph node. NodeType selects which of the variant payloads is
// set: Book for NodeBook, Writer for NodeAuthor, Character for
// NodeProtagonist. The other two are nil.
type Entity struct {
	ID          string   `json:"id"`
	NodeType    NodeType `json:"nodeType"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Tags        []string `json:"tags"`
	ContextTags []string `json:"contextTags"`

	Book      *BookDetail        `json:"book,omitempty"`
	Writer    *AuthorDetail      `json:"writer,omitempty"`
	Character *ProtagonistDetail `json:"character,omitempty"`
}

// BookDetail is the payload of a book entity.
type BookDetail struct {
	TransmissionID  string    `json:"transmissionId"`
	PublicationYear *int      `json:"publicationYear,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AuthorDetail is the payload of an author entity.
type AuthorDetail struct {
	BookCount int        `json:"bookCount"`
	Profile   *AuthorRef `json:"profile,omitempty"`
}

// AuthorRef points at the matching external author directory record.
type AuthorRef struct {
	ID          string `json:"id"`
	PortraitURL string `json:"portraitUrl,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// ProtagonistDetail is the payload of a protagonist entity. BookTitle is a
// name lookup into the book entities, not ownership.
type ProtagonistDetail struct {
	BookTitle   string `json:"bookTitle"`
	PortraitURL string `json:"portraitUrl,omitempty"`
	Intro       string `json:"intro,omitempty"`
}

// Edge is an undirected, scored connection between two entities.
type Edge struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Type       EdgeType `json:"type"`
	Score      int      `json:"score"`
	Reasons    []Reason `json:"reasons"`
	SharedTags []string `json:"sharedTags"`
	Strength   float64  `json:"strength"`

	// Per-reason breakdown of SharedTags, populated for book-to-book edges.
	SharedThemes    []string `json:"sharedThemes,omitempty"`
	SharedSubgenres []string `json:"sharedSubgenres,omitempty"`
	SharedEra       string   `json:"sharedEra,omitempty"`
}

// Key returns the canonical identity of the edge.
func (e *Edge) Key() string {
	return PairKey(e.From, e.To)
}

// pairSeparator joins the two ids of a canonical pair key.
const pairSeparator = "::"

// PairKey returns the order-independent key for the pair (a, b).
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + pairSeparator + b
}

// HasReason reports whether r appears in reasons.
func HasReason(reasons []Reason, r Reason) bool {
	for _, x := range reasons {
		if x == r {
			return true
		}
	}
	return false
}
