// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stellarlog/internal/models"
)

// Snapshot is an immutable catalog version: the records plus the author
// profiles resolved for them. Callers must not mutate it after NewSnapshot.
type Snapshot struct {
	Records []models.CatalogRecord `json:"records"`

	// Profiles maps catalog.DirectoryKey(author name) to a profile.
	Profiles map[string]models.AuthorProfile `json:"profiles,omitempty"`

	LoadedAt time.Time `json:"-"`

	version string
}

// NewSnapshot builds a snapshot and computes its version.
func NewSnapshot(records []models.CatalogRecord, profiles map[string]models.AuthorProfile, loadedAt time.Time) *Snapshot {
	if records == nil {
		records = []models.CatalogRecord{}
	}
	s := &Snapshot{Records: records, Profiles: profiles, LoadedAt: loadedAt}
	s.version = computeVersion(s)
	return s
}

// Version identifies the snapshot content. Two snapshots with equal records
// and profiles share a version regardless of when they were loaded.
func (s *Snapshot) Version() string {
	return s.version
}

// computeVersion hashes the canonical JSON encoding. Map keys are encoded in
// sorted order, so equal content always yields the same digest.
func computeVersion(s *Snapshot) string {
	data, err := json.Marshal(s)
	if err != nil {
		// Records are plain data; encoding cannot fail in practice. Fall
		// back to a value that never matches a real digest.
		return "unversioned-" + s.LoadedAt.Format(time.RFC3339Nano)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}
