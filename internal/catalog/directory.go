// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/tomtom215/stellarlog/internal/models"
)

// ErrAuthorNotFound is returned by Get when no profile matches a name.
var ErrAuthorNotFound = errors.New("author not found")

// AuthorDirectory resolves author names to directory profiles.
//
// Lookup returns only the names it could resolve, keyed by DirectoryKey.
// Missing names are not an error.
type AuthorDirectory interface {
	Lookup(ctx context.Context, names []string) (map[string]models.AuthorProfile, error)
}

// DirectoryKey normalizes an author name for directory matching.
func DirectoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MemoryDirectory is an in-process AuthorDirectory.
type MemoryDirectory struct {
	mu       sync.RWMutex
	profiles map[string]models.AuthorProfile
}

// NewMemoryDirectory returns a directory holding profiles.
func NewMemoryDirectory(profiles ...models.AuthorProfile) *MemoryDirectory {
	d := &MemoryDirectory{profiles: make(map[string]models.AuthorProfile, len(profiles))}
	for i := range profiles {
		d.profiles[DirectoryKey(profiles[i].Name)] = profiles[i]
	}
	return d
}

// Put adds or replaces profiles.
func (d *MemoryDirectory) Put(_ context.Context, profiles ...models.AuthorProfile) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range profiles {
		d.profiles[DirectoryKey(profiles[i].Name)] = profiles[i]
	}
	return nil
}

// Get returns the profile for name.
func (d *MemoryDirectory) Get(_ context.Context, name string) (models.AuthorProfile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.profiles[DirectoryKey(name)]
	if !ok {
		return models.AuthorProfile{}, ErrAuthorNotFound
	}
	return p, nil
}

// Lookup implements AuthorDirectory.
func (d *MemoryDirectory) Lookup(ctx context.Context, names []string) (map[string]models.AuthorProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make(map[string]models.AuthorProfile)
	for _, name := range names {
		key := DirectoryKey(name)
		if p, ok := d.profiles[key]; ok {
			out[key] = p
		}
	}
	return out, nil
}

// Len returns the number of stored profiles.
func (d *MemoryDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.profiles)
}
