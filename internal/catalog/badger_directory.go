// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/stellarlog/internal/models"
)

// Key prefix for BadgerDB storage
const authorKeyPrefix = "author:"

// BadgerDirectory is a durable AuthorDirectory backed by BadgerDB.
type BadgerDirectory struct {
	db    *badger.DB
	owned bool
}

// OpenBadgerDirectory opens (or creates) a BadgerDB at path. The returned
// directory owns the database and closes it on Close.
func OpenBadgerDirectory(path string) (*BadgerDirectory, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for author directory: %w", err)
	}
	return &BadgerDirectory{db: db, owned: true}, nil
}

// NewBadgerDirectory wraps an already open database.
func NewBadgerDirectory(db *badger.DB) *BadgerDirectory {
	return &BadgerDirectory{db: db}
}

func authorKey(name string) []byte {
	return []byte(authorKeyPrefix + DirectoryKey(name))
}

// Put stores profiles keyed by their normalized name.
func (d *BadgerDirectory) Put(_ context.Context, profiles ...models.AuthorProfile) error {
	return d.db.Update(func(txn *badger.Txn) error {
		for i := range profiles {
			data, err := json.Marshal(&profiles[i])
			if err != nil {
				return fmt.Errorf("marshal author %q: %w", profiles[i].Name, err)
			}
			if err := txn.Set(authorKey(profiles[i].Name), data); err != nil {
				return fmt.Errorf("set author %q: %w", profiles[i].Name, err)
			}
		}
		return nil
	})
}

// Get returns the profile for name.
func (d *BadgerDirectory) Get(_ context.Context, name string) (models.AuthorProfile, error) {
	var profile models.AuthorProfile

	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(authorKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrAuthorNotFound
		}
		if err != nil {
			return fmt.Errorf("get author: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	if err != nil {
		return models.AuthorProfile{}, err
	}
	return profile, nil
}

// Delete removes the profile for name. Deleting a missing name is a no-op.
func (d *BadgerDirectory) Delete(_ context.Context, name string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(authorKey(name)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete author: %w", err)
		}
		return nil
	})
}

// Lookup implements AuthorDirectory in a single read transaction.
func (d *BadgerDirectory) Lookup(ctx context.Context, names []string) (map[string]models.AuthorProfile, error) {
	out := make(map[string]models.AuthorProfile)

	err := d.db.View(func(txn *badger.Txn) error {
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := txn.Get(authorKey(name))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("get author %q: %w", name, err)
			}

			var profile models.AuthorProfile
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &profile)
			}); err != nil {
				return fmt.Errorf("decode author %q: %w", name, err)
			}
			out[DirectoryKey(name)] = profile
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of stored profiles.
func (d *BadgerDirectory) Count(_ context.Context) (int, error) {
	count := 0
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(authorKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC reclaims value log space left behind by overwritten and deleted
// profiles. It runs until badger reports nothing left to rewrite.
func (d *BadgerDirectory) RunGC(_ context.Context) error {
	for {
		err := d.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run value log gc: %w", err)
		}
	}
}

// Close closes the database if this directory opened it.
func (d *BadgerDirectory) Close() error {
	if d.owned && d.db != nil {
		return d.db.Close()
	}
	return nil
}
