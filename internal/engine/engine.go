// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/stellarlog/internal/cache"
	"github.com/tomtom215/stellarlog/internal/catalog"
	"github.com/tomtom215/stellarlog/internal/graph"
	"github.com/tomtom215/stellarlog/internal/insights"
	"github.com/tomtom215/stellarlog/internal/logging"
	"github.com/tomtom215/stellarlog/internal/metrics"
	"github.com/tomtom215/stellarlog/internal/models"
)

// ErrNoSnapshot is returned by queries issued before any catalog was applied.
var ErrNoSnapshot = errors.New("no catalog snapshot loaded")

// Clock returns the current time.
type Clock func() time.Time

// Options configures an Engine. Zero values select defaults.
type Options struct {
	Graph    graph.Config
	Insights insights.Config

	// CacheCapacity bounds the number of memoized results.
	// Default: 64
	CacheCapacity int

	// CacheTTL expires memoized results. Zero keeps them until evicted.
	CacheTTL time.Duration

	// Directory decorates author entities. Nil disables decoration.
	Directory catalog.AuthorDirectory

	// Clock drives velocity windows. Default: time.Now.
	Clock Clock
}

// Meta describes where a query result came from.
type Meta struct {
	Version string
	Cached  bool
}

// Status summarizes the active snapshot.
type Status struct {
	Version  string
	Records  int
	Authors  int
	LoadedAt time.Time
	Cache    cache.Stats
}

// Engine owns the active snapshot and memoizes everything derived from it.
//
// Results are cached per snapshot version, so replacing the snapshot never
// serves stale output and reapplying identical content reuses prior work.
// Concurrent misses for the same result are collapsed into one computation.
// Engine is safe for concurrent use.
type Engine struct {
	builder   *graph.Builder
	analyzer  *insights.Analyzer
	directory catalog.AuthorDirectory
	clock     Clock
	logger    zerolog.Logger

	mu       sync.RWMutex
	snapshot *Snapshot
	inline   []models.AuthorProfile

	results *cache.LRU[any]
	group   singleflight.Group
}

// New creates an Engine with no snapshot.
func New(opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.CacheCapacity <= 0 {
		opts.CacheCapacity = 64
	}

	lruOpts := []cache.Option[any]{
		cache.WithEvictCallback[any](func(string, any) { metrics.EngineCacheEvictions.Inc() }),
	}
	if opts.CacheTTL > 0 {
		lruOpts = append(lruOpts, cache.WithTTL[any](opts.CacheTTL))
	}

	return &Engine{
		builder:   graph.NewBuilder(opts.Graph),
		analyzer:  insights.NewAnalyzer(opts.Insights),
		directory: opts.Directory,
		clock:     opts.Clock,
		logger:    logging.WithComponent("engine"),
		results:   cache.NewLRU[any](opts.CacheCapacity, lruOpts...),
	}
}

// Snapshot returns the active snapshot.
func (e *Engine) Snapshot() (*Snapshot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.snapshot == nil {
		return nil, ErrNoSnapshot
	}
	return e.snapshot, nil
}

// SetSnapshot makes s the active snapshot. It reports false when s has the
// version of the snapshot already active.
func (e *Engine) SetSnapshot(s *Snapshot) bool {
	e.mu.Lock()
	prev := e.snapshot
	e.snapshot = s
	e.mu.Unlock()

	if prev != nil && prev.Version() == s.Version() {
		return false
	}

	metrics.CatalogRecords.Set(float64(len(s.Records)))
	event := e.logger.Info().Str("version", s.Version()).Int("records", len(s.Records)).Int("profiles", len(s.Profiles))
	if prev != nil {
		event = event.Str("previous_version", prev.Version())
	}
	event.Msg("Catalog snapshot activated")
	return true
}

// ApplyCatalog resolves author profiles for a loaded catalog and activates
// it. It implements catalog.Applier.
func (e *Engine) ApplyCatalog(ctx context.Context, res *catalog.LoadResult) error {
	if res == nil {
		return fmt.Errorf("apply catalog: nil load result")
	}
	if res.Dropped > 0 {
		logging.Ctx(ctx).Warn().Int("dropped", res.Dropped).Interface("dropped_by", res.DroppedBy).Msg("Malformed catalog records dropped")
	}
	return e.ApplyRecords(ctx, res.Records, res.Authors)
}

// ApplyRecords activates a snapshot of records. Inline author profiles take
// precedence over the directory; names neither source knows stay undecorated.
func (e *Engine) ApplyRecords(ctx context.Context, records []models.CatalogRecord, inline []models.AuthorProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	profiles := e.resolveProfiles(ctx, records, inline)

	e.mu.Lock()
	e.inline = inline
	e.mu.Unlock()

	e.SetSnapshot(NewSnapshot(records, profiles, e.clock()))
	return nil
}

// resolveProfiles merges inline profiles with a directory lookup. Directory
// failures are logged and never fail the snapshot.
func (e *Engine) resolveProfiles(ctx context.Context, records []models.CatalogRecord, inline []models.AuthorProfile) map[string]models.AuthorProfile {
	profiles := make(map[string]models.AuthorProfile, len(inline))

	if e.directory != nil {
		if names := graph.AuthorNames(records); len(names) > 0 {
			found, err := e.directory.Lookup(ctx, names)
			if err != nil {
				e.logger.Warn().Err(err).Int("authors", len(names)).Msg("Author directory unavailable, continuing without profiles")
			}
			for key, p := range found {
				profiles[key] = p
			}
		}
	}

	for i := range inline {
		profiles[catalog.DirectoryKey(inline[i].Name)] = inline[i]
	}

	if len(profiles) == 0 {
		return nil
	}
	return profiles
}

// Rebuild re-resolves author profiles for the active records, drops every
// memoized result and recomputes the graph.
func (e *Engine) Rebuild(ctx context.Context) (*GraphResult, Meta, error) {
	snap, err := e.Snapshot()
	if err != nil {
		return nil, Meta{}, err
	}

	e.mu.RLock()
	inline := e.inline
	e.mu.RUnlock()

	profiles := e.resolveProfiles(ctx, snap.Records, inline)
	e.SetSnapshot(NewSnapshot(snap.Records, profiles, e.clock()))
	e.Invalidate()

	return e.Graph(ctx)
}

// Invalidate drops every memoized result.
func (e *Engine) Invalidate() {
	e.results.Purge()
	metrics.EngineInvalidations.Inc()
	e.logger.Info().Msg("Engine cache invalidated")
}

// Status reports the active snapshot and cache statistics.
func (e *Engine) Status() (Status, error) {
	snap, err := e.Snapshot()
	if err != nil {
		return Status{Cache: e.results.Stats()}, err
	}
	return Status{
		Version:  snap.Version(),
		Records:  len(snap.Records),
		Authors:  len(snap.Profiles),
		LoadedAt: snap.LoadedAt,
		Cache:    e.results.Stats(),
	}, nil
}

// Config returns the effective graph and insight configuration.
func (e *Engine) Config() (graph.Config, insights.Config) {
	return e.builder.Config(), e.analyzer.Config()
}

// memo returns the cached result for (snapshot version, key) or computes it
// once, however many callers ask concurrently.
func memo[T any](ctx context.Context, e *Engine, component, key string, compute func(*Snapshot) T) (T, Meta, error) {
	var zero T

	snap, err := e.Snapshot()
	if err != nil {
		return zero, Meta{}, err
	}
	cacheKey := snap.Version() + ":" + key
	meta := Meta{Version: snap.Version()}

	if v, ok := e.results.Get(cacheKey); ok {
		metrics.RecordCacheLookup(component, true)
		meta.Cached = true
		return v.(T), meta, nil
	}
	metrics.RecordCacheLookup(component, false)

	if err := ctx.Err(); err != nil {
		return zero, meta, err
	}

	v, err, _ := e.group.Do(cacheKey, func() (any, error) {
		// Double-check inside singleflight; another caller may have filled it.
		if v, ok := e.results.Peek(cacheKey); ok {
			return v, nil
		}

		start := time.Now()
		out := compute(snap)
		elapsed := time.Since(start)
		metrics.RecordBuild(component, elapsed)
		e.logger.Debug().Str("result", component).Str("version", snap.Version()).Dur("duration", elapsed).Msg("Computed result")

		e.results.Add(cacheKey, out)
		return out, nil
	})
	if err != nil {
		return zero, meta, err
	}
	return v.(T), meta, nil
}
