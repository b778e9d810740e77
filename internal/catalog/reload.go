// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package catalog

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/stellarlog/internal/logging"
	"github.com/tomtom215/stellarlog/internal/metrics"
)

// Applier receives each successfully loaded catalog.
//
// Satisfied by *engine.Engine.
type Applier interface {
	ApplyCatalog(ctx context.Context, res *LoadResult) error
}

// ReloadService watches a catalog file and hands every new version to an
// Applier. It implements suture.Service.
//
// The file is checked once when Serve starts and then every interval. A
// change in modification time or size triggers a reload. Load failures are
// logged and retried on the next tick; the previous snapshot stays active.
type ReloadService struct {
	path     string
	interval time.Duration
	applier  Applier
	logger   zerolog.Logger

	mu      sync.Mutex
	modTime time.Time
	size    int64
	loads   int
}

// NewReloadService creates a reload service for path.
func NewReloadService(path string, interval time.Duration, applier Applier) *ReloadService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &ReloadService{
		path:     path,
		interval: interval,
		applier:  applier,
		logger:   logging.WithComponent("catalog-reload"),
	}
}

// Serve implements suture.Service.
func (s *ReloadService) Serve(ctx context.Context) error {
	s.Check(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Check reloads the file if it changed since the last successful load.
// It reports whether a new catalog was applied.
func (s *ReloadService) Check(ctx context.Context) bool {
	info, err := os.Stat(s.path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Catalog file not readable")
		return false
	}

	s.mu.Lock()
	unchanged := s.loads > 0 && info.ModTime().Equal(s.modTime) && info.Size() == s.size
	s.mu.Unlock()
	if unchanged {
		return false
	}

	if err := s.reload(ctx); err != nil {
		metrics.RecordCatalogLoad(0, 0, err)
		s.logger.Error().Err(err).Str("path", s.path).Msg("Catalog reload failed")
		return false
	}

	s.mu.Lock()
	s.modTime = info.ModTime()
	s.size = info.Size()
	s.loads++
	s.mu.Unlock()
	return true
}

func (s *ReloadService) reload(ctx context.Context) error {
	res, err := LoadFile(s.path)
	if err != nil {
		return err
	}
	if err := s.applier.ApplyCatalog(ctx, res); err != nil {
		return fmt.Errorf("apply catalog: %w", err)
	}

	metrics.RecordCatalogLoad(len(res.Records), res.Dropped, nil)
	event := s.logger.Info()
	if res.Dropped > 0 {
		event = s.logger.Warn().Interface("dropped_by", res.DroppedBy)
	}
	event.Str("path", s.path).Int("records", len(res.Records)).Int("dropped", res.Dropped).Msg("Catalog loaded")
	return nil
}

// Loads returns the number of catalogs applied so far.
func (s *ReloadService) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

// String implements fmt.Stringer for logging.
// Suture uses this to identify the service in log messages.
func (s *ReloadService) String() string {
	return "catalog-reload"
}
