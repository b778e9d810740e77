// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/stellarlog/internal/api"
	"github.com/tomtom215/stellarlog/internal/catalog"
	"github.com/tomtom215/stellarlog/internal/config"
	"github.com/tomtom215/stellarlog/internal/engine"
	"github.com/tomtom215/stellarlog/internal/logging"
	"github.com/tomtom215/stellarlog/internal/models"
	"github.com/tomtom215/stellarlog/internal/supervisor"
	"github.com/tomtom215/stellarlog/internal/supervisor/services"
)

// directoryGCInterval spaces BadgerDB value log collection.
const directoryGCInterval = 10 * time.Minute

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the query API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

// profileStore is a directory that can be seeded.
type profileStore interface {
	catalog.AuthorDirectory
	Put(ctx context.Context, profiles ...models.AuthorProfile) error
}

// openDirectory builds the configured author directory. The returned closer
// is never nil. gc is set for the badger backend only.
func openDirectory(ctx context.Context, cfg *config.DirectoryConfig) (dir catalog.AuthorDirectory, gc services.Task, closer func() error, err error) {
	closer = func() error { return nil }

	var store profileStore
	switch cfg.Backend {
	case config.DirectoryNone:
		return nil, nil, closer, nil
	case config.DirectoryMemory:
		store = catalog.NewMemoryDirectory()
	case config.DirectoryBadger:
		bd, err := catalog.OpenBadgerDirectory(cfg.Path)
		if err != nil {
			return nil, nil, closer, err
		}
		store, gc, closer = bd, bd.RunGC, bd.Close
	default:
		return nil, nil, closer, fmt.Errorf("unknown directory backend %q", cfg.Backend)
	}

	if cfg.SeedFile != "" {
		seed, err := catalog.LoadFile(cfg.SeedFile)
		if err != nil {
			_ = closer()
			return nil, nil, func() error { return nil }, fmt.Errorf("seed author directory: %w", err)
		}
		if err := store.Put(ctx, seed.Authors...); err != nil {
			_ = closer()
			return nil, nil, func() error { return nil }, fmt.Errorf("seed author directory: %w", err)
		}
		logging.Info().Int("authors", len(seed.Authors)).Str("file", cfg.SeedFile).Msg("Author directory seeded")
	}

	breaker := catalog.NewBreakerDirectory(store, catalog.BreakerSettings{
		Name:          "author-directory",
		MaxFailures:   cfg.BreakerMaxFailures,
		Timeout:       cfg.BreakerTimeout,
		LookupTimeout: cfg.LookupTimeout,
	})
	return breaker, gc, closer, nil
}

//nolint:gocyclo // sequential setup steps
func serve(ctx context.Context, cfg *config.Config) error {
	logging.Info().Str("version", version).Msg("Starting Stellarlog")

	dir, gc, closeDir, err := openDirectory(ctx, &cfg.Directory)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeDir(); err != nil {
			logging.Error().Err(err).Msg("Failed to close author directory")
		}
	}()
	logging.Info().Str("backend", cfg.Directory.Backend).Msg("Author directory ready")

	eng := engine.New(engine.Options{
		Graph:         cfg.Graph,
		Insights:      cfg.Insights,
		CacheCapacity: cfg.Cache.Capacity,
		CacheTTL:      cfg.Cache.TTL,
		Directory:     dir,
	})

	mw := api.NewMiddleware(&api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		CORSMaxAge:         300,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
		RateLimitDisabled:  cfg.Server.RateLimitDisabled,
	})
	router := api.NewRouter(api.NewHandler(eng, version, cfg.Server.MaxBodyBytes), mw)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       2 * cfg.Server.WriteTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	// === DATA LAYER ===
	switch {
	case cfg.Catalog.Path == "":
		logging.Warn().Msg("No catalog path configured; waiting for PUT /api/v1/admin/catalog")
	case cfg.Catalog.ReloadInterval > 0:
		tree.AddDataService(catalog.NewReloadService(cfg.Catalog.Path, cfg.Catalog.ReloadInterval, eng))
	default:
		res, err := catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			return err
		}
		if err := eng.ApplyCatalog(ctx, res); err != nil {
			return fmt.Errorf("apply catalog: %w", err)
		}
	}
	if gc != nil {
		tree.AddDataService(services.NewPeriodicService("directory-gc", directoryGCInterval, gc))
	}

	// === API LAYER ===
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Stellarlog stopped")
	return nil
}
