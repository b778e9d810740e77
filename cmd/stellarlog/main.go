// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

// Package main is the stellarlog command.
//
// Stellarlog turns a science fiction reading catalog into an entity graph of
// books, authors and protagonists, and answers relationship and insight
// queries over it.
//
// # Commands
//
//	stellarlog serve            run the query API under the supervisor tree
//	stellarlog analyze FILE     print the graph stats and every insight as JSON
//	stellarlog version          print build information
//
// # Configuration
//
// serve loads configuration via Koanf v2 (highest priority wins):
//   - Environment variables: STELLARLOG_<SECTION>__<KEY>, plus HTTP_PORT,
//     LOG_LEVEL, CATALOG_PATH and the other short aliases
//   - Config file: --config, CONFIG_PATH, ./config.yaml or /etc/stellarlog/config.yaml
//   - Built-in defaults
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains for
// server.shutdown_timeout and the catalog reloader stops before exit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Build information, set with -ldflags "-X main.version=...".
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
