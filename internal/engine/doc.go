// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

// Package engine holds the active catalog snapshot and serves memoized graph
// and insight results for it.
//
// A Snapshot is versioned by a digest of its content. Every derived result
// (graph, clusters, bridges, velocity, influence, evolution) is cached in an
// LRU under "<version>:<result>", so a new snapshot naturally misses and an
// identical one reuses prior work. Velocity also depends on the clock and is
// keyed per UTC hour. Concurrent misses are collapsed with singleflight.
//
// Author profiles are resolved once per snapshot from inline catalog entries
// and the optional catalog.AuthorDirectory. A failing directory is logged and
// skipped; it never blocks a snapshot.
//
// Invalidate drops the cache for administrative rebuilds.
package engine
