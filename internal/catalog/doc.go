// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

/*
Package catalog loads catalog snapshots and resolves author profiles.

# Loading

LoadFile reads a JSON (.json) or YAML (.yaml, .yml) document:

	records:
	  - id: b1
	    title: Foundation
	    author: Isaac Asimov
	    tags: [empire, psychohistory]
	    temporal_context_tags: [Golden Age]
	authors:
	  - id: a1
	    name: Isaac Asimov

A bare list of records is accepted as well. Records that fail validation
(blank id, implausible publication year) or repeat an earlier id are dropped
and counted in LoadResult; they never fail the load.

# Author Directory

AuthorDirectory resolves author names to profiles. MemoryDirectory keeps
them in process, BadgerDirectory persists them in BadgerDB under
"author:<lowercased name>" keys, and BreakerDirectory wraps either with a
sony/gobreaker circuit breaker so a failing backend is skipped quickly.

# Reloading

ReloadService is a suture.Service that polls the catalog file and applies
every changed version to an Applier (the engine).
*/
package catalog
