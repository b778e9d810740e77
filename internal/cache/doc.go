// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

// Package cache provides the bounded in-memory cache the engine uses to
// memoize derived graphs and insights per catalog snapshot.
//
// # Usage
//
//	c := cache.NewLRU[*Result](8, cache.WithTTL[*Result](time.Hour))
//	c.Add(snapshot.Version(), result)
//	if r, ok := c.Get(snapshot.Version()); ok {
//	    return r
//	}
package cache
