// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

/*
Package services provides suture.Service wrappers for Stellarlog components.

Each wrapper translates a component lifecycle into suture's context-aware
Serve method:

	type Service interface {
	    Serve(ctx context.Context) error
	}

HTTPServerService runs an *http.Server (or anything with ListenAndServe and
Shutdown) and shuts it down gracefully when the context is canceled.

PeriodicService runs a maintenance task on a fixed interval, such as
reclaiming BadgerDB value log space in the author directory. A failing run
is logged and retried on the next tick; it never restarts the service.

Both implement fmt.Stringer so supervisor events name the service.
*/
package services
