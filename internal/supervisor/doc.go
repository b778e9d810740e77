// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

/*
Package supervisor provides process supervision for Stellarlog using suture v4.

The tree separates the services that feed the engine from the one that
serves it:

	RootSupervisor ("stellarlog")
	├── DataSupervisor ("data-layer")
	│   ├── catalog.ReloadService ("catalog-reload", when catalog.path is set)
	│   └── services.PeriodicService ("directory-gc", badger backend only)
	└── APISupervisor ("api-layer")
	    └── services.HTTPServerService ("http-server")

Crashed services restart with suture's backoff. Events are logged through
the sutureslog adapter, so supervisor output carries the same fields as the
rest of the application log.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(catalog.NewReloadService(path, interval, eng))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Thread Safety

SupervisorTree methods may be called concurrently. Services added after
Serve has started are launched immediately.
*/
package supervisor
