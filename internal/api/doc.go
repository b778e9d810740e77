// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

/*
Package api exposes the entity graph and the insights over HTTP using the
Chi router.

# Endpoints

Health:
  - GET /api/v1/health

Graph:
  - GET /api/v1/graph?types=theme,author&min_score=20
  - GET /api/v1/graph/nodes/{id}/neighbors?degree=1|2
  - GET /api/v1/graph/nodes/{id}/related?limit=N
  - GET /api/v1/graph/nodes/{id}/breakdown
  - GET /api/v1/graph/edge?a=ID&b=ID

Insights:
  - GET /api/v1/insights/clusters?kind=thematic|temporal
  - GET /api/v1/insights/bridges?kind=all|conceptual|temporal
  - GET /api/v1/insights/velocity
  - GET /api/v1/insights/influence
  - GET /api/v1/insights/evolution

Administration:
  - GET  /api/v1/admin/catalog?format=json|yaml (export the active snapshot)
  - PUT  /api/v1/admin/catalog (replace the snapshot; JSON or YAML body)
  - POST /api/v1/admin/rebuild (drop memoized results and rebuild)

Prometheus metrics are served at /metrics.

# Responses

Every JSON endpoint returns models.APIResponse. Metadata carries the
snapshot version the result was computed from and whether it was served
from the memo cache. Queries issued before any catalog is loaded fail with
503 and code NO_SNAPSHOT.

# Middleware

Request IDs (X-Request-ID) are attached to the logging context, CORS is
handled by go-chi/cors and per-IP rate limiting by go-chi/httprate.
*/
package api
