// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

/*
Package models defines the data shared between the catalog loader, the
engine and the HTTP API.

  - CatalogRecord: one tracked work as supplied by the catalog
  - AuthorProfile: an author directory entry used to decorate author nodes
  - APIResponse, Metadata, APIError: the envelope every endpoint returns
  - HealthStatus: the health endpoint payload

Struct tags carry json, yaml and validate annotations so the same types are
decoded from catalog files and checked by internal/validation.
*/
package models
