// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCacheLookup(t *testing.T) {
	hitsBefore := testutil.ToFloat64(EngineCacheHits.WithLabelValues("test_component"))
	missesBefore := testutil.ToFloat64(EngineCacheMisses.WithLabelValues("test_component"))

	RecordCacheLookup("test_component", true)
	RecordCacheLookup("test_component", false)
	RecordCacheLookup("test_component", false)

	if got := testutil.ToFloat64(EngineCacheHits.WithLabelValues("test_component")) - hitsBefore; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(EngineCacheMisses.WithLabelValues("test_component")) - missesBefore; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordGraphShape(t *testing.T) {
	RecordGraphShape(
		map[string]int{"book": 12, "author": 4},
		map[string]int{"theme": 30, "authorship": 12},
		true,
	)

	if got := testutil.ToFloat64(GraphEntities.WithLabelValues("book")); got != 12 {
		t.Errorf("book entities = %v, want 12", got)
	}
	if got := testutil.ToFloat64(GraphEdges.WithLabelValues("authorship")); got != 12 {
		t.Errorf("authorship edges = %v, want 12", got)
	}
	if got := testutil.ToFloat64(GraphBucketed); got != 1 {
		t.Errorf("bucketed = %v, want 1", got)
	}

	RecordGraphShape(map[string]int{"book": 1}, nil, false)
	if got := testutil.ToFloat64(GraphBucketed); got != 0 {
		t.Errorf("bucketed = %v, want 0", got)
	}
}

func TestRecordCatalogLoad(t *testing.T) {
	okBefore := testutil.ToFloat64(CatalogReloads.WithLabelValues("success"))
	errBefore := testutil.ToFloat64(CatalogReloads.WithLabelValues("error"))

	RecordCatalogLoad(42, 2, nil)
	RecordCatalogLoad(0, 0, errors.New("boom"))

	if got := testutil.ToFloat64(CatalogRecords); got != 42 {
		t.Errorf("catalog records = %v, want 42", got)
	}
	if got := testutil.ToFloat64(CatalogReloads.WithLabelValues("success")) - okBefore; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CatalogReloads.WithLabelValues("error")) - errBefore; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/graph", "200"))
	RecordAPIRequest("GET", "/api/v1/graph", "200", 5*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/graph", "200")) - before; got != 1 {
		t.Errorf("requests delta = %v, want 1", got)
	}

	TrackActiveRequest(true)
	TrackActiveRequest(false)
	RecordBuild("graph", time.Millisecond)
	RecordDirectoryLookup("success")
}
