// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Engine Metrics
	EngineBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stellarlog_engine_build_duration_seconds",
			Help:    "Duration of graph and insight computations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"component"}, // "graph", "clusters", "bridges", "velocity", "influence", "evolution"
	)

	EngineCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stellarlog_engine_cache_hits_total",
			Help: "Total number of memoized results served without recomputation",
		},
		[]string{"component"},
	)

	EngineCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stellarlog_engine_cache_misses_total",
			Help: "Total number of results computed because no memoized copy existed",
		},
		[]string{"component"},
	)

	EngineCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stellarlog_engine_cache_evictions_total",
			Help: "Total number of snapshot results evicted from the memo cache",
		},
	)

	EngineInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stellarlog_engine_invalidations_total",
			Help: "Total number of administrative cache invalidations",
		},
	)

	// Graph Shape Metrics
	GraphEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stellarlog_graph_entities",
			Help: "Number of entities in the current graph by node type",
		},
		[]string{"node_type"},
	)

	GraphEdges = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stellarlog_graph_edges",
			Help: "Number of edges in the current graph by edge type",
		},
		[]string{"edge_type"},
	)

	GraphBucketed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stellarlog_graph_bucketed",
			Help: "1 when the current graph was built with bucketed candidate generation",
		},
	)

	// Catalog Metrics
	CatalogRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stellarlog_catalog_records",
			Help: "Number of records in the active catalog snapshot",
		},
	)

	CatalogRecordsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stellarlog_catalog_records_dropped_total",
			Help: "Total number of catalog records rejected during load",
		},
		[]string{"reason"},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stellarlog_catalog_reloads_total",
			Help: "Total number of catalog reload attempts",
		},
		[]string{"status"}, // "success", "error"
	)

	// Author Directory Metrics
	DirectoryLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stellarlog_directory_lookups_total",
			Help: "Total number of author directory lookups",
		},
		[]string{"status"}, // "success", "error", "circuit_open"
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stellarlog_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stellarlog_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stellarlog_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stellarlog_api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)
)

// RecordBuild records the duration of one engine computation.
func RecordBuild(component string, duration time.Duration) {
	EngineBuildDuration.WithLabelValues(component).Observe(duration.Seconds())
}

// RecordCacheLookup records a memo cache hit or miss.
func RecordCacheLookup(component string, hit bool) {
	if hit {
		EngineCacheHits.WithLabelValues(component).Inc()
		return
	}
	EngineCacheMisses.WithLabelValues(component).Inc()
}

// RecordGraphShape publishes the entity and edge counts of the latest graph.
func RecordGraphShape(entities, edges map[string]int, bucketed bool) {
	GraphEntities.Reset()
	for nodeType, n := range entities {
		GraphEntities.WithLabelValues(nodeType).Set(float64(n))
	}
	GraphEdges.Reset()
	for edgeType, n := range edges {
		GraphEdges.WithLabelValues(edgeType).Set(float64(n))
	}
	if bucketed {
		GraphBucketed.Set(1)
	} else {
		GraphBucketed.Set(0)
	}
}

// RecordCatalogLoad records a reload attempt and, on success, the new size.
func RecordCatalogLoad(records, dropped int, err error) {
	if err != nil {
		CatalogReloads.WithLabelValues("error").Inc()
		return
	}
	CatalogReloads.WithLabelValues("success").Inc()
	CatalogRecords.Set(float64(records))
	if dropped > 0 {
		CatalogRecordsDropped.WithLabelValues("invalid").Add(float64(dropped))
	}
}

// RecordDirectoryLookup records the outcome of an author directory lookup.
func RecordDirectoryLookup(status string) {
	DirectoryLookups.WithLabelValues(status).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
