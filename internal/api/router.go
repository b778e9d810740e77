// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires the handlers into a Chi route tree.
type Router struct {
	handler    *Handler
	middleware *Middleware
}

// NewRouter creates a router. A nil middleware selects the defaults.
func NewRouter(handler *Handler, middleware *Middleware) *Router {
	if middleware == nil {
		middleware = NewMiddleware(nil)
	}
	return &Router{handler: handler, middleware: middleware}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.middleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, codeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(PrometheusMetrics)
		r.Use(chimiddleware.Compress(5, "application/json", "application/yaml"))

		// Health is exempt from rate limiting for monitoring probes.
		r.Get("/health", router.handler.Health)

		r.Group(func(r chi.Router) {
			r.Use(router.middleware.RateLimit())

			r.Route("/graph", func(r chi.Router) {
				r.Get("/", router.handler.Graph)
				r.Get("/edge", router.handler.Edge)
				r.Route("/nodes/{id}", func(r chi.Router) {
					r.Get("/neighbors", router.handler.Neighbors)
					r.Get("/related", router.handler.Related)
					r.Get("/breakdown", router.handler.Breakdown)
				})
			})

			r.Route("/insights", func(r chi.Router) {
				r.Get("/clusters", router.handler.Clusters)
				r.Get("/bridges", router.handler.Bridges)
				r.Get("/velocity", router.handler.Velocity)
				r.Get("/influence", router.handler.Influence)
				r.Get("/evolution", router.handler.Evolution)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Get("/catalog", router.handler.ExportCatalog)
				r.Put("/catalog", router.handler.ReplaceCatalog)
				r.Post("/rebuild", router.handler.Rebuild)
			})
		})
	})

	return r
}
