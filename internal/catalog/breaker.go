// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package catalog

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/stellarlog/internal/logging"
	"github.com/tomtom215/stellarlog/internal/metrics"
	"github.com/tomtom215/stellarlog/internal/models"
)

// BreakerSettings configures BreakerDirectory.
type BreakerSettings struct {
	// Name labels the breaker in logs and metrics.
	Name string

	// MaxFailures consecutive failures open the circuit.
	MaxFailures uint32

	// Timeout is how long the circuit stays open before a trial request.
	Timeout time.Duration

	// LookupTimeout bounds each lookup. Zero leaves the caller's deadline.
	LookupTimeout time.Duration
}

// BreakerDirectory wraps an AuthorDirectory with a circuit breaker so a
// failing backend is skipped quickly instead of stalling every rebuild.
type BreakerDirectory struct {
	next     AuthorDirectory
	cb       *gobreaker.CircuitBreaker[map[string]models.AuthorProfile]
	name     string
	deadline time.Duration
}

// NewBreakerDirectory wraps next.
func NewBreakerDirectory(next AuthorDirectory, s BreakerSettings) *BreakerDirectory {
	if s.Name == "" {
		s.Name = "author-directory"
	}
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}

	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[map[string]models.AuthorProfile](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &BreakerDirectory{next: next, cb: cb, name: s.Name, deadline: s.LookupTimeout}
}

// Lookup implements AuthorDirectory with circuit breaker protection.
func (b *BreakerDirectory) Lookup(ctx context.Context, names []string) (map[string]models.AuthorProfile, error) {
	if b.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.deadline)
		defer cancel()
	}

	profiles, err := b.cb.Execute(func() (map[string]models.AuthorProfile, error) {
		return b.next.Lookup(ctx, names)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordDirectoryLookup("circuit_open")
		} else {
			metrics.RecordDirectoryLookup("error")
		}
		return nil, err
	}

	metrics.RecordDirectoryLookup("success")
	return profiles, nil
}

// State returns the breaker state name: closed, half-open or open.
func (b *BreakerDirectory) State() string {
	return stateToString(b.cb.State())
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
