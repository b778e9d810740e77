// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/stellarlog/internal/logging"
)

// Task is one run of a periodic maintenance job.
type Task func(ctx context.Context) error

// PeriodicService runs a Task every interval until its context is canceled.
//
// A failing run is logged and counted but does not end Serve, so a flaky
// store never triggers supervisor restarts for routine maintenance.
//
//	gc := services.NewPeriodicService("directory-gc", 10*time.Minute, dir.RunGC)
//	tree.AddDataService(gc)
type PeriodicService struct {
	name     string
	interval time.Duration
	task     Task

	runs     atomic.Int64
	failures atomic.Int64
}

// NewPeriodicService creates a periodic service. A non-positive interval
// selects one minute.
func NewPeriodicService(name string, interval time.Duration, task Task) *PeriodicService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PeriodicService{name: name, interval: interval, task: task}
}

// Serve implements suture.Service.
func (p *PeriodicService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p *PeriodicService) runOnce(ctx context.Context) {
	start := time.Now()
	p.runs.Add(1)
	if err := p.task(ctx); err != nil {
		p.failures.Add(1)
		logging.Warn().Err(err).Str("service", p.name).Msg("Periodic task failed")
		return
	}
	logging.Debug().Str("service", p.name).Dur("duration", time.Since(start)).Msg("Periodic task completed")
}

// Runs returns how many times the task has run.
func (p *PeriodicService) Runs() int64 {
	return p.runs.Load()
}

// Failures returns how many runs returned an error.
func (p *PeriodicService) Failures() int64 {
	return p.failures.Load()
}

// String implements fmt.Stringer for supervisor events.
func (p *PeriodicService) String() string {
	return p.name
}
