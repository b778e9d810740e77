// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriodicService_DefaultInterval(t *testing.T) {
	p := NewPeriodicService("gc", 0, func(context.Context) error { return nil })
	if p.interval != time.Minute {
		t.Errorf("interval = %v, want %v", p.interval, time.Minute)
	}
	if p.String() != "gc" {
		t.Errorf("String() = %q, want %q", p.String(), "gc")
	}
}

func TestPeriodicService_RunsUntilCanceled(t *testing.T) {
	var calls atomic.Int32
	p := NewPeriodicService("gc", 10*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- p.Serve(ctx) }()

	require.Eventually(t, func() bool { return p.Runs() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return")
	}
	assert.Equal(t, int64(calls.Load()), p.Runs())
	assert.Zero(t, p.Failures())
}

func TestPeriodicService_FailuresDoNotStop(t *testing.T) {
	p := NewPeriodicService("flaky", 10*time.Millisecond, func(context.Context) error {
		return errors.New("store busy")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- p.Serve(ctx) }()

	require.Eventually(t, func() bool { return p.Failures() >= 2 }, 2*time.Second, 5*time.Millisecond)

	select {
	case err := <-errCh:
		t.Fatalf("Serve returned early: %v", err)
	default:
	}
}
