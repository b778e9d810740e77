// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/stellarlog/internal/config"
)

const defaultTestTimeout = 2 * time.Second

const sampleCatalog = `records:
  - id: b1
    title: Foundation
    author: Isaac Asimov
    tags: [empire, psychohistory]
    temporal_context_tags: [Golden Age]
  - id: b2
    title: I, Robot
    author: Isaac Asimov
    tags: [robots, empire]
    temporal_context_tags: [Golden Age]
  - id: b3
    title: Neuromancer
    author: William Gibson
    tags: [cyberspace]
    protagonist: Case
  - title: missing id
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))
	return path
}

// isolateConfig keeps the developer's config.yaml and environment out of the test.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv(config.ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Chdir(t.TempDir())
}

func TestAnalyzeCommand(t *testing.T) {
	isolateConfig(t)
	path := writeCatalog(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"analyze", path})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var report Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report), out.String())
	assert.Equal(t, 3, report.Records)
	assert.Equal(t, 1, report.Dropped)
	assert.Equal(t, 3, report.Stats.Books)
	assert.Equal(t, 2, report.Stats.Authors)
	assert.Equal(t, 1, report.Stats.Protagonists)
	assert.NotEmpty(t, report.Version)
	assert.NotEmpty(t, report.ThematicClusters)
	assert.Empty(t, report.Edges, "edges are only printed with --edges")
}

func TestAnalyzeCommand_WithEdges(t *testing.T) {
	isolateConfig(t)
	path := writeCatalog(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"analyze", "--edges", path})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var report Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.NotEmpty(t, report.Edges)
}

func TestAnalyzeCommand_MissingFile(t *testing.T) {
	isolateConfig(t)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"analyze", filepath.Join(t.TempDir(), "nope.json")})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "stellarlog dev"))
}

func TestOpenDirectory(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		dir, gc, closer, err := openDirectory(ctx, &config.DirectoryConfig{Backend: config.DirectoryNone})
		require.NoError(t, err)
		assert.Nil(t, dir)
		assert.Nil(t, gc)
		assert.NoError(t, closer())
	})

	t.Run("memory seeded", func(t *testing.T) {
		seed := filepath.Join(t.TempDir(), "authors.json")
		require.NoError(t, os.WriteFile(seed, []byte(`{"records":[],"authors":[{"id":"a1","name":"Isaac Asimov"}]}`), 0o600))

		dir, gc, closer, err := openDirectory(ctx, &config.DirectoryConfig{
			Backend:            config.DirectoryMemory,
			SeedFile:           seed,
			BreakerMaxFailures: 3,
			BreakerTimeout:     defaultTestTimeout,
			LookupTimeout:      defaultTestTimeout,
		})
		require.NoError(t, err)
		defer closer()
		assert.Nil(t, gc)

		got, err := dir.Lookup(ctx, []string{"isaac asimov"})
		require.NoError(t, err)
		assert.Equal(t, "a1", got["isaac asimov"].ID)
	})

	t.Run("badger", func(t *testing.T) {
		dir, gc, closer, err := openDirectory(ctx, &config.DirectoryConfig{
			Backend:            config.DirectoryBadger,
			Path:               t.TempDir(),
			BreakerMaxFailures: 3,
			BreakerTimeout:     defaultTestTimeout,
			LookupTimeout:      defaultTestTimeout,
		})
		require.NoError(t, err)
		require.NotNil(t, dir)
		require.NotNil(t, gc)
		assert.NoError(t, gc(ctx))
		assert.NoError(t, closer())
	})

	t.Run("bad seed", func(t *testing.T) {
		_, _, closer, err := openDirectory(ctx, &config.DirectoryConfig{
			Backend:  config.DirectoryMemory,
			SeedFile: filepath.Join(t.TempDir(), "missing.yaml"),
		})
		assert.Error(t, err)
		assert.NoError(t, closer())
	})
}
