// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package insights

// Analyzer runs the catalog-level analyses. It holds only configuration and
// is safe for concurrent use.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer. A zero Config falls back to defaults.
//
//nolint:gocritic // Config is copied so later caller edits do not leak in
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return &Analyzer{cfg: cfg}
}

// Config returns the analyzer configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}
