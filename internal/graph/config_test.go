// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package graph

import (
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"negative weight", func(c *Config) { c.SameAuthorWeight = -1 }, "same_author_weight"},
		{"theme cap below weight", func(c *Config) { c.ThemeCap = 5 }, "theme_cap"},
		{"subgenre cap below weight", func(c *Config) { c.SubgenreCap = 1 }, "subgenre_cap"},
		{"tiny bucket window", func(c *Config) { c.BucketWindow = 1 }, "bucket_window"},
		{"zero visible connections", func(c *Config) { c.MaxVisibleConnections = 0 }, "max_visible_connections"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}

	if got := DefaultConfig().EdgeLimit(); got != 160 {
		t.Errorf("EdgeLimit() = %d, want 160", got)
	}
}
