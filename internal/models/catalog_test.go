// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package models

import "testing"

func TestKnownAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Isaac Asimov", "Isaac Asimov"},
		{"  Octavia E. Butler ", "Octavia E. Butler"},
		{"", ""},
		{"   ", ""},
		{UnknownAuthor, ""},
		{"unknown author", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := KnownAuthorName(tt.in); got != tt.want {
				t.Errorf("KnownAuthorName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCatalogRecordHasID(t *testing.T) {
	if (&CatalogRecord{ID: " "}).HasID() {
		t.Error("HasID() = true for a blank id, want false")
	}
	r := CatalogRecord{ID: "b1", Author: UnknownAuthor}
	if !r.HasID() {
		t.Error("HasID() = false, want true")
	}
	if got := r.KnownAuthor(); got != "" {
		t.Errorf("KnownAuthor() = %q, want empty", got)
	}
}
