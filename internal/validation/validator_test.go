// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/stellarlog/internal/models"
)

func TestValidateStruct_CatalogRecord(t *testing.T) {
	t.Parallel()

	year := 1984
	badYear := 12
	tests := []struct {
		name      string
		record    models.CatalogRecord
		wantErr   bool
		wantField string
	}{
		{"valid", models.CatalogRecord{ID: "neuromancer", PublicationYear: &year}, false, ""},
		{"missing id", models.CatalogRecord{Title: "No id"}, true, "CatalogRecord.id"},
		{"blank id", models.CatalogRecord{ID: "   "}, true, "CatalogRecord.id"},
		{"implausible year", models.CatalogRecord{ID: "x", PublicationYear: &badYear}, true, "CatalogRecord.publication_year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.record)
			if !tt.wantErr {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if verr.Fields[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Fields[0].Field, tt.wantField)
			}
		})
	}
}

func TestErrors_ToAPIError(t *testing.T) {
	t.Parallel()

	single := &Errors{Fields: []FieldError{{Field: "id", Tag: "required", Message: "id is required"}}}
	apiErr := single.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" || apiErr.Message != "id is required" || apiErr.Details["field"] != "id" {
		t.Errorf("ToAPIError() = %+v", apiErr)
	}

	multi := &Errors{Fields: []FieldError{
		{Field: "a", Message: "a is required"},
		{Field: "b", Message: "b must be at least 1"},
	}}
	apiErr = multi.ToAPIError()
	if !strings.Contains(apiErr.Message, "; ") {
		t.Errorf("Message = %q, want joined messages", apiErr.Message)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Errorf("Details = %v, want fields list", apiErr.Details)
	}

	if got := (&Errors{}).ToAPIError().Message; got != "Validation failed" {
		t.Errorf("empty Message = %q", got)
	}
}

func TestValidateStruct_Profile(t *testing.T) {
	t.Parallel()

	p := models.AuthorProfile{ID: "1", Name: "  ", PortraitURL: "img/le-guin.jpg"}
	verr := ValidateStruct(&p)
	if verr == nil {
		t.Fatal("expected blank name error")
	}
	if !strings.Contains(verr.Error(), "must not be blank") {
		t.Errorf("Error() = %q", verr.Error())
	}
	if strings.Contains(verr.Error(), "URL") {
		t.Errorf("relative portrait path should not fail validation: %q", verr.Error())
	}
}
