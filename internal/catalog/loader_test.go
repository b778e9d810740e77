// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/stellarlog/internal/logging"
	"github.com/tomtom215/stellarlog/internal/models"
)

const jsonCatalog = `{
  "records": [
    {"id": "b1", "title": "Foundation", "author": "Isaac Asimov", "tags": ["empire", "psychohistory"], "temporal_context_tags": ["Golden Age"]},
    {"id": "  ", "title": "No ID"},
    {"id": "b2", "title": "Dune", "author": "Frank Herbert", "publication_year": 1965},
    {"id": "b1", "title": "Duplicate"},
    {"id": "b3", "title": "Future", "publication_year": 99999}
  ],
  "authors": [
    {"id": "a1", "name": "Isaac Asimov", "portrait_url": "https://example.com/asimov.png"},
    {"id": "", "name": "Nobody"}
  ]
}`

const yamlCatalog = `
records:
  - id: b1
    title: Neuromancer
    author: William Gibson
    tags: [cyberspace, hacking]
    historical_context_tags: [Cyberpunk Era]
    created_at: 2024-03-01T10:00:00Z
  - title: Missing id
authors:
  - id: a2
    name: William Gibson
`

func TestLoad_JSONDocument(t *testing.T) {
	res, err := Load(strings.NewReader(jsonCatalog), FormatJSON)
	require.NoError(t, err)

	require.Len(t, res.Records, 3)
	assert.Equal(t, "b1", res.Records[0].ID)
	assert.Equal(t, "Foundation", res.Records[0].Title)
	assert.Equal(t, []string{"Golden Age"}, res.Records[0].TemporalContextTags)
	assert.Equal(t, "b2", res.Records[1].ID)
	require.NotNil(t, res.Records[1].PublicationYear)
	assert.Equal(t, 1965, *res.Records[1].PublicationYear)
	assert.Equal(t, "b3", res.Records[2].ID)

	assert.Equal(t, 2, res.Dropped)
	assert.Equal(t, 1, res.DroppedBy[DropInvalid])
	assert.Equal(t, 1, res.DroppedBy[DropDuplicateID])

	require.Len(t, res.Authors, 1)
	assert.Equal(t, "Isaac Asimov", res.Authors[0].Name)
}

func TestLoad_KeepsAnyPublicationYear(t *testing.T) {
	doc := `[
	  {"id": "epic", "title": "Gilgamesh", "publication_year": -1200},
	  {"id": "zero", "title": "Year Zero", "publication_year": 0},
	  {"id": "modern", "title": "The Martian Chronicles", "publication_year": 1950}
	]`

	res, err := Load(strings.NewReader(doc), FormatJSON)
	require.NoError(t, err)

	require.Len(t, res.Records, 3)
	assert.Zero(t, res.Dropped)
	for i, want := range []int{-1200, 0, 1950} {
		require.NotNil(t, res.Records[i].PublicationYear, res.Records[i].ID)
		assert.Equal(t, want, *res.Records[i].PublicationYear, res.Records[i].ID)
	}
}

func TestLoad_InvalidPortraitURLKeepsProfile(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	doc := `{
	  "records": [{"id": "b1", "author": "Octavia E. Butler"}],
	  "authors": [
	    {"id": "a1", "name": "Octavia E. Butler", "portrait_url": "img/butler.jpg", "bio": "Parable novels"},
	    {"id": "a2", "name": "Ted Chiang", "portrait_url": "https://example.com/chiang.png"}
	  ]
	}`

	res, err := Load(strings.NewReader(doc), FormatJSON)
	require.NoError(t, err)

	require.Len(t, res.Authors, 2)
	assert.Equal(t, "Octavia E. Butler", res.Authors[0].Name)
	assert.Equal(t, "Parable novels", res.Authors[0].Bio)
	assert.Empty(t, res.Authors[0].PortraitURL)
	assert.Equal(t, "https://example.com/chiang.png", res.Authors[1].PortraitURL)

	assert.Contains(t, buf.String(), "Ignoring invalid author portrait URL")
	assert.Contains(t, buf.String(), "img/butler.jpg")
}

func TestLoad_JSONBareList(t *testing.T) {
	res, err := Load(strings.NewReader(`[{"id":"x"},{"id":"y"}]`), FormatJSON)
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)
	assert.Zero(t, res.Dropped)
}

func TestLoad_YAMLDocument(t *testing.T) {
	res, err := Load(strings.NewReader(yamlCatalog), FormatYAML)
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, "Neuromancer", rec.Title)
	assert.Equal(t, []string{"Cyberpunk Era"}, rec.HistoricalContextTags)
	assert.Equal(t, 2024, rec.CreatedAt.Year())
	assert.Equal(t, 1, res.Dropped)

	require.Len(t, res.Authors, 1)
	assert.Equal(t, "a2", res.Authors[0].ID)
}

func TestLoad_YAMLBareList(t *testing.T) {
	res, err := Load(strings.NewReader("- id: a\n- id: b\n  tags: [x]\n"), FormatYAML)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, []string{"x"}, res.Records[1].Tags)
}

func TestLoad_Empty(t *testing.T) {
	res, err := Load(strings.NewReader("  \n"), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.NotNil(t, res.Records)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(strings.NewReader(`{"records": [`), FormatJSON)
	assert.Error(t, err)

	_, err = Load(strings.NewReader("records: [unterminated"), FormatYAML)
	assert.Error(t, err)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load(strings.NewReader("x"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"catalog.json", FormatJSON, false},
		{"catalog.YAML", FormatYAML, false},
		{"/data/catalog.yml", FormatYAML, false},
		{"catalog.csv", "", true},
		{"catalog", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCatalog), 0o600))

	res, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, res.Records, 1)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "catalog.txt"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEncode_ReadBack(t *testing.T) {
	year := 1951
	doc := &Document{
		Records: []models.CatalogRecord{{ID: "b1", Title: "Foundation", PublicationYear: &year, Tags: []string{"empire"}}},
		Authors: []models.AuthorProfile{{ID: "a1", Name: "Isaac Asimov"}},
	}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, doc))

			res, err := Load(&buf, format)
			require.NoError(t, err)
			require.Len(t, res.Records, 1)
			assert.Equal(t, "Foundation", res.Records[0].Title)
			assert.Equal(t, 1951, *res.Records[0].PublicationYear)
			require.Len(t, res.Authors, 1)
		})
	}
}
