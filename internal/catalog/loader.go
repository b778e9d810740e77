// Stellarlog - Science Fiction Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stellarlog

package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/stellarlog/internal/logging"
	"github.com/tomtom215/stellarlog/internal/models"
	"github.com/tomtom215/stellarlog/internal/validation"
)

// ErrUnsupportedFormat is returned for catalog files that are neither JSON
// nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Format is the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Drop reasons reported in LoadResult.DroppedBy.
const (
	DropInvalid     = "invalid"
	DropDuplicateID = "duplicate_id"
)

// Document is the on-disk catalog shape. A bare list of records is also
// accepted.
type Document struct {
	Records []models.CatalogRecord `json:"records" yaml:"records"`
	Authors []models.AuthorProfile `json:"authors,omitempty" yaml:"authors,omitempty"`
}

// LoadResult is a decoded, validated catalog.
type LoadResult struct {
	Records []models.CatalogRecord
	Authors []models.AuthorProfile

	// Dropped counts records excluded by validation or duplicate ids.
	Dropped   int
	DroppedBy map[string]int
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFormat parses a format name such as "json", "yaml" or "yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// LoadFile reads and validates the catalog at path.
func LoadFile(path string) (*LoadResult, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	res, err := Load(f, format)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return res, nil
}

// Plausible publication years. Years outside the range are logged and kept.
const (
	minPlausibleYear = 1000
	maxPlausibleYear = 3000
)

// Load decodes a catalog document from r. Records without an id or that
// repeat an earlier id are dropped and counted; they never fail the load.
func Load(r io.Reader, format Format) (*LoadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}

	res := &LoadResult{
		Records:   make([]models.CatalogRecord, 0, len(doc.Records)),
		Authors:   make([]models.AuthorProfile, 0, len(doc.Authors)),
		DroppedBy: make(map[string]int),
	}

	seen := make(map[string]struct{}, len(doc.Records))
	for i := range doc.Records {
		rec := doc.Records[i]
		rec.ID = strings.TrimSpace(rec.ID)
		if verrs := validation.ValidateStruct(&rec); verrs != nil {
			res.drop(DropInvalid)
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			res.drop(DropDuplicateID)
			continue
		}
		seen[rec.ID] = struct{}{}
		if y := rec.PublicationYear; y != nil && (*y < minPlausibleYear || *y > maxPlausibleYear) {
			logging.Debug().Str("id", rec.ID).Int("publication_year", *y).Msg("Unusual publication year")
		}
		res.Records = append(res.Records, rec)
	}

	for i := range doc.Authors {
		p := doc.Authors[i]
		if verrs := validation.ValidateStruct(&p); verrs != nil {
			continue
		}
		if p.PortraitURL != "" && validation.GetValidator().Var(p.PortraitURL, "url") != nil {
			logging.Warn().Str("author", p.Name).Str("portrait_url", p.PortraitURL).
				Msg("Ignoring invalid author portrait URL")
			p.PortraitURL = ""
		}
		res.Authors = append(res.Authors, p)
	}

	return res, nil
}

func (r *LoadResult) drop(reason string) {
	r.Dropped++
	r.DroppedBy[reason]++
}

// decode accepts either a Document or a bare list of records.
func decode(data []byte, format Format) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &Document{}, nil
	}

	var doc Document
	switch format {
	case FormatJSON:
		if trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &doc.Records); err != nil {
				return nil, fmt.Errorf("decode json records: %w", err)
			}
			return &doc, nil
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(trimmed, &root); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
		if len(root.Content) > 0 && root.Content[0].Kind == yaml.SequenceNode {
			if err := root.Content[0].Decode(&doc.Records); err != nil {
				return nil, fmt.Errorf("decode yaml records: %w", err)
			}
			return &doc, nil
		}
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &doc, nil
}

// Encode writes records and author profiles as a Document.
func Encode(w io.Writer, format Format, doc *Document) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json catalog: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml catalog: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
