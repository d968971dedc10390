// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExportFileName is the default name of an exported snapshot.
const ExportFileName = "arc-bookshelf-export.json"

// Snapshot is the transportable document: all books plus the custom genres.
// A nil Books means the document carried no books, as opposed to an empty list.
type Snapshot struct {
	Books  []Book   `json:"books" yaml:"books"`
	Genres []string `json:"genres" yaml:"genres"`

	// Repairs made to imported records, one line each.
	Warnings []string `json:"-" yaml:"-"`
}

// storedSnapshot is a Snapshot as read from an import document, before migration.
type storedSnapshot struct {
	Books  *[]storedBook `json:"books" yaml:"books"`
	Genres *[]string     `json:"genres" yaml:"genres"`
}

func newSnapshot(books []Book, genres []string) Snapshot {
	s := Snapshot{Books: make([]Book, 0, len(books)), Genres: []string{}}
	for _, b := range books {
		s.Books = append(s.Books, b.clone())
	}
	s.Genres = append(s.Genres, genres...)
	return s
}

// ExportSnapshot encodes books and custom genres as the JSON export document.
func ExportSnapshot(books []Book, customGenres []string) ([]byte, error) {
	data, err := json.MarshalIndent(newSnapshot(books, customGenres), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// EncodeYAML renders books and custom genres as a YAML document.
func EncodeYAML(books []Book, customGenres []string) ([]byte, error) {
	data, err := yaml.Marshal(newSnapshot(books, customGenres))
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// ImportSnapshot decodes a JSON export document. Records in the legacy
// single-genre schema are migrated. A key holding null counts as absent. Any
// failure wraps ErrInvalidSnapshot and nothing is returned.
func ImportSnapshot(data []byte) (Snapshot, error) {
	var keys map[string]any
	if err := json.Unmarshal(data, &keys); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	var raw storedSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return raw.migrate(hasSnapshotKeys(keys))
}

// DecodeYAML decodes a YAML export document.
func DecodeYAML(data []byte) (Snapshot, error) {
	var keys map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	var raw storedSnapshot
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return raw.migrate(hasSnapshotKeys(keys))
}

// DecodeSnapshot picks the decoder from the file extension of name; anything
// other than .yaml or .yml is treated as JSON.
func DecodeSnapshot(name string, data []byte) (Snapshot, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return ImportSnapshot(data)
	}
}

// hasSnapshotKeys reports whether a decoded document names books or genres,
// whatever their values.
func hasSnapshotKeys(keys map[string]any) bool {
	_, books := keys["books"]
	_, genres := keys["genres"]
	return books || genres
}

func (raw storedSnapshot) migrate(hasKeys bool) (Snapshot, error) {
	if !hasKeys {
		return Snapshot{}, fmt.Errorf("%w: document has neither books nor genres", ErrInvalidSnapshot)
	}

	var s Snapshot
	if raw.Books != nil {
		s.Books, s.Warnings = migrateBooks(*raw.Books)
	}
	if raw.Genres != nil {
		s.Genres = append([]string{}, (*raw.Genres)...)
	}
	return s, nil
}
