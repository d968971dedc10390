// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// schemaVersion identifies the shape a stored record was written in.
type schemaVersion int

const (
	schemaV1 schemaVersion = 1 // genre is a single string
	schemaV2 schemaVersion = 2 // genre is a list of strings
)

// genreField holds the stored genre value before migration. Exactly one of
// scalar or list is meaningful, depending on the schema it was written in.
type genreField struct {
	scalar *string
	list   []string
}

func (f *genreField) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		return nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		f.scalar = &s
		return nil
	default:
		return json.Unmarshal(trimmed, &f.list)
	}
}

func (f *genreField) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
		s := node.Value
		f.scalar = &s
		return nil
	case yaml.SequenceNode:
		return node.Decode(&f.list)
	default:
		return fmt.Errorf("genre: unexpected YAML node at line %d", node.Line)
	}
}

func (f genreField) version() schemaVersion {
	if f.scalar != nil {
		return schemaV1
	}
	return schemaV2
}

// storedBook is a record as found in storage or in an import document, in any
// schema version.
type storedBook struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Author      string     `json:"author" yaml:"author"`
	Price       float64    `json:"price" yaml:"price"`
	Genre       genreField `json:"genre" yaml:"genre"`
	ImageURL    string     `json:"imageUrl" yaml:"imageUrl"`
	ReleaseDate string     `json:"releaseDate" yaml:"releaseDate"`
	ShopLink    string     `json:"shopLink" yaml:"shopLink"`
	IsRead      bool       `json:"isRead" yaml:"isRead"`
	IsBought    bool       `json:"isBought" yaml:"isBought"`
	IsArrived   *bool      `json:"isArrived" yaml:"isArrived"`
	Rating      float64    `json:"rating" yaml:"rating"`
	Notes       string     `json:"notes" yaml:"notes"`
	Category    string     `json:"category" yaml:"category"`
}

// migrateBook upgrades a stored record to the current schema. A record is
// never dropped: an unknown category is kept as stored and an unreadable
// release date is cleared. Each such repair is returned as a problem.
func migrateBook(rec storedBook) (Book, []string) {
	var genres []string
	switch rec.Genre.version() {
	case schemaV1:
		genres = upgradeGenreV1(*rec.Genre.scalar)
	case schemaV2:
		genres = slices.Clone(rec.Genre.list)
	}
	if genres == nil {
		genres = []string{}
	}

	var problems []string
	category, err := ParseCategory(rec.Category)
	if err != nil {
		category = Category(rec.Category)
		problems = append(problems, fmt.Sprintf("book %q: %v, kept as stored", rec.ID, err))
	}

	b := Book{
		ID:        rec.ID,
		Name:      rec.Name,
		Author:    rec.Author,
		Price:     rec.Price,
		Genre:     genres,
		ImageURL:  rec.ImageURL,
		ShopLink:  rec.ShopLink,
		IsRead:    rec.IsRead,
		IsBought:  rec.IsBought,
		IsArrived: rec.IsArrived,
		Rating:    rec.Rating,
		Notes:     rec.Notes,
		Category:  category,
	}
	if strings.TrimSpace(rec.ReleaseDate) != "" {
		d, err := ParseDate(rec.ReleaseDate)
		if err != nil {
			problems = append(problems, fmt.Sprintf("book %q: %v, release date cleared", rec.ID, err))
		} else {
			b.ReleaseDate = &d
		}
	}
	return b, problems
}

// upgradeGenreV1 wraps a v1 single genre into a one-element list.
func upgradeGenreV1(genre string) []string {
	if genre == "" {
		return []string{}
	}
	return []string{genre}
}

func migrateBooks(recs []storedBook) ([]Book, []string) {
	books := make([]Book, 0, len(recs))
	var problems []string
	for _, rec := range recs {
		b, p := migrateBook(rec)
		books = append(books, b)
		problems = append(problems, p...)
	}
	return books, problems
}

// decodeStoredBooks decodes a JSON array of records in any schema version.
// Only a document that is not a valid record array is an error.
func decodeStoredBooks(data []byte) ([]Book, []string, error) {
	var recs []storedBook
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, nil, err
	}
	books, problems := migrateBooks(recs)
	return books, problems, nil
}
