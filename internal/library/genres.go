// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import "slices"

// DefaultGenres seeds every registry. Only labels outside this list are persisted.
var DefaultGenres = []string{
	"Romance",
	"Fantasy",
	"Thriller",
	"Science Fiction",
	"Krimi",
	"Sachbuch",
	"Biografie",
	"Historisch",
	"Young Adult",
	"Kinderbuch",
	"Dark Romance",
	"Romantasy",
}

// Genres is the ordered set of genre labels offered for selection.
// It only grows; there is no removal.
type Genres struct {
	labels   []string
	index    map[string]struct{}
	defaults map[string]struct{}
}

// NewGenres returns defaults ∪ custom ∪ fromRecords, deduplicated, with the
// defaults first and the rest in discovery order.
func NewGenres(defaults, custom, fromRecords []string) *Genres {
	g := &Genres{
		index:    make(map[string]struct{}),
		defaults: make(map[string]struct{}, len(defaults)),
	}
	for _, label := range defaults {
		g.defaults[label] = struct{}{}
	}
	g.Merge(defaults...)
	g.Merge(custom...)
	g.Merge(fromRecords...)
	return g
}

// Merge adds labels not yet present and reports whether the registry grew.
// Labels are opaque; only the empty string is skipped.
func (g *Genres) Merge(labels ...string) bool {
	grew := false
	for _, label := range labels {
		if label == "" {
			continue
		}
		if _, ok := g.index[label]; ok {
			continue
		}
		g.index[label] = struct{}{}
		g.labels = append(g.labels, label)
		grew = true
	}
	return grew
}

// Contains reports whether label is registered.
func (g *Genres) Contains(label string) bool {
	_, ok := g.index[label]
	return ok
}

// Len returns the number of registered labels.
func (g *Genres) Len() int { return len(g.labels) }

// All returns every label in registry order.
func (g *Genres) All() []string {
	return slices.Clone(g.labels)
}

// Custom returns the labels that are not defaults, in registry order.
func (g *Genres) Custom() []string {
	out := []string{}
	for _, label := range g.labels {
		if _, ok := g.defaults[label]; !ok {
			out = append(out, label)
		}
	}
	return out
}

func genresOf(books []Book) []string {
	var out []string
	for _, b := range books {
		out = append(out, b.Genre...)
	}
	return out
}
