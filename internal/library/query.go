// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the field Sort orders by.
type SortKey string

const (
	SortName   SortKey = "name"
	SortAuthor SortKey = "author"
	SortPrice  SortKey = "price"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// ParseSortKey validates a sort key name.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(s)); k {
	case SortName, SortAuthor, SortPrice:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q (choose name, author, price)", s)
}

// ParseSortOrder validates a sort order name.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(s)); o {
	case Asc, Desc:
		return o, nil
	}
	return "", fmt.Errorf("unknown sort order %q (choose asc, desc)", s)
}

// FilterByCategory keeps the books in category c.
func FilterByCategory(books []Book, c Category) []Book {
	return filter(books, func(b Book) bool { return b.Category == c })
}

// Search keeps books whose name or author contains term, ignoring case.
// An empty term keeps everything.
func Search(books []Book, term string) []Book {
	if term == "" {
		return slices.Clone(books)
	}
	term = strings.ToLower(term)
	return filter(books, func(b Book) bool {
		return strings.Contains(strings.ToLower(b.Name), term) ||
			strings.Contains(strings.ToLower(b.Author), term)
	})
}

// FilterByGenre keeps books tagged with genre. An empty genre keeps everything.
func FilterByGenre(books []Book, genre string) []Book {
	if genre == "" {
		return slices.Clone(books)
	}
	return filter(books, func(b Book) bool { return b.HasGenre(genre) })
}

// FilterByAuthor keeps books whose author contains author, ignoring case.
// An empty author keeps everything.
func FilterByAuthor(books []Book, author string) []Book {
	if author == "" {
		return slices.Clone(books)
	}
	author = strings.ToLower(author)
	return filter(books, func(b Book) bool {
		return strings.Contains(strings.ToLower(b.Author), author)
	})
}

// Sort returns a stably sorted copy. Text keys use the collation rules of
// lang; price compares numerically.
func Sort(books []Book, key SortKey, order SortOrder, lang language.Tag) []Book {
	out := slices.Clone(books)

	var compare func(a, b Book) int
	switch key {
	case SortPrice:
		compare = func(a, b Book) int { return cmp.Compare(a.Price, b.Price) }
	case SortAuthor:
		col := collate.New(lang)
		compare = func(a, b Book) int { return col.CompareString(a.Author, b.Author) }
	default:
		col := collate.New(lang)
		compare = func(a, b Book) int { return col.CompareString(a.Name, b.Name) }
	}

	if order == Desc {
		slices.SortStableFunc(out, func(a, b Book) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}

// Query is the combined filter and sort state of a list view.
// Zero-valued filters are ignored.
type Query struct {
	Category Category
	Search   string
	Genre    string
	Author   string
	SortBy   SortKey
	Order    SortOrder
}

// Apply runs the category, search, genre and author filters, then sorts.
func Apply(books []Book, q Query, lang language.Tag) []Book {
	out := books
	if q.Category != "" {
		out = FilterByCategory(out, q.Category)
	}
	out = Search(out, q.Search)
	out = FilterByGenre(out, q.Genre)
	out = FilterByAuthor(out, q.Author)
	if q.SortBy == "" {
		return out
	}
	return Sort(out, q.SortBy, q.Order, lang)
}

// DistinctGenres lists every genre used by books, in first-seen order.
func DistinctGenres(books []Book) []string {
	return distinct(genresOf(books))
}

// DistinctAuthors lists every author, in first-seen order.
func DistinctAuthors(books []Book) []string {
	authors := make([]string, 0, len(books))
	for _, b := range books {
		authors = append(authors, b.Author)
	}
	return distinct(authors)
}

// Resolve finds a book by exact id, by unique id prefix, or by exact name
// (ignoring case).
func Resolve(books []Book, ref string) (Book, error) {
	if ref == "" {
		return Book{}, fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	for _, b := range books {
		if b.ID == ref {
			return b, nil
		}
	}

	var matches []Book
	for _, b := range books {
		if strings.HasPrefix(b.ID, ref) || strings.EqualFold(b.Name, ref) {
			matches = append(matches, b)
		}
	}
	switch len(matches) {
	case 0:
		return Book{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return Book{}, fmt.Errorf("%q matches %d books, use a longer id", ref, len(matches))
	}
}

func filter(books []Book, keep func(Book) bool) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := []string{}
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
