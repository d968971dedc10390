// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func names(books []Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Name)
	}
	return out
}

func queryFixture() []Book {
	return []Book{
		{ID: "0192-a", Name: "Dune", Author: "Frank Herbert", Price: 12, Genre: []string{"Science Fiction"}, Category: CategoryLibrary},
		{ID: "0192-b", Name: "Book2", Author: "X", Price: 8, Genre: []string{"Fantasy", "Romantasy"}, Category: CategoryPreOrder},
		{ID: "0193-c", Name: "Children of Dune", Author: "Frank Herbert", Price: 14, Genre: []string{"Science Fiction"}, Category: CategoryWishlist},
		{ID: "0194-d", Name: "Äpfel", Author: "Öhler", Price: 8, Genre: []string{"Sachbuch"}, Category: CategoryLibrary},
	}
}

func TestFilterByCategory(t *testing.T) {
	books := queryFixture()
	assert.Equal(t, []string{"Dune", "Äpfel"}, names(FilterByCategory(books, CategoryLibrary)))
	assert.Equal(t, []string{"Book2"}, names(FilterByCategory(books, CategoryPreOrder)))
	assert.Empty(t, FilterByCategory(nil, CategoryWishlist))
}

func TestSearch(t *testing.T) {
	books := queryFixture()
	assert.Equal(t, []string{"Dune", "Children of Dune"}, names(Search(books, "dUNe")))
	assert.Equal(t, []string{"Dune", "Children of Dune"}, names(Search(books, "herbert")))
	assert.Len(t, Search(books, ""), 4)
	assert.Empty(t, Search(books, "nothing matches"))
}

func TestFilterByGenreAndAuthor(t *testing.T) {
	books := queryFixture()
	assert.Equal(t, []string{"Book2"}, names(FilterByGenre(books, "Romantasy")))
	assert.Empty(t, FilterByGenre(books, "romantasy"), "genre match is exact")
	assert.Len(t, FilterByGenre(books, ""), 4)

	assert.Equal(t, []string{"Dune", "Children of Dune"}, names(FilterByAuthor(books, "frank")))
	assert.Len(t, FilterByAuthor(books, ""), 4)
}

func TestSortByPrice(t *testing.T) {
	books := []Book{{Name: "a", Price: 12}, {Name: "b", Price: 8}}

	assert.Equal(t, []string{"b", "a"}, names(Sort(books, SortPrice, Asc, language.English)))
	assert.Equal(t, []string{"a", "b"}, names(Sort(books, SortPrice, Desc, language.English)))
	assert.Equal(t, []string{"a", "b"}, names(books), "input is not modified")
}

func TestSortIsStable(t *testing.T) {
	books := []Book{{Name: "first", Price: 8}, {Name: "second", Price: 8}, {Name: "cheap", Price: 1}}

	assert.Equal(t, []string{"cheap", "first", "second"}, names(Sort(books, SortPrice, Asc, language.English)))
	assert.Equal(t, []string{"first", "second", "cheap"}, names(Sort(books, SortPrice, Desc, language.English)))
}

func TestSortByNameUsesCollation(t *testing.T) {
	books := []Book{{Name: "banana"}, {Name: "Äpfel"}, {Name: "Cherry"}}

	assert.Equal(t, []string{"Äpfel", "banana", "Cherry"}, names(Sort(books, SortName, Asc, language.German)))
	assert.Equal(t, []string{"Cherry", "banana", "Äpfel"}, names(Sort(books, SortName, Desc, language.German)))
}

func TestSortByAuthor(t *testing.T) {
	sorted := Sort(queryFixture(), SortAuthor, Asc, language.English)
	assert.Equal(t, []string{"Frank Herbert", "Frank Herbert", "Öhler", "X"}, []string{
		sorted[0].Author, sorted[1].Author, sorted[2].Author, sorted[3].Author,
	})
	assert.Equal(t, "Dune", sorted[0].Name)
}

func TestParseSortKeyAndOrder(t *testing.T) {
	k, err := ParseSortKey("Price")
	require.NoError(t, err)
	assert.Equal(t, SortPrice, k)
	_, err = ParseSortKey("rating")
	assert.Error(t, err)

	o, err := ParseSortOrder("DESC")
	require.NoError(t, err)
	assert.Equal(t, Desc, o)
	_, err = ParseSortOrder("sideways")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	books := queryFixture()

	got := Apply(books, Query{Author: "herbert", SortBy: SortPrice, Order: Desc}, language.English)
	assert.Equal(t, []string{"Children of Dune", "Dune"}, names(got))

	got = Apply(books, Query{Category: CategoryLibrary, Search: "dune"}, language.English)
	assert.Equal(t, []string{"Dune"}, names(got))

	assert.Equal(t, names(books), names(Apply(books, Query{}, language.English)))
}

func TestDistinct(t *testing.T) {
	books := queryFixture()
	assert.Equal(t, []string{"Science Fiction", "Fantasy", "Romantasy", "Sachbuch"}, DistinctGenres(books))
	assert.Equal(t, []string{"Frank Herbert", "X", "Öhler"}, DistinctAuthors(books))
	assert.Empty(t, DistinctGenres(nil))
	assert.NotNil(t, DistinctAuthors(nil))
}

func TestResolve(t *testing.T) {
	books := queryFixture()

	b, err := Resolve(books, "0192-a")
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Name)

	b, err = Resolve(books, "0193")
	require.NoError(t, err)
	assert.Equal(t, "Children of Dune", b.Name)

	b, err = Resolve(books, "book2")
	require.NoError(t, err)
	assert.Equal(t, "0192-b", b.ID)

	_, err = Resolve(books, "0192")
	assert.ErrorContains(t, err, "matches 2 books")

	_, err = Resolve(books, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Resolve(books, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
