// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	return fe
}

func TestValidateDraft(t *testing.T) {
	v := NewValidator()

	t.Run("valid", func(t *testing.T) {
		d := draft("Dune", "Herbert", 12, "Science Fiction")
		d.Rating = 4.5
		d.ShopLink = "https://shop.example/dune"
		assert.NoError(t, v.ValidateDraft(d, CategoryLibrary))
	})

	t.Run("missing fields", func(t *testing.T) {
		fe := fieldErrors(t, v.ValidateDraft(Draft{Price: -1}, CategoryLibrary))
		assert.Equal(t, "is required", fe["name"])
		assert.Equal(t, "is required", fe["author"])
		assert.Equal(t, "must be at least 0", fe["price"])
		assert.Equal(t, "needs at least 1 entry", fe["genre"])
	})

	t.Run("blank genre label", func(t *testing.T) {
		fe := fieldErrors(t, v.ValidateDraft(draft("A", "B", 1, "Fantasy", ""), CategoryLibrary))
		assert.Equal(t, "is required", fe["genre"])
	})

	t.Run("rating", func(t *testing.T) {
		d := draft("A", "B", 1, "Fantasy")
		d.Rating = 4.3
		assert.Equal(t, "must be a multiple of 0.5", fieldErrors(t, v.ValidateDraft(d, CategoryLibrary))["rating"])

		d.Rating = 5.5
		assert.Equal(t, "must be at most 5", fieldErrors(t, v.ValidateDraft(d, CategoryLibrary))["rating"])
	})

	t.Run("urls", func(t *testing.T) {
		d := draft("A", "B", 1, "Fantasy")
		d.ImageURL = "not a url"
		fe := fieldErrors(t, v.ValidateDraft(d, CategoryWishlist))
		assert.Equal(t, "must be a valid URL", fe["imageUrl"])
	})

	t.Run("pre-order needs release date", func(t *testing.T) {
		d := draft("A", "B", 1, "Fantasy")
		fe := fieldErrors(t, v.ValidateDraft(d, CategoryPreOrder))
		assert.Equal(t, "is required for pre-orders", fe["releaseDate"])

		d.ReleaseDate = datePtr(2027, time.May, 1)
		assert.NoError(t, v.ValidateDraft(d, CategoryPreOrder))
	})
}

func TestValidatePatch(t *testing.T) {
	v := NewValidator()

	owned := Book{ID: "1", Genre: []string{"Fantasy"}, Category: CategoryLibrary}

	assert.NoError(t, v.ValidatePatch(Patch{}, owned))
	assert.NoError(t, v.ValidatePatch(Patch{Rating: ptr(3.5), ImageURL: ptr(""), Price: ptr(0.0)}, owned))

	fe := fieldErrors(t, v.ValidatePatch(Patch{
		Name:     ptr(""),
		Price:    ptr(-2.0),
		Rating:   ptr(1.25),
		ShopLink: ptr("nope"),
	}, owned))
	assert.Equal(t, "must not be empty", fe["name"])
	assert.Equal(t, "must be at least 0", fe["price"])
	assert.Equal(t, "must be a multiple of 0.5", fe["rating"])
	assert.Equal(t, "must be a valid URL", fe["shopLink"])
	assert.NotContains(t, fe, "author")
}

func TestValidatePatchKeepsRequiredFields(t *testing.T) {
	v := NewValidator()
	preOrder := Book{ID: "2", Genre: []string{"Fantasy"}, ReleaseDate: datePtr(2027, time.February, 1), Category: CategoryPreOrder}

	t.Run("genre cannot be emptied", func(t *testing.T) {
		fe := fieldErrors(t, v.ValidatePatch(Patch{Genre: []string{}}, preOrder))
		assert.Equal(t, "needs at least 1 entry", fe["genre"])
	})

	t.Run("pre-order keeps release date", func(t *testing.T) {
		fe := fieldErrors(t, v.ValidatePatch(Patch{ClearReleaseDate: true}, preOrder))
		assert.Equal(t, "is required for pre-orders", fe["releaseDate"])

		// Replacing the date is fine.
		assert.NoError(t, v.ValidatePatch(Patch{ClearReleaseDate: true, ReleaseDate: datePtr(2027, time.March, 1)}, preOrder))
	})

	t.Run("other lists may drop the date", func(t *testing.T) {
		wish := preOrder
		wish.Category = CategoryWishlist
		assert.NoError(t, v.ValidatePatch(Patch{ClearReleaseDate: true}, wish))
	})
}

func TestFieldErrorsMessageIsSorted(t *testing.T) {
	fe := FieldErrors{"price": "must be at least 0", "author": "is required"}
	assert.Equal(t, "author is required; price must be at least 0", fe.Error())
}
