// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtreilly/arc-bookshelf/internal/kv"
)

func TestPersisterLoadEmpty(t *testing.T) {
	p := NewPersister(kv.NewMemoryStore(), quietLogger())

	books, genres, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Empty(t, genres)
}

func TestPersisterSaveWritesBothSlots(t *testing.T) {
	store := kv.NewMemoryStore()
	p := NewPersister(store, quietLogger())
	ctx := context.Background()

	books := []Book{{ID: "1", Name: "Dune", Author: "Herbert", Genre: []string{"Science Fiction"}, Category: CategoryLibrary}}
	require.NoError(t, p.Save(ctx, books, []string{"Space Opera"}))

	raw, err := store.Get(ctx, "arc-bookshelf:books")
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, []any{"Science Fiction"}, decoded[0]["genre"])
	assert.Equal(t, "library", decoded[0]["category"])

	raw, err = store.Get(ctx, "arc-bookshelf:genres")
	require.NoError(t, err)
	assert.JSONEq(t, `["Space Opera"]`, string(raw))

	// Save overwrites rather than appends, and drops an empty genres slot.
	require.NoError(t, p.Save(ctx, nil, nil))
	raw, err = store.Get(ctx, "arc-bookshelf:books")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
	_, err = store.Get(ctx, "arc-bookshelf:genres")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	_, genres, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, genres)
}

func TestPersisterKeepsRecordsItCannotFullyMigrate(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	stored := `[
		{"id":"1","name":"Dune","author":"Herbert","price":12,"genre":["Science Fiction"],"category":"library"},
		{"id":"2","name":"Attic","author":"B","price":3,"genre":"Cozy","category":"archiv"},
		{"id":"3","name":"Soon","author":"C","price":5,"genre":[],"category":"pre-order","releaseDate":"bald"}
	]`
	require.NoError(t, store.Set(ctx, "arc-bookshelf:books", []byte(stored)))

	lib := newTestLibrary(t, store)
	books := lib.Books()
	require.Len(t, books, 3)
	assert.Equal(t, "Dune", books[0].Name)
	assert.Equal(t, Category("archiv"), books[1].Category)
	assert.Equal(t, []string{"Cozy"}, books[1].Genre)
	assert.Nil(t, books[2].ReleaseDate)

	// The next write keeps every record.
	_, err := lib.Add(draft("New", "D", 1, "Fantasy"), CategoryLibrary)
	require.NoError(t, err)

	reloaded, _, err := NewPersister(store, quietLogger()).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Attic", "Soon", "New"}, names(reloaded))
	assert.Equal(t, Category("archiv"), reloaded[1].Category)
}

func TestPersisterMigratesLegacyRecords(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	legacy := `[
		{"id":"1700000000000","name":"Dune","author":"Herbert","price":12,"genre":"Science Fiction",
		 "releaseDate":"","isRead":true,"isBought":false,"rating":4.5,"notes":"","category":"bibliothek"},
		{"id":"1700000000001","name":"Book2","author":"X","price":8,"genre":["Fantasy","Romantasy"],
		 "releaseDate":"2027-02-01","isRead":false,"isBought":true,"rating":0,"notes":"","category":"vorbestellungen"}
	]`
	require.NoError(t, store.Set(ctx, "arc-bookshelf:books", []byte(legacy)))

	books, _, err := NewPersister(store, quietLogger()).Load(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, []string{"Science Fiction"}, books[0].Genre)
	assert.Equal(t, CategoryLibrary, books[0].Category)
	assert.Nil(t, books[0].ReleaseDate)

	assert.Equal(t, []string{"Fantasy", "Romantasy"}, books[1].Genre)
	assert.Equal(t, CategoryPreOrder, books[1].Category)
	require.NotNil(t, books[1].ReleaseDate)
	assert.Equal(t, NewDate(2027, time.February, 1), *books[1].ReleaseDate)
}

func TestPersisterTreatsMalformedSlotsAsEmpty(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "arc-bookshelf:books", []byte(`{not json`)))
	require.NoError(t, store.Set(ctx, "arc-bookshelf:genres", []byte(`42`)))

	books, genres, err := NewPersister(store, quietLogger()).Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.Empty(t, genres)
}

func TestOpenBuildsRegistryFromAllSources(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "arc-bookshelf:books",
		[]byte(`[{"id":"1","name":"A","author":"B","price":1,"genre":"Cozy","category":"library"}]`)))
	require.NoError(t, store.Set(ctx, "arc-bookshelf:genres", []byte(`["Solarpunk"]`)))

	lib := newTestLibrary(t, store)
	all := lib.Genres()
	assert.Equal(t, DefaultGenres, all[:len(DefaultGenres)])
	assert.Equal(t, []string{"Solarpunk", "Cozy"}, lib.CustomGenres())
}
