// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/mtreilly/arc-bookshelf/internal/kv"
)

var testNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestLibrary(t *testing.T, store kv.Store) *Library {
	t.Helper()
	if store == nil {
		store = kv.NewMemoryStore()
	}
	lib, err := Open(NewPersister(store, quietLogger()),
		WithClock(func() time.Time { return testNow }),
		WithLogger(quietLogger()),
	)
	require.NoError(t, err)
	return lib
}

func datePtr(y int, m time.Month, d int) *Date {
	date := NewDate(y, m, d)
	return &date
}

func draft(name, author string, price float64, genres ...string) Draft {
	return Draft{Name: name, Author: author, Price: price, Genre: genres}
}

func ptr[T any](v T) *T { return &v }
