// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package kv provides the durable key-value slots arc-bookshelf persists its
// snapshot into. Values are opaque bytes; callers own the encoding.
package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// ErrNotFound is returned by Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Open returns the store for the named backend rooted at dataDir.
func Open(backend, dataDir string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite, "":
		return OpenSQLiteStore(filepath.Join(dataDir, "bookshelf.db"))
	case BackendBadger:
		return OpenBadgerStore(filepath.Join(dataDir, "badger"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q (choose sqlite, badger, or memory)", backend)
	}
}
