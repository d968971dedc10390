// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import "time"

// BookStore is the record-management surface the CLI works against.
// *Library is the only implementation.
type BookStore interface {
	// Book operations
	Add(d Draft, category Category) (Book, error)
	Get(id string) (Book, error)
	Books() []Book
	Update(id string, patch Patch) (Book, error)
	Delete(id string) error

	// Flags and category transitions
	SetRead(id string, isRead bool) (Book, error)
	MarkPurchased(id string) (Book, error)
	MarkArrived(id string) (Book, error)
	SetBought(id string, bought bool) (Book, error)
	SetArrived(id string, arrived bool) (Book, error)

	// Genre registry
	Genres() []string
	CustomGenres() []string
	AddGenres(labels ...string) (bool, error)

	// Snapshot transport
	Export() ([]byte, error)
	Import(s Snapshot, mode ImportMode) (ImportResult, error)

	Now() time.Time
}

var _ BookStore = (*Library)(nil)
