// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mtreilly/arc-bookshelf/internal/kv"
)

const keyNamespace = "arc-bookshelf"

// Slot names within the key namespace.
const (
	slotBooks  = "books"
	slotGenres = "genres"
)

// Persister writes the full snapshot into two KV slots, one for the book
// records and one for the non-default genres.
type Persister struct {
	kv     kv.Store
	logger *log.Logger
}

// NewPersister creates a persister over the given store. A nil logger uses log.Default().
func NewPersister(store kv.Store, logger *log.Logger) *Persister {
	if logger == nil {
		logger = log.Default()
	}
	return &Persister{kv: store, logger: logger}
}

// generateKey namespaces a slot name.
func (p *Persister) generateKey(slot string) string {
	return fmt.Sprintf("%s:%s", keyNamespace, slot)
}

// Load reads both slots. Missing slots are empty. A slot that cannot be decoded
// is logged and treated as empty; only backend failures are returned.
func (p *Persister) Load(ctx context.Context) ([]Book, []string, error) {
	books := []Book{}
	genres := []string{}

	data, err := p.kv.Get(ctx, p.generateKey(slotBooks))
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		return nil, nil, fmt.Errorf("read books: %w", err)
	default:
		decoded, problems, err := decodeStoredBooks(data)
		if err != nil {
			p.logger.Error("discarding unreadable books slot", "err", err)
		} else {
			books = decoded
		}
		for _, problem := range problems {
			p.logger.Warn("repaired stored book", "problem", problem)
		}
	}

	data, err = p.kv.Get(ctx, p.generateKey(slotGenres))
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		return nil, nil, fmt.Errorf("read genres: %w", err)
	default:
		var decoded []string
		if err := json.Unmarshal(data, &decoded); err != nil {
			p.logger.Error("discarding unreadable genres slot", "err", err)
		} else if decoded != nil {
			genres = decoded
		}
	}

	p.logger.Debug("loaded snapshot", "books", len(books), "custom_genres", len(genres))
	return books, genres, nil
}

// Save overwrites both slots with the given snapshot. With no custom genres the
// genres slot is removed rather than written empty.
func (p *Persister) Save(ctx context.Context, books []Book, customGenres []string) error {
	if books == nil {
		books = []Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("marshal books: %w", err)
	}
	if err := p.kv.Set(ctx, p.generateKey(slotBooks), data); err != nil {
		return fmt.Errorf("write books: %w", err)
	}

	if len(customGenres) == 0 {
		if err := p.kv.Delete(ctx, p.generateKey(slotGenres)); err != nil {
			return fmt.Errorf("clear genres: %w", err)
		}
		return nil
	}
	data, err = json.Marshal(customGenres)
	if err != nil {
		return fmt.Errorf("marshal genres: %w", err)
	}
	if err := p.kv.Set(ctx, p.generateKey(slotGenres), data); err != nil {
		return fmt.Errorf("write genres: %w", err)
	}
	return nil
}
