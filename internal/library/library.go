// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Library is the in-memory book collection together with its genre registry.
// Every successful mutation writes the full snapshot through the Persister.
// If that write fails the in-memory change stays applied and the error is returned.
type Library struct {
	mu        sync.Mutex
	books     []Book
	genres    *Genres
	persister *Persister
	now       func() time.Time
	newID     func() string
	logger    *log.Logger
}

// Option configures a Library.
type Option func(*Library)

// WithClock overrides the clock used for release-date comparisons.
func WithClock(now func() time.Time) Option {
	return func(l *Library) { l.now = now }
}

// WithIDGenerator overrides the book id generator.
func WithIDGenerator(fn func() string) Option {
	return func(l *Library) { l.newID = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Library) { l.logger = logger }
}

// Open loads the stored snapshot and builds the registry from the defaults,
// the persisted custom genres and the genres found on the loaded books.
func Open(p *Persister, opts ...Option) (*Library, error) {
	l := &Library{
		persister: p,
		now:       time.Now,
		newID:     newBookID,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	books, custom, err := p.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	l.books = books
	l.genres = NewGenres(DefaultGenres, custom, genresOf(books))
	return l, nil
}

// newBookID returns a time-ordered UUIDv7.
func newBookID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Books returns a copy of all books in collection order.
func (l *Library) Books() []Book {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotBooks()
}

// Get returns the book with the given id.
func (l *Library) Get(id string) (Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOf(id)
	if i < 0 {
		return Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return l.books[i].clone(), nil
}

// Genres returns every registered genre label.
func (l *Library) Genres() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.genres.All()
}

// CustomGenres returns the registered labels that are not defaults.
func (l *Library) CustomGenres() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.genres.Custom()
}

// AddGenres registers labels without attaching them to a book.
func (l *Library) AddGenres(labels ...string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.genres.Merge(labels...) {
		return false, nil
	}
	return true, l.save()
}

// Add stores a new book in the given category and returns it with its id.
func (l *Library) Add(d Draft, category Category) (Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.newID()
	if l.indexOf(id) >= 0 {
		panic(fmt.Sprintf("library: generated duplicate book id %q", id))
	}

	b := d.book(id, category)
	l.books = append(l.books, b)
	if l.genres.Merge(b.Genre...) {
		l.logger.Debug("registered new genres", "book", id, "genres", b.Genre)
	}
	l.logger.Info("added book", "id", id, "name", b.Name, "category", category)
	return b.clone(), l.save()
}

// Update merges patch into the book with the given id. The id and category
// never change. An unknown id returns ErrNotFound and changes nothing.
func (l *Library) Update(id string, patch Patch) (Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	b := patch.apply(l.books[i].clone())
	l.books[i] = b
	l.genres.Merge(b.Genre...)
	return b.clone(), l.save()
}

// Delete removes the book with the given id. Unknown ids are a no-op.
func (l *Library) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return nil
	}
	l.books = slices.Delete(l.books, i, i+1)
	l.logger.Info("deleted book", "id", id)
	return l.save()
}

// SetRead sets the read flag. The category is not touched.
func (l *Library) SetRead(id string, isRead bool) (Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	l.books[i].IsRead = isRead
	return l.books[i].clone(), l.save()
}

// MarkPurchased moves a wishlist book to pre-order when its release date is
// still in the future and to the library otherwise. The book is moved to the
// end of the collection. There is no reverse operation.
func (l *Library) MarkPurchased(id string) (Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	b := l.books[i]
	if b.Category != CategoryWishlist {
		return b.clone(), fmt.Errorf("%w: cannot purchase a %s book", ErrInvalidTransition, b.Category)
	}

	target := CategoryLibrary
	if b.ReleasedAfter(l.now()) {
		target = CategoryPreOrder
	}
	b.IsBought = true
	b.Category = target
	l.moveToEnd(i, b)
	l.logger.Info("purchased book", "id", id, "category", target)
	return b.clone(), l.save()
}

// MarkArrived moves the book to the library from any category. There is no
// reverse operation.
func (l *Library) MarkArrived(id string) (Book, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id)
	if i < 0 {
		return Book{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	b := l.books[i]
	arrived := true
	b.IsArrived = &arrived
	b.Category = CategoryLibrary
	l.moveToEnd(i, b)
	l.logger.Info("book arrived", "id", id)
	return b.clone(), l.save()
}

// SetBought adapts a "bought" checkbox: true purchases, false leaves the book as is.
func (l *Library) SetBought(id string, bought bool) (Book, error) {
	if bought {
		return l.MarkPurchased(id)
	}
	return l.Get(id)
}

// SetArrived adapts an "arrived" checkbox: true moves to the library, false
// leaves the book as is.
func (l *Library) SetArrived(id string, arrived bool) (Book, error) {
	if arrived {
		return l.MarkArrived(id)
	}
	return l.Get(id)
}

// ImportMode selects how imported books combine with the current collection.
type ImportMode int

const (
	// ImportReplace swaps the whole collection for the imported books.
	ImportReplace ImportMode = iota
	// ImportMerge appends imported books whose id is not yet present.
	ImportMerge
)

// ImportResult summarizes an applied import.
type ImportResult struct {
	Added     int
	Skipped   int
	NewGenres int
	Warnings  []string // records imported with a value repaired
}

// Import applies a decoded snapshot. A snapshot without books leaves the
// collection untouched. The genre registry only grows.
func (l *Library) Import(s Snapshot, mode ImportMode) (ImportResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := ImportResult{Warnings: slices.Clone(s.Warnings)}
	if s.Books != nil {
		incoming := make([]Book, 0, len(s.Books))
		seen := make(map[string]struct{}, len(s.Books))
		for _, b := range s.Books {
			b = b.clone()
			if b.ID == "" {
				b.ID = l.newID()
			}
			if _, dup := seen[b.ID]; dup {
				res.Skipped++
				continue
			}
			seen[b.ID] = struct{}{}
			incoming = append(incoming, b)
		}

		switch mode {
		case ImportReplace:
			l.books = incoming
			res.Added = len(incoming)
		case ImportMerge:
			for _, b := range incoming {
				if l.indexOf(b.ID) >= 0 {
					res.Skipped++
					continue
				}
				l.books = append(l.books, b)
				res.Added++
			}
		}
	}

	before := l.genres.Len()
	l.genres.Merge(s.Genres...)
	l.genres.Merge(genresOf(l.books)...)
	res.NewGenres = l.genres.Len() - before

	l.logger.Info("imported snapshot", "added", res.Added, "skipped", res.Skipped, "new_genres", res.NewGenres)
	return res, l.save()
}

// Export encodes the current collection as the JSON export document.
func (l *Library) Export() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ExportSnapshot(l.books, l.genres.Custom())
}

// Now returns the library clock's current time.
func (l *Library) Now() time.Time {
	return l.now()
}

func (l *Library) indexOf(id string) int {
	return slices.IndexFunc(l.books, func(b Book) bool { return b.ID == id })
}

func (l *Library) moveToEnd(i int, b Book) {
	l.books = slices.Delete(l.books, i, i+1)
	l.books = append(l.books, b)
}

func (l *Library) snapshotBooks() []Book {
	out := make([]Book, 0, len(l.books))
	for _, b := range l.books {
		out = append(out, b.clone())
	}
	return out
}

func (l *Library) save() error {
	if err := l.persister.Save(context.Background(), l.books, l.genres.Custom()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
