// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/transfer"
)

const inboxDoc = `{"books":[{"id":"inbox-1","name":"Dropped","author":"A","price":5,"genre":["Cozy"],"category":"wishlist"}]}`

func TestIsSnapshotFile(t *testing.T) {
	assert.True(t, isSnapshotFile("/in/a.json"))
	assert.True(t, isSnapshotFile("/in/a.YAML"))
	assert.True(t, isSnapshotFile("b.yml"))
	assert.False(t, isSnapshotFile("c.pdf"))
	assert.False(t, isSnapshotFile("json"))
}

func TestWatchOneShot(t *testing.T) {
	app := newTestApp(t)
	app.xfer = transfer.New(afero.NewOsFs(), config.S3{})

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(inboxDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("books: [\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.json"), []byte(inboxDoc), 0o644))

	out := app.mustRun(t, "watch", dir, "--one-shot")
	assert.Contains(t, out, "Imported: 1, Failed: 1")
	require.Len(t, app.lib.Books(), 1)

	// Same document again, recursively: merge skips the known id.
	out = app.mustRun(t, "watch", dir, "--one-shot", "--recursive")
	assert.Contains(t, out, "Imported: 2, Failed: 1")
	assert.Len(t, app.lib.Books(), 1)
	assert.Contains(t, app.lib.CustomGenres(), "Cozy")
}

func TestWatchRejectsFiles(t *testing.T) {
	app := newTestApp(t)
	file := filepath.Join(t.TempDir(), "x.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	_, err := app.run(t, "watch", file)
	assert.ErrorContains(t, err, "is not a directory")

	_, err = app.run(t, "watch", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "cannot access directory")
}

func TestWatchImportsNewFiles(t *testing.T) {
	app := newTestApp(t)
	iw := &inboxWatcher{
		store:  app.lib,
		xfer:   transfer.New(afero.NewOsFs(), config.S3{}),
		logger: app.quiet,
	}
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- iw.watch(ctx, dir, false, 20*time.Millisecond) }()

	// Give the watcher time to register before the file appears.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drop.json"), []byte(inboxDoc), 0o644))

	assert.Eventually(t, func() bool { return len(app.lib.Books()) == 1 }, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

// gatedStore holds every Import until release is closed.
type gatedStore struct {
	library.BookStore
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (s *gatedStore) Import(snap library.Snapshot, mode library.ImportMode) (library.ImportResult, error) {
	s.once.Do(func() { close(s.started) })
	<-s.release
	return s.BookStore.Import(snap, mode)
}

func TestWatchWaitsForRunningImport(t *testing.T) {
	app := newTestApp(t)
	store := &gatedStore{BookStore: app.lib, started: make(chan struct{}), release: make(chan struct{})}
	iw := &inboxWatcher{
		store:  store,
		xfer:   transfer.New(afero.NewOsFs(), config.S3{}),
		logger: app.quiet,
	}
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- iw.watch(ctx, dir, false, 20*time.Millisecond) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drop.json"), []byte(inboxDoc), 0o644))

	select {
	case <-store.started:
	case <-time.After(5 * time.Second):
		t.Fatal("import never started")
	}

	cancel()
	select {
	case <-done:
		t.Fatal("watcher returned while an import was running")
	case <-time.After(100 * time.Millisecond):
	}

	close(store.release)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Len(t, app.lib.Books(), 1)
}
