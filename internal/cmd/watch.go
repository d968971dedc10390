// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/transfer"
)

func newWatchCmd(cfg *config.Config, store library.BookStore, xfer *transfer.Transfer, logger *log.Logger) *cobra.Command {
	var (
		recursive  bool
		debounceMs int
		oneShot    bool
	)

	cmd := &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a folder for snapshot files and merge them in",
		Long: `Monitor a directory for .json, .yaml and .yml snapshot documents and
merge-import each one as it appears. Books already in the collection are
skipped, so a file can be dropped in more than once.

Examples:
  arc-bookshelf watch ~/Dropbox/bookshelf-inbox
  arc-bookshelf watch ~/inbox --recursive
  arc-bookshelf watch ~/inbox --one-shot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]

			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("cannot access directory %s: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			w := &inboxWatcher{store: store, xfer: xfer, logger: logger}
			if oneShot {
				imported, failed := w.processExisting(cmd.Context(), dir, recursive)
				fmt.Fprintf(cmd.OutOrStdout(), "Imported: %d, Failed: %d\n", imported, failed)
				return nil
			}
			return w.watch(cmd.Context(), dir, recursive, time.Duration(debounceMs)*time.Millisecond)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Watch subdirectories recursively")
	cmd.Flags().IntVar(&debounceMs, "debounce", 1000, "Debounce milliseconds for file events")
	cmd.Flags().BoolVar(&oneShot, "one-shot", false, "Process existing files and exit (don't watch)")

	return cmd
}

// inboxWatcher merge-imports snapshot files dropped into a directory.
type inboxWatcher struct {
	store  library.BookStore
	xfer   *transfer.Transfer
	logger *log.Logger
}

func isSnapshotFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func (iw *inboxWatcher) importFile(ctx context.Context, path string) error {
	iw.logger.Info("importing", "file", path)
	res, err := importTarget(ctx, iw.store, iw.xfer, transfer.Target{Path: path}, library.ImportMerge)
	if err != nil {
		return err
	}
	iw.logger.Info("imported", "file", path, "added", res.Added, "skipped", res.Skipped, "new_genres", res.NewGenres)
	for _, warning := range res.Warnings {
		iw.logger.Warn("repaired imported book", "file", path, "problem", warning)
	}
	return nil
}

func (iw *inboxWatcher) processExisting(ctx context.Context, dir string, recursive bool) (imported, failed int) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if isSnapshotFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		iw.logger.Error("walk directory", "dir", dir, "err", err)
	}

	for _, f := range files {
		if err := iw.importFile(ctx, f); err != nil {
			iw.logger.Error("import failed", "file", f, "err", err)
			failed++
			continue
		}
		imported++
	}
	return imported, failed
}

func (iw *inboxWatcher) watch(ctx context.Context, dir string, recursive bool, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Pending imports keyed by path; a new event for the same file restarts its timer.
	// On return no new import starts and running ones are waited for.
	var (
		pending   = make(map[string]*time.Timer)
		pendingMu sync.Mutex
		stopped   bool
		inflight  sync.WaitGroup
	)
	defer func() {
		pendingMu.Lock()
		stopped = true
		for _, t := range pending {
			t.Stop()
		}
		pendingMu.Unlock()
		inflight.Wait()
	}()

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if err := watcher.Add(path); err != nil {
					iw.logger.Warn("cannot watch", "dir", path, "err", err)
				} else {
					iw.logger.Info("watching", "dir", path)
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("walk directories: %w", err)
		}
	} else {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch directory: %w", err)
		}
		iw.logger.Info("watching", "dir", dir)
	}

	iw.logger.Info("press Ctrl+C to stop watching")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSnapshotFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}

			name := event.Name
			pendingMu.Lock()
			if timer, exists := pending[name]; exists {
				timer.Stop()
			}
			pending[name] = time.AfterFunc(debounce, func() {
				pendingMu.Lock()
				if stopped {
					pendingMu.Unlock()
					return
				}
				delete(pending, name)
				inflight.Add(1)
				pendingMu.Unlock()
				defer inflight.Done()

				if err := iw.importFile(ctx, name); err != nil {
					iw.logger.Error("import failed", "file", name, "err", err)
				}
			})
			pendingMu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			iw.logger.Warn("watcher error", "err", err)
		}
	}
}
