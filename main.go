// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mtreilly/arc-bookshelf/internal/cmd"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/kv"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/logging"
	"github.com/mtreilly/arc-bookshelf/internal/transfer"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "arc-bookshelf: failed to load config: %v\n", err)
		return 1
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	// Storage backend: "sqlite" (default), "badger" or "memory".
	// If a persistent backend cannot be opened (missing, corrupted, locked,
	// permissions), fall back to the in-memory store so the tool remains
	// usable without persistence.
	store, err := kv.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		if cfg.Storage != kv.BackendSQLite && cfg.Storage != kv.BackendBadger {
			fmt.Fprintf(os.Stderr, "arc-bookshelf: %v\n", err)
			return 1
		}
		logger.Warn("cannot open storage, falling back to in-memory store (no persistence)",
			"backend", cfg.Storage, "err", err)
		store = kv.NewMemoryStore()
	}
	defer store.Close()

	lib, err := library.Open(library.NewPersister(store, logger), library.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "arc-bookshelf: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cmd.NewRootCmd(cfg, lib, transfer.New(nil, cfg.S3), logger)
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
