// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/transfer"
)

// NewRootCmd creates the root command for arc-bookshelf.
func NewRootCmd(cfg *config.Config, store library.BookStore, xfer *transfer.Transfer, logger *log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "arc-bookshelf",
		Short: "Track the books you own, have pre-ordered and want",
		Long: `Keep a personal catalogue of books across three lists.

arc-bookshelf provides tools to:
- Add books to your library, pre-orders or wishlist
- Mark wishlist books as bought and pre-orders as arrived
- Filter, search and sort by name, author or price
- See upcoming releases and spending statistics
- Export and import snapshots (local files or s3://bucket/key)`,
		SilenceUsage: true,
	}

	root.AddCommand(newAddCmd(cfg, store))
	root.AddCommand(newListCmd(cfg, store))
	root.AddCommand(newSearchCmd(cfg, store))
	root.AddCommand(newShowCmd(cfg, store))
	root.AddCommand(newEditCmd(cfg, store))
	root.AddCommand(newDeleteCmd(cfg, store))
	root.AddCommand(newReadCmd(cfg, store))
	root.AddCommand(newNoteCmd(cfg, store))
	root.AddCommand(newBuyCmd(cfg, store))
	root.AddCommand(newArriveCmd(cfg, store))
	root.AddCommand(newGenresCmd(cfg, store))
	root.AddCommand(newDuplicatesCmd(cfg, store))
	root.AddCommand(newStatsCmd(cfg, store))
	root.AddCommand(newCalendarCmd(cfg, store))
	root.AddCommand(newExportCmd(cfg, store, xfer))
	root.AddCommand(newImportCmd(cfg, store, xfer))
	root.AddCommand(newWatchCmd(cfg, store, xfer, logger))

	return root
}
