// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

func newSearchCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var out output.Options
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search books by name or author",
		Long: `Search book names and authors, ignoring case.

Examples:
  arc-bookshelf search dune               # Name or author contains "dune"
  arc-bookshelf search herbert -c library # Only owned books
  arc-bookshelf search the --sort price   # Sorted by price`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			term := args[0]
			books, err := flags.run(cfg, store, term)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Is(output.FormatJSON) {
				return output.JSON(w, books)
			}
			if len(books) == 0 {
				fmt.Fprintf(w, "No books found matching %q\n", term)
				return nil
			}

			fmt.Fprintf(w, "Found %d result(s) for %q:\n\n", len(books), term)
			bookTable(books, store.Now()).Render(w)
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	flags.add(cmd)
	return cmd
}
