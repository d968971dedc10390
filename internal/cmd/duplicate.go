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

func newDuplicatesCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var (
		out       output.Options
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Detect books that appear more than once",
		Long:  "Scan all lists for books by the same author with the same or a similar name, e.g. a wishlist entry for a book you already own.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			pairs := library.FindDuplicates(store.Books(), threshold)

			w := cmd.OutOrStdout()
			if out.Is(output.FormatJSON) {
				if pairs == nil {
					pairs = []library.DuplicatePair{}
				}
				return output.JSON(w, pairs)
			}
			if len(pairs) == 0 {
				fmt.Fprintf(w, "No duplicates found (threshold %.2f)\n", threshold)
				return nil
			}

			fmt.Fprintf(w, "Found %d potential duplicate pair(s):\n\n", len(pairs))
			for i, p := range pairs {
				fmt.Fprintf(w, "[%d] Score: %.2f (%s)\n", i+1, p.Score, p.Reason)
				fmt.Fprintf(w, "    A: %s [%s] %s\n", output.Truncate(p.A.Name, 50), p.A.Category, shortID(p.A.ID))
				fmt.Fprintf(w, "    B: %s [%s] %s\n", output.Truncate(p.B.Name, 50), p.B.Category, shortID(p.B.ID))
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.7, "Name similarity threshold (0-1)")
	return cmd
}
