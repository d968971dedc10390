// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

func newStatsCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Long:  `Display counts per list, reading progress, spending and the most common genres and authors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			s := library.ComputeStatistics(store.Books())

			w := cmd.OutOrStdout()
			if out.Is(output.FormatJSON) {
				return output.JSON(w, s)
			}

			fmt.Fprintln(w, output.Heading("Bookshelf Statistics"))
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Library:       %d (%d read, %d unread)\n", s.LibraryCount, s.ReadCount, s.UnreadCount)
			fmt.Fprintf(w, "Pre-orders:    %d\n", s.PreOrderCount)
			fmt.Fprintf(w, "Wishlist:      %d\n", s.WishlistCount)
			fmt.Fprintf(w, "Read progress: %d%%\n", s.ReadPercent())
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Spent (library):    %s\n", formatPrice(s.LibrarySpent))
			fmt.Fprintf(w, "Spent (pre-orders): %s\n", formatPrice(s.PreOrderSpent))
			fmt.Fprintf(w, "Spent (total):      %s\n", formatPrice(s.TotalSpent))
			fmt.Fprintf(w, "Average per book:   %s\n", formatPrice(s.AverageSpent))

			printRanking(w, "Top genres", s.TopGenres)
			printRanking(w, "Top authors", s.TopAuthors)
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	return cmd
}

func printRanking(w io.Writer, title string, ranking []library.LabelCount) {
	if len(ranking) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, output.Heading(title))
	for i, lc := range ranking {
		fmt.Fprintf(w, "  %d. %s (%d)\n", i+1, lc.Label, lc.Count)
	}
}
