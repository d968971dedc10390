// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

func newCalendarCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show upcoming releases by month",
		Long:  `List pre-orders and wishlist books that have not been released yet, grouped by month.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			now := store.Now()
			groups := library.UpcomingReleases(store.Books(), now)

			w := cmd.OutOrStdout()
			if out.Is(output.FormatJSON) {
				if groups == nil {
					groups = []library.MonthGroup{}
				}
				return output.JSON(w, groups)
			}
			if len(groups) == 0 {
				fmt.Fprintln(w, "No upcoming releases.")
				return nil
			}

			for _, g := range groups {
				fmt.Fprintln(w, output.Heading(fmt.Sprintf("%s (%d)", g.Label(), g.Len())))
				printReleases(w, "Pre-orders", g.PreOrders, store)
				printReleases(w, "Wishlist", g.Wishlist, store)
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	return cmd
}

func printReleases(w io.Writer, title string, books []library.Book, store library.BookStore) {
	if len(books) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", title)
	for _, b := range books {
		fmt.Fprintf(w, "    %s  %s by %s %s\n",
			b.ReleaseDate, b.Name, b.Author,
			output.Muted("("+humanize.RelTime(b.ReleaseDate.Time, store.Now(), "ago", "from now")+")"))
	}
}
