// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

// queryFlags are the filter and sort flags shared by list and search.
type queryFlags struct {
	category string
	genre    string
	author   string
	sortBy   string
	order    string
	limit    int
}

func (f *queryFlags) add(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Only this list: library, pre-order, wishlist")
	cmd.Flags().StringVarP(&f.genre, "genre", "g", "", "Filter by genre")
	cmd.Flags().StringVarP(&f.author, "author", "a", "", "Filter by author (substring)")
	cmd.Flags().StringVar(&f.sortBy, "sort", "", "Sort by name, author or price")
	cmd.Flags().StringVar(&f.order, "order", string(library.Asc), "Sort order: asc or desc")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "Limit number of results")
}

func (f *queryFlags) query(search string) (library.Query, error) {
	q := library.Query{Search: search, Genre: f.genre, Author: f.author}
	if f.category != "" {
		c, err := library.ParseCategory(f.category)
		if err != nil {
			return q, err
		}
		q.Category = c
	}
	if f.sortBy != "" {
		k, err := library.ParseSortKey(f.sortBy)
		if err != nil {
			return q, err
		}
		o, err := library.ParseSortOrder(f.order)
		if err != nil {
			return q, err
		}
		q.SortBy, q.Order = k, o
	}
	return q, nil
}

func (f *queryFlags) run(cfg *config.Config, store library.BookStore, search string) ([]library.Book, error) {
	q, err := f.query(search)
	if err != nil {
		return nil, err
	}
	books := library.Apply(store.Books(), q, cfg.Language())
	if f.limit > 0 && len(books) > f.limit {
		books = books[:f.limit]
	}
	return books, nil
}

func newListCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var out output.Options
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		Long: `List books, optionally filtered and sorted.

Examples:
  arc-bookshelf list                              # Everything
  arc-bookshelf list -c wishlist                  # Only the wishlist
  arc-bookshelf list --genre Fantasy --sort price # Fantasy, cheapest first
  arc-bookshelf list --sort name --order desc     # Z to A`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			books, err := flags.run(cfg, store, "")
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Is(output.FormatJSON) {
				return output.JSON(w, books)
			}
			if len(books) == 0 {
				fmt.Fprintln(w, "No books found.")
				fmt.Fprintln(w, "Use 'arc-bookshelf add <name>' to add one.")
				return nil
			}

			bookTable(books, store.Now()).Render(w)
			fmt.Fprintf(w, "\nTotal: %s book(s)\n", humanize.Comma(int64(len(books))))
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	flags.add(cmd)
	return cmd
}
