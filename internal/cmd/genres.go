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

func newGenresCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genres",
		Short: "Manage the genre list",
		Long:  `List the genres offered for books and register new ones.`,
	}

	cmd.AddCommand(newGenresListCmd(store))
	cmd.AddCommand(newGenresAddCmd(store))

	return cmd
}

func newGenresListCmd(store library.BookStore) *cobra.Command {
	var out output.Options
	var custom, used bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List genres",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			var genres []string
			switch {
			case used:
				genres = library.DistinctGenres(store.Books())
			case custom:
				genres = store.CustomGenres()
			default:
				genres = store.Genres()
			}

			w := cmd.OutOrStdout()
			if out.Is(output.FormatJSON) {
				return output.JSON(w, genres)
			}
			if len(genres) == 0 {
				fmt.Fprintln(w, "No genres found.")
				return nil
			}

			counts := make(map[string]int)
			for _, b := range store.Books() {
				for _, g := range b.Genre {
					counts[g]++
				}
			}
			table := output.NewTable("Genre", "Books")
			for _, g := range genres {
				table.AddRow(g, fmt.Sprintf("%d", counts[g]))
			}
			table.Render(w)
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	cmd.Flags().BoolVar(&custom, "custom", false, "Only genres you added")
	cmd.Flags().BoolVar(&used, "used", false, "Only genres used by at least one book")
	return cmd
}

func newGenresAddCmd(store library.BookStore) *cobra.Command {
	return &cobra.Command{
		Use:   "add <genre> [genre...]",
		Short: "Register genres",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grew, err := store.AddGenres(args...)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !grew {
				fmt.Fprintln(w, "All genres already registered.")
				return nil
			}
			fmt.Fprintln(w, output.Success(fmt.Sprintf("Registered %d genre(s)", len(args))))
			return nil
		},
	}
}
