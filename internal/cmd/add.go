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

func newAddCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var (
		out      output.Options
		d        library.Draft
		category string
		release  string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a book to one of your lists",
		Long: `Add a book to the library, pre-orders or wishlist.

Examples:
  arc-bookshelf add "Dune" --author "Frank Herbert" --price 12 --genre "Science Fiction"
  arc-bookshelf add "Book2" -a X -p 8 -g Fantasy -c pre-order --release 2027-02-01
  arc-bookshelf add "Wish" -a Y -g Romance -c wishlist --shop https://shop.example/wish`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			cat, err := library.ParseCategory(category)
			if err != nil {
				return err
			}
			d.Name = args[0]
			if d.ReleaseDate, err = parseDateFlag(release); err != nil {
				return err
			}
			if err := validate.ValidateDraft(d, cat); err != nil {
				return err
			}

			b, err := store.Add(d, cat)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Is(output.FormatJSON) {
				return output.JSON(w, b)
			}
			fmt.Fprintln(w, output.Success(fmt.Sprintf("Added %q to %s (ID: %s)", b.Name, b.Category, shortID(b.ID))))
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	cmd.Flags().StringVarP(&d.Author, "author", "a", "", "Author")
	cmd.Flags().Float64VarP(&d.Price, "price", "p", 0, "Price")
	cmd.Flags().StringSliceVarP(&d.Genre, "genre", "g", nil, "Genre (repeatable)")
	cmd.Flags().StringVarP(&category, "category", "c", string(library.CategoryLibrary), "List: library, pre-order, wishlist")
	cmd.Flags().StringVar(&release, "release", "", "Release date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&d.ImageURL, "image", "", "Cover image URL")
	cmd.Flags().StringVar(&d.ShopLink, "shop", "", "Shop link (wishlist)")
	cmd.Flags().BoolVar(&d.IsRead, "read", false, "Already read")
	cmd.Flags().Float64Var(&d.Rating, "rating", 0, "Rating 0-5 in half steps")
	cmd.Flags().StringVar(&d.Notes, "notes", "", "Free-form notes")

	return cmd
}
