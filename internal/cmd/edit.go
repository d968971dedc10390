// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

func newEditCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var (
		out          output.Options
		name         string
		author       string
		price        float64
		genres       []string
		image        string
		release      string
		clearRelease bool
		shop         string
		rating       float64
		notes        string
	)

	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Change fields of a book",
		Long: `Change fields of a book. Only the flags you pass are changed.
The list a book is on changes only through 'buy' and 'arrive'.

Examples:
  arc-bookshelf edit dune --price 14.5
  arc-bookshelf edit 0192 --genre Fantasy --genre Romantasy
  arc-bookshelf edit "Book2" --clear-release`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			b, err := findBook(store, args[0])
			if err != nil {
				return err
			}

			var p library.Patch
			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = &name
			}
			if flags.Changed("author") {
				p.Author = &author
			}
			if flags.Changed("price") {
				p.Price = &price
			}
			if flags.Changed("genre") {
				p.Genre = genres
			}
			if flags.Changed("image") {
				p.ImageURL = &image
			}
			if flags.Changed("shop") {
				p.ShopLink = &shop
			}
			if flags.Changed("rating") {
				p.Rating = &rating
			}
			if flags.Changed("notes") {
				p.Notes = &notes
			}
			if flags.Changed("release") {
				if p.ReleaseDate, err = parseDateFlag(release); err != nil {
					return err
				}
			}
			p.ClearReleaseDate = clearRelease

			if p.Empty() {
				return errors.New("nothing to change; pass at least one field flag")
			}
			if err := validate.ValidatePatch(p, b); err != nil {
				return err
			}

			updated, err := store.Update(b.ID, p)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Is(output.FormatJSON) {
				return output.JSON(w, updated)
			}
			fmt.Fprintln(w, output.Success(fmt.Sprintf("Updated %q", updated.Name)))
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVarP(&author, "author", "a", "", "New author")
	cmd.Flags().Float64VarP(&price, "price", "p", 0, "New price")
	cmd.Flags().StringSliceVarP(&genres, "genre", "g", nil, "Replace genres (repeatable)")
	cmd.Flags().StringVar(&image, "image", "", "Cover image URL")
	cmd.Flags().StringVar(&release, "release", "", "Release date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearRelease, "clear-release", false, "Remove the release date")
	cmd.Flags().StringVar(&shop, "shop", "", "Shop link")
	cmd.Flags().Float64Var(&rating, "rating", 0, "Rating 0-5 in half steps")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")

	return cmd
}
