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

func newReadCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var unread bool
	var rating float64

	cmd := &cobra.Command{
		Use:   "read <id|name>",
		Short: "Mark a book as read",
		Long: `Mark a book as read, optionally rating it.

Examples:
  arc-bookshelf read dune --rating 4.5
  arc-bookshelf read dune --unread`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := findBook(store, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("rating") {
				p := library.Patch{Rating: &rating}
				if err := validate.ValidatePatch(p, b); err != nil {
					return err
				}
				if _, err := store.Update(b.ID, p); err != nil {
					return err
				}
			}
			if b, err = store.SetRead(b.ID, !unread); err != nil {
				return err
			}

			state := "read"
			if unread {
				state = "unread"
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.Success(fmt.Sprintf("Marked %q as %s", b.Name, state)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unread, "unread", false, "Mark as not read")
	cmd.Flags().Float64Var(&rating, "rating", 0, "Rating 0-5 in half steps")
	return cmd
}
