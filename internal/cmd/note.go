// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

func newNoteCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var clearNotes bool

	cmd := &cobra.Command{
		Use:     "note <id|name> [text]",
		Aliases: []string{"annotate"},
		Short:   "Append to or clear a book's notes",
		Long: `Append a line to the notes of a book, or clear them.

Examples:
  arc-bookshelf note dune "Lent to Sam"
  arc-bookshelf note dune --clear`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := findBook(store, args[0])
			if err != nil {
				return err
			}

			var notes string
			switch {
			case clearNotes:
				notes = ""
			case len(args) == 2 && strings.TrimSpace(args[1]) != "":
				notes = strings.TrimSpace(args[1])
				if b.Notes != "" {
					notes = b.Notes + "\n" + notes
				}
			default:
				return errors.New("pass note text or --clear")
			}

			if _, err := store.Update(b.ID, library.Patch{Notes: &notes}); err != nil {
				return err
			}

			msg := fmt.Sprintf("Added note to %q", b.Name)
			if clearNotes {
				msg = fmt.Sprintf("Cleared notes of %q", b.Name)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.Success(msg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearNotes, "clear", false, "Remove all notes")
	return cmd
}
