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

func newDeleteCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id|name> [id|name...]",
		Aliases: []string{"rm"},
		Short:   "Delete books",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, ref := range args {
				b, err := findBook(store, ref)
				if err != nil {
					return err
				}
				if err := store.Delete(b.ID); err != nil {
					return fmt.Errorf("delete %q: %w", b.Name, err)
				}
				fmt.Fprintln(w, output.Success(fmt.Sprintf("Deleted %q", b.Name)))
			}
			return nil
		},
	}
}
