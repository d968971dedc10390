// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

func newShowCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			b, err := findBook(store, args[0])
			if err != nil {
				return err
			}

			if out.Is(output.FormatJSON) {
				return output.JSON(cmd.OutOrStdout(), b)
			}
			printBook(cmd.OutOrStdout(), b, store.Now())
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	return cmd
}
