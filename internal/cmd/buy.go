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

func newBuyCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "buy <id|name>",
		Short: "Mark a wishlist book as bought",
		Long: `Mark a wishlist book as bought. Books releasing in the future move to
pre-orders, everything else moves straight to the library.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			b, err := findBook(store, args[0])
			if err != nil {
				return err
			}
			b, err = store.SetBought(b.ID, true)
			if errors.Is(err, library.ErrInvalidTransition) {
				return fmt.Errorf("%q is on the %s list; only wishlist books can be bought", b.Name, b.Category)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Is(output.FormatJSON) {
				return output.JSON(w, b)
			}
			fmt.Fprintln(w, output.Success(fmt.Sprintf("Bought %q, moved to %s", b.Name, b.Category)))
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	return cmd
}

func newArriveCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "arrive <id|name>",
		Short: "Mark a book as arrived and move it to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			b, err := findBook(store, args[0])
			if err != nil {
				return err
			}
			if b, err = store.SetArrived(b.ID, true); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Is(output.FormatJSON) {
				return output.JSON(w, b)
			}
			fmt.Fprintln(w, output.Success(fmt.Sprintf("%q arrived, moved to %s", b.Name, b.Category)))
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	return cmd
}
