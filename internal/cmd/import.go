// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/mtreilly/arc-bookshelf/internal/transfer"
)

func newImportCmd(cfg *config.Config, store library.BookStore, xfer *transfer.Transfer) *cobra.Command {
	var (
		out    output.Options
		merge  bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "import <file|s3://bucket/key|->",
		Short: "Import a snapshot document",
		Long: `Import a snapshot document {books, genres} produced by 'export'.

By default the imported books replace the whole collection. With --merge
only books whose id is not present yet are added. Imported genres are
always added to the genre list. Documents written by older versions, with
a single genre per book, are upgraded on the fly.

Examples:
  arc-bookshelf import ` + library.ExportFileName + `
  arc-bookshelf import backup.yaml --merge
  arc-bookshelf import s3://my-bucket/bookshelf/export.json
  cat shelf.yaml | arc-bookshelf import - --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.Resolve(); err != nil {
				return err
			}

			mode := library.ImportReplace
			if merge {
				mode = library.ImportMerge
			}

			var (
				res library.ImportResult
				err error
			)
			if args[0] == "-" {
				f, ferr := snapshotFormat(format, "stdin.json")
				if ferr != nil {
					return ferr
				}
				data, rerr := io.ReadAll(cmd.InOrStdin())
				if rerr != nil {
					return fmt.Errorf("read stdin: %w", rerr)
				}
				res, err = applySnapshot(store, "stdin."+f, data, mode)
			} else {
				target, perr := transfer.ParseTarget(args[0])
				if perr != nil {
					return perr
				}
				res, err = importTarget(cmd.Context(), store, xfer, target, mode)
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Is(output.FormatJSON) {
				return output.JSON(w, res)
			}
			fmt.Fprintln(w, output.Success(fmt.Sprintf("Imported %d book(s)", res.Added)))
			if res.Skipped > 0 {
				fmt.Fprintf(w, "Skipped: %d (already present or duplicate id)\n", res.Skipped)
			}
			if res.NewGenres > 0 {
				fmt.Fprintf(w, "New genres: %d\n", res.NewGenres)
			}
			for _, warning := range res.Warnings {
				fmt.Fprintln(w, output.Muted("Repaired "+warning))
			}
			return nil
		},
	}

	out.AddFlags(cmd, output.FormatTable)
	cmd.Flags().BoolVarP(&merge, "merge", "m", false, "Add new books instead of replacing the collection")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format for stdin: json or yaml")
	return cmd
}

// importTarget reads and applies the snapshot stored at target.
func importTarget(ctx context.Context, store library.BookStore, xfer *transfer.Transfer, target transfer.Target, mode library.ImportMode) (library.ImportResult, error) {
	data, err := xfer.Read(ctx, target)
	if err != nil {
		return library.ImportResult{}, err
	}
	return applySnapshot(store, target.Name(), data, mode)
}

// applySnapshot decodes data by the extension of name. A document that does
// not decode leaves the collection untouched.
func applySnapshot(store library.BookStore, name string, data []byte, mode library.ImportMode) (library.ImportResult, error) {
	s, err := library.DecodeSnapshot(name, data)
	if err != nil {
		return library.ImportResult{}, fmt.Errorf("import %s: %w", name, err)
	}
	return store.Import(s, mode)
}
