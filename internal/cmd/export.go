// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
	"github.com/mtreilly/arc-bookshelf/internal/transfer"
)

func newExportCmd(cfg *config.Config, store library.BookStore, xfer *transfer.Transfer) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [file|s3://bucket/key|-]",
		Short: "Export all books and custom genres",
		Long: `Export the whole collection as a snapshot document {books, genres}.

The default target is ` + library.ExportFileName + ` in the current directory.
A directory target receives that file name. The format follows the file
extension (.json, .yaml, .yml) unless --format is given.

Examples:
  arc-bookshelf export
  arc-bookshelf export ~/backup/shelf.yaml
  arc-bookshelf export s3://my-bucket/bookshelf/export.json
  arc-bookshelf export - --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := library.ExportFileName
			if len(args) > 0 {
				raw = args[0]
			}

			name := raw
			var target transfer.Target
			if raw != "-" {
				var err error
				if target, err = transfer.ParseTarget(raw); err != nil {
					return err
				}
				if xfer.IsDir(target) {
					target.Path = filepath.Join(target.Path, library.ExportFileName)
				}
				name = target.Name()
			}

			f, err := snapshotFormat(format, name)
			if err != nil {
				return err
			}
			data, err := encodeSnapshot(store, f)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if raw == "-" {
				_, err := w.Write(data)
				return err
			}
			if err := xfer.Write(cmd.Context(), target, data); err != nil {
				return err
			}
			fmt.Fprintln(w, output.Success(fmt.Sprintf("Exported %d book(s) to %s (%s)",
				len(store.Books()), target, humanize.Bytes(uint64(len(data))))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Document format: json or yaml (default from extension)")
	return cmd
}

// snapshotFormat picks json or yaml from the flag, then from the file name.
func snapshotFormat(flag, name string) (string, error) {
	switch f := strings.ToLower(flag); f {
	case "json", "yaml":
		return f, nil
	case "yml":
		return "yaml", nil
	case "":
	default:
		return "", fmt.Errorf("unsupported format: %s (choose json, yaml)", flag)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "json", nil
	}
}

func encodeSnapshot(store library.BookStore, format string) ([]byte, error) {
	if format == "yaml" {
		return library.EncodeYAML(store.Books(), store.CustomGenres())
	}
	return store.Export()
}
