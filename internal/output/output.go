// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package output renders command results as styled tables or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// Format selects how a command prints its result.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Options holds the --output and --json flags of a command.
type Options struct {
	format string
	json   bool
	active Format
}

// AddFlags registers the output flags with def as the default format.
func (o *Options) AddFlags(cmd *cobra.Command, def Format) {
	cmd.Flags().StringVarP(&o.format, "output", "o", string(def), "Output format (table, json)")
	cmd.Flags().BoolVar(&o.json, "json", false, "Shorthand for --output json")
}

// Resolve validates the flags. Call it at the start of RunE.
func (o *Options) Resolve() error {
	if o.json {
		o.active = FormatJSON
		return nil
	}
	switch f := Format(strings.ToLower(o.format)); f {
	case FormatTable, FormatJSON:
		o.active = f
		return nil
	case "":
		o.active = FormatTable
		return nil
	default:
		return fmt.Errorf("unknown output format %q (choose table, json)", o.format)
	}
}

// Is reports whether the resolved format is f.
func (o *Options) Is(f Format) bool {
	return o.active == f
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	headerCell   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell         = lipgloss.NewStyle().Padding(0, 1)
)

// Heading styles a section title.
func Heading(s string) string { return headingStyle.Render(s) }

// Muted styles secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }

// Success styles a confirmation.
func Success(s string) string { return successStyle.Render(s) }

// Table collects rows and renders them with a rounded border.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len is the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Render writes the table to w.
func (t *Table) Render(w io.Writer) {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return cell
		})
	fmt.Fprintln(w, tbl.Render())
}

// Truncate shortens s to n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
