// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

var validate = library.NewValidator()

// findBook resolves an id, id prefix or title against the store.
func findBook(store library.BookStore, ref string) (library.Book, error) {
	return library.Resolve(store.Books(), ref)
}

func parseDateFlag(s string) (*library.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := library.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func formatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}

// releaseLabel renders a release date with a relative hint, e.g.
// "2027-03-01 (4 months from now)".
func releaseLabel(b library.Book, now time.Time) string {
	if b.ReleaseDate == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", b.ReleaseDate, humanize.RelTime(b.ReleaseDate.Time, now, "ago", "from now"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func printBook(w io.Writer, b library.Book, now time.Time) {
	fmt.Fprintln(w, output.Heading(b.Name))
	fmt.Fprintf(w, "  ID:        %s\n", b.ID)
	fmt.Fprintf(w, "  Author:    %s\n", b.Author)
	fmt.Fprintf(w, "  List:      %s\n", b.Category)
	fmt.Fprintf(w, "  Genres:    %s\n", strings.Join(b.Genre, ", "))
	fmt.Fprintf(w, "  Price:     %s\n", formatPrice(b.Price))
	if b.ReleaseDate != nil {
		fmt.Fprintf(w, "  Release:   %s\n", releaseLabel(b, now))
	}
	if b.Category == library.CategoryLibrary {
		fmt.Fprintf(w, "  Read:      %s\n", yesNo(b.IsRead))
		if b.Rating > 0 {
			fmt.Fprintf(w, "  Rating:    %.1f/5\n", b.Rating)
		}
	}
	if b.ShopLink != "" {
		fmt.Fprintf(w, "  Shop:      %s\n", b.ShopLink)
	}
	if b.ImageURL != "" {
		fmt.Fprintf(w, "  Cover:     %s\n", b.ImageURL)
	}
	if b.Notes != "" {
		fmt.Fprintf(w, "  Notes:     %s\n", b.Notes)
	}
}

func bookTable(books []library.Book, now time.Time) *output.Table {
	table := output.NewTable("ID", "Name", "Author", "Genres", "Price", "List", "Release", "Read")
	for _, b := range books {
		release := ""
		if b.ReleaseDate != nil {
			release = b.ReleaseDate.String()
			if b.ReleasedAfter(now) {
				release += " " + output.Muted("("+humanize.RelTime(b.ReleaseDate.Time, now, "ago", "from now")+")")
			}
		}
		read := ""
		if b.Category == library.CategoryLibrary {
			read = yesNo(b.IsRead)
		}
		table.AddRow(
			shortID(b.ID),
			output.Truncate(b.Name, 40),
			output.Truncate(b.Author, 25),
			output.Truncate(strings.Join(b.Genre, ", "), 25),
			formatPrice(b.Price),
			string(b.Category),
			release,
			read,
		)
	}
	return table
}
