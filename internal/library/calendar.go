// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"fmt"
	"slices"
	"time"
)

// MonthGroup holds the upcoming releases of one calendar month, split by list.
type MonthGroup struct {
	Year      int        `json:"year"`
	Month     time.Month `json:"month"`
	PreOrders []Book     `json:"preOrders"`
	Wishlist  []Book     `json:"wishlist"`
}

// Label renders the month as e.g. "March 2027".
func (g MonthGroup) Label() string {
	return fmt.Sprintf("%s %d", g.Month, g.Year)
}

// Len is the number of books in the month.
func (g MonthGroup) Len() int {
	return len(g.PreOrders) + len(g.Wishlist)
}

// UpcomingReleases returns pre-order and wishlist books released strictly
// after now, ordered by release date and grouped by month. Library books are
// already owned and do not appear.
func UpcomingReleases(books []Book, now time.Time) []MonthGroup {
	upcoming := filter(books, func(b Book) bool {
		return b.ReleasedAfter(now) && (b.Category == CategoryPreOrder || b.Category == CategoryWishlist)
	})
	slices.SortStableFunc(upcoming, func(a, b Book) int {
		return a.ReleaseDate.Compare(b.ReleaseDate.Time)
	})

	var groups []MonthGroup
	for _, b := range upcoming {
		y, m := b.ReleaseDate.Year(), b.ReleaseDate.Month()
		if len(groups) == 0 || groups[len(groups)-1].Year != y || groups[len(groups)-1].Month != m {
			groups = append(groups, MonthGroup{Year: y, Month: m, PreOrders: []Book{}, Wishlist: []Book{}})
		}
		g := &groups[len(groups)-1]
		if b.Category == CategoryPreOrder {
			g.PreOrders = append(g.PreOrders, b)
		} else {
			g.Wishlist = append(g.Wishlist, b)
		}
	}
	return groups
}
