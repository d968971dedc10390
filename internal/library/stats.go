// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"math"
	"sort"
)

// topN is how many genres and authors the statistics rank.
const topN = 5

// LabelCount is one entry of a ranked distribution.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Statistics is the aggregate view over all books.
type Statistics struct {
	LibraryCount  int          `json:"libraryCount"`
	ReadCount     int          `json:"readCount"`
	UnreadCount   int          `json:"unreadCount"`
	PreOrderCount int          `json:"preOrderCount"`
	WishlistCount int          `json:"wishlistCount"`
	LibrarySpent  float64      `json:"librarySpent"`
	PreOrderSpent float64      `json:"preOrderSpent"`
	TotalSpent    float64      `json:"totalSpent"`
	AverageSpent  float64      `json:"averageSpent"`
	TopGenres     []LabelCount `json:"topGenres"`
	TopAuthors    []LabelCount `json:"topAuthors"`
	ReadProgress  float64      `json:"readProgress"` // read / library, 0 when the library is empty
}

// ReadPercent is ReadProgress as a whole percentage.
func (s Statistics) ReadPercent() int {
	return int(math.Round(s.ReadProgress * 100))
}

// ComputeStatistics aggregates counts, spending and distributions. Spending
// covers the library and pre-orders; wishlist prices are not money spent.
func ComputeStatistics(books []Book) Statistics {
	var s Statistics
	var genres, authors []string

	for _, b := range books {
		switch b.Category {
		case CategoryLibrary:
			s.LibraryCount++
			s.LibrarySpent += b.Price
			if b.IsRead {
				s.ReadCount++
			}
		case CategoryPreOrder:
			s.PreOrderCount++
			s.PreOrderSpent += b.Price
		case CategoryWishlist:
			s.WishlistCount++
		}
		genres = append(genres, b.Genre...)
		authors = append(authors, b.Author)
	}

	s.UnreadCount = s.LibraryCount - s.ReadCount
	s.TotalSpent = s.LibrarySpent + s.PreOrderSpent
	if owned := s.LibraryCount + s.PreOrderCount; owned > 0 {
		s.AverageSpent = s.TotalSpent / float64(owned)
	}
	if s.LibraryCount > 0 {
		s.ReadProgress = float64(s.ReadCount) / float64(s.LibraryCount)
	}
	s.TopGenres = rank(genres, topN)
	s.TopAuthors = rank(authors, topN)
	return s
}

// rank counts occurrences and returns the n most frequent labels. Ties keep
// the order in which labels were first seen.
func rank(labels []string, n int) []LabelCount {
	counts := []LabelCount{}
	index := make(map[string]int)
	for _, label := range labels {
		if i, ok := index[label]; ok {
			counts[i].Count++
			continue
		}
		index[label] = len(counts)
		counts = append(counts, LabelCount{Label: label, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
