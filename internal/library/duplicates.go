// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"regexp"
	"sort"
	"strings"
)

// DuplicatePair is two books that look like the same title.
type DuplicatePair struct {
	A      Book    `json:"a"`
	B      Book    `json:"b"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

var punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// FindDuplicates compares every pair of books. Same name and author (ignoring
// case) scores 1. Otherwise pairs by the same author whose names share at
// least threshold of their words are reported. Highest scores come first.
func FindDuplicates(books []Book, threshold float64) []DuplicatePair {
	var pairs []DuplicatePair
	for i := 0; i < len(books); i++ {
		for j := i + 1; j < len(books); j++ {
			a, b := books[i], books[j]
			if !strings.EqualFold(strings.TrimSpace(a.Author), strings.TrimSpace(b.Author)) {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(a.Name), strings.TrimSpace(b.Name)) {
				pairs = append(pairs, DuplicatePair{A: a, B: b, Score: 1, Reason: "same name and author"})
				continue
			}
			if sim := titleSimilarity(a.Name, b.Name); sim >= threshold {
				pairs = append(pairs, DuplicatePair{A: a, B: b, Score: sim, Reason: "similar name, same author"})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Score > pairs[j].Score })
	return pairs
}

// titleSimilarity is the Jaccard index of the words longer than two letters.
func titleSimilarity(a, b string) float64 {
	setA, setB := titleWords(a), titleWords(b)
	intersection := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func titleWords(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(punctuation.ReplaceAllString(strings.ToLower(s), "")) {
		if len([]rune(w)) > 2 {
			words[w] = struct{}{}
		}
	}
	return words
}
