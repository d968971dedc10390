// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGenresOrdering(t *testing.T) {
	g := NewGenres(DefaultGenres, []string{"Solarpunk", "Fantasy"}, []string{"Cozy", "Solarpunk", ""})

	all := g.All()
	assert.Equal(t, DefaultGenres, all[:len(DefaultGenres)])
	assert.Equal(t, []string{"Solarpunk", "Cozy"}, all[len(DefaultGenres):])
	assert.Equal(t, []string{"Solarpunk", "Cozy"}, g.Custom())
	assert.Equal(t, len(DefaultGenres)+2, g.Len())
}

func TestGenresMerge(t *testing.T) {
	g := NewGenres(DefaultGenres, nil, nil)

	assert.False(t, g.Merge("Romance", "Krimi"))
	assert.False(t, g.Merge(""))
	assert.True(t, g.Merge("romance"), "labels are case-sensitive")
	assert.True(t, g.Contains("romance"))
	assert.False(t, g.Contains("Cozy"))
	assert.Equal(t, []string{"romance"}, g.Custom())
}

func TestGenresCustomNeverNil(t *testing.T) {
	g := NewGenres(DefaultGenres, nil, nil)
	assert.NotNil(t, g.Custom())
	assert.Empty(t, g.Custom())
}

func TestGenresAllIsACopy(t *testing.T) {
	g := NewGenres([]string{"a"}, nil, nil)
	all := g.All()
	all[0] = "mutated"
	assert.Equal(t, []string{"a"}, g.All())
}
