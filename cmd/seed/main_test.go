package main

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	books := generate(rand.New(rand.NewSource(7)), 300)
	require.Len(t, books, 300)

	seen := map[string]int{}
	for _, b := range books {
		assert.Len(t, strings.Fields(b.Title), 2)
		assert.NotEmpty(t, b.Author)
		assert.GreaterOrEqual(t, b.Rating, 0)
		assert.True(t, strings.HasPrefix(b.Link, "https://books.example.com/"))
		seen[b.Title]++
	}
	assert.Len(t, seen, 256)
	assert.Equal(t, 2, seen[books[0].Title])
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generate(rand.New(rand.NewSource(42)), 50)
	b := generate(rand.New(rand.NewSource(42)), 50)
	assert.Equal(t, a, b)
}
