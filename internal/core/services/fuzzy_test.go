package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"fuser", "fuser", 0},
		{"fuser", "fusor", 1},
		{"fuser", "", 5},
		{"", "tray", 4},
		{"kitten", "sitting", 3},
		{"drum", "durm", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshteinDistance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestTokenSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, tokenSimilarity("fuser", "fuser"), 1e-9)
	assert.InDelta(t, 0.8, tokenSimilarity("fuser", "fusor"), 1e-9)
	assert.InDelta(t, 0.0, tokenSimilarity("ab", "xy"), 1e-9)
	assert.InDelta(t, 1.0, tokenSimilarity("", ""), 1e-9)
}

func TestFuzzySimilarity(t *testing.T) {
	fragment := []string{"replace", "the", "fuser", "unit"}

	// Exact token: perfect per-token score.
	assert.InDelta(t, 1.0, fuzzySimilarity([]string{"fuser"}, fragment), 1e-9)

	// One-character typo.
	assert.InDelta(t, 0.8, fuzzySimilarity([]string{"fusor"}, fragment), 1e-9)

	// Two tokens, one exact and one typo: the average.
	assert.InDelta(t, 0.9, fuzzySimilarity([]string{"unit", "fusor"}, fragment), 1e-9)

	// Empty inputs never match.
	assert.InDelta(t, 0.0, fuzzySimilarity(nil, fragment), 1e-9)
	assert.InDelta(t, 0.0, fuzzySimilarity([]string{"fuser"}, nil), 1e-9)
}
