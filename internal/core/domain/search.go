package domain

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercase alphanumeric tokens, deduplicated
// in order of first appearance. The lexical index and the fuzzy scorer
// must tokenize query and fragment text identically, so this is the one
// shared definition.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// SearchFilters narrows search candidates before scoring.
// All filters are optional; empty values match everything.
type SearchFilters struct {
	// ManufacturerID restricts results to one manufacturer.
	ManufacturerID string

	// ProductID restricts results to documents linked to one product.
	ProductID string

	// DocumentType restricts results to one document type.
	DocumentType DocumentType
}

// SignalScores holds the per-signal relevance values for one match.
// Each score is in [0,1]; a signal that did not fire is zero.
type SignalScores struct {
	// Lexical is the token-overlap relevance.
	Lexical float64

	// Fuzzy is the approximate string similarity (typo tolerant).
	Fuzzy float64

	// Code is 1 when the normalized query exactly equals one of the
	// fragment's normalized codes or part numbers, else 0.
	Code float64

	// Vector is the cosine similarity to the query embedding,
	// clipped to [0,1]. Zero when the fragment has no embedding.
	Vector float64
}

// Max returns the fused score: the maximum of the individual signals.
func (s SignalScores) Max() float64 {
	m := s.Lexical
	if s.Fuzzy > m {
		m = s.Fuzzy
	}
	if s.Code > m {
		m = s.Code
	}
	if s.Vector > m {
		m = s.Vector
	}
	return m
}

// SearchMatch is one ranked search hit. Request-scoped; never persisted.
type SearchMatch struct {
	// ChunkID is the matched fragment.
	ChunkID string

	// DocumentID is the fragment's parent document.
	DocumentID string

	// DocumentTitle is the parent document's title.
	DocumentTitle string

	// Score is the fused relevance value used for ranking.
	Score float64

	// Signals are the individual per-signal scores, kept for provenance.
	Signals SignalScores

	// Snippet is a short excerpt of the fragment around matched terms.
	Snippet string
}
