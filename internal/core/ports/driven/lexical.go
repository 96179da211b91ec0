package driven

import "context"

// LexicalIndex provides token-overlap relevance over fragment text.
// Implementations are rebuilt from scratch on every projection refresh;
// a populated index is immutable once handed to a snapshot.
type LexicalIndex interface {
	// Index adds a fragment's text under the given chunk ID.
	Index(ctx context.Context, chunkID, text string) error

	// Search returns fragments sharing tokens with the query, scored by
	// the fraction of query tokens present ([0,1]), best first.
	Search(ctx context.Context, query string, limit int) ([]LexicalHit, error)
}

// LexicalHit is one token-overlap match.
type LexicalHit struct {
	// ChunkID is the matched fragment.
	ChunkID string

	// Score is the query-token coverage in [0,1].
	Score float64
}
