package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/techdex-labs/techdex-cli/internal/core/domain"
	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// Ensure LexicalIndex implements the interface.
var _ driven.LexicalIndex = (*LexicalIndex)(nil)

// LexicalIndex is an in-memory inverted token index.
// Scores are query-token coverage: the fraction of query tokens that
// appear in the fragment.
type LexicalIndex struct {
	mu       sync.RWMutex
	postings map[string]map[string]struct{} // token -> chunk ids
}

// NewLexicalIndex creates an empty lexical index.
func NewLexicalIndex() *LexicalIndex {
	return &LexicalIndex{
		postings: make(map[string]map[string]struct{}),
	}
}

// Index adds a fragment's text under the given chunk ID.
func (idx *LexicalIndex) Index(_ context.Context, chunkID, text string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, token := range domain.Tokenize(text) {
		ids, ok := idx.postings[token]
		if !ok {
			ids = make(map[string]struct{})
			idx.postings[token] = ids
		}
		ids[chunkID] = struct{}{}
	}
	return nil
}

// Search returns fragments sharing tokens with the query, scored by the
// fraction of query tokens present, best first. Ties order by chunk id
// ascending for determinism. limit <= 0 returns all matches.
func (idx *LexicalIndex) Search(_ context.Context, query string, limit int) ([]driven.LexicalHit, error) {
	tokens := domain.Tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	idx.mu.RLock()
	matched := make(map[string]int)
	for _, token := range tokens {
		for id := range idx.postings[token] {
			matched[id]++
		}
	}
	idx.mu.RUnlock()

	hits := make([]driven.LexicalHit, 0, len(matched))
	for id, count := range matched {
		hits = append(hits, driven.LexicalHit{
			ChunkID: id,
			Score:   float64(count) / float64(len(tokens)),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}
