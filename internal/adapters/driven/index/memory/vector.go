package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/techdex-labs/techdex-cli/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// cancelCheckStride is how many vectors are scanned between ctx checks.
const cancelCheckStride = 256

// VectorIndex is a brute-force cosine similarity index.
// Exact rather than approximate: corpus sizes here are bounded by one
// machine's documentation set, and a full scan keeps results
// deterministic.
type VectorIndex struct {
	mu      sync.RWMutex
	ids     []string
	vectors [][]float32
}

// NewVectorIndex creates an empty vector index.
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{}
}

// Add inserts a vector for the given chunk ID.
func (idx *VectorIndex) Add(_ context.Context, chunkID string, embedding []float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.ids = append(idx.ids, chunkID)
	idx.vectors = append(idx.vectors, embedding)
	return nil
}

// Len returns the number of indexed vectors.
func (idx *VectorIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.ids)
}

// Search scans all vectors and returns the k most similar, cosine
// similarity clipped to [0,1]. The scan checks ctx periodically so a
// caller can abandon a long-running request; the index itself is
// untouched by cancellation.
func (idx *VectorIndex) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	hits := make([]driven.VectorHit, 0, len(idx.ids))
	for i, vec := range idx.vectors {
		if i%cancelCheckStride == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		hits = append(hits, driven.VectorHit{
			ChunkID:    idx.ids[i],
			Similarity: clip01(cosine(query, vec)),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})

	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// cosine computes cosine similarity between two vectors.
// Returns 0 for mismatched dimensions or zero-length vectors.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
