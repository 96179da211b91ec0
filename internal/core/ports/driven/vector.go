package driven

import "context"

// VectorIndex provides semantic similarity search operations.
// Like LexicalIndex, implementations are rebuilt per projection refresh
// and immutable once a snapshot holds them.
type VectorIndex interface {
	// Add inserts a vector for the given chunk ID.
	Add(ctx context.Context, chunkID string, embedding []float32) error

	// Search finds the k nearest neighbours to the query vector.
	// Implementations must honour ctx cancellation mid-scan.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score clipped to [0,1].
	Similarity float64
}
