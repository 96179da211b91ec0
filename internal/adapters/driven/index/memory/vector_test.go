package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorIndex_Search_RanksBySimilarity(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()

	require.NoError(t, idx.Add(ctx, "exact", []float32{1, 0, 0}))
	require.NoError(t, idx.Add(ctx, "close", []float32{0.9, 0.1, 0}))
	require.NoError(t, idx.Add(ctx, "far", []float32{0, 0, 1}))

	hits, err := idx.Search(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "exact", hits[0].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
	assert.Equal(t, "close", hits[1].ChunkID)
	assert.Equal(t, "far", hits[2].ChunkID)
	assert.InDelta(t, 0.0, hits[2].Similarity, 1e-9)
}

func TestVectorIndex_Search_KLimit(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()
	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "b", []float32{0.5, 0.5}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a", hits[0].ChunkID)
}

func TestVectorIndex_Search_Cancelled(t *testing.T) {
	idx := NewVectorIndex()
	require.NoError(t, idx.Add(context.Background(), "a", []float32{1, 0}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := idx.Search(ctx, []float32{1, 0}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVectorIndex_Search_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()
	require.NoError(t, idx.Add(ctx, "a", []float32{1, 0, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 0.0, hits[0].Similarity, 1e-9)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, cosine([]float32{1, 1}, []float32{2, 2}), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosine(nil, nil), 1e-9)
	assert.InDelta(t, 0.0, cosine([]float32{0, 0}, []float32{1, 1}), 1e-9)
}
