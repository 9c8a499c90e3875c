package bank

import (
	"fmt"
	"testing"

	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestIndex(t *testing.T) core.Index {
	t.Helper()
	chunks := []string{
		"Designed and operated kubernetes clusters for the payments platform.",
		"Organized the annual charity bake sale and catering rotation.",
		"Wrote terraform modules provisioning kubernetes node pools on demand.",
		"Maintains a weekend garden of heirloom tomatoes and peppers.",
	}
	index := Build(core.LaneFacts, chunks, 0, Options{Dimension: 128})
	require.Equal(t, len(chunks), index.ChunkCount)
	return index
}

func TestSearch_RanksByRelevance(t *testing.T) {
	index := buildTestIndex(t)

	hits := Search(index, "kubernetes infrastructure", 2, DefaultMinScore)
	require.Len(t, hits, 2)
	assert.Contains(t, hits[0].Text, "kubernetes")
	assert.Contains(t, hits[1].Text, "kubernetes")
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
}

func TestSearch_TopKAndMinScore(t *testing.T) {
	index := buildTestIndex(t)

	t.Run("never exceeds topK", func(t *testing.T) {
		hits := Search(index, "kubernetes", 3, DefaultMinScore)
		assert.LessOrEqual(t, len(hits), 3)
	})

	t.Run("scores sorted non-increasing", func(t *testing.T) {
		hits := Search(index, "kubernetes platform garden", 10, DefaultMinScore)
		for i := 1; i < len(hits); i++ {
			assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
		}
	})

	t.Run("minScore excludes weak candidates", func(t *testing.T) {
		hits := Search(index, "kubernetes", 10, 0.2)
		for _, hit := range hits {
			assert.GreaterOrEqual(t, hit.Score, float32(0.2))
		}
		assert.Less(t, len(hits), index.ChunkCount)
	})

	t.Run("zero topK yields empty", func(t *testing.T) {
		assert.Empty(t, Search(index, "kubernetes", 0, DefaultMinScore))
	})

	t.Run("negative topK falls back to default", func(t *testing.T) {
		hits := Search(index, "kubernetes platform garden charity", -1, DefaultMinScore)
		assert.Len(t, hits, DefaultTopK)
	})
}

func TestSearch_EmptyIndex(t *testing.T) {
	index := Build(core.LaneFacts, nil, 0, Options{})
	assert.Empty(t, Search(index, "anything", 4, DefaultMinScore))
}

func TestSearchVector_DegenerateQueries(t *testing.T) {
	index := buildTestIndex(t)

	t.Run("empty vector", func(t *testing.T) {
		assert.Empty(t, SearchVector(index, nil, 4, DefaultMinScore))
	})

	t.Run("zero vector", func(t *testing.T) {
		zero := make([]float32, index.Dimension)
		assert.Empty(t, SearchVector(index, zero, 4, DefaultMinScore))
	})
}

func TestSearchVector_StableOnTies(t *testing.T) {
	// Two chunks with identical vectors relative to the query keep their
	// insertion order.
	index := core.Index{
		Version:   core.IndexVersion,
		Lane:      core.LaneFacts,
		BankType:  core.BankTypeFacts,
		Dimension: 2,
		Chunks: []core.Chunk{
			{Id: "facts_0_1", Text: "first", Vector: []float32{1, 0}, Norm: 1, Chars: 5},
			{Id: "facts_1_1", Text: "second", Vector: []float32{2, 0}, Norm: 2, Chars: 6},
		},
		ChunkCount: 2,
	}

	hits := SearchVector(index, []float32{1, 0}, 4, DefaultMinScore)
	require.Len(t, hits, 2)
	assert.Equal(t, "facts_0_1", hits[0].Id)
	assert.Equal(t, "facts_1_1", hits[1].Id)
}

func TestApplyExternalEmbeddings(t *testing.T) {
	index := buildTestIndex(t)

	t.Run("wrong length leaves index unchanged", func(t *testing.T) {
		short := [][]float32{{1, 2, 3}}
		updated := ApplyExternalEmbeddings(index, short, "text-embedding-3-small", 3)
		assert.Equal(t, index.ChunkCount, updated.ChunkCount)
		assert.Equal(t, index.Dimension, updated.Dimension)
		assert.Equal(t, index.EmbeddingModel, updated.EmbeddingModel)
	})

	t.Run("swap replaces every vector atomically", func(t *testing.T) {
		external := make([][]float32, len(index.Chunks))
		for i := range external {
			external[i] = []float32{float32(i + 1), 0, 0}
		}

		updated := ApplyExternalEmbeddings(index, external, "text-embedding-3-small", 3)
		assert.Equal(t, 3, updated.Dimension)
		assert.Equal(t, "text-embedding-3-small", updated.EmbeddingModel)
		require.Len(t, updated.Chunks, len(index.Chunks))
		for i, c := range updated.Chunks {
			assert.Equal(t, external[i], c.Vector, fmt.Sprintf("chunk %d", i))
			assert.InDelta(t, float64(i+1), float64(c.Norm), 1e-6)
			// Identity and text survive the swap.
			assert.Equal(t, index.Chunks[i].Id, c.Id)
			assert.Equal(t, index.Chunks[i].Text, c.Text)
		}

		// Source index untouched.
		assert.Equal(t, 128, index.Dimension)
		assert.Empty(t, index.EmbeddingModel)
	})

	t.Run("missing model name recorded as external", func(t *testing.T) {
		external := make([][]float32, len(index.Chunks))
		for i := range external {
			external[i] = []float32{1, 1}
		}
		updated := ApplyExternalEmbeddings(index, external, "", 0)
		assert.Equal(t, ExternalModelName, updated.EmbeddingModel)
		assert.Equal(t, 2, updated.Dimension)
	})
}
