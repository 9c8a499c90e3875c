package reembed

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/A-makarim/ai-job-assistant/ai/mock"
	"github.com/A-makarim/ai-job-assistant/bank"
	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/A-makarim/ai-job-assistant/storage"
	storagebadger "github.com/A-makarim/ai-job-assistant/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLane(t *testing.T, repo storage.IndexRepository, lane core.Lane, entries []string) {
	t.Helper()
	index := bank.Build(lane, entries, 200, bank.Options{Dimension: 64})
	require.NoError(t, repo.SaveIndex(context.Background(), &index))
}

func testConfig() *Config {
	return &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     2,
		RetryDelay:     5 * time.Millisecond,
	}
}

func TestNewReembedder_Validation(t *testing.T) {
	repo, _, err := storagebadger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	_, err = NewReembedder(nil, mock.NewMockEmbedder(), nil, nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewReembedder(repo, nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestRun_SwapsVectorsAndModel(t *testing.T) {
	repo, _, err := storagebadger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	seedLane(t, repo, core.LaneFacts, []string{
		"Led the search relevance project through two major ranking overhauls.",
		"Cut cold-start latency for the recommendation service by a third.",
		"Mentored three engineers through their first production launches.",
	})

	embedder := mock.NewMockEmbedder()
	embedder.Dimension = 48
	embedder.ModelName = "nomic-embed-text"

	var out bytes.Buffer
	r, err := NewReembedder(repo, embedder, testConfig(), &out)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, r.Run(ctx, core.LaneFacts))

	loaded, err := repo.LoadIndex(ctx, core.LaneFacts)
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", loaded.EmbeddingModel)
	assert.Equal(t, 48, loaded.Dimension)
	for _, c := range loaded.Chunks {
		assert.Len(t, c.Vector, 48)
		assert.InDelta(t, 1.0, c.Norm, 0.01, "vectors should be unit length")
	}
	// Batch size 2 over 3 chunks means two embedding calls.
	assert.Equal(t, 2, embedder.CallCount())
	assert.Contains(t, out.String(), "Reembedding complete")
}

func TestRun_FailureLeavesLaneUntouched(t *testing.T) {
	repo, _, err := storagebadger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	seedLane(t, repo, core.LaneVoice, []string{
		"I genuinely think pairing is the fastest way to spread context.",
		"Honestly, I'd rather delete code than add a config flag.",
	})

	embedder := mock.NewMockEmbedder()
	embedder.EmbedDocumentsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("service unavailable")
	}

	r, err := NewReembedder(repo, embedder, testConfig(), nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.Error(t, r.Run(ctx, core.LaneVoice))

	loaded, err := repo.LoadIndex(ctx, core.LaneVoice)
	require.NoError(t, err)
	assert.Empty(t, loaded.EmbeddingModel, "failed run must keep local vectors")
	assert.Equal(t, 64, loaded.Dimension)
}

func TestRun_MissingLane(t *testing.T) {
	repo, _, err := storagebadger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	r, err := NewReembedder(repo, mock.NewMockEmbedder(), testConfig(), nil)
	require.NoError(t, err)

	err = r.Run(context.Background(), core.LaneProfile)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRunAll(t *testing.T) {
	repo, _, err := storagebadger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	seedLane(t, repo, core.LaneFacts, []string{
		"Owns the hiring loop rubric for backend candidates.",
	})
	seedLane(t, repo, core.LaneCompany, []string{
		"The platform group values boring technology and written decision records.",
	})

	embedder := mock.NewMockEmbedder()
	embedder.ModelName = "nomic-embed-text"

	r, err := NewReembedder(repo, embedder, testConfig(), nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, r.RunAll(ctx))

	for _, lane := range []core.Lane{core.LaneFacts, core.LaneCompany} {
		loaded, err := repo.LoadIndex(ctx, lane)
		require.NoError(t, err)
		assert.Equal(t, "nomic-embed-text", loaded.EmbeddingModel)
	}
}

func TestBatchProcessor_CountMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedDocumentsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil
	}

	bp := NewBatchProcessor(embedder, 1, time.Millisecond)
	_, err := bp.Process(context.Background(), []string{"one", "two"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestBatchProcessor_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	embedder := mock.NewMockEmbedder()
	embedder.EmbedDocumentsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		return [][]float32{{3, 4}}, nil
	}

	bp := NewBatchProcessor(embedder, 3, time.Millisecond)
	vectors, err := bp.Process(context.Background(), []string{"text"})
	require.NoError(t, err)
	require.Len(t, vectors, 1)
	assert.Equal(t, 2, calls)
	assert.InDelta(t, 0.6, vectors[0][0], 0.001, "vector should be normalized")
	assert.InDelta(t, 0.8, vectors[0][1], 0.001)
}
