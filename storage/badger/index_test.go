package badger

import (
	"context"
	"testing"
	"time"

	"github.com/A-makarim/ai-job-assistant/bank"
	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/A-makarim/ai-job-assistant/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.IndexRepository {
	t.Helper()
	repo, _, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testIndex(t *testing.T, lane core.Lane) *core.Index {
	t.Helper()
	index := bank.Build(lane, []string{
		"Built the internal deployment platform used by forty teams.",
		"Maintains a weekend garden of heirloom tomatoes and peppers.",
	}, 120, bank.Options{Dimension: 64})
	require.NoError(t, core.ValidateIndex(&index))
	return &index
}

func TestSaveAndLoadIndex(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	index := testIndex(t, core.LaneFacts)
	require.NoError(t, repo.SaveIndex(ctx, index))

	loaded, err := repo.LoadIndex(ctx, core.LaneFacts)
	require.NoError(t, err)

	assert.Equal(t, index.Version, loaded.Version)
	assert.Equal(t, index.Lane, loaded.Lane)
	assert.Equal(t, index.BankType, loaded.BankType)
	assert.Equal(t, index.Dimension, loaded.Dimension)
	assert.Equal(t, index.ChunkCount, loaded.ChunkCount)
	assert.Equal(t, index.Dedup, loaded.Dedup)
	require.Len(t, loaded.Chunks, len(index.Chunks))
	for i := range index.Chunks {
		assert.Equal(t, index.Chunks[i].Id, loaded.Chunks[i].Id)
		assert.Equal(t, index.Chunks[i].Text, loaded.Chunks[i].Text)
		assert.Equal(t, index.Chunks[i].Vector, loaded.Chunks[i].Vector)
		assert.Equal(t, index.Chunks[i].Norm, loaded.Chunks[i].Norm)
	}
	// Timestamps are stored at microsecond precision.
	assert.WithinDuration(t, index.CreatedAt, loaded.CreatedAt, time.Microsecond)
}

func TestSaveIndex_ReplacesWholesale(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testIndex(t, core.LaneFacts)
	require.NoError(t, repo.SaveIndex(ctx, first))

	second := bank.Build(core.LaneFacts, []string{
		"Single replacement entry about running the on-call rotation.",
	}, 60, bank.Options{Dimension: 64})
	require.NoError(t, repo.SaveIndex(ctx, &second))

	loaded, err := repo.LoadIndex(ctx, core.LaneFacts)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.ChunkCount)
}

func TestSaveIndex_RejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	good := testIndex(t, core.LaneFacts)
	require.NoError(t, repo.SaveIndex(ctx, good))

	bad := testIndex(t, core.LaneFacts)
	bad.Lane = "scratch"
	assert.ErrorIs(t, repo.SaveIndex(ctx, bad), core.ErrUnknownLane)

	// The previous record survives a rejected save.
	loaded, err := repo.LoadIndex(ctx, core.LaneFacts)
	require.NoError(t, err)
	assert.Equal(t, good.ChunkCount, loaded.ChunkCount)
}

func TestLoadIndex_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.LoadIndex(context.Background(), core.LaneVoice)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteIndex(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveIndex(ctx, testIndex(t, core.LaneCompany)))
	require.NoError(t, repo.DeleteIndex(ctx, core.LaneCompany))

	_, err := repo.LoadIndex(ctx, core.LaneCompany)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteIndex(ctx, core.LaneCompany), storage.ErrNotFound)
}

func TestListLanes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	lanes, err := repo.ListLanes(ctx)
	require.NoError(t, err)
	assert.Empty(t, lanes)

	require.NoError(t, repo.SaveIndex(ctx, testIndex(t, core.LaneFacts)))
	require.NoError(t, repo.SaveIndex(ctx, testIndex(t, core.LaneVoice)))

	lanes, err = repo.ListLanes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []core.Lane{core.LaneFacts, core.LaneVoice}, lanes)
}

func TestClosedRepository(t *testing.T) {
	repo, _, err := NewMemoryRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	ctx := context.Background()
	assert.ErrorIs(t, repo.SaveIndex(ctx, testIndex(t, core.LaneFacts)), storage.ErrStorageClosed)
	_, err = repo.LoadIndex(ctx, core.LaneFacts)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = repo.ListLanes(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
