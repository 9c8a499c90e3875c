package assistant

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/A-makarim/ai-job-assistant/ai"
	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "lanes"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase_WiresComponents(t *testing.T) {
	db := newTestDatabase(t)

	assert.NotNil(t, db.IndexRepository())
	assert.NotNil(t, db.Provider())
	assert.NotNil(t, db.Provider().Embedder())
	assert.NotNil(t, db.Provider().Reasoner())
}

func TestNewDatabase_WithAIConfig(t *testing.T) {
	config := ai.NewConfig(
		ai.WithHost("http://localhost:9999"),
		ai.WithEmbeddingModel("text-embedding-3-small"),
	)
	db, err := NewDatabase(filepath.Join(t.TempDir(), "lanes"), WithAIConfig(config))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.Equal(t, "text-embedding-3-small", db.Provider().Embedder().Model())
}

func TestDatabase_IngestAndSearchRoundtrip(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	pipeline, err := db.NewIngestPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	text := strings.Repeat("Designed the rate limiter protecting the public API from abusive clients. ", 20)
	_, err = pipeline.RebuildLane(ctx, core.LaneFacts, text)
	require.NoError(t, err)

	index, err := db.IndexRepository().LoadIndex(ctx, core.LaneFacts)
	require.NoError(t, err)
	assert.Greater(t, index.ChunkCount, 0)
}

func TestDatabase_NewRetrieverAndReembedder(t *testing.T) {
	db := newTestDatabase(t)

	retriever, err := db.NewRetriever()
	require.NoError(t, err)
	retriever.Release()

	reembedder, err := db.NewReembedder(nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, reembedder)
}
