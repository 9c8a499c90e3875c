package bank

import (
	"strings"
	"testing"

	"github.com/A-makarim/ai-job-assistant/chunk"
	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EmptyInput(t *testing.T) {
	index := Build(core.LaneFacts, nil, 0, Options{})

	require.NoError(t, core.ValidateIndex(&index))
	assert.Equal(t, core.IndexVersion, index.Version)
	assert.Equal(t, core.LaneFacts, index.Lane)
	assert.Equal(t, core.BankTypeFacts, index.BankType)
	assert.Zero(t, index.ChunkCount)
	assert.Empty(t, index.Chunks)
}

func TestBuild_ExactDuplicatesDropped(t *testing.T) {
	text := "Built a payment reconciliation service handling 2M transactions daily."
	index := Build(core.LaneFacts, []string{text, text}, 2*len(text), Options{})

	assert.Equal(t, 1, index.ChunkCount)
	assert.Equal(t, 1, index.Dedup.ExactDropped)
	assert.Zero(t, index.Dedup.NearDropped)
}

func TestBuild_ExactDedupIgnoresRendering(t *testing.T) {
	chunks := []string{
		"Shipped the billing migration on time.",
		"shipped   the BILLING migration, on time",
	}
	index := Build(core.LaneFacts, chunks, 0, Options{})

	assert.Equal(t, 1, index.ChunkCount)
	assert.Equal(t, 1, index.Dedup.ExactDropped)
}

func TestBuild_NearDuplicatesDropped(t *testing.T) {
	// Different canonical forms (stopword differs) but identical surviving
	// tokens, so the vectors coincide and the second chunk is a near dup.
	chunks := []string{
		"kubernetes cluster migration for payment systems",
		"the kubernetes cluster migration for payment systems",
	}
	index := Build(core.LaneFacts, chunks, 0, Options{})

	assert.Equal(t, 1, index.ChunkCount)
	assert.Zero(t, index.Dedup.ExactDropped)
	assert.Equal(t, 1, index.Dedup.NearDropped)
}

func TestBuild_DistinctChunksBothKept(t *testing.T) {
	chunks := []string{
		"kubernetes cluster migration for payment systems",
		"watercolor painting classes every tuesday evening",
	}
	index := Build(core.LaneFacts, chunks, 0, Options{})

	assert.Equal(t, 2, index.ChunkCount)
	assert.Zero(t, index.Dedup.ExactDropped)
	assert.Zero(t, index.Dedup.NearDropped)
}

func TestBuild_NearCheckWindowIsBounded(t *testing.T) {
	// With a window of one, only the most recently accepted chunk is
	// compared, so a near duplicate of the first chunk slips through once
	// an unrelated chunk sits between them.
	chunks := []string{
		"kubernetes cluster migration for payment systems",
		"watercolor painting classes every tuesday evening",
		"the kubernetes cluster migration for payment systems",
	}
	index := Build(core.LaneFacts, chunks, 0, Options{MaxNearChecks: 1})

	assert.Equal(t, 3, index.ChunkCount)
	assert.Zero(t, index.Dedup.NearDropped)

	// The default window catches it.
	index = Build(core.LaneFacts, chunks, 0, Options{})
	assert.Equal(t, 2, index.ChunkCount)
	assert.Equal(t, 1, index.Dedup.NearDropped)
}

func TestBuild_RecordsParametersAndCounts(t *testing.T) {
	chunks := []string{"one distinct engineering accomplishment", "another separate hobby entirely"}
	index := Build(core.LaneFacts, chunks, 71, Options{Dimension: 64})

	assert.Equal(t, 64, index.Dimension)
	assert.Equal(t, 71, index.SourceChars)
	assert.Equal(t, 2, index.SourceChunkCount)
	assert.Equal(t, DefaultNearDuplicateThreshold, index.Dedup.NearDuplicateThreshold)
	assert.Equal(t, DefaultMaxNearChecks, index.Dedup.MaxNearChecks)
	assert.False(t, index.CreatedAt.IsZero())
	assert.Empty(t, index.EmbeddingModel)

	require.NoError(t, core.ValidateIndex(&index))
	for _, c := range index.Chunks {
		assert.Len(t, c.Vector, 64)
		assert.Equal(t, len(c.Text), c.Chars)
	}
}

func TestBuild_VoiceLaneUsesVoiceBank(t *testing.T) {
	index := Build(core.LaneVoice, []string{"I honestly can't wait to hear back from you!"}, 0, Options{})

	assert.Equal(t, core.BankTypeVoice, index.BankType)
	require.Len(t, index.Chunks, 1)
	assert.True(t, strings.HasPrefix(index.Chunks[0].Id, "voice_0_"))
}

func TestBuildFromText(t *testing.T) {
	text := strings.Repeat("Led the rollout of a new observability stack across teams. ", 30)
	index := BuildFromText(core.LaneFacts, text, chunk.Options{}, Options{})

	assert.Greater(t, index.SourceChunkCount, 1)
	assert.Equal(t, len(strings.TrimSpace(text)), index.SourceChars)
	// Repeated sentences collapse hard.
	assert.Less(t, index.ChunkCount, index.SourceChunkCount)
}

func TestBuildFromEntries(t *testing.T) {
	entries := []string{
		"too short",
		"  Migrated the deployment pipeline to GitHub Actions, cutting release time from hours to minutes.  ",
		"",
		"Mentored four junior engineers through their first production on-call rotations this year.",
	}
	index := Build(core.LaneFacts, nil, 0, Options{})
	require.Zero(t, index.ChunkCount)

	index = BuildFromEntries(core.LaneFacts, entries, Options{})
	assert.Equal(t, 2, index.SourceChunkCount)
	assert.Equal(t, 2, index.ChunkCount)
	for _, c := range index.Chunks {
		assert.Equal(t, strings.TrimSpace(c.Text), c.Text)
	}
}

func TestCanonicalize(t *testing.T) {
	assert.Equal(t, "hello world 42", canonicalize("  Hello,   WORLD — 42!  "))
	assert.Equal(t, "", canonicalize("!!! ??? ..."))
}
