package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintFromText(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := FingerprintFromText("shipped a distributed cache in go")
		b := FingerprintFromText("shipped a distributed cache in go")
		assert.Equal(t, a, b)
	})

	t.Run("different content differs", func(t *testing.T) {
		a := FingerprintFromText("shipped a distributed cache in go")
		b := FingerprintFromText("shipped a distributed cache in rust")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty text has a fingerprint", func(t *testing.T) {
		a := FingerprintFromText("")
		b := FingerprintFromText("")
		assert.Equal(t, a, b)
	})
}

func TestLaneValid(t *testing.T) {
	for _, lane := range KnownLanes {
		assert.True(t, lane.Valid(), "lane %q should be valid", lane)
	}
	assert.False(t, Lane("hobbies").Valid())
	assert.False(t, Lane("").Valid())
}

func TestLaneBankType(t *testing.T) {
	assert.Equal(t, BankTypeVoice, LaneVoice.BankType())
	assert.Equal(t, BankTypeFacts, LaneFacts.BankType())
	assert.Equal(t, BankTypeFacts, LaneResume.BankType())
	assert.Equal(t, BankTypeFacts, LaneProfile.BankType())
	assert.Equal(t, BankTypeFacts, LaneCompany.BankType())
}

func TestBankTypeString(t *testing.T) {
	assert.Equal(t, "facts", BankTypeFacts.String())
	assert.Equal(t, "voice", BankTypeVoice.String())
}

func TestChunkID(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	id := ChunkID(BankTypeFacts, 3, createdAt)
	assert.Equal(t, "facts_3_1748779200000", id)

	// Distinct ordinals never collide within a build.
	other := ChunkID(BankTypeFacts, 4, createdAt)
	assert.NotEqual(t, id, other)
}
