package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint is a content-derived identity for a piece of text.
// Identical content always produces identical fingerprints.
type Fingerprint uint64

// FingerprintFromText generates a deterministic fingerprint from text using
// BLAKE2b hashing. Callers are expected to canonicalize the text first so
// that trivially different renderings of the same content collide.
func FingerprintFromText(text string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// Lane is an independent category of source text, each with its own Index.
// Lanes are never merged; retrieval queries them separately.
type Lane string

const (
	// LaneFacts holds free-form experience notes and accomplishments.
	LaneFacts Lane = "facts"
	// LaneResume holds extracted resume text.
	LaneResume Lane = "resume"
	// LaneVoice holds writing samples used for style matching.
	LaneVoice Lane = "voice"
	// LaneProfile holds professional-profile text (bio, headline, summary).
	LaneProfile Lane = "profile"
	// LaneCompany holds employer and job-posting text.
	LaneCompany Lane = "company"
)

// KnownLanes lists every lane the engine manages, in display order.
var KnownLanes = []Lane{LaneFacts, LaneResume, LaneVoice, LaneProfile, LaneCompany}

// Valid reports whether the lane is one of the known lanes.
func (l Lane) Valid() bool {
	for _, known := range KnownLanes {
		if l == known {
			return true
		}
	}
	return false
}

// BankType selects the embedding scheme for an Index.
type BankType int

const (
	// BankTypeFacts embeds content with the semantic hashing scheme only.
	BankTypeFacts BankType = iota + 1
	// BankTypeVoice additionally overlays stylometric features, weighted so
	// phrasing pattern dominates topic.
	BankTypeVoice
)

// String returns the wire/ID representation of the bank type.
func (b BankType) String() string {
	switch b {
	case BankTypeVoice:
		return "voice"
	default:
		return "facts"
	}
}

// BankType returns the embedding scheme used for content in this lane.
// Only the voice lane carries stylometric features.
func (l Lane) BankType() BankType {
	if l == LaneVoice {
		return BankTypeVoice
	}
	return BankTypeFacts
}

// Chunk is a bounded slice of source text plus its embedding.
// Chunks are immutable once accepted into an Index; only the vector-swap
// operation may replace Vector and Norm, preserving Id, Text and order.
type Chunk struct {
	Id     string
	Text   string
	Vector []float32
	Norm   float32
	Chars  int
}

// ChunkID builds the unique chunk identifier from its bank type, insertion
// ordinal and creation time. IDs are never reused within an Index.
func ChunkID(bankType BankType, ordinal int, createdAt time.Time) string {
	return fmt.Sprintf("%s_%d_%d", bankType, ordinal, createdAt.UnixMilli())
}

// DedupStats records how aggressively the builder dropped chunks, and the
// parameters in force, for auditability.
type DedupStats struct {
	ExactDropped           int
	NearDropped            int
	NearDuplicateThreshold float32
	MaxNearChecks          int
}

// IndexVersion is the current Index record layout version.
const IndexVersion = 1

// Index is the searchable bank for a single lane. It is created only by a
// full rebuild and replaced wholesale, never patched chunk-by-chunk.
//
// Invariant: len(chunk.Vector) == Dimension for every chunk, except
// transiently inside the atomic vector-swap that updates both together.
// EmbeddingModel is empty when vectors are locally hashed and carries the
// external model name otherwise.
type Index struct {
	Version          int
	Lane             Lane
	BankType         BankType
	Dimension        int
	SourceChars      int
	SourceChunkCount int
	ChunkCount       int
	Dedup            DedupStats
	CreatedAt        time.Time
	Chunks           []Chunk
	EmbeddingModel   string
}

// Snippet is a similarity-search hit: a chunk projected down to what callers
// and the reranker need.
type Snippet struct {
	Id    string
	Text  string
	Score float32
	Chars int
}

// Reference pairs a stable per-call id with a length-capped display string,
// letting an external service select snippets by id without the full text.
// References are ephemeral; they are never persisted.
type Reference struct {
	RefId   string
	Text    string
	Snippet Snippet
}

// EvidenceItem is one grounded claim produced by the grounding pass.
// SourceId must resolve to a Reference that was actually offered.
type EvidenceItem struct {
	SourceId    string
	Claim       string
	WhyRelevant string
}
