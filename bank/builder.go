// Copyright 2025 The ai-job-assistant Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bank

import (
	"regexp"
	"strings"
	"time"

	"github.com/A-makarim/ai-job-assistant/chunk"
	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/A-makarim/ai-job-assistant/embedding"
)

// Default dedup parameters. The threshold is deliberately high: only
// chunks that are almost verbatim restatements of recent ones are dropped.
const (
	DefaultNearDuplicateThreshold float32 = 0.965
	DefaultMaxNearChecks                  = 220
)

// Options configures index building. The zero value selects every default.
type Options struct {
	// Dimension is the embedding width. Non-positive values fall back to
	// embedding.DefaultDimension.
	Dimension int

	// NearDuplicateThreshold is the cosine similarity at or above which a
	// candidate is dropped as a near duplicate. Values outside (0, 1] fall
	// back to DefaultNearDuplicateThreshold.
	NearDuplicateThreshold float32

	// MaxNearChecks bounds how many recently accepted chunks each candidate
	// is compared against. Non-positive values fall back to
	// DefaultMaxNearChecks.
	MaxNearChecks int

	// MinEntryChars is the minimum length a discrete entry must have after
	// trimming to survive BuildFromEntries. Non-positive values fall back
	// to chunk.DefaultMinChars.
	MinEntryChars int
}

func (o Options) normalized() Options {
	if o.Dimension <= 0 {
		o.Dimension = embedding.DefaultDimension
	}
	if o.NearDuplicateThreshold <= 0 || o.NearDuplicateThreshold > 1 {
		o.NearDuplicateThreshold = DefaultNearDuplicateThreshold
	}
	if o.MaxNearChecks <= 0 {
		o.MaxNearChecks = DefaultMaxNearChecks
	}
	if o.MinEntryChars <= 0 {
		o.MinEntryChars = chunk.DefaultMinChars
	}
	return o
}

var (
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9\s]`)
	dedupSpaceRe      = regexp.MustCompile(`\s+`)
)

// canonicalize flattens text for exact-duplicate fingerprinting: lowercase,
// punctuation stripped, whitespace collapsed. Chunks that differ only in
// rendering collide here.
func canonicalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	lowered = nonAlphanumericRe.ReplaceAllString(lowered, " ")
	lowered = dedupSpaceRe.ReplaceAllString(lowered, " ")
	return strings.TrimSpace(lowered)
}

// Build assembles an Index for lane from pre-chunked text. Chunks are
// processed in order: exact duplicates (by canonicalized fingerprint) and
// near duplicates (cosine against the recent window) are dropped and
// counted, survivors are embedded per the lane's bank type and assigned
// never-reused ids. Empty input yields a valid empty Index.
func Build(lane core.Lane, chunks []string, sourceChars int, opts Options) core.Index {
	o := opts.normalized()
	bankType := lane.BankType()
	now := time.Now()

	seen := make(map[core.Fingerprint]bool, len(chunks))
	kept := make([]core.Chunk, 0, len(chunks))
	var exactDropped, nearDropped int

	for _, text := range chunks {
		fingerprint := core.FingerprintFromText(canonicalize(text))
		if seen[fingerprint] {
			exactDropped++
			continue
		}

		vector := embedding.Embed(text, bankType, o.Dimension)
		norm := embedding.Norm(vector)

		window := kept
		if len(window) > o.MaxNearChecks {
			window = window[len(window)-o.MaxNearChecks:]
		}
		if isNearDuplicate(vector, norm, window, o.NearDuplicateThreshold) {
			nearDropped++
			continue
		}

		seen[fingerprint] = true
		kept = append(kept, core.Chunk{
			Id:     core.ChunkID(bankType, len(kept), now),
			Text:   text,
			Vector: vector,
			Norm:   norm,
			Chars:  len(text),
		})
	}

	return core.Index{
		Version:          core.IndexVersion,
		Lane:             lane,
		BankType:         bankType,
		Dimension:        o.Dimension,
		SourceChars:      sourceChars,
		SourceChunkCount: len(chunks),
		ChunkCount:       len(kept),
		Dedup: core.DedupStats{
			ExactDropped:           exactDropped,
			NearDropped:            nearDropped,
			NearDuplicateThreshold: o.NearDuplicateThreshold,
			MaxNearChecks:          o.MaxNearChecks,
		},
		CreatedAt: now,
		Chunks:    kept,
	}
}

// BuildFromText chunks raw text with the given chunker options and builds
// the lane's Index from the result.
func BuildFromText(lane core.Lane, text string, chunkOpts chunk.Options, opts Options) core.Index {
	source := strings.TrimSpace(strings.ReplaceAll(text, "\r", ""))
	chunks := chunk.Split(source, chunkOpts)
	return Build(lane, chunks, len(source), opts)
}

// BuildFromEntries builds an Index from discrete entries instead of one
// continuous text: each entry is trimmed, entries shorter than
// MinEntryChars are dropped, and the survivors go through the normal
// dedup/build path as-is, one chunk per entry.
func BuildFromEntries(lane core.Lane, entries []string, opts Options) core.Index {
	o := opts.normalized()

	prepared := make([]string, 0, len(entries))
	var sourceChars int
	for _, entry := range entries {
		cleaned := strings.TrimSpace(strings.ReplaceAll(entry, "\r", ""))
		if len(cleaned) < o.MinEntryChars {
			continue
		}
		prepared = append(prepared, cleaned)
		sourceChars += len(cleaned)
	}

	return Build(lane, prepared, sourceChars, o)
}

func isNearDuplicate(vector []float32, norm float32, window []core.Chunk, threshold float32) bool {
	for i := range window {
		score := embedding.Cosine(vector, window[i].Vector, norm, window[i].Norm)
		if score >= threshold {
			return true
		}
	}
	return false
}
