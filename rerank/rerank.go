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

package rerank

import (
	"sort"

	"github.com/A-makarim/ai-job-assistant/core"
)

// Blending weights. Semantic similarity carries most of the score; lexical
// coverage adds up to 0.48 on top, and candidates with zero keyword hits
// pay a flat penalty.
const (
	semanticWeight  float32 = 0.72
	lexicalWeight   float32 = 0.48
	zeroHitPenalty  float32 = 0.16
	hitSaturation           = 8
	lexicalGateSize         = 3
)

// DefaultLimit is the pool size retrieval asks for when reranking fact
// candidates.
const DefaultLimit = 24

// Rerank reorders candidates by a blend of semantic score and literal
// role-keyword coverage and returns at most limit snippets. Per-candidate:
//
//	lexical = min(1, hits / min(8, max(1, len(keywords))))
//	blended = 0.72*semantic + 0.48*lexical, minus 0.16 when hits == 0
//
// Selection is two-tier: when at least min(3, limit) candidates have
// keyword hits, only hit-positive candidates are eligible, so lexical
// grounding wins once enough of it exists. Otherwise the top of the full
// blended ranking is used, which keeps sparse keyword coverage from
// starving the result. Empty keywords skip scoring entirely and return
// the first limit candidates in pool order. Non-positive limit falls back
// to DefaultLimit.
func Rerank(candidates []core.Snippet, roleKeywords []string, limit int) []core.Snippet {
	if len(candidates) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	if len(roleKeywords) == 0 {
		if len(candidates) > limit {
			candidates = candidates[:limit]
		}
		return candidates
	}

	denominator := float32(min(hitSaturation, max(1, len(roleKeywords))))

	type ranked struct {
		snippet core.Snippet
		blended float32
		hits    int
	}
	scored := make([]ranked, len(candidates))
	for i, snippet := range candidates {
		hits := CountKeywordHits(snippet.Text, roleKeywords)
		lexical := float32(hits) / denominator
		if lexical > 1 {
			lexical = 1
		}
		blended := snippet.Score*semanticWeight + lexical*lexicalWeight
		if hits == 0 {
			blended -= zeroHitPenalty
		}
		scored[i] = ranked{snippet: snippet, blended: blended, hits: hits}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].blended > scored[j].blended
	})

	hitPositive := make([]ranked, 0, len(scored))
	for _, item := range scored {
		if item.hits > 0 {
			hitPositive = append(hitPositive, item)
		}
	}

	pool := scored
	if len(hitPositive) >= min(lexicalGateSize, limit) {
		pool = hitPositive
	}
	if len(pool) > limit {
		pool = pool[:limit]
	}

	result := make([]core.Snippet, len(pool))
	for i, item := range pool {
		result[i] = item.snippet
	}
	return result
}
