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
	"sort"

	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/A-makarim/ai-job-assistant/embedding"
)

// Search defaults. DefaultMinScore admits every candidate; callers raise
// it when they want a similarity floor.
const (
	DefaultTopK             = 4
	DefaultMinScore float32 = -1
)

// Search embeds query text locally with the index's own bank type and
// dimension, then runs SearchVector. Negative topK falls back to
// DefaultTopK; topK of zero is honored and yields an empty result.
func Search(index core.Index, query string, topK int, minScore float32) []core.Snippet {
	if len(index.Chunks) == 0 {
		return nil
	}
	dimension := index.Dimension
	if dimension <= 0 {
		dimension = embedding.DefaultDimension
	}
	queryVector := embedding.Embed(query, index.BankType, dimension)
	return SearchVector(index, queryVector, topK, minScore)
}

// SearchVector scores every chunk by cosine similarity against
// queryVector, drops candidates below minScore, sorts descending (stable
// on ties, preserving insertion order) and truncates to topK. An empty
// index or an empty/zero query vector yields an empty result, never an
// error. The query vector must live in the same space as the index's
// chunk vectors.
func SearchVector(index core.Index, queryVector []float32, topK int, minScore float32) []core.Snippet {
	if len(index.Chunks) == 0 || len(queryVector) == 0 {
		return nil
	}
	if topK < 0 {
		topK = DefaultTopK
	}
	if topK == 0 {
		return nil
	}

	queryNorm := embedding.Norm(queryVector)
	if queryNorm == 0 {
		return nil
	}

	scored := make([]core.Snippet, 0, len(index.Chunks))
	for i := range index.Chunks {
		chunk := &index.Chunks[i]
		score := embedding.Cosine(queryVector, chunk.Vector, queryNorm, chunk.Norm)
		if score < minScore {
			continue
		}
		scored = append(scored, core.Snippet{
			Id:    chunk.Id,
			Text:  chunk.Text,
			Score: score,
			Chars: chunk.Chars,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}
