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
	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/A-makarim/ai-job-assistant/embedding"
)

// ExternalModelName is recorded when a swap supplies no model name.
const ExternalModelName = "external"

// ApplyExternalEmbeddings returns a copy of index whose chunk vectors are
// replaced by externally computed embeddings, order-aligned with
// index.Chunks. Norms are recomputed, and Dimension and EmbeddingModel are
// updated together with the vectors so the index never mixes spaces. If
// len(embeddings) does not equal the chunk count the index is returned
// unchanged; there is no partial update.
func ApplyExternalEmbeddings(index core.Index, embeddings [][]float32, modelName string, dimension int) core.Index {
	if len(embeddings) != len(index.Chunks) {
		return index
	}
	if len(embeddings) == 0 {
		return index
	}

	updated := make([]core.Chunk, len(index.Chunks))
	for i, chunk := range index.Chunks {
		chunk.Vector = embeddings[i]
		chunk.Norm = embedding.Norm(embeddings[i])
		updated[i] = chunk
	}

	if dimension <= 0 {
		dimension = len(embeddings[0])
	}
	if modelName == "" {
		modelName = ExternalModelName
	}

	index.Chunks = updated
	index.Dimension = dimension
	index.EmbeddingModel = modelName
	return index
}
