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

// Package bank builds searchable lane indexes from chunked text and
// answers cosine top-K queries against them.
//
// Building deduplicates in two passes: an exact pass over canonicalized
// fingerprints and a near-duplicate pass comparing each candidate against
// a bounded window of recently accepted chunks. The window is a deliberate
// performance/recall tradeoff that keeps build cost near-linear.
//
// Indexes are immutable once built; the only mutation path is
// ApplyExternalEmbeddings, which swaps every vector atomically and yields
// a new Index value.
package bank
