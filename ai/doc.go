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

// Package ai defines the abstractions for the two external services the
// engine consumes: a text embedding service and a reasoning service used
// by the grounding pass.
//
// Both services are strictly optional at runtime. Every caller in this
// module treats a failure from either as a signal to degrade — external
// embeddings fall back to the local hashing scheme and grounding falls
// back to the reranker's own selection — so implementations should return
// errors freely rather than retry internally.
//
// Two implementation sub-packages exist:
//
//   - ai/openai: production implementation speaking OpenAI-compatible
//     embedding and chat APIs
//   - ai/mock: deterministic test doubles with injectable behavior
//
// Public constructors in ai/openai return interface types to keep callers
// decoupled from the concrete clients; mock constructors return concrete
// types so tests can inject behavior and assert call counts.
package ai
