// Package retrieve orchestrates one generation-time retrieval call:
// embed the query per lane (concurrently, against the external service
// when the indexes were built with one), search each lane, merge résumé
// hits into the fact candidates, rerank the fact pool against role
// keywords, and run the optional grounding pass.
//
// Every external dependency degrades inside the call. A failed query
// embedding drops the whole batch back to local hashing so vector
// spaces never mix; a failed grounding pass keeps the reranker's own
// selection. The only hard error is the absence of the required fact
// and voice lane indexes. What actually happened is reported on the
// result as an explicit Status, never hidden in logs alone.
package retrieve
