// Package ingest orchestrates lane index rebuilds: chunk the source
// text, build the deduplicated index with locally hashed vectors, then
// optionally replace every vector with externally computed embeddings
// before persisting.
//
// The external embedding step is strictly best-effort. When the service
// fails or returns a malformed batch the lane keeps its local vectors —
// never a mix of the two — and the rebuild still succeeds. Rebuilds for
// different lanes are independent and run concurrently on a worker pool;
// rebuilds of the same lane must be serialized by the caller.
package ingest
