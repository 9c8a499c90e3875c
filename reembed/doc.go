// Package reembed replaces the vectors of an existing lane index with
// embeddings from an external service, batch by batch.
//
// Unlike the best-effort swap during ingest, a reembed run is explicit:
// batches are retried with exponential backoff and a run that still
// fails leaves the lane untouched. The swap is all-or-nothing per lane;
// a lane never ends up with mixed vector sources.
package reembed
