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

package reembed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/A-makarim/ai-job-assistant/ai"
	"github.com/A-makarim/ai-job-assistant/bank"
	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/A-makarim/ai-job-assistant/storage"
)

// Config holds configuration for a reembed run.
type Config struct {
	// BatchSize is the number of chunks sent to the embedding service per call
	BatchSize int

	// ReportInterval is how often to report progress (number of chunks)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed batches
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder replaces the vectors of persisted lane indexes with
// embeddings from an external service.
type Reembedder struct {
	repo      storage.IndexRepository
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.IndexRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reembedder{
		repo:      repo,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(embedder, config.MaxRetries, config.RetryDelay),
	}, nil
}

// Run reembeds a single lane. The persisted index is replaced only
// after every batch has succeeded; any failure leaves the lane's
// previous vectors in place.
func (r *Reembedder) Run(ctx context.Context, lane core.Lane) error {
	index, err := r.repo.LoadIndex(ctx, lane)
	if err != nil {
		return fmt.Errorf("loading lane %q: %w", lane, err)
	}

	total := len(index.Chunks)
	if total == 0 {
		fmt.Fprintf(r.progress, "Lane %s is empty, nothing to reembed\n", lane)
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of lane %s: %d chunks (batch size: %d)\n",
		lane, total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	vectors := make([][]float32, 0, total)
	for start := 0; start < total; start += r.config.BatchSize {
		end := min(start+r.config.BatchSize, total)

		texts := make([]string, 0, end-start)
		for _, c := range index.Chunks[start:end] {
			texts = append(texts, c.Text)
		}

		batch, err := r.processor.Process(ctx, texts)
		if err != nil {
			return fmt.Errorf("reembedding lane %q chunks %d-%d: %w", lane, start, end-1, err)
		}

		vectors = append(vectors, batch...)
		tracker.Update(len(vectors))
	}

	swapped := bank.ApplyExternalEmbeddings(*index, vectors, r.embedder.Model(), 0)
	if err := r.repo.SaveIndex(ctx, &swapped); err != nil {
		return fmt.Errorf("saving reembedded lane %q: %w", lane, err)
	}

	tracker.Finish()
	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Lane %s: %d chunks in %v (model: %s)\n",
		lane, total, elapsed.Round(time.Millisecond), swapped.EmbeddingModel)

	return nil
}

// RunAll reembeds every persisted lane sequentially. Lanes are
// independent: one lane's failure doesn't stop the others, and the
// joined error reports every failed lane.
func (r *Reembedder) RunAll(ctx context.Context) error {
	lanes, err := r.repo.ListLanes(ctx)
	if err != nil {
		return fmt.Errorf("listing lanes: %w", err)
	}

	if len(lanes) == 0 {
		fmt.Fprintf(r.progress, "No lane indexes found\n")
		return nil
	}

	var errs []error
	for _, lane := range lanes {
		if err := r.Run(ctx, lane); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
