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

package ingest

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/A-makarim/ai-job-assistant/ai"
	"github.com/A-makarim/ai-job-assistant/bank"
	"github.com/A-makarim/ai-job-assistant/chunk"
	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/A-makarim/ai-job-assistant/storage"
	"github.com/panjf2000/ants/v2"
)

// Pipeline rebuilds lane indexes and persists them.
type Pipeline struct {
	repository storage.IndexRepository
	embedder   ai.Embedder
	pool       *ants.Pool
	chunkOpts  chunk.Options
	bankOpts   bank.Options
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent lane rebuilds.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithExternalEmbedder supplies an embedding service whose vectors
// replace the locally hashed ones after each build. Rebuilds still
// succeed when the service is down; the lane just keeps local vectors.
func WithExternalEmbedder(embedder ai.Embedder) Option {
	return func(p *Pipeline) error {
		p.embedder = embedder
		return nil
	}
}

// WithChunkOptions sets the chunker configuration used for continuous text.
func WithChunkOptions(opts chunk.Options) Option {
	return func(p *Pipeline) error {
		p.chunkOpts = opts
		return nil
	}
}

// WithBankOptions sets the index builder configuration.
func WithBankOptions(opts bank.Options) Option {
	return func(p *Pipeline) error {
		p.bankOpts = opts
		return nil
	}
}

// NewPipeline creates a rebuild pipeline over the given repository.
func NewPipeline(repository storage.IndexRepository, opts ...Option) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// RebuildLane rebuilds a lane's index from continuous source text and
// persists it, replacing the previous record wholesale. Empty or
// too-short text yields a valid empty index, not an error; only an
// unknown lane or a persistence fault fails the rebuild, in which case
// the lane's previous index is left intact.
func (p *Pipeline) RebuildLane(ctx context.Context, lane core.Lane, text string) (*core.Index, error) {
	if !lane.Valid() {
		return nil, core.ErrUnknownLane
	}

	index := bank.BuildFromText(lane, text, p.chunkOpts, p.bankOpts)
	return p.finishRebuild(ctx, index)
}

// RebuildLaneFromEntries rebuilds a lane's index from discrete entries
// (one chunk per surviving entry) and persists it.
func (p *Pipeline) RebuildLaneFromEntries(ctx context.Context, lane core.Lane, entries []string) (*core.Index, error) {
	if !lane.Valid() {
		return nil, core.ErrUnknownLane
	}

	index := bank.BuildFromEntries(lane, entries, p.bankOpts)
	return p.finishRebuild(ctx, index)
}

func (p *Pipeline) finishRebuild(ctx context.Context, index core.Index) (*core.Index, error) {
	index = p.applyExternalVectors(ctx, index)

	if err := p.repository.SaveIndex(ctx, &index); err != nil {
		return nil, err
	}

	p.logger.Info("rebuilt lane index",
		"lane", index.Lane,
		"chunks", index.ChunkCount,
		"exactDropped", index.Dedup.ExactDropped,
		"nearDropped", index.Dedup.NearDropped,
		"embeddingModel", index.EmbeddingModel)
	return &index, nil
}

// applyExternalVectors swaps in external embeddings when an embedder is
// configured. Failures degrade to the local vectors already in place.
func (p *Pipeline) applyExternalVectors(ctx context.Context, index core.Index) core.Index {
	if p.embedder == nil || len(index.Chunks) == 0 {
		return index
	}

	texts := make([]string, len(index.Chunks))
	for i := range index.Chunks {
		texts[i] = index.Chunks[i].Text
	}

	vectors, err := p.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		p.logger.Warn("external embedding failed, keeping local vectors",
			"lane", index.Lane, "err", err)
		return index
	}

	if len(vectors) != len(index.Chunks) {
		p.logger.Warn("external embedding batch mismatched, keeping local vectors",
			"lane", index.Lane, "expected", len(index.Chunks), "got", len(vectors))
		return index
	}

	return bank.ApplyExternalEmbeddings(index, vectors, p.embedder.Model(), 0)
}

// RebuildAll rebuilds every lane in sources concurrently on the worker
// pool. Each lane is independent: one lane's failure doesn't stop the
// others, and the joined error reports every failed lane.
func (p *Pipeline) RebuildAll(ctx context.Context, sources map[core.Lane]string) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for lane, text := range sources {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if _, err := p.RebuildLane(ctx, lane, text); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}

	wg.Wait()
	return errors.Join(errs...)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
