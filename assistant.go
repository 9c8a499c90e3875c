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

// Package assistant wires the retrieval engine together: a BadgerDB
// index store, the AI service provider, and constructors for the
// ingest, retrieve and reembed pipelines that run over them.
package assistant

import (
	"io"
	"log/slog"

	"github.com/A-makarim/ai-job-assistant/ai"
	"github.com/A-makarim/ai-job-assistant/ai/openai"
	"github.com/A-makarim/ai-job-assistant/ingest"
	"github.com/A-makarim/ai-job-assistant/reembed"
	"github.com/A-makarim/ai-job-assistant/retrieve"
	"github.com/A-makarim/ai-job-assistant/storage"
	"github.com/A-makarim/ai-job-assistant/storage/badger"
)

// Database owns the persistent lane indexes and the AI services used
// to query them.
type Database struct {
	backend   *badger.Backend
	indexRepo storage.IndexRepository
	provider  ai.Provider
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig sets the AI service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// NewDatabase opens the index store at filePath and wires the AI
// provider. The provider is lazy: no service is contacted until a
// pipeline actually calls one.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	indexRepo, err := badger.NewIndexRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		indexRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:   backend,
		indexRepo: indexRepo,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

// Close releases the AI provider and the index store.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.indexRepo.Close(); err != nil {
		db.logger.Error("error closing index repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// IndexRepository returns the lane index store.
func (db *Database) IndexRepository() storage.IndexRepository {
	return db.indexRepo
}

// Provider returns the configured AI services.
func (db *Database) Provider() ai.Provider {
	return db.provider
}

// NewIngestPipeline creates a lane rebuild pipeline over this database.
// Indexes are built with local vectors unless the caller opts in to the
// external embedder via WithExternalEmbeddings or ingest options.
func (db *Database) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(db.indexRepo, opts...)
}

// WithExternalEmbeddings is an ingest option that swaps this database's
// external embedder into freshly built indexes.
func (db *Database) WithExternalEmbeddings() ingest.Option {
	return ingest.WithExternalEmbedder(db.provider.Embedder())
}

// NewRetriever creates a retriever over this database with the AI
// provider wired in for query embedding and grounding.
func (db *Database) NewRetriever(opts ...retrieve.Option) (*retrieve.Retriever, error) {
	combined := append([]retrieve.Option{retrieve.WithProvider(db.provider)}, opts...)
	return retrieve.NewRetriever(db.indexRepo, combined...)
}

// NewReembedder creates a batch reembedder over this database using the
// provider's embedding service.
func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) (*reembed.Reembedder, error) {
	return reembed.NewReembedder(db.indexRepo, db.provider.Embedder(), config, progress)
}
