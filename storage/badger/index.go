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

// Package badger implements storage.IndexRepository on BadgerDB. Each
// lane maps to a single key whose value is the MUS-encoded Index, so a
// save is one transactional Set and rebuild atomicity comes for free.
package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/A-makarim/ai-job-assistant/core"
	"github.com/A-makarim/ai-job-assistant/storage"
	"github.com/dgraph-io/badger/v4"
)

// IndexRepository implements storage.IndexRepository for BadgerDB.
type IndexRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.IndexRepository = (*IndexRepository)(nil)

// NewIndexRepository creates an IndexRepository on the given backend.
func NewIndexRepository(backend *Backend) (*IndexRepository, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	return &IndexRepository{
		backend: backend,
		logger:  slog.Default().With("component", "index-repository"),
	}, nil
}

// SaveIndex persists the index under its lane, replacing any previous
// record wholesale. The index is validated first; an invalid index never
// reaches the store, which is what keeps rebuilds all-or-nothing.
func (r *IndexRepository) SaveIndex(ctx context.Context, index *core.Index) error {
	if err := core.ValidateIndex(index); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	value := storage.MarshalIndex(index)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeIndexKey(index.Lane), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("saving index for lane %q: %w", index.Lane, err)
	}

	r.logger.Debug("saved index",
		"lane", index.Lane,
		"chunks", index.ChunkCount,
		"dimension", index.Dimension,
		"bytes", len(value))
	return nil
}

// LoadIndex retrieves the lane's index.
func (r *IndexRepository) LoadIndex(ctx context.Context, lane core.Lane) (*core.Index, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var index *core.Index
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeIndexKey(lane))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			index, err = storage.UnmarshalIndex(val)
			if err != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return index, nil
}

// DeleteIndex removes the lane's index.
func (r *IndexRepository) DeleteIndex(ctx context.Context, lane core.Lane) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeIndexKey(lane)
		if _, err := tx.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListLanes returns the lanes that currently have a stored index.
func (r *IndexRepository) ListLanes(ctx context.Context) ([]core.Lane, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var lanes []core.Lane
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(laneIndexPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			lanes = append(lanes, laneFromIndexKey(iter.Item().Key()))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return lanes, nil
}

// Close closes the underlying backend.
func (r *IndexRepository) Close() error {
	return r.backend.Close()
}
