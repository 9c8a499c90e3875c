package storage

import (
	"context"

	"github.com/A-makarim/ai-job-assistant/core"
)

// IndexRepository stores one Index per lane, read and written wholesale.
// There is no partial update path: a rebuild replaces the lane's record
// or leaves the previous one intact. Concurrent writers of the same lane
// are not synchronized here; the last write wins. Implementations must be
// thread-safe for concurrent use.
type IndexRepository interface {
	// SaveIndex persists the index under its lane, replacing any previous
	// record for that lane. The index is validated before writing so a
	// malformed rebuild can never clobber a good record.
	SaveIndex(ctx context.Context, index *core.Index) error

	// LoadIndex retrieves the lane's index.
	// Returns ErrNotFound if the lane has never been indexed.
	LoadIndex(ctx context.Context, lane core.Lane) (*core.Index, error)

	// DeleteIndex removes the lane's index.
	// Returns ErrNotFound if the lane has no index.
	DeleteIndex(ctx context.Context, lane core.Lane) error

	// ListLanes returns the lanes that currently have a stored index, in
	// no particular order.
	ListLanes(ctx context.Context) ([]core.Lane, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
