package retrieve

import "errors"

var (
	// ErrRepositoryRequired is returned when an index repository is not provided.
	ErrRepositoryRequired = errors.New("index repository required")

	// ErrMissingLaneIndexes is returned when the fact or voice lane has no
	// persisted index. These two lanes are the minimum a retrieval call
	// can work with; reindex before retrying.
	ErrMissingLaneIndexes = errors.New("fact and voice lanes must be indexed")
)
