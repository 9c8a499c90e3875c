package ingest

import "errors"

var (
	// ErrRepositoryRequired is returned when an index repository is not provided.
	ErrRepositoryRequired = errors.New("index repository required")
)
