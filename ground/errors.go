package ground

import "errors"

// ErrReasonerRequired is returned when a Grounder is constructed without
// a reasoning service.
var ErrReasonerRequired = errors.New("reasoner is required")
