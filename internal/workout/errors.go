package workout

import "errors"

var (
	// ErrNotFound means no workout matched the lookup key.
	ErrNotFound = errors.New("workout not found")

	// ErrStoreUnavailable means the data store could not be reached or did
	// not answer in time.
	ErrStoreUnavailable = errors.New("workout store unavailable")

	// ErrQuery means the store rejected the query or returned rows that
	// violate the single-workout integrity rules.
	ErrQuery = errors.New("workout query failed")
)

// ValidationError reports lookup input that failed validation before the
// store was touched. It is distinct from a lookup that found nothing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
