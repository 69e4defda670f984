package storage

import "errors"

// Failure kinds shared by all store implementations. Implementations wrap
// these sentinels with context (fmt.Errorf("%w: ...")) so callers can match
// the kind with errors.Is without parsing messages.
var (
	// ErrValidation marks an empty required text field.
	ErrValidation = errors.New("validation failed")

	// ErrRange marks a negative price or quantity.
	ErrRange = errors.New("value out of range")

	// ErrConflict marks a deletion blocked by existing bill references.
	ErrConflict = errors.New("referenced by existing bills")

	// ErrNotFound marks an operation on a row that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorage marks an underlying I/O or transaction failure. The
	// operation is not retried; in-memory state is left untouched so the
	// caller can retry.
	ErrStorage = errors.New("storage failure")
)
