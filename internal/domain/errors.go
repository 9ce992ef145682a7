package domain

import "errors"

var (
	// ErrValidation marks input that failed a domain rule.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a lookup that matched no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate marks a write that would violate a unique key.
	ErrDuplicate = errors.New("duplicate record")
	// ErrConflict marks an operation rejected because of current state.
	ErrConflict = errors.New("conflict")
	// ErrStorage marks a storage access failure, distinct from any
	// per-record validation or duplicate outcome.
	ErrStorage = errors.New("storage error")
)
