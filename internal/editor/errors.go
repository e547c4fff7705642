package editor

import "errors"

// Errors returned by editor operations.
var (
	// ErrStaleTransaction is returned when a transaction was created from a
	// state other than the one it is applied to.
	ErrStaleTransaction = errors.New("transaction was built from a different state")

	// ErrNilTransaction is returned when dispatching a nil transaction.
	ErrNilTransaction = errors.New("nil transaction")
)
