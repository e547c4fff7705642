package buffer

import "errors"

// Errors returned by document operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEmptyLabel       = errors.New("leaf label is empty")
)
