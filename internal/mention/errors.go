package mention

import "errors"

var (
	// ErrInvalidTrigger is returned when a trigger matcher cannot be built
	// from the given character and minimum length.
	ErrInvalidTrigger = errors.New("invalid trigger")

	// ErrNoMatcher is returned when Options has no Matcher.
	ErrNoMatcher = errors.New("mention: matcher is required")

	// ErrNotActive is returned by operations that need an active span.
	ErrNotActive = errors.New("mention: no active span")
)
