package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfBounds is returned when an offset, line or range exceeds the
	// buffer's extent.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrNotCharBoundary is returned when an offset splits a UTF-8 sequence.
	ErrNotCharBoundary = fmt.Errorf("offset not on a character boundary: %w", ErrOutOfBounds)

	// ErrRangeInvalid is returned when a range ends before it starts.
	ErrRangeInvalid = errors.New("invalid range")
)

// BoundsError describes an out-of-bounds access.
type BoundsError struct {
	Op    string
	Value int
	Limit int
	Err   error
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("buffer %s: %d (limit %d): %v", e.Op, e.Value, e.Limit, e.Err)
}

func (e *BoundsError) Unwrap() error {
	return e.Err
}

func outOfBounds(op string, value, limit int) error {
	return &BoundsError{Op: op, Value: value, Limit: limit, Err: ErrOutOfBounds}
}
