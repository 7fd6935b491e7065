package buffer

import "fmt"

// Position is a location in the buffer. Line and Column are 0-indexed and
// Column counts code points. Column may equal the line length, which means
// "after the last character".
type Position struct {
	Line   int
	Column int
}

// Pos is shorthand for constructing a Position.
func Pos(line, column int) Position {
	return Position{Line: line, Column: column}
}

// Compare returns -1, 0 or 1 as p is before, equal to or after other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	default:
		return 0
	}
}

// Before returns true if p is before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p is after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// MinPosition returns the earlier of two positions.
func MinPosition(a, b Position) Position {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxPosition returns the later of two positions.
func MaxPosition(a, b Position) Position {
	if b.After(a) {
		return b
	}
	return a
}

// String returns a human-readable form like "3:7" (0-indexed).
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
