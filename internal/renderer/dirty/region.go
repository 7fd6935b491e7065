// Package dirty tracks which rows of a presented surface changed between
// frames, so a presenter can rewrite only those rows. Adjacent and
// overlapping changes are coalesced into spans.
package dirty

// Span is a run of rows from Start (inclusive) to End (exclusive).
type Span struct {
	Start, End int
}

// Empty reports whether the span covers no rows.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Len returns the number of rows covered.
func (s Span) Len() int {
	return max(s.End-s.Start, 0)
}

// Contains reports whether row lies in the span.
func (s Span) Contains(row int) bool {
	return row >= s.Start && row < s.End
}

// Merge joins two spans that overlap or touch. ok is false when a gap
// separates them.
func (s Span) Merge(other Span) (merged Span, ok bool) {
	if s.Empty() {
		return other, true
	}
	if other.Empty() {
		return s, true
	}
	if other.Start > s.End || s.Start > other.End {
		return Span{}, false
	}
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}, true
}
