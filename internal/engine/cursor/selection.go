package cursor

import (
	"fmt"

	"github.com/dshills/scribe/internal/engine/buffer"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Selection is a range of text between an anchor and a head.
type Selection struct {
	Anchor Position
	Head   Position
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Position) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// Caret creates an empty selection at pos.
func Caret(pos Position) Selection {
	return Selection{Anchor: pos, Head: pos}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lesser of anchor and head.
func (s Selection) Start() Position {
	return buffer.MinPosition(s.Anchor, s.Head)
}

// End returns the greater of anchor and head.
func (s Selection) End() Position {
	return buffer.MaxPosition(s.Anchor, s.Head)
}

// IsBackward returns true if the head is before the anchor.
func (s Selection) IsBackward() bool {
	return s.Head.Before(s.Anchor)
}

// Extend returns the selection with its head moved to pos.
func (s Selection) Extend(pos Position) Selection {
	return Selection{Anchor: s.Anchor, Head: pos}
}

// Collapse returns an empty selection at the head.
func (s Selection) Collapse() Selection {
	return Caret(s.Head)
}

// CollapseToStart returns an empty selection at the start.
func (s Selection) CollapseToStart() Selection {
	return Caret(s.Start())
}

// CollapseToEnd returns an empty selection at the end.
func (s Selection) CollapseToEnd() Selection {
	return Caret(s.End())
}

// Contains returns true if pos lies within [Start, End].
func (s Selection) Contains(pos Position) bool {
	return !pos.Before(s.Start()) && !pos.After(s.End())
}

// Touches returns true if the selections overlap or share an endpoint.
func (s Selection) Touches(other Selection) bool {
	return !other.Start().After(s.End()) && !s.Start().After(other.End())
}

// Merge returns a selection spanning both selections. The result is
// backward only when the receiver is backward.
func (s Selection) Merge(other Selection) Selection {
	start := buffer.MinPosition(s.Start(), other.Start())
	end := buffer.MaxPosition(s.End(), other.End())
	if s.IsBackward() {
		return Selection{Anchor: end, Head: start}
	}
	return Selection{Anchor: start, Head: end}
}

// LineSpan returns the first and last lines touched by the selection.
func (s Selection) LineSpan() (first, last int) {
	return s.Start().Line, s.End().Line
}

// String returns a compact form like "[0:1-0:4]".
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("[%s]", s.Head)
	}
	return fmt.Sprintf("[%s-%s]", s.Anchor, s.Head)
}
