package renderer

import "github.com/dshills/scribe/internal/renderer/frame"

// Span colors the bytes [Start, End) of a line.
type Span struct {
	Start, End int
	Color      frame.Color
}

// Highlighter supplies syntax colors for visible lines. Spans must be
// sorted by Start and must not overlap; bytes outside every span use the
// theme foreground.
type Highlighter interface {
	HighlightLine(line int, text string) []Span
}

// HighlighterFunc adapts a function to Highlighter.
type HighlighterFunc func(line int, text string) []Span

// HighlightLine calls f.
func (f HighlighterFunc) HighlightLine(line int, text string) []Span {
	return f(line, text)
}

// spanCursor walks sorted spans alongside increasing byte offsets.
type spanCursor struct {
	spans []Span
	i     int
}

// colorAt returns the span color covering off, or def.
func (s *spanCursor) colorAt(off int, def frame.Color) frame.Color {
	for s.i < len(s.spans) && s.spans[s.i].End <= off {
		s.i++
	}
	if s.i < len(s.spans) && s.spans[s.i].Start <= off {
		return s.spans[s.i].Color
	}
	return def
}
