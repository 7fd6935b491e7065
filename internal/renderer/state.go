package renderer

import (
	"time"

	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/renderer/statusline"
)

// LineSource is read access to document text.
type LineSource interface {
	LineCount() int
	// Line returns the text of line without its terminator, or "" when
	// line is out of range.
	Line(line int) string
}

// RectanglePreview is an in-progress block selection. Top and Bottom are
// inclusive document lines; Left and Right bound a half-open range of
// visual columns.
type RectanglePreview struct {
	Active      bool
	Top, Bottom int
	Left, Right int
	// Cursors are the per-line cursor positions the block would create.
	Cursors []buffer.Position
}

// RenderState is the model snapshot one frame is drawn from.
type RenderState struct {
	Lines    LineSource
	Cursors  []cursor.Cursor
	Active   int
	TopLine  int
	LeftCol  int
	TabWidth int

	Rectangle RectanglePreview

	// Status is drawn in the status bar when non-nil.
	Status *statusline.StatusLine

	// Highlighter colors text when non-nil.
	Highlighter Highlighter

	// Now drives the cursor blink. The zero time leaves it unchanged.
	Now time.Time
}

// emptyLines stands in for a missing LineSource.
type emptyLines struct{}

func (emptyLines) LineCount() int  { return 0 }
func (emptyLines) Line(int) string { return "" }
