// Package viewport maps document lines and columns to the visible region
// and decides when and how far to scroll.
//
// Sizes are measured in lines and visual columns. Either size may be zero
// after an extreme resize; every computation saturates and treats zero as
// nothing visible.
package viewport

// Viewport represents the visible portion of a document.
type Viewport struct {
	// Position in the document (first visible line and visual column)
	topLine    int
	leftColumn int

	// Size in lines and visual columns
	lines   int
	columns int

	margins     MarginConfig
	pageOverlap int

	// Document size; 0 means unknown
	lineCount int

	mode    Mode
	pending RevealMode
}

// New creates a viewport showing lines × columns with default margins.
// Negative sizes are treated as zero.
func New(lines, columns int) *Viewport {
	return &Viewport{
		lines:       max(lines, 0),
		columns:     max(columns, 0),
		margins:     DefaultMargins(),
		pageOverlap: 2,
	}
}

// VisibleLines returns the number of visible lines.
func (v *Viewport) VisibleLines() int {
	return v.lines
}

// VisibleColumns returns the number of visible visual columns.
func (v *Viewport) VisibleColumns() int {
	return v.columns
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int {
	return v.topLine
}

// LeftColumn returns the first visible visual column.
func (v *Viewport) LeftColumn() int {
	return v.leftColumn
}

// Mode returns the current scroll mode.
func (v *Viewport) Mode() Mode {
	return v.mode
}

// Resize changes the visible size. Negative sizes become zero and the top
// line is clamped to the new maximum.
func (v *Viewport) Resize(lines, columns int) {
	v.lines = max(lines, 0)
	v.columns = max(columns, 0)
	v.topLine = min(v.topLine, v.MaxTop())
}

// SetLineCount records the document length used for clamping.
func (v *Viewport) SetLineCount(n int) {
	v.lineCount = max(n, 0)
	v.topLine = min(v.topLine, v.MaxTop())
}

// LineCount returns the recorded document length.
func (v *Viewport) LineCount() int {
	return v.lineCount
}

// MaxTop returns the largest top line that still fills the viewport. It is
// 0 when the document fits.
func (v *Viewport) MaxTop() int {
	return max(v.lineCount-v.lines, 0)
}

// SetPageOverlap sets how many lines stay on screen across a page move.
func (v *Viewport) SetPageOverlap(n int) {
	v.pageOverlap = max(n, 0)
}

// PageSize returns the number of lines a page move covers. It is at least
// 1, even for an empty viewport.
func (v *Viewport) PageSize() int {
	return max(v.lines-v.pageOverlap, 1)
}

// VisibleRange returns the visible document lines as [start, end). The
// range is empty when nothing is visible.
func (v *Viewport) VisibleRange() (start, end int) {
	start = v.topLine
	end = start + v.lines
	if v.lineCount > 0 {
		end = min(end, v.lineCount)
	}
	return start, max(end, start)
}

// IsLineVisible returns true if line is within the viewport.
func (v *Viewport) IsLineVisible(line int) bool {
	start, end := v.VisibleRange()
	return line >= start && line < end
}

// RowOf returns the screen row of line, or false when it is not visible.
func (v *Viewport) RowOf(line int) (int, bool) {
	if !v.IsLineVisible(line) {
		return 0, false
	}
	return line - v.topLine, true
}

// LineAt returns the document line shown at screen row, clamped to the
// document when its length is known.
func (v *Viewport) LineAt(row int) int {
	line := v.topLine + max(row, 0)
	if v.lineCount > 0 {
		line = min(line, v.lineCount-1)
	}
	return line
}

// ScrollTo places line at the top, clamped to the valid range.
func (v *Viewport) ScrollTo(line int) {
	v.topLine = min(max(line, 0), v.MaxTop())
}

// Scroll moves the viewport by a delta, as a mouse wheel does, and enters
// free-browse mode. It returns true if the viewport moved.
func (v *Viewport) Scroll(deltaLines, deltaColumns int) bool {
	top, left := v.topLine, v.leftColumn
	v.topLine = min(max(v.topLine+deltaLines, 0), v.MaxTop())
	v.leftColumn = max(v.leftColumn+deltaColumns, 0)
	v.mode = FreeBrowse
	return top != v.topLine || left != v.leftColumn
}

// ScrollHorizontal moves the left column by delta, but never past the point
// where the widest visible line still fills the viewport.
func (v *Viewport) ScrollHorizontal(delta, widest int) bool {
	left := v.leftColumn
	limit := max(widest-v.columns, 0)
	v.leftColumn = min(max(v.leftColumn+delta, 0), limit)
	v.mode = FreeBrowse
	return left != v.leftColumn
}

// Clone returns a copy of the viewport.
func (v *Viewport) Clone() *Viewport {
	c := *v
	return &c
}
