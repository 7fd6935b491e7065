package renderer

import (
	"image"
	"math"
	"strconv"

	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/renderer/glyph"
	"github.com/dshills/scribe/internal/textutil"
)

// Layout is the pixel geometry of one frame. All rectangles lie inside
// the frame and may be empty.
type Layout struct {
	Width, Height int

	// CellWidth and LineHeight are the size of one monospace cell.
	CellWidth, LineHeight int
	// Baseline is the distance from a line's top to its baseline.
	Baseline int

	// GutterChars is the width of the line number column in cells.
	GutterChars int
	Gutter      image.Rectangle
	// BorderX is the column of the gutter border line.
	BorderX int
	Text    image.Rectangle
	Status  image.Rectangle

	// VisibleLines and VisibleColumns count whole cells in Text.
	VisibleLines, VisibleColumns int
}

// ComputeLayout derives the frame geometry from its size, the font
// metrics and the document length. The status bar is shown only when at
// least two lines fit, so a tiny window keeps its single line for text.
func ComputeLayout(width, height int, m glyph.Metrics, lineCount int, opts Options) Layout {
	width, height = max(width, 0), max(height, 0)
	spacing := opts.LineSpacing
	if spacing <= 0 {
		spacing = 1
	}
	l := Layout{
		Width:      width,
		Height:     height,
		CellWidth:  max(int(math.Ceil(float64(m.Advance))), 1),
		LineHeight: max(int(math.Ceil(float64(m.LineHeight*spacing))), 1),
	}
	content := int(math.Ceil(float64(m.Ascent + m.Descent)))
	l.Baseline = max((l.LineHeight-content)/2, 0) + int(math.Round(float64(m.Ascent)))

	bodyH := height
	if opts.ShowStatus && height >= 2*l.LineHeight {
		bodyH = height - l.LineHeight
		l.Status = image.Rect(0, bodyH, width, height)
	}

	l.GutterChars = max(opts.GutterChars, len(strconv.Itoa(max(lineCount, 1)))+1)
	gutterW := min(l.GutterChars*l.CellWidth+opts.GutterPadding, width)
	l.Gutter = image.Rect(0, 0, gutterW, bodyH)
	l.BorderX = gutterW
	textX := min(gutterW+1+opts.TextPadding, width)
	l.Text = image.Rect(textX, 0, width, bodyH)

	l.VisibleLines = l.Text.Dy() / l.LineHeight
	l.VisibleColumns = l.Text.Dx() / l.CellWidth
	return l
}

// LineTop returns the y of the top of screen row row.
func (l Layout) LineTop(row int) int {
	return l.Text.Min.Y + row*l.LineHeight
}

// ColumnX returns the x of visual column col after scrolling by left.
func (l Layout) ColumnX(col, left int) int {
	return l.Text.Min.X + (col-left)*l.CellWidth
}

// PixelToPosition maps a pixel to the nearest document position, given
// the viewport's first line and column. Points outside the text area
// clamp to its edges.
func (l Layout) PixelToPosition(x, y int, lines LineSource, top, left, tabWidth int) buffer.Position {
	n := lines.LineCount()
	if n == 0 {
		return buffer.Position{}
	}
	row := max(y-l.Text.Min.Y, 0) / max(l.LineHeight, 1)
	if l.VisibleLines > 0 {
		row = min(row, l.VisibleLines-1)
	}
	line := min(max(top+row, 0), n-1)

	cell := max(x-l.Text.Min.X+l.CellWidth/2, 0) / max(l.CellWidth, 1)
	col := textutil.NearestCharColumn(lines.Line(line), left+cell, tabWidth)
	return buffer.Pos(line, col)
}
