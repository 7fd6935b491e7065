package editor

import (
	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/textutil"
)

// Rectangle is an in-progress block selection. Start and Current hold a
// document line and a visual column, so the block stays aligned across
// lines with tabs or wide characters.
type Rectangle struct {
	Active  bool
	Start   buffer.Position
	Current buffer.Position

	// Preview holds one caret per covered line at the Current column,
	// clamped to each line's length.
	Preview []buffer.Position
}

// Bounds returns the covered lines and visual columns, inclusive of top
// and bottom, with left <= right.
func (r Rectangle) Bounds() (top, bottom, left, right int) {
	return min(r.Start.Line, r.Current.Line), max(r.Start.Line, r.Current.Line),
		min(r.Start.Column, r.Current.Column), max(r.Start.Column, r.Current.Column)
}

// rectanglePoint converts pos to a line and visual column. The column may
// lie past the end of the line.
func (e *Editor) rectanglePoint(pos buffer.Position) buffer.Position {
	line := min(max(pos.Line, 0), e.doc.LineCount()-1)
	return buffer.Pos(line, textutil.VisualColumn(e.doc.Line(line), max(pos.Column, 0), e.tabWidth))
}

func (e *Editor) startRectangle(pos buffer.Position) {
	p := e.rectanglePoint(pos)
	e.rect = Rectangle{Active: true, Start: p, Current: p}
	e.updatePreview()
}

func (e *Editor) updateRectangle(pos buffer.Position) {
	if !e.rect.Active {
		return
	}
	e.rect.Current = e.rectanglePoint(pos)
	e.updatePreview()
	e.view.SetLineCount(e.doc.LineCount())
	e.view.EnsureVisible(e.rect.Current.Line, e.rect.Current.Column)
}

func (e *Editor) updatePreview() {
	top, bottom, _, _ := e.rect.Bounds()
	// A fresh slice: render states taken earlier keep the old preview.
	e.rect.Preview = make([]buffer.Position, 0, bottom-top+1)
	for line := top; line <= bottom; line++ {
		col := textutil.CharColumn(e.doc.Line(line), e.rect.Current.Column, e.tabWidth)
		e.rect.Preview = append(e.rect.Preview, buffer.Pos(line, col))
	}
}

// finishRectangle replaces the cursor set with one selection per covered
// line. Heads sit on the Current side of the block and the cursor on the
// Current line becomes primary.
func (e *Editor) finishRectangle() {
	if !e.rect.Active {
		return
	}
	top, bottom, left, right := e.rect.Bounds()
	forward := e.rect.Current.Column >= e.rect.Start.Column

	cursors := make([]cursor.Cursor, 0, bottom-top+1)
	for line := top; line <= bottom; line++ {
		text := e.doc.Line(line)
		a := buffer.Pos(line, textutil.CharColumn(text, left, e.tabWidth))
		h := buffer.Pos(line, textutil.CharColumn(text, right, e.tabWidth))
		if !forward {
			a, h = h, a
		}
		cursors = append(cursors, cursor.FromSelection(cursor.NewSelection(a, h)))
	}
	e.cursors.Replace(cursors, e.rect.Current.Line-top)
	e.cursors.Normalize()
	e.rect = Rectangle{}
	e.occurrence = nil
	e.cursorMoved()
}
