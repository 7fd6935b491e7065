package editor

import (
	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/textutil"
)

// move applies dir to every cursor. Without extend, selections collapse
// and colliding carets are deduplicated; with extend, overlapping
// selections are merged.
func (e *Editor) move(dir Direction, extend bool) {
	page := e.view.PageSize()
	for i := range e.cursors.Len() {
		e.cursors.Set(i, e.moveOne(e.cursors.At(i), dir, extend, page))
	}
	e.cursors.Normalize()

	switch dir {
	case PageUp:
		e.view.ScrollTo(e.view.TopLine() - page)
	case PageDown:
		e.view.ScrollTo(e.view.TopLine() + page)
	}
	e.cursorMoved()
}

func (e *Editor) moveOne(c cursor.Cursor, dir Direction, extend bool, page int) cursor.Cursor {
	if dir.vertical() {
		pos, ok := e.verticalTarget(c, dir, page)
		if !ok {
			if !extend {
				c.Selection = c.Selection.Collapse()
			}
			return c
		}
		if extend {
			return c.ExtendVertical(pos)
		}
		return c.MoveVertical(pos)
	}

	if !extend && c.HasSelection() {
		switch dir {
		case Left:
			return c.MoveTo(c.Selection.Start())
		case Right:
			return c.MoveTo(c.Selection.End())
		}
	}

	pos := e.horizontalTarget(c.Head(), dir)
	if extend {
		return c.ExtendTo(pos)
	}
	return c.MoveTo(pos)
}

// verticalTarget returns where c lands moving by dir, using its desired
// column and clamping the effective column to the target line. ok is false
// when the cursor is already on the boundary line.
func (e *Editor) verticalTarget(c cursor.Cursor, dir Direction, page int) (buffer.Position, bool) {
	head := c.Head()
	last := e.doc.LineCount() - 1

	line := head.Line
	switch dir {
	case Up:
		line--
	case Down:
		line++
	case PageUp:
		line -= page
	case PageDown:
		line += page
	}
	line = min(max(line, 0), last)
	if line == head.Line {
		return head, false
	}
	return buffer.Pos(line, min(c.TargetColumn(), e.doc.LineLen(line))), true
}

func (e *Editor) horizontalTarget(head buffer.Position, dir Direction) buffer.Position {
	last := e.doc.LineCount() - 1
	lineLen := e.doc.LineLen(head.Line)

	switch dir {
	case Left:
		if head.Column > 0 {
			return buffer.Pos(head.Line, head.Column-1)
		}
		if head.Line > 0 {
			return buffer.Pos(head.Line-1, e.doc.LineLen(head.Line-1))
		}
	case Right:
		if head.Column < lineLen {
			return buffer.Pos(head.Line, head.Column+1)
		}
		if head.Line < last {
			return buffer.Pos(head.Line+1, 0)
		}
	case WordLeft:
		if head.Column == 0 {
			return e.horizontalTarget(head, Left)
		}
		return buffer.Pos(head.Line, textutil.PrevWordStart(e.doc.lineRunes(head.Line), head.Column))
	case WordRight:
		if head.Column >= lineLen {
			return e.horizontalTarget(head, Right)
		}
		return buffer.Pos(head.Line, textutil.NextWordEnd(e.doc.lineRunes(head.Line), head.Column))
	case LineStart:
		indent := textutil.FirstNonBlank(e.doc.lineRunes(head.Line))
		if head.Column != indent {
			return buffer.Pos(head.Line, indent)
		}
		return buffer.Pos(head.Line, 0)
	case LineEnd:
		return buffer.Pos(head.Line, lineLen)
	case DocumentStart:
		return buffer.Pos(0, 0)
	case DocumentEnd:
		return e.doc.buf.EndPosition()
	}
	return head
}

// extendTo collapses to the primary cursor and moves its head to pos.
func (e *Editor) extendTo(pos buffer.Position) {
	c := e.cursors.ActiveCursor()
	e.cursors.Replace([]cursor.Cursor{c.ExtendTo(pos)}, 0)
	e.cursorMoved()
}
