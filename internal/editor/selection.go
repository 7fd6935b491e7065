package editor

import (
	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/history"
	"github.com/dshills/scribe/internal/textutil"
)

func (e *Editor) allSelection() cursor.Selection {
	return cursor.NewSelection(buffer.Pos(0, 0), e.doc.buf.EndPosition())
}

// lineSelection covers line and its newline. The last line has none.
func (e *Editor) lineSelection(line int) cursor.Selection {
	if line < e.doc.LineCount()-1 {
		return cursor.NewSelection(buffer.Pos(line, 0), buffer.Pos(line+1, 0))
	}
	return cursor.NewSelection(buffer.Pos(line, 0), buffer.Pos(line, e.doc.LineLen(line)))
}

func (e *Editor) wordSelection(pos buffer.Position) (cursor.Selection, bool) {
	start, end, ok := textutil.WordAt(e.doc.lineRunes(pos.Line), pos.Column)
	if !ok {
		return cursor.Selection{}, false
	}
	return cursor.NewSelection(buffer.Pos(pos.Line, start), buffer.Pos(pos.Line, end)), true
}

func (e *Editor) selectAll() {
	e.cursors.Replace([]cursor.Cursor{cursor.FromSelection(e.allSelection())}, 0)
	e.cursorMoved()
}

func (e *Editor) selectWord() {
	for i := range e.cursors.Len() {
		if sel, ok := e.wordSelection(e.cursors.At(i).Head()); ok {
			e.cursors.Set(i, cursor.FromSelection(sel))
		}
	}
	e.cursors.Normalize()
	e.cursorMoved()
}

// selectLine extends every selection to whole lines.
func (e *Editor) selectLine() {
	for i := range e.cursors.Len() {
		first, last := e.cursors.At(i).Selection.LineSpan()
		sel := cursor.NewSelection(buffer.Pos(first, 0), e.lineSelection(last).End())
		e.cursors.Set(i, cursor.FromSelection(sel))
	}
	e.cursors.Normalize()
	e.cursorMoved()
}

// expandSelection grows every selection one step: caret to word, word to
// line, line to the whole document. When any cursor reaches the whole
// document the set collapses to a single select-all cursor.
func (e *Editor) expandSelection() {
	prev := history.SnapshotOf(e.cursors)
	before := e.cursors.Clone()

	all := false
	next := make([]cursor.Cursor, e.cursors.Len())
	for i, c := range e.cursors.All() {
		sel, whole := e.expandOne(c.Selection)
		if whole {
			all = true
			break
		}
		next[i] = cursor.FromSelection(sel)
	}
	if all {
		next = []cursor.Cursor{cursor.FromSelection(e.allSelection())}
	}

	e.cursors.Replace(next, prev.Active)
	e.cursors.Normalize()
	if before.Equals(e.cursors) {
		return
	}
	e.selectionHistory = append(e.selectionHistory, prev)
	e.cursorMoved()
}

// expandOne returns the next larger selection for sel. whole is true when
// the next step is the entire document.
func (e *Editor) expandOne(sel cursor.Selection) (next cursor.Selection, whole bool) {
	start, end := sel.Start(), sel.End()
	line := e.lineSelection(start.Line)

	switch {
	case sel.IsEmpty():
		if word, ok := e.wordSelection(sel.Head); ok {
			return word, false
		}
	case start == line.Start() && end == line.End():
		return cursor.Selection{}, true
	case start.Line != end.Line:
		return cursor.Selection{}, true
	}
	if line.IsEmpty() {
		return cursor.Selection{}, true
	}
	return line, false
}

// shrinkSelection steps back to the cursors saved by the last expansion.
// With nothing saved it clears every selection.
func (e *Editor) shrinkSelection() {
	if n := len(e.selectionHistory); n > 0 {
		snap := e.selectionHistory[n-1]
		e.selectionHistory = e.selectionHistory[:n-1]
		snap.Restore(e.cursors)
		e.cursorMoved()
		return
	}
	for i := range e.cursors.Len() {
		c := e.cursors.At(i)
		c.Selection = c.Selection.Collapse()
		e.cursors.Set(i, c)
	}
	e.cursors.Normalize()
	e.cursorMoved()
}
