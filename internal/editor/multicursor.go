package editor

import (
	"fmt"
	"strings"

	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/cursor"
)

// occurrenceState tracks a run of SelectNextOccurrence commands.
type occurrenceState struct {
	text string

	// added holds the heads of cursors added by the run, oldest first.
	added []buffer.Position

	// last is the byte offset the next search starts from.
	last int
}

// addCursorVertical adds a caret one line above the topmost cursor or
// below the bottommost, at that cursor's desired column.
func (e *Editor) addCursorVertical(dir int) {
	idx := e.cursors.Top()
	if dir > 0 {
		idx = e.cursors.Bottom()
	}
	from := e.cursors.At(idx)
	line := from.Head().Line + dir
	if line < 0 || line >= e.doc.LineCount() {
		return
	}
	target := from.TargetColumn()
	pos := buffer.Pos(line, min(target, e.doc.LineLen(line)))
	e.cursors.Add(cursor.At(pos).WithDesiredColumn(target))
	e.cursors.Normalize()
	e.cursorMoved()
}

func (e *Editor) addCursorAt(pos buffer.Position) {
	e.cursors.Add(cursor.At(pos))
	e.cursors.Normalize()
	e.cursorMoved()
}

// toggleCursorAt removes the cursor whose head is pos, or adds one there.
// The only cursor is never removed.
func (e *Editor) toggleCursorAt(pos buffer.Position) {
	if i := e.cursors.IndexOfHead(pos); i >= 0 {
		if !e.cursors.Remove(i) {
			return
		}
	} else {
		e.cursors.Add(cursor.At(pos))
	}
	e.cursors.Normalize()
	e.cursorMoved()
}

// occurrenceText returns the primary selection's text. A caret on a word
// selects the word first and reports started.
func (e *Editor) occurrenceText() (text string, started bool) {
	c := e.cursors.ActiveCursor()
	if c.HasSelection() {
		return e.doc.Slice(c.Anchor(), c.Head()), false
	}
	sel, ok := e.wordSelection(c.Head())
	if !ok {
		return "", false
	}
	e.cursors.SetActiveCursor(cursor.FromSelection(sel))
	e.cursors.Normalize()
	return e.doc.Slice(sel.Anchor, sel.Head), true
}

// selectNextOccurrence adds a selection on the next match of the primary
// selection, wrapping at the end of the document and skipping matches
// that are already selected. The new cursor becomes primary.
func (e *Editor) selectNextOccurrence() {
	text, started := e.occurrenceText()
	if text == "" {
		e.notify("No occurrences found")
		return
	}
	if started {
		e.occurrence = &occurrenceState{text: text, last: e.doc.offset(e.cursors.ActiveCursor().Selection.End())}
		e.cursorMoved()
		return
	}
	if e.occurrence == nil || e.occurrence.text != text {
		e.occurrence = &occurrenceState{text: text, last: e.doc.offset(e.cursors.ActiveCursor().Selection.End())}
	}

	content := e.doc.Text()
	from := e.occurrence.last
	for range strings.Count(content, text) {
		start := findWrapped(content, text, from)
		if start < 0 {
			break
		}
		end := start + len(text)
		head := e.doc.position(end)
		from = end
		if e.cursors.IndexOfHead(head) >= 0 {
			continue
		}
		e.cursors.Add(cursor.FromSelection(cursor.NewSelection(e.doc.position(start), head)))
		e.cursors.Normalize()
		e.occurrence.added = append(e.occurrence.added, head)
		e.occurrence.last = end
		e.cursorMoved()
		return
	}
	e.notify("All occurrences selected")
}

// findWrapped returns the byte offset of the first match of text at or
// after from, wrapping to the start of content, or -1.
func findWrapped(content, text string, from int) int {
	from = min(max(from, 0), len(content))
	if i := strings.Index(content[from:], text); i >= 0 {
		return from + i
	}
	return strings.Index(content, text)
}

// unselectOccurrence removes the cursor most recently added by
// selectNextOccurrence.
func (e *Editor) unselectOccurrence() {
	occ := e.occurrence
	if occ == nil || len(occ.added) == 0 {
		return
	}
	head := occ.added[len(occ.added)-1]
	occ.added = occ.added[:len(occ.added)-1]
	if i := e.cursors.IndexOfHead(head); i >= 0 {
		e.cursors.Remove(i)
	}
	occ.last = e.doc.offset(e.cursors.ActiveCursor().Selection.End())
	e.cursorMoved()
}

// selectAllOccurrences replaces the cursor set with a selection on every
// match of the primary selection.
func (e *Editor) selectAllOccurrences() {
	text, _ := e.occurrenceText()
	if text == "" {
		e.notify("No occurrences found")
		return
	}
	primary := e.cursors.ActiveCursor().Head()
	content := e.doc.Text()

	var cursors []cursor.Cursor
	var heads []buffer.Position
	active := 0
	for from := 0; ; {
		i := strings.Index(content[from:], text)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(text)
		head := e.doc.position(end)
		if head == primary {
			active = len(cursors)
		}
		cursors = append(cursors, cursor.FromSelection(cursor.NewSelection(e.doc.position(start), head)))
		heads = append(heads, head)
		from = end
	}
	if !e.cursors.Replace(cursors, active) {
		e.notify("No occurrences found")
		return
	}
	e.cursors.Normalize()
	e.occurrence = &occurrenceState{text: text, added: heads, last: len(content)}
	e.notify(fmt.Sprintf("%d occurrences selected", len(cursors)))
	e.cursorMoved()
}

// collapseCursors is the Escape action: several cursors collapse to the
// primary one, a single cursor drops its selection. Both cancel
// rectangle selection and the occurrence run.
func (e *Editor) collapseCursors() {
	if e.cursors.IsMulti() {
		e.cursors.Collapse()
	} else {
		c := e.cursors.ActiveCursor()
		c.Selection = c.Selection.Collapse()
		e.cursors.SetActiveCursor(c)
	}
	e.rect = Rectangle{}
	e.occurrence = nil
	e.cursorMoved()
}
