package editor

import (
	"cmp"
	"slices"

	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/history"
)

// change replaces the bytes in [start, end) with text. anchor and head
// place the resulting selection, as byte offsets relative to start.
type change struct {
	start, end   int
	text         string
	anchor, head int
}

// replaceWith returns a change that leaves a caret after text.
func replaceWith(start, end int, text string) change {
	return change{start: start, end: end, text: text, anchor: len(text), head: len(text)}
}

// transaction collects the operations of one editing command.
//
// marks holds the anchor and head byte offsets of every cursor, at index
// 2i and 2i+1. Each applied change shifts all marks, so lower cursors stay
// valid while the cursors above them are edited.
type transaction struct {
	e      *Editor
	before history.Snapshot
	marks  []int
	ops    []history.Operation

	// finish runs after the new cursors are installed and before the after
	// snapshot is taken.
	finish func()
}

func (e *Editor) begin() *transaction {
	tx := &transaction{e: e, before: history.SnapshotOf(e.cursors)}
	tx.marks = make([]int, 0, 2*len(tx.before.Cursors))
	for _, c := range tx.before.Cursors {
		tx.marks = append(tx.marks, e.doc.offset(c.Anchor()), e.doc.offset(c.Head()))
	}
	return tx
}

func (tx *transaction) anchor(i int) int { return tx.marks[2*i] }
func (tx *transaction) head(i int) int   { return tx.marks[2*i+1] }

// span returns the ordered byte range of cursor i.
func (tx *transaction) span(i int) (start, end int) {
	a, h := tx.anchor(i), tx.head(i)
	return min(a, h), max(a, h)
}

// reverseOrder returns cursor indices from the bottom of the document up.
func (tx *transaction) reverseOrder() []int {
	order := make([]int, len(tx.before.Cursors))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		sa, ea := tx.span(a)
		sb, eb := tx.span(b)
		if c := cmp.Compare(sb, sa); c != 0 {
			return c
		}
		return cmp.Compare(eb, ea)
	})
	return order
}

// shift moves a tracked offset past an edit. An insertion exactly at the
// offset pushes it forward, so a cursor at the start of a line follows the
// line when text is inserted in front of it.
func shift(offset, start, end, newLen int) int {
	if start == end && offset == start {
		return offset + newLen
	}
	return cursor.ShiftOffset(offset, start, end, newLen)
}

// apply performs ch and records it. It returns false for an empty change.
func (tx *transaction) apply(ch change) (bool, error) {
	buf := tx.e.doc.buf
	deleted, err := buf.Slice(ch.start, ch.end)
	if err != nil {
		return false, err
	}
	if deleted == "" && ch.text == "" {
		return false, nil
	}
	op := newOperation(ch.start, deleted, ch.text)
	if err := op.Apply(buf); err != nil {
		return false, err
	}
	tx.ops = append(tx.ops, op)
	for k, m := range tx.marks {
		tx.marks[k] = shift(m, ch.start, ch.end, len(ch.text))
	}
	return true, nil
}

// applyCursor performs ch on behalf of cursor i and places that cursor's
// selection as ch describes.
func (tx *transaction) applyCursor(i int, ch change) error {
	applied, err := tx.apply(ch)
	if err != nil || !applied {
		return err
	}
	tx.marks[2*i] = ch.start + ch.anchor
	tx.marks[2*i+1] = ch.start + ch.head

	doc := tx.e.doc
	after := cursor.FromSelection(cursor.NewSelection(doc.position(tx.anchor(i)), doc.position(tx.head(i))))
	last := len(tx.ops) - 1
	tx.ops[last] = withCursors(tx.ops[last], tx.before.Cursors[i], after)
	return nil
}

// abort reverts everything applied so far and restores the cursors.
func (tx *transaction) abort(err error) {
	buf := tx.e.doc.buf
	for i := len(tx.ops) - 1; i >= 0; i-- {
		if rerr := tx.ops[i].Revert(buf); rerr != nil {
			tx.e.log.Error("revert of abandoned edit failed", "error", rerr)
			break
		}
	}
	tx.before.Restore(tx.e.cursors)
	tx.e.log.Error("edit abandoned", "error", err)
}

// commit installs the new cursors and pushes one history entry. It returns
// false if nothing was edited.
func (tx *transaction) commit() bool {
	if len(tx.ops) == 0 {
		return false
	}
	e := tx.e
	cursors := make([]cursor.Cursor, len(tx.before.Cursors))
	for i := range cursors {
		anchor := e.doc.position(tx.anchor(i))
		head := e.doc.position(tx.head(i))
		cursors[i] = cursor.FromSelection(cursor.NewSelection(anchor, head))
	}
	e.cursors.Replace(cursors, tx.before.Active)
	e.cursors.Normalize()
	if tx.finish != nil {
		tx.finish()
	}
	after := history.SnapshotOf(e.cursors)

	var entry history.Operation
	if len(tx.ops) == 1 && len(tx.before.Cursors) == 1 && len(after.Cursors) == 1 {
		entry = withCursors(tx.ops[0], tx.before.Cursors[0], after.Cursors[0])
	} else {
		entry = history.NewBatch(tx.ops, tx.before, after)
	}
	e.doc.history.Push(entry)

	e.occurrence = nil
	e.rect = Rectangle{}
	e.cursorMoved()
	return true
}

// editEach runs plan for every cursor in reverse document order and
// records the result as one undo step. plan receives the cursor's current
// anchor and head offsets.
func (e *Editor) editEach(plan func(anchor, head int) (change, bool)) bool {
	return e.editEachRanked(func(_, anchor, head int) (change, bool) {
		return plan(anchor, head)
	})
}

// editEachRanked is editEach with the cursor's rank in document order
// passed first, counting from zero at the top.
func (e *Editor) editEachRanked(plan func(rank, anchor, head int) (change, bool)) bool {
	tx := e.begin()
	order := tx.reverseOrder()
	for k, i := range order {
		ch, ok := plan(len(order)-1-k, tx.anchor(i), tx.head(i))
		if !ok {
			continue
		}
		if err := tx.applyCursor(i, ch); err != nil {
			tx.abort(err)
			return false
		}
	}
	return tx.commit()
}

func newOperation(offset int, deleted, inserted string) history.Operation {
	switch {
	case deleted == "":
		return history.Insert{Offset: offset, Text: inserted}
	case inserted == "":
		return history.Delete{Offset: offset, Text: deleted}
	default:
		return history.Replace{Offset: offset, Deleted: deleted, Inserted: inserted}
	}
}

func withCursors(op history.Operation, before, after cursor.Cursor) history.Operation {
	switch o := op.(type) {
	case history.Insert:
		o.CursorBefore, o.CursorAfter = before, after
		return o
	case history.Delete:
		o.CursorBefore, o.CursorAfter = before, after
		return o
	case history.Replace:
		o.CursorBefore, o.CursorAfter = before, after
		return o
	}
	return op
}

// coveredLines returns every line touched by a cursor or selection, from
// the bottom of the document up.
func (e *Editor) coveredLines() []int {
	var lines []int
	for _, c := range e.cursors.All() {
		first, last := c.Selection.LineSpan()
		for l := first; l <= last; l++ {
			lines = append(lines, l)
		}
	}
	slices.Sort(lines)
	lines = slices.Compact(lines)
	slices.Reverse(lines)
	return lines
}

// lineStart returns the byte offset of line, which must exist.
func (e *Editor) lineStart(line int) int {
	return e.doc.offset(buffer.Pos(line, 0))
}

// lineEnd returns the byte offset before line's newline.
func (e *Editor) lineEnd(line int) int {
	return e.doc.offset(buffer.Pos(line, e.doc.LineLen(line)))
}
