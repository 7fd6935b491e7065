package editor

import (
	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/textutil"
)

// insert replaces every selection with text and leaves a caret after it.
func (e *Editor) insert(text string) bool {
	text = buffer.Normalize(text)
	if text == "" {
		return false
	}
	return e.editEach(func(anchor, head int) (change, bool) {
		return replaceWith(min(anchor, head), max(anchor, head), text), true
	})
}

// deleteWith removes each selection, or the range reach returns for a
// caret. reach returns false when there is nothing to delete.
func (e *Editor) deleteWith(reach func(head int) (start, end int, ok bool)) bool {
	return e.editEach(func(anchor, head int) (change, bool) {
		if anchor != head {
			return replaceWith(min(anchor, head), max(anchor, head), ""), true
		}
		start, end, ok := reach(head)
		if !ok || start == end {
			return change{}, false
		}
		return change{start: start, end: end}, true
	})
}

func (e *Editor) deleteBackward() bool {
	return e.deleteWith(func(head int) (int, int, bool) {
		if head == 0 {
			return 0, 0, false
		}
		return e.prevCharOffset(head), head, true
	})
}

func (e *Editor) deleteForward() bool {
	return e.deleteWith(func(head int) (int, int, bool) {
		next := e.nextCharOffset(head)
		return head, next, next > head
	})
}

func (e *Editor) deleteWordBackward() bool {
	return e.deleteWith(func(head int) (int, int, bool) {
		pos := e.doc.position(head)
		if pos.Column == 0 {
			if head == 0 {
				return 0, 0, false
			}
			return head - 1, head, true
		}
		col := textutil.PrevWordStart(e.doc.lineRunes(pos.Line), pos.Column)
		return e.doc.offset(buffer.Pos(pos.Line, col)), head, true
	})
}

func (e *Editor) deleteWordForward() bool {
	return e.deleteWith(func(head int) (int, int, bool) {
		pos := e.doc.position(head)
		if pos.Column >= e.doc.LineLen(pos.Line) {
			next := e.nextCharOffset(head)
			return head, next, next > head
		}
		col := textutil.NextWordEnd(e.doc.lineRunes(pos.Line), pos.Column)
		return head, e.doc.offset(buffer.Pos(pos.Line, col)), true
	})
}

// duplicate copies each selection after itself and selects the copy. A
// caret duplicates its whole line below and moves onto the copy.
func (e *Editor) duplicate() bool {
	done := make(map[int]bool)
	return e.editEach(func(anchor, head int) (change, bool) {
		if anchor != head {
			start, end := min(anchor, head), max(anchor, head)
			text, err := e.doc.buf.Slice(start, end)
			if err != nil {
				return change{}, false
			}
			return change{start: end, end: end, text: text, anchor: 0, head: len(text)}, true
		}

		pos := e.doc.position(head)
		if done[pos.Line] {
			return change{}, false
		}
		done[pos.Line] = true

		line := e.doc.Line(pos.Line)
		col := len(string(e.doc.lineRunes(pos.Line)[:pos.Column]))
		if pos.Line < e.doc.LineCount()-1 {
			at := e.lineStart(pos.Line + 1)
			return change{start: at, end: at, text: line + "\n", anchor: col, head: col}, true
		}
		at := e.lineEnd(pos.Line)
		return change{start: at, end: at, text: "\n" + line, anchor: 1 + col, head: 1 + col}, true
	})
}

// prevCharOffset returns the start of the character before off. At column
// 0 that is the preceding newline.
func (e *Editor) prevCharOffset(off int) int {
	return e.doc.buf.ClampOffset(off - 1)
}

// nextCharOffset returns the end of the character at off, or off at the
// end of the document.
func (e *Editor) nextCharOffset(off int) int {
	pos := e.doc.position(off)
	if pos.Column < e.doc.LineLen(pos.Line) {
		return e.doc.offset(buffer.Pos(pos.Line, pos.Column+1))
	}
	if off < e.doc.buf.Len() {
		return off + 1
	}
	return off
}
