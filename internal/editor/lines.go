package editor

import (
	"strings"

	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/cursor"
)

// deleteLines removes every line a cursor touches and collapses to the
// primary cursor, which keeps its column where the next line allows.
func (e *Editor) deleteLines() bool {
	column := e.cursors.ActiveCursor().Head().Column
	tx := e.begin()
	for _, line := range e.coveredLines() {
		start, end := e.lineRange(line)
		if _, err := tx.apply(change{start: start, end: end}); err != nil {
			tx.abort(err)
			return false
		}
	}
	tx.finish = func() {
		e.cursors.Collapse()
		head := e.cursors.ActiveCursor().Head()
		col := min(column, e.doc.LineLen(head.Line))
		e.cursors.SetActiveCursor(cursor.At(buffer.Pos(head.Line, col)).WithDesiredColumn(column))
	}
	return tx.commit()
}

// lineRange returns the bytes removed when line is deleted. The last line
// takes the newline before it instead of the one after.
func (e *Editor) lineRange(line int) (start, end int) {
	last := e.doc.LineCount() - 1
	switch {
	case line < last:
		return e.lineStart(line), e.lineStart(line + 1)
	case line > 0:
		return e.lineEnd(line - 1), e.lineEnd(line)
	default:
		return 0, e.doc.buf.Len()
	}
}

// indentLines inserts a tab at the start of every covered line.
func (e *Editor) indentLines() bool {
	tx := e.begin()
	for _, line := range e.coveredLines() {
		at := e.lineStart(line)
		if _, err := tx.apply(change{start: at, end: at, text: "\t"}); err != nil {
			tx.abort(err)
			return false
		}
	}
	return tx.commit()
}

// unindentLines removes one leading tab, or up to a tab width of leading
// spaces, from every covered line.
func (e *Editor) unindentLines() bool {
	tx := e.begin()
	for _, line := range e.coveredLines() {
		n := e.indentUnit(e.doc.Line(line))
		if n == 0 {
			continue
		}
		at := e.lineStart(line)
		if _, err := tx.apply(change{start: at, end: at + n}); err != nil {
			tx.abort(err)
			return false
		}
	}
	return tx.commit()
}

func (e *Editor) indentUnit(line string) int {
	if strings.HasPrefix(line, "\t") {
		return 1
	}
	n := 0
	for n < len(line) && n < e.tabWidth && line[n] == ' ' {
		n++
	}
	return n
}
