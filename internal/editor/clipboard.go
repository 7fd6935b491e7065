package editor

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/cursor"
)

// Clipboard returns the contents of the editor's clipboard register.
func (e *Editor) Clipboard() string {
	return e.clipboard
}

// SetClipboard replaces the clipboard register, as when text arrives from
// the system clipboard.
func (e *Editor) SetClipboard(text string) {
	e.clipboard = buffer.Normalize(text)
}

// selectedText joins the non-empty selections in document order with
// newlines.
func (e *Editor) selectedText() string {
	sels := make([]cursor.Selection, 0, e.cursors.Len())
	for _, c := range e.cursors.All() {
		if !c.Selection.IsEmpty() {
			sels = append(sels, c.Selection)
		}
	}
	slices.SortFunc(sels, func(a, b cursor.Selection) int {
		return a.Start().Compare(b.Start())
	})
	parts := make([]string, len(sels))
	for i, s := range sels {
		parts[i] = e.doc.Slice(s.Start(), s.End())
	}
	return strings.Join(parts, "\n")
}

func (e *Editor) copySelections() bool {
	text := e.selectedText()
	if text == "" {
		return false
	}
	e.clipboard = text
	e.notify(fmt.Sprintf("Copied %d chars", utf8.RuneCountInString(text)))
	return true
}

// cutSelections copies the selections and then deletes them as one undo
// step. Carets are left alone.
func (e *Editor) cutSelections() bool {
	text := e.selectedText()
	if text == "" {
		return false
	}
	e.clipboard = text
	e.editEach(func(anchor, head int) (change, bool) {
		if anchor == head {
			return change{}, false
		}
		return replaceWith(min(anchor, head), max(anchor, head), ""), true
	})
	e.notify(fmt.Sprintf("Cut %d chars", utf8.RuneCountInString(text)))
	return true
}

// paste inserts the clipboard at every cursor, replacing selections. When
// there are several cursors and the clipboard holds exactly one line per
// cursor, each cursor receives its own line, top to bottom.
func (e *Editor) paste() bool {
	text := e.clipboard
	if text == "" {
		return false
	}
	n := e.cursors.Len()
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if n < 2 || len(lines) != n {
		return e.insert(text)
	}
	return e.editEachRanked(func(rank, anchor, head int) (change, bool) {
		return replaceWith(min(anchor, head), max(anchor, head), lines[rank]), true
	})
}
