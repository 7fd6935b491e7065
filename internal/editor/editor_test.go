package editor

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/history"
	"github.com/dshills/scribe/internal/renderer/viewport"
)

var p = buffer.Pos

func sel(al, ac, hl, hc int) cursor.Selection {
	return cursor.NewSelection(p(al, ac), p(hl, hc))
}

func newEditor(text string, opts ...Option) *Editor {
	return New(NewDocument(text), opts...)
}

func setSelections(e *Editor, active int, sels ...cursor.Selection) {
	cursors := make([]cursor.Cursor, len(sels))
	for i, s := range sels {
		cursors[i] = cursor.FromSelection(s)
	}
	e.cursors.Replace(cursors, active)
}

func selections(e *Editor) []cursor.Selection {
	var out []cursor.Selection
	for _, c := range e.cursors.All() {
		out = append(out, c.Selection)
	}
	return out
}

func run(e *Editor, cmds ...Command) {
	for _, c := range cmds {
		e.Execute(c)
	}
}

func checkText(t *testing.T, e *Editor, want string) {
	t.Helper()
	if got := e.Document().Text(); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func checkSelections(t *testing.T, e *Editor, want ...cursor.Selection) {
	t.Helper()
	if diff := cmp.Diff(want, selections(e)); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertUndoRedo(t *testing.T) {
	e := newEditor("hello")
	run(e, SetCursor{Pos: p(0, 2)}, InsertChar{Char: 'X'})
	checkText(t, e, "heXllo")

	run(e, Undo{})
	checkText(t, e, "hello")
	checkSelections(t, e, cursor.Caret(p(0, 2)))

	run(e, Redo{})
	checkText(t, e, "heXllo")
	checkSelections(t, e, cursor.Caret(p(0, 3)))
}

func TestTypingOverSelection(t *testing.T) {
	e := newEditor("hello")
	setSelections(e, 0, sel(0, 1, 0, 4))
	run(e, InsertChar{Char: 'Y'})
	checkText(t, e, "hYo")

	op, ok := e.Document().History().PeekUndo()
	if !ok {
		t.Fatal("no history entry")
	}
	if _, isReplace := op.(history.Replace); !isReplace {
		t.Errorf("history entry is %T, want history.Replace", op)
	}

	run(e, Undo{})
	checkText(t, e, "hello")
	checkSelections(t, e, sel(0, 1, 0, 4))
}

func TestVerticalMoveKeepsDesiredColumn(t *testing.T) {
	e := newEditor("abcdefgh\nabcdefgh\nabcd\nabcdefgh\nabcdefgh\nabcdefgh")
	e.cursors.Replace([]cursor.Cursor{
		cursor.At(p(0, 5)),
		cursor.At(p(2, 4)).WithDesiredColumn(5),
		cursor.At(p(4, 5)),
	}, 0)

	run(e, MoveCursor{Dir: Down})
	want := []buffer.Position{p(1, 5), p(3, 5), p(5, 5)}
	for i, c := range e.cursors.All() {
		if c.Head() != want[i] {
			t.Errorf("cursor %d at %v, want %v", i, c.Head(), want[i])
		}
		if col, ok := c.DesiredColumn(); !ok || col != 5 {
			t.Errorf("cursor %d desired column = %d, %v", i, col, ok)
		}
	}

	e = newEditor("abcdefgh\nabcd\nabcdefgh")
	run(e, SetCursor{Pos: p(0, 6)}, MoveCursor{Dir: Down})
	if h := e.ActiveCursor().Head(); h != p(1, 4) {
		t.Errorf("clamped move at %v, want 1:4", h)
	}
	run(e, MoveCursor{Dir: Down})
	if h := e.ActiveCursor().Head(); h != p(2, 6) {
		t.Errorf("move past short line at %v, want 2:6", h)
	}
}

func TestExtendMergesOverlap(t *testing.T) {
	e := newEditor("abcdefghij")
	setSelections(e, 1, sel(0, 0, 0, 5), sel(0, 3, 0, 8))
	run(e, ExtendSelection{Dir: Right})
	checkSelections(t, e, sel(0, 0, 0, 9))
	if e.cursors.ActiveIndex() != 0 {
		t.Errorf("ActiveIndex() = %d", e.cursors.ActiveIndex())
	}
}

func TestExtendHeadsMeetingFromBothSides(t *testing.T) {
	e := newEditor("   abcdefghijklmnop")
	setSelections(e, 1, sel(0, 0, 0, 5), sel(0, 15, 0, 10))

	// Smart home sends both heads to column 3. The selections then
	// share a head and must merge rather than drop the backward one.
	run(e, ExtendSelection{Dir: LineStart})
	checkSelections(t, e, sel(0, 0, 0, 15))
	if e.cursors.ActiveIndex() != 0 {
		t.Errorf("ActiveIndex() = %d, want 0", e.cursors.ActiveIndex())
	}
}

func TestMultiCursorDeleteUndoesInOneStep(t *testing.T) {
	e := newEditor("foo bar baz")
	before := []cursor.Selection{sel(0, 0, 0, 2), sel(0, 4, 0, 6), sel(0, 8, 0, 10)}
	setSelections(e, 2, before...)

	run(e, DeleteBackward{})
	checkText(t, e, "o r z")
	checkSelections(t, e, cursor.Caret(p(0, 0)), cursor.Caret(p(0, 2)), cursor.Caret(p(0, 4)))
	if d := e.Document().History().UndoDepth(); d != 1 {
		t.Fatalf("UndoDepth() = %d, want 1", d)
	}

	run(e, Undo{})
	checkText(t, e, "foo bar baz")
	checkSelections(t, e, before...)
	if e.cursors.ActiveIndex() != 2 {
		t.Errorf("ActiveIndex() = %d, want 2", e.cursors.ActiveIndex())
	}
	if e.Document().History().CanUndo() {
		t.Error("a second undo step remains")
	}
}

func TestReverseOrderInsert(t *testing.T) {
	e := newEditor("aaaaaaaaaaaa")
	setSelections(e, 0, cursor.Caret(p(0, 0)), cursor.Caret(p(0, 5)), cursor.Caret(p(0, 10)))
	run(e, InsertChar{Char: 'X'})
	checkText(t, e, "XaaaaaXaaaaaXaa")
	checkSelections(t, e, cursor.Caret(p(0, 1)), cursor.Caret(p(0, 7)), cursor.Caret(p(0, 13)))
}

func TestCopyJoinsSelections(t *testing.T) {
	var msg string
	e := newEditor("foo bar baz", OnMessage(func(m string) { msg = m }))
	// Out of document order, with a bare caret that contributes nothing.
	setSelections(e, 0, sel(0, 8, 0, 11), cursor.Caret(p(0, 3)), sel(0, 2, 0, 0))

	if e.Execute(Copy{}) {
		t.Error("copy reported a visible change")
	}
	if got, want := e.Clipboard(), "fo\nbaz"; got != want {
		t.Errorf("Clipboard() = %q, want %q", got, want)
	}
	if msg != "Copied 6 chars" {
		t.Errorf("message = %q", msg)
	}
	checkText(t, e, "foo bar baz")

	// Nothing selected leaves the register alone.
	setSelections(e, 0, cursor.Caret(p(0, 1)))
	run(e, Copy{})
	if got := e.Clipboard(); got != "fo\nbaz" {
		t.Errorf("Clipboard() after empty copy = %q", got)
	}
}

func TestCutUndoesInOneStep(t *testing.T) {
	e := newEditor("one two\nthree four")
	before := []cursor.Selection{sel(0, 0, 0, 4), cursor.Caret(p(0, 6)), sel(1, 10, 1, 6)}
	setSelections(e, 2, before...)

	run(e, Cut{})
	checkText(t, e, "two\nthree ")
	checkSelections(t, e, cursor.Caret(p(0, 0)), cursor.Caret(p(0, 2)), cursor.Caret(p(1, 6)))
	if got, want := e.Clipboard(), "one \nfour"; got != want {
		t.Errorf("Clipboard() = %q, want %q", got, want)
	}
	if d := e.Document().History().UndoDepth(); d != 1 {
		t.Fatalf("UndoDepth() = %d, want 1", d)
	}

	run(e, Undo{})
	checkText(t, e, "one two\nthree four")
	checkSelections(t, e, before...)
	if e.Document().History().CanUndo() {
		t.Error("a second undo step remains")
	}
}

func TestPaste(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		clipboard string
		sels      []cursor.Selection
		wantText  string
		wantSels  []cursor.Selection
	}{
		{
			name:      "one line per cursor",
			text:      "a\nb\nc",
			clipboard: "1\n2\n3",
			sels:      []cursor.Selection{cursor.Caret(p(0, 1)), cursor.Caret(p(1, 1)), cursor.Caret(p(2, 1))},
			wantText:  "a1\nb2\nc3",
			wantSels:  []cursor.Selection{cursor.Caret(p(0, 2)), cursor.Caret(p(1, 2)), cursor.Caret(p(2, 2))},
		},
		{
			name:      "trailing newline still distributes",
			text:      "xx yy",
			clipboard: "A\nB\n",
			sels:      []cursor.Selection{sel(0, 0, 0, 2), sel(0, 3, 0, 5)},
			wantText:  "A B",
			wantSels:  []cursor.Selection{cursor.Caret(p(0, 1)), cursor.Caret(p(0, 3))},
		},
		{
			name:      "line count differs from cursor count",
			text:      "ab",
			clipboard: "x\ny\nz",
			sels:      []cursor.Selection{cursor.Caret(p(0, 1)), cursor.Caret(p(0, 2))},
			wantText:  "ax\ny\nzbx\ny\nz",
			wantSels:  []cursor.Selection{cursor.Caret(p(2, 1)), cursor.Caret(p(4, 1))},
		},
		{
			name:      "single cursor replaces selection",
			text:      "hello world",
			clipboard: "there",
			sels:      []cursor.Selection{sel(0, 11, 0, 6)},
			wantText:  "hello there",
			wantSels:  []cursor.Selection{cursor.Caret(p(0, 11))},
		},
		{
			name:     "empty clipboard",
			text:     "abc",
			sels:     []cursor.Selection{cursor.Caret(p(0, 1))},
			wantText: "abc",
			wantSels: []cursor.Selection{cursor.Caret(p(0, 1))},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor(tt.text)
			e.SetClipboard(tt.clipboard)
			setSelections(e, 0, tt.sels...)
			run(e, Paste{})
			checkText(t, e, tt.wantText)
			checkSelections(t, e, tt.wantSels...)
			if tt.clipboard == "" {
				if e.Document().History().CanUndo() {
					t.Error("empty paste pushed history")
				}
				return
			}
			if d := e.Document().History().UndoDepth(); d != 1 {
				t.Errorf("UndoDepth() = %d, want 1", d)
			}
		})
	}
}

func TestCutPasteRoundTrip(t *testing.T) {
	e := newEditor("k1 = v1\nk2 = v2")
	setSelections(e, 0, sel(0, 0, 0, 2), sel(1, 0, 1, 2))
	run(e, Cut{}, MoveCursor{Dir: LineEnd}, InsertChar{Char: ' '}, Paste{})
	checkText(t, e, " = v1 k1\n = v2 k2")
}

func TestEditing(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start []cursor.Selection
		cmds  []Command
		want  string
		sels  []cursor.Selection
	}{
		{
			name:  "newline",
			text:  "ab",
			start: []cursor.Selection{cursor.Caret(p(0, 1))},
			cmds:  []Command{InsertNewline{}},
			want:  "a\nb",
			sels:  []cursor.Selection{cursor.Caret(p(1, 0))},
		},
		{
			name:  "paste normalizes line endings",
			text:  "",
			start: []cursor.Selection{cursor.Caret(p(0, 0))},
			cmds:  []Command{InsertText{Text: "x\r\ny"}},
			want:  "x\ny",
			sels:  []cursor.Selection{cursor.Caret(p(1, 1))},
		},
		{
			name:  "backspace joins lines",
			text:  "ab\ncd",
			start: []cursor.Selection{cursor.Caret(p(1, 0))},
			cmds:  []Command{DeleteBackward{}},
			want:  "abcd",
			sels:  []cursor.Selection{cursor.Caret(p(0, 2))},
		},
		{
			name:  "delete forward wide rune",
			text:  "a世b",
			start: []cursor.Selection{cursor.Caret(p(0, 1))},
			cmds:  []Command{DeleteForward{}},
			want:  "ab",
			sels:  []cursor.Selection{cursor.Caret(p(0, 1))},
		},
		{
			name:  "delete forward at end",
			text:  "ab",
			start: []cursor.Selection{cursor.Caret(p(0, 2))},
			cmds:  []Command{DeleteForward{}},
			want:  "ab",
			sels:  []cursor.Selection{cursor.Caret(p(0, 2))},
		},
		{
			name:  "delete word backward",
			text:  "foo bar",
			start: []cursor.Selection{cursor.Caret(p(0, 7))},
			cmds:  []Command{DeleteWordBackward{}, DeleteWordBackward{}},
			want:  "foo",
			sels:  []cursor.Selection{cursor.Caret(p(0, 3))},
		},
		{
			name:  "delete word forward",
			text:  "foo.bar",
			start: []cursor.Selection{cursor.Caret(p(0, 0))},
			cmds:  []Command{DeleteWordForward{}},
			want:  ".bar",
			sels:  []cursor.Selection{cursor.Caret(p(0, 0))},
		},
		{
			name:  "duplicate line",
			text:  "ab\ncd",
			start: []cursor.Selection{cursor.Caret(p(0, 1))},
			cmds:  []Command{Duplicate{}},
			want:  "ab\nab\ncd",
			sels:  []cursor.Selection{cursor.Caret(p(1, 1))},
		},
		{
			name:  "duplicate last line",
			text:  "ab\ncd",
			start: []cursor.Selection{cursor.Caret(p(1, 1))},
			cmds:  []Command{Duplicate{}},
			want:  "ab\ncd\ncd",
			sels:  []cursor.Selection{cursor.Caret(p(2, 1))},
		},
		{
			name:  "duplicate selection",
			text:  "ab",
			start: []cursor.Selection{sel(0, 0, 0, 1)},
			cmds:  []Command{Duplicate{}},
			want:  "aab",
			sels:  []cursor.Selection{sel(0, 1, 0, 2)},
		},
		{
			name:  "delete middle line",
			text:  "one\ntwo\nthree",
			start: []cursor.Selection{cursor.Caret(p(1, 2))},
			cmds:  []Command{DeleteLine{}},
			want:  "one\nthree",
			sels:  []cursor.Selection{cursor.Caret(p(1, 2))},
		},
		{
			name:  "delete last line",
			text:  "one\ntwo\nthree",
			start: []cursor.Selection{cursor.Caret(p(2, 5))},
			cmds:  []Command{DeleteLine{}},
			want:  "one\ntwo",
			sels:  []cursor.Selection{cursor.Caret(p(1, 3))},
		},
		{
			name:  "delete only line",
			text:  "solo",
			start: []cursor.Selection{cursor.Caret(p(0, 2))},
			cmds:  []Command{DeleteLine{}},
			want:  "",
			sels:  []cursor.Selection{cursor.Caret(p(0, 0))},
		},
		{
			name:  "unindent",
			text:  "\ta\n    b\n  c\nd",
			start: []cursor.Selection{sel(0, 0, 3, 1)},
			cmds:  []Command{Unindent{}},
			want:  "a\nb\nc\nd",
		},
		{
			name:  "indent",
			text:  "a\nb",
			start: []cursor.Selection{sel(0, 0, 1, 1)},
			cmds:  []Command{Indent{}},
			want:  "\ta\n\tb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEditor(tt.text)
			setSelections(e, 0, tt.start...)
			run(e, tt.cmds...)
			checkText(t, e, tt.want)
			if tt.sels != nil {
				checkSelections(t, e, tt.sels...)
			}

			for e.Document().History().CanUndo() {
				run(e, Undo{})
			}
			checkText(t, e, tt.text)
		})
	}
}

func TestDeleteLineMultiCursor(t *testing.T) {
	e := newEditor("one\ntwo\nthree")
	setSelections(e, 1, cursor.Caret(p(0, 1)), cursor.Caret(p(2, 1)))
	run(e, DeleteLine{})
	checkText(t, e, "two")
	checkSelections(t, e, cursor.Caret(p(0, 1)))

	run(e, Undo{})
	checkText(t, e, "one\ntwo\nthree")
	checkSelections(t, e, cursor.Caret(p(0, 1)), cursor.Caret(p(2, 1)))
}

func TestNoopEditLeavesHistory(t *testing.T) {
	e := newEditor("abc")
	if e.Execute(DeleteBackward{}) {
		t.Error("backspace at 0:0 reported a change")
	}
	if e.Execute(InsertText{Text: ""}) {
		t.Error("empty insert reported a change")
	}
	if e.Document().History().CanUndo() {
		t.Error("no-op edit pushed history")
	}
	if e.Document().IsModified() {
		t.Error("document marked modified")
	}
	if !e.Execute(InsertChar{Char: 'z'}) || !e.Document().IsModified() {
		t.Error("insert not reported")
	}
}

func TestSmartHome(t *testing.T) {
	e := newEditor("  abc")
	run(e, SetCursor{Pos: p(0, 4)})
	for i, want := range []buffer.Position{p(0, 2), p(0, 0), p(0, 2)} {
		run(e, MoveCursor{Dir: LineStart})
		if h := e.ActiveCursor().Head(); h != want {
			t.Errorf("press %d: head %v, want %v", i, h, want)
		}
	}
}

func TestMoveCollapsesSelection(t *testing.T) {
	e := newEditor("abcdef")
	setSelections(e, 0, sel(0, 4, 0, 1))
	run(e, MoveCursor{Dir: Right})
	checkSelections(t, e, cursor.Caret(p(0, 4)))

	setSelections(e, 0, sel(0, 4, 0, 1))
	run(e, MoveCursor{Dir: Left})
	checkSelections(t, e, cursor.Caret(p(0, 1)))
}

func TestWordMovement(t *testing.T) {
	e := newEditor("foo bar\nbaz")
	run(e, MoveCursor{Dir: WordRight})
	if h := e.ActiveCursor().Head(); h != p(0, 3) {
		t.Errorf("WordRight to %v", h)
	}
	run(e, SetCursor{Pos: p(1, 0)}, MoveCursor{Dir: WordLeft})
	if h := e.ActiveCursor().Head(); h != p(0, 7) {
		t.Errorf("WordLeft across line to %v", h)
	}
}

func TestSelectionCommands(t *testing.T) {
	e := newEditor("hello world\nsecond")
	run(e, SetCursor{Pos: p(0, 7)}, SelectWord{})
	checkSelections(t, e, sel(0, 6, 0, 11))

	run(e, SelectLine{})
	checkSelections(t, e, sel(0, 0, 1, 0))

	run(e, SelectAll{})
	checkSelections(t, e, sel(0, 0, 1, 6))

	run(e, SetCursor{Pos: p(1, 2)}, SelectLine{})
	checkSelections(t, e, sel(1, 0, 1, 6))
}

func TestExpandShrink(t *testing.T) {
	e := newEditor("hello world\nsecond")
	run(e, SetCursor{Pos: p(0, 1)})

	steps := []cursor.Selection{sel(0, 0, 0, 5), sel(0, 0, 1, 0), sel(0, 0, 1, 6), sel(0, 0, 1, 6)}
	for i, want := range steps {
		run(e, ExpandSelection{})
		checkSelections(t, e, want)
		if t.Failed() {
			t.Fatalf("expand step %d", i)
		}
	}
	if len(e.selectionHistory) != 3 {
		t.Errorf("selection history depth = %d, want 3", len(e.selectionHistory))
	}

	for _, want := range []cursor.Selection{sel(0, 0, 1, 0), sel(0, 0, 0, 5), cursor.Caret(p(0, 1)), cursor.Caret(p(0, 1))} {
		run(e, ShrinkSelection{})
		checkSelections(t, e, want)
	}
}

func TestExpandCollapsesToAll(t *testing.T) {
	e := newEditor("ab\ncd\nef")
	setSelections(e, 1, sel(0, 0, 1, 0), cursor.Caret(p(2, 0)))
	run(e, ExpandSelection{})
	checkSelections(t, e, sel(0, 0, 2, 2))

	run(e, MoveCursor{Dir: Right}, ShrinkSelection{})
	checkSelections(t, e, cursor.Caret(p(2, 2)))
}

func TestAddCursorVertical(t *testing.T) {
	e := newEditor("abcdef\nab\nabcdef")
	run(e, SetCursor{Pos: p(0, 5)}, AddCursorBelow{}, AddCursorBelow{})
	var heads []buffer.Position
	for _, c := range e.cursors.All() {
		heads = append(heads, c.Head())
	}
	if diff := cmp.Diff([]buffer.Position{p(0, 5), p(1, 2), p(2, 5)}, heads); diff != "" {
		t.Errorf("heads mismatch (-want +got):\n%s", diff)
	}
	if e.ActiveCursor().Head() != p(2, 5) {
		t.Errorf("active = %v", e.ActiveCursor().Head())
	}

	run(e, AddCursorBelow{})
	if e.cursors.Len() != 3 {
		t.Errorf("cursor added past the last line")
	}
	run(e, AddCursorAbove{})
	if e.cursors.Len() != 3 {
		t.Errorf("cursor added above the first line")
	}
}

func TestToggleCursor(t *testing.T) {
	e := newEditor("abc\ndef")
	run(e, ToggleCursorAt{Pos: p(1, 1)})
	if e.cursors.Len() != 2 {
		t.Fatalf("Len() = %d after add", e.cursors.Len())
	}
	run(e, ToggleCursorAt{Pos: p(1, 1)})
	if e.cursors.Len() != 1 {
		t.Fatalf("Len() = %d after toggle off", e.cursors.Len())
	}
	run(e, ToggleCursorAt{Pos: p(0, 0)})
	if e.cursors.Len() != 1 {
		t.Error("toggle removed the only cursor")
	}
	run(e, AddCursorAt{Pos: p(0, 0)})
	if e.cursors.Len() != 1 {
		t.Error("duplicate cursor not deduplicated")
	}
}

func TestSelectNextOccurrence(t *testing.T) {
	var messages []string
	e := newEditor("foo bar foo baz foo", OnMessage(func(m string) { messages = append(messages, m) }))
	run(e, SetCursor{Pos: p(0, 1)}, SelectNextOccurrence{})
	checkSelections(t, e, sel(0, 0, 0, 3))

	run(e, SelectNextOccurrence{}, SelectNextOccurrence{})
	checkSelections(t, e, sel(0, 0, 0, 3), sel(0, 8, 0, 11), sel(0, 16, 0, 19))
	if e.ActiveCursor().Head() != p(0, 19) {
		t.Errorf("newest occurrence not primary: %v", e.ActiveCursor().Head())
	}

	run(e, SelectNextOccurrence{})
	if e.cursors.Len() != 3 {
		t.Errorf("Len() = %d after wrap", e.cursors.Len())
	}
	if diff := cmp.Diff([]string{"All occurrences selected"}, messages); diff != "" {
		t.Errorf("messages (-want +got):\n%s", diff)
	}

	run(e, UnselectOccurrence{})
	checkSelections(t, e, sel(0, 0, 0, 3), sel(0, 8, 0, 11))

	run(e, InsertText{Text: "x"})
	checkText(t, e, "x bar x baz foo")
}

func TestSelectNextOccurrenceWraps(t *testing.T) {
	e := newEditor("ab ab ab")
	setSelections(e, 0, sel(0, 3, 0, 5))
	run(e, SelectNextOccurrence{}, SelectNextOccurrence{})
	checkSelections(t, e, sel(0, 0, 0, 2), sel(0, 3, 0, 5), sel(0, 6, 0, 8))
	if e.ActiveCursor().Head() != p(0, 2) {
		t.Errorf("wrapped occurrence not primary: %v", e.ActiveCursor().Head())
	}
}

func TestSelectAllOccurrences(t *testing.T) {
	var last string
	e := newEditor("foo bar\nfoo\n", OnMessage(func(m string) { last = m }))
	run(e, SetCursor{Pos: p(1, 1)}, SelectAllOccurrences{})
	checkSelections(t, e, sel(0, 0, 0, 3), sel(1, 0, 1, 3))
	if last != "2 occurrences selected" {
		t.Errorf("message = %q", last)
	}
	if e.ActiveCursor().Head() != p(1, 3) {
		t.Errorf("primary = %v, want 1:3", e.ActiveCursor().Head())
	}

	run(e, SetCursor{Pos: p(2, 0)}, SelectAllOccurrences{})
	if last != "No occurrences found" {
		t.Errorf("message on blank = %q", last)
	}
}

func TestCollapseCursors(t *testing.T) {
	e := newEditor("abc\ndef")
	setSelections(e, 1, sel(0, 0, 0, 2), sel(1, 0, 1, 2))
	run(e, CollapseCursors{})
	checkSelections(t, e, sel(1, 0, 1, 2))
	run(e, CollapseCursors{})
	checkSelections(t, e, cursor.Caret(p(1, 2)))
}

func TestRectangleSelection(t *testing.T) {
	e := newEditor("abcdef\nab\nabcdef")
	run(e, RectangleStart{Pos: p(0, 1)}, RectangleUpdate{Pos: p(2, 4)})

	r := e.Rectangle()
	if !r.Active {
		t.Fatal("rectangle not active")
	}
	if diff := cmp.Diff([]buffer.Position{p(0, 4), p(1, 2), p(2, 4)}, r.Preview); diff != "" {
		t.Errorf("preview mismatch (-want +got):\n%s", diff)
	}

	run(e, RectangleFinish{})
	checkSelections(t, e, sel(0, 1, 0, 4), sel(1, 1, 1, 2), sel(2, 1, 2, 4))
	if e.cursors.ActiveIndex() != 2 || e.Rectangle().Active {
		t.Errorf("after finish: active %d, rectangle %v", e.cursors.ActiveIndex(), e.Rectangle().Active)
	}

	run(e, InsertChar{Char: 'X'})
	checkText(t, e, "aXef\naX\naXef")
}

func TestRectanglePreviewNotShared(t *testing.T) {
	e := newEditor("abcdef\nabcdef\nabcdef")
	run(e, RectangleStart{Pos: p(0, 1)}, RectangleUpdate{Pos: p(2, 4)})
	held := e.Rectangle().Preview
	want := []buffer.Position{p(0, 4), p(1, 4), p(2, 4)}

	run(e, RectangleUpdate{Pos: p(1, 2)})
	if diff := cmp.Diff(want, held); diff != "" {
		t.Errorf("earlier preview changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]buffer.Position{p(0, 2), p(1, 2)}, e.Rectangle().Preview); diff != "" {
		t.Errorf("preview mismatch (-want +got):\n%s", diff)
	}
}

func TestRectangleBackwardAndTabs(t *testing.T) {
	e := newEditor("\tab\nabcdef")
	run(e, RectangleStart{Pos: p(1, 5)}, RectangleUpdate{Pos: p(0, 1)})
	top, bottom, left, right := e.Rectangle().Bounds()
	if top != 0 || bottom != 1 || left != 4 || right != 5 {
		t.Errorf("Bounds() = %d %d %d %d", top, bottom, left, right)
	}
	run(e, RectangleFinish{})
	checkSelections(t, e, sel(0, 2, 0, 1), sel(1, 5, 1, 4))
	if e.cursors.ActiveIndex() != 0 {
		t.Errorf("ActiveIndex() = %d, want 0", e.cursors.ActiveIndex())
	}

	run(e, RectangleStart{Pos: p(0, 0)}, RectangleCancel{})
	if e.Rectangle().Active {
		t.Error("cancel left rectangle active")
	}
}

func TestCursorKeptVisible(t *testing.T) {
	var activity int
	e := newEditor(strings.Repeat("line\n", 99),
		WithViewport(viewport.New(10, 40)),
		OnActivity(func() { activity++ }))

	run(e, MoveCursor{Dir: DocumentEnd})
	if !e.Viewport().IsLineVisible(99) {
		t.Errorf("last line not visible, top = %d", e.Viewport().TopLine())
	}
	if activity == 0 {
		t.Error("activity callback not called")
	}

	run(e, Scroll{Lines: -50})
	if e.Viewport().Mode() != viewport.FreeBrowse {
		t.Errorf("mode after wheel = %v", e.Viewport().Mode())
	}
	run(e, MoveCursor{Dir: Up})
	if !e.Viewport().IsLineVisible(98) || e.Viewport().Mode() != viewport.CursorLocked {
		t.Errorf("cursor move did not snap back: top %d mode %v", e.Viewport().TopLine(), e.Viewport().Mode())
	}
}

func TestDocumentSaveState(t *testing.T) {
	doc := NewDocument("a\r\nb", WithPath("/tmp/notes.txt"))
	if doc.Name() != "notes.txt" {
		t.Errorf("Name() = %q", doc.Name())
	}
	if NewDocument("").Name() != "[No Name]" {
		t.Error("untitled name")
	}

	e := New(doc)
	run(e, InsertChar{Char: 'z'})
	if doc.SaveText() != "za\r\nb" {
		t.Errorf("SaveText() = %q", doc.SaveText())
	}
	doc.MarkSaved()
	run(e, InsertChar{Char: 'y'}, Undo{})
	if doc.IsModified() {
		t.Error("undo back to the saved state left the document modified")
	}
}

// randomEdit issues insert and delete commands only, so the final cursor
// state is the one the last history entry recorded.
func randomEdit(rng *rand.Rand) Command {
	switch rng.Intn(8) {
	case 0:
		return InsertChar{Char: rune('a' + rng.Intn(3))}
	case 1:
		return InsertNewline{}
	case 2:
		return DeleteBackward{}
	case 3:
		return DeleteForward{}
	case 4:
		return InsertText{Text: "é\tw"}
	case 5:
		return Cut{}
	case 6:
		return Paste{}
	default:
		return DeleteWordBackward{}
	}
}

type cursorState struct {
	Cursors []cursor.Cursor
	Active  int
}

func stateOf(e *Editor) cursorState {
	return cursorState{Cursors: e.cursors.All(), Active: e.cursors.ActiveIndex()}
}

func TestUndoRedoInverseLaw(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		const initial = "alpha beta\ngamma\n\tdelta epsilon\nzeta"
		e := newEditor(initial)
		setSelections(e, 1, cursor.Caret(p(0, 2)), sel(1, 1, 1, 4), cursor.Caret(p(2, 0)), cursor.Caret(p(3, 4)))

		for range 60 {
			e.Execute(randomEdit(rng))
		}
		text, state := e.Document().Text(), stateOf(e)
		n := e.Document().History().UndoDepth()

		for range n {
			run(e, Undo{})
		}
		if got := e.Document().Text(); got != initial {
			t.Fatalf("seed %d: after %d undos text = %q", seed, n, got)
		}
		for range n {
			run(e, Redo{})
		}
		if got := e.Document().Text(); got != text {
			t.Fatalf("seed %d: after redo text = %q, want %q", seed, got, text)
		}
		if diff := cmp.Diff(state, stateOf(e), cmp.AllowUnexported(cursor.Cursor{})); diff != "" {
			t.Fatalf("seed %d: cursor state mismatch (-want +got):\n%s", seed, diff)
		}
	}
}

func randomCommand(rng *rand.Rand, e *Editor) Command {
	pos := p(rng.Intn(e.Document().LineCount()+2)-1, rng.Intn(14)-1)
	dirs := []Direction{Left, Right, Up, Down, WordLeft, WordRight, LineStart, LineEnd, DocumentStart, DocumentEnd, PageUp, PageDown}
	switch rng.Intn(24) {
	case 0:
		return MoveCursor{Dir: dirs[rng.Intn(len(dirs))]}
	case 1:
		return ExtendSelection{Dir: dirs[rng.Intn(len(dirs))]}
	case 2:
		return SetCursor{Pos: pos}
	case 3:
		return ExtendTo{Pos: pos}
	case 4:
		return AddCursorAt{Pos: pos}
	case 5:
		return ToggleCursorAt{Pos: pos}
	case 6:
		return AddCursorAbove{}
	case 7:
		return AddCursorBelow{}
	case 8:
		return SelectNextOccurrence{}
	case 9:
		return UnselectOccurrence{}
	case 10:
		return SelectAllOccurrences{}
	case 11:
		return ExpandSelection{}
	case 12:
		return ShrinkSelection{}
	case 13:
		return SelectWord{}
	case 14:
		return SelectLine{}
	case 15:
		return Duplicate{}
	case 16:
		return DeleteLine{}
	case 17:
		if rng.Intn(2) == 0 {
			return Indent{}
		}
		return Unindent{}
	case 18:
		return Undo{}
	case 19:
		return Redo{}
	case 20:
		return RectangleStart{Pos: pos}
	case 21:
		if rng.Intn(2) == 0 {
			return RectangleUpdate{Pos: pos}
		}
		return RectangleFinish{}
	case 22:
		return Resize{Lines: rng.Intn(6), Columns: rng.Intn(20)}
	default:
		return randomEdit(rng)
	}
}

func TestCursorInvariants(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		e := newEditor("foo bar foo\n\tbaz\n\nqux foo quux\nend", WithViewport(viewport.New(3, 10)))

		for step := range 400 {
			cmd := randomCommand(rng, e)
			e.Execute(cmd)
			checkInvariants(t, e, seed, step, cmd)
			if t.Failed() {
				return
			}
		}
	}
}

func checkInvariants(t *testing.T, e *Editor, seed int64, step int, cmd Command) {
	t.Helper()
	doc := e.Document()
	cursors := e.cursors.All()
	if len(cursors) == 0 {
		t.Fatalf("seed %d step %d (%T): empty cursor set", seed, step, cmd)
	}
	for i, c := range cursors {
		for _, pos := range []buffer.Position{c.Anchor(), c.Head()} {
			if pos.Line < 0 || pos.Line >= doc.LineCount() || pos.Column < 0 || pos.Column > doc.LineLen(pos.Line) {
				t.Errorf("seed %d step %d (%T): cursor %d at %v out of bounds", seed, step, cmd, i, pos)
			}
		}
		if i > 0 && !c.Selection.Start().After(cursors[i-1].Selection.End()) {
			t.Errorf("seed %d step %d (%T): cursors %d and %d overlap: %v %v",
				seed, step, cmd, i-1, i, cursors[i-1].Selection, c.Selection)
		}
	}
	if a := e.cursors.ActiveIndex(); a < 0 || a >= len(cursors) {
		t.Errorf("seed %d step %d: active index %d of %d", seed, step, a, len(cursors))
	}
}
