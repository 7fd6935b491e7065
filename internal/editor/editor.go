package editor

import (
	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/engine/history"
	"github.com/dshills/scribe/internal/renderer/viewport"
	"github.com/dshills/scribe/internal/textutil"
)

// Logger is the logging surface the editor needs.
type Logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}

// Editor applies commands to a document.
type Editor struct {
	doc      *Document
	cursors  *cursor.Set
	view     *viewport.Viewport
	tabWidth int

	occurrence       *occurrenceState
	selectionHistory []history.Snapshot
	rect             Rectangle
	clipboard        string

	log        Logger
	onActivity func()
	onMessage  func(string)
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTabWidth sets the tab stop interval used for visual columns.
func WithTabWidth(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.tabWidth = n
		}
	}
}

// WithViewport replaces the default 0×0 viewport.
func WithViewport(v *viewport.Viewport) Option {
	return func(e *Editor) {
		if v != nil {
			e.view = v
		}
	}
}

// OnActivity registers fn to run after every cursor movement or edit. The
// renderer uses it to restart the cursor blink.
func OnActivity(fn func()) Option {
	return func(e *Editor) { e.onActivity = fn }
}

// OnMessage registers fn to receive transient status messages such as
// "All occurrences selected".
func OnMessage(fn func(string)) Option {
	return func(e *Editor) { e.onMessage = fn }
}

// New creates an editor for doc with one caret at 0:0.
func New(doc *Document, opts ...Option) *Editor {
	e := &Editor{
		doc:      doc,
		cursors:  cursor.NewSet(cursor.Cursor{}),
		view:     viewport.New(0, 0),
		tabWidth: textutil.DefaultTabWidth,
		log:      nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.view.SetLineCount(doc.LineCount())
	return e
}

// Document returns the edited document.
func (e *Editor) Document() *Document {
	return e.doc
}

// Cursors returns the cursor set. Callers must treat it as read-only.
func (e *Editor) Cursors() *cursor.Set {
	return e.cursors
}

// ActiveCursor returns the primary cursor.
func (e *Editor) ActiveCursor() cursor.Cursor {
	return e.cursors.ActiveCursor()
}

// Viewport returns the scroll controller.
func (e *Editor) Viewport() *viewport.Viewport {
	return e.view
}

// TabWidth returns the tab stop interval.
func (e *Editor) TabWidth() int {
	return e.tabWidth
}

// SetTabWidth changes the tab stop interval. Values below one are
// ignored.
func (e *Editor) SetTabWidth(n int) {
	if n > 0 {
		e.tabWidth = n
	}
}

// Rectangle returns the rectangle selection state.
func (e *Editor) Rectangle() Rectangle {
	return e.rect
}

// Execute applies cmd and reports whether anything visible changed.
func (e *Editor) Execute(cmd Command) bool {
	revision := e.doc.buf.Revision()
	before := e.cursors.Clone()
	top, left := e.view.TopLine(), e.view.LeftColumn()
	rectActive := e.rect.Active

	e.dispatch(cmd)
	e.view.SetLineCount(e.doc.LineCount())

	return revision != e.doc.buf.Revision() ||
		!before.Equals(e.cursors) ||
		top != e.view.TopLine() || left != e.view.LeftColumn() ||
		rectActive || e.rect.Active
}

func (e *Editor) dispatch(cmd Command) {
	switch cmd.(type) {
	case ExpandSelection, ShrinkSelection, Scroll, Resize:
	default:
		e.selectionHistory = e.selectionHistory[:0]
	}

	switch c := cmd.(type) {
	case MoveCursor:
		e.occurrence = nil
		e.move(c.Dir, false)
	case ExtendSelection:
		e.move(c.Dir, true)
	case SetCursor:
		e.occurrence = nil
		e.cursors.Replace([]cursor.Cursor{cursor.At(e.clamp(c.Pos))}, 0)
		e.cursorMoved()
	case ExtendTo:
		e.extendTo(e.clamp(c.Pos))
	case GotoLine:
		e.occurrence = nil
		e.cursors.Replace([]cursor.Cursor{cursor.At(e.clamp(buffer.Pos(c.Line, 0)))}, 0)
		e.view.RequestReveal(viewport.Centered)
		e.cursorMoved()

	case InsertChar:
		e.insert(string(c.Char))
	case InsertText:
		e.insert(c.Text)
	case InsertNewline:
		e.insert("\n")
	case DeleteBackward:
		e.deleteBackward()
	case DeleteForward:
		e.deleteForward()
	case DeleteWordBackward:
		e.deleteWordBackward()
	case DeleteWordForward:
		e.deleteWordForward()
	case Duplicate:
		e.duplicate()
	case DeleteLine:
		e.deleteLines()
	case Indent:
		e.indentLines()
	case Unindent:
		e.unindentLines()
	case Undo:
		e.undo()
	case Redo:
		e.redo()
	case Copy:
		e.copySelections()
	case Cut:
		e.cutSelections()
	case Paste:
		e.paste()

	case SelectAll:
		e.selectAll()
	case SelectWord:
		e.selectWord()
	case SelectLine:
		e.selectLine()
	case ExpandSelection:
		e.expandSelection()
	case ShrinkSelection:
		e.shrinkSelection()

	case AddCursorAbove:
		e.addCursorVertical(-1)
	case AddCursorBelow:
		e.addCursorVertical(1)
	case AddCursorAt:
		e.addCursorAt(e.clamp(c.Pos))
	case ToggleCursorAt:
		e.toggleCursorAt(e.clamp(c.Pos))
	case SelectNextOccurrence:
		e.selectNextOccurrence()
	case UnselectOccurrence:
		e.unselectOccurrence()
	case SelectAllOccurrences:
		e.selectAllOccurrences()
	case CollapseCursors:
		e.collapseCursors()

	case RectangleStart:
		e.startRectangle(e.clamp(c.Pos))
	case RectangleUpdate:
		e.updateRectangle(c.Pos)
	case RectangleFinish:
		e.finishRectangle()
	case RectangleCancel:
		e.rect = Rectangle{}

	case Scroll:
		e.view.Scroll(c.Lines, c.Columns)
	case Resize:
		e.view.Resize(c.Lines, c.Columns)
		if e.view.Mode() == viewport.CursorLocked {
			e.reveal()
		}
	default:
		e.log.Debug("unknown command", "command", cmd)
	}
}

// clamp returns the nearest valid position to pos.
func (e *Editor) clamp(pos buffer.Position) buffer.Position {
	return e.doc.buf.ClampPosition(pos)
}

// visualColumn returns the visual column of pos.
func (e *Editor) visualColumn(pos buffer.Position) int {
	return textutil.VisualColumn(e.doc.Line(pos.Line), pos.Column, e.tabWidth)
}

// reveal scrolls the primary cursor into view.
func (e *Editor) reveal() {
	head := e.cursors.ActiveCursor().Head()
	e.view.SetLineCount(e.doc.LineCount())
	e.view.EnsureVisible(head.Line, e.visualColumn(head))
}

// cursorMoved finishes every command that moved a cursor.
func (e *Editor) cursorMoved() {
	e.reveal()
	if e.onActivity != nil {
		e.onActivity()
	}
}

func (e *Editor) notify(msg string) {
	e.log.Debug("status", "message", msg)
	if e.onMessage != nil {
		e.onMessage(msg)
	}
}

func (e *Editor) undo() {
	snap, ok, err := e.doc.history.Undo(e.doc.buf)
	if err != nil {
		e.log.Error("undo failed", "error", err)
		return
	}
	if ok {
		e.restore(snap)
	}
}

func (e *Editor) redo() {
	snap, ok, err := e.doc.history.Redo(e.doc.buf)
	if err != nil {
		e.log.Error("redo failed", "error", err)
		return
	}
	if ok {
		e.restore(snap)
	}
}

func (e *Editor) restore(snap history.Snapshot) {
	e.occurrence = nil
	e.rect = Rectangle{}
	snap.Restore(e.cursors)
	e.cursorMoved()
}
