package editor

import "github.com/dshills/scribe/internal/engine/buffer"

// Direction is a movement target.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
	WordLeft
	WordRight
	LineStart
	LineEnd
	DocumentStart
	DocumentEnd
	PageUp
	PageDown
)

var directionNames = [...]string{
	Left:          "left",
	Right:         "right",
	Up:            "up",
	Down:          "down",
	WordLeft:      "word-left",
	WordRight:     "word-right",
	LineStart:     "line-start",
	LineEnd:       "line-end",
	DocumentStart: "document-start",
	DocumentEnd:   "document-end",
	PageUp:        "page-up",
	PageDown:      "page-down",
}

// String returns the direction name.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

func (d Direction) vertical() bool {
	return d == Up || d == Down || d == PageUp || d == PageDown
}

// Command is one semantic editor command. The set of commands is closed;
// translating key events into commands is the input layer's job.
type Command interface {
	command()
}

// Movement.
type (
	// MoveCursor moves every cursor and drops selections.
	MoveCursor struct{ Dir Direction }
	// ExtendSelection moves every cursor head and keeps anchors.
	ExtendSelection struct{ Dir Direction }
	// SetCursor collapses to one caret at Pos, as a click does.
	SetCursor struct{ Pos buffer.Position }
	// ExtendTo extends the primary selection to Pos, as a shift-click does.
	ExtendTo struct{ Pos buffer.Position }
	// GotoLine moves to the start of Line and centers it.
	GotoLine struct{ Line int }
)

// Editing.
type (
	InsertChar         struct{ Char rune }
	InsertText         struct{ Text string }
	InsertNewline      struct{}
	DeleteBackward     struct{}
	DeleteForward      struct{}
	DeleteWordBackward struct{}
	DeleteWordForward  struct{}
	Duplicate          struct{}
	DeleteLine         struct{}
	Indent             struct{}
	Unindent           struct{}
	Undo               struct{}
	Redo               struct{}
)

// Clipboard. Several selections are copied joined by newlines.
type (
	Copy  struct{}
	Cut   struct{}
	Paste struct{}
)

// Selection.
type (
	SelectAll       struct{}
	SelectWord      struct{}
	SelectLine      struct{}
	ExpandSelection struct{}
	ShrinkSelection struct{}
)

// Multiple cursors.
type (
	AddCursorAbove struct{}
	AddCursorBelow struct{}
	// AddCursorAt adds a caret at Pos and makes it primary.
	AddCursorAt struct{ Pos buffer.Position }
	// ToggleCursorAt adds a caret at Pos, or removes the cursor already
	// there unless it is the only one.
	ToggleCursorAt       struct{ Pos buffer.Position }
	SelectNextOccurrence struct{}
	UnselectOccurrence   struct{}
	SelectAllOccurrences struct{}
	// CollapseCursors keeps only the primary cursor and cancels any
	// rectangle selection. It is what Escape does.
	CollapseCursors struct{}
)

// Rectangle selection.
type (
	RectangleStart  struct{ Pos buffer.Position }
	RectangleUpdate struct{ Pos buffer.Position }
	RectangleFinish struct{}
	RectangleCancel struct{}
)

// Viewport.
type (
	// Scroll moves the viewport without moving cursors.
	Scroll struct{ Lines, Columns int }
	// Resize sets the visible size in lines and visual columns.
	Resize struct{ Lines, Columns int }
)

func (MoveCursor) command()           {}
func (ExtendSelection) command()      {}
func (SetCursor) command()            {}
func (ExtendTo) command()             {}
func (GotoLine) command()             {}
func (InsertChar) command()           {}
func (InsertText) command()           {}
func (InsertNewline) command()        {}
func (DeleteBackward) command()       {}
func (DeleteForward) command()        {}
func (DeleteWordBackward) command()   {}
func (DeleteWordForward) command()    {}
func (Duplicate) command()            {}
func (DeleteLine) command()           {}
func (Indent) command()               {}
func (Unindent) command()             {}
func (Undo) command()                 {}
func (Redo) command()                 {}
func (Copy) command()                 {}
func (Cut) command()                  {}
func (Paste) command()                {}
func (SelectAll) command()            {}
func (SelectWord) command()           {}
func (SelectLine) command()           {}
func (ExpandSelection) command()      {}
func (ShrinkSelection) command()      {}
func (AddCursorAbove) command()       {}
func (AddCursorBelow) command()       {}
func (AddCursorAt) command()          {}
func (ToggleCursorAt) command()       {}
func (SelectNextOccurrence) command() {}
func (UnselectOccurrence) command()   {}
func (SelectAllOccurrences) command() {}
func (CollapseCursors) command()      {}
func (RectangleStart) command()       {}
func (RectangleUpdate) command()      {}
func (RectangleFinish) command()      {}
func (RectangleCancel) command()      {}
func (Scroll) command()               {}
func (Resize) command()               {}
