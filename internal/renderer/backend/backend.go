// Package backend presents composited frames on a display surface and
// delivers input events from it.
package backend

import "github.com/dshills/scribe/internal/renderer/frame"

// Presenter shows finished frames.
type Presenter interface {
	// Init prepares the surface. It must be called before Present.
	Init() error

	// Shutdown releases the surface. Present fails with ErrClosed
	// afterwards.
	Shutdown()

	// Size returns the pixel size the compositor should render at.
	Size() (width, height int)

	// Present displays f. A frame whose size differs from Size is shown
	// clipped or padded, never rejected.
	Present(f *frame.Frame) error
}

// EventSource is implemented by presenters that also produce input.
type EventSource interface {
	// PollEvent blocks until the next event.
	PollEvent() Event

	// PostEvent queues a synthetic event.
	PostEvent(ev Event)
}

// Logger is the logging surface presenters use.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// EventType identifies the kind of input event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
	EventFocus
	EventInterrupt
)

// Event is one input event. Mouse coordinates are in surface cells.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields, in pixels as reported by Size
	Width, Height int

	// Focus event fields; for EventPaste, true at the start of a paste
	Focused bool
}

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// CtrlKey returns the Ctrl+letter key for a lowercase ASCII letter.
func CtrlKey(letter rune) Key {
	if letter < 'a' || letter > 'z' {
		return KeyNone
	}
	return KeyCtrlA + Key(letter-'a')
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	MouseWheelLeft
	MouseWheelRight
)
