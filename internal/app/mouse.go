package app

import (
	"time"

	"github.com/dshills/scribe/internal/editor"
	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/renderer/backend"
)

const (
	doubleClickInterval = 400 * time.Millisecond
	wheelLines          = 3
	wheelColumns        = 4
)

// mouseState tracks a press in progress and the last click for
// double-click detection.
type mouseState struct {
	pressed   bool
	rectangle bool
	lastClick time.Time
	lastPos   buffer.Position
}

// cellScaler is implemented by presenters whose mouse coordinates are
// cells rather than pixels. Each cell covers Scale pixels across and
// 2*Scale down.
type cellScaler interface {
	Scale() int
}

// mousePixel converts event coordinates to the center of the pixel area
// they cover.
func (a *App) mousePixel(x, y int) (int, int) {
	if s, ok := a.presenter.(cellScaler); ok {
		sc := max(s.Scale(), 1)
		return x*sc + sc/2, y*2*sc + sc
	}
	return x, y
}

func (a *App) positionAt(x, y int) buffer.Position {
	v := a.ed.Viewport()
	return a.comp.Layout().PixelToPosition(x, y, a.doc, v.TopLine(), v.LeftColumn(), a.ed.TabWidth())
}

// handleMouse maps a mouse event to editor commands:
//
//	click           place the caret; a second click on the same spot selects the word
//	drag            extend the selection
//	shift+click     extend the selection to the click
//	ctrl+click      add or remove a caret
//	alt+drag        rectangle selection
//	wheel           scroll without moving cursors
func (a *App) handleMouse(ev backend.Event, now time.Time) bool {
	switch ev.MouseButton {
	case backend.MouseWheelUp:
		return a.exec(editor.Scroll{Lines: -wheelLines})
	case backend.MouseWheelDown:
		return a.exec(editor.Scroll{Lines: wheelLines})
	case backend.MouseWheelLeft:
		return a.exec(editor.Scroll{Columns: -wheelColumns})
	case backend.MouseWheelRight:
		return a.exec(editor.Scroll{Columns: wheelColumns})
	case backend.MouseNone:
		return a.release()
	case backend.MouseLeft:
	default:
		return false
	}

	x, y := a.mousePixel(ev.MouseX, ev.MouseY)
	pos := a.positionAt(x, y)

	if a.mouse.pressed {
		if a.mouse.rectangle {
			return a.exec(editor.RectangleUpdate{Pos: pos})
		}
		return a.exec(editor.ExtendTo{Pos: pos})
	}

	status := a.comp.Layout().Status
	if !status.Empty() && y >= status.Min.Y {
		return false
	}
	a.mouse.pressed = true

	switch {
	case ev.Mod.Has(backend.ModAlt):
		a.mouse.rectangle = true
		return a.exec(editor.RectangleStart{Pos: pos})
	case ev.Mod.Has(backend.ModCtrl):
		return a.exec(editor.ToggleCursorAt{Pos: pos})
	case ev.Mod.Has(backend.ModShift):
		return a.exec(editor.ExtendTo{Pos: pos})
	}

	double := !a.mouse.lastClick.IsZero() && now.Sub(a.mouse.lastClick) < doubleClickInterval && pos == a.mouse.lastPos
	a.mouse.lastClick, a.mouse.lastPos = now, pos
	changed := a.exec(editor.SetCursor{Pos: pos})
	if double {
		a.mouse.lastClick = time.Time{}
		changed = a.exec(editor.SelectWord{}) || changed
	}
	return changed
}

func (a *App) release() bool {
	if !a.mouse.pressed {
		return false
	}
	a.mouse.pressed = false
	if a.mouse.rectangle {
		a.mouse.rectangle = false
		return a.exec(editor.RectangleFinish{})
	}
	return false
}
