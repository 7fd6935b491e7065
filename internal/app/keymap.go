package app

import (
	"github.com/dshills/scribe/internal/editor"
	"github.com/dshills/scribe/internal/renderer/backend"
)

// appAction is a binding handled by the application rather than the
// editor.
type appAction int

const (
	actionNone appAction = iota
	actionSave
	actionQuit
)

// chord is a key plus the modifiers that matter for binding.
type chord struct {
	key backend.Key
	mod backend.ModMask
}

const bindMods = backend.ModShift | backend.ModCtrl | backend.ModAlt

// binding is what a chord resolves to: an editor command or an app
// action.
type binding struct {
	cmd    editor.Command
	action appAction
}

var keyBindings = defaultBindings()

func defaultBindings() map[chord]binding {
	m := make(map[chord]binding)
	bind := func(k backend.Key, mod backend.ModMask, cmd editor.Command) {
		m[chord{k, mod}] = binding{cmd: cmd}
	}
	motion := func(k backend.Key, mod backend.ModMask, dir editor.Direction) {
		bind(k, mod, editor.MoveCursor{Dir: dir})
		bind(k, mod|backend.ModShift, editor.ExtendSelection{Dir: dir})
	}

	motion(backend.KeyLeft, 0, editor.Left)
	motion(backend.KeyRight, 0, editor.Right)
	motion(backend.KeyUp, 0, editor.Up)
	motion(backend.KeyDown, 0, editor.Down)
	motion(backend.KeyLeft, backend.ModCtrl, editor.WordLeft)
	motion(backend.KeyRight, backend.ModCtrl, editor.WordRight)
	motion(backend.KeyLeft, backend.ModAlt, editor.WordLeft)
	motion(backend.KeyRight, backend.ModAlt, editor.WordRight)
	motion(backend.KeyHome, 0, editor.LineStart)
	motion(backend.KeyEnd, 0, editor.LineEnd)
	motion(backend.KeyHome, backend.ModCtrl, editor.DocumentStart)
	motion(backend.KeyEnd, backend.ModCtrl, editor.DocumentEnd)
	motion(backend.KeyPageUp, 0, editor.PageUp)
	motion(backend.KeyPageDown, 0, editor.PageDown)

	bind(backend.KeyUp, backend.ModAlt, editor.AddCursorAbove{})
	bind(backend.KeyDown, backend.ModAlt, editor.AddCursorBelow{})

	bind(backend.KeyEscape, 0, editor.CollapseCursors{})
	bind(backend.KeyEnter, 0, editor.InsertNewline{})
	bind(backend.KeyBacktab, 0, editor.Unindent{})
	bind(backend.KeyBacktab, backend.ModShift, editor.Unindent{})
	bind(backend.KeyBackspace, 0, editor.DeleteBackward{})
	bind(backend.KeyBackspace, backend.ModAlt, editor.DeleteWordBackward{})
	bind(backend.KeyBackspace, backend.ModCtrl, editor.DeleteWordBackward{})
	bind(backend.KeyDelete, 0, editor.DeleteForward{})
	bind(backend.KeyDelete, backend.ModAlt, editor.DeleteWordForward{})
	bind(backend.KeyDelete, backend.ModCtrl, editor.DeleteWordForward{})

	ctrl := map[rune]editor.Command{
		'a': editor.SelectAll{},
		'b': editor.Duplicate{},
		'c': editor.Copy{},
		'd': editor.SelectNextOccurrence{},
		'e': editor.ExpandSelection{},
		'g': editor.SelectAllOccurrences{},
		'k': editor.DeleteLine{},
		'l': editor.SelectLine{},
		'r': editor.ShrinkSelection{},
		'u': editor.UnselectOccurrence{},
		'v': editor.Paste{},
		'w': editor.SelectWord{},
		'x': editor.Cut{},
		'y': editor.Redo{},
		'z': editor.Undo{},
	}
	for letter, cmd := range ctrl {
		bind(backend.CtrlKey(letter), 0, cmd)
	}
	m[chord{backend.CtrlKey('s'), 0}] = binding{action: actionSave}
	m[chord{backend.CtrlKey('q'), 0}] = binding{action: actionQuit}
	return m
}

// translateKey resolves a key event. Printable runes insert themselves;
// Tab indents when any cursor has a selection and inserts a tab
// otherwise.
func translateKey(ev backend.Event, hasSelection bool) binding {
	mod := ev.Mod & bindMods
	if ev.Key >= backend.KeyCtrlA && ev.Key <= backend.KeyCtrlZ {
		mod &^= backend.ModCtrl
	}

	switch ev.Key {
	case backend.KeyRune:
		if mod&(backend.ModCtrl|backend.ModAlt) != 0 || ev.Rune < ' ' {
			return binding{}
		}
		return binding{cmd: editor.InsertChar{Char: ev.Rune}}
	case backend.KeyTab:
		if mod != 0 {
			return binding{}
		}
		if hasSelection {
			return binding{cmd: editor.Indent{}}
		}
		return binding{cmd: editor.InsertChar{Char: '\t'}}
	}
	return keyBindings[chord{ev.Key, mod}]
}
