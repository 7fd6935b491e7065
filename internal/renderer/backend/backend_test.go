package backend

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scribe/internal/renderer/frame"
)

func testFrame(w, h int) *frame.Frame {
	f := frame.New(w, h)
	f.Clear(frame.RGB(0xff, 0, 0))
	f.SetPixel(0, 1, frame.RGB(0, 0, 0xff))
	return f
}

func TestNullPresenter(t *testing.T) {
	n := NewNull(8, 4)
	if err := n.Init(); err != nil {
		t.Fatal(err)
	}
	if w, h := n.Size(); w != 8 || h != 4 {
		t.Errorf("Size() = %d, %d", w, h)
	}
	if err := n.Present(testFrame(8, 4)); err != nil {
		t.Fatal(err)
	}
	pix, w, h := n.Last()
	if n.Presented() != 1 || w != 8 || h != 4 || pix[8] != 0x0000ff {
		t.Errorf("last frame = %d frames, %dx%d, pix[8] %06x", n.Presented(), w, h, pix[8])
	}

	var resized [2]int
	n.OnResize(func(w, h int) { resized = [2]int{w, h} })
	n.Resize(3, 2)
	if resized != [2]int{3, 2} {
		t.Errorf("resize callback got %v", resized)
	}
	if ev := n.PollEvent(); ev.Type != EventResize || ev.Width != 3 {
		t.Errorf("PollEvent() = %+v", ev)
	}

	n.Shutdown()
	if err := n.Present(testFrame(1, 1)); !errors.Is(err, ErrClosed) {
		t.Errorf("Present after Shutdown = %v, want ErrClosed", err)
	}
}

func TestEncodePNG(t *testing.T) {
	tests := []struct {
		name         string
		w, h, scale  int
		wantW, wantH int
	}{
		{"plain", 4, 3, 1, 4, 3},
		{"scaled", 4, 3, 3, 12, 9},
		{"empty", 0, 0, 2, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodePNG(&buf, testFrame(tt.w, tt.h), tt.scale); err != nil {
				t.Fatal(err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			b := img.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("decoded %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
			if tt.w == 0 {
				return
			}
			// The blue pixel at 0,1 covers a whole scale×scale block.
			r, _, bl, _ := img.At(tt.scale-1, 2*tt.scale-1).RGBA()
			if r != 0 || bl != 0xffff {
				t.Errorf("scaled pixel = r %x b %x", r, bl)
			}
		})
	}
}

func TestPNGPresenter(t *testing.T) {
	dir := t.TempDir()
	p := NewPNG(filepath.Join(dir, "frame-%d.png"), 4, 3)
	if err := p.Init(); err != nil {
		t.Fatal(err)
	}
	for range 2 {
		if err := p.Present(testFrame(4, 3)); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"frame-0.png", "frame-1.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if p.Frames() != 2 {
		t.Errorf("Frames() = %d", p.Frames())
	}

	if err := NewPNG("", 1, 1).Init(); err == nil {
		t.Error("Init without a path should fail")
	}
	p.Shutdown()
	if err := p.Present(testFrame(1, 1)); !errors.Is(err, ErrClosed) {
		t.Errorf("Present after Shutdown = %v", err)
	}
}

func TestTerminalHalfBlocks(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatal(err)
	}
	defer term.Shutdown()

	cols, rows := screen.Size()
	w, h := term.Size()
	if w != cols || h != rows*2 {
		t.Fatalf("Size() = %d, %d for a %dx%d screen", w, h, cols, rows)
	}
	if err := term.Present(testFrame(w, h)); err != nil {
		t.Fatal(err)
	}

	red := tcell.NewRGBColor(0xff, 0, 0)
	blue := tcell.NewRGBColor(0, 0, 0xff)
	tests := []struct {
		x      int
		fg, bg tcell.Color
	}{
		{0, red, blue},
		{1, red, red},
	}
	for _, tt := range tests {
		mainc, _, style, _ := screen.GetContent(tt.x, 0) //nolint:staticcheck // GetContent is the correct API
		fg, bg, _ := style.Decompose()
		if mainc != halfBlock || fg != tt.fg || bg != tt.bg {
			t.Errorf("cell %d = %q fg %v bg %v", tt.x, mainc, fg, bg)
		}
	}
}

func TestTerminalSmallFrame(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen, WithCellScale(2))
	if err := term.Init(); err != nil {
		t.Fatal(err)
	}
	// A frame smaller than the screen, as right after a resize.
	if err := term.Present(testFrame(3, 3)); err != nil {
		t.Fatal(err)
	}
	if err := term.Present(frame.New(0, 0)); err != nil {
		t.Fatal(err)
	}
	term.Shutdown()
	if err := term.Present(testFrame(1, 1)); !errors.Is(err, ErrClosed) {
		t.Errorf("Present after Shutdown = %v", err)
	}
}

func TestTerminalEvents(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatal(err)
	}
	defer term.Shutdown()

	term.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'x'})
	var ev Event
	for range 5 {
		if ev = term.PollEvent(); ev.Type == EventKey {
			break
		}
	}
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'x' {
		t.Errorf("PollEvent() = %+v", ev)
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyEnter, KeyEnter},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyTab, KeyTab},
		{tcell.KeyCtrlZ, KeyCtrlZ},
		{tcell.KeyCtrlA, KeyCtrlA},
		{tcell.KeyPgDn, KeyPageDown},
		{tcell.KeyF5, KeyNone},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for k := KeyRune; k <= KeyCtrlZ; k++ {
		if k == KeyCtrlH || k == KeyCtrlI || k == KeyCtrlM {
			continue
		}
		if got := convertKey(convertToTcellKey(k)); got != k {
			t.Errorf("key %v does not round-trip: got %v", k, got)
		}
	}
	if CtrlKey('d') != KeyCtrlD || CtrlKey('!') != KeyNone {
		t.Error("CtrlKey mismatch")
	}
	if m := convertMod(convertToTcellMod(ModShift | ModAlt)); m != ModShift|ModAlt {
		t.Errorf("mods = %v", m)
	}
}

func TestTerminalRewritesOnlyChangedRows(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatal(err)
	}
	defer term.Shutdown()

	w, h := term.Size()
	if err := term.Present(testFrame(w, h)); err != nil {
		t.Fatal(err)
	}

	// Scribble on the screen behind the presenter's back. An identical
	// frame must leave the scribble alone; a changed row must repaint.
	screen.SetContent(0, 0, 'x', nil, tcell.StyleDefault)
	screen.SetContent(0, 3, 'x', nil, tcell.StyleDefault)
	f := testFrame(w, h)
	f.SetPixel(5, 6, frame.RGB(0, 0xff, 0))
	if err := term.Present(f); err != nil {
		t.Fatal(err)
	}

	if mainc, _, _, _ := screen.GetContent(0, 0); mainc != 'x' { //nolint:staticcheck // GetContent is the correct API
		t.Errorf("unchanged row 0 was rewritten: %q", mainc)
	}
	if mainc, _, _, _ := screen.GetContent(0, 3); mainc != halfBlock { //nolint:staticcheck // GetContent is the correct API
		t.Errorf("changed row 3 was not rewritten: %q", mainc)
	}
}
