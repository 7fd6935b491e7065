package backend

import (
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/dshills/scribe/internal/renderer/dirty"
	"github.com/dshills/scribe/internal/renderer/frame"
)

// halfBlock draws its top half in the foreground color and its bottom
// half in the background color, giving two pixels per cell.
const halfBlock = '▀'

// Terminal presents frames on a tcell screen, two pixel rows per cell.
// With a scale above one, each cell samples a scale×2·scale block of the
// frame, so a frame rendered at a readable font size still fits.
type Terminal struct {
	screen tcell.Screen
	scale  int
	closed bool
	resize func(width, height int)
	log    Logger
	img    *image.RGBA
	damage *dirty.Tracker
	row    []uint64
	mu     sync.Mutex
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithCellScale sets how many frame pixels map onto one terminal cell
// column.
func WithCellScale(n int) TerminalOption {
	return func(t *Terminal) {
		if n > 0 {
			t.scale = n
		}
	}
}

// WithTerminalLogger sets the logger.
func WithTerminalLogger(l Logger) TerminalOption {
	return func(t *Terminal) {
		if l != nil {
			t.log = l
		}
	}
}

// NewTerminal creates a terminal presenter on the controlling terminal.
func NewTerminal(opts ...TerminalOption) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen, opts...), nil
}

// NewTerminalWithScreen creates a terminal presenter on an existing
// screen, such as a tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen, opts ...TerminalOption) *Terminal {
	t := &Terminal{screen: screen, scale: 1, log: nopLogger{}, damage: dirty.NewTracker()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	t.screen.HideCursor()
	t.damage.MarkFullRedraw()
	t.closed = false
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	t.screen.Fini()
}

// Size returns the pixel size that exactly covers the screen.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cols, rows := t.screen.Size()
	return cols * t.scale, rows * 2 * t.scale
}

// Scale returns the number of frame pixels per cell column.
func (t *Terminal) Scale() int {
	return t.scale
}

// OnResize registers a callback run when the screen size changes.
func (t *Terminal) OnResize(fn func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resize = fn
}

func (t *Terminal) Present(f *frame.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}

	t.damage.Resize(cols, rows)
	if cap(t.row) < cols {
		t.row = make([]uint64, cols)
	}
	row := t.row[:cols]

	pixel := t.sampler(f, cols, rows*2)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			row[x] = uint64(pixel(x, 2*y))<<32 | uint64(pixel(x, 2*y+1))
		}
		t.damage.Update(y, row)
	}

	spans := t.damage.DirtySpans()
	for _, span := range spans {
		for y := span.Start; y < span.End; y++ {
			for x, cell := range t.damage.Row(y) {
				top, bottom := uint32(cell>>32), uint32(cell)
				style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
				t.screen.SetContent(x, y, halfBlock, nil, style)
			}
		}
	}
	t.damage.Clear()
	if len(spans) > 0 {
		t.screen.Show()
	}
	return nil
}

// sampler returns a lookup of the frame downscaled to w×h pixels. Pixels
// outside the frame read as black.
func (t *Terminal) sampler(f *frame.Frame, w, h int) func(x, y int) uint32 {
	if t.scale == 1 || f.Empty() {
		return func(x, y int) uint32 {
			p, _ := f.Pixel(x, y)
			return p
		}
	}
	if t.img == nil || t.img.Rect.Dx() != w || t.img.Rect.Dy() != h {
		t.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	src := f.RGBA()
	// The frame may not match the screen after a resize; scale only the
	// part that covers it.
	sr := image.Rect(0, 0, w*t.scale, h*t.scale).Intersect(src.Rect)
	dr := image.Rect(0, 0, sr.Dx()/t.scale, sr.Dy()/t.scale)
	xdraw.Draw(t.img, t.img.Rect, image.Black, image.Point{}, xdraw.Src)
	xdraw.ApproxBiLinear.Scale(t.img, dr, src, sr, xdraw.Src, nil)
	img := t.img
	return func(x, y int) uint32 {
		o := img.PixOffset(x, y)
		return uint32(img.Pix[o])<<16 | uint32(img.Pix[o+1])<<8 | uint32(img.Pix[o+2])
	}
}

func tcellColor(p uint32) tcell.Color {
	return tcell.NewRGBColor(int32(p>>16&0xff), int32(p>>8&0xff), int32(p&0xff))
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventInterrupt}
	}
	return t.convertEvent(ev)
}

func (t *Terminal) PostEvent(event Event) {
	switch event.Type {
	case EventKey:
		tcellEv := tcell.NewEventKey(convertToTcellKey(event.Key), event.Rune, convertToTcellMod(event.Mod))
		_ = t.screen.PostEvent(tcellEv) // best-effort; event queue may be full
	case EventInterrupt:
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// convertEvent converts tcell events to our Event type.
func (t *Terminal) convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
			Mod:         convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		cols, rows := e.Size()
		w, h := cols*t.scale, rows*2*t.scale
		t.mu.Lock()
		fn := t.resize
		t.damage.MarkFullRedraw()
		t.mu.Unlock()
		if fn != nil {
			fn(w, h)
		}
		t.log.Debug("terminal resized", "cols", cols, "rows", rows)
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventPaste:
		return Event{Type: EventPaste, Focused: e.Start()}

	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts tcell key to our Key type. tcell's Ctrl+H, Ctrl+I
// and Ctrl+M share codes with Backspace, Tab and Enter and report as
// those.
func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBacktab:
		return KeyBacktab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyPgUp:
		return KeyPageUp
	case tcell.KeyPgDn:
		return KeyPageDown
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyCtrlA + Key(k-tcell.KeyCtrlA)
	}
	return KeyNone
}

// convertToTcellKey converts our Key to tcell.Key.
func convertToTcellKey(k Key) tcell.Key {
	switch k {
	case KeyRune:
		return tcell.KeyRune
	case KeyEscape:
		return tcell.KeyEscape
	case KeyEnter:
		return tcell.KeyEnter
	case KeyTab:
		return tcell.KeyTab
	case KeyBacktab:
		return tcell.KeyBacktab
	case KeyBackspace:
		return tcell.KeyBackspace2
	case KeyDelete:
		return tcell.KeyDelete
	case KeyHome:
		return tcell.KeyHome
	case KeyEnd:
		return tcell.KeyEnd
	case KeyPageUp:
		return tcell.KeyPgUp
	case KeyPageDown:
		return tcell.KeyPgDn
	case KeyUp:
		return tcell.KeyUp
	case KeyDown:
		return tcell.KeyDown
	case KeyLeft:
		return tcell.KeyLeft
	case KeyRight:
		return tcell.KeyRight
	}
	if k >= KeyCtrlA && k <= KeyCtrlZ {
		return tcell.KeyCtrlA + tcell.Key(k-KeyCtrlA)
	}
	return tcell.KeyRune
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}

// convertToTcellMod converts our ModMask to tcell.ModMask.
func convertToTcellMod(m ModMask) tcell.ModMask {
	var result tcell.ModMask
	if m&ModShift != 0 {
		result |= tcell.ModShift
	}
	if m&ModCtrl != 0 {
		result |= tcell.ModCtrl
	}
	if m&ModAlt != 0 {
		result |= tcell.ModAlt
	}
	if m&ModMeta != 0 {
		result |= tcell.ModMeta
	}
	return result
}

// convertMouseButton converts tcell button mask to our MouseButton.
func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseMiddle
	case b&tcell.Button3 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	case b&tcell.WheelLeft != 0:
		return MouseWheelLeft
	case b&tcell.WheelRight != 0:
		return MouseWheelRight
	default:
		return MouseNone
	}
}
