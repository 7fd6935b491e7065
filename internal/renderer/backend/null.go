package backend

import (
	"slices"

	"github.com/dshills/scribe/internal/renderer/frame"
)

// Null keeps the last presented frame in memory. It backs headless runs
// and tests.
type Null struct {
	width, height int
	presented     int
	last          []uint32
	lastW, lastH  int
	closed        bool
	resize        func(width, height int)
	events        chan Event
}

// NewNull creates a null presenter reporting the given pixel size.
func NewNull(width, height int) *Null {
	return &Null{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (n *Null) Init() error {
	n.closed = false
	return nil
}

func (n *Null) Shutdown() {
	n.closed = true
}

func (n *Null) Size() (int, int) {
	return n.width, n.height
}

func (n *Null) Present(f *frame.Frame) error {
	if n.closed {
		return ErrClosed
	}
	n.presented++
	n.last = append(n.last[:0], f.Pix()...)
	n.lastW, n.lastH = f.Width(), f.Height()
	return nil
}

func (n *Null) PollEvent() Event {
	return <-n.events
}

func (n *Null) PostEvent(ev Event) {
	select {
	case n.events <- ev:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// Presented returns the number of frames shown.
func (n *Null) Presented() int {
	return n.presented
}

// Last returns a copy of the last presented pixels and their size.
func (n *Null) Last() (pix []uint32, width, height int) {
	return slices.Clone(n.last), n.lastW, n.lastH
}

// OnResize registers a callback for Resize.
func (n *Null) OnResize(fn func(width, height int)) {
	n.resize = fn
}

// Resize simulates a surface size change and queues an EventResize.
func (n *Null) Resize(width, height int) {
	n.width, n.height = width, height
	if n.resize != nil {
		n.resize(width, height)
	}
	n.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
