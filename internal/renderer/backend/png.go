package backend

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/dshills/scribe/internal/renderer/frame"
)

// PNG writes each presented frame to a PNG file. A path containing a %d
// verb is formatted with the frame number; any other path is overwritten
// on every frame.
type PNG struct {
	path          string
	width, height int
	scale         int
	frames        int
	closed        bool
	log           Logger
}

// PNGOption configures a PNG presenter.
type PNGOption func(*PNG)

// WithScale enlarges written images by an integer factor using
// nearest-neighbour sampling, so individual pixels stay sharp.
func WithScale(n int) PNGOption {
	return func(p *PNG) {
		if n > 0 {
			p.scale = n
		}
	}
}

// WithPNGLogger sets the logger.
func WithPNGLogger(l Logger) PNGOption {
	return func(p *PNG) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPNG creates a presenter that renders at width×height pixels.
func NewPNG(path string, width, height int, opts ...PNGOption) *PNG {
	p := &PNG{
		path:   path,
		width:  max(width, 0),
		height: max(height, 0),
		scale:  1,
		log:    nopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PNG) Init() error {
	if p.path == "" {
		return fmt.Errorf("backend: png presenter needs an output path")
	}
	p.closed = false
	return nil
}

func (p *PNG) Shutdown() {
	p.closed = true
}

func (p *PNG) Size() (int, int) {
	return p.width, p.height
}

// Frames returns the number of frames written.
func (p *PNG) Frames() int {
	return p.frames
}

func (p *PNG) Present(f *frame.Frame) error {
	if p.closed {
		return ErrClosed
	}
	name := p.path
	if strings.Contains(name, "%d") {
		name = fmt.Sprintf(name, p.frames)
	}
	out, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("backend: create %s: %w", name, err)
	}
	if err := EncodePNG(out, f, p.scale); err != nil {
		out.Close()
		return fmt.Errorf("backend: write %s: %w", name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("backend: close %s: %w", name, err)
	}
	p.frames++
	p.log.Debug("frame written", "path", name, "width", f.Width(), "height", f.Height())
	return nil
}

// EncodePNG writes f to w, enlarged by scale when scale > 1. An empty
// frame is written as a 1×1 transparent image since PNG cannot hold zero
// pixels.
func EncodePNG(w io.Writer, f *frame.Frame, scale int) error {
	var img image.Image = f.RGBA()
	if f.Empty() {
		img = image.NewRGBA(image.Rect(0, 0, 1, 1))
	} else if scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, f.Width()*scale, f.Height()*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}
