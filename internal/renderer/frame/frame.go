// Package frame provides the CPU pixel buffer the compositor draws into.
package frame

import (
	"image"
	"image/color"
)

// Frame is a width×height buffer of native 0x00RRGGBB pixels. Every write
// is clipped to the buffer's real size, so stale layout from before a
// resize can never write out of range.
type Frame struct {
	width, height int
	pix           []uint32
}

// New creates a frame. Negative sizes are treated as zero.
func New(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize changes the frame size, reusing storage when it is large enough.
// Pixel contents are undefined afterwards.
func (f *Frame) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	n := width * height
	if cap(f.pix) < n {
		f.pix = make([]uint32, n)
	}
	f.pix = f.pix[:n]
	f.width, f.height = width, height
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Empty returns true if the frame has no pixels.
func (f *Frame) Empty() bool { return f.width == 0 || f.height == 0 }

// Rect returns the frame bounds.
func (f *Frame) Rect() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// Pix returns the backing pixel slice, row-major with a stride of Width.
func (f *Frame) Pix() []uint32 { return f.pix }

// Pixel returns the pixel at x, y and false when it is out of range.
func (f *Frame) Pixel(x, y int) (uint32, bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0, false
	}
	return f.pix[y*f.width+x], true
}

// SetPixel writes an opaque pixel. Out-of-range writes are ignored.
func (f *Frame) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.pix[y*f.width+x] = c.Pack()
}

// Clear fills the whole frame with c.
func (f *Frame) Clear(c Color) {
	p := c.Pack()
	for i := range f.pix {
		f.pix[i] = p
	}
}

// FillRect fills r, clipped to the frame, with c ignoring its alpha.
func (f *Frame) FillRect(r image.Rectangle, c Color) {
	r = r.Intersect(f.Rect())
	if r.Empty() {
		return
	}
	p := c.Pack()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := f.pix[y*f.width+r.Min.X : y*f.width+r.Max.X]
		for i := range row {
			row[i] = p
		}
	}
}

// BlendRect composites c over r using c's alpha.
func (f *Frame) BlendRect(r image.Rectangle, c Color) {
	r = r.Intersect(f.Rect())
	if r.Empty() || c.A == 0 {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := f.pix[y*f.width+r.Min.X : y*f.width+r.Max.X]
		for i, d := range row {
			row[i] = Blend(d, c, c.A)
		}
	}
}

// DrawMask blends c through an 8-bit alpha mask of size w×h whose top-left
// corner lands at at. Only pixels inside clip and the frame are written.
func (f *Frame) DrawMask(at image.Point, mask []byte, w, h int, c Color, clip image.Rectangle) {
	if w <= 0 || h <= 0 || len(mask) < w*h {
		return
	}
	dst := image.Rect(at.X, at.Y, at.X+w, at.Y+h).Intersect(clip).Intersect(f.Rect())
	if dst.Empty() {
		return
	}
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		src := mask[(y-at.Y)*w:]
		for x := dst.Min.X; x < dst.Max.X; x++ {
			a := mulAlpha(src[x-at.X], c.A)
			if a == 0 {
				continue
			}
			i := y*f.width + x
			f.pix[i] = Blend(f.pix[i], c, a)
		}
	}
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle { return f.Rect() }

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color {
	p, ok := f.Pixel(x, y)
	if !ok {
		return color.RGBA{}
	}
	return Unpack(p)
}

// RGBA copies the frame into a new image.RGBA.
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(f.Rect())
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			p := f.pix[y*f.width+x]
			o := img.PixOffset(x, y)
			img.Pix[o] = uint8(p >> 16)
			img.Pix[o+1] = uint8(p >> 8)
			img.Pix[o+2] = uint8(p)
			img.Pix[o+3] = 0xff
		}
	}
	return img
}
