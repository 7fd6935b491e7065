// Package glyph rasterizes characters into alpha masks and caches them.
package glyph

import "errors"

// ErrNoGlyph is returned when neither the font nor its fallback has a
// glyph for a rune.
var ErrNoGlyph = errors.New("glyph: no glyph for rune")

// Glyph is a rasterized character.
type Glyph struct {
	// Width and Height are the size of Alpha in pixels.
	Width, Height int

	// Alpha holds Width*Height coverage bytes, row-major.
	Alpha []byte

	// Advance is the horizontal distance to the next glyph's origin.
	Advance float32

	// BearingX is the offset from the pen position to the bitmap's left
	// edge. BearingY is the distance from the baseline up to the bitmap's
	// top edge.
	BearingX, BearingY int
}

// Empty returns true if the glyph has no visible pixels, as for a space.
func (g *Glyph) Empty() bool {
	return g.Width == 0 || g.Height == 0
}

// Metrics describes a font at one size.
type Metrics struct {
	// Advance is the width of one monospace cell.
	Advance float32
	// Ascent and Descent are the extents above and below the baseline.
	Ascent, Descent float32
	// LineHeight is the recommended baseline-to-baseline distance.
	LineHeight float32
}

// Rasterizer turns a rune at a pixel size into a glyph.
type Rasterizer interface {
	Rasterize(r rune, size float32) (Glyph, error)
	Metrics(size float32) Metrics
}
