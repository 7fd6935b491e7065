package glyph

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultDPI makes a font size in points equal its size in pixels.
const DefaultDPI = 72

// FaceRasterizer rasterizes glyphs from an OpenType font, opening one
// face per size. Runes the font lacks are drawn with basicfont's 7x13
// face.
type FaceRasterizer struct {
	font     *opentype.Font
	dpi      float64
	faces    map[uint32]font.Face
	fallback font.Face
}

// NewFaceRasterizer parses an OpenType or TrueType font. A nil src selects
// Go Mono.
func NewFaceRasterizer(src []byte, dpi float64) (*FaceRasterizer, error) {
	if src == nil {
		src = gomono.TTF
	}
	f, err := opentype.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &FaceRasterizer{
		font:     f,
		dpi:      dpi,
		faces:    make(map[uint32]font.Face),
		fallback: basicfont.Face7x13,
	}, nil
}

// BasicRasterizer returns a rasterizer that ignores size and always draws
// basicfont's 7x13 face. It needs no font data.
func BasicRasterizer() *FaceRasterizer {
	return &FaceRasterizer{faces: make(map[uint32]font.Face), fallback: basicfont.Face7x13}
}

func (fr *FaceRasterizer) face(size float32) font.Face {
	if fr.font == nil || size <= 0 || math.IsNaN(float64(size)) {
		return fr.fallback
	}
	k := math.Float32bits(size)
	if f, ok := fr.faces[k]; ok {
		return f
	}
	f, err := opentype.NewFace(fr.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     fr.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		f = fr.fallback
	}
	fr.faces[k] = f
	return f
}

// Rasterize draws r at size into an alpha mask.
func (fr *FaceRasterizer) Rasterize(r rune, size float32) (Glyph, error) {
	face := fr.face(size)
	dr, mask, mp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok && face != fr.fallback {
		face = fr.fallback
		dr, mask, mp, adv, ok = face.Glyph(fixed.Point26_6{}, r)
	}
	if !ok {
		return Glyph{}, fmt.Errorf("%w %U", ErrNoGlyph, r)
	}
	return Glyph{
		Width:    dr.Dx(),
		Height:   dr.Dy(),
		Alpha:    alphaOf(mask, mp, dr.Dx(), dr.Dy()),
		Advance:  float32(adv) / 64,
		BearingX: dr.Min.X,
		BearingY: -dr.Min.Y,
	}, nil
}

// alphaOf copies w×h coverage values starting at mp out of mask.
func alphaOf(mask image.Image, mp image.Point, w, h int) []byte {
	if w <= 0 || h <= 0 || mask == nil {
		return nil
	}
	out := make([]byte, w*h)
	if a, ok := mask.(*image.Alpha); ok {
		for y := 0; y < h; y++ {
			off := a.PixOffset(mp.X, mp.Y+y)
			copy(out[y*w:(y+1)*w], a.Pix[off:off+w])
		}
		return out
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, alpha := mask.At(mp.X+x, mp.Y+y).RGBA()
			out[y*w+x] = uint8(alpha >> 8)
		}
	}
	return out
}

// Metrics returns the face metrics at size. The cell advance comes from
// the glyph for 'M'.
func (fr *FaceRasterizer) Metrics(size float32) Metrics {
	face := fr.face(size)
	m := face.Metrics()
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		adv = m.Height / 2
	}
	return Metrics{
		Advance:    float32(adv) / 64,
		Ascent:     float32(m.Ascent) / 64,
		Descent:    float32(m.Descent) / 64,
		LineHeight: float32(m.Height) / 64,
	}
}

// Close releases the per-size faces.
func (fr *FaceRasterizer) Close() error {
	for k, f := range fr.faces {
		if f != fr.fallback {
			f.Close()
		}
		delete(fr.faces, k)
	}
	return nil
}
