package frame

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight-alpha RGBA color. A is the opacity used when the
// color is blended onto the frame.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Transparent = Color{}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ParseHex parses "#RGB", "#RRGGBB" or "#RRGGBBAA", with or without the
// leading '#'.
func ParseHex(s string) (Color, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	alpha := uint8(255)
	if len(s) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		alpha, s = a, s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// WithAlpha returns c with opacity a.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Mix interpolates between c and other in RGB space. t = 0 gives c.
func (c Color) Mix(other Color, t float64) Color {
	t = min(max(t, 0), 1)
	m := c.colorful().BlendRgb(other.colorful(), t)
	r, g, b := m.Clamped().RGB255()
	a := float64(c.A)*(1-t) + float64(other.A)*t
	return Color{R: r, G: g, B: b, A: uint8(a + 0.5)}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Pack returns c in the frame's native 0x00RRGGBB layout. Alpha is
// dropped.
func (c Color) Pack() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack converts a native pixel to an opaque color.
func Unpack(p uint32) Color {
	return RGB(uint8(p>>16), uint8(p>>8), uint8(p))
}

// RGBA implements color.Color with premultiplied components.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A) * 0x101
	r = uint32(c.R) * 0x101 * a / 0xffff
	g = uint32(c.G) * 0x101 * a / 0xffff
	b = uint32(c.B) * 0x101 * a / 0xffff
	return r, g, b, a
}

// String returns "#RRGGBB", or "#RRGGBBAA" when c is not opaque.
func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Blend composites src over the native pixel dst with opacity alpha,
// computing dst*(1-a) + src*a per channel.
func Blend(dst uint32, src Color, alpha uint8) uint32 {
	switch alpha {
	case 0:
		return dst
	case 255:
		return src.Pack()
	}
	a := uint32(alpha)
	inv := 255 - a
	mix := func(d, s uint32) uint32 {
		return (d*inv + s*a + 127) / 255
	}
	r := mix(dst>>16&0xff, uint32(src.R))
	g := mix(dst>>8&0xff, uint32(src.G))
	b := mix(dst&0xff, uint32(src.B))
	return r<<16 | g<<8 | b
}

// mulAlpha scales two 8-bit opacities.
func mulAlpha(a, b uint8) uint8 {
	return uint8((uint32(a)*uint32(b) + 127) / 255)
}
