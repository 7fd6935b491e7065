package glyph

import (
	"errors"
	"testing"
)

type countingRasterizer struct {
	calls map[rune]int
	fail  rune
}

func (c *countingRasterizer) Rasterize(r rune, size float32) (Glyph, error) {
	if c.calls == nil {
		c.calls = make(map[rune]int)
	}
	c.calls[r]++
	if r == c.fail {
		return Glyph{}, ErrNoGlyph
	}
	n := int(size)
	return Glyph{Width: n, Height: n, Alpha: make([]byte, n*n), Advance: size / 2}, nil
}

func (c *countingRasterizer) Metrics(size float32) Metrics {
	return Metrics{Advance: size / 2, Ascent: size, LineHeight: size * 1.2}
}

func TestCacheHit(t *testing.T) {
	rast := &countingRasterizer{}
	c := NewCache(rast)

	a, err := c.GetOrRasterize('a', 12)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := c.GetOrRasterize('a', 12)
	if a != b {
		t.Error("hit returned a different glyph")
	}
	if rast.calls['a'] != 1 {
		t.Errorf("rasterized %d times", rast.calls['a'])
	}

	g, _ := c.GetOrRasterize('a', 12.5)
	if g.Width != 12 || rast.calls['a'] != 2 {
		t.Errorf("different size shared an entry: width %d, calls %d", g.Width, rast.calls['a'])
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 2 || s.Len != 2 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCacheLRU(t *testing.T) {
	rast := &countingRasterizer{}
	c := NewCache(rast, WithCapacity(2))

	c.GetOrRasterize('a', 10)
	c.GetOrRasterize('b', 10)
	c.GetOrRasterize('a', 10) // a is now most recent
	c.GetOrRasterize('c', 10) // evicts b

	if c.Len() != 2 {
		t.Fatalf("Len() = %d", c.Len())
	}
	c.GetOrRasterize('a', 10)
	if rast.calls['a'] != 1 {
		t.Error("recently used glyph was evicted")
	}
	c.GetOrRasterize('b', 10)
	if rast.calls['b'] != 2 {
		t.Error("least recently used glyph was kept")
	}
	if c.Stats().Evictions != 2 {
		t.Errorf("Evictions = %d", c.Stats().Evictions)
	}
}

func TestCacheUnbounded(t *testing.T) {
	c := NewCache(&countingRasterizer{fail: -1}, WithCapacity(0))
	for r := rune(0); r < 5000; r++ {
		c.GetOrRasterize(r, 1)
	}
	if c.Len() != 5000 {
		t.Errorf("Len() = %d", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
}

func TestCacheError(t *testing.T) {
	rast := &countingRasterizer{fail: 'x'}
	c := NewCache(rast)
	for i := range 3 {
		g, err := c.GetOrRasterize('x', 10)
		if !errors.Is(err, ErrNoGlyph) || g != nil {
			t.Fatalf("lookup %d: glyph %v, err %v", i, g, err)
		}
	}
	if rast.calls['x'] != 1 {
		t.Errorf("missing glyph rasterized %d times, want 1", rast.calls['x'])
	}
	if s := c.Stats(); s.Misses != 1 || s.Hits != 2 || s.Len != 1 {
		t.Errorf("Stats() = %+v", s)
	}

	// A different size is a different entry.
	if _, err := c.GetOrRasterize('x', 11); !errors.Is(err, ErrNoGlyph) {
		t.Fatalf("err = %v", err)
	}
	if rast.calls['x'] != 2 {
		t.Errorf("calls = %d, want 2", rast.calls['x'])
	}
}

func TestFaceRasterizer(t *testing.T) {
	fr, err := NewFaceRasterizer(nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer fr.Close()

	g, err := fr.Rasterize('M', 16)
	if err != nil {
		t.Fatal(err)
	}
	if g.Empty() || len(g.Alpha) != g.Width*g.Height {
		t.Fatalf("glyph %dx%d with %d alpha bytes", g.Width, g.Height, len(g.Alpha))
	}
	if g.Advance <= 0 || g.BearingY <= 0 {
		t.Errorf("Advance %v BearingY %d", g.Advance, g.BearingY)
	}
	var lit bool
	for _, a := range g.Alpha {
		lit = lit || a > 0
	}
	if !lit {
		t.Error("glyph has no coverage")
	}

	space, err := fr.Rasterize(' ', 16)
	if err != nil || space.Advance != g.Advance {
		t.Errorf("space = %+v, %v", space, err)
	}

	m := fr.Metrics(16)
	if m.LineHeight < m.Ascent || m.Advance != g.Advance {
		t.Errorf("Metrics() = %+v", m)
	}
}

func TestBasicRasterizer(t *testing.T) {
	fr := BasicRasterizer()
	g, err := fr.Rasterize('A', 40)
	if err != nil {
		t.Fatal(err)
	}
	if g.Advance != 7 || g.Empty() {
		t.Errorf("glyph = %dx%d advance %v", g.Width, g.Height, g.Advance)
	}
	if m := fr.Metrics(40); m.Advance != 7 || m.LineHeight != 13 {
		t.Errorf("Metrics() = %+v", m)
	}
}

func TestBadFont(t *testing.T) {
	if _, err := NewFaceRasterizer([]byte("not a font"), 96); err == nil {
		t.Error("expected parse error")
	}
}
