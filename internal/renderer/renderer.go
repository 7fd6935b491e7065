package renderer

import (
	"fmt"
	"image"
	"strconv"
	"time"

	"github.com/dshills/scribe/internal/engine/cursor"
	"github.com/dshills/scribe/internal/renderer/backend"
	blink "github.com/dshills/scribe/internal/renderer/cursor"
	"github.com/dshills/scribe/internal/renderer/frame"
	"github.com/dshills/scribe/internal/renderer/glyph"
	"github.com/dshills/scribe/internal/textutil"
)

// Logger is the logging surface the compositor needs.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Options configures the compositor.
type Options struct {
	// Font
	FontSize    float32 // Pixel size passed to the glyph cache
	LineSpacing float32 // Multiplier on the font's line height

	// Cursor
	CursorStyle blink.Style   // Cursor shape
	CursorWidth int           // Bar cursor width in pixels
	BlinkRate   time.Duration // Toggle interval, zero disables blinking

	// Gutter
	GutterChars   int // Minimum width of the line number column in cells
	GutterPadding int // Pixels between line numbers and the border
	TextPadding   int // Pixels between the border and the text

	ShowStatus bool // Reserve the bottom line for the status bar
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		FontSize:      16,
		LineSpacing:   1,
		CursorStyle:   blink.StyleBar,
		CursorWidth:   2,
		BlinkRate:     blink.DefaultBlinkRate,
		GutterChars:   5,
		GutterPadding: 4,
		TextPadding:   8,
		ShowStatus:    true,
	}
}

// Stats counts compositor work.
type Stats struct {
	Frames        uint64
	GlyphsDrawn   uint64
	GlyphsMissing uint64
}

// Compositor draws RenderStates into a frame and hands it to a presenter.
// It owns the frame, the glyph cache reference and the blink state; it is
// not safe for concurrent use.
type Compositor struct {
	opts      Options
	theme     Theme
	cache     *glyph.Cache
	presenter backend.Presenter
	blinker   *blink.Blinker
	log       Logger

	frame   *frame.Frame
	layout  Layout
	metrics glyph.Metrics
	stats   Stats
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithTheme sets the color table.
func WithTheme(t Theme) Option {
	return func(c *Compositor) { c.theme = t }
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(c *Compositor) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a compositor. A nil presenter makes the present stage a
// no-op, which is what stage tests want.
func New(p backend.Presenter, cache *glyph.Cache, opts Options, copts ...Option) *Compositor {
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultOptions().FontSize
	}
	c := &Compositor{
		opts:      opts,
		theme:     DefaultTheme(),
		cache:     cache,
		presenter: p,
		blinker:   blink.NewBlinker(opts.BlinkRate, time.Now()),
		log:       nopLogger{},
		frame:     frame.New(0, 0),
	}
	for _, opt := range copts {
		opt(c)
	}
	c.metrics = cache.Metrics(opts.FontSize)
	return c
}

// Frame returns the framebuffer of the last pass.
func (c *Compositor) Frame() *frame.Frame { return c.frame }

// Layout returns the geometry of the last pass.
func (c *Compositor) Layout() Layout { return c.layout }

// Theme returns the color table.
func (c *Compositor) Theme() Theme { return c.theme }

// SetTheme replaces the color table.
func (c *Compositor) SetTheme(t Theme) { c.theme = t }

// Options returns the current options.
func (c *Compositor) Options() Options { return c.opts }

// SetOptions replaces the options and refreshes font metrics.
func (c *Compositor) SetOptions(opts Options) {
	if opts.FontSize <= 0 {
		opts.FontSize = c.opts.FontSize
	}
	c.opts = opts
	c.metrics = c.cache.Metrics(opts.FontSize)
	c.blinker = blink.NewBlinker(opts.BlinkRate, time.Now())
}

// Blinker returns the cursor blink state machine.
func (c *Compositor) Blinker() *blink.Blinker { return c.blinker }

// Stats returns work counters.
func (c *Compositor) Stats() Stats { return c.stats }

// Measure computes the layout a frame of the given size would use, so the
// caller can size the viewport before rendering.
func (c *Compositor) Measure(width, height, lineCount int) Layout {
	return ComputeLayout(width, height, c.metrics, lineCount, c.opts)
}

// Render runs every stage in order. Only the present stage can fail.
func (c *Compositor) Render(st *RenderState) error {
	if st.Lines == nil {
		st.Lines = emptyLines{}
	}
	if !st.Now.IsZero() {
		c.blinker.Update(st.Now)
	}

	width, height := 0, 0
	if c.presenter != nil {
		width, height = c.presenter.Size()
	}
	c.resize(width, height, st)
	c.clear()
	c.currentLines(st)
	c.selections(st)
	c.rectanglePreview(st)
	c.text(st)
	c.cursors(st)
	c.gutter(st)
	c.status(st)
	c.stats.Frames++
	return c.present()
}

// resize is stage 1: match the frame to the surface and recompute layout.
func (c *Compositor) resize(width, height int, st *RenderState) {
	if width != c.frame.Width() || height != c.frame.Height() {
		c.log.Debug("frame resized", "width", width, "height", height)
		c.frame.Resize(width, height)
	}
	c.layout = ComputeLayout(c.frame.Width(), c.frame.Height(), c.metrics, st.Lines.LineCount(), c.opts)
}

// clear is stage 2. The gutter gets its own background once a line fits.
func (c *Compositor) clear() {
	c.frame.Clear(c.theme.Background)
	if c.layout.VisibleLines > 0 {
		c.frame.FillRect(c.layout.Gutter, c.theme.GutterBackground)
	}
}

// visibleRow returns the screen row of line, or false when it is not on
// screen or not in the document.
func (c *Compositor) visibleRow(st *RenderState, line int) (int, bool) {
	row := line - st.TopLine
	if line < 0 || line >= st.Lines.LineCount() || row < 0 || row >= c.layout.VisibleLines {
		return 0, false
	}
	return row, true
}

// rowRect returns the pixel rows of screen row row spanning x0..x1.
func (c *Compositor) rowRect(row, x0, x1 int) image.Rectangle {
	y := c.layout.LineTop(row)
	return image.Rect(x0, y, x1, y+c.layout.LineHeight)
}

// currentLines is stage 3: one highlight per distinct cursor line.
func (c *Compositor) currentLines(st *RenderState) {
	seen := make(map[int]bool, len(st.Cursors))
	body := image.Rect(0, 0, c.layout.Width, c.layout.Text.Max.Y)
	for _, cur := range st.Cursors {
		line := cur.Head().Line
		if seen[line] {
			continue
		}
		seen[line] = true
		row, ok := c.visibleRow(st, line)
		if !ok {
			continue
		}
		c.frame.FillRect(c.rowRect(row, 0, c.layout.Width).Intersect(body), c.theme.CurrentLine)
	}
}

// selections is stage 4. The first and last line of a selection are cut
// at its ends; lines in between fill the whole text width.
func (c *Compositor) selections(st *RenderState) {
	text := c.layout.Text
	for _, cur := range st.Cursors {
		if !cur.HasSelection() {
			continue
		}
		start, end := cur.Selection.Start(), cur.Selection.End()
		first := max(start.Line, st.TopLine)
		last := min(end.Line, st.TopLine+c.layout.VisibleLines-1, st.Lines.LineCount()-1)
		for line := first; line <= last; line++ {
			row, ok := c.visibleRow(st, line)
			if !ok {
				continue
			}
			x0, x1 := text.Min.X, text.Max.X
			if line == start.Line {
				x0 = c.layout.ColumnX(c.visual(st, line, start.Column), st.LeftCol)
			}
			if line == end.Line {
				x1 = c.layout.ColumnX(c.visual(st, line, end.Column), st.LeftCol)
			}
			c.frame.BlendRect(c.rowRect(row, x0, x1).Intersect(text), c.theme.Selection)
		}
	}
}

// rectanglePreview is stage 5: the block being dragged and a marker for
// each caret it would create.
func (c *Compositor) rectanglePreview(st *RenderState) {
	r := st.Rectangle
	if !r.Active {
		return
	}
	text := c.layout.Text
	for line := r.Top; line <= r.Bottom; line++ {
		row, ok := c.visibleRow(st, line)
		if !ok {
			continue
		}
		x0 := c.layout.ColumnX(r.Left, st.LeftCol)
		x1 := c.layout.ColumnX(r.Right, st.LeftCol)
		c.frame.BlendRect(c.rowRect(row, x0, x1).Intersect(text), c.theme.RectangleFill)
	}
	for _, pos := range r.Cursors {
		row, ok := c.visibleRow(st, pos.Line)
		if !ok {
			continue
		}
		x := c.layout.ColumnX(c.visual(st, pos.Line, pos.Column), st.LeftCol)
		c.frame.BlendRect(c.barRect(row, x).Intersect(text), c.theme.RectangleCursor)
	}
}

// text is stage 6: glyphs of every visible line, colored by the
// highlighter, clipped to the text area.
func (c *Compositor) text(st *RenderState) {
	if c.layout.VisibleLines == 0 || c.layout.Text.Empty() {
		return
	}
	right := st.LeftCol + c.layout.VisibleColumns + 1
	for row := 0; row < c.layout.VisibleLines; row++ {
		line := st.TopLine + row
		if line < 0 || line >= st.Lines.LineCount() {
			break
		}
		s := st.Lines.Line(line)
		var spans spanCursor
		if st.Highlighter != nil {
			spans.spans = st.Highlighter.HighlightLine(line, s)
		}
		baseline := c.layout.LineTop(row) + c.layout.Baseline
		visual := 0
		for off, r := range s {
			cells := textutil.RuneCells(r, visual, st.TabWidth)
			if visual >= right {
				break
			}
			if r != '\t' && r != ' ' && visual+cells > st.LeftCol {
				x := c.layout.ColumnX(visual, st.LeftCol)
				c.drawGlyph(r, x, baseline, spans.colorAt(off, c.theme.Foreground), c.layout.Text)
			}
			visual += cells
		}
	}
}

// drawGlyph blends r with its pen at x on baseline y.
func (c *Compositor) drawGlyph(r rune, x, y int, col frame.Color, clip image.Rectangle) {
	g, err := c.cache.GetOrRasterize(r, c.opts.FontSize)
	if err != nil {
		c.stats.GlyphsMissing++
		return
	}
	if g.Empty() {
		return
	}
	at := image.Pt(x+g.BearingX, y-g.BearingY)
	c.frame.DrawMask(at, g.Alpha, g.Width, g.Height, col, clip)
	c.stats.GlyphsDrawn++
}

// drawString draws s one cell per rune starting at x.
func (c *Compositor) drawString(s string, x, y int, col frame.Color, clip image.Rectangle) {
	for _, r := range s {
		if r != ' ' {
			c.drawGlyph(r, x, y, col, clip)
		}
		x += textutil.RuneCells(r, 0, 1) * c.layout.CellWidth
	}
}

func (c *Compositor) visual(st *RenderState, line, col int) int {
	return textutil.VisualColumn(st.Lines.Line(line), col, st.TabWidth)
}

func (c *Compositor) barRect(row, x int) image.Rectangle {
	y := c.layout.LineTop(row)
	return image.Rect(x, y+1, x+max(c.opts.CursorWidth, 1), y+c.layout.LineHeight-1)
}

// cursors is stage 7. Cursors are hidden during the off half of a blink.
func (c *Compositor) cursors(st *RenderState) {
	if !c.blinker.Visible() {
		return
	}
	text := c.layout.Text
	for i, cur := range st.Cursors {
		head := cur.Head()
		row, ok := c.visibleRow(st, head.Line)
		if !ok {
			continue
		}
		col := c.visual(st, head.Line, head.Column)
		if col < st.LeftCol || col > st.LeftCol+c.layout.VisibleColumns {
			continue
		}
		color := c.theme.SecondaryCursor
		if i == st.Active {
			color = c.theme.Cursor
		}
		c.frame.BlendRect(c.cursorRect(row, c.layout.ColumnX(col, st.LeftCol)).Intersect(text), color)
	}
}

func (c *Compositor) cursorRect(row, x int) image.Rectangle {
	y := c.layout.LineTop(row)
	switch c.opts.CursorStyle {
	case blink.StyleBlock:
		return image.Rect(x, y, x+c.layout.CellWidth, y+c.layout.LineHeight)
	case blink.StyleUnderline:
		h := max(c.opts.CursorWidth, 1)
		return image.Rect(x, y+c.layout.LineHeight-h, x+c.layout.CellWidth, y+c.layout.LineHeight)
	default:
		return c.barRect(row, x)
	}
}

// gutter is stage 8: right-aligned line numbers and the border line.
func (c *Compositor) gutter(st *RenderState) {
	if c.layout.VisibleLines == 0 {
		return
	}
	g := c.layout.Gutter
	active := -1
	if len(st.Cursors) > 0 && st.Active >= 0 && st.Active < len(st.Cursors) {
		active = st.Cursors[st.Active].Head().Line
	}
	for row := 0; row < c.layout.VisibleLines; row++ {
		line := st.TopLine + row
		if line < 0 || line >= st.Lines.LineCount() {
			break
		}
		label := strconv.Itoa(line + 1)
		col := c.theme.GutterForeground
		if line == active {
			col = c.theme.GutterActive
		}
		x := g.Min.X + (c.layout.GutterChars-1-len(label))*c.layout.CellWidth
		c.drawString(label, x, c.layout.LineTop(row)+c.layout.Baseline, col, g)
	}
	border := image.Rect(c.layout.BorderX, 0, c.layout.BorderX+1, c.layout.Gutter.Max.Y)
	c.frame.FillRect(border, c.theme.GutterBorder)
}

// status is stage 9: background, segments and separators.
func (c *Compositor) status(st *RenderState) {
	bar := c.layout.Status
	if bar.Empty() {
		return
	}
	c.frame.FillRect(bar, c.theme.StatusBackground)
	if st.Status == nil {
		return
	}
	lay := st.Status.Layout(bar.Dx() / c.layout.CellWidth)
	baseline := bar.Min.Y + c.layout.Baseline
	for _, seg := range append(lay.Left, lay.Right...) {
		c.drawString(seg.Text, bar.Min.X+seg.X*c.layout.CellWidth, baseline, c.theme.StatusForeground, bar)
	}
	inset := c.layout.LineHeight / 4
	for _, sep := range lay.Separators {
		x := bar.Min.X + sep*c.layout.CellWidth
		c.frame.BlendRect(image.Rect(x, bar.Min.Y+inset, x+1, bar.Max.Y-inset), c.theme.StatusSeparator)
	}
}

// present is stage 10.
func (c *Compositor) present() error {
	if c.presenter == nil {
		return nil
	}
	if err := c.presenter.Present(c.frame); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

// CursorRect returns the pixel rectangle of a cursor in the last layout,
// for tests and for placing IME windows.
func (c *Compositor) CursorRect(st *RenderState, cur cursor.Cursor) (image.Rectangle, bool) {
	head := cur.Head()
	row, ok := c.visibleRow(st, head.Line)
	if !ok {
		return image.Rectangle{}, false
	}
	x := c.layout.ColumnX(c.visual(st, head.Line, head.Column), st.LeftCol)
	return c.cursorRect(row, x).Intersect(c.layout.Text), true
}
