package config

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"
)

// Options is the full, typed configuration tree.
type Options struct {
	Editor EditorOptions     `toml:"editor"`
	Render RenderOptions     `toml:"render"`
	Status StatusOptions     `toml:"status"`
	Log    LogOptions        `toml:"log"`
	Theme  map[string]string `toml:"theme"`
}

// EditorOptions configures editing and scrolling.
type EditorOptions struct {
	TabWidth    int     `toml:"tab_width"`
	Margins     Margins `toml:"margins"`
	PageOverlap int     `toml:"page_overlap"`
	// MaxUndo caps the undo history; 0 is unlimited.
	MaxUndo int `toml:"max_undo"`
}

// Margins are the scroll margins kept around the active cursor.
type Margins struct {
	Top    int `toml:"top"`
	Bottom int `toml:"bottom"`
	Left   int `toml:"left"`
	Right  int `toml:"right"`
}

// RenderOptions configures the compositor and glyph rasterizer.
type RenderOptions struct {
	// Font is a path to a TTF/OTF file. Empty selects Go Mono.
	Font        string  `toml:"font"`
	FontSize    float64 `toml:"font_size"`
	DPI         float64 `toml:"dpi"`
	LineSpacing float64 `toml:"line_spacing"`
	// CursorBlinkMS is the blink half-period; 0 disables blinking.
	CursorBlinkMS int    `toml:"cursor_blink_ms"`
	CursorWidth   int    `toml:"cursor_width"`
	CursorStyle   string `toml:"cursor_style"`
	// GlyphCacheCapacity bounds the glyph cache; 0 is unbounded.
	GlyphCacheCapacity int  `toml:"glyph_cache_capacity"`
	GutterPadding      int  `toml:"gutter_padding"`
	TextPadding        int  `toml:"text_padding"`
	ShowStatus         bool `toml:"show_status"`
}

// StatusOptions configures the status bar.
type StatusOptions struct {
	Padding          int `toml:"padding"`
	SeparatorSpacing int `toml:"separator_spacing"`
	MessageMS        int `toml:"message_ms"`
}

// LogOptions configures logging.
type LogOptions struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in options.
func Default() Options {
	return Options{
		Editor: EditorOptions{
			TabWidth:    4,
			Margins:     Margins{Top: 1, Bottom: 1, Left: 4, Right: 4},
			PageOverlap: 2,
			MaxUndo:     1000,
		},
		Render: RenderOptions{
			FontSize:           16,
			DPI:                72,
			LineSpacing:        1,
			CursorBlinkMS:      500,
			CursorWidth:        2,
			CursorStyle:        "bar",
			GlyphCacheCapacity: 4096,
			GutterPadding:      4,
			TextPadding:        8,
			ShowStatus:         true,
		},
		Status: StatusOptions{
			Padding:          2,
			SeparatorSpacing: 2,
			MessageMS:        3000,
		},
		Log: LogOptions{
			Level:  "info",
			Format: "text",
		},
	}
}

// Clone returns a copy that shares no maps with o.
func (o Options) Clone() Options {
	o.Theme = maps.Clone(o.Theme)
	return o
}

// BlinkRate returns the cursor blink half-period.
func (o Options) BlinkRate() time.Duration {
	return time.Duration(o.Render.CursorBlinkMS) * time.Millisecond
}

// MessageTTL returns how long status messages stay visible.
func (o Options) MessageTTL() time.Duration {
	return time.Duration(o.Status.MessageMS) * time.Millisecond
}

var (
	cursorStyles = []string{"bar", "block", "underline", "underscore"}
	logLevels    = []string{"debug", "info", "warn", "warning", "error"}
	logFormats   = []string{"text", "json"}
)

// Validate normalizes o in place. Counts that are merely negative are
// clamped to zero; values that cannot produce a usable editor are
// rejected with ErrInvalid. All problems are reported together.
func (o *Options) Validate() error {
	var errs []error

	e := &o.Editor
	if e.TabWidth < 1 || e.TabWidth > 16 {
		errs = append(errs, invalid("editor.tab_width", e.TabWidth))
	}
	e.Margins.Top = max(e.Margins.Top, 0)
	e.Margins.Bottom = max(e.Margins.Bottom, 0)
	e.Margins.Left = max(e.Margins.Left, 0)
	e.Margins.Right = max(e.Margins.Right, 0)
	e.PageOverlap = max(e.PageOverlap, 0)
	e.MaxUndo = max(e.MaxUndo, 0)

	r := &o.Render
	if r.FontSize <= 0 {
		errs = append(errs, invalid("render.font_size", r.FontSize))
	}
	if r.DPI < 0 {
		errs = append(errs, invalid("render.dpi", r.DPI))
	}
	if r.LineSpacing <= 0 {
		errs = append(errs, invalid("render.line_spacing", r.LineSpacing))
	}
	if r.CursorWidth < 1 {
		errs = append(errs, invalid("render.cursor_width", r.CursorWidth))
	}
	r.CursorStyle = strings.ToLower(r.CursorStyle)
	if !slices.Contains(cursorStyles, r.CursorStyle) {
		errs = append(errs, invalid("render.cursor_style", r.CursorStyle))
	}
	r.CursorBlinkMS = max(r.CursorBlinkMS, 0)
	r.GlyphCacheCapacity = max(r.GlyphCacheCapacity, 0)
	r.GutterPadding = max(r.GutterPadding, 0)
	r.TextPadding = max(r.TextPadding, 0)

	s := &o.Status
	s.Padding = max(s.Padding, 0)
	s.SeparatorSpacing = max(s.SeparatorSpacing, 0)
	s.MessageMS = max(s.MessageMS, 0)

	o.Log.Level = strings.ToLower(o.Log.Level)
	if !slices.Contains(logLevels, o.Log.Level) {
		errs = append(errs, invalid("log.level", o.Log.Level))
	}
	o.Log.Format = strings.ToLower(o.Log.Format)
	if !slices.Contains(logFormats, o.Log.Format) {
		errs = append(errs, invalid("log.format", o.Log.Format))
	}

	return errors.Join(errs...)
}
