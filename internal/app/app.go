// Package app wires a document, the editor, the compositor and a display
// surface into a running editor.
//
// The application is single threaded in the sense that matters: input
// events, config reloads and timer ticks are all received on one
// goroutine, which mutates editor state and then renders. Only event
// polling and file watching run elsewhere, and they hand their results
// over through channels.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/dshills/scribe/internal/config"
	"github.com/dshills/scribe/internal/editor"
	"github.com/dshills/scribe/internal/renderer"
	"github.com/dshills/scribe/internal/renderer/backend"
	blink "github.com/dshills/scribe/internal/renderer/cursor"
	"github.com/dshills/scribe/internal/renderer/glyph"
	"github.com/dshills/scribe/internal/renderer/statusline"
	"github.com/dshills/scribe/internal/renderer/viewport"
)

// frameInterval paces timer ticks. Frames are only drawn when something
// changed.
const frameInterval = time.Second / 60

// App is a running editor over one document.
type App struct {
	opts      config.Options
	log       *Logger
	presenter backend.Presenter

	doc    *editor.Document
	ed     *editor.Editor
	comp   *renderer.Compositor
	rast   glyph.Rasterizer
	status *statusline.StatusLine

	highlighter renderer.Highlighter
	now         func() time.Time
	save        func(*editor.Document) error

	mouse   mouseState
	dirty   bool
	running atomic.Bool
	reload  chan config.Options
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(l *Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// WithRasterizer replaces the font configured in the options.
func WithRasterizer(r glyph.Rasterizer) Option {
	return func(a *App) { a.rast = r }
}

// WithHighlighter colors visible lines.
func WithHighlighter(h renderer.Highlighter) Option {
	return func(a *App) { a.highlighter = h }
}

// WithSaver replaces SaveDocument.
func WithSaver(fn func(*editor.Document) error) Option {
	return func(a *App) {
		if fn != nil {
			a.save = fn
		}
	}
}

// New assembles an application that edits doc and shows it on p. The
// presenter is initialized by Run, not here.
func New(doc *editor.Document, p backend.Presenter, opts config.Options, aopts ...Option) (*App, error) {
	if p == nil {
		return nil, &InitError{Component: "presenter", Err: errors.New("nil presenter")}
	}
	a := &App{
		opts:      opts.Clone(),
		log:       NullLogger,
		presenter: p,
		doc:       doc,
		now:       time.Now,
		save:      SaveDocument,
		reload:    make(chan config.Options, 1),
	}
	for _, opt := range aopts {
		opt(a)
	}

	if a.rast == nil {
		r, err := loadRasterizer(opts.Render)
		if err != nil {
			return nil, &InitError{Component: "font", Err: err}
		}
		a.rast = r
	}
	theme, err := renderer.ThemeFromMap(opts.Theme)
	if err != nil {
		return nil, &InitError{Component: "theme", Err: err}
	}

	cache := glyph.NewCache(a.rast, glyph.WithCapacity(opts.Render.GlyphCacheCapacity))
	a.comp = renderer.New(p, cache, rendererOptions(opts),
		renderer.WithTheme(theme),
		renderer.WithLogger(a.log.WithComponent("renderer")))

	vp := viewport.New(0, 0)
	applyViewport(vp, opts.Editor)
	a.ed = editor.New(doc,
		editor.WithLogger(a.log.WithComponent("editor")),
		editor.WithTabWidth(opts.Editor.TabWidth),
		editor.WithViewport(vp),
		editor.OnActivity(a.activity),
		editor.OnMessage(a.message))

	a.status = statusline.New()
	a.status.Padding = opts.Status.Padding
	a.status.Spacing = opts.Status.SeparatorSpacing
	a.dirty = true
	return a, nil
}

func loadRasterizer(r config.RenderOptions) (*glyph.FaceRasterizer, error) {
	var src []byte
	if r.Font != "" {
		data, err := os.ReadFile(r.Font)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		src = data
	}
	return glyph.NewFaceRasterizer(src, r.DPI)
}

func rendererOptions(o config.Options) renderer.Options {
	ro := renderer.DefaultOptions()
	ro.FontSize = float32(o.Render.FontSize)
	ro.LineSpacing = float32(o.Render.LineSpacing)
	ro.CursorStyle = blink.StyleFromString(o.Render.CursorStyle)
	ro.CursorWidth = o.Render.CursorWidth
	ro.BlinkRate = o.BlinkRate()
	ro.GutterPadding = o.Render.GutterPadding
	ro.TextPadding = o.Render.TextPadding
	ro.ShowStatus = o.Render.ShowStatus
	return ro
}

func applyViewport(vp *viewport.Viewport, e config.EditorOptions) {
	vp.SetMargins(viewport.MarginConfig{
		Top:    e.Margins.Top,
		Bottom: e.Margins.Bottom,
		Left:   e.Margins.Left,
		Right:  e.Margins.Right,
	})
	vp.SetPageOverlap(e.PageOverlap)
}

// Editor returns the editor.
func (a *App) Editor() *editor.Editor { return a.ed }

// Document returns the edited document.
func (a *App) Document() *editor.Document { return a.doc }

// Compositor returns the compositor.
func (a *App) Compositor() *renderer.Compositor { return a.comp }

// Status returns the status bar model.
func (a *App) Status() *statusline.StatusLine { return a.status }

// Options returns the options in effect.
func (a *App) Options() config.Options { return a.opts.Clone() }

// Dirty reports whether the next Render would show something new.
func (a *App) Dirty() bool { return a.dirty }

func (a *App) activity() {
	a.comp.Blinker().Reset(a.now())
}

func (a *App) message(text string) {
	a.status.SetMessage(text, a.opts.MessageTTL(), a.now())
	a.dirty = true
}

func (a *App) exec(cmd editor.Command) bool {
	changed := a.ed.Execute(cmd)
	if changed {
		a.dirty = true
	}
	return changed
}

// HandleEvent applies one input event. It returns ErrQuit when the user
// asked to exit; every other outcome, including a failed save, is shown
// in the status bar.
func (a *App) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		b := translateKey(ev, a.ed.Cursors().HasSelection())
		switch b.action {
		case actionQuit:
			return ErrQuit
		case actionSave:
			_ = a.Save()
			return nil
		}
		if b.cmd != nil {
			a.exec(b.cmd)
		}
	case backend.EventMouse:
		a.handleMouse(ev, a.now())
	case backend.EventResize:
		a.dirty = true
	case backend.EventFocus:
		if ev.Focused {
			a.comp.Blinker().Reset(a.now())
			a.dirty = true
		}
	}
	return nil
}

// Save writes the document and reports the outcome in the status bar.
func (a *App) Save() error {
	if err := a.save(a.doc); err != nil {
		a.log.Error("save failed", "path", a.doc.Path, "error", err)
		a.message("Save failed: " + err.Error())
		return err
	}
	a.log.Info("document saved", "path", a.doc.Path)
	a.message("Saved " + a.doc.Name())
	return nil
}

// Tick advances timers: the cursor blink and the status message expiry.
func (a *App) Tick(now time.Time) {
	if a.comp.Blinker().Update(now) {
		a.dirty = true
	}
	if a.status.Expire(now) {
		a.dirty = true
	}
}

// ApplyOptions switches to new options without restarting. The font and
// glyph cache capacity only take effect on the next start.
func (a *App) ApplyOptions(opts config.Options) error {
	theme, err := renderer.ThemeFromMap(opts.Theme)
	if err != nil {
		return err
	}
	if opts.Render.Font != a.opts.Render.Font || opts.Render.GlyphCacheCapacity != a.opts.Render.GlyphCacheCapacity {
		a.log.Info("font settings apply on restart")
	}
	a.comp.SetOptions(rendererOptions(opts))
	a.comp.SetTheme(theme)
	a.ed.SetTabWidth(opts.Editor.TabWidth)
	applyViewport(a.ed.Viewport(), opts.Editor)
	a.status.Padding = opts.Status.Padding
	a.status.Spacing = opts.Status.SeparatorSpacing
	a.log.SetLevel(ParseLogLevel(opts.Log.Level))
	a.opts = opts.Clone()
	a.dirty = true
	return nil
}

// WatchConfig reloads options whenever the loader's file changes. The
// reload is applied on the Run goroutine.
func (a *App) WatchConfig(loader *config.Loader) (io.Closer, error) {
	w, err := config.NewWatcher(loader, a.queueReload,
		config.WithWatcherLogger(a.log.WithComponent("config")),
		config.OnError(func(err error) {
			a.log.Warn("config not reloaded", "error", err)
		}))
	if err != nil {
		return nil, err
	}
	return w, nil
}

// queueReload hands opts to the Run goroutine, replacing any reload that
// is still waiting.
func (a *App) queueReload(opts config.Options) {
	for {
		select {
		case a.reload <- opts:
			return
		default:
		}
		select {
		case <-a.reload:
		default:
		}
	}
}

// Render sizes the viewport to the surface and draws one frame.
func (a *App) Render() error {
	width, height := a.presenter.Size()
	lay := a.comp.Measure(width, height, a.doc.LineCount())
	vp := a.ed.Viewport()
	if vp.VisibleLines() != lay.VisibleLines || vp.VisibleColumns() != lay.VisibleColumns {
		a.ed.Execute(editor.Resize{Lines: lay.VisibleLines, Columns: lay.VisibleColumns})
	}

	a.syncStatus()
	st := a.renderState(a.now())
	if err := a.comp.Render(&st); err != nil {
		return err
	}
	a.dirty = false
	return nil
}

func (a *App) syncStatus() {
	c := a.ed.ActiveCursor()
	head := c.Head()
	sel := c.Selection
	selected := 0
	if !sel.IsEmpty() {
		selected = utf8.RuneCountInString(a.doc.Slice(sel.Start(), sel.End()))
	}
	a.status.Sync(statusline.State{
		Name:          a.doc.Name(),
		Modified:      a.doc.IsModified(),
		Line:          head.Line,
		Column:        head.Column,
		LineCount:     a.doc.LineCount(),
		SelectedChars: selected,
	})
}

func (a *App) renderState(now time.Time) renderer.RenderState {
	vp := a.ed.Viewport()
	cursors := a.ed.Cursors()
	st := renderer.RenderState{
		Lines:       a.doc,
		Cursors:     cursors.All(),
		Active:      cursors.ActiveIndex(),
		TopLine:     vp.TopLine(),
		LeftCol:     vp.LeftColumn(),
		TabWidth:    a.ed.TabWidth(),
		Status:      a.status,
		Highlighter: a.highlighter,
		Now:         now,
	}
	if rect := a.ed.Rectangle(); rect.Active {
		top, bottom, left, right := rect.Bounds()
		st.Rectangle = renderer.RectanglePreview{
			Active:  true,
			Top:     top,
			Bottom:  bottom,
			Left:    left,
			Right:   right,
			Cursors: rect.Preview,
		}
	}
	return st
}

// Run initializes the presenter and processes events until the user
// quits or ctx is canceled. Presenters that are not event sources are
// rendered once and then only on reloads and timer ticks.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.presenter.Init(); err != nil {
		return &InitError{Component: "presenter", Err: err}
	}
	defer a.presenter.Shutdown()

	events := make(chan backend.Event, 64)
	done := make(chan struct{})
	if src, ok := a.presenter.(backend.EventSource); ok {
		go pump(src, events, done)
		defer src.PostEvent(backend.Event{Type: backend.EventInterrupt})
	}
	defer close(done)

	a.log.Info("editor started", "document", a.doc.Name(), "lines", a.doc.LineCount())
	if err := a.Render(); err != nil {
		return err
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := a.HandleEvent(ev); errors.Is(err, ErrQuit) {
				a.log.Info("quit requested")
				return nil
			}
		case opts := <-a.reload:
			if err := a.ApplyOptions(opts); err != nil {
				a.log.Warn("config not applied", "error", err)
				a.message("Config error: " + err.Error())
			} else {
				a.message("Configuration reloaded")
			}
		case now := <-ticker.C:
			a.Tick(now)
		}
		if a.dirty {
			if err := a.Render(); err != nil {
				return fmt.Errorf("render: %w", err)
			}
		}
	}
}

// pump forwards events from src until done is closed.
func pump(src backend.EventSource, events chan<- backend.Event, done <-chan struct{}) {
	for {
		ev := src.PollEvent()
		select {
		case <-done:
			return
		default:
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Close releases the rasterizer's font faces.
func (a *App) Close() error {
	if c, ok := a.rast.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
