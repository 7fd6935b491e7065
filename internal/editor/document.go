package editor

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/dshills/scribe/internal/engine/history"
)

// untitledName is shown for documents without a path.
const untitledName = "[No Name]"

// Document owns a text buffer and its undo history.
type Document struct {
	// ID identifies the document for the lifetime of the process.
	ID uuid.UUID

	// Path is the backing file, empty for a new document. Reading and
	// writing it is left to the caller.
	Path string

	buf     *buffer.Buffer
	history *history.Stack
}

// DocumentOption configures a Document.
type DocumentOption func(*documentConfig)

type documentConfig struct {
	path     string
	maxUndo  int
	bufferOp []buffer.Option
}

// WithPath sets the document's backing path.
func WithPath(path string) DocumentOption {
	return func(c *documentConfig) { c.path = path }
}

// WithMaxUndo caps the undo history. Zero means unlimited.
func WithMaxUndo(n int) DocumentOption {
	return func(c *documentConfig) { c.maxUndo = n }
}

// WithLineEnding overrides the detected line ending used on save.
func WithLineEnding(le buffer.LineEnding) DocumentOption {
	return func(c *documentConfig) { c.bufferOp = append(c.bufferOp, buffer.WithLineEnding(le)) }
}

// NewDocument creates a document holding text, as received from a file
// read or an empty "new document" request.
func NewDocument(text string, opts ...DocumentOption) *Document {
	var cfg documentConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Document{
		ID:      uuid.New(),
		Path:    cfg.path,
		buf:     buffer.NewFromString(text, cfg.bufferOp...),
		history: history.NewStack(history.WithMaxEntries(cfg.maxUndo)),
	}
}

// Buffer returns the document's text buffer.
func (d *Document) Buffer() *buffer.Buffer {
	return d.buf
}

// History returns the document's undo history.
func (d *Document) History() *history.Stack {
	return d.history
}

// Name returns the base name of the path, or "[No Name]".
func (d *Document) Name() string {
	if d.Path == "" {
		return untitledName
	}
	return filepath.Base(d.Path)
}

// IsModified returns true if the text differs from the last saved state.
func (d *Document) IsModified() bool {
	return d.history.IsModified()
}

// MarkSaved records the current state as saved. Call it after the caller
// has written SaveText to Path.
func (d *Document) MarkSaved() {
	d.history.MarkSaved()
}

// SaveText returns the content with the document's line endings restored.
func (d *Document) SaveText() string {
	return d.buf.TextWithLineEndings()
}

// Text returns the normalized content.
func (d *Document) Text() string {
	return d.buf.Text()
}

// LineCount returns the number of lines. It is always at least 1.
func (d *Document) LineCount() int {
	return d.buf.LineCount()
}

// Line returns the text of line without its newline, or "" when line is
// out of range.
func (d *Document) Line(line int) string {
	s, err := d.buf.LineText(line)
	if err != nil {
		return ""
	}
	return s
}

// LineLen returns the number of characters on line, or 0 when line is out
// of range.
func (d *Document) LineLen(line int) int {
	n, err := d.buf.LineLen(line)
	if err != nil {
		return 0
	}
	return n
}

func (d *Document) lineRunes(line int) []rune {
	return []rune(d.Line(line))
}

// offset converts a position, clamped first, to a byte offset.
func (d *Document) offset(pos buffer.Position) int {
	off, _ := d.buf.PositionToOffset(d.buf.ClampPosition(pos))
	return off
}

// position converts a byte offset, clamped first, to a position.
func (d *Document) position(off int) buffer.Position {
	pos, _ := d.buf.OffsetToPosition(d.buf.ClampOffset(off))
	return pos
}

// Slice returns the text between two positions in either order.
func (d *Document) Slice(a, b buffer.Position) string {
	start, end := d.offset(a), d.offset(b)
	if start > end {
		start, end = end, start
	}
	s, _ := d.buf.Slice(start, end)
	return s
}
