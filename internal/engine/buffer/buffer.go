package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/scribe/internal/engine/rope"
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the escaped form of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is an editable sequence of Unicode text.
type Buffer struct {
	rope       rope.Rope
	revision   uint64
	lineEnding LineEnding
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{rope: rope.New()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer with initial content. The line ending
// style is detected from text unless an option overrides it.
func NewFromString(text string, opts ...Option) *Buffer {
	b := New(append([]Option{WithLineEnding(DetectLineEnding(text))}, opts...)...)
	b.rope = rope.FromString(Normalize(text))
	return b
}

// Normalize converts text to valid UTF-8 with "\n" line endings.
func Normalize(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	if strings.IndexByte(s, '\r') >= 0 {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
	}
	return s
}

// Text returns the full content.
func (b *Buffer) Text() string {
	return b.rope.String()
}

// TextWithLineEndings returns the content using the buffer's line ending
// style, for handing to a file writer.
func (b *Buffer) TextWithLineEndings() string {
	text := b.rope.String()
	if b.lineEnding == LineEndingLF {
		return text
	}
	return strings.ReplaceAll(text, "\n", b.lineEnding.Sequence())
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// Len returns the length in bytes.
func (b *Buffer) Len() int {
	return b.rope.Len()
}

// CharCount returns the number of code points.
func (b *Buffer) CharCount() int {
	return b.rope.CharCount()
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	return b.rope.LineCount()
}

// Revision returns a counter that increases with every mutation.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// Snapshot returns the current immutable rope.
func (b *Buffer) Snapshot() rope.Rope {
	return b.rope
}

// checkOffset verifies that offset lies within the buffer on a code point
// boundary.
func (b *Buffer) checkOffset(op string, offset int) error {
	if offset < 0 || offset > b.rope.Len() {
		return outOfBounds(op, offset, b.rope.Len())
	}
	if offset < b.rope.Len() {
		if c, _ := b.rope.ByteAt(offset); !utf8.RuneStart(c) {
			return &BoundsError{Op: op, Value: offset, Limit: b.rope.Len(), Err: ErrNotCharBoundary}
		}
	}
	return nil
}

func (b *Buffer) checkLine(op string, line int) error {
	if line < 0 || line >= b.rope.LineCount() {
		return outOfBounds(op, line, b.rope.LineCount()-1)
	}
	return nil
}

// Slice returns the text in the byte range [start, end).
func (b *Buffer) Slice(start, end int) (string, error) {
	if end < start {
		return "", ErrRangeInvalid
	}
	if err := b.checkOffset("slice", start); err != nil {
		return "", err
	}
	if err := b.checkOffset("slice", end); err != nil {
		return "", err
	}
	return b.rope.Slice(start, end), nil
}

// Insert inserts text at a byte offset.
func (b *Buffer) Insert(offset int, text string) error {
	if err := b.checkOffset("insert", offset); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	b.rope = b.rope.Insert(offset, Normalize(text))
	b.revision++
	return nil
}

// Delete removes length bytes starting at offset.
func (b *Buffer) Delete(offset, length int) error {
	if length < 0 {
		return ErrRangeInvalid
	}
	if err := b.checkOffset("delete", offset); err != nil {
		return err
	}
	if err := b.checkOffset("delete", offset+length); err != nil {
		return err
	}
	if length == 0 {
		return nil
	}
	b.rope = b.rope.Delete(offset, offset+length)
	b.revision++
	return nil
}

// LineStart returns the byte offset of the first character of line.
func (b *Buffer) LineStart(line int) (int, error) {
	if err := b.checkLine("line", line); err != nil {
		return 0, err
	}
	return b.rope.LineStart(line), nil
}

// LineText returns the text of line without its newline.
func (b *Buffer) LineText(line int) (string, error) {
	if err := b.checkLine("line", line); err != nil {
		return "", err
	}
	return b.rope.Line(line), nil
}

// LineLen returns the number of code points in line, excluding its
// newline.
func (b *Buffer) LineLen(line int) (int, error) {
	if err := b.checkLine("line", line); err != nil {
		return 0, err
	}
	start := b.rope.LineStart(line)
	end := b.rope.LineEnd(line)
	return b.rope.ByteToChar(end) - b.rope.ByteToChar(start), nil
}

// OffsetToPosition converts a byte offset to a position.
func (b *Buffer) OffsetToPosition(offset int) (Position, error) {
	if err := b.checkOffset("offset", offset); err != nil {
		return Position{}, err
	}
	line := b.rope.LineAt(offset)
	start := b.rope.LineStart(line)
	return Position{
		Line:   line,
		Column: b.rope.ByteToChar(offset) - b.rope.ByteToChar(start),
	}, nil
}

// PositionToOffset converts a position to a byte offset.
func (b *Buffer) PositionToOffset(pos Position) (int, error) {
	if err := b.checkLine("position", pos.Line); err != nil {
		return 0, err
	}
	start := b.rope.LineStart(pos.Line)
	end := b.rope.LineEnd(pos.Line)
	startChar := b.rope.ByteToChar(start)
	lineLen := b.rope.ByteToChar(end) - startChar
	if pos.Column < 0 || pos.Column > lineLen {
		return 0, outOfBounds("column", pos.Column, lineLen)
	}
	return b.rope.CharToByte(startChar + pos.Column), nil
}

// ClampPosition returns the nearest valid position to pos.
func (b *Buffer) ClampPosition(pos Position) Position {
	last := b.rope.LineCount() - 1
	pos.Line = min(max(pos.Line, 0), last)
	n, _ := b.LineLen(pos.Line)
	pos.Column = min(max(pos.Column, 0), n)
	return pos
}

// ClampOffset returns the nearest code point boundary to offset within the
// buffer, searching backward.
func (b *Buffer) ClampOffset(offset int) int {
	offset = min(max(offset, 0), b.rope.Len())
	for offset > 0 && offset < b.rope.Len() {
		c, _ := b.rope.ByteAt(offset)
		if utf8.RuneStart(c) {
			break
		}
		offset--
	}
	return offset
}

// EndPosition returns the position after the last character.
func (b *Buffer) EndPosition() Position {
	last := b.rope.LineCount() - 1
	n, _ := b.LineLen(last)
	return Position{Line: last, Column: n}
}
