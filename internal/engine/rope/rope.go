package rope

import (
	"iter"
	"math/bits"
	"strings"
)

// Rope is an immutable rope of UTF-8 text.
// Operations return new Rope values; the receiver is never modified.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeaf(nil)}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return fromChunks(splitIntoChunks(s))
}

// fromChunks builds a balanced tree bottom-up from chunks.
func fromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}
	nodes := make([]*node, 0, len(chunks)/MaxChunksPerLeaf+1)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leaf := make([]Chunk, end-i)
		copy(leaf, chunks[i:end])
		nodes = append(nodes, newLeaf(leaf))
	}
	if len(nodes) == 1 {
		return Rope{root: nodes[0]}
	}
	return Rope{root: groupNodes(nodes)}
}

func (r Rope) rootNode() *node {
	if r.root == nil {
		return newLeaf(nil)
	}
	return r.root
}

// Len returns the total byte length.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.len()
}

// CharCount returns the number of code points.
func (r Rope) CharCount() int {
	return r.Summary().Chars
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	return r.Summary().Lines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// String returns the full text.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.Len())
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the byte range [start, end).
// The range is clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, r.Len())
	if start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// ByteAt returns the byte at the given offset.
func (r Rope) ByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= r.Len() {
		return 0, false
	}
	s := r.Slice(offset, offset+1)
	return s[0], true
}

// Insert inserts text at the given byte offset, clamped to the rope.
func (r Rope) Insert(offset int, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.Len() == 0 {
		return FromString(text)
	}
	offset = min(max(offset, 0), r.Len())
	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right).balanced()
}

// Delete removes the bytes in [start, end), clamped to the rope.
func (r Rope) Delete(start, end int) Rope {
	start = max(start, 0)
	end = min(end, r.Len())
	if start >= end {
		return r
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right).balanced()
}

// Replace replaces the bytes in [start, end) with text.
func (r Rope) Replace(start, end int, text string) Rope {
	return r.Delete(start, end).Insert(start, text)
}

// Split splits the rope at a byte offset into [0, offset) and
// [offset, Len).
func (r Rope) Split(offset int) (Rope, Rope) {
	if offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat concatenates two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.Len() == 0 {
		return other
	}
	if other.Len() == 0 {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// balanced rebuilds the tree when repeated edits have left it much taller
// than a freshly built tree over the same chunks.
func (r Rope) balanced() Rope {
	if r.root == nil || r.root.height < 4 {
		return r
	}
	n := r.root.chunkCount()
	ideal := bits.Len(uint(n)) / 3
	if int(r.root.height) <= 2*ideal+2 {
		return r
	}
	return fromChunks(r.root.collectChunks(make([]Chunk, 0, n)))
}

// LineStart returns the byte offset of the start of line (0-indexed).
// Lines past the end map to Len.
func (r Rope) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	return r.rootNode().offsetAfterNewline(line)
}

// LineEnd returns the byte offset of the end of line, excluding its
// newline.
func (r Rope) LineEnd(line int) int {
	if line < 0 {
		return 0
	}
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	return r.LineStart(line+1) - 1
}

// Line returns the text of line without its newline.
func (r Rope) Line(line int) string {
	return r.Slice(r.LineStart(line), r.LineEnd(line))
}

// LineAt returns the line containing the byte offset.
func (r Rope) LineAt(offset int) int {
	offset = min(max(offset, 0), r.Len())
	lines, _ := r.rootNode().prefixSummary(offset)
	return lines
}

// ByteToChar returns the number of code points before the byte offset.
func (r Rope) ByteToChar(offset int) int {
	offset = min(max(offset, 0), r.Len())
	_, chars := r.rootNode().prefixSummary(offset)
	return chars
}

// CharToByte returns the byte offset of the code point at index ch.
func (r Rope) CharToByte(ch int) int {
	if ch <= 0 {
		return 0
	}
	if ch >= r.CharCount() {
		return r.Len()
	}
	return r.rootNode().byteOfChar(ch)
}

// Chunks iterates over the rope's chunks in order.
func (r Rope) Chunks() iter.Seq[string] {
	return func(yield func(string) bool) {
		if r.root != nil {
			r.root.eachChunk(yield)
		}
	}
}

// Height returns the height of the tree.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// Equals returns true if two ropes contain the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	return r.String() == other.String()
}
