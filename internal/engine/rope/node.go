package rope

import "strings"

// Tree shape constants.
const (
	// MaxChildren is the maximum children per internal node.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// node is a node in the rope B+ tree. Leaves (height 0) hold chunks;
// internal nodes hold children and a cached summary per child.
type node struct {
	height  uint8
	summary TextSummary

	children       []*node
	childSummaries []TextSummary

	chunks []Chunk
}

func newLeaf(chunks []Chunk) *node {
	n := &node{chunks: chunks}
	for _, c := range chunks {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func newInternal(children []*node) *node {
	if len(children) == 0 {
		return newLeaf(nil)
	}
	n := &node{
		height:         children[0].height + 1,
		children:       children,
		childSummaries: make([]TextSummary, len(children)),
	}
	for i, child := range children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
	return n
}

func (n *node) isLeaf() bool { return n.height == 0 }

func (n *node) len() int { return n.summary.Bytes }

func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.data)
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends the bytes in [start, end) of the subtree to sb.
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	offset := 0
	if n.isLeaf() {
		for _, c := range n.chunks {
			cEnd := offset + len(c.data)
			if cEnd > start && offset < end {
				sb.WriteString(c.data[max(start-offset, 0):min(end-offset, len(c.data))])
			}
			if cEnd >= end {
				return
			}
			offset = cEnd
		}
		return
	}
	for i, child := range n.children {
		cLen := n.childSummaries[i].Bytes
		cEnd := offset + cLen
		if cEnd > start && offset < end {
			child.appendRange(sb, max(start-offset, 0), min(end-offset, cLen))
		}
		if cEnd >= end {
			return
		}
		offset = cEnd
	}
}

// split divides the subtree at a byte offset into [0, offset) and
// [offset, len).
func (n *node) split(offset int) (*node, *node) {
	if offset <= 0 {
		return newLeaf(nil), n
	}
	if offset >= n.len() {
		return n, newLeaf(nil)
	}

	if n.isLeaf() {
		var left, right []Chunk
		pos := 0
		for _, c := range n.chunks {
			switch {
			case pos+len(c.data) <= offset:
				left = append(left, c)
			case pos >= offset:
				right = append(right, c)
			default:
				l, r := c.Split(offset - pos)
				left = append(left, l)
				right = append(right, r)
			}
			pos += len(c.data)
		}
		return newLeaf(left), newLeaf(right)
	}

	var left, right []*node
	pos := 0
	for i, child := range n.children {
		cLen := n.childSummaries[i].Bytes
		switch {
		case pos+cLen <= offset:
			left = append(left, child)
		case pos >= offset:
			right = append(right, child)
		default:
			l, r := child.split(offset - pos)
			if l.len() > 0 {
				left = append(left, l)
			}
			if r.len() > 0 {
				right = append(right, r)
			}
		}
		pos += cLen
	}
	return buildFromNodes(left), buildFromNodes(right)
}

// buildFromNodes creates a tree over nodes that may differ in height.
func buildFromNodes(nodes []*node) *node {
	switch len(nodes) {
	case 0:
		return newLeaf(nil)
	case 1:
		return nodes[0]
	}
	root := nodes[0]
	for _, n := range nodes[1:] {
		root = concat(root, n)
	}
	return root
}

// concat joins two subtrees, lifting the shorter tree until the heights
// match.
func concat(left, right *node) *node {
	if left == nil || left.len() == 0 {
		if right == nil {
			return newLeaf(nil)
		}
		return right
	}
	if right == nil || right.len() == 0 {
		return left
	}
	for left.height < right.height {
		left = newInternal([]*node{left})
	}
	for right.height < left.height {
		right = newInternal([]*node{right})
	}
	if left.isLeaf() {
		return concatLeaves(left, right)
	}

	children := make([]*node, 0, len(left.children)+len(right.children))
	children = append(children, left.children...)
	children = append(children, right.children...)
	return groupNodes(children)
}

// concatLeaves joins two leaves, coalescing the chunks that meet at the
// seam when they fit in one chunk.
func concatLeaves(left, right *node) *node {
	chunks := make([]Chunk, 0, len(left.chunks)+len(right.chunks))
	chunks = append(chunks, left.chunks...)
	rest := right.chunks
	if len(chunks) > 0 && len(rest) > 0 {
		last := chunks[len(chunks)-1]
		if last.Len()+rest[0].Len() <= MaxChunkSize {
			chunks[len(chunks)-1] = NewChunk(last.data + rest[0].data)
			rest = rest[1:]
		}
	}
	chunks = append(chunks, rest...)

	if len(chunks) <= MaxChunksPerLeaf {
		return newLeaf(chunks)
	}
	var leaves []*node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leaves = append(leaves, newLeaf(chunks[i:end:end]))
	}
	return newInternal(leaves)
}

// groupNodes packs same-height nodes into parents of at most MaxChildren.
func groupNodes(nodes []*node) *node {
	for len(nodes) > MaxChildren {
		parents := make([]*node, 0, len(nodes)/MaxChildren+1)
		for i := 0; i < len(nodes); i += MaxChildren {
			end := min(i+MaxChildren, len(nodes))
			parents = append(parents, newInternal(nodes[i:end:end]))
		}
		nodes = parents
	}
	return newInternal(nodes)
}

// offsetAfterNewline returns the byte offset just past the nth newline
// (1-indexed) in the subtree. n must not exceed the subtree's line count.
func (n *node) offsetAfterNewline(nth int) int {
	offset := 0
	for !n.isLeaf() {
		i := 0
		for ; i < len(n.children)-1; i++ {
			s := n.childSummaries[i]
			if s.Lines >= nth {
				break
			}
			nth -= s.Lines
			offset += s.Bytes
		}
		n = n.children[i]
	}
	for _, c := range n.chunks {
		if c.summary.Lines >= nth {
			return offset + nthNewline(c.data, nth) + 1
		}
		nth -= c.summary.Lines
		offset += len(c.data)
	}
	return offset
}

// prefixSummary returns the number of newlines and code points in the
// first b bytes of the subtree.
func (n *node) prefixSummary(b int) (lines, chars int) {
	for !n.isLeaf() {
		i := 0
		for ; i < len(n.children)-1; i++ {
			s := n.childSummaries[i]
			if s.Bytes > b {
				break
			}
			b -= s.Bytes
			lines += s.Lines
			chars += s.Chars
		}
		n = n.children[i]
	}
	for _, c := range n.chunks {
		if len(c.data) > b {
			head := c.data[:b]
			lines += countNewlines(head)
			chars += ComputeSummary(head).Chars
			return lines, chars
		}
		b -= len(c.data)
		lines += c.summary.Lines
		chars += c.summary.Chars
	}
	return lines, chars
}

// byteOfChar returns the byte offset of the nth code point in the subtree.
func (n *node) byteOfChar(ch int) int {
	offset := 0
	for !n.isLeaf() {
		i := 0
		for ; i < len(n.children)-1; i++ {
			s := n.childSummaries[i]
			if s.Chars > ch {
				break
			}
			ch -= s.Chars
			offset += s.Bytes
		}
		n = n.children[i]
	}
	for _, c := range n.chunks {
		if c.summary.Chars > ch {
			return offset + byteOfChar(c.data, ch)
		}
		ch -= c.summary.Chars
		offset += len(c.data)
	}
	return offset
}

func (n *node) chunkCount() int {
	if n.isLeaf() {
		return len(n.chunks)
	}
	count := 0
	for _, child := range n.children {
		count += child.chunkCount()
	}
	return count
}

func (n *node) collectChunks(dst []Chunk) []Chunk {
	if n.isLeaf() {
		return append(dst, n.chunks...)
	}
	for _, child := range n.children {
		dst = child.collectChunks(dst)
	}
	return dst
}

func (n *node) eachChunk(yield func(string) bool) bool {
	if n.isLeaf() {
		for _, c := range n.chunks {
			if !yield(c.data) {
				return false
			}
		}
		return true
	}
	for _, child := range n.children {
		if !child.eachChunk(yield) {
			return false
		}
	}
	return true
}
