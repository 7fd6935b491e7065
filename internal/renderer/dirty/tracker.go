package dirty

import "slices"

// Tracker remembers the cells of the last presented frame and reports the
// rows whose cells differ in the next one. Cells are opaque 64-bit values
// chosen by the presenter.
//
// A Tracker is not safe for concurrent use; presenters guard it with
// their own lock.
type Tracker struct {
	width, height int

	// cells holds the last seen frame, row-major.
	cells []uint64

	spans      []Span
	fullRedraw bool

	// coalesceThreshold is the fraction of dirty rows above which a full
	// redraw is reported instead of spans.
	coalesceThreshold float64
}

// NewTracker creates a tracker that starts with a full redraw pending.
func NewTracker() *Tracker {
	return &Tracker{fullRedraw: true, coalesceThreshold: 0.5}
}

// SetCoalesceThreshold sets the dirty fraction that turns into a full
// redraw. Values outside (0, 1] are ignored.
func (t *Tracker) SetCoalesceThreshold(threshold float64) {
	if threshold > 0 && threshold <= 1 {
		t.coalesceThreshold = threshold
	}
}

// Resize sets the grid size. A change of size forgets the previous frame
// and requests a full redraw. Negative sizes are treated as zero.
func (t *Tracker) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == t.width && height == t.height {
		return
	}
	t.width, t.height = width, height
	t.cells = make([]uint64, width*height)
	t.MarkFullRedraw()
}

// Size returns the grid size.
func (t *Tracker) Size() (width, height int) {
	return t.width, t.height
}

// MarkFullRedraw requests that every row be rewritten, for example after
// the screen was cleared behind the presenter's back.
func (t *Tracker) MarkFullRedraw() {
	t.fullRedraw = true
	t.spans = t.spans[:0]
}

// Update stores the cells of row and marks the row dirty if any cell
// changed. Rows outside the grid are ignored; cells beyond the width are
// dropped and missing cells read as zero.
func (t *Tracker) Update(row int, cells []uint64) {
	if row < 0 || row >= t.height {
		return
	}
	stored := t.Row(row)
	changed := false
	for x := range stored {
		var c uint64
		if x < len(cells) {
			c = cells[x]
		}
		if stored[x] != c {
			stored[x] = c
			changed = true
		}
	}
	if changed && !t.fullRedraw {
		t.markRow(row)
	}
}

// Row returns the stored cells of row. The slice aliases the tracker's
// memory and is valid until the next Resize.
func (t *Tracker) Row(row int) []uint64 {
	if row < 0 || row >= t.height {
		return nil
	}
	return t.cells[row*t.width : (row+1)*t.width]
}

func (t *Tracker) markRow(row int) {
	t.spans = append(t.spans, Span{Start: row, End: row + 1})
	t.coalesce()

	if t.dirtyRatio() > t.coalesceThreshold {
		t.MarkFullRedraw()
	}
}

// coalesce merges spans that have grown into each other.
func (t *Tracker) coalesce() {
	slices.SortFunc(t.spans, func(a, b Span) int { return a.Start - b.Start })
	out := t.spans[:0]
	for _, s := range t.spans {
		if n := len(out); n > 0 {
			if merged, ok := out[n-1].Merge(s); ok {
				out[n-1] = merged
				continue
			}
		}
		out = append(out, s)
	}
	t.spans = out
}

func (t *Tracker) dirtyRatio() float64 {
	if t.height == 0 {
		return 0
	}
	rows := 0
	for _, s := range t.spans {
		rows += s.Len()
	}
	return float64(rows) / float64(t.height)
}

// IsDirty reports whether any row needs rewriting.
func (t *Tracker) IsDirty() bool {
	return (t.fullRedraw && t.height > 0) || len(t.spans) > 0
}

// NeedsFullRedraw reports whether every row must be rewritten.
func (t *Tracker) NeedsFullRedraw() bool {
	return t.fullRedraw
}

// DirtySpans returns the rows to rewrite in ascending order. A pending
// full redraw is a single span over the whole grid.
func (t *Tracker) DirtySpans() []Span {
	if t.fullRedraw {
		if t.height == 0 {
			return nil
		}
		return []Span{{Start: 0, End: t.height}}
	}
	out := slices.Clone(t.spans)
	slices.SortFunc(out, func(a, b Span) int { return a.Start - b.Start })
	return out
}

// Clear forgets the dirty state once the presenter has written it.
func (t *Tracker) Clear() {
	t.fullRedraw = false
	t.spans = t.spans[:0]
}
