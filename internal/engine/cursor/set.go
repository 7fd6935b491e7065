package cursor

import "slices"

// Set is an ordered collection of cursors with one active cursor.
// A Set always holds at least one cursor.
type Set struct {
	cursors []Cursor
	active  int
}

// NewSet creates a set holding a single cursor.
func NewSet(c Cursor) *Set {
	return &Set{cursors: []Cursor{c}}
}

// NewSetFrom creates a set from cursors with the given active index.
// An empty slice yields a single caret at 0:0.
func NewSetFrom(cursors []Cursor, active int) *Set {
	s := &Set{}
	if !s.Replace(cursors, active) {
		s.cursors = []Cursor{{}}
	}
	return s
}

// Len returns the number of cursors.
func (s *Set) Len() int {
	return len(s.cursors)
}

// IsMulti returns true if the set holds more than one cursor.
func (s *Set) IsMulti() bool {
	return len(s.cursors) > 1
}

// At returns the cursor at index i. i must be in [0, Len).
func (s *Set) At(i int) Cursor {
	return s.cursors[i]
}

// Set replaces the cursor at index i.
func (s *Set) Set(i int, c Cursor) {
	s.cursors[i] = c
}

// All returns a copy of the cursors.
func (s *Set) All() []Cursor {
	return slices.Clone(s.cursors)
}

// ActiveIndex returns the active cursor's index, clamped to the set.
func (s *Set) ActiveIndex() int {
	s.active = min(max(s.active, 0), len(s.cursors)-1)
	return s.active
}

// SetActiveIndex designates the cursor at i as active. Out-of-range
// indices are clamped.
func (s *Set) SetActiveIndex(i int) {
	s.active = i
	s.ActiveIndex()
}

// ActiveCursor returns the active cursor.
func (s *Set) ActiveCursor() Cursor {
	return s.cursors[s.ActiveIndex()]
}

// SetActiveCursor replaces the active cursor.
func (s *Set) SetActiveCursor(c Cursor) {
	s.cursors[s.ActiveIndex()] = c
}

// Replace swaps in a new cursor list. It refuses an empty list and
// returns false, leaving the set unchanged.
func (s *Set) Replace(cursors []Cursor, active int) bool {
	if len(cursors) == 0 {
		return false
	}
	s.cursors = slices.Clone(cursors)
	s.SetActiveIndex(active)
	return true
}

// Add appends a cursor, makes it active and returns its index.
func (s *Set) Add(c Cursor) int {
	s.cursors = append(s.cursors, c)
	s.active = len(s.cursors) - 1
	return s.active
}

// Remove deletes the cursor at index i. Removing the only cursor is
// refused and returns false.
func (s *Set) Remove(i int) bool {
	if len(s.cursors) <= 1 || i < 0 || i >= len(s.cursors) {
		return false
	}
	s.cursors = slices.Delete(s.cursors, i, i+1)
	if s.active > i || s.active == len(s.cursors) {
		s.active--
	}
	s.ActiveIndex()
	return true
}

// Collapse drops every cursor except the active one.
func (s *Set) Collapse() {
	s.cursors = []Cursor{s.ActiveCursor()}
	s.active = 0
}

// IndexOfHead returns the index of the cursor whose head is pos, or -1.
func (s *Set) IndexOfHead(pos Position) int {
	for i, c := range s.cursors {
		if c.Head() == pos {
			return i
		}
	}
	return -1
}

// HasSelection returns true if any cursor has a non-empty selection.
func (s *Set) HasSelection() bool {
	for _, c := range s.cursors {
		if c.HasSelection() {
			return true
		}
	}
	return false
}

// Top returns the index of the cursor with the earliest head.
func (s *Set) Top() int {
	best := 0
	for i, c := range s.cursors {
		if c.Head().Before(s.cursors[best].Head()) {
			best = i
		}
	}
	return best
}

// Bottom returns the index of the cursor with the latest head.
func (s *Set) Bottom() int {
	best := 0
	for i, c := range s.cursors {
		if c.Head().After(s.cursors[best].Head()) {
			best = i
		}
	}
	return best
}

// Sort orders cursors by selection start, keeping the active cursor
// designation on the same cursor.
func (s *Set) Sort() {
	if len(s.cursors) <= 1 {
		return
	}
	active := s.ActiveIndex()
	order := make([]int, len(s.cursors))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		ca, cb := s.cursors[a].Selection, s.cursors[b].Selection
		if c := ca.Start().Compare(cb.Start()); c != 0 {
			return c
		}
		return cb.End().Compare(ca.End())
	})
	sorted := make([]Cursor, len(order))
	for i, idx := range order {
		sorted[i] = s.cursors[idx]
		if idx == active {
			s.active = i
		}
	}
	s.cursors = sorted
}

// Dedup sorts the set and folds every cursor whose head repeats an
// earlier cursor's head into that cursor. Carets simply collapse; two
// selections meeting at one head merge into a selection spanning both,
// so extending from opposite sides never loses a selection. When the
// active cursor is folded, the survivor at its position becomes active.
func (s *Set) Dedup() {
	s.Sort()
	if len(s.cursors) <= 1 {
		return
	}
	active := s.active
	kept := s.cursors[:0:0]
	seen := make(map[Position]int, len(s.cursors))
	for i, c := range s.cursors {
		if at, ok := seen[c.Head()]; ok {
			if c.HasSelection() || kept[at].HasSelection() {
				kept[at].Selection = kept[at].Selection.Merge(c.Selection)
			}
			if i == active {
				s.active = at
			}
			continue
		}
		seen[c.Head()] = len(kept)
		if i == active {
			s.active = len(kept)
		}
		kept = append(kept, c)
	}
	s.cursors = kept
	s.ActiveIndex()
}

// MergeOverlapping sorts the set by selection start and merges each
// selection into its predecessor when it starts at or before the
// predecessor's end. The merged cursor becomes active if either part was.
func (s *Set) MergeOverlapping() {
	s.Sort()
	if len(s.cursors) <= 1 {
		return
	}
	active := s.active
	merged := make([]Cursor, 0, len(s.cursors))
	for i, c := range s.cursors {
		if n := len(merged); n > 0 {
			last := merged[n-1].Selection
			if !c.Selection.Start().After(last.End()) {
				merged[n-1] = FromSelection(last.Merge(c.Selection))
				if i == active {
					s.active = n - 1
				}
				continue
			}
		}
		if i == active {
			s.active = len(merged)
		}
		merged = append(merged, c)
	}
	s.cursors = merged
	s.ActiveIndex()
}

// Normalize deduplicates and then merges overlapping selections.
func (s *Set) Normalize() {
	s.Dedup()
	s.MergeOverlapping()
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{cursors: slices.Clone(s.cursors), active: s.active}
}

// Equals returns true if both sets hold the same cursors in the same
// order with the same active index.
func (s *Set) Equals(other *Set) bool {
	if other == nil {
		return false
	}
	return s.ActiveIndex() == other.ActiveIndex() && slices.Equal(s.cursors, other.cursors)
}
