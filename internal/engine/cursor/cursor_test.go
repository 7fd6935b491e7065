package cursor

import (
	"testing"

	"github.com/dshills/scribe/internal/engine/buffer"
	"github.com/google/go-cmp/cmp"
)

var p = buffer.Pos

func sel(al, ac, hl, hc int) Selection {
	return NewSelection(p(al, ac), p(hl, hc))
}

func TestSelection(t *testing.T) {
	fwd := sel(0, 1, 0, 4)
	back := sel(0, 4, 0, 1)

	for _, s := range []Selection{fwd, back} {
		if s.Start() != p(0, 1) || s.End() != p(0, 4) {
			t.Errorf("%v: Start/End = %v/%v", s, s.Start(), s.End())
		}
		if s.IsEmpty() {
			t.Errorf("%v: IsEmpty() = true", s)
		}
	}
	if fwd.IsBackward() || !back.IsBackward() {
		t.Error("IsBackward mismatch")
	}
	if !Caret(p(2, 3)).IsEmpty() {
		t.Error("Caret should be empty")
	}
	if got := back.Collapse(); got != Caret(p(0, 1)) {
		t.Errorf("Collapse() = %v", got)
	}
	if got := fwd.CollapseToStart(); got != Caret(p(0, 1)) {
		t.Errorf("CollapseToStart() = %v", got)
	}
	if !fwd.Contains(p(0, 4)) || fwd.Contains(p(0, 5)) {
		t.Error("Contains mismatch")
	}
}

func TestSelectionTouchesMerge(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Selection
		touches bool
		merged  Selection
	}{
		{"overlap", sel(0, 0, 0, 5), sel(0, 3, 0, 8), true, sel(0, 0, 0, 8)},
		{"adjacent", sel(0, 0, 0, 3), sel(0, 3, 0, 6), true, sel(0, 0, 0, 6)},
		{"disjoint", sel(0, 0, 0, 2), sel(0, 3, 0, 6), false, sel(0, 0, 0, 6)},
		{"backward receiver", sel(1, 5, 1, 0), sel(1, 2, 1, 9), true, sel(1, 9, 1, 0)},
		{"multi line", sel(0, 4, 2, 1), sel(2, 0, 3, 0), true, sel(0, 4, 3, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Touches(tt.b); got != tt.touches {
				t.Errorf("Touches() = %v, want %v", got, tt.touches)
			}
			if got := tt.a.Merge(tt.b); got != tt.merged {
				t.Errorf("Merge() = %v, want %v", got, tt.merged)
			}
		})
	}
}

func TestCursorDesiredColumn(t *testing.T) {
	c := At(p(0, 5))
	if _, ok := c.DesiredColumn(); ok {
		t.Fatal("new cursor should have no desired column")
	}

	c = c.MoveVertical(p(1, 2))
	if col, ok := c.DesiredColumn(); !ok || col != 5 {
		t.Errorf("DesiredColumn() = %d, %v; want 5, true", col, ok)
	}
	c = c.MoveVertical(p(2, 5))
	if col, _ := c.DesiredColumn(); col != 5 || c.Head() != p(2, 5) {
		t.Errorf("after second vertical move: head %v desired %d", c.Head(), col)
	}
	if c.TargetColumn() != 5 {
		t.Errorf("TargetColumn() = %d", c.TargetColumn())
	}

	c = c.MoveTo(p(2, 6))
	if _, ok := c.DesiredColumn(); ok {
		t.Error("horizontal move should clear desired column")
	}

	c = At(p(0, 1)).ExtendVertical(p(1, 1))
	if c.Anchor() != p(0, 1) || c.Head() != p(1, 1) {
		t.Errorf("ExtendVertical selection = %v", c.Selection)
	}
	if col, ok := c.DesiredColumn(); !ok || col != 1 {
		t.Errorf("ExtendVertical desired = %d, %v", col, ok)
	}
}

func TestSetActiveClamped(t *testing.T) {
	s := NewSetFrom([]Cursor{At(p(0, 0)), At(p(1, 0)), At(p(2, 0))}, 7)
	if s.ActiveIndex() != 2 {
		t.Errorf("ActiveIndex() = %d, want 2", s.ActiveIndex())
	}

	if !s.Remove(2) {
		t.Fatal("Remove(2) refused")
	}
	if s.ActiveIndex() != 1 || s.ActiveCursor().Head() != p(1, 0) {
		t.Errorf("active after remove = %d (%v)", s.ActiveIndex(), s.ActiveCursor().Head())
	}

	s.Remove(0)
	if s.Remove(0) {
		t.Error("removing the last cursor should be refused")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	if s.Replace(nil, 0) {
		t.Error("Replace(nil) should be refused")
	}
	if NewSetFrom(nil, 0).Len() != 1 {
		t.Error("NewSetFrom(nil) should hold one cursor")
	}
}

func TestSetDedup(t *testing.T) {
	s := NewSetFrom([]Cursor{At(p(3, 1)), At(p(0, 2)), At(p(3, 1)), At(p(1, 0))}, 2)
	s.Dedup()

	want := []Cursor{At(p(0, 2)), At(p(1, 0)), At(p(3, 1))}
	if diff := cmp.Diff(want, s.All(), cmp.AllowUnexported(Cursor{})); diff != "" {
		t.Errorf("Dedup() mismatch (-want +got):\n%s", diff)
	}
	if s.ActiveCursor().Head() != p(3, 1) {
		t.Errorf("active cursor = %v, want 3:1", s.ActiveCursor().Head())
	}
}

func TestSetDedupFoldsSelections(t *testing.T) {
	s := NewSetFrom([]Cursor{
		FromSelection(sel(0, 0, 0, 3)),
		FromSelection(sel(0, 15, 0, 3)),
		At(p(2, 0)),
	}, 1)
	s.Dedup()

	want := []Selection{sel(0, 0, 0, 15), Caret(p(2, 0))}
	var got []Selection
	for _, c := range s.All() {
		got = append(got, c.Selection)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dedup() mismatch (-want +got):\n%s", diff)
	}
	if s.ActiveIndex() != 0 {
		t.Errorf("ActiveIndex() = %d, want 0", s.ActiveIndex())
	}
}

func TestSetMergeOverlapping(t *testing.T) {
	tests := []struct {
		name   string
		in     []Selection
		active int
		want   []Selection
		wantAt int
	}{
		{
			name: "overlapping pair",
			in:   []Selection{sel(0, 0, 0, 5), sel(0, 3, 0, 8)},
			want: []Selection{sel(0, 0, 0, 8)},
		},
		{
			name:   "touching counts",
			in:     []Selection{sel(0, 6, 0, 9), sel(0, 0, 0, 3), sel(0, 3, 0, 6)},
			active: 0,
			want:   []Selection{sel(0, 0, 0, 9)},
		},
		{
			name:   "disjoint kept and sorted",
			in:     []Selection{sel(2, 0, 2, 4), sel(0, 0, 0, 2)},
			active: 0,
			want:   []Selection{sel(0, 0, 0, 2), sel(2, 0, 2, 4)},
			wantAt: 1,
		},
		{
			name:   "primary transfers to survivor",
			in:     []Selection{sel(0, 0, 0, 1), sel(1, 0, 1, 5), sel(1, 2, 1, 9)},
			active: 2,
			want:   []Selection{sel(0, 0, 0, 1), sel(1, 0, 1, 9)},
			wantAt: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursors := make([]Cursor, len(tt.in))
			for i, s := range tt.in {
				cursors[i] = FromSelection(s)
			}
			set := NewSetFrom(cursors, tt.active)
			set.MergeOverlapping()

			var got []Selection
			for _, c := range set.All() {
				got = append(got, c.Selection)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MergeOverlapping() mismatch (-want +got):\n%s", diff)
			}
			if set.ActiveIndex() != tt.wantAt {
				t.Errorf("ActiveIndex() = %d, want %d", set.ActiveIndex(), tt.wantAt)
			}
		})
	}
}

func TestSetSortKeepsActive(t *testing.T) {
	s := NewSetFrom([]Cursor{At(p(5, 0)), At(p(1, 0)), At(p(3, 0))}, 0)
	s.Sort()
	if s.ActiveIndex() != 2 || s.ActiveCursor().Head() != p(5, 0) {
		t.Errorf("active after sort = %d %v", s.ActiveIndex(), s.ActiveCursor().Head())
	}
	if s.Top() != 0 || s.Bottom() != 2 {
		t.Errorf("Top/Bottom = %d/%d", s.Top(), s.Bottom())
	}
}

func TestSetCollapse(t *testing.T) {
	s := NewSetFrom([]Cursor{At(p(0, 0)), At(p(1, 0)), At(p(2, 0))}, 1)
	s.Collapse()
	if s.Len() != 1 || s.ActiveIndex() != 0 || s.ActiveCursor().Head() != p(1, 0) {
		t.Errorf("Collapse() left %d cursors, active %v", s.Len(), s.ActiveCursor().Head())
	}
}

func TestShiftOffset(t *testing.T) {
	tests := []struct {
		name                    string
		offset, start, end, len int
		want                    int
	}{
		{"insert before", 10, 2, 2, 3, 13},
		{"delete before", 10, 2, 5, 0, 7},
		{"replace before", 10, 2, 5, 1, 8},
		{"edit after", 10, 12, 14, 5, 10},
		{"insert at offset", 10, 10, 10, 2, 10},
		{"spanning", 10, 8, 12, 1, 9},
		{"delete ending at offset", 10, 8, 10, 0, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShiftOffset(tt.offset, tt.start, tt.end, tt.len); got != tt.want {
				t.Errorf("ShiftOffset() = %d, want %d", got, tt.want)
			}
		})
	}
}
