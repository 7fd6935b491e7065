// Package statusline models the status bar as a list of segments and lays
// them out in cell units. Drawing is left to the compositor.
package statusline

import (
	"fmt"
	"slices"
	"time"

	"github.com/dshills/scribe/internal/textutil"
)

// Default layout spacing, in cells.
const (
	DefaultPadding = 2
	DefaultSpacing = 2
)

// DefaultMessageTTL is how long a transient message stays visible.
const DefaultMessageTTL = 3 * time.Second

// SegmentID identifies a segment.
type SegmentID uint8

const (
	FileName SegmentID = iota
	ModifiedIndicator
	StatusMessage
	Selection
	CursorPosition
	LineCount
)

var segmentNames = [...]string{
	FileName:          "file",
	ModifiedIndicator: "modified",
	StatusMessage:     "message",
	Selection:         "selection",
	CursorPosition:    "position",
	LineCount:         "lines",
}

func (id SegmentID) String() string {
	if int(id) < len(segmentNames) {
		return segmentNames[id]
	}
	return fmt.Sprintf("segment(%d)", id)
}

// Align is the side of the bar a segment belongs to.
type Align uint8

const (
	AlignLeft Align = iota
	AlignRight
)

// Segment is one piece of status bar content. An empty Text hides it.
type Segment struct {
	ID    SegmentID
	Align Align
	Text  string
}

// State is the editor state the bar reflects. Line and Column are
// zero-based; the bar shows them one-based.
type State struct {
	Name          string
	Modified      bool
	Line, Column  int
	LineCount     int
	SelectedChars int
}

type message struct {
	text    string
	expires time.Time
}

// StatusLine holds the segments and the current transient message.
type StatusLine struct {
	segments []Segment
	msg      message

	// Padding is the gap before the first and after the last segment.
	Padding int
	// Spacing is the gap between neighbouring segments.
	Spacing int
}

// New creates a status line with the default segments in display order.
func New() *StatusLine {
	return &StatusLine{
		segments: []Segment{
			{ID: FileName, Align: AlignLeft, Text: "[No Name]"},
			{ID: ModifiedIndicator, Align: AlignLeft},
			{ID: StatusMessage, Align: AlignLeft},
			{ID: Selection, Align: AlignRight},
			{ID: CursorPosition, Align: AlignRight, Text: "Ln 1, Col 1"},
			{ID: LineCount, Align: AlignRight, Text: "1 Ln"},
		},
		Padding: DefaultPadding,
		Spacing: DefaultSpacing,
	}
}

// Segment returns the segment with the given id.
func (s *StatusLine) Segment(id SegmentID) (Segment, bool) {
	for _, seg := range s.segments {
		if seg.ID == id {
			return seg, true
		}
	}
	return Segment{}, false
}

// Set replaces a segment's text.
func (s *StatusLine) Set(id SegmentID, text string) {
	for i := range s.segments {
		if s.segments[i].ID == id {
			s.segments[i].Text = text
			return
		}
	}
}

// SetMessage shows text until now+ttl.
func (s *StatusLine) SetMessage(text string, ttl time.Duration, now time.Time) {
	s.msg = message{text: text, expires: now.Add(ttl)}
	s.Set(StatusMessage, text)
}

// Expire clears the message once it has timed out. It returns true if the
// bar changed.
func (s *StatusLine) Expire(now time.Time) bool {
	if s.msg.text == "" || now.Before(s.msg.expires) {
		return false
	}
	s.msg = message{}
	s.Set(StatusMessage, "")
	return true
}

// Sync updates every derived segment from st.
func (s *StatusLine) Sync(st State) {
	s.Set(FileName, st.Name)
	if st.Modified {
		s.Set(ModifiedIndicator, "*")
	} else {
		s.Set(ModifiedIndicator, "")
	}
	s.Set(CursorPosition, fmt.Sprintf("Ln %d, Col %d", st.Line+1, st.Column+1))
	s.Set(LineCount, fmt.Sprintf("%d Ln", st.LineCount))
	if st.SelectedChars > 0 {
		s.Set(Selection, fmt.Sprintf("(%d chars)", st.SelectedChars))
	} else {
		s.Set(Selection, "")
	}
}

// Placed is a segment positioned on the bar.
type Placed struct {
	ID    SegmentID
	X     int
	Width int
	Text  string
}

// Layout is the result of positioning the visible segments.
type Layout struct {
	Left  []Placed
	Right []Placed
	// Separators are the cell columns of the dividers between right
	// segments, in increasing order.
	Separators []int
}

// Layout positions the visible segments on a bar width cells wide. Left
// segments run from the left padding; right segments are packed against
// the right padding. Left text that would run into the right group is
// truncated, and left segments with no room at all are dropped.
func (s *StatusLine) Layout(width int) Layout {
	var l Layout
	width = max(width, 0)

	right := width - s.Padding
	prevStart := -1
	for i := len(s.segments) - 1; i >= 0; i-- {
		seg := s.segments[i]
		if seg.Align != AlignRight || seg.Text == "" {
			continue
		}
		w := textutil.DisplayWidth(seg.Text)
		if prevStart >= 0 {
			l.Separators = append(l.Separators, max(prevStart-s.Spacing/2, 0))
			right = prevStart - s.Spacing
		}
		right = max(right-w, 0)
		l.Right = append(l.Right, Placed{ID: seg.ID, X: right, Width: w, Text: seg.Text})
		prevStart = right
	}
	slices.Reverse(l.Right)
	slices.Reverse(l.Separators)

	limit := width - s.Padding
	if len(l.Right) > 0 {
		limit = l.Right[0].X - s.Spacing
	}
	x := s.Padding
	for _, seg := range s.segments {
		if seg.Align != AlignLeft || seg.Text == "" {
			continue
		}
		if x >= limit {
			break
		}
		text := seg.Text
		w := textutil.DisplayWidth(text)
		if x+w > limit {
			text = textutil.TruncateWidth(text, limit-x, "…")
			w = textutil.DisplayWidth(text)
		}
		l.Left = append(l.Left, Placed{ID: seg.ID, X: x, Width: w, Text: text})
		x += w + s.Spacing
	}
	return l
}
