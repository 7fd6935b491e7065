package viewport

// Mode is the scroll controller state.
type Mode uint8

const (
	// CursorLocked follows the primary cursor. It is the default.
	CursorLocked Mode = iota
	// FreeBrowse means the user scrolled away independently.
	FreeBrowse
	// RevealPending means an explicit jump asked for a specific reveal.
	RevealPending
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case CursorLocked:
		return "cursor-locked"
	case FreeBrowse:
		return "free-browse"
	case RevealPending:
		return "reveal-pending"
	default:
		return "unknown"
	}
}

// RevealMode selects where an off-screen cursor lands.
type RevealMode uint8

const (
	// Minimal scrolls just enough to bring the cursor into the safe zone.
	Minimal RevealMode = iota
	// TopAligned places the cursor at the top of the safe zone.
	TopAligned
	// BottomAligned places the cursor at the bottom of the safe zone.
	BottomAligned
	// Centered places the cursor in the middle of the viewport.
	Centered
)

// String returns the reveal mode name.
func (r RevealMode) String() string {
	switch r {
	case Minimal:
		return "minimal"
	case TopAligned:
		return "top"
	case BottomAligned:
		return "bottom"
	case Centered:
		return "center"
	default:
		return "unknown"
	}
}

// RequestReveal makes the next EnsureVisible use mode r.
func (v *Viewport) RequestReveal(r RevealMode) {
	v.mode = RevealPending
	v.pending = r
}

// EnsureVisible scrolls so the cursor at line and visual column col sits
// inside the safe zone, using the pending reveal mode if one was requested
// and Minimal otherwise. The viewport returns to cursor-locked mode. It
// returns true if the viewport moved.
func (v *Viewport) EnsureVisible(line, col int) bool {
	mode := Minimal
	if v.mode == RevealPending {
		mode = v.pending
	}
	v.mode = CursorLocked
	v.pending = Minimal
	return v.Reveal(line, col, mode)
}

// Reveal scrolls so the cursor is inside the safe zone using mode r. Both
// boundaries are checked on both axes regardless of how the cursor got
// there, so a cursor left far behind by free scrolling snaps back in
// whichever direction it lies.
func (v *Viewport) Reveal(line, col int, r RevealMode) bool {
	top, left := v.topLine, v.leftColumn
	v.revealLine(max(line, 0), r)
	v.revealColumn(max(col, 0))
	return top != v.topLine || left != v.leftColumn
}

func (v *Viewport) revealLine(line int, r RevealMode) {
	if v.lines == 0 || (v.lineCount > 0 && v.lineCount <= v.lines) {
		v.topLine = 0
		return
	}
	m := v.EffectiveMargins()
	safeTop := v.topLine + m.Top
	safeBottom := v.topLine + max(v.lines-m.Bottom-1, 0)

	above := line < safeTop
	below := line > safeBottom
	if !above && !below {
		return
	}

	var top int
	switch r {
	case TopAligned:
		top = line - m.Top
	case BottomAligned:
		top = line + m.Bottom + 1 - v.lines
	case Centered:
		top = line - v.lines/2
	default:
		if above {
			top = line - m.Top
		} else {
			top = line + m.Bottom + 1 - v.lines
		}
	}
	v.topLine = max(top, 0)
	if v.lineCount > 0 {
		v.topLine = min(v.topLine, v.MaxTop())
	}
}

func (v *Viewport) revealColumn(col int) {
	if v.columns == 0 {
		return
	}
	m := v.EffectiveMargins()
	leftSafe := v.leftColumn + m.Left
	rightSafe := max(v.leftColumn+v.columns-m.Right, leftSafe+1)

	switch {
	case col < leftSafe:
		v.leftColumn = max(col-m.Left, 0)
	case col >= rightSafe:
		v.leftColumn = max(col+m.Right+1-v.columns, 0)
	}
}

// CenterOn places line in the middle of the viewport.
func (v *Viewport) CenterOn(line int) {
	v.ScrollTo(line - v.lines/2)
}
