package cursor

// Cursor is a selection plus the column vertical movement aims for.
// The zero value is a caret at 0:0 with no desired column.
type Cursor struct {
	Selection Selection

	desired    int
	hasDesired bool
}

// At creates a cursor with an empty selection at pos.
func At(pos Position) Cursor {
	return Cursor{Selection: Caret(pos)}
}

// FromSelection creates a cursor with the given selection.
func FromSelection(sel Selection) Cursor {
	return Cursor{Selection: sel}
}

// Head returns the moving end (the caret position).
func (c Cursor) Head() Position {
	return c.Selection.Head
}

// Anchor returns the fixed end of the selection.
func (c Cursor) Anchor() Position {
	return c.Selection.Anchor
}

// HasSelection returns true if the selection is non-empty.
func (c Cursor) HasSelection() bool {
	return !c.Selection.IsEmpty()
}

// DesiredColumn returns the remembered column, if any.
func (c Cursor) DesiredColumn() (int, bool) {
	return c.desired, c.hasDesired
}

// WithDesiredColumn returns the cursor remembering col.
func (c Cursor) WithDesiredColumn(col int) Cursor {
	c.desired = col
	c.hasDesired = true
	return c
}

// ClearDesiredColumn returns the cursor without a remembered column.
func (c Cursor) ClearDesiredColumn() Cursor {
	c.desired = 0
	c.hasDesired = false
	return c
}

// RememberColumn returns the cursor remembering its current column unless
// a desired column is already set.
func (c Cursor) RememberColumn() Cursor {
	if c.hasDesired {
		return c
	}
	return c.WithDesiredColumn(c.Selection.Head.Column)
}

// TargetColumn returns the desired column if set, else the head column.
func (c Cursor) TargetColumn() int {
	if c.hasDesired {
		return c.desired
	}
	return c.Selection.Head.Column
}

// MoveTo returns a caret at pos, clearing the desired column.
func (c Cursor) MoveTo(pos Position) Cursor {
	return At(pos)
}

// MoveVertical returns a caret at pos that keeps the desired column.
func (c Cursor) MoveVertical(pos Position) Cursor {
	c = c.RememberColumn()
	c.Selection = Caret(pos)
	return c
}

// ExtendTo returns the cursor with its head at pos, clearing the desired
// column.
func (c Cursor) ExtendTo(pos Position) Cursor {
	return Cursor{Selection: c.Selection.Extend(pos)}
}

// ExtendVertical returns the cursor with its head at pos, keeping the
// desired column.
func (c Cursor) ExtendVertical(pos Position) Cursor {
	c = c.RememberColumn()
	c.Selection = c.Selection.Extend(pos)
	return c
}
