// Package cursor provides positions, selections, cursors and cursor sets.
//
// Selections use an anchor/head model:
//   - Anchor: the position where the selection started
//   - Head: the moving end, where typing occurs
//
// When Anchor == Head the selection is empty and represents a caret. A
// selection may run forward (anchor before head) or backward; every
// operation accepts either.
//
// A Cursor is a Selection plus an optional desired column. Vertical
// movement keeps the desired column and clamps only the effective column to
// each line's length, so moving through a short line and back restores the
// original column. Horizontal movement clears it.
//
// Set holds one or more cursors and a designated active (primary) cursor.
// Callers reach the active cursor only through ActiveCursor and
// SetActiveCursor; the index is clamped on every access, so it can never go
// stale after Dedup or MergeOverlapping remove entries. A Set is never
// empty.
//
// Cursor and Selection are value types. Set is not safe for concurrent use.
package cursor
