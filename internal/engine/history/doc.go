// Package history provides the undo/redo log for a document.
//
// # Operations
//
// An Operation is one reversible edit. Four variants exist:
//   - Insert: text inserted at an offset
//   - Delete: text removed from an offset
//   - Replace: deleted text swapped for inserted text at one offset
//   - Batch: child operations that undo and redo as a unit
//
// Every variant stores the full text involved, never a diff, plus the
// cursor state before and after the edit. A Batch is what a multi-cursor
// command produces: its children are stored in application order, so Revert
// walks them last-first and Apply walks them first-last.
//
// # Stack
//
// Stack holds the undo and redo lists:
//
//	s := history.NewStack()
//	s.Push(op)                  // clears redo
//	after, ok, err := s.Undo(buf) // ok is false on an empty stack
//	before, ok, err := s.Redo(buf)
//
// Undo and Redo on an empty stack are no-ops, not errors. An error from
// either one means an operation no longer fits the text it is applied to; in
// a correct editor that is unreachable.
//
// # Saved state
//
// MarkSaved records the current undo depth. IsModified reports whether the
// depth has moved away from that mark, so undoing back to the saved state
// clears the modified flag. Pushing a new edit while the mark sits in the
// discarded redo history makes the saved state unreachable.
package history
