package history

import (
	"fmt"
	"slices"

	"github.com/dshills/scribe/internal/engine/cursor"
)

// Target is the text an operation edits. *buffer.Buffer satisfies it.
type Target interface {
	Insert(offset int, text string) error
	Delete(offset, length int) error
}

// Snapshot is a saved cursor state.
type Snapshot struct {
	Cursors []cursor.Cursor
	Active  int
}

// Single returns a snapshot holding one cursor.
func Single(c cursor.Cursor) Snapshot {
	return Snapshot{Cursors: []cursor.Cursor{c}}
}

// SnapshotOf captures the cursors of a set.
func SnapshotOf(s *cursor.Set) Snapshot {
	return Snapshot{Cursors: s.All(), Active: s.ActiveIndex()}
}

// Restore replaces the cursors of s with the snapshot.
func (s Snapshot) Restore(set *cursor.Set) {
	set.Replace(s.Cursors, s.Active)
}

// Operation is one reversible edit. The set of implementations is closed:
// Insert, Delete, Replace and Batch.
type Operation interface {
	// Apply performs the edit forward.
	Apply(t Target) error
	// Revert undoes the edit.
	Revert(t Target) error
	// Before returns the cursor state to restore on undo.
	Before() Snapshot
	// After returns the cursor state to restore on redo.
	After() Snapshot
	// Description names the edit for display.
	Description() string

	operation()
}

// Insert records text inserted at Offset.
type Insert struct {
	Offset       int
	Text         string
	CursorBefore cursor.Cursor
	CursorAfter  cursor.Cursor
}

func (op Insert) Apply(t Target) error  { return t.Insert(op.Offset, op.Text) }
func (op Insert) Revert(t Target) error { return t.Delete(op.Offset, len(op.Text)) }
func (op Insert) Before() Snapshot      { return Single(op.CursorBefore) }
func (op Insert) After() Snapshot       { return Single(op.CursorAfter) }
func (op Insert) Description() string   { return fmt.Sprintf("insert %d bytes", len(op.Text)) }
func (Insert) operation()               {}

// Delete records text removed from Offset.
type Delete struct {
	Offset       int
	Text         string
	CursorBefore cursor.Cursor
	CursorAfter  cursor.Cursor
}

func (op Delete) Apply(t Target) error  { return t.Delete(op.Offset, len(op.Text)) }
func (op Delete) Revert(t Target) error { return t.Insert(op.Offset, op.Text) }
func (op Delete) Before() Snapshot      { return Single(op.CursorBefore) }
func (op Delete) After() Snapshot       { return Single(op.CursorAfter) }
func (op Delete) Description() string   { return fmt.Sprintf("delete %d bytes", len(op.Text)) }
func (Delete) operation()               {}

// Replace records Deleted swapped for Inserted at Offset.
type Replace struct {
	Offset       int
	Deleted      string
	Inserted     string
	CursorBefore cursor.Cursor
	CursorAfter  cursor.Cursor
}

func (op Replace) Apply(t Target) error {
	if err := t.Delete(op.Offset, len(op.Deleted)); err != nil {
		return err
	}
	return t.Insert(op.Offset, op.Inserted)
}

func (op Replace) Revert(t Target) error {
	if err := t.Delete(op.Offset, len(op.Inserted)); err != nil {
		return err
	}
	return t.Insert(op.Offset, op.Deleted)
}

func (op Replace) Before() Snapshot { return Single(op.CursorBefore) }
func (op Replace) After() Snapshot  { return Single(op.CursorAfter) }
func (op Replace) Description() string {
	return fmt.Sprintf("replace %d bytes with %d", len(op.Deleted), len(op.Inserted))
}
func (Replace) operation() {}

// Batch groups operations produced by one command. Operations are stored
// in the order they were applied.
type Batch struct {
	Operations    []Operation
	CursorsBefore Snapshot
	CursorsAfter  Snapshot
}

// Apply re-applies the children in their original order.
func (op Batch) Apply(t Target) error {
	for i, child := range op.Operations {
		if err := child.Apply(t); err != nil {
			return fmt.Errorf("batch step %d: %w", i, err)
		}
	}
	return nil
}

// Revert reverts the children last-first.
func (op Batch) Revert(t Target) error {
	for i := len(op.Operations) - 1; i >= 0; i-- {
		if err := op.Operations[i].Revert(t); err != nil {
			return fmt.Errorf("batch step %d: %w", i, err)
		}
	}
	return nil
}

func (op Batch) Before() Snapshot { return op.CursorsBefore }
func (op Batch) After() Snapshot  { return op.CursorsAfter }
func (op Batch) Description() string {
	return fmt.Sprintf("batch of %d edits", len(op.Operations))
}
func (Batch) operation() {}

// Len returns the number of leaf edits in the batch, counting nested
// batches recursively.
func (op Batch) Len() int {
	n := 0
	for _, child := range op.Operations {
		if b, ok := child.(Batch); ok {
			n += b.Len()
		} else {
			n++
		}
	}
	return n
}

// NewBatch copies ops and the cursor snapshots into a Batch.
func NewBatch(ops []Operation, before, after Snapshot) Batch {
	return Batch{
		Operations:    slices.Clone(ops),
		CursorsBefore: before,
		CursorsAfter:  after,
	}
}
