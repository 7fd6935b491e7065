package history

// Stack manages the undo and redo lists of one document.
type Stack struct {
	undo []Operation
	redo []Operation

	// savedDepth is the undo depth at the last MarkSaved, or -1 when that
	// state can no longer be reached.
	savedDepth int

	maxEntries int
}

// Option configures a Stack.
type Option func(*Stack)

// WithMaxEntries caps the undo list. Zero or less means unlimited.
func WithMaxEntries(n int) Option {
	return func(s *Stack) {
		s.maxEntries = max(n, 0)
	}
}

// NewStack creates an empty stack whose initial state counts as saved.
func NewStack(opts ...Option) *Stack {
	s := &Stack{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push records a new operation and clears the redo list.
func (s *Stack) Push(op Operation) {
	if s.savedDepth > len(s.undo) {
		s.savedDepth = -1
	}
	s.undo = append(s.undo, op)
	clear(s.redo)
	s.redo = s.redo[:0]

	if s.maxEntries > 0 && len(s.undo) > s.maxEntries {
		excess := len(s.undo) - s.maxEntries
		clear(s.undo[:excess])
		s.undo = s.undo[excess:]
		if s.savedDepth >= 0 {
			s.savedDepth -= excess
			if s.savedDepth < 0 {
				s.savedDepth = -1
			}
		}
	}
}

// Undo reverts the most recent operation against t and moves it to the
// redo list. It returns the cursor state to restore. On an empty stack it
// returns ok == false and does nothing. If the revert fails the stacks are
// left unchanged.
func (s *Stack) Undo(t Target) (Snapshot, bool, error) {
	if len(s.undo) == 0 {
		return Snapshot{}, false, nil
	}
	op := s.undo[len(s.undo)-1]
	if err := op.Revert(t); err != nil {
		return Snapshot{}, false, err
	}
	s.undo[len(s.undo)-1] = nil
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, op)
	return op.Before(), true, nil
}

// Redo re-applies the most recently undone operation and moves it back to
// the undo list. It returns the cursor state to restore.
func (s *Stack) Redo(t Target) (Snapshot, bool, error) {
	if len(s.redo) == 0 {
		return Snapshot{}, false, nil
	}
	op := s.redo[len(s.redo)-1]
	if err := op.Apply(t); err != nil {
		return Snapshot{}, false, err
	}
	s.redo[len(s.redo)-1] = nil
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, op)
	return op.After(), true, nil
}

// CanUndo returns true if there is an operation to undo.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo returns true if there is an operation to redo.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// UndoDepth returns the number of undoable operations.
func (s *Stack) UndoDepth() int { return len(s.undo) }

// RedoDepth returns the number of redoable operations.
func (s *Stack) RedoDepth() int { return len(s.redo) }

// PeekUndo returns the operation Undo would revert.
func (s *Stack) PeekUndo() (Operation, bool) {
	if len(s.undo) == 0 {
		return nil, false
	}
	return s.undo[len(s.undo)-1], true
}

// MarkSaved records the current state as saved.
func (s *Stack) MarkSaved() {
	s.savedDepth = len(s.undo)
}

// IsModified returns true if the current state differs from the last saved
// state.
func (s *Stack) IsModified() bool {
	return s.savedDepth != len(s.undo)
}

// Clear drops all history. The current state becomes the saved state
// only if it already was.
func (s *Stack) Clear() {
	modified := s.IsModified()
	s.undo = nil
	s.redo = nil
	s.savedDepth = 0
	if modified {
		s.savedDepth = -1
	}
}
