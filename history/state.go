package history

import "github.com/cozy/prosemirror-history/transform"

// State is the immutable snapshot the history plugin carries between
// dispatches: the two branches plus the bookkeeping needed to decide
// whether the next transform joins the currently open event or starts a
// new one (SPEC_FULL.md §4.D).
//
// PrevMap and PrevTime record the map and the host-supplied Action.Time of
// the most recently recorded transform, so the Recorder can test both the
// adjacency rule and the new-group-delay timeout against them.
type State struct {
	Done     *Branch
	Undone   *Branch
	PrevMap  *transform.StepMap
	PrevTime int64
}

// NewState returns a fresh history with no recorded events.
func NewState() *State {
	return &State{Done: Empty, Undone: Empty}
}

// copy returns a shallow copy of s, the basis for every State-producing
// operation (State itself is never mutated in place).
func (s *State) copy() *State {
	cp := *s
	return &cp
}

// withDone returns a copy of s with Done replaced; Undone, PrevMap and
// PrevTime are carried over unchanged.
func (s *State) withDone(done *Branch) *State {
	cp := s.copy()
	cp.Done = done
	return cp
}

// withUndone returns a copy of s with Undone replaced.
func (s *State) withUndone(undone *Branch) *State {
	cp := s.copy()
	cp.Undone = undone
	return cp
}
