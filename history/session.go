package history

import (
	"github.com/cozy/prosemirror-history/model"
	"github.com/cozy/prosemirror-history/selection"
)

// Session bundles a Config with the current State, standing in for the
// editor's plugin instance (SPEC_FULL.md §6, "history(config) →
// Plugin"): a host without a plugin/dispatch framework of its own can
// still drive the history core through a handful of direct calls.
type Session struct {
	Config Config
	State  *State
}

// New starts a session with an empty history.
func New(cfg Config) *Session {
	return &Session{Config: cfg, State: NewState()}
}

// Dispatch records a transform per the Recorder's decision table.
func (s *Session) Dispatch(action Action) {
	s.State = Apply(s.State, action, s.Config)
}

// Undo pops the most recent event from the done branch and applies it to
// doc, recording the inverse onto the redo branch. Reports false when
// there is nothing to undo.
func (s *Session) Undo(doc *model.Node, selectionBefore *selection.JSON) (*Result, bool) {
	result, ok := Undo(s.State, doc, selectionBefore, s.Config)
	if !ok {
		return nil, false
	}
	s.State = result.HistoryState
	return result, true
}

// Redo is symmetric to Undo.
func (s *Session) Redo(doc *model.Node, selectionBefore *selection.JSON) (*Result, bool) {
	result, ok := Redo(s.State, doc, selectionBefore, s.Config)
	if !ok {
		return nil, false
	}
	s.State = result.HistoryState
	return result, true
}

// UndoDepth is the number of undoable events.
func (s *Session) UndoDepth() int { return UndoDepth(s.State) }

// RedoDepth is the number of redoable events.
func (s *Session) RedoDepth() int { return RedoDepth(s.State) }

// Close resets grouping metadata (the historyClose action), guaranteeing
// the next tracked edit begins a new event.
func (s *Session) Close() {
	s.State = CloseHistory(s.State)
}
