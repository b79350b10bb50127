package history

import (
	"github.com/cozy/prosemirror-history/model"
	"github.com/cozy/prosemirror-history/selection"
	"github.com/cozy/prosemirror-history/transform"
)

// Result is what Undo/Redo hands back to the host on success: the
// reconstructed inverse transform, the selection to restore, and the
// HistoryState to install (SPEC_FULL.md §4.F, the action the shifter
// emits).
type Result struct {
	Transform    *transform.Transform
	Selection    *selection.JSON
	HistoryState *State
}

// shift pops one event from source and records its inverse onto other,
// so an undo always produces a redo entry and vice versa.
func shift(source, other *Branch, doc *model.Node, selectionBefore *selection.JSON, cfg Config) (*transform.Transform, *selection.JSON, *Branch, *Branch, bool) {
	pop, ok := source.PopEvent(doc, cfg.PreserveItems)
	if !ok {
		return nil, nil, nil, nil, false
	}
	added := other.AddTransform(pop.Transform, selectionBefore, cfg.addOptions())
	return pop.Transform, pop.Selection, pop.Remaining, added, true
}

// Undo pops the most recent event from the done branch, applying its
// inverse to doc. selectionBefore is the editor's current selection,
// recorded onto the undone branch so a following Redo restores it.
// Reports false ("nothing to undo") when done has no events.
func Undo(state *State, doc *model.Node, selectionBefore *selection.JSON, cfg Config) (*Result, bool) {
	tr, sel, remaining, added, ok := shift(state.Done, state.Undone, doc, selectionBefore, cfg)
	if !ok {
		return nil, false
	}
	next := &State{Done: remaining, Undone: added}
	return &Result{Transform: tr, Selection: sel, HistoryState: next}, true
}

// Redo pops the most recent event from the undone branch. Symmetric to
// Undo.
func Redo(state *State, doc *model.Node, selectionBefore *selection.JSON, cfg Config) (*Result, bool) {
	tr, sel, remaining, added, ok := shift(state.Undone, state.Done, doc, selectionBefore, cfg)
	if !ok {
		return nil, false
	}
	next := &State{Done: added, Undone: remaining}
	return &Result{Transform: tr, Selection: sel, HistoryState: next}, true
}

// UndoDepth is the number of undoable events.
func UndoDepth(state *State) int {
	return state.Done.EventCount
}

// RedoDepth is the number of redoable events.
func RedoDepth(state *State) int {
	return state.Undone.EventCount
}
