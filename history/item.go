// Package history implements the undo/redo history core: an append-only
// log of inverted steps (Branch), grouped into undo-visible events, that
// can be popped, rebased against remote edits and periodically compressed
// (SPEC_FULL.md §2 component C and friends).
package history

import (
	"github.com/cozy/prosemirror-history/selection"
	"github.com/cozy/prosemirror-history/transform"
)

// noMirror marks an Item that carries no mirrorOffset.
const noMirror = -1

// Item is one entry in a Branch's log: a position map, an optional
// inverted step, an optional selection marker valid before the step was
// applied, and an optional mirror offset recorded during
// undo-with-preserveItems.
//
// An Item is a StepItem iff Step is non-nil; otherwise it is a MapItem,
// recording a remote or non-tracked change below the current history
// depth. An Item is an event boundary iff it carries both a Step and a
// Selection.
type Item struct {
	Map          *transform.StepMap
	Step         transform.Step
	Selection    *selection.JSON
	MirrorOffset int
}

// NewStepItem builds a StepItem.
func NewStepItem(m *transform.StepMap, step transform.Step, sel *selection.JSON) *Item {
	return &Item{Map: m, Step: step, Selection: sel, MirrorOffset: noMirror}
}

// NewMapItem builds a MapItem: a pure position map, no step.
func NewMapItem(m *transform.StepMap) *Item {
	return &Item{Map: m, MirrorOffset: noMirror}
}

// withMirror returns a copy of this item carrying the given mirror offset.
func (it *Item) withMirror(offset int) *Item {
	cp := *it
	cp.MirrorOffset = offset
	return &cp
}

// HasMirror reports whether this item records a mirrorOffset.
func (it *Item) HasMirror() bool {
	return it.MirrorOffset != noMirror
}

// IsStepItem reports whether this item holds an inverted step.
func (it *Item) IsStepItem() bool {
	return it.Step != nil
}

// merge combines this item with the one that immediately follows it,
// provided both are StepItems and other carries no selection (meaning they
// belong to the same still-open event). Both items hold *inverted* steps, so
// undoing them in their original chronological order means applying
// other's step before this one's — hence the merge is asked for as
// other.Step.Merge(it.Step), "other then this", not the other way around.
// On success it returns a new Item whose map is the inverse of the merged
// step's map, whose step is the merged step, and whose selection is
// inherited from this item. The second return reports whether the merge
// succeeded.
func (it *Item) merge(other *Item) (*Item, bool) {
	if it.Step == nil || other.Step == nil || other.Selection != nil {
		return nil, false
	}
	merged, ok := other.Step.Merge(it.Step)
	if !ok {
		return nil, false
	}
	return NewStepItem(merged.GetMap().Invert(), merged, it.Selection), true
}
