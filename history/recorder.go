package history

import (
	"github.com/cozy/prosemirror-history/selection"
	"github.com/cozy/prosemirror-history/transform"
)

// Action is the host's dispatch payload the Recorder consumes
// (SPEC_FULL.md §6, "Host-dispatched actions consumed").
type Action struct {
	// Transform is the transform being recorded. Required unless
	// HistoryState is set.
	Transform *transform.Transform
	// Time is the host's timestamp for this action, in the same units as
	// Config.NewGroupDelay. Absent (zero value) behaves as 0.
	Time int64
	// AddToHistory, when non-nil and false, routes the transform onto the
	// non-tracked path. Nil or true means tracked.
	AddToHistory *bool
	// Rebased, when non-nil, is the count of trailing local steps the
	// collaboration layer replaced; Transform is the replacement.
	Rebased *int
	// HistoryState, when non-nil, is installed verbatim — the shifter's
	// way of publishing its own computed result without going through
	// the rest of the decision table.
	HistoryState *State
	// SelectionBefore is the editor's selection immediately before
	// Transform was applied, used as the event-boundary marker when a
	// new event starts.
	SelectionBefore *selection.JSON
}

func addToHistory(a Action) bool {
	return a.AddToHistory == nil || *a.AddToHistory
}

// Apply produces the next HistoryState for a dispatched action, following
// the decision table in SPEC_FULL.md §4.E.
func Apply(state *State, action Action, cfg Config) *State {
	if action.HistoryState != nil {
		return action.HistoryState
	}

	steps := 0
	if action.Transform != nil {
		steps = len(action.Transform.Steps)
	}
	if steps == 0 {
		return state
	}

	if addToHistory(action) {
		return groupOrAppend(state, action, cfg)
	}

	if action.Rebased != nil {
		return rebase(state, action)
	}

	maps := action.Transform.Mapping.Maps
	return state.withDone(state.Done.AddMaps(maps)).withUndone(state.Undone.AddMaps(maps))
}

func groupOrAppend(state *State, action Action, cfg Config) *State {
	tr := action.Transform
	timeExceeded := state.PrevTime < action.Time-cfg.NewGroupDelay
	newEvent := timeExceeded || !isAdjacent(tr, state.PrevMap, state.Done)

	var sel *selection.JSON
	if newEvent {
		sel = action.SelectionBefore
	}

	newDone := state.Done.AddTransform(tr, sel, cfg.addOptions())
	lastMap := tr.Mapping.Maps[len(tr.Mapping.Maps)-1]

	return &State{Done: newDone, Undone: Empty, PrevMap: lastMap, PrevTime: action.Time}
}

func rebase(state *State, action Action) *State {
	count := *action.Rebased
	newDone := state.Done.Rebased(action.Transform, count)
	newUndone := state.Undone.Rebased(action.Transform, count)

	next := &State{Done: newDone, Undone: newUndone, PrevMap: state.PrevMap, PrevTime: state.PrevTime}
	if state.PrevMap != nil {
		maps := action.Transform.Mapping.Maps
		next.PrevMap = maps[len(maps)-1]
	}
	return next
}

// isAdjacent implements the adjacency rule (SPEC_FULL.md §4.E): a touched
// range of tr's first step's map, pulled back through done's trailing
// MapItems into the coordinate space prevMap was recorded in, overlaps a
// touched range of prevMap.
func isAdjacent(tr *transform.Transform, prevMap *transform.StepMap, done *Branch) bool {
	if prevMap == nil || len(tr.Steps) == 0 {
		return false
	}
	firstMap := tr.Steps[0].GetMap()
	if len(firstMap.Ranges) == 0 {
		return true
	}

	adjacent := false
	firstMap.ForEach(func(_, _, newStart, newEnd int) {
		if adjacent {
			return
		}
		start, end := newStart, newEnd
		length := done.Items.Length()
		for i := length - 1; i >= 0; i-- {
			it := done.item(i)
			if it.IsStepItem() {
				break
			}
			inv := it.Map.Invert()
			start, end = inv.Map(start, -1), inv.Map(end, 1)
		}
		prevMap.ForEach(func(_, _, pStart, pEnd int) {
			// Touching endpoints count as adjacent: typing "b" right after
			// "a" is the same event even though the two touched ranges
			// only share a boundary point, not an interior.
			if start <= pEnd && pStart <= end {
				adjacent = true
			}
		})
	})
	return adjacent
}

// CloseHistory resets grouping metadata, guaranteeing the next tracked
// edit begins a new event (the historyClose action, SPEC_FULL.md §4.E).
func CloseHistory(state *State) *State {
	cp := state.copy()
	cp.PrevMap = nil
	cp.PrevTime = 0
	return cp
}
