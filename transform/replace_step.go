package transform

import "github.com/cozy/prosemirror-history/model"

// ReplaceStep replaces the range [From, To) of a document with a slice of
// new content. It is the only step kind this port needs: every action the
// history core has to record, invert and remap — typing, deleting,
// splitting, joining — is a replace at heart (SPEC_FULL.md §6).
type ReplaceStep struct {
	From  int
	To    int
	Slice *model.Slice
}

// NewReplaceStep is the constructor of ReplaceStep. The given slice should
// fit the gap between from and to: the open depths must line up with the
// insertion point.
func NewReplaceStep(from, to int, slice *model.Slice) *ReplaceStep {
	return &ReplaceStep{From: from, To: to, Slice: slice}
}

// Apply is a method of the Step interface.
func (s *ReplaceStep) Apply(doc *model.Node) StepResult {
	return FromReplace(doc, s.From, s.To, s.Slice)
}

// GetMap is a method of the Step interface.
func (s *ReplaceStep) GetMap() *StepMap {
	return NewStepMap([]int{s.From, s.To - s.From, s.Slice.Size()})
}

// Invert is a method of the Step interface. It needs the document the step
// applied to, in order to recover the content that was overwritten.
func (s *ReplaceStep) Invert(doc *model.Node) Step {
	slice, err := doc.Slice(s.From, s.To)
	if err != nil {
		panic(err)
	}
	return NewReplaceStep(s.From, s.From+s.Slice.Size(), slice)
}

// Map is a method of the Step interface. It returns nil when both ends of
// the step's range have been deleted by the mapping, meaning the step has
// nothing left to do.
func (s *ReplaceStep) Map(mapping Mappable) Step {
	from := mapping.MapResult(s.From, 1)
	to := mapping.MapResult(s.To, -1)
	if from.Deleted && to.Deleted {
		return nil
	}
	max := from.Pos
	if to.Pos > max {
		max = to.Pos
	}
	return NewReplaceStep(from.Pos, max, s.Slice)
}

// Merge is a method of the Step interface. It combines two adjacent replace
// steps into one when the first's insertion ends exactly where the second's
// begins (or vice versa), which is what lets the history core group a run of
// single-character typing into one undoable item.
func (s *ReplaceStep) Merge(other Step) (Step, bool) {
	repl, ok := other.(*ReplaceStep)
	if !ok {
		return nil, false
	}
	if s.From+s.Slice.Size() == repl.From && s.Slice.OpenStart == 0 && repl.Slice.OpenEnd == 0 {
		slice := model.EmptySlice
		if s.Slice.Size()+repl.Slice.Size() != 0 {
			slice = model.NewSlice(s.Slice.Content.Append(repl.Slice.Content), s.Slice.OpenStart, repl.Slice.OpenEnd)
		}
		return NewReplaceStep(s.From, s.To+repl.To-repl.From, slice), true
	}
	if repl.To == s.From && repl.Slice.OpenStart == 0 && s.Slice.OpenEnd == 0 {
		slice := model.EmptySlice
		if s.Slice.Size()+repl.Slice.Size() != 0 {
			slice = model.NewSlice(repl.Slice.Content.Append(s.Slice.Content), repl.Slice.OpenStart, s.Slice.OpenEnd)
		}
		return NewReplaceStep(repl.From, s.To, slice), true
	}
	return nil, false
}

// ReplaceStepJSON is the wire representation of a ReplaceStep, used by the
// collab transport.
type ReplaceStepJSON struct {
	StepType string           `json:"stepType"`
	From     int              `json:"from"`
	To       int              `json:"to"`
	Slice    *model.SliceJSON `json:"slice,omitempty"`
}

// ToJSON converts this step to its wire representation.
func (s *ReplaceStep) ToJSON() *ReplaceStepJSON {
	obj := &ReplaceStepJSON{StepType: "replace", From: s.From, To: s.To}
	if s.Slice.Size() > 0 {
		obj.Slice = s.Slice.ToJSON()
	}
	return obj
}

// ReplaceStepFromJSON rebuilds a ReplaceStep from its wire representation.
func ReplaceStepFromJSON(obj *ReplaceStepJSON) *ReplaceStep {
	return NewReplaceStep(obj.From, obj.To, model.SliceFromJSON(obj.Slice))
}

var _ Step = &ReplaceStep{}
