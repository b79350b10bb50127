// Package transform implements document transforms, which are used by the
// editor to treat changes as first-class values, which can be saved, shared,
// and reasoned about.
package transform

import "github.com/cozy/prosemirror-history/model"

// Step is an atomic document edit with a known inverse and a position map.
// It is the contract the history core depends on (SPEC_FULL.md §6): invert,
// map through a remapping, merge with an adjacent step, and expose the
// position map it describes.
type Step interface {
	// Apply tries to run this step against a document, producing a
	// StepResult (failed, or carrying the resulting doc).
	Apply(doc *model.Node) StepResult
	// GetMap returns the position map implied by this step.
	GetMap() *StepMap
	// Invert returns a step that undoes this one, given the document it
	// applied to (the document before the step).
	Invert(doc *model.Node) Step
	// Map maps this step forward through a remapping, returning nil when
	// the step's effect has been entirely consumed by what the mapping
	// describes.
	Map(mapping Mappable) Step
	// Merge tries to combine this step with one that immediately follows
	// it, returning the combined step and true on success.
	Merge(other Step) (Step, bool)
}

// StepResult is the result of applying a Step to a document: either the new
// document, or a failure message. There is no panic/exception path — a step
// that cannot apply simply reports Failed.
type StepResult struct {
	Doc    *model.Node
	Failed string
}

// Ok builds a successful StepResult.
func Ok(doc *model.Node) StepResult {
	return StepResult{Doc: doc}
}

// Fail builds a failed StepResult.
func Fail(message string) StepResult {
	return StepResult{Failed: message}
}

// FromReplace builds a StepResult by replacing the range [from, to) of doc
// with slice, reporting failure instead of panicking if the replace is not
// well-formed.
func FromReplace(doc *model.Node, from, to int, slice *model.Slice) StepResult {
	newDoc, err := model.Replace(doc, from, to, slice)
	if err != nil {
		return Fail(err.Error())
	}
	return Ok(newDoc)
}
