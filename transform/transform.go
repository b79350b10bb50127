package transform

import (
	"errors"

	"github.com/cozy/prosemirror-history/model"
)

// Transform is an ordered list of steps, applied in sequence, each mapped
// through the combined effect of the ones before it. It is the external
// interface the history core is written against (SPEC_FULL.md §6): the
// Recorder reads a finished Transform's Steps/Docs/Mapping once a dispatch
// has gone through, and never reaches into a single Step on its own.
type Transform struct {
	// Doc is the document the transform started from.
	Doc *model.Node
	// Steps holds the steps applied so far, in order.
	Steps []Step
	// Docs holds the intermediate documents: Docs[i] is the doc Steps[i]
	// was applied to.
	Docs []*model.Node
	// Mapping composes the position maps of Steps.
	Mapping *Mapping

	// curDoc is the document produced by the most recently applied step
	// (or Doc, if no step has been applied yet).
	curDoc *model.Node
}

// NewTransform starts a transform from the given document.
func NewTransform(doc *model.Node) *Transform {
	return &Transform{Doc: doc, Mapping: NewMapping()}
}

// DocChanged reports whether any step has been applied yet.
func (t *Transform) DocChanged() bool {
	return len(t.Steps) > 0
}

// Before is the document the transform started from (Doc), exposed under
// the name the rest of the step machinery expects.
func (t *Transform) Before() *model.Node {
	if len(t.Docs) > 0 {
		return t.Docs[0]
	}
	return t.Doc
}

// errFailed is returned by Step when a step could not be applied.
var errFailed = errors.New("step failed")

// Step appends a step to this transform, applying it to the current
// document. It returns an error (without mutating the transform) if the
// step fails to apply.
func (t *Transform) Step(step Step) error {
	result := step.Apply(t.current())
	if result.Failed != "" {
		return errors.New(result.Failed)
	}
	t.addStep(step, result.Doc)
	return nil
}

// MaybeStep is like Step, but never returns an error: if the step fails to
// apply, the transform is left unchanged and result.Failed carries the
// reason. This matches the "soft failure" contract actions rely on
// (SPEC_FULL.md §6: "Supports maybeStep(step) → {doc?}").
func (t *Transform) MaybeStep(step Step) StepResult {
	result := step.Apply(t.current())
	if result.Failed == "" {
		t.addStep(step, result.Doc)
	}
	return result
}

// FinalDoc is the document produced by the last applied step, or Doc if
// no step has been applied yet.
func (t *Transform) FinalDoc() *model.Node {
	return t.current()
}

func (t *Transform) current() *model.Node {
	if t.curDoc != nil {
		return t.curDoc
	}
	return t.Doc
}

func (t *Transform) addStep(step Step, doc *model.Node) {
	t.Docs = append(t.Docs, t.current())
	t.Steps = append(t.Steps, step)
	t.Mapping.AppendMap(step.GetMap())
	t.curDoc = doc
}

// Replace is a convenience wrapper building and applying a ReplaceStep.
func (t *Transform) Replace(from, to int, slice *model.Slice) error {
	return t.Step(NewReplaceStep(from, to, slice))
}

// Delete removes the range [from, to).
func (t *Transform) Delete(from, to int) error {
	return t.Replace(from, to, model.EmptySlice)
}

// Insert places slice at pos.
func (t *Transform) Insert(pos int, slice *model.Slice) error {
	return t.Replace(pos, pos, slice)
}
