package collab

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/cozy/prosemirror-history/model"
	"github.com/cozy/prosemirror-history/transform"
)

// DiffSteps turns a plain-text edit from oldText to newText into the
// minimal run of ReplaceSteps that performs it, anchored at base (the
// document position oldText's first character occupies). It lets tests
// build a transform from two strings instead of hand-rolled step
// construction (SPEC_FULL.md §4.J).
func DiffSteps(base int, oldText, newText string) []*transform.ReplaceStep {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var steps []*transform.ReplaceStep
	pos := base
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			pos += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			n := utf8.RuneCountInString(d.Text)
			steps = append(steps, transform.NewReplaceStep(pos, pos+n, model.EmptySlice))
		case diffmatchpatch.DiffInsert:
			slice := model.NewSlice(model.FragmentFrom([]*model.Node{model.NewText("text", d.Text)}), 0, 0)
			steps = append(steps, transform.NewReplaceStep(pos, pos, slice))
			pos += utf8.RuneCountInString(d.Text)
		}
	}
	return steps
}
