package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cozy/prosemirror-history/history"
	"github.com/cozy/prosemirror-history/internal/testdoc"
	"github.com/cozy/prosemirror-history/model"
	"github.com/cozy/prosemirror-history/transform"
)

// popAll repeatedly pops every event from branch, starting at doc, and
// returns the document text seen after each pop — the "popEvent trace"
// P6 requires compress to leave unchanged.
func popAll(t *testing.T, branch *history.Branch, doc *model.Node) []string {
	t.Helper()
	var texts []string
	for branch.EventCount > 0 {
		res, ok := branch.PopEvent(doc, false)
		require.True(t, ok)
		doc = res.Transform.FinalDoc()
		branch = res.Remaining
		texts = append(texts, paragraphText(doc))
	}
	return texts
}

// P6: compress preserves the observable popEvent trace of a branch built
// from a tracked event, a non-tracked edit recorded as a bare MapItem,
// and a second tracked event on top.
func TestBranchCompressPreservesPopEventTrace(t *testing.T) {
	opts := history.AddOptions{Depth: 100}

	doc0 := testdoc.Doc(testdoc.P(""))
	tr1 := insertText(doc0, 1, "aaa")
	doc1 := tr1.FinalDoc()
	branch := history.Empty.AddTransform(tr1, cursor(1), opts)

	tr2 := insertText(doc1, 4, "zzz")
	doc2 := tr2.FinalDoc()
	branch = branch.AddMaps(tr2.Mapping.Maps)

	tr3 := insertText(doc2, 7, "bbb")
	doc3 := tr3.FinalDoc()
	branch = branch.AddTransform(tr3, cursor(7), opts)

	require.Equal(t, 2, branch.EventCount)
	before := branch.EmptyItemCount()

	wantTrace := popAll(t, branch, doc3)
	require.Equal(t, []string{"aaazzz", "zzz"}, wantTrace, "sanity-check the scenario before comparing against its compressed form")

	compressed := branch.Compress()
	assert.Equal(t, branch.EventCount, compressed.EventCount, "compress must not change eventCount")
	assert.LessOrEqual(t, compressed.EmptyItemCount(), before, "compress only ever drops or merges items")

	gotTrace := popAll(t, compressed, doc3)
	assert.Equal(t, wantTrace, gotTrace, "compress must not change the reconstructed undo trace")
}

// Compressing an already-compressed branch is a no-op on the observable
// trace (compress is idempotent from the caller's point of view).
func TestBranchCompressIdempotent(t *testing.T) {
	opts := history.AddOptions{Depth: 100}

	doc0 := testdoc.Doc(testdoc.P(""))
	tr1 := insertText(doc0, 1, "one")
	doc1 := tr1.FinalDoc()
	branch := history.Empty.AddTransform(tr1, cursor(1), opts)

	tr2 := insertText(doc1, 1, "zero ")
	doc2 := tr2.FinalDoc()
	branch = branch.AddMaps(tr2.Mapping.Maps)

	tr3 := insertText(doc2, 9, " two")
	doc3 := tr3.FinalDoc()
	branch = branch.AddTransform(tr3, cursor(9), opts)

	once := branch.Compress()
	twice := once.Compress()

	assert.Equal(t, popAll(t, once, doc3), popAll(t, twice, doc3))
}

// P7: rebased commutes with undo — undoing a rebased branch removes only
// the local edit it replaced, leaving the remote prefix the rebase
// introduced untouched, and undoing the event below it then drops the
// original tracked content but still leaves the remote edit in the
// document.
func TestBranchRebasedReplacesTrailingStep(t *testing.T) {
	opts := history.AddOptions{Depth: 100}

	doc0 := testdoc.Doc(testdoc.P(""))
	tr1 := insertText(doc0, 1, "base")
	doc1 := tr1.FinalDoc()
	branch := history.Empty.AddTransform(tr1, cursor(1), opts)

	tr2 := insertText(doc1, 5, " right")
	doc2 := tr2.FinalDoc()
	branch = branch.AddTransform(tr2, cursor(5), opts)
	require.Equal(t, 2, branch.EventCount)

	rightStep := tr2.Steps[0]
	invertRight := rightStep.Invert(tr2.Docs[0])

	leftSlice := model.NewSlice(model.FragmentFrom([]*model.Node{testdoc.Text("left ")}), 0, 0)
	leftStep := transform.NewReplaceStep(1, 1, leftSlice)

	rebasedTr := transform.NewTransform(doc2)
	require.NoError(t, rebasedTr.Step(invertRight))
	require.NoError(t, rebasedTr.Step(leftStep))

	rightSlice := model.NewSlice(model.FragmentFrom([]*model.Node{testdoc.Text(" right")}), 0, 0)
	rightPos := rebasedTr.Mapping.Slice(1, 2).Map(5, 1)
	require.NoError(t, rebasedTr.Step(transform.NewReplaceStep(rightPos, rightPos, rightSlice)))
	rebasedTr.Mapping.SetMirror(0, len(rebasedTr.Mapping.Maps)-1)

	doc3 := rebasedTr.FinalDoc()
	require.Equal(t, "left base right", paragraphText(doc3))

	rebased := branch.Rebased(rebasedTr, 1)
	assert.Equal(t, 2, rebased.EventCount, "rebase preserves eventCount (an open question the spec leaves unresolved)")

	popped, ok := rebased.PopEvent(doc3, false)
	require.True(t, ok)
	assert.Equal(t, "left base", paragraphText(popped.Transform.FinalDoc()),
		"undoing the rebased event should drop only the local \" right\" insert")

	popped2, ok := popped.Remaining.PopEvent(popped.Transform.FinalDoc(), false)
	require.True(t, ok)
	assert.Equal(t, "left ", paragraphText(popped2.Transform.FinalDoc()),
		"undoing the event below should drop \"base\" but leave the remote \"left \" insert")
	assert.Equal(t, 0, popped2.Remaining.EventCount)
}

// A rebase dropping zero trailing steps is a no-op.
func TestBranchRebasedZeroCountIsNoop(t *testing.T) {
	opts := history.AddOptions{Depth: 100}
	doc0 := testdoc.Doc(testdoc.P(""))
	tr1 := insertText(doc0, 1, "hi")
	branch := history.Empty.AddTransform(tr1, cursor(1), opts)

	rebasedTr := transform.NewTransform(tr1.FinalDoc())
	require.NoError(t, rebasedTr.Step(insertText(tr1.FinalDoc(), 1, "x").Steps[0]))

	result := branch.Rebased(rebasedTr, 0)
	assert.Equal(t, branch.Items.Length(), result.Items.Length())
	assert.Equal(t, branch.EventCount, result.EventCount)
}
