package model_test

import (
	"testing"

	"github.com/cozy/prosemirror-history/internal/testdoc"
	"github.com/cozy/prosemirror-history/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceInlineSplice(t *testing.T) {
	d := testdoc.Doc(testdoc.P("hello"))
	slice := model.NewSlice(model.FragmentFrom([]*model.Node{testdoc.Text("XY")}), 0, 0)
	// "hello" -> replace "ll" (positions 3..5 inside the paragraph) with "XY"
	out, err := model.Replace(d, 3, 5, slice)
	require.NoError(t, err)
	assert.Equal(t, "heXYo", out.Content.Child(0).Content.Child(0).Text)
}

func TestReplaceJoinsTwoParagraphs(t *testing.T) {
	d := testdoc.Doc(testdoc.P("foo"), testdoc.P("bar"))
	// delete the boundary between the two paragraphs: end of "foo" through
	// start of "bar"
	out, err := model.Replace(d, 4, 6, model.EmptySlice)
	require.NoError(t, err)
	require.Equal(t, 1, out.ChildCount())
	assert.Equal(t, "foobar", out.Content.Child(0).Content.Child(0).Text)
}

func TestReplaceInsertsNewParagraph(t *testing.T) {
	d := testdoc.Doc(testdoc.P("foo"))
	slice := model.NewSlice(model.FragmentFrom([]*model.Node{testdoc.P("bar")}), 0, 0)
	out, err := model.Replace(d, 5, 5, slice)
	require.NoError(t, err)
	require.Equal(t, 2, out.ChildCount())
	assert.Equal(t, "foo", out.Content.Child(0).Content.Child(0).Text)
	assert.Equal(t, "bar", out.Content.Child(1).Content.Child(0).Text)
}

func TestReplaceWithSliceOfOwnContent(t *testing.T) {
	d := testdoc.Doc(testdoc.P("hello world"))
	slice, err := d.Slice(1, 6)
	require.NoError(t, err)
	out, err := model.Replace(d, 1, 12, slice)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Content.Child(0).Content.Child(0).Text)
}
