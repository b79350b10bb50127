package history_test

import (
	"strings"

	"github.com/cozy/prosemirror-history/internal/testdoc"
	"github.com/cozy/prosemirror-history/model"
	"github.com/cozy/prosemirror-history/selection"
	"github.com/cozy/prosemirror-history/transform"
)

func insertText(doc *model.Node, pos int, text string) *transform.Transform {
	tr := transform.NewTransform(doc)
	slice := model.NewSlice(model.FragmentFrom([]*model.Node{testdoc.Text(text)}), 0, 0)
	if err := tr.Insert(pos, slice); err != nil {
		panic(err)
	}
	return tr
}

func deleteRange(doc *model.Node, from, to int) *transform.Transform {
	tr := transform.NewTransform(doc)
	if err := tr.Delete(from, to); err != nil {
		panic(err)
	}
	return tr
}

func splitParagraph(doc *model.Node, pos int) *transform.Transform {
	tr := transform.NewTransform(doc)
	slice := model.NewSlice(model.FragmentFrom([]*model.Node{testdoc.P(""), testdoc.P("")}), 1, 1)
	if err := tr.Replace(pos, pos, slice); err != nil {
		panic(err)
	}
	return tr
}

func cursor(pos int) *selection.JSON {
	return &selection.JSON{Type: "text", Anchor: pos, Head: pos}
}

// paragraphText joins every paragraph's text content with "\n", the way the
// end-to-end scenarios describe a multi-paragraph document.
func paragraphText(doc *model.Node) string {
	var parts []string
	for i := 0; i < doc.ChildCount(); i++ {
		block := doc.Child(i)
		var text strings.Builder
		for j := 0; j < block.ChildCount(); j++ {
			text.WriteString(block.Child(j).Text)
		}
		parts = append(parts, text.String())
	}
	return strings.Join(parts, "\n")
}
