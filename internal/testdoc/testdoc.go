// Package testdoc builds small two-level documents for tests across model,
// transform and history, the way cozy-prosemirror-go's test/builder package
// built schema-conformant documents for its own tests — stripped down to
// the doc/paragraph/heading/text vocabulary this port's model supports.
package testdoc

import "github.com/cozy/prosemirror-history/model"

// Doc builds a document node out of block children.
func Doc(blocks ...*model.Node) *model.Node {
	return model.NewNode("doc", blocks)
}

// Text builds a bare text node.
func Text(s string) *model.Node {
	return model.NewText("text", s)
}

// P builds a paragraph containing the given text.
func P(text string) *model.Node {
	return model.NewNode("paragraph", []*model.Node{Text(text)})
}

// H1 builds a level-1 heading containing the given text.
func H1(text string) *model.Node {
	return model.NewNode("heading", []*model.Node{Text(text)})
}
