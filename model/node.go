package model

import "fmt"

// Node represents a node in the tree that makes up a document. A document is
// itself an instance of Node, with children that are also instances of Node.
//
// Nodes are persistent data structures. Instead of changing them, you create
// new ones with the content you want. Old ones keep pointing at the old
// document shape. This is made cheaper by sharing structure between the old
// and new data as much as possible, which a tree shape like this (without
// back pointers) makes easy.
//
// This port carries a document of at most two levels: a "doc" node whose
// children are block nodes (commonly "paragraph"), whose own children are
// text leaves. That is enough to exercise every position-mapping and
// splice/join scenario the history core needs to reconstruct, without pulling
// in a general recursive schema — which belongs to the document model
// component this port treats as a fixed, minimal stand-in for an external
// collaborator (see SPEC_FULL.md §1/§3).
//
// Do not directly mutate the fields of a Node.
type Node struct {
	// Kind names the node's type ("doc", "paragraph", "text", ...). Two
	// nodes with the same Kind are considered to have the same markup,
	// whatever their Text.
	Kind string
	// Content holds this node's children. nil for text nodes.
	Content *Fragment
	// Text holds this node's character content. Only set on text nodes.
	Text string
}

// NewNode builds a non-text node from a kind and a list of children.
func NewNode(kind string, children []*Node) *Node {
	content := FragmentFrom(children)
	return &Node{Kind: kind, Content: content}
}

// NewText builds a text leaf node.
func NewText(kind, text string) *Node {
	return &Node{Kind: kind, Text: text}
}

// IsText reports whether this is a text node.
func (n *Node) IsText() bool {
	return n.Content == nil
}

// NodeSize is the size of this node, as defined by the integer-based indexing
// scheme. For text nodes, this is the number of characters. For non-leaf
// nodes, it is the size of the content plus two (the opening and closing
// token).
func (n *Node) NodeSize() int {
	if n.IsText() {
		return len(n.Text)
	}
	return 2 + n.Content.Size
}

// ChildCount returns the number of children this node has.
func (n *Node) ChildCount() int {
	if n.Content == nil {
		return 0
	}
	return n.Content.ChildCount()
}

// Child returns the child at the given index, panicking if out of range.
func (n *Node) Child(index int) *Node {
	return n.Content.Child(index)
}

// MaybeChild returns the child at the given index, or nil if out of range.
func (n *Node) MaybeChild(index int) *Node {
	if n.Content == nil {
		return nil
	}
	return n.Content.MaybeChild(index)
}

// SameMarkup reports whether this node and another have the same kind (and,
// for text nodes, are eligible to be merged by FragmentFrom/Append).
func (n *Node) SameMarkup(other *Node) bool {
	return other != nil && n.Kind == other.Kind
}

// Copy creates a copy of this node with different content but the same kind.
func (n *Node) Copy(content *Fragment) *Node {
	if content == nil {
		content = EmptyFragment
	}
	return &Node{Kind: n.Kind, Content: content}
}

// Cut creates a copy of this node with only the content between the given
// positions. For a text node, from/to are character offsets; for any other
// node, they are offsets into its content.
func (n *Node) Cut(from int, to ...int) *Node {
	if n.IsText() {
		end := len(n.Text)
		if len(to) > 0 {
			end = to[0]
		}
		if from == 0 && end == len(n.Text) {
			return n
		}
		return NewText(n.Kind, n.Text[from:end])
	}
	end := n.Content.Size
	if len(to) > 0 {
		end = to[0]
	}
	if from == 0 && end == n.Content.Size {
		return n
	}
	content, err := n.Content.Cut(from, end)
	if err != nil {
		panic(err)
	}
	return n.Copy(content)
}

// Resolve resolves a position inside this node, returning context about its
// ancestors.
func (n *Node) Resolve(pos int) (*ResolvedPos, error) {
	return resolvePos(n, pos)
}

// Slice extracts the fragment between the two given positions, expressed as
// an open slice (see Slice).
func (n *Node) Slice(from int, to ...int) (*Slice, error) {
	end := n.Content.Size
	if len(to) > 0 {
		end = to[0]
	}
	if from == end {
		return EmptySlice, nil
	}
	rFrom, err := n.Resolve(from)
	if err != nil {
		return nil, err
	}
	rTo, err := n.Resolve(end)
	if err != nil {
		return nil, err
	}
	depth := rFrom.SharedDepth(end)
	start := rFrom.Start(depth)
	parent := rFrom.Node(depth)
	content, err := parent.Content.Cut(rFrom.Pos-start, rTo.Pos-start)
	if err != nil {
		return nil, err
	}
	return NewSlice(content, rFrom.Depth-depth, rTo.Depth-depth), nil
}

// Eq reports whether this node is structurally equal to another.
func (n *Node) Eq(other *Node) bool {
	if n == other {
		return true
	}
	if other == nil || n.Kind != other.Kind {
		return false
	}
	if n.IsText() || other.IsText() {
		return n.IsText() && other.IsText() && n.Text == other.Text
	}
	return n.Content.Eq(other.Content)
}

func (n *Node) String() string {
	if n.IsText() {
		return fmt.Sprintf("%q", n.Text)
	}
	if n.Content.Size == 0 {
		return n.Kind
	}
	return fmt.Sprintf("%s%s", n.Kind, n.Content.String())
}
