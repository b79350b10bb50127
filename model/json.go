package model

// NodeJSON is the wire representation of a Node, used by the collab
// transport to ship steps between clients without sharing Go pointers.
type NodeJSON struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Content []*NodeJSON `json:"content,omitempty"`
}

// ToJSON converts a Node to its wire representation.
func (n *Node) ToJSON() *NodeJSON {
	if n.IsText() {
		return &NodeJSON{Kind: n.Kind, Text: n.Text}
	}
	children := make([]*NodeJSON, n.ChildCount())
	for i := 0; i < n.ChildCount(); i++ {
		children[i] = n.Child(i).ToJSON()
	}
	return &NodeJSON{Kind: n.Kind, Content: children}
}

// NodeFromJSON rebuilds a Node from its wire representation.
func NodeFromJSON(obj *NodeJSON) *Node {
	if obj == nil {
		return nil
	}
	if obj.Content == nil {
		return NewText(obj.Kind, obj.Text)
	}
	children := make([]*Node, len(obj.Content))
	for i, c := range obj.Content {
		children[i] = NodeFromJSON(c)
	}
	return NewNode(obj.Kind, children)
}

// SliceJSON is the wire representation of a Slice.
type SliceJSON struct {
	Content   []*NodeJSON `json:"content,omitempty"`
	OpenStart int         `json:"openStart,omitempty"`
	OpenEnd   int         `json:"openEnd,omitempty"`
}

// ToJSON converts a Slice to its wire representation.
func (s *Slice) ToJSON() *SliceJSON {
	children := make([]*NodeJSON, s.Content.ChildCount())
	for i := 0; i < s.Content.ChildCount(); i++ {
		children[i] = s.Content.Child(i).ToJSON()
	}
	return &SliceJSON{Content: children, OpenStart: s.OpenStart, OpenEnd: s.OpenEnd}
}

// SliceFromJSON rebuilds a Slice from its wire representation. A nil obj
// yields the empty slice.
func SliceFromJSON(obj *SliceJSON) *Slice {
	if obj == nil {
		return EmptySlice
	}
	nodes := make([]*Node, len(obj.Content))
	for i, c := range obj.Content {
		nodes[i] = NodeFromJSON(c)
	}
	return NewSlice(FragmentFrom(nodes), obj.OpenStart, obj.OpenEnd)
}
