package model

import "fmt"

// A fragment represents a node's collection of child nodes.
//
// Like nodes, fragments are persistent data structures, and you should not
// mutate them or their content. Rather, you create new instances whenever
// needed. The API tries to make this easy.
type Fragment struct {
	Content []*Node
	Size    int
}

// FragmentFrom builds a fragment from an array of nodes. Adjacent text nodes
// with the same markup are joined, mirroring how a document is never allowed
// to contain two text nodes next to each other.
func FragmentFrom(nodes []*Node) *Fragment {
	var content []*Node
	size := 0
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if n.IsText() && len(content) > 0 {
			last := content[len(content)-1]
			if last.IsText() && last.SameMarkup(n) {
				content[len(content)-1] = NewText(last.Kind, last.Text+n.Text)
				size += n.NodeSize()
				continue
			}
		}
		content = append(content, n)
		size += n.NodeSize()
	}
	return &Fragment{Content: content, Size: size}
}

// EmptyFragment is the empty fragment, used as the content of leaf nodes and
// as the base case when building up larger fragments.
var EmptyFragment = &Fragment{}

// ChildCount returns the number of child nodes in this fragment.
func (f *Fragment) ChildCount() int {
	return len(f.Content)
}

// Child gets the child node at the given index. Panics when the index is out
// of range.
func (f *Fragment) Child(index int) *Node {
	if index < 0 || index >= len(f.Content) {
		panic(fmt.Errorf("index %d out of range for fragment of size %d", index, len(f.Content)))
	}
	return f.Content[index]
}

// MaybeChild gets the child node at the given index, returning nil instead of
// panicking when the index is out of range.
func (f *Fragment) MaybeChild(index int) *Node {
	if index < 0 || index >= len(f.Content) {
		return nil
	}
	return f.Content[index]
}

// findIndex locates the child that position pos falls into, returning the
// index and the position right before that child. When pos lands exactly on a
// child boundary, index points after the preceding child.
func (f *Fragment) findIndex(pos int) (int, int, error) {
	if pos == 0 {
		return 0, 0, nil
	}
	if pos == f.Size {
		return len(f.Content), pos, nil
	}
	if pos > f.Size || pos < 0 {
		return 0, 0, fmt.Errorf("position %d outside of fragment (size %d)", pos, f.Size)
	}
	curPos := 0
	for i, child := range f.Content {
		end := curPos + child.NodeSize()
		if end >= pos {
			if end == pos {
				return i + 1, end, nil
			}
			return i, curPos, nil
		}
		curPos = end
	}
	return 0, 0, fmt.Errorf("position %d outside of fragment (size %d)", pos, f.Size)
}

// Append concatenates this fragment with another, returning a new fragment.
// Adjacent text nodes at the seam are joined the same way FragmentFrom joins
// them.
func (f *Fragment) Append(other *Fragment) *Fragment {
	if f.Size == 0 {
		return other
	}
	if other.Size == 0 {
		return f
	}
	nodes := make([]*Node, 0, len(f.Content)+len(other.Content))
	nodes = append(nodes, f.Content...)
	nodes = append(nodes, other.Content...)
	return FragmentFrom(nodes)
}

// Cut extracts the content between the given positions, recursing into a
// child when the cut edge falls inside it (one token of `from`/`to` accounts
// for the child's own opening/closing boundary).
func (f *Fragment) Cut(from int, to ...int) (*Fragment, error) {
	end := f.Size
	if len(to) > 0 {
		end = to[0]
	}
	if from == 0 && end == f.Size {
		return f, nil
	}
	var result []*Node
	pos := 0
	for i := 0; pos < end && i < len(f.Content); i++ {
		child := f.Content[i]
		childEnd := pos + child.NodeSize()
		if childEnd > from {
			cur := child
			if pos < from || childEnd > end {
				lo, hi := from-pos, end-pos
				if child.IsText() {
					if lo < 0 {
						lo = 0
					}
					if hi > len(child.Text) {
						hi = len(child.Text)
					}
				} else {
					lo--
					hi--
					if lo < 0 {
						lo = 0
					}
					if hi > child.Content.Size {
						hi = child.Content.Size
					}
				}
				cur = child.Cut(lo, hi)
			}
			result = append(result, cur)
		}
		pos = childEnd
	}
	return FragmentFrom(result), nil
}

// ReplaceChild returns a copy of this fragment with the child at index
// replaced by the given node.
func (f *Fragment) ReplaceChild(index int, node *Node) *Fragment {
	nodes := make([]*Node, len(f.Content))
	copy(nodes, f.Content)
	nodes[index] = node
	return FragmentFrom(nodes)
}

// Eq reports whether this fragment is structurally equal to another.
func (f *Fragment) Eq(other *Fragment) bool {
	if f == other {
		return true
	}
	if other == nil || len(f.Content) != len(other.Content) {
		return false
	}
	for i, n := range f.Content {
		if !n.Eq(other.Content[i]) {
			return false
		}
	}
	return true
}

func (f *Fragment) String() string {
	s := "<"
	for i, n := range f.Content {
		if i > 0 {
			s += ", "
		}
		s += n.String()
	}
	return s + ">"
}
