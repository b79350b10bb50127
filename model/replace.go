package model

import "fmt"

// A slice represents a piece cut out of a larger document. It stores not only
// a fragment, but also the depth up to which nodes on both side are ‘open’
// (cut through).
type Slice struct {
	// Fragment The slice's content.
	Content *Fragment
	// The open depth at the start.
	OpenStart int
	// number The open depth at the end.
	OpenEnd int
}

// Create a slice. When specifying a non-zero open depth, you must make sure
// that there are nodes of at least that depth at the appropriate side of the
// fragment—i.e. if the fragment is an empty paragraph node, openStart and
// openEnd can't be greater than 1.
//
// It is not necessary for the content of open nodes to conform to the schema's
// content constraints, though it should be a valid start/end/middle for such a
// node, depending on which sides are open.
func NewSlice(content *Fragment, openStart, openEnd int) *Slice {
	return &Slice{
		Content:   content,
		OpenStart: openStart,
		OpenEnd:   openEnd,
	}
}

// The size this slice would add when inserted into a document.
func (s *Slice) Size() int {
	return s.Content.Size - s.OpenStart - s.OpenEnd
}

// Tests whether this slice is equal to another slice.
func (s *Slice) Eq(other *Slice) bool {
	return s.Content.Eq(other.Content) && s.OpenStart == other.OpenStart && s.OpenEnd == other.OpenEnd
}

func (s *Slice) String() string {
	return fmt.Sprintf("%s(%d,%d)", s.Content.String(), s.OpenStart, s.OpenEnd)
}

var EmptySlice = NewSlice(EmptyFragment, 0, 0)

// ReplaceError is raised when a slice cannot be spliced into a document at
// the given range — an inconsistent open depth, mostly a caller bug rather
// than a document-shape failure.
type ReplaceError string

func (e ReplaceError) Error() string { return string(e) }

// Replace splices slice into doc between from and to, joining across block
// boundaries as needed. It covers exactly the shapes this port's steps ever
// produce:
//
//   - a plain inline splice, entirely inside one block (slice.Content holds
//     bare text nodes, OpenStart == OpenEnd == 0, from/to resolve inside the
//     same block);
//   - a block-level splice (deleting a range that spans a block boundary,
//     inserting whole new blocks, splitting a block in two, or joining two
//     blocks into one), where slice.Content holds block-kind nodes and an
//     open side means "join this edge into the neighbouring block's
//     leftover content" rather than "insert as a new sibling".
func Replace(doc *Node, from, to int, slice *Slice) (*Node, error) {
	rFrom, err := doc.Resolve(from)
	if err != nil {
		return nil, err
	}
	rTo, err := doc.Resolve(to)
	if err != nil {
		return nil, err
	}
	if slice.OpenStart > rFrom.Depth {
		return nil, ReplaceError("inserted content's start is open deeper than the insertion position")
	}
	if slice.OpenEnd > rTo.Depth {
		return nil, ReplaceError("inserted content's end is open deeper than the insertion position")
	}

	if rFrom.Depth == 1 && rTo.Depth == 1 && rFrom.Index(0) == rTo.Index(0) &&
		slice.OpenStart == 0 && slice.OpenEnd == 0 {
		block := rFrom.Node(1)
		before, err := block.Content.Cut(0, rFrom.ParentOffset)
		if err != nil {
			return nil, err
		}
		after, err := block.Content.Cut(rTo.ParentOffset, block.Content.Size)
		if err != nil {
			return nil, err
		}
		newBlock := block.Copy(before.Append(slice.Content).Append(after))
		return doc.Copy(doc.Content.ReplaceChild(rFrom.Index(0), newBlock)), nil
	}

	// A position at depth 1 falls inside a block, splitting it into a kept
	// left/right partial fragment; a position at depth 0 falls in the gap
	// between top-level blocks, consuming none of them.
	leftIdx, rightIdx := rFrom.Index(0), rTo.Index(0)
	consumedLeft, consumedRight := rFrom.Depth == 1, rTo.Depth == 1

	var leftBlock, rightBlock *Node
	leftLeftover, rightLeftover := EmptyFragment, EmptyFragment
	if consumedLeft {
		leftBlock = doc.Content.Child(leftIdx)
		leftLeftover, err = leftBlock.Content.Cut(0, rFrom.ParentOffset)
		if err != nil {
			return nil, err
		}
	}
	if consumedRight {
		rightBlock = doc.Content.Child(rightIdx)
		rightLeftover, err = rightBlock.Content.Cut(rTo.ParentOffset, rightBlock.Content.Size)
		if err != nil {
			return nil, err
		}
	}

	sliceNodes := slice.Content.Content
	var middle []*Node
	switch {
	case len(sliceNodes) == 0:
		if leftLeftover.Size > 0 || rightLeftover.Size > 0 {
			wrap := leftBlock
			if wrap == nil {
				wrap = rightBlock
			}
			middle = []*Node{wrap.Copy(leftLeftover.Append(rightLeftover))}
		}
	case len(sliceNodes) == 1:
		middle = []*Node{sliceNodes[0].Copy(leftLeftover.Append(sliceNodes[0].Content).Append(rightLeftover))}
	default:
		first, last := sliceNodes[0], sliceNodes[len(sliceNodes)-1]
		if slice.OpenStart > 0 {
			first = first.Copy(leftLeftover.Append(first.Content))
		}
		if slice.OpenEnd > 0 {
			last = last.Copy(last.Content.Append(rightLeftover))
		}
		middle = append([]*Node{first}, sliceNodes[1:len(sliceNodes)-1]...)
		middle = append(middle, last)
	}

	after := doc.Content.Content[rightIdx:]
	if consumedRight {
		after = doc.Content.Content[rightIdx+1:]
	}
	before := doc.Content.Content[:leftIdx]
	newContent := make([]*Node, 0, len(before)+len(middle)+len(after))
	newContent = append(newContent, before...)
	newContent = append(newContent, middle...)
	newContent = append(newContent, after...)
	return doc.Copy(FragmentFrom(newContent)), nil
}
