// Package rope implements a persistent ordered sequence, used to back a
// history branch so that snapshotting a HistoryState never copies the
// whole log: appending, slicing and reading share structure with every
// earlier generation of the sequence (SPEC_FULL.md component B).
package rope

// Seq is a persistent sequence of values. Every operation returns a new
// Seq; none mutates the receiver or its arguments. Small sequences are
// stored flat; larger ones are built out of Append nodes forming a binary
// tree. Append on a tree is O(1); Get and Slice cost grows with the
// tree's depth, and the tree is never rebalanced, so a sequence built by
// repeated single-element appends has depth close to its length.
type Seq interface {
	// Length is the number of elements in the sequence.
	Length() int
	// Get returns the element at index i.
	Get(i int) interface{}
	// ForEach walks the sequence windowed to [from, to). When from <= to
	// the walk is forward; when from > to it runs backward. f may return
	// false to stop early.
	ForEach(f func(elt interface{}, index int) bool, from, to int)
	// Slice returns the sub-sequence [from, to).
	Slice(from, to int) Seq
	// Append concatenates this sequence with another.
	Append(other Seq) Seq
	// ToArray materialises the sequence as a slice, in order.
	ToArray() []interface{}
}

// leafMax is the largest flat leaf Append builds by copying two flat
// sequences together; past it, Append joins them under a branch node.
const leafMax = 32

// Empty is the empty sequence, the base case for every Seq built from
// scratch.
var Empty Seq = flat{}

// From builds a sequence from a plain slice of elements.
func From(elts []interface{}) Seq {
	if len(elts) == 0 {
		return Empty
	}
	cp := make([]interface{}, len(elts))
	copy(cp, elts)
	return flat(cp)
}

// flat is a leaf: a contiguous run of elements stored directly.
type flat []interface{}

func (f flat) Length() int { return len(f) }

func (f flat) Get(i int) interface{} { return f[i] }

func (f flat) ForEach(cb func(elt interface{}, index int) bool, from, to int) {
	if from <= to {
		for i := from; i < to; i++ {
			if !cb(f[i], i) {
				return
			}
		}
	} else {
		for i := from - 1; i >= to; i-- {
			if !cb(f[i], i) {
				return
			}
		}
	}
}

func (f flat) Slice(from, to int) Seq {
	if from < 0 {
		from = 0
	}
	if to > len(f) {
		to = len(f)
	}
	if from >= to {
		return Empty
	}
	if from == 0 && to == len(f) {
		return f
	}
	return flat(f[from:to])
}

func (f flat) Append(other Seq) Seq {
	if other.Length() == 0 {
		return f
	}
	if len(f) == 0 {
		return other
	}
	if len(f) < leafMax {
		if o, ok := other.(flat); ok && len(f)+len(o) <= leafMax {
			out := make([]interface{}, 0, len(f)+len(o))
			out = append(out, f...)
			out = append(out, o...)
			return flat(out)
		}
	}
	return &branch{left: f, right: other, size: len(f) + other.Length()}
}

func (f flat) ToArray() []interface{} {
	out := make([]interface{}, len(f))
	copy(out, f)
	return out
}

// branch is an internal node joining two smaller sequences.
type branch struct {
	left, right Seq
	size        int
}

func (b *branch) Length() int { return b.size }

func (b *branch) Get(i int) interface{} {
	ll := b.left.Length()
	if i < ll {
		return b.left.Get(i)
	}
	return b.right.Get(i - ll)
}

// ForEach walks this branch, translating the right child's locally-numbered
// indices back into this node's own numbering (elements to the right of the
// split are offset by the left child's length) so the index the caller sees
// is always absolute within this node's own range, at any tree depth.
func (b *branch) ForEach(cb func(elt interface{}, index int) bool, from, to int) {
	ll := b.left.Length()
	if from <= to {
		if from < ll {
			stop := to
			if stop > ll {
				stop = ll
			}
			cont := true
			b.left.ForEach(func(elt interface{}, index int) bool {
				cont = cb(elt, index)
				return cont
			}, from, stop)
			if !cont {
				return
			}
		}
		if to > ll {
			start := from
			if start < ll {
				start = ll
			}
			b.right.ForEach(func(elt interface{}, index int) bool {
				return cb(elt, index+ll)
			}, start-ll, to-ll)
		}
	} else {
		if from > ll {
			stop := to
			if stop < ll {
				stop = ll
			}
			cont := true
			b.right.ForEach(func(elt interface{}, index int) bool {
				cont = cb(elt, index+ll)
				return cont
			}, from-ll, stop-ll)
			if !cont {
				return
			}
		}
		if to < ll {
			start := from
			if start > ll {
				start = ll
			}
			b.left.ForEach(cb, start, to)
		}
	}
}

func (b *branch) Slice(from, to int) Seq {
	if from <= 0 && to >= b.size {
		return b
	}
	ll := b.left.Length()
	if to <= ll {
		return b.left.Slice(from, to)
	}
	if from >= ll {
		return b.right.Slice(from-ll, to-ll)
	}
	return b.left.Slice(from, ll).Append(b.right.Slice(0, to-ll))
}

func (b *branch) Append(other Seq) Seq {
	if other.Length() == 0 {
		return b
	}
	return &branch{left: b, right: other, size: b.size + other.Length()}
}

func (b *branch) ToArray() []interface{} {
	out := make([]interface{}, 0, b.size)
	b.ForEach(func(elt interface{}, index int) bool {
		out = append(out, elt)
		return true
	}, 0, b.size)
	return out
}
