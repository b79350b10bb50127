package transform

// Mapping represents a pipeline of StepMaps, which is used to track
// positions through a series of changes. It composes the maps of a
// Transform, or of several Transforms stitched together, and lets you map a
// position through all of them at once.
//
// Its mirror table is bookkeeping only: it records, for a map at index i,
// the index of a later (or earlier) map that is its exact inverse. Nothing
// in Map/MapResult consults it, so a position is mapped through both maps
// of a pair in sequence; a position inside a range the first map deletes
// does not come back to where it started. Branch.Rebased (in package
// history) reads the mirror table of a rebased transform to find which
// reapplied step replaces which dropped local step.
type Mapping struct {
	Maps   []*StepMap
	Mirror map[int]int
	From   int
	To     int // -1 means "through the end"
}

// NewMapping builds a Mapping over the given maps, with no mirrors.
func NewMapping(maps ...*StepMap) *Mapping {
	return &Mapping{Maps: append([]*StepMap{}, maps...), Mirror: map[int]int{}, From: 0, To: -1}
}

func (m *Mapping) end() int {
	if m.To < 0 {
		return len(m.Maps)
	}
	return m.To
}

// AppendMap adds a map to the end of this mapping. If mirrors is given, it
// is the index of the map this one mirrors (and vice versa).
func (m *Mapping) AppendMap(sm *StepMap, mirrors ...int) {
	if len(mirrors) > 0 {
		idx := len(m.Maps)
		m.Mirror[idx] = mirrors[0]
		m.Mirror[mirrors[0]] = idx
	}
	m.Maps = append(m.Maps, sm)
}

// AppendMapping appends all the maps (and mirrors, offset accordingly) from
// another mapping to this one.
func (m *Mapping) AppendMapping(other *Mapping) {
	startSize := len(m.Maps)
	for i := other.From; i < other.end(); i++ {
		if mirr, ok := other.GetMirror(i); ok {
			m.AppendMap(other.Maps[i], startSize+mirr-other.From)
		} else {
			m.AppendMap(other.Maps[i])
		}
	}
}

// GetMirror returns the index mirroring the map at i, if any.
func (m *Mapping) GetMirror(i int) (int, bool) {
	v, ok := m.Mirror[i]
	return v, ok
}

// SetMirror records that the maps at i and j cancel each other out.
func (m *Mapping) SetMirror(i, j int) {
	m.Mirror[i] = j
	m.Mirror[j] = i
}

// Slice returns a Mapping that only maps through maps [from, to).
func (m *Mapping) Slice(from int, to ...int) *Mapping {
	t := len(m.Maps)
	if len(to) > 0 {
		t = to[0]
	}
	return &Mapping{Maps: m.Maps, Mirror: m.Mirror, From: from, To: t}
}

// Map maps a position through this mapping's window of maps.
func (m *Mapping) Map(pos int, assoc ...int) int {
	a := 1
	if len(assoc) > 0 {
		a = assoc[0]
	}
	result := pos
	for i := m.From; i < m.end(); i++ {
		result = m.Maps[i].Map(result, a)
	}
	return result
}

// MapResult maps a position through this mapping's window of maps, tracking
// whether it was deleted by any map along the way.
func (m *Mapping) MapResult(pos int, assoc ...int) *MapResult {
	a := 1
	if len(assoc) > 0 {
		a = assoc[0]
	}
	deleted := false
	result := pos
	for i := m.From; i < m.end(); i++ {
		r := m.Maps[i].MapResult(result, a)
		result = r.Pos
		if r.Deleted {
			deleted = true
		}
	}
	return NewMapResult(result, deleted)
}

// ForEach calls f with each StepMap in this mapping's window, in order.
func (m *Mapping) ForEach(f func(sm *StepMap, index int)) {
	for i := m.From; i < m.end(); i++ {
		f(m.Maps[i], i)
	}
}

// Invert returns a mapping that undoes this one: the same maps, inverted,
// in reverse order.
func (m *Mapping) Invert() *Mapping {
	inv := NewMapping()
	for i := m.end() - 1; i >= m.From; i-- {
		inv.AppendMap(m.Maps[i].Invert())
	}
	return inv
}

var _ Mappable = &Mapping{}
