package history

import (
	"github.com/cozy/prosemirror-history/model"
	"github.com/cozy/prosemirror-history/rope"
	"github.com/cozy/prosemirror-history/selection"
	"github.com/cozy/prosemirror-history/transform"
)

// overflowSlack is how far past AddOptions.Depth eventCount may grow before
// Branch.AddTransform evicts the oldest whole events (SPEC_FULL.md §4.C).
const overflowSlack = 20

// compressThreshold is the number of step-less items a branch may carry
// after a rebase before Branch.Rebased triggers a compress pass.
const compressThreshold = 500

// Branch is the history log for one direction (the "done" or "undone"
// side of a HistoryState): a persistent sequence of Items plus the count
// of selection-bearing (event-opening) items among them.
type Branch struct {
	Items      rope.Seq
	EventCount int
}

// Empty is the branch with no items and no events.
var Empty = &Branch{Items: rope.Empty, EventCount: 0}

func toSeq(items []*Item) rope.Seq {
	if len(items) == 0 {
		return rope.Empty
	}
	raw := make([]interface{}, len(items))
	for i, it := range items {
		raw[i] = it
	}
	return rope.From(raw)
}

func (b *Branch) item(i int) *Item {
	return b.Items.Get(i).(*Item)
}

// AddOptions configures AddTransform and PopEvent.
type AddOptions struct {
	// Depth is the soft cap on EventCount (config option "depth").
	Depth int
	// PreserveItems keeps consumed items around (as MapItems) across a
	// pop, instead of discarding them, so a branch can still be rebased
	// after being undone or redone (config option "preserveItems").
	PreserveItems bool
}

// AddTransform records a finished transform as new Items at the end of
// this branch. sel, if non-nil, is attached to the first new Item and
// marks the start of a new undo-visible event.
func (b *Branch) AddTransform(tr *transform.Transform, sel *selection.JSON, opts AddOptions) *Branch {
	newItems := make([]*Item, len(tr.Steps))
	for i, step := range tr.Steps {
		inverted := step.Invert(tr.Docs[i])
		var itemSel *selection.JSON
		if i == 0 {
			itemSel = sel
		}
		newItems[i] = NewStepItem(inverted.GetMap(), inverted, itemSel)
	}

	eventCount := b.EventCount
	if sel != nil {
		eventCount++
	}

	items := b.Items
	if !opts.PreserveItems && items.Length() > 0 && len(newItems) > 0 {
		lastIdx := items.Length() - 1
		last := b.item(lastIdx)
		if merged, ok := last.merge(newItems[0]); ok {
			items = items.Slice(0, lastIdx).Append(toSeq([]*Item{merged}))
			newItems = newItems[1:]
		}
	}
	items = items.Append(toSeq(newItems))

	nb := &Branch{Items: items, EventCount: eventCount}
	if nb.EventCount-opts.Depth > overflowSlack {
		nb = nb.dropOldestEvents(opts.Depth)
	}
	return nb
}

// dropOldestEvents evicts whole events from the front of the branch until
// EventCount is down to target.
func (b *Branch) dropOldestEvents(target int) *Branch {
	toDrop := b.EventCount - target
	if toDrop <= 0 {
		return b
	}
	arr := b.Items.ToArray()
	// Cut just before the selection item that opens the first kept event,
	// so the trailing items of the last dropped event go with it.
	count, cutoff := 0, len(arr)
	for i, raw := range arr {
		if raw.(*Item).Selection != nil {
			if count == toDrop {
				cutoff = i
				break
			}
			count++
		}
	}
	remaining := target
	if count < toDrop {
		remaining = b.EventCount - count
	}
	return &Branch{Items: rope.From(arr[cutoff:]), EventCount: remaining}
}

// AddMaps records maps from a non-tracked or remote transform as MapItems,
// so held inverted steps can later be remapped through them. A no-op on an
// empty branch: there is nothing held that would need the maps.
func (b *Branch) AddMaps(maps []*transform.StepMap) *Branch {
	if b.Items.Length() == 0 {
		return b
	}
	newItems := make([]*Item, len(maps))
	for i, m := range maps {
		newItems[i] = NewMapItem(m)
	}
	return &Branch{Items: b.Items.Append(toSeq(newItems)), EventCount: b.EventCount}
}

// remapping builds a Remapping (a transform.Mapping carrying mirror pairs)
// from the items in the half-open window [from, to). An item whose mirror
// partner also falls inside the window is recorded as a mirror pair in the
// Mapping's mirror table. Mapping.Map and MapResult do not consult that
// table: a position is mapped through both maps of a pair in sequence.
func (b *Branch) remapping(from, to int) *transform.Mapping {
	m := transform.NewMapping()
	for i := from; i < to; i++ {
		it := b.item(i)
		if it.HasMirror() {
			mirrorIdx := i - it.MirrorOffset
			if mirrorIdx >= from && mirrorIdx < to {
				m.AppendMap(it.Map, mirrorIdx-from)
				continue
			}
		}
		m.AppendMap(it.Map)
	}
	return m
}

// PopResult is the outcome of a successful PopEvent: the truncated branch,
// the inverse transform reconstructing the undone event, and the
// selection marker to restore.
type PopResult struct {
	Remaining *Branch
	Transform *transform.Transform
	Selection *selection.JSON
}

// PopEvent reconstructs the inverse of the most recent event in this
// branch — walking from the newest item back to the event's start,
// remapping each inverted step through the ones already applied so it
// lands correctly on doc even though later edits happened to other parts
// of the document in between. Items whose inverted step no longer maps or
// no longer applies are silently skipped (SPEC_FULL.md §7): the event
// still completes with whichever steps did apply.
//
// When preserveItems is true, every consumed item survives in Remaining
// as a position-only MapItem (with mirrorOffset bookkeeping), so a later
// rebase can still find it; otherwise the whole popped window is simply
// dropped.
func (b *Branch) PopEvent(doc *model.Node, preserveItems bool) (*PopResult, bool) {
	if b.EventCount == 0 {
		return nil, false
	}
	length := b.Items.Length()
	end := length
	for {
		end--
		if b.item(end).Selection != nil {
			break
		}
	}

	remap := b.remapping(end, length)
	mapFrom := len(remap.Maps)

	tr := transform.NewTransform(doc)
	var addBefore, addAfter []*Item
	var resultSel *selection.JSON
	var remaining *Branch

	for i := length - 1; i >= end; i-- {
		it := b.item(i)

		if !it.IsStepItem() {
			if preserveItems {
				addBefore = append(addBefore, it)
			}
			mapFrom--
			continue
		}

		if preserveItems {
			addBefore = append(addBefore, NewMapItem(it.Map))
		}

		var appliedMap *transform.StepMap
		mapped := it.Step.Map(remap.Slice(mapFrom))
		if mapped != nil {
			result := tr.MaybeStep(mapped)
			if result.Failed == "" {
				appliedMap = tr.Mapping.Maps[len(tr.Mapping.Maps)-1]
				if preserveItems {
					addAfter = append(addAfter, NewMapItem(appliedMap).withMirror(len(addAfter)+len(addBefore)))
				}
			}
		}
		mapFrom--
		if appliedMap != nil {
			remap.AppendMap(appliedMap, mapFrom)
		}

		if it.Selection != nil {
			resultSel = it.Selection
			kept := b.Items.Slice(0, end)
			if preserveItems {
				reversed := make([]*Item, len(addBefore))
				for j, bi := range addBefore {
					reversed[len(addBefore)-1-j] = bi
				}
				tail := append(reversed, addAfter...)
				kept = kept.Append(toSeq(tail))
			}
			remaining = &Branch{Items: kept, EventCount: b.EventCount - 1}
			break
		}
	}

	if remaining == nil {
		return nil, false
	}
	return &PopResult{Remaining: remaining, Transform: tr, Selection: resultSel}, true
}

// Rebased reconciles this branch after the collaboration layer has
// replaced the trailing rebasedCount local steps with rebasedTransform (a
// transform inverting those steps, applying the remote prefix, then
// reapplying the local steps on top, with mirrors linking each reapplied
// step back to the local step it replaces).
func (b *Branch) Rebased(rebasedTransform *transform.Transform, rebasedCount int) *Branch {
	if b.Items.Length() == 0 {
		return b
	}
	length := b.Items.Length()
	toDrop := rebasedCount
	if toDrop > length {
		toDrop = length
	}
	underflow := rebasedCount - toDrop
	kept := b.Items.Slice(0, length-toDrop)

	var rebuilt []*Item
	minMirror := -1
	for r := 0; r < toDrop; r++ {
		it := b.item(length - toDrop + r)
		relative := underflow + r
		mirrorJ, ok := rebasedTransform.Mapping.GetMirror(relative)
		if !ok {
			continue
		}
		if minMirror == -1 || mirrorJ < minMirror {
			minMirror = mirrorJ
		}
		if it.IsStepItem() {
			step := rebasedTransform.Steps[mirrorJ]
			inverted := step.Invert(rebasedTransform.Docs[mirrorJ])
			var sel *selection.JSON
			if it.Selection != nil {
				sel = selection.MapJSON(it.Selection, rebasedTransform.Mapping.Slice(0, mirrorJ))
			}
			rebuilt = append(rebuilt, NewStepItem(inverted.GetMap(), inverted, sel))
		} else {
			rebuilt = append(rebuilt, NewMapItem(rebasedTransform.Mapping.Maps[mirrorJ]))
		}
	}
	if minMirror == -1 {
		minMirror = rebasedCount
	}

	var prefix []*Item
	for j := rebasedCount; j < minMirror; j++ {
		prefix = append(prefix, NewMapItem(rebasedTransform.Mapping.Maps[j]))
	}

	tail := append(prefix, rebuilt...)
	result := &Branch{Items: kept.Append(toSeq(tail)), EventCount: b.EventCount}

	if result.EmptyItemCount() > compressThreshold {
		result = result.Compress(result.Items.Length() - len(tail))
	}
	return result
}

// Compress rewrites this branch, dropping MapItems inside [0, upto) that
// no StepItem still needs, and merging adjacent StepItems where possible.
// Items at or beyond upto are left untouched. Defaults upto to the whole
// branch.
func (b *Branch) Compress(upto ...int) *Branch {
	u := b.Items.Length()
	if len(upto) > 0 {
		u = upto[0]
	}
	remap := b.remapping(0, u)
	mapFrom := len(remap.Maps)

	var items []*Item
	for i := u - 1; i >= 0; i-- {
		it := b.item(i)
		if !it.IsStepItem() {
			mapFrom--
			continue
		}
		mapped := it.Step.Map(remap.Slice(mapFrom))
		mapFrom--
		if mapped == nil {
			continue
		}
		newItem := NewStepItem(mapped.GetMap().Invert(), mapped, it.Selection)
		if len(items) > 0 {
			if merged, ok := newItem.merge(items[len(items)-1]); ok {
				items[len(items)-1] = merged
				continue
			}
		}
		items = append(items, newItem)
	}

	for l, r := 0, len(items)-1; l < r; l, r = l+1, r-1 {
		items[l], items[r] = items[r], items[l]
	}

	events := 0
	for _, it := range items {
		if it.Selection != nil {
			events++
		}
	}

	result := toSeq(items)
	if u < b.Items.Length() {
		result = result.Append(b.Items.Slice(u, b.Items.Length()))
	}
	return &Branch{Items: result, EventCount: events}
}

// EmptyItemCount counts the Items in this branch that carry no step.
func (b *Branch) EmptyItemCount() int {
	count := 0
	length := b.Items.Length()
	for i := 0; i < length; i++ {
		if !b.item(i).IsStepItem() {
			count++
		}
	}
	return count
}
