// Package selection gives the history core a minimal stand-in for the
// editor's selection model: a serialisable cursor position, and the single
// operation the history core needs from it — mapping a marker through a
// transform's position map (SPEC_FULL.md §6, "Selection: toJSON(); mapJSON
// (json, remapping) → json; fromJSON(doc, json) → Selection").
package selection

import "github.com/cozy/prosemirror-history/transform"

// JSON is the wire/serialised form of a selection: a plain cursor (anchor
// == head) or a range.
type JSON struct {
	Type   string `json:"type"`
	Anchor int    `json:"anchor"`
	Head   int    `json:"head"`
}

// TextSelection is a cursor or range inside a document's text content. It
// is the only selection kind this port needs; the document model's richer
// node selections are outside this component's scope.
type TextSelection struct {
	Anchor int
	Head   int
}

// NewTextSelection builds a selection; a bare cursor has Anchor == Head.
func NewTextSelection(anchor, head int) *TextSelection {
	return &TextSelection{Anchor: anchor, Head: head}
}

// ToJSON serialises this selection.
func (s *TextSelection) ToJSON() *JSON {
	return &JSON{Type: "text", Anchor: s.Anchor, Head: s.Head}
}

// FromJSON rebuilds a TextSelection from its wire form. The doc argument is
// accepted to match the collaborator contract (a real selection model
// validates the positions against the document); this stand-in trusts its
// input.
func FromJSON(doc interface{}, json *JSON) *TextSelection {
	return &TextSelection{Anchor: json.Anchor, Head: json.Head}
}

// MapJSON maps a serialised selection through a mapping, the way the
// history core needs to carry a selection marker across a popped or
// rebased range of steps without deserialising it against a document at
// every step.
func MapJSON(json *JSON, mapping transform.Mappable) *JSON {
	return &JSON{
		Type:   json.Type,
		Anchor: mapping.Map(json.Anchor),
		Head:   mapping.Map(json.Head),
	}
}
