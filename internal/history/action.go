package history

import (
	"maps"
	"slices"

	"github.com/inamate/stickerstage/internal/document"
	"github.com/inamate/stickerstage/internal/transform"
)

type Kind string

const (
	KindTransform Kind = "transform"
	KindModify    Kind = "modify"
	KindCreate    Kind = "create"
	KindDelete    Kind = "delete"
	KindCompound  Kind = "compound"
)

// Action is one reversible entry on the undo stack.
type Action interface {
	Kind() Kind
	// IDs returns the item ids the action touches, sorted.
	IDs() []string

	undo(t target)
	redo(t target)
}

// target is what actions replay into.
type target struct {
	geometry GeometryStore
	items    ItemStore
}

// TransformAction holds geometry before and after a gesture for exactly the
// ids whose record changed. A nil record means the id had no geometry.
type TransformAction struct {
	Before map[string]*transform.Record
	After  map[string]*transform.Record
}

func (a *TransformAction) Kind() Kind { return KindTransform }
func (a *TransformAction) IDs() []string { return slices.Sorted(maps.Keys(a.Before)) }
func (a *TransformAction) undo(t target) { applyGeometry(t, a.Before) }
func (a *TransformAction) redo(t target) { applyGeometry(t, a.After) }

// ModifyAction holds item payloads before and after for the changed ids. A
// nil item means the id did not exist.
type ModifyAction struct {
	Before map[string]*document.Item
	After  map[string]*document.Item
}

func (a *ModifyAction) Kind() Kind { return KindModify }
func (a *ModifyAction) IDs() []string { return slices.Sorted(maps.Keys(a.Before)) }
func (a *ModifyAction) undo(t target) { applyItems(t, a.Before) }
func (a *ModifyAction) redo(t target) { applyItems(t, a.After) }

// Entry is an item together with its geometry.
type Entry struct {
	Item     *document.Item
	Geometry *transform.Record
}

// CreateAction records items that came into existence.
type CreateAction struct {
	Entries []Entry
}

func (a *CreateAction) Kind() Kind { return KindCreate }
func (a *CreateAction) IDs() []string { return entryIDs(a.Entries) }
func (a *CreateAction) undo(t target) { removeEntries(t, a.Entries) }
func (a *CreateAction) redo(t target) { installEntries(t, a.Entries) }

// DeleteAction records items that were removed. There is nothing to diff
// against afterwards, so the entries are kept verbatim.
type DeleteAction struct {
	Entries []Entry
}

func (a *DeleteAction) Kind() Kind { return KindDelete }
func (a *DeleteAction) IDs() []string { return entryIDs(a.Entries) }
func (a *DeleteAction) undo(t target) { installEntries(t, a.Entries) }
func (a *DeleteAction) redo(t target) { removeEntries(t, a.Entries) }

// CompoundAction applies its children as one unit. Undo walks them in
// reverse.
type CompoundAction struct {
	Children []Action
}

func (a *CompoundAction) Kind() Kind { return KindCompound }

func (a *CompoundAction) IDs() []string {
	var ids []string
	for _, c := range a.Children {
		ids = append(ids, c.IDs()...)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func (a *CompoundAction) undo(t target) {
	for _, c := range slices.Backward(a.Children) {
		c.undo(t)
	}
}

func (a *CompoundAction) redo(t target) {
	for _, c := range a.Children {
		c.redo(t)
	}
}

func applyGeometry(t target, recs map[string]*transform.Record) {
	for _, id := range slices.Sorted(maps.Keys(recs)) {
		t.geometry.Replace(id, recs[id])
	}
}

func applyItems(t target, items map[string]*document.Item) {
	for _, id := range slices.Sorted(maps.Keys(items)) {
		t.items.Replace(id, items[id])
	}
}

func installEntries(t target, entries []Entry) {
	for _, e := range entries {
		t.items.Replace(e.Item.ID, e.Item)
		if e.Geometry != nil {
			t.geometry.Replace(e.Item.ID, e.Geometry)
		}
	}
}

func removeEntries(t target, entries []Entry) {
	for _, e := range slices.Backward(entries) {
		t.geometry.Replace(e.Item.ID, nil)
		t.items.Replace(e.Item.ID, nil)
	}
}

func entryIDs(entries []Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.Item.ID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}
