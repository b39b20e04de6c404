// Package workspace holds the items placed on the stage and the current
// selection.
package workspace

import (
	"cmp"
	"log/slog"
	"maps"
	"slices"

	"github.com/inamate/stickerstage/internal/document"
)

// Listener is notified synchronously with the ids a mutation touched.
type Listener func(ids []string)

// Snapshot is a point-in-time view of the items, sharing item pointers with
// the live store.
type Snapshot map[string]*document.Item

// Stage describes the bounded drawing area.
type Stage struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color"`
}

// Store owns the stage items and the selection. Items are replaced, never
// edited in place, so a changed pointer means a changed item.
type Store struct {
	items     map[string]*document.Item
	selected  map[string]struct{}
	stage     Stage
	listeners map[int]Listener
	nextSub   int
}

// NewStore creates an empty store for the given stage.
func NewStore(stage Stage) *Store {
	return &Store{
		items:     make(map[string]*document.Item),
		selected:  make(map[string]struct{}),
		stage:     stage,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers fn for item change notifications.
func (s *Store) Subscribe(fn Listener) func() {
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Store) notify(ids ...string) {
	if len(ids) == 0 {
		return
	}
	for _, k := range slices.Sorted(maps.Keys(s.listeners)) {
		s.listeners[k](ids)
	}
}

// Stage returns the stage settings.
func (s *Store) Stage() Stage {
	return s.stage
}

// SetStage replaces the stage settings.
func (s *Store) SetStage(stage Stage) {
	s.stage = stage
}

// Get returns the item for id. The item must not be modified.
func (s *Store) Get(id string) (*document.Item, bool) {
	it, ok := s.items[id]
	return it, ok
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Snapshot returns the current items keyed by id.
func (s *Store) Snapshot() Snapshot {
	return maps.Clone(s.items)
}

// AllIDs returns item ids from the bottom layer to the top.
func (s *Store) AllIDs() []string {
	ids := slices.Collect(maps.Keys(s.items))
	slices.SortFunc(ids, func(a, b string) int {
		if c := cmp.Compare(s.items[a].Layer, s.items[b].Layer); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return ids
}

// Upsert stores a copy of item, replacing any item with the same id.
func (s *Store) Upsert(item *document.Item) {
	if item == nil {
		return
	}
	if err := item.Validate(); err != nil {
		slog.Warn("rejected item", "error", err)
		return
	}
	s.items[item.ID] = item.Clone()
	s.notify(item.ID)
}

// Modify applies fn to a copy of the item and installs the copy. A
// modification that changes nothing keeps the old pointer.
func (s *Store) Modify(id string, fn func(it *document.Item)) {
	cur, ok := s.items[id]
	if !ok {
		return
	}
	next := cur.Clone()
	fn(next)
	next.ID = id
	if next.Equal(cur) {
		return
	}
	if err := next.Validate(); err != nil {
		slog.Warn("rejected item modification", "id", id, "error", err)
		return
	}
	s.items[id] = next
	s.notify(id)
}

// Replace installs item verbatim under id, or removes id when item is nil.
// Used by history restore, which needs the exact pointer back.
func (s *Store) Replace(id string, item *document.Item) {
	if item == nil {
		s.Remove(id)
		return
	}
	if cur, ok := s.items[id]; ok && cur == item {
		return
	}
	s.items[id] = item
	s.notify(id)
}

// Remove deletes an item and drops it from the selection.
func (s *Store) Remove(id string) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	delete(s.selected, id)
	s.notify(id)
}

// RemoveMultiple deletes several items at once.
func (s *Store) RemoveMultiple(ids []string) {
	var removed []string
	for _, id := range ids {
		if _, ok := s.items[id]; !ok {
			continue
		}
		delete(s.items, id)
		delete(s.selected, id)
		removed = append(removed, id)
	}
	s.notify(removed...)
}

// RemoveAll clears the stage.
func (s *Store) RemoveAll() {
	ids := s.AllIDs()
	s.items = make(map[string]*document.Item)
	s.selected = make(map[string]struct{})
	s.notify(ids...)
}

// MaxLayer returns the highest layer in use, or 0 for an empty stage.
func (s *Store) MaxLayer() int {
	top, first := 0, true
	for _, it := range s.items {
		if first || it.Layer > top {
			top, first = it.Layer, false
		}
	}
	return top
}

// MinLayer returns the lowest layer in use, or 0 for an empty stage.
func (s *Store) MinLayer() int {
	bottom, first := 0, true
	for _, it := range s.items {
		if first || it.Layer < bottom {
			bottom, first = it.Layer, false
		}
	}
	return bottom
}

// LayerUp moves the item above every other item.
func (s *Store) LayerUp(id string) {
	cur, ok := s.items[id]
	if !ok {
		return
	}
	top := s.MaxLayer()
	if cur.Layer == top && s.uniqueLayer(id) {
		return
	}
	s.Modify(id, func(it *document.Item) { it.Layer = top + 1 })
}

// LayerDown moves the item below every other item.
func (s *Store) LayerDown(id string) {
	cur, ok := s.items[id]
	if !ok {
		return
	}
	bottom := s.MinLayer()
	if cur.Layer == bottom && s.uniqueLayer(id) {
		return
	}
	s.Modify(id, func(it *document.Item) { it.Layer = bottom - 1 })
}

func (s *Store) uniqueLayer(id string) bool {
	layer := s.items[id].Layer
	for other, it := range s.items {
		if other != id && it.Layer == layer {
			return false
		}
	}
	return true
}
