// Package clipboard holds copied items in memory for pasting back onto the
// stage. It never touches the OS clipboard.
package clipboard

import (
	"github.com/inamate/stickerstage/internal/document"
	"github.com/inamate/stickerstage/internal/transform"
	"github.com/inamate/stickerstage/internal/typeid"
)

// ItemStore is where pasted items go.
type ItemStore interface {
	Get(id string) (*document.Item, bool)
	Upsert(item *document.Item)
	LayerUp(id string)
}

// GeometryStore is where pasted geometry goes.
type GeometryStore interface {
	Get(id string) (*transform.Record, bool)
	Replace(id string, rec *transform.Record)
}

type entry struct {
	item *document.Item
	rec  *transform.Record
}

// Store is the clipboard buffer.
type Store struct {
	items    ItemStore
	geometry GeometryStore
	buf      []entry

	// NewID generates ids for pasted items.
	NewID func() string
}

func New(items ItemStore, geometry GeometryStore) *Store {
	return &Store{
		items:    items,
		geometry: geometry,
		NewID:    typeid.NewItemID,
	}
}

// Copy replaces the buffer with the current item and geometry of ids.
// Unknown ids are skipped. Both stores replace rather than edit, so holding
// the pointers is enough to freeze their state.
func (s *Store) Copy(ids []string) {
	s.buf = s.buf[:0]
	for _, id := range ids {
		it, ok := s.items.Get(id)
		if !ok {
			continue
		}
		rec, _ := s.geometry.Get(id)
		s.buf = append(s.buf, entry{item: it, rec: rec})
	}
}

// Paste installs a fresh copy of every buffered item under a new id, each
// raised to the top layer, and returns the new ids in copy order. The buffer
// is left intact so the same content can be pasted again.
func (s *Store) Paste() []string {
	ids := make([]string, 0, len(s.buf))
	for _, e := range s.buf {
		id := s.NewID()

		it := e.item.Clone()
		it.ID = id
		s.items.Upsert(it)
		if e.rec != nil {
			s.geometry.Replace(id, e.rec.Clone())
		}
		s.items.LayerUp(id)

		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of buffered items.
func (s *Store) Len() int {
	return len(s.buf)
}

// Clear empties the buffer.
func (s *Store) Clear() {
	s.buf = nil
}
