package workspace

import (
	"maps"
	"slices"
)

// Selected returns the selected ids in sorted order.
func (s *Store) Selected() []string {
	return slices.Sorted(maps.Keys(s.selected))
}

// IsSelected reports whether id is selected.
func (s *Store) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// SelectOne replaces the selection with id.
func (s *Store) SelectOne(id string) {
	clear(s.selected)
	s.SelectMore(id)
}

// SelectMany replaces the selection with ids. Unknown ids are skipped.
func (s *Store) SelectMany(ids []string) {
	clear(s.selected)
	for _, id := range ids {
		s.SelectMore(id)
	}
}

// SelectMore adds id to the selection.
func (s *Store) SelectMore(id string) {
	if _, ok := s.items[id]; ok {
		s.selected[id] = struct{}{}
	}
}

// ToggleSelect flips id in or out of the selection.
func (s *Store) ToggleSelect(id string) {
	if s.IsSelected(id) {
		delete(s.selected, id)
		return
	}
	s.SelectMore(id)
}

// SelectNone clears the selection.
func (s *Store) SelectNone() {
	clear(s.selected)
}

// SelectAll selects every item.
func (s *Store) SelectAll() {
	for id := range s.items {
		s.selected[id] = struct{}{}
	}
}
