package workspace

import (
	"slices"
	"testing"
)

func TestSelection(t *testing.T) {
	tests := []struct {
		name string
		op   func(s *Store)
		want []string
	}{
		{"select one", func(s *Store) { s.SelectAll(); s.SelectOne("b") }, []string{"b"}},
		{"select one unknown", func(s *Store) { s.SelectOne("zz") }, nil},
		{"select many skips unknown", func(s *Store) { s.SelectMany([]string{"c", "zz", "a"}) }, []string{"a", "c"}},
		{"select more", func(s *Store) { s.SelectOne("a"); s.SelectMore("c") }, []string{"a", "c"}},
		{"toggle in", func(s *Store) { s.SelectOne("a"); s.ToggleSelect("b") }, []string{"a", "b"}},
		{"toggle out", func(s *Store) { s.SelectAll(); s.ToggleSelect("b") }, []string{"a", "c"}},
		{"all", func(s *Store) { s.SelectAll() }, []string{"a", "b", "c"}},
		{"none", func(s *Store) { s.SelectAll(); s.SelectNone() }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(shape("a", 0), shape("b", 1), shape("c", 2))
			tt.op(s)
			if got := s.Selected(); !slices.Equal(got, tt.want) {
				t.Errorf("Selected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectionDoesNotNotify(t *testing.T) {
	s := newStore(shape("a", 0))
	notified := false
	s.Subscribe(func([]string) { notified = true })

	s.SelectOne("a")
	s.ToggleSelect("a")
	s.SelectAll()
	if notified {
		t.Error("selection change notified item listeners")
	}
	if !s.IsSelected("a") {
		t.Error("IsSelected(a) = false")
	}
}
