package asset

import (
	"sync"

	"github.com/inamate/stickerstage/internal/measure"
)

// Asset is an uploaded picture kept in memory for the life of the process.
type Asset struct {
	ID          string
	Name        string
	Format      string
	ContentType string
	Size        measure.Size
	Data        []byte
}

// Store is a concurrency-safe in-memory asset cache.
type Store struct {
	mu     sync.RWMutex
	assets map[string]*Asset
}

func NewStore() *Store {
	return &Store{assets: make(map[string]*Asset)}
}

func (s *Store) Put(a *Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[a.ID] = a
}

// Lookup returns the asset with id.
func (s *Store) Lookup(id string) (*Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[id]
	return a, ok
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assets, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets)
}
