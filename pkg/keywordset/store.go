package keywordset

import "sync/atomic"

// Store holds the current taxonomy and lets it be swapped while readers
// keep validating against the snapshot they already took.
type Store struct {
	current atomic.Pointer[Taxonomy]
}

// NewStore returns a store holding initial.
func NewStore(initial Taxonomy) *Store {
	s := &Store{}
	s.Set(initial)
	return s
}

// Get returns the current snapshot; nil until something is stored.
func (s *Store) Get() Taxonomy {
	if t := s.current.Load(); t != nil {
		return *t
	}
	return nil
}

// Set replaces the snapshot.
func (s *Store) Set(t Taxonomy) {
	s.current.Store(&t)
}
