// Package selection tracks which invoice rows are marked for batch
// import. Keys are the stringified line-item indices.
package selection

import "sync"

// Store is the set of row IDs pending batch import. Batch imports finish
// on their own goroutines, so the set is guarded by a mutex.
type Store struct {
	mutex sync.Mutex
	ids   map[string]struct{}
}

func New() *Store {
	return &Store{ids: map[string]struct{}{}}
}

// Select adds an ID to the set. Selecting an already selected ID is a
// no-op.
func (s *Store) Select(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.ids[id] = struct{}{}
}

// Deselect removes an ID from the set. Deselecting an unknown ID is a
// no-op.
func (s *Store) Deselect(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.ids, id)
}

// Has reports whether the ID is currently selected.
func (s *Store) Has(id string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns a snapshot of the selected IDs.
func (s *Store) IDs() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	return ids
}

func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.ids = map[string]struct{}{}
}

func (s *Store) Count() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.ids)
}

func (s *Store) IsEmpty() bool {
	return s.Count() == 0
}
