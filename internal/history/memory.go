package history

import "sync"

// MemoryStore implements Store in memory. Used in tests and available as a
// throwaway backend when no persistence path is configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory creates an empty in-memory history store.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

// List implements Store.List.
func (s *MemoryStore) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Append implements Store.Append.
func (s *MemoryStore) Append(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
	return nil
}

// Remove implements Store.Remove.
func (s *MemoryStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(s.entries) {
		return ErrNotFound
	}
	s.entries = kept
	return nil
}
