package firelog

import "sync"

// ContextStore holds the ambient context merged into every event's
// attributes until explicitly cleared.
//
// Mutations are visible to events posted after the mutation; events already
// queued carry the context they were built with. Safe for concurrent use
// from many producer goroutines.
type ContextStore struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewContextStore creates an empty context store.
func NewContextStore() *ContextStore {
	return &ContextStore{data: make(map[string]any)}
}

// Set shallow-merges partial into the stored context, overwriting existing
// keys with the same name.
func (s *ContextStore) Set(partial map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range partial {
		s.data[k] = v
	}
}

// Clear resets the store to empty.
func (s *ContextStore) Clear() {
	s.mu.Lock()
	s.data = make(map[string]any)
	s.mu.Unlock()
}

// Snapshot returns a copy of the current context. Callers may read it while
// producers keep mutating the store.
func (s *ContextStore) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}
