package document

import (
	"sync"

	"github.com/hupe1980/deepagent/core"
)

// InMemoryStore is a volatile core.DocumentStore implementation useful for
// tests, examples and single-process prototypes. It keeps all sessions in a
// map guarded by an RWMutex. Document sets are copied on save and load to
// avoid accidental external mutation of internal state.
//
// This implementation is intentionally minimal; it does not enforce
// retention limits or size quotas. For state that must survive process
// restarts, use the sqlite backed store.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]core.Documents
}

// NewInMemoryStore returns an empty in-memory document store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]core.Documents)}
}

// Save stores (or overwrites) the document set for the given session.
// The input is cloned before storage.
func (s *InMemoryStore) Save(sessionID string, docs core.Documents) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = docs.Clone()
	return nil
}

// Load returns a copy of the stored document set. Unknown sessions yield an
// empty, non-nil set.
func (s *InMemoryStore) Load(sessionID string) (core.Documents, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs, ok := s.sessions[sessionID]
	if !ok {
		return core.Documents{}, nil
	}
	return docs.Clone(), nil
}
