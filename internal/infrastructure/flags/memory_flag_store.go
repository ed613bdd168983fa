package flags

import (
	"context"
	"sync"

	"summit_contracting/internal/usecase/interfaces"
)

// MemoryFlagStore is the single-instance fallback used when Redis is not
// configured.
type MemoryFlagStore struct {
	mu      sync.Mutex
	unsaved map[string]bool
}

var _ interfaces.IUnsavedFlagStore = (*MemoryFlagStore)(nil)

func NewMemoryFlagStore() *MemoryFlagStore {
	return &MemoryFlagStore{unsaved: make(map[string]bool)}
}

func (s *MemoryFlagStore) SetUnsaved(_ context.Context, sessionID string, unsaved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if unsaved {
		s.unsaved[sessionID] = true
	} else {
		delete(s.unsaved, sessionID)
	}
	return nil
}

func (s *MemoryFlagStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.unsaved, sessionID)
	return nil
}

func (s *MemoryFlagStore) AnyUnsaved(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.unsaved) > 0, nil
}
