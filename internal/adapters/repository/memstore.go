package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/pitchlab/rabona/internal/domain/model"
)

// MemStore is an in-memory Store used in tests and as a reference
// implementation of the Store contract.
type MemStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{sessions: make(map[string]model.Session)}
}

// Create stores the session, rejecting duplicates.
func (s *MemStore) Create(_ context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, session.ID)
	}
	s.sessions[session.ID] = session
	return nil
}

// Get returns the session with the given id.
func (s *MemStore) Get(_ context.Context, id string) (model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return model.Session{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return session, nil
}

// Count returns the number of stored sessions.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
