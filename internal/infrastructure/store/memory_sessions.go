package store

import (
	"context"
	"sync"

	"github.com/k0lab/analysis-gate/internal/core/domain"
	"github.com/k0lab/analysis-gate/internal/core/ports"
)

// MemorySessionStore holds the Active session set in process memory.
// Suitable for single-instance deployments and tests; a multi-instance
// deployment uses the Redis store instead. Sessions belong to one actor
// each, but the map itself is shared across connections, hence the lock.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domain.Session)}
}

func (s *MemorySessionStore) Put(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copy := sess
	return &copy, nil
}

// Delete removes a session. Deleting an absent ID is a no-op, which gives
// Terminate its idempotence.
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemorySessionStore) Count(_ context.Context) (ports.SessionStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := ports.SessionStats{Active: len(s.sessions)}
	for _, sess := range s.sessions {
		if sess.IsGuest {
			stats.Guests++
		}
	}
	return stats, nil
}
