package ports

import (
	"context"

	"github.com/k0lab/analysis-gate/internal/core/domain"
)

// SessionStats summarises the live session population for the admin surface.
type SessionStats struct {
	Active int `json:"active"`
	Guests int `json:"guests"`
}

// SessionStore holds the Active session set, keyed by session ID. A session
// absent from the store is terminated; Delete is idempotent by contract.
//
// Expiry semantics belong to the session service. A store may additionally
// evict guest entries at their deadline as garbage collection, but callers
// must never rely on that.
type SessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown or terminated IDs.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (SessionStats, error)
}
