package ports

import (
	"context"
	"errors"

	"github.com/k0lab/analysis-gate/internal/core/domain"
)

// ErrAccountNotFound is internal to the store boundary. The session service
// folds it into domain.ErrInvalidCredentials before anything reaches a caller.
var ErrAccountNotFound = errors.New("account not found")

// CredentialStore is the read-only registry of named accounts. Backing data
// is fixed at startup; implementations must be safe for unsynchronized
// concurrent reads.
type CredentialStore interface {
	Lookup(ctx context.Context, username string) (*domain.AccountRecord, error)
}

// AccountLister is implemented by stores that can enumerate their registry,
// used by the admin surface. Password digests are never included in listings.
type AccountLister interface {
	List(ctx context.Context) ([]domain.AccountRecord, error)
}
