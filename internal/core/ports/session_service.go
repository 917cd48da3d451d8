package ports

import (
	"context"
	"time"

	"github.com/k0lab/analysis-gate/internal/core/domain"
)

// SessionInfo is the caller-facing view of an active session. Remaining is
// set only for guest sessions with time left on their window.
type SessionInfo struct {
	Subject     string         `json:"subject"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email,omitempty"`
	Role        domain.Role    `json:"role"`
	IsGuest     bool           `json:"is_guest"`
	StartedAt   time.Time      `json:"started_at"`
	Remaining   *time.Duration `json:"-"`
}

// SessionService gates access to the application: it authenticates named
// accounts or guest tokens, owns the session lifecycle, and emits one access
// record per successful authentication.
//
// Login and GuestLogin return the created session together with a signed
// ticket the host layer hands to the client; subsequent requests present the
// ticket and are resolved back to a session via Validate.
type SessionService interface {
	Login(ctx context.Context, username, password, origin string) (*domain.Session, string, error)
	GuestLogin(ctx context.Context, token, origin string) (*domain.Session, string, error)
	Validate(ctx context.Context, sessionID string, now time.Time) (*domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Info(s *domain.Session, now time.Time) SessionInfo
	Stats(ctx context.Context) (SessionStats, error)
}
