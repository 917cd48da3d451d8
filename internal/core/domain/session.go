package domain

import (
	"errors"
	"time"
)

var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionExpired   = errors.New("session expired")
	ErrInsufficientRole = errors.New("insufficient role")
)

// GuestSessionTTL is the validity window for guest sessions, measured from
// StartedAt. Named accounts have no enforced expiry.
const GuestSessionTTL = 24 * time.Hour

// Session records an authenticated actor for the duration of their access.
// A session belongs to exactly one actor and is never shared; the session
// store owns the Active set, so a terminated session is simply absent.
type Session struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Role        Role      `json:"role"`
	IsGuest     bool      `json:"is_guest"`
	StartedAt   time.Time `json:"started_at"`
}

// ExpiresAt returns the absolute expiry instant for guest sessions.
// For named accounts the second return is false: no expiry applies.
func (s *Session) ExpiresAt() (time.Time, bool) {
	if !s.IsGuest {
		return time.Time{}, false
	}
	return s.StartedAt.Add(GuestSessionTTL), true
}

// Expired reports whether a guest session's window has elapsed at now.
// Named-account sessions never report expired; this mirrors the original
// operator-trust model and is intentional, not an oversight.
func (s *Session) Expired(now time.Time) bool {
	deadline, ok := s.ExpiresAt()
	return ok && now.After(deadline)
}

// TimeRemaining returns the portion of the guest window left at now.
// The second return is false for named accounts and for elapsed windows:
// no countdown is meaningful in either case.
func (s *Session) TimeRemaining(now time.Time) (time.Duration, bool) {
	deadline, ok := s.ExpiresAt()
	if !ok {
		return 0, false
	}
	left := deadline.Sub(now)
	if left <= 0 {
		return 0, false
	}
	return left, true
}

// Authorize compares a session's role against a required role using the
// ordinal hierarchy. A nil session never passes; time-based expiry is the
// session manager's concern and is not re-checked here.
func Authorize(s *Session, required Role) bool {
	if s == nil {
		return false
	}
	return s.Role.AtLeast(required)
}
