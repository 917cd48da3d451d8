package domain

import (
	"errors"
	"time"
)

var ErrInvalidGuestToken = errors.New("invalid or expired guest token")

// GuestSubject is the identity recorded for guest sessions. The shared token
// carries no identity of its own, so every guest is admitted under this name.
const GuestSubject = "guest"

// GuestToken is the process-wide shared secret granting time-boxed access.
// It is not per-grant: anyone presenting the exact value before ValidUntil
// is admitted.
type GuestToken struct {
	Value      string
	ValidUntil time.Time
}

// Accepts reports whether the presented string grants guest access at now.
// Exact string equality only; there is no partial matching.
func (t GuestToken) Accepts(presented string, now time.Time) bool {
	return presented == t.Value && !now.After(t.ValidUntil)
}
