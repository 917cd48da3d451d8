package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/k0lab/analysis-gate/internal/core/domain"
	"github.com/k0lab/analysis-gate/internal/core/ports"
)

const (
	guestDisplayName = "Guest User"
	guestEmail       = "guest@k0lab.local"
)

// SessionService implements authentication, session lifecycle, and guest
// admission. It is the sole producer of Active sessions.
type SessionService struct {
	accounts     ports.CredentialStore
	sessions     ports.SessionStore
	hasher       ports.PasswordHasher
	recorder     ports.AccessRecorder
	guestToken   domain.GuestToken
	ticketSecret string
	log          zerolog.Logger

	// now is swapped out in tests to drive the guest window.
	now func() time.Time
}

func NewSessionService(
	accounts ports.CredentialStore,
	sessions ports.SessionStore,
	hasher ports.PasswordHasher,
	recorder ports.AccessRecorder,
	guestToken domain.GuestToken,
	ticketSecret string,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		accounts:     accounts,
		sessions:     sessions,
		hasher:       hasher,
		recorder:     recorder,
		guestToken:   guestToken,
		ticketSecret: ticketSecret,
		log:          log,
		now:          time.Now,
	}
}

// VerifyCredentials reports whether username/plaintext name a registered
// account. Unknown username and wrong password are indistinguishable: both
// are an ordinary false, so the API never confirms which usernames exist.
func (s *SessionService) VerifyCredentials(ctx context.Context, username, plaintext string) (bool, error) {
	acct, err := s.accounts.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.hasher.Verify(acct.PasswordDigest, plaintext), nil
}

// Login authenticates a named account and creates its session.
func (s *SessionService) Login(ctx context.Context, username, password, origin string) (*domain.Session, string, error) {
	if username == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	acct, err := s.accounts.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrAccountNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.Verify(acct.PasswordDigest, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	return s.create(ctx, acct.Username, acct.DisplayName, acct.Email, acct.Role, false, origin)
}

// GuestLogin admits the shared guest token: identity-less, role guest,
// time-boxed to the guest window.
func (s *SessionService) GuestLogin(ctx context.Context, token, origin string) (*domain.Session, string, error) {
	if !s.guestToken.Accepts(token, s.now()) {
		return nil, "", domain.ErrInvalidGuestToken
	}
	return s.create(ctx, domain.GuestSubject, guestDisplayName, guestEmail, domain.RoleGuest, true, origin)
}

// create is the single constructor for Active sessions. It stores the
// session, emits exactly one access record, and signs the client ticket.
func (s *SessionService) create(ctx context.Context, subject, displayName, email string, role domain.Role, isGuest bool, origin string) (*domain.Session, string, error) {
	sess := &domain.Session{
		ID:          uuid.NewString(),
		Subject:     subject,
		DisplayName: displayName,
		Email:       email,
		Role:        role,
		IsGuest:     isGuest,
		StartedAt:   s.now().UTC(),
	}

	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, "", err
	}

	ticket, err := s.signTicket(sess)
	if err != nil {
		_ = s.sessions.Delete(ctx, sess.ID)
		return nil, "", err
	}

	s.recordAccess(ctx, sess, origin)

	s.log.Info().
		Str("subject", sess.Subject).
		Str("role", string(sess.Role)).
		Bool("guest", sess.IsGuest).
		Msg("session created")

	return sess, ticket, nil
}

// recordAccess hands the record to the audit sink. Auditing is best-effort:
// a sink failure is logged and the login succeeds regardless.
func (s *SessionService) recordAccess(ctx context.Context, sess *domain.Session, origin string) {
	if origin == "" {
		origin = domain.OriginUnknown
	}
	rec := domain.AccessRecord{
		Subject:   sess.Subject,
		IsGuest:   sess.IsGuest,
		Timestamp: sess.StartedAt,
		Origin:    origin,
	}
	if err := s.recorder.Record(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("subject", rec.Subject).Msg("access record not persisted")
	}
}

// Validate resolves a session ID to its Active session as observed at now.
// Observing an elapsed guest window terminates the session before reporting
// expiry, so a stale session can never be replayed after the check.
func (s *SessionService) Validate(ctx context.Context, sessionID string, now time.Time) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrUnauthenticated
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	if sess.Expired(now) {
		if delErr := s.sessions.Delete(ctx, sess.ID); delErr != nil {
			s.log.Warn().Err(delErr).Str("session_id", sess.ID).Msg("expired session cleanup failed")
		}
		s.log.Info().Str("subject", sess.Subject).Msg("guest session expired")
		return nil, domain.ErrSessionExpired
	}

	return sess, nil
}

// Logout terminates a session. Terminating an already-terminated or unknown
// session is a no-op, not an error.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.log.Info().Str("session_id", sessionID).Msg("session terminated")
	return nil
}

// Info builds the caller-facing view of a session at now.
func (s *SessionService) Info(sess *domain.Session, now time.Time) ports.SessionInfo {
	info := ports.SessionInfo{
		Subject:     sess.Subject,
		DisplayName: sess.DisplayName,
		Email:       sess.Email,
		Role:        sess.Role,
		IsGuest:     sess.IsGuest,
		StartedAt:   sess.StartedAt,
	}
	if left, ok := sess.TimeRemaining(now); ok {
		info.Remaining = &left
	}
	return info
}

// Stats reports the live session population.
func (s *SessionService) Stats(ctx context.Context) (ports.SessionStats, error) {
	return s.sessions.Count(ctx)
}

// signTicket wraps the session ID in an HS256 JWT so the bearer token handed
// to clients is tamper-evident. The server-side store stays authoritative;
// the exp claim on guest tickets only mirrors the window.
func (s *SessionService) signTicket(sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sess.ID,
		"sub":   sess.Subject,
		"role":  string(sess.Role),
		"guest": sess.IsGuest,
	}
	if deadline, ok := sess.ExpiresAt(); ok {
		claims["exp"] = deadline.Unix()
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.ticketSecret))
}
