package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/k0lab/analysis-gate/internal/api/middleware"
	"github.com/k0lab/analysis-gate/internal/core/domain"
	"github.com/k0lab/analysis-gate/internal/core/ports"
)

// stubSessionService scripts the outcomes the handlers translate to HTTP.
type stubSessionService struct {
	session   *domain.Session
	ticket    string
	err       error
	loggedOut []string
}

func (s *stubSessionService) Login(_ context.Context, username, password, origin string) (*domain.Session, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.session, s.ticket, nil
}

func (s *stubSessionService) GuestLogin(_ context.Context, token, origin string) (*domain.Session, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.session, s.ticket, nil
}

func (s *stubSessionService) Validate(_ context.Context, sessionID string, _ time.Time) (*domain.Session, error) {
	if s.session != nil && sessionID == s.session.ID {
		return s.session, nil
	}
	return nil, domain.ErrUnauthenticated
}

func (s *stubSessionService) Logout(_ context.Context, sessionID string) error {
	s.loggedOut = append(s.loggedOut, sessionID)
	return nil
}

func (s *stubSessionService) Info(sess *domain.Session, now time.Time) ports.SessionInfo {
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

func (s *stubSessionService) Stats(context.Context) (ports.SessionStats, error) {
	return ports.SessionStats{Active: 3, Guests: 1}, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	svc := &stubSessionService{
		session: &domain.Session{
			ID:          "sid-1",
			Subject:     "admin",
			DisplayName: "Administrator",
			Role:        domain.RoleAdmin,
			StartedAt:   time.Now().UTC(),
		},
		ticket: "signed-ticket",
	}
	h := NewAuthHandler(svc)

	c, rec := postJSON(e, "/auth/login", `{"username":"admin","password":"admin123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Ticket != "signed-ticket" {
		t.Fatalf("ticket = %q", resp.Ticket)
	}
	if resp.Session.Subject != "admin" || resp.Session.Role != domain.RoleAdmin {
		t.Fatalf("unexpected session info: %+v", resp.Session)
	}
	if resp.Session.Remaining != "" {
		t.Fatalf("named account must not report a countdown")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubSessionService{})

	c, _ := postJSON(e, "/auth/login", `{"username":"admin"}`)
	var he *echo.HTTPError
	if err := h.Login(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubSessionService{err: domain.ErrInvalidCredentials})

	c, _ := postJSON(e, "/auth/login", `{"username":"admin","password":"wrong"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_GuestLogin_Remaining(t *testing.T) {
	e := newTestEcho()
	svc := &stubSessionService{
		session: &domain.Session{
			ID:          "sid-g",
			Subject:     domain.GuestSubject,
			DisplayName: "Guest User",
			Role:        domain.RoleGuest,
			IsGuest:     true,
			StartedAt:   time.Now().UTC(),
		},
		ticket: "guest-ticket",
	}
	h := NewAuthHandler(svc)

	c, rec := postJSON(e, "/auth/guest", `{"token":"K0-2024-TEMP-ACCESS"}`)
	if err := h.GuestLogin(c); err != nil {
		t.Fatalf("guest login handler error: %v", err)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Session.IsGuest {
		t.Fatalf("expected guest session info")
	}
	if resp.Session.Remaining != "23h 59m" && resp.Session.Remaining != "24h 0m" {
		t.Fatalf("remaining = %q, want about 24h", resp.Session.Remaining)
	}
}

func TestAuthHandler_GuestLogin_BadToken(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubSessionService{err: domain.ErrInvalidGuestToken})

	c, _ := postJSON(e, "/auth/guest", `{"token":"K0-2024-TEMP-ACCESs"}`)
	if err := h.GuestLogin(c); !errors.Is(err, domain.ErrInvalidGuestToken) {
		t.Fatalf("expected ErrInvalidGuestToken, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	sess := &domain.Session{ID: "sid-1", Subject: "admin", Role: domain.RoleAdmin}
	svc := &stubSessionService{session: sess}
	h := NewAuthHandler(svc)

	c, rec := postJSON(e, "/auth/logout", "")
	c.Set(middleware.SessionKey, sess)

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "sid-1" {
		t.Fatalf("logout not delegated: %v", svc.loggedOut)
	}
}

func TestAuthHandler_SessionWithoutGuard(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if err := h.Session(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{24 * time.Hour, "24h 0m"},
		{23*time.Hour + 59*time.Minute, "23h 59m"},
		{90 * time.Minute, "1h 30m"},
		{45 * time.Second, "0h 0m"},
	}
	for _, tc := range cases {
		if got := formatRemaining(tc.d); got != tc.want {
			t.Fatalf("formatRemaining(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
