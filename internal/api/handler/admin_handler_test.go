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

	"github.com/k0lab/analysis-gate/internal/core/domain"
)

type stubAccountLister struct {
	records []domain.AccountRecord
}

func (s *stubAccountLister) List(context.Context) ([]domain.AccountRecord, error) {
	return s.records, nil
}

type stubAccessLog struct {
	records  []domain.AccessRecord
	gotLimit int
}

func (s *stubAccessLog) Recent(_ context.Context, limit int) ([]domain.AccessRecord, error) {
	s.gotLimit = limit
	return s.records, nil
}

func getRequest(e *echo.Echo, path string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAdminHandler_Accounts_OmitsDigests(t *testing.T) {
	e := newTestEcho()
	lister := &stubAccountLister{records: []domain.AccountRecord{
		{Username: "admin", PasswordDigest: "240be518", DisplayName: "Administrator", Role: domain.RoleAdmin, Email: "admin@k0lab.local"},
		{Username: "analyst", PasswordDigest: "ef797c81", DisplayName: "General Analyst", Role: domain.RoleUser},
	}}
	h := NewAdminHandler(&stubSessionService{}, lister, nil, domain.GuestToken{})

	c, rec := getRequest(e, "/admin/accounts")
	if err := h.Accounts(c); err != nil {
		t.Fatalf("accounts handler error: %v", err)
	}

	if strings.Contains(rec.Body.String(), "240be518") || strings.Contains(rec.Body.String(), "ef797c81") {
		t.Fatalf("password digest leaked in listing: %s", rec.Body.String())
	}

	var out []accountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 2 || out[0].Username != "admin" || out[1].Role != domain.RoleUser {
		t.Fatalf("unexpected listing: %+v", out)
	}
}

func TestAdminHandler_Stats(t *testing.T) {
	e := newTestEcho()
	h := NewAdminHandler(&stubSessionService{}, &stubAccountLister{}, nil, domain.GuestToken{})

	c, rec := getRequest(e, "/admin/stats")
	if err := h.Stats(c); err != nil {
		t.Fatalf("stats handler error: %v", err)
	}

	var out statsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ActiveSessions != 3 || out.ActiveGuests != 1 {
		t.Fatalf("unexpected stats: %+v", out)
	}
}

func TestAdminHandler_GuestToken_MasksValue(t *testing.T) {
	e := newTestEcho()
	deadline := time.Now().Add(48 * time.Hour).UTC()
	h := NewAdminHandler(&stubSessionService{}, &stubAccountLister{}, nil,
		domain.GuestToken{Value: "K0-2024-TEMP-ACCESS", ValidUntil: deadline})

	c, rec := getRequest(e, "/admin/guest-token")
	if err := h.GuestToken(c); err != nil {
		t.Fatalf("guest-token handler error: %v", err)
	}

	if strings.Contains(rec.Body.String(), "K0-2024-TEMP-ACCESS") {
		t.Fatalf("token value leaked: %s", rec.Body.String())
	}

	var out guestTokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Expired {
		t.Fatalf("future deadline reported expired")
	}
}

func TestAdminHandler_Accesses(t *testing.T) {
	e := newTestEcho()
	accessLog := &stubAccessLog{records: []domain.AccessRecord{
		{Subject: "admin", Timestamp: time.Now().UTC(), Origin: "10.0.0.7"},
	}}
	h := NewAdminHandler(&stubSessionService{}, &stubAccountLister{}, accessLog, domain.GuestToken{})

	c, rec := getRequest(e, "/admin/accesses?limit=10")
	if err := h.Accesses(c); err != nil {
		t.Fatalf("accesses handler error: %v", err)
	}
	if accessLog.gotLimit != 10 {
		t.Fatalf("limit not forwarded, got %d", accessLog.gotLimit)
	}

	var out []domain.AccessRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 1 || out[0].Subject != "admin" {
		t.Fatalf("unexpected records: %+v", out)
	}
}

func TestAdminHandler_Accesses_BadLimit(t *testing.T) {
	e := newTestEcho()
	h := NewAdminHandler(&stubSessionService{}, &stubAccountLister{}, &stubAccessLog{}, domain.GuestToken{})

	for _, raw := range []string{"0", "-5", "ten"} {
		c, _ := getRequest(e, "/admin/accesses?limit="+raw)
		var he *echo.HTTPError
		if err := h.Accesses(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("limit=%q: expected 400 HTTPError, got %v", raw, err)
		}
	}
}

func TestAdminHandler_Accesses_TransientSink(t *testing.T) {
	// Console sink retains nothing; the admin surface answers with an
	// empty list rather than an error.
	e := newTestEcho()
	h := NewAdminHandler(&stubSessionService{}, &stubAccountLister{}, nil, domain.GuestToken{})

	c, rec := getRequest(e, "/admin/accesses")
	if err := h.Accesses(c); err != nil {
		t.Fatalf("accesses handler error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty list, got %s", body)
	}
}
