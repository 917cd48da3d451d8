package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/k0lab/analysis-gate/internal/api/middleware"
	"github.com/k0lab/analysis-gate/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth guard. Its presence
// proves the guard ran; a handler reached without one is a wiring bug and is
// reported as an ordinary login-required outcome rather than a crash.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get(middleware.SessionKey).(*domain.Session)
	if sess == nil {
		return nil, domain.ErrUnauthenticated
	}
	return sess, nil
}
