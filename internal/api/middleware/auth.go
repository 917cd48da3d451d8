package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/k0lab/analysis-gate/internal/api/metrics"
	"github.com/k0lab/analysis-gate/internal/core/domain"
	"github.com/k0lab/analysis-gate/internal/core/ports"
)

// SessionKey is the echo context key under which Auth stores the resolved
// session.
const SessionKey = "session"

// Auth is the authentication guard: it verifies the bearer ticket, resolves
// it to an Active session, and injects the session into the request context.
// Any failure is a login-required signal; the protected handler never runs.
//
// An expired ticket is still resolved against the store so the session
// service can observe the elapsed window and terminate the stale session.
func Auth(ticketSecret string, sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(ticketSecret), nil
			})
			if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid ticket")
			}
			if err == nil && !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid ticket")
			}

			sid, _ := claims["sid"].(string)
			sess, err := sessions.Validate(c.Request().Context(), sid, time.Now())
			if err != nil {
				if errors.Is(err, domain.ErrSessionExpired) {
					metrics.GuestExpiriesTotal.Inc()
				}
				return err
			}

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}
