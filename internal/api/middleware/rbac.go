package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/k0lab/analysis-gate/internal/api/metrics"
	"github.com/k0lab/analysis-gate/internal/core/domain"
)

// RequireRole is the authorization guard. It assumes Auth already ran and
// compares the session's role against the required minimum using the ordinal
// hierarchy. Role failure is a denial signal, deliberately distinct from the
// login-required signal Auth emits, so callers can render the right response.
func RequireRole(required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, _ := c.Get(SessionKey).(*domain.Session)
			if sess == nil {
				return domain.ErrUnauthenticated
			}
			if !domain.Authorize(sess, required) {
				metrics.RoleDenialsTotal.WithLabelValues(string(required)).Inc()
				return domain.ErrInsufficientRole
			}
			return next(c)
		}
	}
}

// RequireUser guards operations that did not state a role explicitly. The
// default excludes guests: only routes that opt in to guest-level access
// admit them.
func RequireUser() echo.MiddlewareFunc {
	return RequireRole(domain.RoleUser)
}
