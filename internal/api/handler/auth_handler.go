package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/k0lab/analysis-gate/internal/api/metrics"
	"github.com/k0lab/analysis-gate/internal/core/domain"
	"github.com/k0lab/analysis-gate/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type guestLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

type sessionInfoResponse struct {
	Subject     string      `json:"subject"`
	DisplayName string      `json:"display_name"`
	Email       string      `json:"email,omitempty"`
	Role        domain.Role `json:"role"`
	IsGuest     bool        `json:"is_guest"`
	StartedAt   time.Time   `json:"started_at"`
	Remaining   string      `json:"remaining,omitempty"`
}

type loginResponse struct {
	Ticket  string              `json:"ticket"`
	Session sessionInfoResponse `json:"session"`
}

// Login authenticates a named account and returns a session ticket.
//
// @Summary      Login with account credentials
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Account credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, ticket, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password, c.RealIP())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("password", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("password", "success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Ticket:  ticket,
		Session: toSessionInfo(h.sessions.Info(sess, time.Now())),
	})
}

// GuestLogin admits the shared guest token for a time-boxed session.
//
// @Summary      Login with the temporary guest token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      guestLoginRequest  true  "Guest token"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/guest [post]
func (h *AuthHandler) GuestLogin(c echo.Context) error {
	var req guestLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, ticket, err := h.sessions.GuestLogin(c.Request().Context(), req.Token, c.RealIP())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("guest", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("guest", "success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Ticket:  ticket,
		Session: toSessionInfo(h.sessions.Info(sess, time.Now())),
	})
}

// Logout terminates the calling session. Safe to repeat: a second logout of
// the same session is a no-op.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.sessions.Logout(c.Request().Context(), sess.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Session reports the calling session: subject, display name, role, and the
// guest countdown when one applies.
//
// @Summary      Current session info
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionInfoResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionInfo(h.sessions.Info(sess, time.Now())))
}

func toSessionInfo(info ports.SessionInfo) sessionInfoResponse {
	resp := sessionInfoResponse{
		Subject:     info.Subject,
		DisplayName: info.DisplayName,
		Email:       info.Email,
		Role:        info.Role,
		IsGuest:     info.IsGuest,
		StartedAt:   info.StartedAt,
	}
	if info.Remaining != nil {
		resp.Remaining = formatRemaining(*info.Remaining)
	}
	return resp
}

// formatRemaining renders the guest countdown the way the status bar shows
// it: whole hours and minutes, e.g. "23h 59m".
func formatRemaining(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
