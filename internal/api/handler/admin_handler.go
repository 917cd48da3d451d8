package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/k0lab/analysis-gate/internal/core/domain"
	"github.com/k0lab/analysis-gate/internal/core/ports"
)

const defaultAccessLimit = 50

// AdminHandler serves the admin surface: the account registry, live session
// stats, guest-token metadata, and the recent access log. All routes behind
// it require the admin role.
type AdminHandler struct {
	sessions   ports.SessionService
	accounts   ports.AccountLister
	accessLog  ports.AccessLog // nil when the configured sink does not retain records
	guestToken domain.GuestToken
}

func NewAdminHandler(sessions ports.SessionService, accounts ports.AccountLister, accessLog ports.AccessLog, guestToken domain.GuestToken) *AdminHandler {
	return &AdminHandler{
		sessions:   sessions,
		accounts:   accounts,
		accessLog:  accessLog,
		guestToken: guestToken,
	}
}

type accountResponse struct {
	Username    string      `json:"username"`
	DisplayName string      `json:"display_name"`
	Role        domain.Role `json:"role"`
	Email       string      `json:"email,omitempty"`
}

// Accounts lists the registered accounts. Digests never leave the store.
//
// @Summary      List registered accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   accountResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/accounts [get]
func (h *AdminHandler) Accounts(c echo.Context) error {
	records, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]accountResponse, 0, len(records))
	for _, r := range records {
		out = append(out, accountResponse{
			Username:    r.Username,
			DisplayName: r.DisplayName,
			Role:        r.Role,
			Email:       r.Email,
		})
	}
	return c.JSON(http.StatusOK, out)
}

type statsResponse struct {
	ActiveSessions int `json:"active_sessions"`
	ActiveGuests   int `json:"active_guests"`
}

// Stats reports the live session population.
//
// @Summary      Usage statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.sessions.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statsResponse{
		ActiveSessions: stats.Active,
		ActiveGuests:   stats.Guests,
	})
}

type guestTokenResponse struct {
	ValidUntil time.Time `json:"valid_until"`
	Expired    bool      `json:"expired"`
}

// GuestToken exposes the guest-token deadline so an operator can see when
// temporary access lapses. The token value itself is never returned.
//
// @Summary      Guest token metadata
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  guestTokenResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/guest-token [get]
func (h *AdminHandler) GuestToken(c echo.Context) error {
	now := time.Now()
	return c.JSON(http.StatusOK, guestTokenResponse{
		ValidUntil: h.guestToken.ValidUntil,
		Expired:    now.After(h.guestToken.ValidUntil),
	})
}

// Accesses returns the most recent access records, newest first. Available
// only when the audit sink retains records; the console sink returns an
// empty list.
//
// @Summary      Recent access log
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.AccessRecord
// @Failure      403  {object}  errorResponse
// @Router       /admin/accesses [get]
func (h *AdminHandler) Accesses(c echo.Context) error {
	limit := defaultAccessLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	if h.accessLog == nil {
		return c.JSON(http.StatusOK, []domain.AccessRecord{})
	}

	records, err := h.accessLog.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if records == nil {
		records = []domain.AccessRecord{}
	}
	return c.JSON(http.StatusOK, records)
}
