package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/k0lab/analysis-gate/internal/api/handler"
	"github.com/k0lab/analysis-gate/internal/api/middleware"
	"github.com/k0lab/analysis-gate/internal/core/domain"
	"github.com/k0lab/analysis-gate/internal/core/ports"
)

// Deps carries everything the router wires into routes. Mongo and Redis are
// nil when the deployment runs on in-process stores; AccessLog is nil when
// the audit sink does not retain records.
type Deps struct {
	Sessions     ports.SessionService
	Accounts     ports.AccountLister
	AccessLog    ports.AccessLog
	GuestToken   domain.GuestToken
	TicketSecret string
	Mongo        *mongo.Database
	Redis        *redis.Client
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("authgate"))

	// --- Guards ---
	authGuard := middleware.Auth(deps.TicketSecret, deps.Sessions)
	adminGuard := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Sessions)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/guest", authHandler.GuestLogin)
	// Session introspection and logout admit guests: only the auth guard
	// applies, no role floor.
	e.POST("/auth/logout", authHandler.Logout, authGuard)
	e.GET("/auth/session", authHandler.Session, authGuard)

	// --- Admin surface ---
	adminHandler := handler.NewAdminHandler(deps.Sessions, deps.Accounts, deps.AccessLog, deps.GuestToken)
	admin := e.Group("/admin", authGuard, adminGuard)
	admin.GET("/accounts", adminHandler.Accounts)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/guest-token", adminHandler.GuestToken)
	admin.GET("/accesses", adminHandler.Accesses)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
