package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gamevault/license-server/internal/api/handler"
	"github.com/gamevault/license-server/internal/api/middleware"
	"github.com/gamevault/license-server/internal/core/ports"
	"github.com/gamevault/license-server/internal/pkg/config"
)

// Deps carries the explicitly constructed dependencies into the router.
// Everything is built once in main and injected; no component reaches for
// a shared global handle.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Audit    ports.AuditService
	UserRepo ports.UserRepository
	Blocks   ports.IPBlockRepository
	Limiter  ports.LoginLimiter
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Pipeline per request: IP access filter → (rate limiter on login only) →
// route handler → [session validator → role gate] on protected routes.
func NewRouter(cfg *config.Config, d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("license"))
	e.Use(middleware.IPBlock(d.Blocks, d.Log))

	session := middleware.Session(cfg.JWTSecret, d.UserRepo)
	admin := middleware.RequireAdmin()

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/auth/login", authHandler.Login, middleware.LoginRateLimit(d.Limiter, d.Log))
	e.GET("/auth/users/me", authHandler.Me, session)
	e.GET("/auth/check-license", authHandler.CheckLicense, session)

	// --- Admin routes ---
	adminHandler := handler.NewAdminHandler(d.Users, d.Audit, d.Blocks)
	exportHandler := handler.NewExportHandler(d.Users)

	g := e.Group("/admin", session, admin)
	g.GET("/users", adminHandler.ListUsers)
	g.POST("/users", adminHandler.CreateUser)
	g.GET("/users/:id", adminHandler.GetUser)
	g.DELETE("/users/:id", adminHandler.DeleteUser)
	g.PUT("/users/:id/license", adminHandler.RenewLicense)
	g.GET("/license-stats", adminHandler.LicenseStats)
	g.POST("/blocked-ips", adminHandler.BlockIP)
	g.DELETE("/blocked-ips/:ip", adminHandler.UnblockIP)
	g.GET("/blocked-ips", adminHandler.ListBlockedIPs)
	g.GET("/login-logs", adminHandler.LoginLogs)
	g.GET("/export", exportHandler.Export)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
