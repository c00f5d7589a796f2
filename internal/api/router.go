package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/syncspace/edge-gateway/internal/api/handler"
	"github.com/syncspace/edge-gateway/internal/api/middleware"
	"github.com/syncspace/edge-gateway/internal/core/domain"
	"github.com/syncspace/edge-gateway/internal/core/ports"
	"github.com/syncspace/edge-gateway/internal/core/service"
	"github.com/syncspace/edge-gateway/internal/infrastructure/backend"
	"github.com/syncspace/edge-gateway/internal/infrastructure/config"
	redisstore "github.com/syncspace/edge-gateway/internal/infrastructure/db/redis"
	"github.com/syncspace/edge-gateway/internal/infrastructure/media"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Route groups mirror the web app's guards: public browse, host-managed
// events, user bookings, authenticated reviews and uploads, admin views.
func NewRouter(
	cfg *config.Config,
	log zerolog.Logger,
	db *mongo.Database,
	rdb *redis.Client,
	activity ports.ActivityService,
	dispatcher handler.ActivityDispatcher,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("syncspace"))

	// --- Dependencies ---
	gateway := backend.NewClient(cfg.BackendBaseURL, log)
	sessionStore := redisstore.NewSessionStore(rdb, cfg.Session.TTL)
	sessions := service.NewSessionService(sessionStore, gateway, cfg.Session.Secret, cfg.Session.TTL, log)

	authHandler := handler.NewAuthHandler(gateway, sessions, dispatcher, cfg.Session.Cookie, sessions.TTL(), cfg.Routes.LoginPath)
	proxyHandler := handler.NewProxyHandler(gateway)
	uploadHandler := handler.NewUploadHandler(media.NewUploader(cfg.Media.UploadURL, cfg.Media.Preset, log))
	activityHandler := handler.NewActivityHandler(activity)

	session := middleware.Session(cfg.Session.Cookie, sessions)
	authorize := func(roles ...string) echo.MiddlewareFunc {
		return middleware.Authorize(cfg.Routes.LoginPath, cfg.Routes.UnauthorizedPath, roles...)
	}
	anyRole := []string{domain.RoleAdmin, domain.RoleHost, domain.RoleUser}

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, session)

	// --- Opaque resource routes ---
	apiGroup := e.Group("/api", session)

	apiGroup.GET("/events", proxyHandler.Forward)
	apiGroup.GET("/events/:id", proxyHandler.Forward)

	hostOnly := authorize(domain.RoleHost)
	apiGroup.POST("/events", proxyHandler.Forward, hostOnly)
	apiGroup.PUT("/events/:id", proxyHandler.Forward, hostOnly)
	apiGroup.DELETE("/events/:id", proxyHandler.Forward, hostOnly)

	bookings := apiGroup.Group("/bookings", authorize(domain.RoleUser))
	bookings.Any("", proxyHandler.Forward)
	bookings.Any("/*", proxyHandler.Forward)

	reviews := apiGroup.Group("/reviews", authorize(anyRole...))
	reviews.Any("", proxyHandler.Forward)
	reviews.Any("/*", proxyHandler.Forward)

	apiGroup.POST("/uploads/image", uploadHandler.Image, authorize(anyRole...))

	admin := apiGroup.Group("/admin", authorize(domain.RoleAdmin))
	admin.GET("/stats", proxyHandler.Forward)
	admin.GET("/activity", activityHandler.Recent)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb, db, gateway)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
