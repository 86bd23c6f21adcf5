package main

import (
	"freightquote/internal/handler"
	"freightquote/internal/middleware"
	"freightquote/internal/model"
	"freightquote/internal/storage"
	"freightquote/pkg/config"
	"freightquote/pkg/database"
	"freightquote/pkg/jwtutil"
	"freightquote/pkg/logger"
	"freightquote/prometheus"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wader/gormstore/v2"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting freight quote service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg, log); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)

	store := storage.New(database.GetDB())

	// Database-backed session store shared across replicas
	sessionStore := gormstore.New(database.GetDB(), []byte(cfg.Session.Secret))
	sessionStore.SessionOpts.Path = "/"
	sessionStore.SessionOpts.HttpOnly = true
	sessionStore.SessionOpts.MaxAge = int(cfg.Session.MaxAge.Seconds())
	quit := make(chan struct{})
	go sessionStore.PeriodicCleanup(1*time.Hour, quit)

	h := handler.New(store, sessionStore)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(middleware.MetricsMiddleware)

	// Public routes - no authentication required
	e.GET("/health", h.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/api/register", h.Register)
	e.POST("/api/login", h.Login)
	e.POST("/api/logout", h.Logout)

	// API routes - all require authentication
	api := e.Group("/api")
	api.Use(middleware.Auth(store, sessionStore))

	api.GET("/user", h.CurrentUser)

	// Company and carrier management - admin only
	admin := middleware.RequireRole(model.RoleAdmin)
	api.GET("/companies", h.ListCompanies, admin)
	api.POST("/companies", h.CreateCompany, admin)
	api.GET("/companies/:id", h.GetCompany, admin)
	api.PATCH("/companies/:id", h.UpdateCompany, admin)
	api.DELETE("/companies/:id", h.DeleteCompany, admin)
	api.GET("/carriers", h.ListCarriers, admin)
	api.POST("/carriers", h.CreateCarrier, admin)
	api.GET("/carriers/:id", h.GetCarrier, admin)
	api.PATCH("/carriers/:id", h.UpdateCarrier, admin)
	api.DELETE("/carriers/:id", h.DeleteCarrier, admin)

	// Addresses - any authenticated user
	api.GET("/companies/:id/addresses", h.ListAddresses)
	api.POST("/companies/:id/addresses", h.CreateAddress)
	api.GET("/carriers/:id/addresses", h.ListAddresses)
	api.POST("/carriers/:id/addresses", h.CreateAddress)
	api.PUT("/addresses/:id", h.UpdateAddress)
	api.DELETE("/addresses/:id", h.DeleteAddress)

	// Quotes and bids
	api.GET("/quotes", h.ListQuotes)
	api.POST("/quotes", h.CreateQuote, middleware.RequireRole(model.RoleClient))
	api.GET("/quotes/:id", h.GetQuote)
	api.POST("/quotes/:id/close", h.CloseQuote)
	api.GET("/quotes/:id/bids", h.ListQuoteBids)
	api.POST("/quotes/:id/bids", h.CreateBid, middleware.RequireRole(model.RoleCarrier))
	api.POST("/bids/:id/accept", h.AcceptBid, middleware.RequireRole(model.RoleClient))
	api.POST("/bids/:id/reject", h.RejectBid, middleware.RequireRole(model.RoleClient))

	// Audit trail - read only
	api.GET("/audit-logs", h.ListAuditLogs, middleware.RequireRole(model.RoleAdmin, model.RoleAuditor))

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
