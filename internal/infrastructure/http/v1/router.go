// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"petstock/internal/domain/auth"
	"petstock/internal/domain/invoice"
	"petstock/internal/domain/item"
	"petstock/internal/domain/reports"
	"petstock/internal/domain/snack"
	"petstock/internal/infrastructure/cache"
	"petstock/internal/infrastructure/http/v1/handlers"
	"petstock/internal/infrastructure/http/v1/middleware"
	"petstock/internal/infrastructure/storage/postgres"
	"petstock/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (used for health checks).
	Pool *postgres.Pool

	// TxManager provides transactional execution for services.
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// AuthService for authentication endpoints and token validation.
	AuthService *auth.Service

	// History is the month-keyed invoice history cache.
	History invoice.HistoryCache

	// Snapshot is the session item snapshot.
	Snapshot *cache.ItemSnapshot

	// GinMode sets the Gin runtime mode ("release", "debug", "test").
	GinMode string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories and services share the TxManager; repos pick the
	// active transaction from context per call.
	itemRepo := postgres.NewItemRepo(cfg.TxManager)
	invoiceRepo := postgres.NewInvoiceRepo(cfg.TxManager)
	snackRepo := postgres.NewSnackRepo(cfg.TxManager)
	salesLogRepo := postgres.NewSnackSalesLogRepo(cfg.TxManager)

	itemService := item.NewService(itemRepo, cfg.TxManager, cfg.Snapshot)
	invoiceService := invoice.NewService(invoiceRepo, itemRepo, cfg.TxManager, cfg.History, cfg.Snapshot)
	snackService := snack.NewService(snackRepo, salesLogRepo, cfg.TxManager)
	reportsService := reports.NewService(itemRepo, invoiceRepo)

	base := handlers.NewBaseHandler()

	// API v1
	api := router.Group("/api/v1")
	{
		registerAuthRoutes(api, base, cfg)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.AuthService))

		handlers.NewItemHandler(base, itemService).RegisterRoutes(protected.Group("/items"))
		handlers.NewInvoiceHandler(base, invoiceService).RegisterRoutes(protected.Group("/invoices"))
		handlers.NewSnackHandler(base, snackService).RegisterRoutes(protected.Group("/snacks"))
		handlers.NewReportsHandler(base, reportsService).RegisterRoutes(protected.Group("/reports"))
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

	public := rg.Group("/auth")

	protected := rg.Group("/auth")
	protected.Use(middleware.Auth(cfg.AuthService))

	authHandler.RegisterRoutes(public, protected)
}
