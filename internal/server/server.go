// Package server wires the stores, services and handlers into the HTTP API.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"homeledger/internal/config"
	"homeledger/internal/database"
	apperrors "homeledger/internal/errors"
	"homeledger/internal/handlers"
	"homeledger/internal/logger"
	"homeledger/internal/middleware"
	"homeledger/internal/models"
	"homeledger/internal/services"
	"homeledger/internal/storage"
	"homeledger/internal/storage/csvstore"
	"homeledger/internal/storage/sqlstore"

	_ "homeledger/internal/docs" // swagger docs
)

// App is the wired application.
type App struct {
	Router *gin.Engine
	Ledger services.LedgerServicer
	Assets services.AssetServicer
}

// OpenRepository opens the configured storage backend. The returned close
// function releases the database connection of the sql backend.
func OpenRepository(cfg *config.Config, migrationsDir string) (storage.Repository, func() error, error) {
	if cfg.DataBackend == config.BackendCSV {
		logger.Get().Infow("Using CSV storage",
			"transactions", cfg.TransactionsPath(),
			"assets", cfg.AssetsPath(),
		)
		return csvstore.New(cfg.TransactionsPath(), cfg.AssetsPath()), func() error { return nil }, nil
	}

	dbManager, err := database.NewManager(database.NewConfig(cfg, migrationsDir))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		_ = dbManager.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Get().Infow("Using SQL storage", "driver", cfg.DBDriver)
	return sqlstore.New(dbManager.DB()), dbManager.Close, nil
}

// New builds the services and the router over repo. A nil clock means the
// wall clock.
func New(cfg *config.Config, repo storage.Repository, clock models.Clock) *App {
	if clock == nil {
		clock = models.SystemClock
	}
	converter := cfg.Converter()

	auditService := services.NewAuditService()
	ledgerService := services.NewLedgerService(repo, clock, auditService)
	assetService := services.NewAssetService(repo, clock, auditService)

	reportHandler := handlers.NewReportHandler(ledgerService, converter, converter.Base(), clock)
	router := NewRouter(Handlers{
		Transactions: handlers.NewTransactionHandler(ledgerService),
		Assets:       handlers.NewAssetHandler(assetService, converter),
		Reports:      reportHandler,
		Dashboard:    handlers.NewDashboardHandler(reportHandler, assetService),
		Reference:    handlers.NewReferenceHandler(converter),
		Imports:      handlers.NewImportHandler(ledgerService, assetService, cfg.MaxUploadMB),
	})

	return &App{Router: router, Ledger: ledgerService, Assets: assetService}
}

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Transactions *handlers.TransactionHandler
	Assets       *handlers.AssetHandler
	Reports      *handlers.ReportHandler
	Dashboard    *handlers.DashboardHandler
	Reference    *handlers.ReferenceHandler
	Imports      *handlers.ImportHandler
}

// NewRouter mounts every route under /api/v1.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Unmatched routes are rendered by middleware.ErrorHandler.
	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.WithMessage(apperrors.ErrNotFound,
			fmt.Sprintf("No route for %s %s", c.Request.Method, c.Request.URL.Path)))
	})

	v1 := router.Group("/api/v1")

	v1.GET("/reference", h.Reference.GetReference)
	v1.GET("/dashboard", h.Dashboard.GetDashboard)

	transactions := v1.Group("/transactions")
	transactions.POST("", h.Transactions.CreateTransaction)
	transactions.GET("", h.Transactions.ListTransactions)
	transactions.DELETE("", h.Transactions.ClearTransactions)
	transactions.POST("/batch", h.Transactions.BatchEditTransactions)
	transactions.POST("/import", h.Imports.ImportTransactions)
	transactions.GET("/:id", h.Transactions.GetTransaction)
	transactions.PUT("/:id", h.Transactions.UpdateTransaction)
	transactions.DELETE("/:id", h.Transactions.DeleteTransaction)

	reports := v1.Group("/reports")
	reports.GET("/summary", h.Reports.GetSummary)
	reports.GET("/current-month", h.Reports.GetCurrentMonth)
	reports.GET("/monthly", h.Reports.GetMonthly)
	reports.GET("/by-category", h.Reports.GetByCategory)
	reports.GET("/by-currency", h.Reports.GetByCurrency)
	reports.GET("/by-payment-method", h.Reports.GetByPaymentMethod)

	assets := v1.Group("/assets")
	assets.POST("", h.Assets.CreateAsset)
	assets.GET("", h.Assets.ListAssets)
	assets.DELETE("", h.Assets.ClearAssets)
	assets.POST("/batch", h.Assets.BatchEditAssets)
	assets.POST("/import", h.Imports.ImportAssets)
	assets.GET("/daily-cost", h.Assets.GetDailyCost)
	assets.GET("/:id", h.Assets.GetAsset)
	assets.PUT("/:id", h.Assets.UpdateAsset)
	assets.DELETE("/:id", h.Assets.DeleteAsset)

	return router
}
