package main

import (
	"fmt"
	"os"

	"homeledger/internal/config"
	"homeledger/internal/logger"
	"homeledger/internal/server"
	"homeledger/internal/validator"
)

// @title           Homeledger API
// @version         1.0
// @description     Homeledger keeps a household ledger of income and expenses, shared-cost ratios and an asset register with daily amortized cost.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	repo, closeRepo, err := server.OpenRepository(appConfig, "migrations")
	if err != nil {
		return err
	}
	defer func() {
		if err := closeRepo(); err != nil {
			log.Warnf("failed to close storage: %v", err)
		}
	}()

	validator.Register()
	app := server.New(appConfig, repo, nil)

	log.Infof("Starting Homeledger server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return app.Router.Run(":" + appConfig.Port)
}
