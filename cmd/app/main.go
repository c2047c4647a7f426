package main

import (
	"log"

	"go.uber.org/zap"

	"recipe-pipeline/cmd/config"
	migration "recipe-pipeline/cmd/database/migrate"
	"recipe-pipeline/internal/utils"
)

func main() {
	cfg, err := utils.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	if err := migration.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	app, err := config.NewApp(db, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build app", zap.Error(err))
	}

	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
