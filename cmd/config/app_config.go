package config

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipe-pipeline/internal/api/handlers"
	"recipe-pipeline/internal/api/routes"
	"recipe-pipeline/internal/utils"
	"recipe-pipeline/pkg/embedding"
	"recipe-pipeline/pkg/importer"
	"recipe-pipeline/pkg/ingredient"
	"recipe-pipeline/pkg/recipe"
)

func NewApp(db *gorm.DB, cfg *utils.Config, log *zap.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	validator := utils.Validate

	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// Embedding client, with an optional Redis cache.
	var cache embedding.Cache
	if cfg.RedisAddr != "" {
		cache = embedding.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, log)
	}
	embedder := embedding.NewClient(embedding.Config{
		BaseURL:      cfg.EmbeddingAPIURL,
		APISecret:    cfg.EmbeddingAPISecret,
		Timeout:      cfg.EmbeddingTimeout,
		BatchTimeout: cfg.EmbeddingBatchTimeout,
	}, cache, log)

	// Repository
	ingredientRepository := ingredient.NewIngredientRepository(db)
	importRepository := importer.NewImportRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	matcher := ingredient.NewSimilarityMatcher(ingredientRepository, cfg.SimilarityDistanceThreshold, log)
	resolver := ingredient.NewIngredientResolver(ingredientRepository, matcher, embedder, log)
	ingredientService := ingredient.NewIngredientService(ingredientRepository, embedder, log)
	importService := importer.NewImportService(importRepository, resolver, embedder, validator, log)
	recipeService := recipe.NewRecipeService(recipeRepository)

	// Handler
	importHandler := handlers.NewImportHandler(importService, recipeService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)

	routesConfig := routes.Config{
		App:               app,
		ImportHandler:     importHandler,
		RecipeHandler:     recipeHandler,
		IngredientHandler: ingredientHandler,
	}
	routesConfig.Setup()

	return app, nil
}
