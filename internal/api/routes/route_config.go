package routes

import (
	"github.com/gofiber/fiber/v2"

	"recipe-pipeline/internal/api/handlers"
)

type Config struct {
	App               *fiber.App
	ImportHandler     handlers.ImportHandler
	RecipeHandler     handlers.RecipeHandler
	IngredientHandler handlers.IngredientHandler
}

func (c *Config) Setup() {
	c.Imports()
	c.Recipes()
	c.Ingredients()
	c.GuestRoute()
}

func (c *Config) Imports() {
	imports := c.App.Group("/api/v1/imports")
	{
		imports.Post("/", c.ImportHandler.ImportRecipe)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")
	{
		recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients")
	{
		ingredients.Get("/", c.IngredientHandler.GetIngredients)
		ingredients.Post("/backfill_embeddings", c.IngredientHandler.BackfillEmbeddings)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
