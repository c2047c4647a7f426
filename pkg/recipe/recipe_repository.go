package recipe

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipe-pipeline/domain"
	"recipe-pipeline/entities"
)

type (
	RecipeRepository interface {
		// GetRecipeWithGraph loads a recipe with its ingredient links,
		// ordered steps and step ingredient links.
		GetRecipeWithGraph(ctx context.Context, recipeID string) (*entities.Recipe, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetRecipeWithGraph(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := r.db.WithContext(ctx).
		Preload("RecipeIngredients.Ingredient").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("steps.step_order")
		}).
		Preload("Steps.StepIngredients.Ingredient").
		Where("id = ?", recipeID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}
