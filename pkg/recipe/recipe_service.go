package recipe

import (
	"context"

	"recipe-pipeline/domain"
	"recipe-pipeline/entities"
)

type (
	RecipeService interface {
		// GetRecipeDetail serializes a stored recipe with its full
		// step and ingredient-link graph.
		GetRecipeDetail(ctx context.Context, recipeID string) (domain.RecipeDetail, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
	}
)

func NewRecipeService(recipeRepository RecipeRepository) RecipeService {
	return &recipeService{recipeRepository: recipeRepository}
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetRecipeWithGraph(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	detail := domain.RecipeDetail{
		ID:           recipe.ID.String(),
		Title:        recipe.Title,
		Description:  recipe.Description,
		StepsSummary: recipe.StepsSummary,
		MealType:     recipe.MealType,
		Difficulty:   recipe.Difficulty,
		PrepTime:     recipe.PrepTime,
		CookTime:     recipe.CookTime,
		Servings:     recipe.Servings,
		SourceType:   recipe.SourceType,
		CreatedAt:    recipe.CreatedAt,
		Ingredients:  make([]domain.RecipeIngredient, 0, len(recipe.RecipeIngredients)),
		Steps:        make([]domain.RecipeStep, 0, len(recipe.Steps)),
	}

	for _, link := range recipe.RecipeIngredients {
		detail.Ingredients = append(detail.Ingredients, toIngredientLink(link.IngredientID.String(), link.Ingredient, link.Quantity, link.Unit))
	}

	for _, step := range recipe.Steps {
		stepDetail := domain.RecipeStep{
			Order:         step.Order,
			Title:         step.Title,
			Instruction:   step.Instruction,
			Tip:           step.Tip,
			HasTimer:      step.HasTimer,
			TimerDuration: step.TimerDuration,
		}
		for _, link := range step.StepIngredients {
			stepDetail.Ingredients = append(stepDetail.Ingredients, toIngredientLink(link.IngredientID.String(), link.Ingredient, link.Quantity, link.Unit))
		}
		detail.Steps = append(detail.Steps, stepDetail)
	}

	return detail, nil
}

func toIngredientLink(id string, ing *entities.Ingredient, quantity float64, unit string) domain.RecipeIngredient {
	link := domain.RecipeIngredient{
		IngredientID: id,
		Quantity:     quantity,
		Unit:         unit,
	}
	if ing != nil {
		link.Name = ing.Name
	}
	return link
}
