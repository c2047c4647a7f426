package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessGetIngredients  = "success get ingredients"

	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedGetIngredients  = "failed to get ingredients"

	ErrRecipeNotFound = errors.New("recipe not found")
)

type (
	RecipeDetail struct {
		ID           string             `json:"id"`
		Title        string             `json:"title"`
		Description  string             `json:"description"`
		StepsSummary string             `json:"steps_summary"`
		MealType     string             `json:"meal_type"`
		Difficulty   string             `json:"difficulty"`
		PrepTime     int                `json:"prep_time"`
		CookTime     int                `json:"cook_time"`
		Servings     int                `json:"servings"`
		SourceType   string             `json:"source_type"`
		CreatedAt    time.Time          `json:"created_at"`
		Ingredients  []RecipeIngredient `json:"ingredients"`
		Steps        []RecipeStep       `json:"steps"`
	}

	RecipeIngredient struct {
		IngredientID string  `json:"ingredient_id"`
		Name         string  `json:"name"`
		Quantity     float64 `json:"quantity"`
		Unit         string  `json:"unit"`
	}

	RecipeStep struct {
		Order         int                `json:"order"`
		Title         string             `json:"title,omitempty"`
		Instruction   string             `json:"instruction"`
		Tip           string             `json:"tip,omitempty"`
		HasTimer      bool               `json:"has_timer"`
		TimerDuration *int               `json:"timer_duration,omitempty"`
		Ingredients   []RecipeIngredient `json:"ingredients,omitempty"`
	}

	IngredientSummary struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		HasEmbedding bool      `json:"has_embedding"`
		CreatedAt    time.Time `json:"created_at"`
	}
)
