package domain

import (
	"errors"
)

var (
	MessageSuccessImportRecipe = "recipe imported successfully"
	MessageFailedImportRecipe  = "failed to import recipe"

	ErrInvalidCandidateRecipe = errors.New("candidate recipe is missing required fields")
	ErrImportRequestNotFound  = errors.New("import request not found")
)

type (
	// CandidateRecipe is the structured recipe produced by the external
	// extraction/formalization step. It is validated before any resolution
	// or persistence side effect occurs.
	CandidateRecipe struct {
		Title             string                `json:"title" validate:"required,max=200"`
		Description       string                `json:"description,omitempty"`
		StepsSummary      string                `json:"steps_summary" validate:"required"`
		MealType          string                `json:"meal_type" validate:"omitempty,oneof=breakfast lunch dinner snack"`
		Difficulty        string                `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
		PrepTime          int                   `json:"prep_time" validate:"gte=0"`
		CookTime          int                   `json:"cook_time" validate:"gte=0"`
		Servings          int                   `json:"servings" validate:"gte=1"`
		Categories        []string              `json:"categories,omitempty"`
		RecipeIngredients []CandidateIngredient `json:"recipe_ingredients" validate:"required,min=1,dive"`
		Steps             []CandidateStep       `json:"steps" validate:"required,min=1,dive"`
	}

	CandidateIngredient struct {
		Name     string  `json:"name" validate:"required,max=200"`
		Quantity float64 `json:"quantity" validate:"gte=0"`
		Unit     string  `json:"unit" validate:"required,oneof=g kg ml l tsp tbsp cup piece pinch clove"`
	}

	CandidateStep struct {
		Order           int                   `json:"order" validate:"required,gte=1"`
		Title           string                `json:"title,omitempty" validate:"max=200"`
		Instruction     string                `json:"instruction" validate:"required"`
		Tip             string                `json:"tip,omitempty"`
		HasTimer        bool                  `json:"has_timer"`
		TimerDuration   *int                  `json:"timer_duration,omitempty" validate:"omitempty,gte=1"`
		StepIngredients []CandidateIngredient `json:"step_ingredients" validate:"dive"`
	}

	ImportRecipeRequest struct {
		UserID     string          `json:"user_id" validate:"required,uuid"`
		SourceType string          `json:"source_type" validate:"omitempty,oneof=user_created imported system"`
		Recipe     CandidateRecipe `json:"recipe" validate:"required"`
	}

	// QuantityReport is one advisory entry from the consistency verifier:
	// the recipe-level total disagrees with the summed step quantities by
	// more than the tolerance.
	QuantityReport struct {
		RecipeTotal    float64 `json:"recipe_total"`
		StepsTotal     float64 `json:"steps_total"`
		Difference     float64 `json:"difference"`
		PercentageDiff float64 `json:"percentage_diff"`
	}

	ImportRecipeResponse struct {
		ImportRequestID string                    `json:"import_request_id"`
		RecipeID        string                    `json:"recipe_id"`
		CreatedNames    []string                  `json:"created_ingredients,omitempty"`
		Warnings        map[string]QuantityReport `json:"quantity_warnings,omitempty"`
	}
)
