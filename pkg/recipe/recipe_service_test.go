package recipe

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"recipe-pipeline/domain"
	"recipe-pipeline/entities"
)

type fakeRecipeRepository struct {
	recipe *entities.Recipe
	err    error
}

func (f *fakeRecipeRepository) GetRecipeWithGraph(_ context.Context, _ string) (*entities.Recipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recipe, nil
}

func TestGetRecipeDetailMapsGraph(t *testing.T) {
	tomato := &entities.Ingredient{ID: uuid.New(), Name: "Tomate"}
	stored := &entities.Recipe{
		ID:           uuid.New(),
		Title:        "Soupe de tomates",
		StepsSummary: "Cuire puis mixer.",
		MealType:     entities.MealTypeDinner,
		Difficulty:   entities.DifficultyEasy,
		PrepTime:     10,
		CookTime:     20,
		Servings:     4,
		SourceType:   entities.SourceTypeImported,
		RecipeIngredients: []*entities.RecipeIngredient{
			{IngredientID: tomato.ID, Ingredient: tomato, Quantity: 800, Unit: "g"},
		},
		Steps: []*entities.Step{
			{
				Order:       1,
				Instruction: "Tout mixer.",
				StepIngredients: []*entities.StepIngredient{
					{IngredientID: tomato.ID, Ingredient: tomato, Quantity: 800, Unit: "g"},
				},
			},
		},
	}
	svc := NewRecipeService(&fakeRecipeRepository{recipe: stored})

	detail, err := svc.GetRecipeDetail(context.Background(), stored.ID.String())
	if err != nil {
		t.Fatalf("GetRecipeDetail: %v", err)
	}
	if detail.ID != stored.ID.String() || detail.Title != stored.Title {
		t.Errorf("detail header = %q/%q, want %q/%q", detail.ID, detail.Title, stored.ID.String(), stored.Title)
	}
	if len(detail.Ingredients) != 1 || detail.Ingredients[0].Name != "Tomate" {
		t.Errorf("Ingredients = %v, want one Tomate link", detail.Ingredients)
	}
	if detail.Ingredients[0].Quantity != 800 || detail.Ingredients[0].Unit != "g" {
		t.Errorf("link = %v, want 800 g", detail.Ingredients[0])
	}
	if len(detail.Steps) != 1 || len(detail.Steps[0].Ingredients) != 1 {
		t.Fatalf("Steps = %v, want one step with one link", detail.Steps)
	}
	if detail.Steps[0].Ingredients[0].IngredientID != tomato.ID.String() {
		t.Errorf("step link id = %q, want %q", detail.Steps[0].Ingredients[0].IngredientID, tomato.ID.String())
	}
}

func TestGetRecipeDetailNotFound(t *testing.T) {
	svc := NewRecipeService(&fakeRecipeRepository{err: domain.ErrRecipeNotFound})

	_, err := svc.GetRecipeDetail(context.Background(), uuid.New().String())
	if !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("err = %v, want ErrRecipeNotFound", err)
	}
}
