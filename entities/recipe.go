package entities

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	SourceTypeUserCreated = "user_created"
	SourceTypeImported    = "imported"
	SourceTypeSystem      = "system"
)

type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CreatedBy    uuid.UUID        `json:"created_by"`
	Title        string           `gorm:"size:200;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	StepsSummary string           `gorm:"type:text" json:"steps_summary"`
	MealType     string           `gorm:"size:20;default:lunch" json:"meal_type"`
	Difficulty   string           `gorm:"size:20;default:medium" json:"difficulty"`
	PrepTime     int              `json:"prep_time"` // minutes
	CookTime     int              `json:"cook_time"` // minutes
	Servings     int              `gorm:"default:4" json:"servings"`
	SourceType   string           `gorm:"size:20;default:user_created" json:"source_type"`
	Embedding    *pgvector.Vector `gorm:"type:vector(384)" json:"-"`

	RecipeIngredients []*RecipeIngredient `gorm:"foreignKey:RecipeID" json:"recipe_ingredients,omitempty"`
	Steps             []*Step             `gorm:"foreignKey:RecipeID" json:"steps,omitempty"`
	Timestamp
}

// Step order is 1-indexed and unique within a recipe.
type Step struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID      uuid.UUID `gorm:"uniqueIndex:idx_steps_recipe_order" json:"recipe_id"`
	Order         int       `gorm:"column:step_order;uniqueIndex:idx_steps_recipe_order" json:"order"`
	Title         string    `gorm:"size:200" json:"title,omitempty"`
	Instruction   string    `gorm:"type:text;not null" json:"instruction"`
	Tip           string    `gorm:"type:text" json:"tip,omitempty"`
	HasTimer      bool      `json:"has_timer"`
	TimerDuration *int      `json:"timer_duration,omitempty"` // minutes

	StepIngredients []*StepIngredient `gorm:"foreignKey:StepID" json:"step_ingredients,omitempty"`
	Timestamp
}

type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID     uuid.UUID `gorm:"uniqueIndex:idx_recipe_ingredients_pair" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"uniqueIndex:idx_recipe_ingredients_pair" json:"ingredient_id"`
	Quantity     float64   `gorm:"type:numeric(10,2)" json:"quantity"`
	Unit         string    `gorm:"size:20;default:g" json:"unit"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

type StepIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	StepID       uuid.UUID `gorm:"uniqueIndex:idx_step_ingredients_pair" json:"step_id"`
	IngredientID uuid.UUID `gorm:"uniqueIndex:idx_step_ingredients_pair" json:"ingredient_id"`
	Quantity     float64   `gorm:"type:numeric(10,2)" json:"quantity"`
	Unit         string    `gorm:"size:20;default:g" json:"unit"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}
