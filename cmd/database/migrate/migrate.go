package migration

import (
	"fmt"

	"gorm.io/gorm"

	"recipe-pipeline/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"vector\";")

	models := []interface{}{
		&entities.IngredientCategory{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.Step{},
		&entities.RecipeIngredient{},
		&entities.StepIngredient{},
		&entities.ImportRequest{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migration failed for %T: %w", model, err)
		}
	}

	// Name uniqueness is case-insensitive; GORM tags cannot express a
	// functional index, so it is created directly. The resolver's
	// creation tier relies on this index to turn concurrent-create races
	// into safe re-fetches.
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_ingredients_name_lower ON ingredients (LOWER(name));",
	).Error; err != nil {
		return fmt.Errorf("failed to create ingredient name index: %w", err)
	}

	fmt.Println("Database migration complete")
	return nil
}
