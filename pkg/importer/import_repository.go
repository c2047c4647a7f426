package importer

import (
	"context"

	"gorm.io/gorm"

	"recipe-pipeline/entities"
)

type (
	// StepWithLinks pairs a step with its ingredient links; link StepIDs
	// are filled in after the step row is inserted.
	StepWithLinks struct {
		Step  *entities.Step
		Links []*entities.StepIngredient
	}

	// RecipeGraph is the complete write set of one assembly: the recipe,
	// its recipe-level ingredient links and its steps with their links.
	RecipeGraph struct {
		Recipe          *entities.Recipe
		IngredientLinks []*entities.RecipeIngredient
		Steps           []*StepWithLinks
	}

	ImportRepository interface {
		CreateImportRequest(ctx context.Context, req *entities.ImportRequest) error
		UpdateImportRequest(ctx context.Context, req *entities.ImportRequest) error
		// CreateRecipeGraph commits the whole graph in one transaction;
		// any failure rolls back every row.
		CreateRecipeGraph(ctx context.Context, graph *RecipeGraph) error
	}

	importRepository struct {
		db *gorm.DB
	}
)

func NewImportRepository(db *gorm.DB) ImportRepository {
	return &importRepository{db: db}
}

func (r *importRepository) CreateImportRequest(ctx context.Context, req *entities.ImportRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *importRepository) UpdateImportRequest(ctx context.Context, req *entities.ImportRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *importRepository) CreateRecipeGraph(ctx context.Context, graph *RecipeGraph) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(graph.Recipe).Error; err != nil {
			return err
		}

		for _, link := range graph.IngredientLinks {
			link.RecipeID = graph.Recipe.ID
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}

		for _, step := range graph.Steps {
			step.Step.RecipeID = graph.Recipe.ID
			if err := tx.Create(step.Step).Error; err != nil {
				return err
			}
			for _, link := range step.Links {
				link.StepID = step.Step.ID
				if err := tx.Create(link).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}
