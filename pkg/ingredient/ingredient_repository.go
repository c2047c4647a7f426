package ingredient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"recipe-pipeline/entities"
)

const uniqueViolationCode = "23505"

type (
	IngredientRepository interface {
		// FindByNameExact matches stored names case-insensitively.
		// Returns (nil, nil) when no row matches.
		FindByNameExact(ctx context.Context, name string) (*entities.Ingredient, error)
		// FindAll returns every canonical ingredient ordered by name then
		// id, so normalized-tier index building is deterministic.
		FindAll(ctx context.Context) ([]*entities.Ingredient, error)
		// NearestByEmbedding returns the single closest ingredient that
		// has an embedding, with its cosine distance. Returns (nil, 0,
		// nil) when no ingredient has an embedding yet.
		NearestByEmbedding(ctx context.Context, vector []float32) (*entities.Ingredient, float64, error)
		// Create inserts a new canonical ingredient. A concurrent run may
		// have created the same name first; the unique violation is
		// recovered by re-fetching the existing row, and created reports
		// whether this call actually inserted.
		Create(ctx context.Context, ing *entities.Ingredient) (res *entities.Ingredient, created bool, err error)
		// BackfillEmbedding sets the embedding on a row that has none.
		// Existing vectors are never rewritten.
		BackfillEmbedding(ctx context.Context, id uuid.UUID, vector pgvector.Vector) error
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) FindByNameExact(ctx context.Context, name string) (*entities.Ingredient, error) {
	var ing entities.Ingredient
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("id").
		First(&ing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) FindAll(ctx context.Context) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).
		Order("name, id").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) NearestByEmbedding(ctx context.Context, vector []float32) (*entities.Ingredient, float64, error) {
	var row struct {
		ID       uuid.UUID
		Distance float64
	}
	err := r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Select("id, embedding <=> ? AS distance", pgvector.NewVector(vector)).
		Where("embedding IS NOT NULL").
		Order("distance, id").
		Limit(1).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	var ing entities.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, "id = ?", row.ID).Error; err != nil {
		return nil, 0, err
	}
	return &ing, row.Distance, nil
}

func (r *ingredientRepository) Create(ctx context.Context, ing *entities.Ingredient) (*entities.Ingredient, bool, error) {
	err := r.db.WithContext(ctx).Create(ing).Error
	if err == nil {
		return ing, true, nil
	}

	// Two concurrent runs can both miss all tiers for the same name and
	// fall through to creation; the unique index turns the loser into a
	// safe re-fetch.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		existing, findErr := r.FindByNameExact(ctx, ing.Name)
		if findErr != nil {
			return nil, false, findErr
		}
		if existing != nil {
			return existing, false, nil
		}
	}
	return nil, false, fmt.Errorf("failed to create ingredient %q: %w", ing.Name, err)
}

func (r *ingredientRepository) BackfillEmbedding(ctx context.Context, id uuid.UUID, vector pgvector.Vector) error {
	return r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Where("id = ? AND embedding IS NULL", id).
		Update("embedding", vector).Error
}
