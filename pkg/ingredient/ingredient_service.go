package ingredient

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"recipe-pipeline/domain"
	"recipe-pipeline/entities"
	"recipe-pipeline/pkg/embedding"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context) ([]domain.IngredientSummary, error)
		// BackfillEmbeddings embeds every ingredient created without a
		// vector (typically while the embedding service was degraded).
		// Existing vectors are left untouched. Returns how many rows
		// were backfilled.
		BackfillEmbeddings(ctx context.Context) (int, error)
	}

	ingredientService struct {
		repo     IngredientRepository
		embedder embedding.Client
		log      *zap.Logger
	}
)

func NewIngredientService(repo IngredientRepository, embedder embedding.Client, log *zap.Logger) IngredientService {
	return &ingredientService{
		repo:     repo,
		embedder: embedder,
		log:      log,
	}
}

func (s *ingredientService) GetIngredients(ctx context.Context) ([]domain.IngredientSummary, error) {
	ingredients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.IngredientSummary, 0, len(ingredients))
	for _, ing := range ingredients {
		summaries = append(summaries, domain.IngredientSummary{
			ID:           ing.ID.String(),
			Name:         ing.Name,
			HasEmbedding: ing.Embedding != nil,
			CreatedAt:    ing.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *ingredientService) BackfillEmbeddings(ctx context.Context) (int, error) {
	ingredients, err := s.repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	var missing []*entities.Ingredient
	for _, ing := range ingredients {
		if ing.Embedding == nil {
			missing = append(missing, ing)
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	names := make([]string, len(missing))
	for i, ing := range missing {
		names[i] = ing.Name
	}

	results := s.embedder.EmbedBatch(ctx, names)

	backfilled := 0
	for i, ing := range missing {
		if !results[i].OK() {
			continue
		}
		if err := s.repo.BackfillEmbedding(ctx, ing.ID, pgvector.NewVector(results[i].Vector)); err != nil {
			return backfilled, err
		}
		backfilled++
	}

	s.log.Info("ingredient embeddings backfilled",
		zap.Int("missing", len(missing)),
		zap.Int("backfilled", backfilled))
	return backfilled, nil
}
