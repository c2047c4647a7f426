package ingredient

import (
	"context"

	"go.uber.org/zap"

	"recipe-pipeline/entities"
)

type (
	// SimilarityMatcher resolves a vector to the closest canonical
	// ingredient, accepting it only when the cosine distance is strictly
	// below the configured threshold.
	SimilarityMatcher interface {
		FindSimilar(ctx context.Context, vector []float32) (*entities.Ingredient, error)
	}

	similarityMatcher struct {
		repo      IngredientRepository
		threshold float64
		log       *zap.Logger
	}
)

func NewSimilarityMatcher(repo IngredientRepository, threshold float64, log *zap.Logger) SimilarityMatcher {
	return &similarityMatcher{
		repo:      repo,
		threshold: threshold,
		log:       log,
	}
}

func (m *similarityMatcher) FindSimilar(ctx context.Context, vector []float32) (*entities.Ingredient, error) {
	candidate, distance, err := m.repo.NearestByEmbedding(ctx, vector)
	if err != nil {
		// Vector search being unavailable degrades to "no match"; the
		// resolver falls through to creation.
		m.log.Error("similarity search failed", zap.Error(err))
		return nil, nil
	}
	if candidate == nil {
		return nil, nil
	}

	// Strict bound: a candidate at exactly the threshold is rejected.
	if distance >= m.threshold {
		m.log.Debug("nearest ingredient rejected by threshold",
			zap.String("candidate", candidate.Name),
			zap.Float64("distance", distance),
			zap.Float64("threshold", m.threshold))
		return nil, nil
	}

	m.log.Info("ingredient matched by similarity",
		zap.String("candidate", candidate.Name),
		zap.Float64("distance", distance),
		zap.Float64("similarity", 1.0-distance/2.0))
	return candidate, nil
}
