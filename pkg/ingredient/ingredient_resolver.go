package ingredient

import (
	"context"
	"strings"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"recipe-pipeline/entities"
	"recipe-pipeline/pkg/embedding"
	"recipe-pipeline/pkg/normalizer"
)

type (
	// Resolution maps every input name to its canonical ingredient.
	// CreatedNames lists the names that produced a new record, in the
	// order they were encountered.
	Resolution struct {
		Ingredients  map[string]*entities.Ingredient
		CreatedNames []string
	}

	// IngredientResolver matches free-text ingredient names to canonical
	// records through four ordered tiers: case-insensitive exact match,
	// normalized-text match, semantic similarity, and finally creation.
	// Textual tiers run for the whole batch before any embedding call, so
	// only genuinely unmatched names incur the network cost.
	IngredientResolver interface {
		ResolveBatch(ctx context.Context, names []string) (*Resolution, error)
	}

	ingredientResolver struct {
		repo     IngredientRepository
		matcher  SimilarityMatcher
		embedder embedding.Client
		log      *zap.Logger
	}
)

func NewIngredientResolver(
	repo IngredientRepository,
	matcher SimilarityMatcher,
	embedder embedding.Client,
	log *zap.Logger,
) IngredientResolver {
	return &ingredientResolver{
		repo:     repo,
		matcher:  matcher,
		embedder: embedder,
		log:      log,
	}
}

func (r *ingredientResolver) ResolveBatch(ctx context.Context, names []string) (*Resolution, error) {
	res := &Resolution{Ingredients: make(map[string]*entities.Ingredient)}

	distinct := dedupeNames(names)
	if len(distinct) == 0 {
		return res, nil
	}
	r.log.Info("resolving ingredient batch", zap.Int("distinct_names", len(distinct)))

	// Normalized-tier index, built once per batch instead of rescanning
	// the catalog per name. Lowest name/id wins on normalized collisions.
	existing, err := r.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	normalizedIndex := make(map[string]*entities.Ingredient, len(existing))
	for _, ing := range existing {
		key := normalizer.Normalize(ing.Name)
		if _, taken := normalizedIndex[key]; !taken {
			normalizedIndex[key] = ing
		}
	}

	var unresolved []string
	for _, name := range distinct {
		exact, err := r.repo.FindByNameExact(ctx, name)
		if err != nil {
			return nil, err
		}
		if exact != nil {
			r.log.Debug("ingredient resolved by exact match",
				zap.String("name", name), zap.String("id", exact.ID.String()))
			res.Ingredients[name] = exact
			continue
		}

		if match, found := normalizedIndex[normalizer.Normalize(name)]; found {
			r.log.Debug("ingredient resolved by normalized match",
				zap.String("name", name), zap.String("canonical", match.Name))
			res.Ingredients[name] = match
			continue
		}

		unresolved = append(unresolved, name)
	}

	r.log.Info("textual tiers complete",
		zap.Int("resolved", len(res.Ingredients)),
		zap.Int("unresolved", len(unresolved)))
	if len(unresolved) == 0 {
		return res, nil
	}

	// One batch embedding call covers every name the textual tiers missed.
	embeddings := r.embedder.EmbedBatch(ctx, unresolved)

	for i, name := range unresolved {
		// A previous creation in this batch may already cover this name's
		// normalized form; never create twice within one call.
		if match, found := normalizedIndex[normalizer.Normalize(name)]; found {
			res.Ingredients[name] = match
			continue
		}

		result := embeddings[i]
		if result.OK() {
			similar, err := r.matcher.FindSimilar(ctx, result.Vector)
			if err != nil {
				return nil, err
			}
			if similar != nil {
				res.Ingredients[name] = similar
				normalizedIndex[normalizer.Normalize(name)] = similar
				continue
			}
		}

		ing := &entities.Ingredient{Name: name}
		if result.OK() {
			vec := pgvector.NewVector(result.Vector)
			ing.Embedding = &vec
		}
		stored, created, err := r.repo.Create(ctx, ing)
		if err != nil {
			return nil, err
		}
		if created {
			r.log.Info("created canonical ingredient",
				zap.String("name", stored.Name),
				zap.Bool("with_embedding", stored.Embedding != nil))
			res.CreatedNames = append(res.CreatedNames, name)
		} else {
			r.log.Info("ingredient creation lost race, reusing existing row",
				zap.String("name", stored.Name))
		}
		res.Ingredients[name] = stored
		normalizedIndex[normalizer.Normalize(name)] = stored
	}

	return res, nil
}

// Lookup returns the canonical ingredient resolved for name, or nil when
// the name was not part of the batch.
func (r *Resolution) Lookup(name string) *entities.Ingredient {
	return r.Ingredients[strings.TrimSpace(name)]
}

// dedupeNames keeps the first occurrence of each trimmed name. Cased and
// pluralized variants keep their own slot; the tiers collapse them onto
// one canonical record without a second creation.
func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
