package ingredient

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"recipe-pipeline/entities"
	"recipe-pipeline/pkg/embedding"
)

type fakeRepository struct {
	ingredients     []*entities.Ingredient
	nearest         *entities.Ingredient
	nearestDistance float64
	nearestErr      error
	createCalls     int
	conflictWith    *entities.Ingredient
}

func (f *fakeRepository) FindByNameExact(_ context.Context, name string) (*entities.Ingredient, error) {
	for _, ing := range f.ingredients {
		if strings.EqualFold(ing.Name, name) {
			return ing, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) FindAll(_ context.Context) ([]*entities.Ingredient, error) {
	return append([]*entities.Ingredient(nil), f.ingredients...), nil
}

func (f *fakeRepository) NearestByEmbedding(_ context.Context, _ []float32) (*entities.Ingredient, float64, error) {
	if f.nearestErr != nil {
		return nil, 0, f.nearestErr
	}
	return f.nearest, f.nearestDistance, nil
}

func (f *fakeRepository) Create(_ context.Context, ing *entities.Ingredient) (*entities.Ingredient, bool, error) {
	if f.conflictWith != nil {
		return f.conflictWith, false, nil
	}
	f.createCalls++
	ing.ID = uuid.New()
	f.ingredients = append(f.ingredients, ing)
	return ing, true, nil
}

func (f *fakeRepository) BackfillEmbedding(_ context.Context, _ uuid.UUID, _ pgvector.Vector) error {
	return nil
}

type fakeEmbedder struct {
	results    map[string]embedding.Result
	batchCalls int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) embedding.Result {
	if result, found := f.results[text]; found {
		return result
	}
	return embedding.Result{Status: embedding.StatusUnavailable}
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) []embedding.Result {
	f.batchCalls++
	results := make([]embedding.Result, len(texts))
	for i, text := range texts {
		results[i] = f.Embed(ctx, text)
	}
	return results
}

func storedIngredient(name string) *entities.Ingredient {
	return &entities.Ingredient{ID: uuid.New(), Name: name}
}

func newTestResolver(repo *fakeRepository, embedder *fakeEmbedder) IngredientResolver {
	log := zap.NewNop()
	matcher := NewSimilarityMatcher(repo, 0.3, log)
	return NewIngredientResolver(repo, matcher, embedder, log)
}

func TestResolveExactMatchCaseInsensitive(t *testing.T) {
	existing := storedIngredient("Tomate")
	repo := &fakeRepository{ingredients: []*entities.Ingredient{existing}}
	embedder := &fakeEmbedder{}
	resolver := newTestResolver(repo, embedder)

	res, err := resolver.ResolveBatch(context.Background(), []string{"TOMATE"})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	if got := res.Lookup("TOMATE"); got == nil || got.ID != existing.ID {
		t.Errorf("resolved = %v, want existing %v", got, existing.ID)
	}
	if repo.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0", repo.createCalls)
	}
	if embedder.batchCalls != 0 {
		t.Errorf("batchCalls = %d, want 0 (textual tiers must run first)", embedder.batchCalls)
	}
}

func TestResolveNormalizedMatch(t *testing.T) {
	existing := storedIngredient("Oignon")
	repo := &fakeRepository{ingredients: []*entities.Ingredient{existing}}
	embedder := &fakeEmbedder{}
	resolver := newTestResolver(repo, embedder)

	// "Oignons" and "oignon" both normalize to the stored record's key.
	for _, variant := range []string{"Oignons", "oignon"} {
		res, err := resolver.ResolveBatch(context.Background(), []string{variant})
		if err != nil {
			t.Fatalf("ResolveBatch(%q): %v", variant, err)
		}
		if got := res.Lookup(variant); got == nil || got.ID != existing.ID {
			t.Errorf("Lookup(%q) = %v, want %v", variant, got, existing.ID)
		}
	}
	if repo.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0", repo.createCalls)
	}
}

func TestResolveSameNameOnceInBatch(t *testing.T) {
	repo := &fakeRepository{}
	embedder := &fakeEmbedder{}
	resolver := newTestResolver(repo, embedder)

	res, err := resolver.ResolveBatch(context.Background(), []string{"Poireau", "Poireau", " Poireau "})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	if repo.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", repo.createCalls)
	}
	if len(res.CreatedNames) != 1 || res.CreatedNames[0] != "Poireau" {
		t.Errorf("CreatedNames = %v, want [Poireau]", res.CreatedNames)
	}
	first := res.Lookup("Poireau")
	second := res.Lookup(" Poireau ")
	if first == nil || second == nil || first.ID != second.ID {
		t.Errorf("duplicate mentions resolved to different records: %v vs %v", first, second)
	}
}

func TestResolveVariantsCollapseToOneCreation(t *testing.T) {
	repo := &fakeRepository{}
	embedder := &fakeEmbedder{}
	resolver := newTestResolver(repo, embedder)

	res, err := resolver.ResolveBatch(context.Background(), []string{"Oignons", "oignon"})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	if repo.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1 (second variant must reuse the first creation)", repo.createCalls)
	}
	first := res.Lookup("Oignons")
	second := res.Lookup("oignon")
	if first == nil || second == nil || first.ID != second.ID {
		t.Errorf("variants resolved to different records: %v vs %v", first, second)
	}
}

func TestResolveDegradedEmbeddingStillCreates(t *testing.T) {
	repo := &fakeRepository{}
	embedder := &fakeEmbedder{} // every embed is unavailable
	resolver := newTestResolver(repo, embedder)

	res, err := resolver.ResolveBatch(context.Background(), []string{"Safran"})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	created := res.Lookup("Safran")
	if created == nil {
		t.Fatal("unknown name was not resolved")
	}
	if created.Embedding != nil {
		t.Error("ingredient created during degradation should have no embedding")
	}
	if len(res.CreatedNames) != 1 {
		t.Errorf("CreatedNames = %v, want one entry", res.CreatedNames)
	}
}

func TestResolveSemanticMatch(t *testing.T) {
	similar := storedIngredient("Tomate")
	vec := pgvector.NewVector(make([]float32, entities.EmbeddingDimension))
	similar.Embedding = &vec
	repo := &fakeRepository{
		ingredients:     []*entities.Ingredient{similar},
		nearest:         similar,
		nearestDistance: 0.25,
	}
	embedder := &fakeEmbedder{results: map[string]embedding.Result{
		"Tomate cerise": {Status: embedding.StatusOK, Vector: make([]float32, entities.EmbeddingDimension)},
	}}
	resolver := newTestResolver(repo, embedder)

	res, err := resolver.ResolveBatch(context.Background(), []string{"Tomate cerise"})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	if got := res.Lookup("Tomate cerise"); got == nil || got.ID != similar.ID {
		t.Errorf("resolved = %v, want semantic match %v", got, similar.ID)
	}
	if repo.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0", repo.createCalls)
	}
	if embedder.batchCalls != 1 {
		t.Errorf("batchCalls = %d, want exactly 1", embedder.batchCalls)
	}
}

func TestResolvePluralQuirkUsesSemanticTier(t *testing.T) {
	// "tomates" strips to "tomat" while "Tomate" strips to "tomate", so
	// the textual tiers miss; the semantic tier still collapses the pair.
	similar := storedIngredient("Tomate")
	vec := pgvector.NewVector(make([]float32, entities.EmbeddingDimension))
	similar.Embedding = &vec
	repo := &fakeRepository{
		ingredients:     []*entities.Ingredient{similar},
		nearest:         similar,
		nearestDistance: 0.05,
	}
	embedder := &fakeEmbedder{results: map[string]embedding.Result{
		"tomates": {Status: embedding.StatusOK, Vector: make([]float32, entities.EmbeddingDimension)},
	}}
	resolver := newTestResolver(repo, embedder)

	res, err := resolver.ResolveBatch(context.Background(), []string{"tomates"})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	if got := res.Lookup("tomates"); got == nil || got.ID != similar.ID {
		t.Errorf("resolved = %v, want %v", got, similar.ID)
	}
	if repo.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0", repo.createCalls)
	}
}

func TestResolveCreationStoresEmbedding(t *testing.T) {
	repo := &fakeRepository{nearestDistance: 1.5, nearest: nil}
	embedder := &fakeEmbedder{results: map[string]embedding.Result{
		"Yuzu": {Status: embedding.StatusOK, Vector: make([]float32, entities.EmbeddingDimension)},
	}}
	resolver := newTestResolver(repo, embedder)

	res, err := resolver.ResolveBatch(context.Background(), []string{"Yuzu"})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	created := res.Lookup("Yuzu")
	if created == nil || created.Embedding == nil {
		t.Error("created ingredient should store the obtained embedding")
	}
}

func TestResolveCreateConflictReusesExisting(t *testing.T) {
	winner := storedIngredient("Basilic")
	repo := &fakeRepository{conflictWith: winner}
	embedder := &fakeEmbedder{}
	resolver := newTestResolver(repo, embedder)

	res, err := resolver.ResolveBatch(context.Background(), []string{"Basilic"})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	if got := res.Lookup("Basilic"); got == nil || got.ID != winner.ID {
		t.Errorf("resolved = %v, want race winner %v", got, winner.ID)
	}
	if len(res.CreatedNames) != 0 {
		t.Errorf("CreatedNames = %v, want empty after losing the creation race", res.CreatedNames)
	}
}

func TestResolveEmptyBatch(t *testing.T) {
	repo := &fakeRepository{}
	embedder := &fakeEmbedder{}
	resolver := newTestResolver(repo, embedder)

	res, err := resolver.ResolveBatch(context.Background(), []string{"", "   "})
	if err != nil {
		t.Fatalf("ResolveBatch: %v", err)
	}
	if len(res.Ingredients) != 0 {
		t.Errorf("Ingredients = %v, want empty", res.Ingredients)
	}
	if embedder.batchCalls != 0 {
		t.Errorf("batchCalls = %d, want 0", embedder.batchCalls)
	}
}
