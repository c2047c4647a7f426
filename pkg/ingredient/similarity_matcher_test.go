package ingredient

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"recipe-pipeline/entities"
)

func TestFindSimilarThresholdStrictness(t *testing.T) {
	candidate := storedIngredient("Tomate")
	query := make([]float32, entities.EmbeddingDimension)

	tests := []struct {
		name      string
		distance  float64
		wantMatch bool
	}{
		{"well under threshold", 0.1, true},
		{"just under threshold", 0.2999, true},
		{"exactly at threshold", 0.3, false},
		{"over threshold", 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{nearest: candidate, nearestDistance: tt.distance}
			matcher := NewSimilarityMatcher(repo, 0.3, zap.NewNop())

			got, err := matcher.FindSimilar(context.Background(), query)
			if err != nil {
				t.Fatalf("FindSimilar: %v", err)
			}
			if tt.wantMatch && (got == nil || got.ID != candidate.ID) {
				t.Errorf("FindSimilar at distance %v = %v, want %v", tt.distance, got, candidate.ID)
			}
			if !tt.wantMatch && got != nil {
				t.Errorf("FindSimilar at distance %v = %v, want nil", tt.distance, got)
			}
		})
	}
}

func TestFindSimilarNoCandidates(t *testing.T) {
	repo := &fakeRepository{}
	matcher := NewSimilarityMatcher(repo, 0.3, zap.NewNop())

	got, err := matcher.FindSimilar(context.Background(), make([]float32, entities.EmbeddingDimension))
	if err != nil {
		t.Fatalf("FindSimilar: %v", err)
	}
	if got != nil {
		t.Errorf("FindSimilar with empty catalog = %v, want nil", got)
	}
}

func TestFindSimilarAbsorbsRepositoryError(t *testing.T) {
	repo := &fakeRepository{nearestErr: errors.New("connection reset")}
	matcher := NewSimilarityMatcher(repo, 0.3, zap.NewNop())

	got, err := matcher.FindSimilar(context.Background(), make([]float32, entities.EmbeddingDimension))
	if err != nil {
		t.Fatalf("FindSimilar should absorb lookup failures, got error: %v", err)
	}
	if got != nil {
		t.Errorf("FindSimilar after lookup failure = %v, want nil", got)
	}
}
