package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"recipe-pipeline/domain"
	"recipe-pipeline/entities"
	"recipe-pipeline/pkg/consistency"
	"recipe-pipeline/pkg/embedding"
	"recipe-pipeline/pkg/ingredient"
)

type (
	ImportService interface {
		// ImportRecipe runs the full pipeline for one candidate recipe:
		// validation, advisory quantity verification, batched ingredient
		// resolution, and the atomic graph commit, tracked through an
		// ImportRequest row.
		ImportRecipe(ctx context.Context, req domain.ImportRecipeRequest) (domain.ImportRecipeResponse, error)
		// Assemble resolves and commits one candidate recipe without
		// request tracking. All embedding calls complete before the
		// transaction opens.
		Assemble(ctx context.Context, candidate *domain.CandidateRecipe, userID uuid.UUID, sourceType string) (*entities.Recipe, *ingredient.Resolution, error)
	}

	importService struct {
		repo      ImportRepository
		resolver  ingredient.IngredientResolver
		embedder  embedding.Client
		validator *validator.Validate
		log       *zap.Logger
	}
)

func NewImportService(
	repo ImportRepository,
	resolver ingredient.IngredientResolver,
	embedder embedding.Client,
	validate *validator.Validate,
	log *zap.Logger,
) ImportService {
	return &importService{
		repo:      repo,
		resolver:  resolver,
		embedder:  embedder,
		validator: validate,
		log:       log,
	}
}

func (s *importService) ImportRecipe(ctx context.Context, req domain.ImportRecipeRequest) (domain.ImportRecipeResponse, error) {
	// Fail fast on malformed input, before any side effect.
	if err := s.validator.Struct(req); err != nil {
		return domain.ImportRecipeResponse{}, fmt.Errorf("%w: %v", domain.ErrInvalidCandidateRecipe, err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return domain.ImportRecipeResponse{}, domain.ErrParseUUID
	}
	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = entities.SourceTypeImported
	}

	payload, _ := json.Marshal(req.Recipe)
	importRequest := &entities.ImportRequest{
		UserID:     userID,
		Status:     entities.ImportStatusProcessing,
		SourceType: sourceType,
		Payload:    string(payload),
	}
	if err := s.repo.CreateImportRequest(ctx, importRequest); err != nil {
		return domain.ImportRecipeResponse{}, err
	}

	warnings := consistency.Verify(&req.Recipe)
	for name, report := range warnings {
		s.log.Warn("quantity mismatch between recipe and steps",
			zap.String("ingredient", name),
			zap.Float64("recipe_total", report.RecipeTotal),
			zap.Float64("steps_total", report.StepsTotal),
			zap.Float64("percentage_diff", report.PercentageDiff))
	}

	recipe, resolution, err := s.Assemble(ctx, &req.Recipe, userID, sourceType)
	if err != nil {
		importRequest.Status = entities.ImportStatusError
		importRequest.ErrorMessage = err.Error()
		if updateErr := s.repo.UpdateImportRequest(ctx, importRequest); updateErr != nil {
			s.log.Error("failed to record import failure", zap.Error(updateErr))
		}
		return domain.ImportRecipeResponse{}, err
	}

	importRequest.Status = entities.ImportStatusSuccess
	importRequest.RecipeID = &recipe.ID
	if err := s.repo.UpdateImportRequest(ctx, importRequest); err != nil {
		s.log.Error("failed to record import success", zap.Error(err))
	}

	return domain.ImportRecipeResponse{
		ImportRequestID: importRequest.ID.String(),
		RecipeID:        recipe.ID.String(),
		CreatedNames:    resolution.CreatedNames,
		Warnings:        warnings,
	}, nil
}

func (s *importService) Assemble(ctx context.Context, candidate *domain.CandidateRecipe, userID uuid.UUID, sourceType string) (*entities.Recipe, *ingredient.Resolution, error) {
	if err := s.validator.Struct(candidate); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidCandidateRecipe, err)
	}

	// One resolver pass covers the whole recipe, bounding embedding calls
	// to a single batch request.
	names := collectIngredientNames(candidate)
	resolution, err := s.resolver.ResolveBatch(ctx, names)
	if err != nil {
		return nil, nil, err
	}

	recipe := &entities.Recipe{
		CreatedBy:    userID,
		Title:        candidate.Title,
		Description:  candidate.Description,
		StepsSummary: candidate.StepsSummary,
		MealType:     defaultString(candidate.MealType, entities.MealTypeLunch),
		Difficulty:   defaultString(candidate.Difficulty, entities.DifficultyMedium),
		PrepTime:     candidate.PrepTime,
		CookTime:     candidate.CookTime,
		Servings:     candidate.Servings,
		SourceType:   sourceType,
	}

	if result := s.embedder.Embed(ctx, buildRecipeEmbeddingText(candidate)); result.OK() {
		vec := pgvector.NewVector(result.Vector)
		recipe.Embedding = &vec
	}

	graph := &RecipeGraph{Recipe: recipe}

	linkedIngredients := make(map[uuid.UUID]struct{})
	for _, entry := range candidate.RecipeIngredients {
		resolved := resolution.Lookup(entry.Name)
		if resolved == nil {
			return nil, nil, fmt.Errorf("ingredient %q missing from resolution map", entry.Name)
		}
		// Two input names can resolve to one canonical record; only the
		// first link is kept.
		if _, linked := linkedIngredients[resolved.ID]; linked {
			s.log.Warn("ingredient already linked to recipe, skipping duplicate",
				zap.String("name", entry.Name),
				zap.String("canonical", resolved.Name))
			continue
		}
		linkedIngredients[resolved.ID] = struct{}{}
		graph.IngredientLinks = append(graph.IngredientLinks, &entities.RecipeIngredient{
			IngredientID: resolved.ID,
			Quantity:     entry.Quantity,
			Unit:         entry.Unit,
		})
	}

	for _, candidateStep := range candidate.Steps {
		step := &StepWithLinks{
			Step: &entities.Step{
				Order:         candidateStep.Order,
				Title:         candidateStep.Title,
				Instruction:   candidateStep.Instruction,
				Tip:           candidateStep.Tip,
				HasTimer:      candidateStep.HasTimer,
				TimerDuration: candidateStep.TimerDuration,
			},
		}

		stepLinked := make(map[uuid.UUID]struct{})
		for _, entry := range candidateStep.StepIngredients {
			resolved := resolution.Lookup(entry.Name)
			if resolved == nil {
				return nil, nil, fmt.Errorf("ingredient %q missing from resolution map", entry.Name)
			}
			if _, linked := stepLinked[resolved.ID]; linked {
				s.log.Warn("ingredient already linked to step, skipping duplicate",
					zap.String("name", entry.Name),
					zap.String("canonical", resolved.Name),
					zap.Int("step", candidateStep.Order))
				continue
			}
			stepLinked[resolved.ID] = struct{}{}
			step.Links = append(step.Links, &entities.StepIngredient{
				IngredientID: resolved.ID,
				Quantity:     entry.Quantity,
				Unit:         entry.Unit,
			})
		}

		graph.Steps = append(graph.Steps, step)
	}

	// Resolution and embedding are done; the transaction itself performs
	// no network I/O and cannot be left half-committed by a timeout.
	if err := s.repo.CreateRecipeGraph(ctx, graph); err != nil {
		return nil, nil, fmt.Errorf("failed to commit recipe graph: %w", err)
	}

	s.log.Info("recipe assembled",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("title", recipe.Title),
		zap.Int("ingredients", len(graph.IngredientLinks)),
		zap.Int("steps", len(graph.Steps)),
		zap.Strings("created_ingredients", resolution.CreatedNames))
	return recipe, resolution, nil
}

// collectIngredientNames gathers every distinct ingredient mention, from
// the top-level list and from every step, in input order.
func collectIngredientNames(candidate *domain.CandidateRecipe) []string {
	var names []string
	for _, entry := range candidate.RecipeIngredients {
		names = append(names, entry.Name)
	}
	for _, step := range candidate.Steps {
		for _, entry := range step.StepIngredients {
			names = append(names, entry.Name)
		}
	}
	return names
}

// buildRecipeEmbeddingText flattens the candidate into the text embedded
// on the recipe row: title, description, ingredient lines, step lines and
// category tags.
func buildRecipeEmbeddingText(candidate *domain.CandidateRecipe) string {
	parts := []string{candidate.Title, candidate.Description, "Ingredients:"}

	for _, entry := range candidate.RecipeIngredients {
		line := strings.TrimSpace(fmt.Sprintf("%s %s %s",
			formatQuantity(entry.Quantity), entry.Unit, entry.Name))
		parts = append(parts, line)
	}

	parts = append(parts, "Steps:")
	for _, step := range candidate.Steps {
		title := step.Title
		if title == "" {
			title = fmt.Sprintf("Step %d", step.Order)
		}
		parts = append(parts, fmt.Sprintf("%s: %s", title, step.Instruction))
	}

	if len(candidate.Categories) > 0 {
		parts = append(parts, "Categories: "+strings.Join(candidate.Categories, ", "))
	}

	var nonEmpty []string
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

func formatQuantity(quantity float64) string {
	return strconv.FormatFloat(quantity, 'f', -1, 64)
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
