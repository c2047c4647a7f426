package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"recipe-pipeline/domain"
	"recipe-pipeline/internal/api/presenters"
	"recipe-pipeline/pkg/importer"
	"recipe-pipeline/pkg/recipe"
)

type (
	ImportHandler interface {
		ImportRecipe(c *fiber.Ctx) error
	}

	importHandler struct {
		importService importer.ImportService
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewImportHandler(importService importer.ImportService, recipeService recipe.RecipeService, validator *validator.Validate) ImportHandler {
	return &importHandler{
		importService: importService,
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *importHandler) ImportRecipe(c *fiber.Ctx) error {
	req := new(domain.ImportRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportRecipe, err)
	}

	res, err := h.importService.ImportRecipe(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCandidateRecipe) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportRecipe, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedImportRecipe, err)
	}

	// Return the full committed graph, not just identifiers.
	detail, err := h.recipeService.GetRecipeDetail(c.Context(), res.RecipeID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"import_request_id":   res.ImportRequestID,
		"recipe":              detail,
		"created_ingredients": res.CreatedNames,
		"quantity_warnings":   res.Warnings,
	}, fiber.StatusCreated, domain.MessageSuccessImportRecipe)
}
