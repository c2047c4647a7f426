package handlers

import (
	"github.com/gofiber/fiber/v2"

	"recipe-pipeline/domain"
	"recipe-pipeline/internal/api/presenters"
	"recipe-pipeline/pkg/ingredient"
)

type (
	IngredientHandler interface {
		GetIngredients(c *fiber.Ctx) error
		BackfillEmbeddings(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService) IngredientHandler {
	return &ingredientHandler{ingredientService: ingredientService}
}

func (h *ingredientHandler) GetIngredients(c *fiber.Ctx) error {
	res, err := h.ingredientService.GetIngredients(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"ingredients": res,
		"total":       len(res),
	}, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) BackfillEmbeddings(c *fiber.Ctx) error {
	backfilled, err := h.ingredientService.BackfillEmbeddings(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"backfilled": backfilled,
	}, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}
