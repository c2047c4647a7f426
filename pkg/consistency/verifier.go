package consistency

import (
	"math"

	"recipe-pipeline/domain"
)

// tolerance is the relative difference above which a mismatch is reported.
const tolerance = 0.10

// Verify cross-checks each recipe-level ingredient total against the sum
// of step-level quantities sharing the exact same name and unit. No unit
// conversion is attempted. The result is advisory metadata; it never
// blocks or alters assembly.
func Verify(recipe *domain.CandidateRecipe) map[string]domain.QuantityReport {
	reports := make(map[string]domain.QuantityReport)

	for _, recipeIngredient := range recipe.RecipeIngredients {
		stepsTotal := 0.0
		for _, step := range recipe.Steps {
			for _, stepIngredient := range step.StepIngredients {
				if stepIngredient.Name == recipeIngredient.Name &&
					stepIngredient.Unit == recipeIngredient.Unit {
					stepsTotal += stepIngredient.Quantity
				}
			}
		}

		// No step mentions this ingredient in the same unit; nothing to
		// compare.
		if stepsTotal == 0 {
			continue
		}

		difference := math.Abs(recipeIngredient.Quantity - stepsTotal)
		percentageDiff := 0.0
		if recipeIngredient.Quantity != 0 {
			percentageDiff = difference / recipeIngredient.Quantity
		}

		if percentageDiff > tolerance {
			reports[recipeIngredient.Name] = domain.QuantityReport{
				RecipeTotal:    recipeIngredient.Quantity,
				StepsTotal:     stepsTotal,
				Difference:     difference,
				PercentageDiff: percentageDiff * 100,
			}
		}
	}

	return reports
}
