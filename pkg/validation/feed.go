// Package validation provides feed table validation utilities.
package validation

import (
	"fmt"
)

// ValidateCost checks an ingredient cost for plausibility.
func ValidateCost(ingredientName string, costPerKg float64) (string, error) {
	if costPerKg < 0 {
		return "", fmt.Errorf("ingredient '%s' has negative cost %g", ingredientName, costPerKg)
	}
	if costPerKg == 0 {
		return fmt.Sprintf("Ingredient '%s' has zero cost - the optimizer will use it freely", ingredientName), nil
	}
	return "", nil
}

// ValidateNutrientValue checks a single nutrient value.
func ValidateNutrientValue(ingredientName, nutrient string, value float64) error {
	if value < 0 {
		return fmt.Errorf("ingredient '%s' has negative %s value %g", ingredientName, nutrient, value)
	}
	return nil
}

// ValidatePercentValue checks that a percent-unit nutrient stays in [0, 100].
func ValidatePercentValue(ingredientName, nutrient string, value float64) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("ingredient '%s' has %s = %g%%, outside [0, 100]", ingredientName, nutrient, value)
	}
	return nil
}

// ValidateInclusionBounds checks declared min/max inclusion masses.
func ValidateInclusionBounds(ingredientName string, minKg, maxKg *float64) error {
	if minKg != nil && *minKg < 0 {
		return fmt.Errorf("ingredient '%s' has negative minimum inclusion %g", ingredientName, *minKg)
	}
	if maxKg != nil && *maxKg < 0 {
		return fmt.Errorf("ingredient '%s' has negative maximum inclusion %g", ingredientName, *maxKg)
	}
	if minKg != nil && maxKg != nil && *minKg > *maxKg {
		return fmt.Errorf("ingredient '%s' has minimum inclusion %g above maximum %g", ingredientName, *minKg, *maxKg)
	}
	return nil
}

// DuplicateNames returns the names that appear more than once, in first
// occurrence order.
func DuplicateNames(names []string) []string {
	seen := make(map[string]int, len(names))
	var dups []string
	for _, name := range names {
		seen[name]++
		if seen[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}
