// Package output provides utilities for formatting and displaying ration
// results.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/adiorany3/ransumruminansia/internal/advisor"
	"github.com/adiorany3/ransumruminansia/internal/feed"
	"github.com/adiorany3/ransumruminansia/internal/minerals"
	"github.com/adiorany3/ransumruminansia/internal/ration"
	"github.com/adiorany3/ransumruminansia/internal/requirements"
	"github.com/adiorany3/ransumruminansia/pkg/constants"
)

func printer() *message.Printer {
	return message.NewPrinter(language.Indonesian)
}

// nutrientAmount renders an absolute nutrient amount with a readable unit:
// kilograms for macro nutrients, grams for trace minerals.
func nutrientAmount(id feed.NutrientID, kg float64) string {
	if feed.IsMicroMineral(id) {
		return fmt.Sprintf("%.2f g", kg*constants.GramsPerKilogram)
	}
	return fmt.Sprintf("%.3f kg", kg)
}

// PrettyEvaluation outputs a human-readable mixture evaluation.
func PrettyEvaluation(mix ration.Mixture, eval *ration.Evaluation, table *feed.Table, bounds *requirements.Bounds) {
	p := printer()
	fmt.Printf("--- Ration composition ---\n")
	fmt.Printf("Ingredient           | Amount (kg) | Cost (Rp)\n")
	fmt.Printf("__________           | ___________ | _________\n")
	for _, name := range mix.Names() {
		qty := mix.Quantities[name]
		ing, _ := table.Lookup(name)
		_, _ = p.Printf("%-20s | %11.2f | %.0f\n", name, qty, qty*ing.CostPerKg)
	}
	_, _ = p.Printf("Total mass %.2f kg, total cost Rp%.0f\n\n", eval.TotalMassKg, eval.TotalCost)

	fmt.Printf("--- Nutrient balance ---\n")
	fmt.Printf("Nutrient   | Realized     | Required     | Sufficiency\n")
	fmt.Printf("________   | ________     | ________     | ___________\n")
	for _, id := range table.Schema().IDs() {
		realized := eval.Nutrients[id]
		required := "-"
		status := "-"
		if bounds != nil {
			if r, ok := bounds.Range(id); ok {
				required = nutrientAmount(id, r.Lower)
				if s, ok := eval.Sufficiency[id]; ok {
					switch {
					case s.ExceedsUpper:
						status = fmt.Sprintf("%.0f%% (over ceiling)", s.Ratio*100)
					case s.HasRatio:
						status = fmt.Sprintf("%.0f%%", s.Ratio*100)
					}
				}
			}
		}
		_, _ = p.Printf("%-10s | %-12s | %-12s | %s\n", id, nutrientAmount(id, realized), required, status)
	}
	fmt.Printf("\n")
}

// CsvEvaluation outputs a mixture evaluation in comma-separated value
// format.
func CsvEvaluation(mix ration.Mixture, eval *ration.Evaluation, table *feed.Table, bounds *requirements.Bounds) {
	fmt.Printf("\"ingredient\",\"amount_kg\",\"cost\"\n")
	for _, name := range mix.Names() {
		qty := mix.Quantities[name]
		ing, _ := table.Lookup(name)
		fmt.Printf("\"%s\",\"%.4f\",\"%.2f\"\n", name, qty, qty*ing.CostPerKg)
	}
	fmt.Printf("\"total\",\"%.4f\",\"%.2f\"\n", eval.TotalMassKg, eval.TotalCost)

	fmt.Printf("\"nutrient\",\"realized_kg\",\"required_kg\",\"sufficiency\"\n")
	for _, id := range table.Schema().IDs() {
		required, sufficiency := "", ""
		if bounds != nil {
			if r, ok := bounds.Range(id); ok {
				required = fmt.Sprintf("%.6f", r.Lower)
			}
			if s, ok := eval.Sufficiency[id]; ok && s.HasRatio {
				sufficiency = fmt.Sprintf("%.4f", s.Ratio)
			}
		}
		fmt.Printf("\"%s\",\"%.6f\",\"%s\",\"%s\"\n", id, eval.Nutrients[id], required, sufficiency)
	}
}

// PrettyDeficiency outputs a human-readable mineral gap diagnosis.
func PrettyDeficiency(def minerals.Deficiency) {
	fmt.Printf("--- Mineral diagnosis ---\n")
	fmt.Printf("Mineral | Realized   | Required   | Deficit    | Status\n")
	fmt.Printf("_______ | ________   | ________   | _______    | ______\n")
	for _, g := range def.Gaps {
		status := "adequate"
		switch {
		case g.Toxic:
			status = "OVER CEILING"
		case g.DeficitKg > 0:
			status = "deficient"
		}
		fmt.Printf("%-7s | %-10s | %-10s | %-10s | %s\n",
			g.Mineral,
			nutrientAmount(g.Mineral, g.RealizedKg),
			nutrientAmount(g.Mineral, g.LowerKg),
			nutrientAmount(g.Mineral, g.DeficitKg),
			status)
	}
	fmt.Printf("\n")
}

// PrettyPlan outputs a human-readable supplement plan.
func PrettyPlan(plan *minerals.Plan, supplements *feed.Table) {
	p := printer()
	fmt.Printf("--- Supplement plan ---\n")
	if len(plan.Quantities) == 0 {
		fmt.Printf("No supplements needed.\n\n")
		return
	}
	fmt.Printf("Supplement           | Amount (g/day) | Cost (Rp)\n")
	fmt.Printf("__________           | ______________ | _________\n")
	for _, name := range supplements.Names() {
		qty, ok := plan.Quantities[name]
		if !ok {
			continue
		}
		ing, _ := supplements.Lookup(name)
		_, _ = p.Printf("%-20s | %14.1f | %.0f\n", name, qty*constants.GramsPerKilogram, qty*ing.CostPerKg)
	}
	_, _ = p.Printf("Total supplement cost Rp%.0f per day\n\n", plan.TotalCost)
}

// CsvPlan outputs a supplement plan in comma-separated value format.
func CsvPlan(plan *minerals.Plan, supplements *feed.Table) {
	fmt.Printf("\"supplement\",\"amount_kg\",\"cost\"\n")
	for _, name := range supplements.Names() {
		qty, ok := plan.Quantities[name]
		if !ok {
			continue
		}
		ing, _ := supplements.Lookup(name)
		fmt.Printf("\"%s\",\"%.6f\",\"%.2f\"\n", name, qty, qty*ing.CostPerKg)
	}
	fmt.Printf("\"total\",\"\",\"%.2f\"\n", plan.TotalCost)
}

// PrettyAdvice outputs the advisory recommendations.
func PrettyAdvice(advice []advisor.Advice) {
	if len(advice) == 0 {
		return
	}
	fmt.Printf("--- Recommendations ---\n")
	for _, a := range advice {
		fmt.Printf("[%s] %s\n", a.Category, a.Message)
	}
	fmt.Printf("\n")
}

// HerdTotals outputs the scaled totals for herds larger than one animal.
func HerdTotals(headCount int, eval *ration.Evaluation) {
	if headCount <= 1 || eval == nil {
		return
	}
	p := printer()
	_, _ = p.Printf("For %d head: %.2f kg feed and Rp%.0f per day\n\n",
		headCount, eval.TotalMassKg*float64(headCount), eval.TotalCost*float64(headCount))
}
