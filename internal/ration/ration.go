// Package ration evaluates feed mixtures: realized nutrient totals, cost
// and per-nutrient sufficiency against requirement bounds. Evaluation is
// pure and linear in the mixture, and is recomputed on demand rather than
// cached.
package ration

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/adiorany3/ransumruminansia/internal/feed"
	"github.com/adiorany3/ransumruminansia/internal/requirements"
	"github.com/adiorany3/ransumruminansia/pkg/constants"
	"github.com/adiorany3/ransumruminansia/pkg/mathutil"
)

// Mixture maps ingredient name to a quantity in kilograms. It can be
// user-authored or optimizer-produced; both are evaluated identically.
type Mixture struct {
	Quantities map[string]float64
}

// NewMixture copies the given quantities into a Mixture.
func NewMixture(quantities map[string]float64) Mixture {
	q := make(map[string]float64, len(quantities))
	for name, v := range quantities {
		q[name] = v
	}
	return Mixture{Quantities: q}
}

// TotalKg returns the total mass of the mixture.
func (m Mixture) TotalKg() float64 {
	total := 0.0
	for _, v := range m.Quantities {
		total += v
	}
	return total
}

// Scale returns a new mixture with every quantity multiplied by factor.
func (m Mixture) Scale(factor float64) Mixture {
	q := make(map[string]float64, len(m.Quantities))
	for name, v := range m.Quantities {
		q[name] = v * factor
	}
	return Mixture{Quantities: q}
}

// Names returns the ingredient names in sorted order.
func (m Mixture) Names() []string {
	names := make([]string, 0, len(m.Quantities))
	for name := range m.Quantities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sufficiency reports how a realized nutrient amount sits against its
// requirement interval. Ratio is realized/lower when the lower bound is
// positive; UpperRatio is realized/upper only when the upper bound is
// finite, since a ratio against infinity is meaningless.
type Sufficiency struct {
	Ratio         float64
	HasRatio      bool
	UpperRatio    float64
	HasUpperRatio bool
	ExceedsUpper  bool
}

// Evaluation is the derived view of one mixture: total mass, exact cost,
// realized absolute nutrient amounts in kilograms, and sufficiency per
// bounded nutrient when requirement bounds were supplied.
type Evaluation struct {
	TotalMassKg float64
	Cost        decimal.Decimal
	TotalCost   float64
	Nutrients   map[feed.NutrientID]float64
	Sufficiency map[feed.NutrientID]Sufficiency
}

// InvalidMixtureError reports a mixture rejected before evaluation.
type InvalidMixtureError struct {
	Ingredient string
	Reason     string
}

func (e *InvalidMixtureError) Error() string {
	return fmt.Sprintf("invalid mixture: ingredient %q: %s", e.Ingredient, e.Reason)
}

// Evaluate computes the evaluation of a mixture over the given feed table.
// bounds may be nil, in which case no sufficiency is reported. Quantities
// must be non-negative, name known ingredients, and respect declared
// inclusion bounds.
func Evaluate(mix Mixture, table *feed.Table, bounds *requirements.Bounds) (*Evaluation, error) {
	for _, name := range mix.Names() {
		qty := mix.Quantities[name]
		ing, ok := table.Lookup(name)
		if !ok {
			return nil, &InvalidMixtureError{Ingredient: name, Reason: "not in ingredient table"}
		}
		if qty < 0 {
			return nil, &InvalidMixtureError{Ingredient: name, Reason: fmt.Sprintf("negative quantity %g", qty)}
		}
		if ing.MinKg != nil && qty < *ing.MinKg {
			return nil, &InvalidMixtureError{Ingredient: name,
				Reason: fmt.Sprintf("quantity %g below declared minimum %g", qty, *ing.MinKg)}
		}
		if ing.MaxKg != nil && qty > *ing.MaxKg {
			return nil, &InvalidMixtureError{Ingredient: name,
				Reason: fmt.Sprintf("quantity %g above declared maximum %g", qty, *ing.MaxKg)}
		}
	}

	schema := table.Schema()
	eval := &Evaluation{
		Nutrients:   make(map[feed.NutrientID]float64, len(schema.IDs())),
		Sufficiency: make(map[feed.NutrientID]Sufficiency),
		Cost:        decimal.Zero,
	}
	for _, id := range schema.IDs() {
		eval.Nutrients[id] = 0
	}

	for _, name := range mix.Names() {
		qty := mix.Quantities[name]
		ing, _ := table.Lookup(name)
		eval.TotalMassKg += qty
		eval.Cost = eval.Cost.Add(decimal.NewFromFloat(qty).Mul(decimal.NewFromFloat(ing.CostPerKg)))
		for _, id := range schema.IDs() {
			eval.Nutrients[id] += qty * ing.Fraction(schema, id)
		}
	}
	eval.TotalCost, _ = eval.Cost.Float64()

	if bounds != nil {
		for _, id := range bounds.IDs() {
			r, _ := bounds.Range(id)
			realized := eval.Nutrients[id]
			s := Sufficiency{}
			if r.Lower > 0 {
				s.Ratio = realized / r.Lower
				s.HasRatio = true
			}
			if !math.IsInf(r.Upper, 1) {
				if r.Upper > 0 {
					s.UpperRatio = realized / r.Upper
					s.HasUpperRatio = true
				}
				s.ExceedsUpper = !mathutil.MeetsUpperBound(realized, r.Upper, constants.AcceptanceTolerance)
			}
			eval.Sufficiency[id] = s
		}
	}
	return eval, nil
}
