// Package advisor produces husbandry recommendations for an evaluated
// ration. Everything here is advisory: advice never feeds back into the
// optimizer as a constraint. Static recommendations live in an enumerated
// rule table matched against the animal description; the computed checks
// cover intake adequacy, forage/concentrate balance and anti-nutrient
// exposure.
package advisor

import (
	"fmt"
	"sort"

	"github.com/adiorany3/ransumruminansia/internal/feed"
	"github.com/adiorany3/ransumruminansia/internal/ration"
	"github.com/adiorany3/ransumruminansia/internal/requirements"
)

// Advice is one recommendation.
type Advice struct {
	Category string
	Message  string
}

// Advice categories.
const (
	CategorySex          = "sex"
	CategoryHerd         = "herd"
	CategorySeason       = "season"
	CategoryIntake       = "intake"
	CategoryProportion   = "proportion"
	CategoryAntiNutrient = "anti-nutrient"
)

// Context is everything the advisor looks at: the animal, its resolved
// bounds, and the evaluated mixture over its table.
type Context struct {
	Spec       requirements.Spec
	Bounds     *requirements.Bounds
	Mixture    ration.Mixture
	Evaluation *ration.Evaluation
	Table      *feed.Table
}

// rule is one entry in the static recommendation table. Zero-valued
// condition fields match anything; MinHead matches herds of at least that
// size.
type rule struct {
	Species  requirements.Species
	Purpose  requirements.Purpose
	Sex      requirements.Sex
	Season   requirements.Season
	MinHead  int
	Category string
	Message  string
}

func (r rule) matches(spec requirements.Spec) bool {
	if r.Species != "" && r.Species != spec.Species {
		return false
	}
	if r.Purpose != "" && r.Purpose != spec.Purpose {
		return false
	}
	if r.Sex != "" && r.Sex != spec.Sex {
		return false
	}
	if r.Season != "" && r.Season != spec.Season {
		return false
	}
	if r.MinHead > 0 && spec.HeadCount < r.MinHead {
		return false
	}
	return true
}

var ruleTable = []rule{
	{Sex: requirements.Male, Category: CategorySex,
		Message: "Ensure the energy level covers growth and physical activity."},
	{Sex: requirements.Male, Purpose: requirements.Meat, Category: CategorySex,
		Message: "Keep protein high enough for muscle deposition; consider growth supplements for fattening targets."},
	{Sex: requirements.Female, Purpose: requirements.Dairy, Category: CategorySex,
		Message: "Keep calcium and phosphorus adequate for milk production, with a Ca:P ratio between 1.5:1 and 2:1."},
	{MinHead: 11, Category: CategoryHerd,
		Message: "Buy feed ingredients in bulk, secure adequate storage, and consider a total mixed ration for consistency."},
	{MinHead: 11, Category: CategoryHerd,
		Message: "Run periodic feed quality checks across the herd."},
	{Season: requirements.WetSeason, Category: CategorySeason,
		Message: "Use the abundant fresh forage and preserve the surplus as hay or silage."},
	{Season: requirements.DrySeason, Category: CategorySeason,
		Message: "Draw on stored hay or silage and raise the concentrate share if quality forage is scarce."},
}

// idealForageShare gives the target forage fraction of total intake.
var idealForageShare = map[requirements.Species]map[requirements.Purpose]float64{
	requirements.Cattle: {requirements.Meat: 0.60, requirements.Dairy: 0.40},
	requirements.Goat:   {requirements.Meat: 0.65, requirements.Dairy: 0.50},
	requirements.Sheep:  {requirements.Meat: 0.65, requirements.Dairy: 0.50},
}

// Anti-nutrient factor names as used in ingredient data.
const (
	Tannin    = "tannin"
	Saponin   = "saponin"
	Mimosine  = "mimosine"
	Gossypol  = "gossypol"
	HCN       = "hcn"
	Aflatoxin = "aflatoxin"
	Oxalate   = "oxalate"
)

// antiNutrientLimit is a published safe limit for a mixture-wide
// mass-weighted concentration, in the factor's native unit.
type antiNutrientLimit struct {
	Limit float64
	Unit  string
	Risk  string
}

var antiNutrientLimits = map[string]antiNutrientLimit{
	Tannin:    {Limit: 2.0, Unit: "%", Risk: "binds protein and lowers digestibility"},
	Saponin:   {Limit: 1.0, Unit: "%", Risk: "can cause bloat"},
	Mimosine:  {Limit: 0.5, Unit: "%", Risk: "inhibits protein synthesis and causes hair loss"},
	Gossypol:  {Limit: 100, Unit: "ppm", Risk: "impairs reproduction, especially in males"},
	HCN:       {Limit: 20, Unit: "ppm", Risk: "toxic, can cause respiratory failure"},
	Aflatoxin: {Limit: 5, Unit: "ppb", Risk: "fungal toxin that damages the liver"},
	Oxalate:   {Limit: 0.5, Unit: "%", Risk: "binds calcium and can cause kidney stones"},
}

// intakeAdequacyFloor triggers an intake warning when total mixture mass
// falls below this share of the estimated dry-matter intake.
const intakeAdequacyFloor = 0.9

// proportionFloor triggers a balance warning when a fraction falls below
// this share of its ideal.
const proportionFloor = 0.8

// Advise evaluates the rule table and the computed checks against the
// context. It is a pure function; the same context always yields the same
// advice in the same order.
func Advise(ctx Context) []Advice {
	var out []Advice
	for _, r := range ruleTable {
		if r.matches(ctx.Spec) {
			out = append(out, Advice{Category: r.Category, Message: r.Message})
		}
	}
	out = append(out, intakeAdvice(ctx)...)
	out = append(out, proportionAdvice(ctx)...)
	out = append(out, antiNutrientAdvice(ctx)...)
	return out
}

func intakeAdvice(ctx Context) []Advice {
	if ctx.Bounds == nil || ctx.Evaluation == nil || ctx.Bounds.DryMatterIntakeKg <= 0 {
		return nil
	}
	dmi := ctx.Bounds.DryMatterIntakeKg
	if ctx.Evaluation.TotalMassKg < dmi*intakeAdequacyFloor {
		return []Advice{{Category: CategoryIntake, Message: fmt.Sprintf(
			"Total ration mass %.2f kg is below the estimated dry-matter intake of %.2f kg/day; the animal may be underfed.",
			ctx.Evaluation.TotalMassKg, dmi)}}
	}
	return nil
}

func proportionAdvice(ctx Context) []Advice {
	if ctx.Table == nil || ctx.Evaluation == nil || ctx.Evaluation.TotalMassKg <= 0 {
		return nil
	}
	shares, ok := idealForageShare[ctx.Spec.Species]
	if !ok {
		return nil
	}
	ideal, ok := shares[ctx.Spec.Purpose]
	if !ok {
		return nil
	}

	forage, concentrate := 0.0, 0.0
	for _, name := range ctx.Mixture.Names() {
		ing, ok := ctx.Table.Lookup(name)
		if !ok {
			continue
		}
		switch ing.Category {
		case feed.Forage:
			forage += ctx.Mixture.Quantities[name]
		case feed.Concentrate:
			concentrate += ctx.Mixture.Quantities[name]
		}
	}
	total := ctx.Evaluation.TotalMassKg
	idealForage := total * ideal
	idealConcentrate := total - idealForage
	switch {
	case forage < idealForage*proportionFloor:
		return []Advice{{Category: CategoryProportion, Message: fmt.Sprintf(
			"Forage share %.0f%% is well below the ideal %.0f%%; add forage to protect rumen health.",
			forage/total*100, ideal*100)}}
	case concentrate < idealConcentrate*proportionFloor:
		return []Advice{{Category: CategoryProportion, Message: fmt.Sprintf(
			"Concentrate share %.0f%% is well below the ideal %.0f%%; add concentrate to reach production targets.",
			concentrate/total*100, (1-ideal)*100)}}
	}
	return nil
}

func antiNutrientAdvice(ctx Context) []Advice {
	if ctx.Table == nil || ctx.Evaluation == nil || ctx.Evaluation.TotalMassKg <= 0 {
		return nil
	}

	weighted := make(map[string]float64)
	gossypolSources := false
	for _, name := range ctx.Mixture.Names() {
		ing, ok := ctx.Table.Lookup(name)
		if !ok {
			continue
		}
		qty := ctx.Mixture.Quantities[name]
		for factor, value := range ing.AntiNutrients {
			weighted[factor] += qty * value
			if factor == Gossypol && value > 0 {
				gossypolSources = true
			}
		}
	}

	factors := make([]string, 0, len(weighted))
	for factor := range weighted {
		factors = append(factors, factor)
	}
	sort.Strings(factors)

	var out []Advice
	for _, factor := range factors {
		limit, ok := antiNutrientLimits[factor]
		if !ok {
			continue
		}
		conc := weighted[factor] / ctx.Evaluation.TotalMassKg
		if conc > limit.Limit {
			out = append(out, Advice{Category: CategoryAntiNutrient, Message: fmt.Sprintf(
				"%s at %.2f %s exceeds the safe limit of %g %s: %s.",
				factor, conc, limit.Unit, limit.Limit, limit.Unit, limit.Risk)})
		}
	}
	if gossypolSources && ctx.Spec.Sex == requirements.Male {
		out = append(out, Advice{
			Category: CategoryAntiNutrient,
			Message:  "The mixture contains gossypol-bearing ingredients; gossypol impairs male fertility, so reduce or replace them.",
		})
	}
	return out
}
