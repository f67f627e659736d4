// Package minerals diagnoses mineral shortfalls in a base ration and plans
// the least-cost supplement mix that closes them without breaching any
// toxicity ceiling.
package minerals

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/adiorany3/ransumruminansia/internal/feed"
	"github.com/adiorany3/ransumruminansia/internal/lp"
	"github.com/adiorany3/ransumruminansia/internal/ration"
	"github.com/adiorany3/ransumruminansia/internal/requirements"
	"github.com/adiorany3/ransumruminansia/pkg/mathutil"
)

// Gap is the diagnosis for one mineral. DeficitKg is max(0, lower−realized);
// Toxic flags a realized amount above the ceiling. A mineral can be neither
// (adequate) but never both.
type Gap struct {
	Mineral    feed.NutrientID
	RealizedKg float64
	LowerKg    float64
	UpperKg    float64
	DeficitKg  float64
	Toxic      bool
}

// Deficiency is the mineral diagnosis of a base ration, ordered by mineral
// identifier.
type Deficiency struct {
	Gaps []Gap
}

// Deficient returns the minerals with a positive deficit, in order.
func (d Deficiency) Deficient() []feed.NutrientID {
	var ids []feed.NutrientID
	for _, g := range d.Gaps {
		if g.DeficitKg > 0 {
			ids = append(ids, g.Mineral)
		}
	}
	return ids
}

// Toxicities returns the minerals flagged above their ceiling, in order.
func (d Deficiency) Toxicities() []feed.NutrientID {
	var ids []feed.NutrientID
	for _, g := range d.Gaps {
		if g.Toxic {
			ids = append(ids, g.Mineral)
		}
	}
	return ids
}

// AnalyzeGap compares a base ration's realized mineral amounts against the
// mineral requirement bounds. Deficits and toxicity flags are reported
// separately, never folded into one signed number.
func AnalyzeGap(eval *ration.Evaluation, bounds *requirements.Bounds) Deficiency {
	mineralBounds := bounds.Minerals()
	gaps := make([]Gap, 0, len(mineralBounds.IDs()))
	for _, id := range mineralBounds.IDs() {
		r, _ := mineralBounds.Range(id)
		realized := eval.Nutrients[id]
		gaps = append(gaps, Gap{
			Mineral:    id,
			RealizedKg: realized,
			LowerKg:    r.Lower,
			UpperKg:    r.Upper,
			DeficitKg:  mathutil.Max(0, r.Lower-realized),
			Toxic:      !math.IsInf(r.Upper, 1) && realized > r.Upper,
		})
	}
	sort.Slice(gaps, func(i, j int) bool { return gaps[i].Mineral < gaps[j].Mineral })
	return Deficiency{Gaps: gaps}
}

// Plan is a supplement prescription: quantity per supplement, resulting
// mineral amounts after supplementation, and the exact total cost.
type Plan struct {
	Quantities  map[string]float64
	ResultingKg map[feed.NutrientID]float64
	Cost        decimal.Decimal
	TotalCost   float64
}

// ConflictError reports that no supplement quantities can close every
// deficit without breaching a ceiling. It names the minerals on both sides
// of the conflict and the candidate supplements, and wraps the underlying
// lp.InfeasibleError.
type ConflictError struct {
	Deficient   []feed.NutrientID
	Ceilings    []feed.NutrientID
	Supplements []string
	cause       *lp.InfeasibleError
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("supplement conflict: cannot close deficits (%s) without breaching ceilings (%s) using supplements [%s]",
		joinIDs(e.Deficient), joinIDs(e.Ceilings), strings.Join(e.Supplements, ", "))
}

func (e *ConflictError) Unwrap() error { return e.cause }

func joinIDs(ids []feed.NutrientID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}

const (
	deficitLabelPrefix = "deficit:"
	ceilingLabelPrefix = "ceiling:"
)

// OptimizeSupplement solves the least-cost supplement plan for a diagnosed
// deficiency. For every deficient mineral the supplemented total must reach
// the lower bound; for every mineral with a finite ceiling the supplemented
// total must stay under it. Infeasibility surfaces as a ConflictError.
func OptimizeSupplement(logger *zap.Logger, def Deficiency, supplements *feed.Table, opts lp.Options) (*Plan, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if supplements == nil || supplements.Len() == 0 {
		return nil, fmt.Errorf("supplement table is empty")
	}

	schema := supplements.Schema()
	n := supplements.Len()
	cost := make([]float64, n)
	upper := make([]float64, n)
	lower := make([]float64, n)
	for i := 0; i < n; i++ {
		ing := supplements.At(i)
		cost[i] = ing.CostPerKg
		if ing.MinKg != nil {
			lower[i] = *ing.MinKg
		}
		if ing.MaxKg != nil {
			upper[i] = *ing.MaxKg
		} else {
			upper[i] = math.Inf(1)
		}
	}

	var cons []lp.Constraint
	for _, g := range def.Gaps {
		coeffs := make([]float64, n)
		for i := 0; i < n; i++ {
			coeffs[i] = supplements.At(i).Fraction(schema, g.Mineral)
		}
		if g.DeficitKg > 0 {
			cons = append(cons, lp.Constraint{
				Coeffs: coeffs, Sense: lp.GE, RHS: g.DeficitKg,
				Label: deficitLabelPrefix + string(g.Mineral),
			})
		}
		if !math.IsInf(g.UpperKg, 1) {
			ceilCoeffs := make([]float64, n)
			copy(ceilCoeffs, coeffs)
			cons = append(cons, lp.Constraint{
				Coeffs: ceilCoeffs, Sense: lp.LE, RHS: g.UpperKg - g.RealizedKg,
				Label: ceilingLabelPrefix + string(g.Mineral),
			})
		}
	}

	problem := lp.Problem{Cost: cost, Constraints: cons, Lower: lower, Upper: upper}
	logger.Debug("built supplement linear program",
		zap.String("op", "minerals.OptimizeSupplement"),
		zap.Int("variables", n),
		zap.Int("constraints", len(cons)),
	)

	sol, err := lp.Solve(problem, opts)
	if err != nil {
		if conflict := conflictFromLabels(err, def, supplements); conflict != nil {
			return nil, conflict
		}
		return nil, err
	}
	logger.Debug("solved supplement linear program",
		zap.String("op", "minerals.OptimizeSupplement"),
		zap.Float64("objective", sol.Objective),
		zap.Int("iterations", sol.Iterations),
	)

	plan := &Plan{
		Quantities:  make(map[string]float64),
		ResultingKg: make(map[feed.NutrientID]float64, len(def.Gaps)),
		Cost:        decimal.Zero,
	}
	for i := 0; i < n; i++ {
		v := sol.X[i]
		if mathutil.IsZero(v) {
			continue
		}
		ing := supplements.At(i)
		plan.Quantities[ing.Name] = v
		plan.Cost = plan.Cost.Add(decimal.NewFromFloat(v).Mul(decimal.NewFromFloat(ing.CostPerKg)))
	}
	plan.TotalCost, _ = plan.Cost.Float64()
	for _, g := range def.Gaps {
		total := g.RealizedKg
		for i := 0; i < n; i++ {
			total += sol.X[i] * supplements.At(i).Fraction(schema, g.Mineral)
		}
		plan.ResultingKg[g.Mineral] = total
	}
	return plan, nil
}

// conflictFromLabels rebuilds a structured conflict from the labels of the
// unsatisfiable LP rows.
func conflictFromLabels(err error, def Deficiency, supplements *feed.Table) *ConflictError {
	var ie *lp.InfeasibleError
	if !errors.As(err, &ie) {
		return nil
	}
	conflict := &ConflictError{Supplements: supplements.Names(), cause: ie}
	unsatisfied := make(map[string]bool, len(ie.Labels))
	for _, label := range ie.Labels {
		unsatisfied[label] = true
	}
	for _, g := range def.Gaps {
		if g.DeficitKg > 0 && (len(ie.Labels) == 0 || unsatisfied[deficitLabelPrefix+string(g.Mineral)]) {
			conflict.Deficient = append(conflict.Deficient, g.Mineral)
		}
		if !math.IsInf(g.UpperKg, 1) && (len(ie.Labels) == 0 || unsatisfied[ceilingLabelPrefix+string(g.Mineral)]) {
			conflict.Ceilings = append(conflict.Ceilings, g.Mineral)
		}
	}
	// The phase-1 basis often pins the blame on the deficit rows alone; in
	// that case every active ceiling is part of the conflict.
	if len(conflict.Ceilings) == 0 {
		for _, g := range def.Gaps {
			if !math.IsInf(g.UpperKg, 1) {
				conflict.Ceilings = append(conflict.Ceilings, g.Mineral)
			}
		}
	}
	return conflict
}
