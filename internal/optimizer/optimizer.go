// Package optimizer formulates and solves the least-cost ration problem:
// choose ingredient quantities minimizing total cost subject to the
// resolved nutrient requirement bounds and per-ingredient inclusion bounds.
package optimizer

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/adiorany3/ransumruminansia/internal/feed"
	"github.com/adiorany3/ransumruminansia/internal/lp"
	"github.com/adiorany3/ransumruminansia/internal/ration"
	"github.com/adiorany3/ransumruminansia/internal/requirements"
	"github.com/adiorany3/ransumruminansia/pkg/constants"
	"github.com/adiorany3/ransumruminansia/pkg/mathutil"
)

// Request is one optimization problem. TotalMassKg, when set, pins the
// mixture's total mass with an equality constraint; when nil, total mass is
// a free outcome of the minimization.
type Request struct {
	Table       *feed.Table
	Bounds      *requirements.Bounds
	TotalMassKg *float64
	Options     lp.Options
}

// OptimizeRation solves the least-cost ration for the request and returns
// the mixture together with its evaluation. An infeasible or timed-out
// solve returns the lp error unchanged; a partial result is never returned.
func OptimizeRation(logger *zap.Logger, req Request) (ration.Mixture, *ration.Evaluation, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if req.Table == nil || req.Table.Len() == 0 {
		return ration.Mixture{}, nil, fmt.Errorf("ingredient table is empty")
	}
	if req.Bounds == nil {
		return ration.Mixture{}, nil, fmt.Errorf("requirement bounds are required")
	}

	problem := buildProblem(req)
	logger.Debug("built ration linear program",
		zap.String("op", "optimizer.OptimizeRation"),
		zap.Int("variables", len(problem.Cost)),
		zap.Int("constraints", len(problem.Constraints)),
	)

	sol, err := lp.Solve(problem, req.Options)
	if err != nil {
		return ration.Mixture{}, nil, err
	}
	logger.Debug("solved ration linear program",
		zap.String("op", "optimizer.OptimizeRation"),
		zap.Float64("objective", sol.Objective),
		zap.Int("iterations", sol.Iterations),
	)

	mix := mixtureFromSolution(req.Table, sol.X)
	eval, err := ration.Evaluate(mix, req.Table, req.Bounds)
	if err != nil {
		return ration.Mixture{}, nil, fmt.Errorf("evaluating optimized mixture: %w", err)
	}
	if err := checkBounds(eval, req.Bounds); err != nil {
		return ration.Mixture{}, nil, err
	}
	if req.TotalMassKg != nil &&
		!mathutil.WithinTolerance(eval.TotalMassKg, *req.TotalMassKg, constants.AcceptanceTolerance*(1+*req.TotalMassKg)) {
		return ration.Mixture{}, nil, fmt.Errorf("optimized mixture mass %g misses target %g",
			eval.TotalMassKg, *req.TotalMassKg)
	}
	return mix, eval, nil
}

func buildProblem(req Request) lp.Problem {
	table := req.Table
	schema := table.Schema()
	n := table.Len()

	cost := make([]float64, n)
	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := 0; i < n; i++ {
		ing := table.At(i)
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
	for _, id := range req.Bounds.IDs() {
		r, _ := req.Bounds.Range(id)
		coeffs := make([]float64, n)
		for i := 0; i < n; i++ {
			coeffs[i] = table.At(i).Fraction(schema, id)
		}
		if r.Lower > 0 {
			cons = append(cons, lp.Constraint{
				Coeffs: coeffs, Sense: lp.GE, RHS: r.Lower,
				Label: fmt.Sprintf("%s lower bound", id),
			})
		}
		if !math.IsInf(r.Upper, 1) {
			upperCoeffs := make([]float64, n)
			copy(upperCoeffs, coeffs)
			cons = append(cons, lp.Constraint{
				Coeffs: upperCoeffs, Sense: lp.LE, RHS: r.Upper,
				Label: fmt.Sprintf("%s upper bound", id),
			})
		}
	}
	if req.TotalMassKg != nil {
		coeffs := make([]float64, n)
		for i := range coeffs {
			coeffs[i] = 1
		}
		cons = append(cons, lp.Constraint{
			Coeffs: coeffs, Sense: lp.EQ, RHS: *req.TotalMassKg, Label: "total mass",
		})
	}

	return lp.Problem{Cost: cost, Constraints: cons, Lower: lower, Upper: upper}
}

func mixtureFromSolution(table *feed.Table, x []float64) ration.Mixture {
	quantities := make(map[string]float64)
	for i := 0; i < table.Len(); i++ {
		v := x[i]
		if mathutil.IsZero(v) {
			continue
		}
		quantities[table.At(i).Name] = v
	}
	return ration.Mixture{Quantities: quantities}
}

// checkBounds is the acceptance check: the evaluator must confirm every
// requirement bound within relative tolerance before a solution is handed
// back as optimal.
func checkBounds(eval *ration.Evaluation, bounds *requirements.Bounds) error {
	for _, id := range bounds.IDs() {
		r, _ := bounds.Range(id)
		realized := eval.Nutrients[id]
		if !mathutil.MeetsLowerBound(realized, r.Lower, constants.AcceptanceTolerance) {
			return fmt.Errorf("optimized mixture misses %s lower bound: %g < %g", id, realized, r.Lower)
		}
		if !mathutil.MeetsUpperBound(realized, r.Upper, constants.AcceptanceTolerance) {
			return fmt.Errorf("optimized mixture breaches %s upper bound: %g > %g", id, realized, r.Upper)
		}
	}
	return nil
}
