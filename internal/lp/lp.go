// Package lp solves bounded linear programs: minimize cᵀx subject to
// Ax {≤,=,≥} b and l ≤ x ≤ u with l ≥ 0. Both the ration optimizer and the
// mineral supplement optimizer are built on this one abstraction.
//
// The solver is a two-phase revised simplex using Bland's rule, so identical
// inputs always walk the same pivot sequence and produce the same vertex.
package lp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adiorany3/ransumruminansia/pkg/constants"
)

// Sense is the relation of a constraint row.
type Sense int

const (
	LE Sense = iota // Σ aᵢxᵢ ≤ b
	GE              // Σ aᵢxᵢ ≥ b
	EQ              // Σ aᵢxᵢ = b
)

// Constraint is one linear row. Label identifies the row in infeasibility
// reports; rows added internally (variable upper bounds) carry no label.
type Constraint struct {
	Coeffs []float64
	Sense  Sense
	RHS    float64
	Label  string
}

// Problem is a bounded linear cost-minimization problem. Lower and Upper
// hold per-variable bounds; a nil slice means zero lower bounds and
// unbounded uppers. Upper entries may be +Inf.
type Problem struct {
	Cost        []float64
	Constraints []Constraint
	Lower       []float64
	Upper       []float64
}

// Options bounds the solve. Zero values fall back to package defaults so a
// solve can never hang.
type Options struct {
	MaxIterations int
	Timeout       time.Duration
	Tolerance     float64
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = constants.DefaultMaxIterations
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Duration(constants.DefaultSolveTimeoutSeconds * float64(time.Second))
	}
	if o.Tolerance <= 0 {
		o.Tolerance = constants.PivotTolerance
	}
	return o
}

// Solution is an optimal vertex.
type Solution struct {
	X          []float64
	Objective  float64
	Iterations int
}

// InfeasibleError reports that no assignment satisfies all constraints.
// Labels lists the constraint rows that could not be satisfied, where
// derivable from the phase-1 basis.
type InfeasibleError struct {
	Labels []string
}

func (e *InfeasibleError) Error() string {
	if len(e.Labels) == 0 {
		return "linear program is infeasible"
	}
	return fmt.Sprintf("linear program is infeasible: unsatisfied constraints: %s", strings.Join(e.Labels, ", "))
}

// TimeoutError reports that the solve exceeded its iteration or wall-clock
// budget before reaching optimality. Distinct from infeasibility: the
// problem may well be solvable with a larger budget.
type TimeoutError struct {
	Iterations int
	Elapsed    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("solver budget exceeded after %d iterations (%s)", e.Iterations, e.Elapsed)
}

// ErrUnbounded indicates the objective can decrease without limit.
var ErrUnbounded = errors.New("linear program is unbounded")

// IsInfeasible reports whether err is an infeasibility result.
func IsInfeasible(err error) bool {
	var ie *InfeasibleError
	return errors.As(err, &ie)
}

// IsTimeout reports whether err is a solver budget result.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
