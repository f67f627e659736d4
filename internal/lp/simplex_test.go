package lp

import (
	"errors"
	"math"
	"testing"
)

func floatsEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSolveSimpleLowerBound(t *testing.T) {
	// min 2x + y subject to x + y >= 10. Optimum puts everything on the
	// cheaper variable.
	p := Problem{
		Cost: []float64{2, 1},
		Constraints: []Constraint{
			{Coeffs: []float64{1, 1}, Sense: GE, RHS: 10, Label: "demand"},
		},
	}
	sol, err := Solve(p, Options{})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !floatsEqual(sol.Objective, 10, 1e-6) {
		t.Errorf("objective = %g, want 10", sol.Objective)
	}
	if !floatsEqual(sol.X[0], 0, 1e-6) || !floatsEqual(sol.X[1], 10, 1e-6) {
		t.Errorf("solution = %v, want [0 10]", sol.X)
	}
}

func TestSolveBlendWithEquality(t *testing.T) {
	// Two-ingredient blend: minimize 2a + b with 0.2a + 0.1b >= 1.4,
	// 0.7a + 0.6b >= 6.5 and a + b = 10. The energy row and the mass row
	// intersect at a = b = 5 for a cost of 15.
	p := Problem{
		Cost: []float64{2, 1},
		Constraints: []Constraint{
			{Coeffs: []float64{0.2, 0.1}, Sense: GE, RHS: 1.4, Label: "protein"},
			{Coeffs: []float64{0.7, 0.6}, Sense: GE, RHS: 6.5, Label: "energy"},
			{Coeffs: []float64{1, 1}, Sense: EQ, RHS: 10, Label: "mass"},
		},
	}
	sol, err := Solve(p, Options{})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !floatsEqual(sol.Objective, 15, 1e-6) {
		t.Errorf("objective = %g, want 15", sol.Objective)
	}
	if !floatsEqual(sol.X[0], 5, 1e-6) || !floatsEqual(sol.X[1], 5, 1e-6) {
		t.Errorf("solution = %v, want [5 5]", sol.X)
	}
	energy := 0.7*sol.X[0] + 0.6*sol.X[1]
	if !floatsEqual(energy, 6.5, 1e-6) {
		t.Errorf("energy row = %g, want binding at 6.5", energy)
	}
}

func TestSolveRespectsVariableBounds(t *testing.T) {
	// The cheap variable is capped, forcing the remainder onto the
	// expensive one.
	p := Problem{
		Cost: []float64{1, 3},
		Constraints: []Constraint{
			{Coeffs: []float64{1, 1}, Sense: GE, RHS: 10, Label: "demand"},
		},
		Lower: []float64{0, 0},
		Upper: []float64{4, math.Inf(1)},
	}
	sol, err := Solve(p, Options{})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !floatsEqual(sol.X[0], 4, 1e-6) || !floatsEqual(sol.X[1], 6, 1e-6) {
		t.Errorf("solution = %v, want [4 6]", sol.X)
	}
	if !floatsEqual(sol.Objective, 22, 1e-6) {
		t.Errorf("objective = %g, want 22", sol.Objective)
	}
}

func TestSolveZeroUpperBoundExcludesVariable(t *testing.T) {
	p := Problem{
		Cost: []float64{1, 1},
		Constraints: []Constraint{
			{Coeffs: []float64{1, 1}, Sense: GE, RHS: 5, Label: "demand"},
		},
		Lower: []float64{0, 0},
		Upper: []float64{0, math.Inf(1)},
	}
	sol, err := Solve(p, Options{})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if sol.X[0] > 1e-9 {
		t.Errorf("variable with zero upper bound has quantity %g", sol.X[0])
	}
	if !floatsEqual(sol.X[1], 5, 1e-6) {
		t.Errorf("solution = %v, want [0 5]", sol.X)
	}
}

func TestSolveInfeasible(t *testing.T) {
	// x <= 1 as a variable bound but x >= 2 as a row.
	p := Problem{
		Cost: []float64{1},
		Constraints: []Constraint{
			{Coeffs: []float64{1}, Sense: GE, RHS: 2, Label: "demand"},
		},
		Lower: []float64{0},
		Upper: []float64{1},
	}
	_, err := Solve(p, Options{})
	if err == nil {
		t.Fatal("Solve() succeeded on an infeasible problem")
	}
	var ie *InfeasibleError
	if !errors.As(err, &ie) {
		t.Fatalf("error = %v, want InfeasibleError", err)
	}
	if len(ie.Labels) != 1 || ie.Labels[0] != "demand" {
		t.Errorf("labels = %v, want [demand]", ie.Labels)
	}
	if !IsInfeasible(err) {
		t.Error("IsInfeasible() = false, want true")
	}
}

func TestSolveUnbounded(t *testing.T) {
	p := Problem{
		Cost: []float64{-1},
		Constraints: []Constraint{
			{Coeffs: []float64{1}, Sense: GE, RHS: 1, Label: "floor"},
		},
	}
	_, err := Solve(p, Options{})
	if !errors.Is(err, ErrUnbounded) {
		t.Fatalf("error = %v, want ErrUnbounded", err)
	}
}

func TestSolveUnboundedWithoutConstraints(t *testing.T) {
	p := Problem{Cost: []float64{-1, 2}}
	_, err := Solve(p, Options{})
	if !errors.Is(err, ErrUnbounded) {
		t.Fatalf("error = %v, want ErrUnbounded", err)
	}
}

func TestSolveIterationBudget(t *testing.T) {
	p := Problem{
		Cost: []float64{2, 1},
		Constraints: []Constraint{
			{Coeffs: []float64{0.2, 0.1}, Sense: GE, RHS: 1.4, Label: "protein"},
			{Coeffs: []float64{0.7, 0.6}, Sense: GE, RHS: 6.5, Label: "energy"},
			{Coeffs: []float64{1, 1}, Sense: EQ, RHS: 10, Label: "mass"},
		},
	}
	_, err := Solve(p, Options{MaxIterations: 1})
	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want TimeoutError", err)
	}
	if IsInfeasible(err) {
		t.Error("budget exhaustion must not be reported as infeasibility")
	}
	if !IsTimeout(err) {
		t.Error("IsTimeout() = false, want true")
	}
}

func TestSolveDeterministic(t *testing.T) {
	p := Problem{
		Cost: []float64{3, 3, 1, 2},
		Constraints: []Constraint{
			{Coeffs: []float64{1, 1, 1, 1}, Sense: EQ, RHS: 8, Label: "mass"},
			{Coeffs: []float64{0.5, 0.5, 0.1, 0.2}, Sense: GE, RHS: 1.5, Label: "blend"},
		},
	}
	first, err := Solve(p, Options{})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Solve(p, Options{})
		if err != nil {
			t.Fatalf("Solve() error on repeat = %v", err)
		}
		if again.Objective != first.Objective {
			t.Fatalf("objective changed between identical solves: %g vs %g", again.Objective, first.Objective)
		}
		for j := range first.X {
			if again.X[j] != first.X[j] {
				t.Fatalf("solution changed between identical solves: %v vs %v", again.X, first.X)
			}
		}
	}
}

func TestSolveRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		p    Problem
	}{
		{"no variables", Problem{}},
		{"coefficient length mismatch", Problem{
			Cost:        []float64{1, 2},
			Constraints: []Constraint{{Coeffs: []float64{1}, Sense: GE, RHS: 1}},
		}},
		{"negative lower bound", Problem{
			Cost:  []float64{1},
			Lower: []float64{-1},
			Constraints: []Constraint{
				{Coeffs: []float64{1}, Sense: GE, RHS: 1},
			},
		}},
		{"upper below lower", Problem{
			Cost:  []float64{1},
			Lower: []float64{2},
			Upper: []float64{1},
			Constraints: []Constraint{
				{Coeffs: []float64{1}, Sense: GE, RHS: 1},
			},
		}},
	}
	for _, tt := range tests {
		if _, err := Solve(tt.p, Options{}); err == nil {
			t.Errorf("%s: Solve() succeeded, want error", tt.name)
		}
	}
}
