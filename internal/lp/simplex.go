package lp

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Solve finds the cost-minimizing vertex of the problem, or reports
// infeasibility, unboundedness, or budget exhaustion. The result is
// deterministic for identical inputs.
func Solve(p Problem, opts Options) (Solution, error) {
	opts = opts.withDefaults()
	start := time.Now()

	n := len(p.Cost)
	if n == 0 {
		return Solution{}, fmt.Errorf("problem has no variables")
	}
	for i, c := range p.Constraints {
		if len(c.Coeffs) != n {
			return Solution{}, fmt.Errorf("constraint %d has %d coefficients, want %d", i, len(c.Coeffs), n)
		}
	}
	lower, upper, err := expandBounds(p, n)
	if err != nil {
		return Solution{}, err
	}

	if len(p.Constraints) == 0 && allInf(upper) {
		return solveUnconstrained(p, lower)
	}

	t := newTableau(p, lower, upper)

	// Phase 1: minimize the sum of artificial variables to find a feasible
	// basis.
	phase1 := make([]float64, t.nTotal)
	for j := t.artStart; j < t.nTotal; j++ {
		phase1[j] = 1
	}
	banned := make([]bool, t.nTotal)
	iters, err := t.iterate(phase1, banned, opts, start, 0)
	if err != nil {
		return Solution{}, err
	}

	xB, err := t.basicSolution()
	if err != nil {
		return Solution{}, err
	}
	feasTol := opts.Tolerance * 1e3
	artSum := 0.0
	for i, bi := range t.basis {
		if bi >= t.artStart {
			artSum += xB.AtVec(i)
		}
	}
	if artSum > feasTol {
		return Solution{}, &InfeasibleError{Labels: t.violatedLabels(xB, feasTol)}
	}

	// Phase 2: original costs, artificials barred from re-entering.
	phase2 := make([]float64, t.nTotal)
	copy(phase2, p.Cost)
	for j := t.artStart; j < t.nTotal; j++ {
		banned[j] = true
	}
	if _, err := t.iterate(phase2, banned, opts, start, iters); err != nil {
		return Solution{}, err
	}

	xB, err = t.basicSolution()
	if err != nil {
		return Solution{}, err
	}
	x := make([]float64, n)
	for i, bi := range t.basis {
		if bi < n {
			v := xB.AtVec(i)
			if v < 0 && v > -feasTol {
				v = 0
			}
			x[bi] = v
		}
	}
	obj := 0.0
	for j := 0; j < n; j++ {
		x[j] += lower[j]
		obj += p.Cost[j] * x[j]
	}
	return Solution{X: x, Objective: obj, Iterations: iters}, nil
}

func expandBounds(p Problem, n int) ([]float64, []float64, error) {
	lower := make([]float64, n)
	upper := make([]float64, n)
	for j := range upper {
		upper[j] = math.Inf(1)
	}
	if p.Lower != nil {
		if len(p.Lower) != n {
			return nil, nil, fmt.Errorf("lower bounds length %d, want %d", len(p.Lower), n)
		}
		copy(lower, p.Lower)
	}
	if p.Upper != nil {
		if len(p.Upper) != n {
			return nil, nil, fmt.Errorf("upper bounds length %d, want %d", len(p.Upper), n)
		}
		copy(upper, p.Upper)
	}
	for j := 0; j < n; j++ {
		if lower[j] < 0 {
			return nil, nil, fmt.Errorf("variable %d has negative lower bound %g", j, lower[j])
		}
		if upper[j] < lower[j] {
			return nil, nil, fmt.Errorf("variable %d has upper bound %g below lower bound %g", j, upper[j], lower[j])
		}
	}
	return lower, upper, nil
}

func allInf(upper []float64) bool {
	for _, u := range upper {
		if !math.IsInf(u, 1) {
			return false
		}
	}
	return true
}

// solveUnconstrained handles the degenerate case of bound-only problems.
func solveUnconstrained(p Problem, lower []float64) (Solution, error) {
	x := make([]float64, len(p.Cost))
	obj := 0.0
	for j, c := range p.Cost {
		if c < 0 {
			return Solution{}, ErrUnbounded
		}
		x[j] = lower[j]
		obj += c * lower[j]
	}
	return Solution{X: x, Objective: obj}, nil
}

// tableau is the standard-form representation: variables shifted by their
// lower bounds, finite upper bounds turned into rows, slack and artificial
// columns appended.
type tableau struct {
	A        *mat.Dense
	b        *mat.VecDense
	basis    []int
	inBasis  []bool
	labels   []string
	m        int
	nStruct  int
	artStart int
	nTotal   int
}

type stdRow struct {
	coeffs []float64
	sense  Sense
	rhs    float64
	label  string
}

func newTableau(p Problem, lower, upper []float64) *tableau {
	n := len(p.Cost)
	rows := make([]stdRow, 0, len(p.Constraints)+n)
	for _, c := range p.Constraints {
		rhs := c.RHS
		for j, a := range c.Coeffs {
			rhs -= a * lower[j]
		}
		coeffs := make([]float64, n)
		copy(coeffs, c.Coeffs)
		rows = append(rows, stdRow{coeffs: coeffs, sense: c.Sense, rhs: rhs, label: c.Label})
	}
	for j := 0; j < n; j++ {
		if math.IsInf(upper[j], 1) {
			continue
		}
		coeffs := make([]float64, n)
		coeffs[j] = 1
		rows = append(rows, stdRow{coeffs: coeffs, sense: LE, rhs: upper[j] - lower[j]})
	}
	// Standard form needs non-negative right-hand sides.
	for i := range rows {
		if rows[i].rhs < 0 {
			for j := range rows[i].coeffs {
				rows[i].coeffs[j] = -rows[i].coeffs[j]
			}
			rows[i].rhs = -rows[i].rhs
			switch rows[i].sense {
			case LE:
				rows[i].sense = GE
			case GE:
				rows[i].sense = LE
			}
		}
	}

	m := len(rows)
	numSlack := 0
	numArt := 0
	for _, r := range rows {
		if r.sense == LE || r.sense == GE {
			numSlack++
		}
		if r.sense == GE || r.sense == EQ {
			numArt++
		}
	}
	nTotal := n + numSlack + numArt
	artStart := n + numSlack

	t := &tableau{
		A:        mat.NewDense(m, nTotal, nil),
		b:        mat.NewVecDense(m, nil),
		basis:    make([]int, m),
		inBasis:  make([]bool, nTotal),
		labels:   make([]string, m),
		m:        m,
		nStruct:  n,
		artStart: artStart,
		nTotal:   nTotal,
	}

	slack := n
	art := artStart
	for i, r := range rows {
		for j, a := range r.coeffs {
			t.A.Set(i, j, a)
		}
		t.b.SetVec(i, r.rhs)
		t.labels[i] = r.label
		switch r.sense {
		case LE:
			t.A.Set(i, slack, 1)
			t.basis[i] = slack
			slack++
		case GE:
			t.A.Set(i, slack, -1)
			slack++
			t.A.Set(i, art, 1)
			t.basis[i] = art
			art++
		case EQ:
			t.A.Set(i, art, 1)
			t.basis[i] = art
			art++
		}
	}
	for _, bi := range t.basis {
		t.inBasis[bi] = true
	}
	return t
}

// iterate runs revised simplex pivots until the given cost vector is
// optimal. Bland's rule picks both the entering and leaving variables, so
// the pivot sequence cannot cycle and is reproducible.
func (t *tableau) iterate(cost []float64, banned []bool, opts Options, start time.Time, used int) (int, error) {
	B := mat.NewDense(t.m, t.m, nil)
	cB := mat.NewVecDense(t.m, nil)
	xB := mat.NewVecDense(t.m, nil)
	y := mat.NewVecDense(t.m, nil)
	d := mat.NewVecDense(t.m, nil)
	aj := mat.NewVecDense(t.m, nil)

	for {
		if used >= opts.MaxIterations || time.Since(start) > opts.Timeout {
			return used, &TimeoutError{Iterations: used, Elapsed: time.Since(start)}
		}
		used++

		t.fillBasis(B, cB, cost)
		if err := xB.SolveVec(B, t.b); err != nil {
			return used, fmt.Errorf("basis matrix is singular: %w", err)
		}
		if err := y.SolveVec(B.T(), cB); err != nil {
			return used, fmt.Errorf("basis matrix is singular: %w", err)
		}

		entering := -1
		for j := 0; j < t.nTotal; j++ {
			if banned[j] || t.inBasis[j] {
				continue
			}
			t.column(j, aj)
			if cost[j]-mat.Dot(y, aj) < -opts.Tolerance {
				entering = j
				break
			}
		}
		if entering == -1 {
			return used, nil
		}

		t.column(entering, aj)
		if err := d.SolveVec(B, aj); err != nil {
			return used, fmt.Errorf("basis matrix is singular: %w", err)
		}

		leave := -1
		best := math.Inf(1)
		for i := 0; i < t.m; i++ {
			di := d.AtVec(i)
			if di <= opts.Tolerance {
				continue
			}
			ratio := xB.AtVec(i) / di
			switch {
			case ratio < best-opts.Tolerance:
				best = ratio
				leave = i
			case ratio <= best+opts.Tolerance && leave >= 0 && t.basis[i] < t.basis[leave]:
				leave = i
			}
		}
		if leave == -1 {
			return used, ErrUnbounded
		}

		t.inBasis[t.basis[leave]] = false
		t.basis[leave] = entering
		t.inBasis[entering] = true
	}
}

func (t *tableau) fillBasis(B *mat.Dense, cB *mat.VecDense, cost []float64) {
	for i, bi := range t.basis {
		for r := 0; r < t.m; r++ {
			B.Set(r, i, t.A.At(r, bi))
		}
		cB.SetVec(i, cost[bi])
	}
}

func (t *tableau) column(j int, dst *mat.VecDense) {
	for i := 0; i < t.m; i++ {
		dst.SetVec(i, t.A.At(i, j))
	}
}

func (t *tableau) basicSolution() (*mat.VecDense, error) {
	B := mat.NewDense(t.m, t.m, nil)
	cB := mat.NewVecDense(t.m, nil)
	t.fillBasis(B, cB, make([]float64, t.nTotal))
	xB := mat.NewVecDense(t.m, nil)
	if err := xB.SolveVec(B, t.b); err != nil {
		return nil, fmt.Errorf("basis matrix is singular: %w", err)
	}
	return xB, nil
}

// violatedLabels names the constraint rows whose artificial variables stay
// positive at the phase-1 optimum.
func (t *tableau) violatedLabels(xB *mat.VecDense, tol float64) []string {
	var labels []string
	seen := make(map[string]bool)
	for i, bi := range t.basis {
		if bi < t.artStart || xB.AtVec(i) <= tol {
			continue
		}
		label := t.labels[i]
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}
