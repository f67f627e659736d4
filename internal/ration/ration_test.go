package ration

import (
	"errors"
	"math"
	"testing"

	"github.com/adiorany3/ransumruminansia/internal/feed"
	"github.com/adiorany3/ransumruminansia/internal/requirements"
	"github.com/adiorany3/ransumruminansia/pkg/testutil"
)

func testTable(t *testing.T) *feed.Table {
	t.Helper()
	return testutil.BuildTable(t,
		feed.Ingredient{
			Name:     "grass",
			Category: feed.Forage,
			Nutrients: map[feed.NutrientID]float64{
				feed.Protein: 10.2, feed.TDN: 55.0,
				feed.Calcium: 0.5, feed.Phosphorus: 0.3, feed.Magnesium: 0.2,
				feed.Iron: 250, feed.Copper: 10, feed.Zinc: 40,
			},
			CostPerKg: 1000,
		},
		feed.Ingredient{
			Name:     "soybean meal",
			Category: feed.Concentrate,
			Nutrients: map[feed.NutrientID]float64{
				feed.Protein: 42.0, feed.TDN: 75.0,
				feed.Calcium: 0.3, feed.Phosphorus: 0.6, feed.Magnesium: 0.3,
				feed.Iron: 120, feed.Copper: 15, feed.Zinc: 50,
			},
			CostPerKg: 8000,
		},
	)
}

func TestEvaluateTotals(t *testing.T) {
	table := testTable(t)
	mix := NewMixture(map[string]float64{"grass": 5, "soybean meal": 1})

	eval, err := Evaluate(mix, table, nil)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if math.Abs(eval.TotalMassKg-6) > 1e-9 {
		t.Errorf("TotalMassKg = %g, want 6", eval.TotalMassKg)
	}
	if math.Abs(eval.TotalCost-13000) > 1e-9 {
		t.Errorf("TotalCost = %g, want 13000", eval.TotalCost)
	}
	if !eval.Cost.Equal(eval.Cost.Round(0)) {
		t.Errorf("Cost = %s, want a whole Rupiah amount", eval.Cost)
	}

	// 5 kg at 10.2% plus 1 kg at 42% protein.
	wantProtein := 5*0.102 + 1*0.42
	if math.Abs(eval.Nutrients[feed.Protein]-wantProtein) > 1e-9 {
		t.Errorf("protein = %g, want %g", eval.Nutrients[feed.Protein], wantProtein)
	}
	// Iron is tabulated in ppm.
	wantIron := 5*250e-6 + 1*120e-6
	if math.Abs(eval.Nutrients[feed.Iron]-wantIron) > 1e-12 {
		t.Errorf("iron = %g, want %g", eval.Nutrients[feed.Iron], wantIron)
	}
}

func TestEvaluateLinearity(t *testing.T) {
	table := testTable(t)
	mix := NewMixture(map[string]float64{"grass": 3, "soybean meal": 2})

	eval, err := Evaluate(mix, table, nil)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	doubled, err := Evaluate(mix.Scale(2), table, nil)
	if err != nil {
		t.Fatalf("Evaluate(scaled) error = %v", err)
	}
	if math.Abs(doubled.TotalCost-2*eval.TotalCost) > 1e-6 {
		t.Errorf("scaling: cost %g, want %g", doubled.TotalCost, 2*eval.TotalCost)
	}
	for id, v := range eval.Nutrients {
		if math.Abs(doubled.Nutrients[id]-2*v) > 1e-9 {
			t.Errorf("scaling: %s = %g, want %g", id, doubled.Nutrients[id], 2*v)
		}
	}

	a := NewMixture(map[string]float64{"grass": 3})
	b := NewMixture(map[string]float64{"grass": 1, "soybean meal": 2})
	sum := NewMixture(map[string]float64{"grass": 4, "soybean meal": 2})

	evalA, err := Evaluate(a, table, nil)
	if err != nil {
		t.Fatalf("Evaluate(a) error = %v", err)
	}
	evalB, err := Evaluate(b, table, nil)
	if err != nil {
		t.Fatalf("Evaluate(b) error = %v", err)
	}
	evalSum, err := Evaluate(sum, table, nil)
	if err != nil {
		t.Fatalf("Evaluate(sum) error = %v", err)
	}
	for id := range evalSum.Nutrients {
		got := evalSum.Nutrients[id]
		want := evalA.Nutrients[id] + evalB.Nutrients[id]
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("additivity: %s = %g, want %g", id, got, want)
		}
	}
}

func TestEvaluateSufficiency(t *testing.T) {
	table := testTable(t)
	bounds := requirements.NewBounds(map[feed.NutrientID]requirements.Range{
		feed.Protein: {Lower: 1.0, Upper: math.Inf(1)},
		feed.Copper:  {Lower: 50e-6, Upper: 100e-6},
	}, 7.7)

	mix := NewMixture(map[string]float64{"grass": 5})
	eval, err := Evaluate(mix, table, bounds)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	s := eval.Sufficiency[feed.Protein]
	if !s.HasRatio {
		t.Fatal("protein sufficiency ratio missing")
	}
	if math.Abs(s.Ratio-0.51) > 1e-9 {
		t.Errorf("protein ratio = %g, want 0.51", s.Ratio)
	}
	if s.HasUpperRatio {
		t.Error("protein has an upper ratio against an infinite bound")
	}

	c := eval.Sufficiency[feed.Copper]
	if !c.HasUpperRatio {
		t.Fatal("copper upper ratio missing for a finite ceiling")
	}
	if !c.ExceedsUpper {
		// 5 kg at 10 ppm = 50e-6 kg, exactly at the lower bound and well
		// under the ceiling; flip the mixture to check the flag.
		big, err := Evaluate(mix.Scale(3), table, bounds)
		if err != nil {
			t.Fatalf("Evaluate(scaled) error = %v", err)
		}
		if !big.Sufficiency[feed.Copper].ExceedsUpper {
			t.Error("copper over the ceiling not flagged")
		}
	}
}

func TestEvaluateRejectsBadMixtures(t *testing.T) {
	table := testTable(t)
	tests := []struct {
		name string
		mix  Mixture
	}{
		{"negative quantity", NewMixture(map[string]float64{"grass": -1})},
		{"unknown ingredient", NewMixture(map[string]float64{"sawdust": 1})},
	}
	for _, tt := range tests {
		_, err := Evaluate(tt.mix, table, nil)
		if err == nil {
			t.Errorf("%s: Evaluate() succeeded, want InvalidMixtureError", tt.name)
			continue
		}
		var ime *InvalidMixtureError
		if !errors.As(err, &ime) {
			t.Errorf("%s: error = %v, want InvalidMixtureError", tt.name, err)
		}
	}
}

func TestEvaluateEnforcesInclusionBounds(t *testing.T) {
	table := testutil.BuildTable(t,
		feed.Ingredient{
			Name:      "capped",
			Category:  feed.Concentrate,
			Nutrients: map[feed.NutrientID]float64{feed.Protein: 12},
			CostPerKg: 3500,
			MaxKg:     testutil.FloatPtr(2),
		},
	)
	_, err := Evaluate(NewMixture(map[string]float64{"capped": 3}), table, nil)
	var ime *InvalidMixtureError
	if !errors.As(err, &ime) {
		t.Fatalf("error = %v, want InvalidMixtureError for breached maximum", err)
	}
}

func TestEvaluateEmptyMixture(t *testing.T) {
	table := testTable(t)
	eval, err := Evaluate(NewMixture(nil), table, nil)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if eval.TotalMassKg != 0 || eval.TotalCost != 0 {
		t.Errorf("empty mixture: mass %g cost %g, want zeros", eval.TotalMassKg, eval.TotalCost)
	}
}
