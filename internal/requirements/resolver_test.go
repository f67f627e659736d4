package requirements

import (
	"errors"
	"math"
	"testing"

	"github.com/adiorany3/ransumruminansia/internal/feed"
)

func fatteningSteer() Spec {
	return Spec{
		Species:      Cattle,
		Purpose:      Meat,
		Sex:          Male,
		Stage:        Fattening,
		BodyWeightKg: 350,
		HeadCount:    1,
		Season:       DrySeason,
	}
}

func TestResolveDeterministic(t *testing.T) {
	spec := fatteningSteer()
	first, err := Resolve(spec)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := Resolve(spec)
	if err != nil {
		t.Fatalf("Resolve() error on repeat = %v", err)
	}
	if first.DryMatterIntakeKg != second.DryMatterIntakeKg {
		t.Errorf("intake differs between identical resolutions")
	}
	for _, id := range first.IDs() {
		a, _ := first.Range(id)
		b, _ := second.Range(id)
		if a != b {
			t.Errorf("%s: range differs between identical resolutions: %+v vs %+v", id, a, b)
		}
	}
}

func TestResolveReferenceAnimal(t *testing.T) {
	// At the tabulated reference weight the metabolic scaling is exactly 1,
	// so the bounds are just concentration times intake.
	bounds, err := Resolve(fatteningSteer())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	wantDMI := 350 * 2.2 / 100
	if math.Abs(bounds.DryMatterIntakeKg-wantDMI) > 1e-9 {
		t.Errorf("DryMatterIntakeKg = %g, want %g", bounds.DryMatterIntakeKg, wantDMI)
	}

	tests := []struct {
		id        feed.NutrientID
		wantLower float64
	}{
		{feed.Protein, 0.14 * wantDMI},
		{feed.TDN, 0.70 * wantDMI},
		{feed.Calcium, 0.0050 * wantDMI},
		{feed.Phosphorus, 0.0030 * wantDMI},
		{feed.Magnesium, 0.0010 * wantDMI},
		{feed.Iron, 50e-6 * wantDMI},
		{feed.Copper, 10e-6 * wantDMI},
		{feed.Zinc, 40e-6 * wantDMI},
	}
	for _, tt := range tests {
		r, ok := bounds.Range(tt.id)
		if !ok {
			t.Fatalf("no range for %s", tt.id)
		}
		if math.Abs(r.Lower-tt.wantLower) > 1e-9 {
			t.Errorf("%s lower = %g, want %g", tt.id, r.Lower, tt.wantLower)
		}
	}

	if r, _ := bounds.Range(feed.Protein); !math.IsInf(r.Upper, 1) {
		t.Errorf("protein upper = %g, want +Inf", r.Upper)
	}
	if r, _ := bounds.Range(feed.Copper); math.IsInf(r.Upper, 1) {
		t.Error("copper upper bound missing, want toxicity ceiling")
	}
}

func TestResolveMetabolicScaling(t *testing.T) {
	light := fatteningSteer()
	light.BodyWeightKg = 250
	heavy := fatteningSteer()
	heavy.BodyWeightKg = 450

	lb, err := Resolve(light)
	if err != nil {
		t.Fatalf("Resolve(light) error = %v", err)
	}
	hb, err := Resolve(heavy)
	if err != nil {
		t.Fatalf("Resolve(heavy) error = %v", err)
	}

	lp, _ := lb.Range(feed.Protein)
	hp, _ := hb.Range(feed.Protein)
	if hp.Lower <= lp.Lower {
		t.Errorf("protein requirement did not grow with body weight: %g vs %g", hp.Lower, lp.Lower)
	}
	// Metabolic scaling grows slower than intake, so requirement per unit
	// weight falls as the animal grows.
	if hp.Lower/450 >= lp.Lower/250 {
		t.Errorf("protein per kg body weight should fall with weight: %g vs %g", hp.Lower/450, lp.Lower/250)
	}
}

func TestResolveMilkAdditive(t *testing.T) {
	base := Spec{
		Species:      Cattle,
		Purpose:      Dairy,
		Sex:          Female,
		Stage:        LactatingHigh,
		BodyWeightKg: 400,
	}
	producing := base
	producing.MilkYieldKgPerDay = 20

	dry, err := Resolve(base)
	if err != nil {
		t.Fatalf("Resolve(base) error = %v", err)
	}
	wet, err := Resolve(producing)
	if err != nil {
		t.Fatalf("Resolve(producing) error = %v", err)
	}

	dp, _ := dry.Range(feed.Protein)
	wp, _ := wet.Range(feed.Protein)
	wantExtra := 0.090 * 20
	if math.Abs((wp.Lower-dp.Lower)-wantExtra) > 1e-9 {
		t.Errorf("milk protein additive = %g, want %g", wp.Lower-dp.Lower, wantExtra)
	}

	dt, _ := dry.Range(feed.TDN)
	wt, _ := wet.Range(feed.TDN)
	if wt.Lower <= dt.Lower {
		t.Error("milk yield did not raise the energy requirement")
	}

	// Minerals follow intake, not production.
	dc, _ := dry.Range(feed.Calcium)
	wc, _ := wet.Range(feed.Calcium)
	if dc != wc {
		t.Errorf("calcium range changed with milk yield: %+v vs %+v", dc, wc)
	}
}

func TestResolveGainAdditive(t *testing.T) {
	maintenance := fatteningSteer()
	gaining := fatteningSteer()
	gaining.DailyGainKg = 1.0

	mb, err := Resolve(maintenance)
	if err != nil {
		t.Fatalf("Resolve(maintenance) error = %v", err)
	}
	gb, err := Resolve(gaining)
	if err != nil {
		t.Fatalf("Resolve(gaining) error = %v", err)
	}

	mp, _ := mb.Range(feed.Protein)
	gp, _ := gb.Range(feed.Protein)
	if math.Abs((gp.Lower-mp.Lower)-0.28) > 1e-9 {
		t.Errorf("gain protein additive = %g, want 0.28", gp.Lower-mp.Lower)
	}
}

func TestResolveCopperCeilingBySpecies(t *testing.T) {
	cattle := Spec{Species: Cattle, Purpose: Meat, Sex: Female, Stage: Adult, BodyWeightKg: 350}
	sheep := Spec{Species: Sheep, Purpose: Meat, Sex: Female, Stage: Adult, BodyWeightKg: 45}

	cb, err := Resolve(cattle)
	if err != nil {
		t.Fatalf("Resolve(cattle) error = %v", err)
	}
	sb, err := Resolve(sheep)
	if err != nil {
		t.Fatalf("Resolve(sheep) error = %v", err)
	}

	cc, _ := cb.Range(feed.Copper)
	sc, _ := sb.Range(feed.Copper)
	// Compare as dietary concentrations: sheep tolerate far less copper.
	if sc.Upper/sb.DryMatterIntakeKg >= cc.Upper/cb.DryMatterIntakeKg {
		t.Errorf("sheep copper ceiling concentration %g not below cattle %g",
			sc.Upper/sb.DryMatterIntakeKg, cc.Upper/cb.DryMatterIntakeKg)
	}
}

func TestResolveUnsupportedCategory(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"male lactating", Spec{Species: Cattle, Purpose: Dairy, Sex: Male, Stage: LactatingHigh, BodyWeightKg: 400}},
		{"male pregnant", Spec{Species: Goat, Purpose: Meat, Sex: Male, Stage: Pregnant, BodyWeightKg: 40}},
		{"meat heifer", Spec{Species: Cattle, Purpose: Meat, Sex: Female, Stage: Heifer, BodyWeightKg: 300}},
		{"dairy fattening", Spec{Species: Cattle, Purpose: Dairy, Sex: Female, Stage: Fattening, BodyWeightKg: 400}},
		{"unknown species", Spec{Species: "buffalo", Purpose: Meat, Sex: Male, Stage: Adult, BodyWeightKg: 500}},
	}
	for _, tt := range tests {
		_, err := Resolve(tt.spec)
		if err == nil {
			t.Errorf("%s: Resolve() succeeded, want UnsupportedCategoryError", tt.name)
			continue
		}
		var uce *UnsupportedCategoryError
		if !errors.As(err, &uce) {
			t.Errorf("%s: error = %v, want UnsupportedCategoryError", tt.name, err)
		}
	}
}

func TestResolveRejectsInvalidNumbers(t *testing.T) {
	spec := fatteningSteer()
	spec.BodyWeightKg = 0
	if _, err := Resolve(spec); err == nil {
		t.Error("Resolve() accepted zero body weight")
	}

	spec = fatteningSteer()
	spec.DailyGainKg = -0.5
	if _, err := Resolve(spec); err == nil {
		t.Error("Resolve() accepted negative daily gain")
	}
}

func TestMineralsRestriction(t *testing.T) {
	bounds, err := Resolve(fatteningSteer())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	m := bounds.Minerals()
	for _, id := range m.IDs() {
		if id == feed.Protein || id == feed.TDN {
			t.Errorf("mineral bounds include %s", id)
		}
	}
	if len(m.IDs()) != 6 {
		t.Errorf("mineral bounds cover %d nutrients, want 6", len(m.IDs()))
	}
	if m.DryMatterIntakeKg != bounds.DryMatterIntakeKg {
		t.Error("mineral bounds lost the intake estimate")
	}
}
