// Package requirements resolves an animal description into daily nutrient
// requirement bounds. Resolution is a pure lookup: the same spec always
// yields the same bounds, and a combination missing from the table is an
// error, never a silent default.
package requirements

import (
	"fmt"
	"math"
	"sort"

	"github.com/adiorany3/ransumruminansia/internal/feed"
	"github.com/adiorany3/ransumruminansia/pkg/constants"
)

// Species of ruminant covered by the requirement tables.
type Species string

const (
	Cattle Species = "cattle"
	Goat   Species = "goat"
	Sheep  Species = "sheep"
)

// Purpose the animal is kept for.
type Purpose string

const (
	Meat  Purpose = "meat"
	Dairy Purpose = "dairy"
)

// Sex of the animal.
type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

// Stage is the physiological stage. Meat animals use Calf, Growing, Adult,
// Pregnant and Fattening; dairy animals use Calf, Heifer, PregnantHeifer,
// LactatingLow, LactatingHigh and Dry.
type Stage string

const (
	Calf           Stage = "calf"
	Growing        Stage = "growing"
	Adult          Stage = "adult"
	Pregnant       Stage = "pregnant"
	Fattening      Stage = "fattening"
	Heifer         Stage = "heifer"
	PregnantHeifer Stage = "pregnant-heifer"
	LactatingLow   Stage = "lactating-low"
	LactatingHigh  Stage = "lactating-high"
	Dry            Stage = "dry"
)

// Season flag used by the advisory layer.
type Season string

const (
	WetSeason Season = "wet"
	DrySeason Season = "dry"
)

// ParseSpecies maps a config string to a Species.
func ParseSpecies(s string) (Species, error) {
	switch Species(s) {
	case Cattle, Goat, Sheep:
		return Species(s), nil
	}
	return "", fmt.Errorf("unknown species %q", s)
}

// ParsePurpose maps a config string to a Purpose.
func ParsePurpose(s string) (Purpose, error) {
	switch Purpose(s) {
	case Meat, Dairy:
		return Purpose(s), nil
	}
	return "", fmt.Errorf("unknown purpose %q", s)
}

// ParseSex maps a config string to a Sex.
func ParseSex(s string) (Sex, error) {
	switch Sex(s) {
	case Male, Female:
		return Sex(s), nil
	}
	return "", fmt.Errorf("unknown sex %q", s)
}

// ParseStage maps a config string to a Stage.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case Calf, Growing, Adult, Pregnant, Fattening,
		Heifer, PregnantHeifer, LactatingLow, LactatingHigh, Dry:
		return Stage(s), nil
	}
	return "", fmt.Errorf("unknown stage %q", s)
}

// ParseSeason maps a config string to a Season.
func ParseSeason(s string) (Season, error) {
	switch Season(s) {
	case WetSeason, DrySeason:
		return Season(s), nil
	}
	return "", fmt.Errorf("unknown season %q", s)
}

// Spec describes one animal (or a uniform group) to resolve requirements
// for. MilkYieldKgPerDay applies to lactating dairy animals; DailyGainKg to
// growing and fattening meat animals.
type Spec struct {
	Species           Species
	Purpose           Purpose
	Sex               Sex
	Stage             Stage
	BodyWeightKg      float64
	MilkYieldKgPerDay float64
	DailyGainKg       float64
	HeadCount         int
	Season            Season
}

// Range is a per-nutrient requirement interval in absolute kilograms per
// day. Upper is +Inf when the nutrient has no tolerable ceiling.
type Range struct {
	Lower float64
	Upper float64
}

// Bounds is the resolved daily requirement: one Range per nutrient, plus
// the dry-matter intake estimate the concentrations were converted with.
type Bounds struct {
	ranges            map[feed.NutrientID]Range
	ids               []feed.NutrientID
	DryMatterIntakeKg float64
}

// NewBounds builds Bounds from explicit per-nutrient ranges. Resolve is the
// usual entry point; this exists for callers supplying their own targets.
func NewBounds(ranges map[feed.NutrientID]Range, dmi float64) *Bounds {
	ids := make([]feed.NutrientID, 0, len(ranges))
	for id := range ranges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return &Bounds{ranges: ranges, ids: ids, DryMatterIntakeKg: dmi}
}

// IDs returns the bounded nutrient identifiers in sorted order.
func (b *Bounds) IDs() []feed.NutrientID {
	out := make([]feed.NutrientID, len(b.ids))
	copy(out, b.ids)
	return out
}

// Range returns the requirement interval for a nutrient.
func (b *Bounds) Range(id feed.NutrientID) (Range, bool) {
	r, ok := b.ranges[id]
	return r, ok
}

// Minerals returns a new Bounds restricted to the mineral nutrients.
func (b *Bounds) Minerals() *Bounds {
	ranges := make(map[feed.NutrientID]Range)
	for _, id := range feed.MineralIDs() {
		if r, ok := b.ranges[id]; ok {
			ranges[id] = r
		}
	}
	return NewBounds(ranges, b.DryMatterIntakeKg)
}

// UnsupportedCategoryError reports a spec the requirement tables cannot
// resolve.
type UnsupportedCategoryError struct {
	Species Species
	Purpose Purpose
	Sex     Sex
	Stage   Stage
	Reason  string
}

func (e *UnsupportedCategoryError) Error() string {
	return fmt.Sprintf("unsupported animal category %s/%s/%s/%s: %s",
		e.Species, e.Purpose, e.Sex, e.Stage, e.Reason)
}

// femaleOnlyStages cannot be resolved for males.
var femaleOnlyStages = map[Stage]bool{
	Pregnant:       true,
	Heifer:         true,
	PregnantHeifer: true,
	LactatingLow:   true,
	LactatingHigh:  true,
	Dry:            true,
}

// DryMatterIntakeKg estimates daily dry-matter intake from body weight
// using the species and purpose intake rate.
func DryMatterIntakeKg(species Species, purpose Purpose, bodyWeightKg float64) (float64, error) {
	rates, ok := intakeRatePct[species]
	if !ok {
		return 0, fmt.Errorf("no intake rate for species %q", species)
	}
	rate, ok := rates[purpose]
	if !ok {
		return 0, fmt.Errorf("no intake rate for purpose %q", purpose)
	}
	return bodyWeightKg * rate / constants.PercentDivisor, nil
}

// Resolve turns a Spec into daily requirement Bounds. Macro and trace
// concentrations from the lookup table are converted to absolute daily
// masses via the dry-matter intake estimate; energy scales with metabolic
// body weight and production additives raise protein and energy for milk
// yield or daily gain.
func Resolve(spec Spec) (*Bounds, error) {
	if spec.BodyWeightKg <= 0 {
		return nil, fmt.Errorf("body weight must be positive, got %g", spec.BodyWeightKg)
	}
	if spec.MilkYieldKgPerDay < 0 {
		return nil, fmt.Errorf("milk yield cannot be negative, got %g", spec.MilkYieldKgPerDay)
	}
	if spec.DailyGainKg < 0 {
		return nil, fmt.Errorf("daily gain cannot be negative, got %g", spec.DailyGainKg)
	}
	if spec.Sex == Male && femaleOnlyStages[spec.Stage] {
		return nil, &UnsupportedCategoryError{
			Species: spec.Species, Purpose: spec.Purpose, Sex: spec.Sex, Stage: spec.Stage,
			Reason: "stage applies to females only",
		}
	}

	conc, ok := requirementTable[tableKey{spec.Species, spec.Purpose, spec.Stage}]
	if !ok {
		return nil, &UnsupportedCategoryError{
			Species: spec.Species, Purpose: spec.Purpose, Sex: spec.Sex, Stage: spec.Stage,
			Reason: "no requirement table entry",
		}
	}

	dmi, err := DryMatterIntakeKg(spec.Species, spec.Purpose, spec.BodyWeightKg)
	if err != nil {
		return nil, err
	}

	// Energy and protein scale with metabolic body weight relative to the
	// tabulated reference animal; the other nutrients follow intake.
	refWeight := referenceWeightKg[spec.Species]
	refDMI := refWeight * dmi / spec.BodyWeightKg
	metabolicScale := math.Pow(spec.BodyWeightKg/refWeight, 0.75)

	proteinKg := conc.ProteinPct / constants.PercentDivisor * refDMI * metabolicScale
	tdnKg := conc.TDNPct / constants.PercentDivisor * refDMI * metabolicScale

	if lactating(spec.Stage) && spec.MilkYieldKgPerDay > 0 {
		add := milkAdditives[spec.Species]
		proteinKg += add.ProteinKgPerL * spec.MilkYieldKgPerDay
		tdnKg += add.TDNKgPerL * spec.MilkYieldKgPerDay
	}
	if gaining(spec.Stage) && spec.DailyGainKg > 0 {
		proteinKg += gainProteinKgPerKg * spec.DailyGainKg
		tdnKg += gainTDNKgPerKg * spec.DailyGainKg
	}

	ceilings := toxicityCeilingsPPM[spec.Species]
	inf := math.Inf(1)
	ranges := map[feed.NutrientID]Range{
		feed.Protein:    {Lower: proteinKg, Upper: inf},
		feed.TDN:        {Lower: tdnKg, Upper: inf},
		feed.Calcium:    {Lower: conc.CaPct / constants.PercentDivisor * dmi, Upper: inf},
		feed.Phosphorus: {Lower: conc.PPct / constants.PercentDivisor * dmi, Upper: inf},
		feed.Magnesium:  {Lower: conc.MgPct / constants.PercentDivisor * dmi, Upper: inf},
		feed.Iron:       {Lower: conc.FePPM / constants.PPMDivisor * dmi, Upper: ceilings.Fe / constants.PPMDivisor * dmi},
		feed.Copper:     {Lower: conc.CuPPM / constants.PPMDivisor * dmi, Upper: ceilings.Cu / constants.PPMDivisor * dmi},
		feed.Zinc:       {Lower: conc.ZnPPM / constants.PPMDivisor * dmi, Upper: ceilings.Zn / constants.PPMDivisor * dmi},
	}
	return NewBounds(ranges, dmi), nil
}

func lactating(s Stage) bool {
	return s == LactatingLow || s == LactatingHigh
}

func gaining(s Stage) bool {
	return s == Growing || s == Fattening
}
