package requirements

// concentrations holds one requirement table row: macro nutrients as percent
// of dry matter, trace minerals as ppm of dry matter.
type concentrations struct {
	ProteinPct float64
	TDNPct     float64
	CaPct      float64
	PPct       float64
	MgPct      float64
	FePPM      float64
	CuPPM      float64
	ZnPPM      float64
}

type tableKey struct {
	Species Species
	Purpose Purpose
	Stage   Stage
}

// requirementTable is the fixed lookup table keyed by species, purpose and
// physiological stage. Values follow the Indonesian ruminant feeding
// standards the application has always shipped with.
var requirementTable = map[tableKey]concentrations{
	// Beef cattle.
	{Cattle, Meat, Calf}:      {18.0, 70.0, 0.70, 0.45, 0.10, 50, 10, 40},
	{Cattle, Meat, Growing}:   {12.5, 65.0, 0.55, 0.35, 0.10, 50, 10, 40},
	{Cattle, Meat, Adult}:     {10.5, 60.0, 0.35, 0.25, 0.10, 50, 10, 40},
	{Cattle, Meat, Pregnant}:  {11.0, 65.0, 0.45, 0.30, 0.12, 50, 10, 40},
	{Cattle, Meat, Fattening}: {14.0, 70.0, 0.50, 0.30, 0.10, 50, 10, 40},

	// Dairy cattle.
	{Cattle, Dairy, Calf}:           {18.0, 72.0, 0.70, 0.45, 0.10, 50, 10, 40},
	{Cattle, Dairy, Heifer}:         {15.0, 65.0, 0.60, 0.40, 0.10, 50, 10, 40},
	{Cattle, Dairy, PregnantHeifer}: {12.0, 65.0, 0.60, 0.40, 0.16, 50, 10, 40},
	{Cattle, Dairy, LactatingLow}:   {14.0, 65.0, 0.60, 0.40, 0.20, 50, 10, 40},
	{Cattle, Dairy, LactatingHigh}:  {16.0, 75.0, 0.80, 0.50, 0.25, 50, 10, 40},
	{Cattle, Dairy, Dry}:            {12.0, 60.0, 0.45, 0.35, 0.16, 50, 10, 40},

	// Meat goats.
	{Goat, Meat, Calf}:      {16.0, 68.0, 0.60, 0.40, 0.10, 40, 10, 40},
	{Goat, Meat, Growing}:   {14.0, 65.0, 0.45, 0.35, 0.10, 40, 10, 40},
	{Goat, Meat, Adult}:     {12.0, 60.0, 0.35, 0.25, 0.10, 40, 8, 40},
	{Goat, Meat, Pregnant}:  {14.0, 65.0, 0.50, 0.35, 0.12, 50, 10, 40},
	{Goat, Meat, Fattening}: {16.0, 70.0, 0.50, 0.30, 0.10, 40, 10, 40},

	// Dairy goats.
	{Goat, Dairy, Calf}:           {18.0, 70.0, 0.70, 0.45, 0.10, 45, 10, 40},
	{Goat, Dairy, Heifer}:         {14.0, 65.0, 0.55, 0.40, 0.10, 45, 10, 40},
	{Goat, Dairy, PregnantHeifer}: {12.0, 65.0, 0.60, 0.40, 0.16, 45, 10, 40},
	{Goat, Dairy, LactatingLow}:   {16.0, 65.0, 0.75, 0.45, 0.20, 45, 10, 40},
	{Goat, Dairy, LactatingHigh}:  {18.0, 75.0, 0.90, 0.55, 0.25, 45, 10, 40},
	{Goat, Dairy, Dry}:            {12.0, 60.0, 0.45, 0.35, 0.16, 45, 10, 40},

	// Meat sheep.
	{Sheep, Meat, Calf}:      {16.0, 68.0, 0.60, 0.40, 0.10, 40, 7, 35},
	{Sheep, Meat, Growing}:   {14.0, 65.0, 0.45, 0.35, 0.10, 40, 7, 35},
	{Sheep, Meat, Adult}:     {12.0, 60.0, 0.35, 0.25, 0.10, 40, 7, 35},
	{Sheep, Meat, Pregnant}:  {14.0, 65.0, 0.50, 0.35, 0.12, 50, 7, 35},
	{Sheep, Meat, Fattening}: {16.0, 70.0, 0.50, 0.30, 0.10, 40, 7, 35},

	// Dairy sheep.
	{Sheep, Dairy, Calf}:           {18.0, 70.0, 0.70, 0.45, 0.10, 45, 7, 35},
	{Sheep, Dairy, Heifer}:         {14.0, 65.0, 0.55, 0.40, 0.10, 45, 7, 35},
	{Sheep, Dairy, PregnantHeifer}: {12.0, 65.0, 0.60, 0.40, 0.16, 45, 7, 35},
	{Sheep, Dairy, LactatingLow}:   {16.0, 65.0, 0.75, 0.45, 0.20, 45, 7, 35},
	{Sheep, Dairy, LactatingHigh}:  {18.0, 75.0, 0.90, 0.55, 0.25, 45, 7, 35},
	{Sheep, Dairy, Dry}:            {12.0, 60.0, 0.45, 0.35, 0.16, 45, 7, 35},
}

// toxicityCeilingsPPM gives the maximum tolerable dietary concentration per
// trace mineral, in ppm of dry matter. Copper tolerance is strongly species
// dependent; sheep are the most sensitive.
var toxicityCeilingsPPM = map[Species]struct {
	Fe float64
	Cu float64
	Zn float64
}{
	Cattle: {Fe: 1000, Cu: 100, Zn: 500},
	Goat:   {Fe: 1000, Cu: 80, Zn: 500},
	Sheep:  {Fe: 1000, Cu: 25, Zn: 500},
}

// intakeRatePct gives the dry-matter intake estimate as percent of body
// weight per day.
var intakeRatePct = map[Species]map[Purpose]float64{
	Cattle: {Meat: 2.2, Dairy: 2.5},
	Goat:   {Meat: 2.5, Dairy: 3.0},
	Sheep:  {Meat: 2.5, Dairy: 3.0},
}

// referenceWeightKg is the adult body weight the requirement concentrations
// were tabulated at. Energy requirements scale metabolically around it.
var referenceWeightKg = map[Species]float64{
	Cattle: 350,
	Goat:   40,
	Sheep:  45,
}

// Per-liter milk production additives: kg of crude protein and kg of TDN
// needed on top of maintenance. The TDN figures come from net-energy values
// of 5.5 MJ/L (cattle) and 4.5 MJ/L (small ruminants) at 18.4 MJ per kg TDN.
var milkAdditives = map[Species]struct {
	ProteinKgPerL float64
	TDNKgPerL     float64
}{
	Cattle: {ProteinKgPerL: 0.090, TDNKgPerL: 0.299},
	Goat:   {ProteinKgPerL: 0.060, TDNKgPerL: 0.245},
	Sheep:  {ProteinKgPerL: 0.060, TDNKgPerL: 0.245},
}

// Per-kg daily-gain additives for growing and fattening animals.
const (
	gainProteinKgPerKg = 0.28
	gainTDNKgPerKg     = 1.30
)
