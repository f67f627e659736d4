// Package constants provides shared constants for the ransum ruminansia
// application.
package constants

// Unit conversion constants
const (
	// PercentDivisor converts a percent value to a mass fraction.
	PercentDivisor = 100.0

	// PPMDivisor converts a parts-per-million value to a mass fraction.
	PPMDivisor = 1_000_000.0

	// PPBDivisor converts a parts-per-billion value to a mass fraction.
	PPBDivisor = 1_000_000_000.0

	// GramsPerKilogram converts kilograms to grams for micro-mineral display.
	GramsPerKilogram = 1000.0
)

// Solver constants
const (
	// DefaultMaxIterations bounds the simplex iteration count per solve.
	DefaultMaxIterations = 10000

	// DefaultSolveTimeoutSeconds bounds the wall-clock time per solve.
	DefaultSolveTimeoutSeconds = 10.0

	// PivotTolerance is the numerical tolerance used inside the simplex
	// pivoting loop.
	PivotTolerance = 1e-9

	// AcceptanceTolerance is the relative tolerance used when re-checking an
	// optimized mixture against its requirement bounds.
	AcceptanceTolerance = 1e-6
)

// Currency constants
const (
	// CostDecimalPlaces is the precision for reported costs (whole Rupiah).
	CostDecimalPlaces = 0

	// CostTolerance is the tolerance for cost comparisons.
	CostTolerance = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Application mode constants
const (
	// ModeManual evaluates a user-authored mixture.
	ModeManual = "manual"

	// ModeOptimize solves the least-cost ration.
	ModeOptimize = "optimize"

	// ModeMinerals analyzes mineral gaps and plans supplements.
	ModeMinerals = "minerals"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)
