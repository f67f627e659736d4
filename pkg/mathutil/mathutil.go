// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/adiorany3/ransumruminansia/pkg/constants"
)

// Round rounds a value to two decimals. Used for making logical comparisons
// on quantities expressed in kilograms.
func Round(val float64) float64 {
	return math.Round(val*100) / 100
}

// IsZero checks if a value is effectively zero (within pivot tolerance).
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.PivotTolerance
}

// WithinTolerance checks if two values are within a specified tolerance.
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// MeetsLowerBound reports whether realized satisfies a lower bound within a
// relative tolerance. The tolerance is scaled by the bound magnitude so that
// trace-mineral bounds (tiny absolute values) are judged on the same footing
// as protein bounds.
func MeetsLowerBound(realized, lower, relTolerance float64) bool {
	if lower <= 0 {
		return true
	}
	return realized >= lower*(1-relTolerance)
}

// MeetsUpperBound reports whether realized satisfies an upper bound within a
// relative tolerance. An infinite upper bound is always satisfied.
func MeetsUpperBound(realized, upper, relTolerance float64) bool {
	if math.IsInf(upper, 1) {
		return true
	}
	if upper <= 0 {
		return realized <= relTolerance
	}
	return realized <= upper*(1+relTolerance)
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
