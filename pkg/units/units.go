// Package units handles the measurement units used in feed composition
// tables: percent for macro nutrients, ppm for trace minerals, ppb for
// mycotoxins. Internally the engine works in mass fractions (kg of nutrient
// per kg of feed) so that every LP coefficient shares one scale.
package units

import (
	"fmt"

	"github.com/adiorany3/ransumruminansia/pkg/constants"
)

// Unit identifies the unit a raw table value is expressed in.
type Unit string

const (
	Percent Unit = "percent"
	PPM     Unit = "ppm"
	PPB     Unit = "ppb"
)

// Parse maps a table column suffix to a Unit.
func Parse(s string) (Unit, error) {
	switch Unit(s) {
	case Percent, PPM, PPB:
		return Unit(s), nil
	}
	return "", fmt.Errorf("unknown unit %q", s)
}

// Fraction converts a value in the given unit to a mass fraction.
func Fraction(u Unit, value float64) float64 {
	switch u {
	case Percent:
		return value / constants.PercentDivisor
	case PPM:
		return value / constants.PPMDivisor
	case PPB:
		return value / constants.PPBDivisor
	}
	return value
}

// FromFraction converts a mass fraction back to the given display unit.
func FromFraction(u Unit, fraction float64) float64 {
	switch u {
	case Percent:
		return fraction * constants.PercentDivisor
	case PPM:
		return fraction * constants.PPMDivisor
	case PPB:
		return fraction * constants.PPBDivisor
	}
	return fraction
}
