package gcode

import "math"

// DefaultDensityGPerCm3 is the density of generic PLA, used when no
// material preset is selected.
const DefaultDensityGPerCm3 = 1.24

// DefaultDiameterMm is the nominal filament diameter of most consumer
// printers.
const DefaultDiameterMm = 1.75

// ResolveWeight decides the usable filament weight in grams.
//
// An extracted weight wins outright. Without one, a positive extracted
// length is converted to mass through the filament's cylindrical volume:
// pi * (diameter/2)^2 * length in mm^3, divided by 1000 to cm^3, times the
// material density in g/cm^3. With neither, the previous weight survives
// untouched so a value the user already entered is never clobbered.
func ResolveWeight(ex Extraction, previous, diameterMm, densityGPerCm3 float64) float64 {
	if ex.FilamentWeightG != nil && *ex.FilamentWeightG > 0 {
		return *ex.FilamentWeightG
	}
	if ex.FilamentLengthMm != nil && *ex.FilamentLengthMm > 0 {
		radius := diameterMm / 2
		volumeCm3 := math.Pi * radius * radius * *ex.FilamentLengthMm / 1000
		return volumeCm3 * densityGPerCm3
	}
	return previous
}

// SplitTime decomposes the extracted print time into hour, minute and
// second components. An absent time yields all zeroes, which replaces any
// previously entered components.
func SplitTime(ex Extraction) (hours, minutes, seconds int) {
	if ex.PrintTimeSeconds == nil {
		return 0, 0, 0
	}
	total := *ex.PrintTimeSeconds
	return total / 3600, (total % 3600) / 60, total % 60
}
