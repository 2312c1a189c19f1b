package core

import "math"

// LinearToDB converts an amplitude ratio to dB (20·log10). Zero maps to
// -Inf, negative input to NaN.
func LinearToDB(amp float64) float64 {
	switch {
	case amp < 0:
		return math.NaN()
	case amp == 0:
		return math.Inf(-1)
	}

	return 20 * math.Log10(amp)
}

// LinearPowerToDB converts a power ratio to dB (10·log10). Zero maps to
// -Inf, negative input to NaN.
func LinearPowerToDB(pow float64) float64 {
	switch {
	case pow < 0:
		return math.NaN()
	case pow == 0:
		return math.Inf(-1)
	}

	return 10 * math.Log10(pow)
}

// DBPowerToLinear converts dB to a power ratio.
func DBPowerToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// Clamp limits x to [lo, hi]. Swapped bounds are reordered.
func Clamp(x, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	return math.Min(math.Max(x, lo), hi)
}
