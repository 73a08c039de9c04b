package units

import "math"

// Percentage converts a raw level reading on the given scale to a whole
// percentage in [0, 100]. A non-positive scale yields 0.
func Percentage(level, scale float64) int {
	if scale <= 0 || math.IsNaN(level) || math.IsNaN(scale) {
		return 0
	}
	return Clamp(int(math.Round(level/scale*100)), 0, 100)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CelsiusToFahrenheit converts c to Fahrenheit, rounded up to one decimal.
func CelsiusToFahrenheit(c float64) float64 {
	f := 9.0/5.0*c + 32
	return math.Ceil(f*10) / 10
}
