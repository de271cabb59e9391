package weather

import "math"

// ToCelsius converts a Fahrenheit temperature to integer Celsius, rounding
// half away from zero. Every normalized temperature field stores both scales,
// so the conversion runs once per field at normalization time.
func ToCelsius(fahrenheit float64) int {
	return int(math.Round((fahrenheit - 32) * 5 / 9))
}

// RoundTemp rounds a raw upstream temperature to the integer the normalized
// records carry, with the same half-away-from-zero rule as ToCelsius.
func RoundTemp(v float64) int {
	return int(math.Round(v))
}

// CelsiusFor derives the Celsius counterpart of a raw upstream temperature
// from its stored rounded value, never from the raw float: the secondary
// scale is always a function of the primary field the record carries.
func CelsiusFor(v float64) int {
	return ToCelsius(float64(RoundTemp(v)))
}
