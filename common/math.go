package common

import "math"

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Normalize returns the unit vector of (x, y), or zero for a zero vector.
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// Rotate rotates (x, y) by angle radians.
func Rotate(x, y, angle float64) (float64, float64) {
	s, c := math.Sincos(angle)
	return x*c - y*s, x*s + y*c
}
