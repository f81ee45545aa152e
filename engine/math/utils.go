package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Lerp interpolates between a and b by t. t is not clamped, so values outside
// [0, 1] extrapolate along the same line.
func Lerp[T constraints.Float](a, b, t T) T {
	return a*(1-t) + b*t
}
