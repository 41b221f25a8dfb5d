package utils

import "golang.org/x/exp/constraints"

// Clamp bounds v to [lo, hi].
func Clamp[T constraints.Float | constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
