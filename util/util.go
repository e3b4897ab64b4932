package util

import (
	"golang.org/x/exp/constraints"
)

// CeilDiv returns a/b rounded up. b must be positive and a non-negative.
func CeilDiv[T constraints.Integer](a, b T) T {
	return (a + b - 1) / b
}

// FloorDiv returns a/b rounded towards negative infinity. b must be positive.
func FloorDiv[T constraints.Signed](a, b T) T {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// FloorMod returns the remainder of FloorDiv, which is always in [0, b).
func FloorMod[T constraints.Signed](a, b T) T {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// Diff returns the absolute difference between a and b.
func Diff[T constraints.Integer](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}

// Map applies the given mapper function to each element of the given slice.
func Map[T any, U any](ts []T, mapper func(T) U) []U {
	var result = make([]U, len(ts))
	for i, v := range ts {
		result[i] = mapper(v)
	}
	return result
}
