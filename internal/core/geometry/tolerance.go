// Package geometry holds the 2D and 3D primitives shared by the sight engine:
// points, shapes, boolean clipping and the tolerance-aware comparisons that every
// boundary decision goes through.
package geometry

import "math"

// Epsilon is the tolerance used for all geometric and threshold comparisons.
const Epsilon = 1e-8

// AlmostEqual reports whether a and b are within Epsilon of each other.
func AlmostEqual(a, b float64) bool {
	return AlmostEqualEps(a, b, Epsilon)
}

// AlmostEqualEps reports whether a and b are within eps of each other.
// Equal infinities compare equal.
func AlmostEqualEps(a, b, eps float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= eps
}

// AtLeast reports a >= b, treating almost-equal values as equal.
func AtLeast(a, b float64) bool {
	return a > b || AlmostEqual(a, b)
}

// AtMost reports a <= b, treating almost-equal values as equal.
func AtMost(a, b float64) bool {
	return a < b || AlmostEqual(a, b)
}

// sign returns -1, 0 or 1, collapsing values within Epsilon of zero to 0.
func sign(v float64) int {
	switch {
	case AlmostEqual(v, 0):
		return 0
	case v < 0:
		return -1
	default:
		return 1
	}
}
