package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// Orient returns twice the signed area of triangle abc.
// Positive when c lies to the left of a->b in a y-up frame.
func Orient(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// SegmentsCross reports a proper crossing of a1-a2 and b1-b2: the segments
// intersect at a single point interior to both. Colinear overlap and an endpoint
// touching the other segment do not count.
func SegmentsCross(a1, a2, b1, b2 orb.Point) bool {
	o1 := sign(Orient(a1, a2, b1))
	o2 := sign(Orient(a1, a2, b2))
	o3 := sign(Orient(b1, b2, a1))
	o4 := sign(Orient(b1, b2, a2))
	return o1*o2 < 0 && o3*o4 < 0
}

// SegmentIntersection solves a1 + t(a2-a1) = b1 + u(b2-b1).
// ok is false for parallel or degenerate segments.
func SegmentIntersection(a1, a2, b1, b2 orb.Point) (t, u float64, ok bool) {
	rx, ry := a2[0]-a1[0], a2[1]-a1[1]
	sx, sy := b2[0]-b1[0], b2[1]-b1[1]
	den := rx*sy - ry*sx
	if math.Abs(den) < 1e-12 {
		return 0, 0, false
	}
	qx, qy := b1[0]-a1[0], b1[1]-a1[1]
	t = (qx*sy - qy*sx) / den
	u = (qx*ry - qy*rx) / den
	return t, u, true
}

// PointOnSegment reports whether p lies on segment a-b within Epsilon.
func PointOnSegment(p, a, b orb.Point) bool {
	dx, dy := b[0]-a[0], b[1]-a[1]
	length := math.Hypot(dx, dy)
	if length < Epsilon {
		return PointsAlmostEqual(p, a)
	}
	if !AlmostEqual(Orient(a, b, p)/length, 0) {
		return false
	}
	proj := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / length
	return AtLeast(proj, 0) && AtMost(proj, length)
}

// Colinear reports whether segment c-d lies on the infinite line through a-b.
func Colinear(a, b, c, d orb.Point) bool {
	length := math.Hypot(b[0]-a[0], b[1]-a[1])
	if length < Epsilon {
		return false
	}
	return AlmostEqual(Orient(a, b, c)/length, 0) && AlmostEqual(Orient(a, b, d)/length, 0)
}

// SegmentTouchesBound reports whether any part of segment a-b lies in b, boundary included.
func SegmentTouchesBound(a, b orb.Point, bound orb.Bound) bool {
	if bound.Contains(a) || bound.Contains(b) {
		return true
	}
	ring := bound.ToRing()
	for i := 0; i+1 < len(ring); i++ {
		t, u, ok := SegmentIntersection(a, b, ring[i], ring[i+1])
		if ok && AtLeast(t, 0) && AtMost(t, 1) && AtLeast(u, 0) && AtMost(u, 1) {
			return true
		}
	}
	return false
}

// Midpoint returns the midpoint of a-b.
func Midpoint(a, b orb.Point) orb.Point {
	return orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}
