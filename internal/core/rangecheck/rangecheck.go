// Package rangecheck decides whether a point is within an observer's reach.
package rangecheck

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"chosenoffset.com/sightline/internal/core/geometry"
)

// Source is an observer's range: where it stands and how far it reaches.
// When Range is set it replaces the radius circle for the ground-plane test.
type Source struct {
	Origin geometry.Point3d
	Radius float64
	Range  geometry.Shape
}

// Tester applies the configured range mode.
type Tester struct {
	Use3D bool
}

// InRange2D reports whether p's ground position is inside the source's range.
func (s Source) InRange2D(p orb.Point) bool {
	if s.Range != nil {
		return s.Range.Contains(p)
	}
	return geometry.AtMost(planar.DistanceSquared(s.Origin.XY(), p), s.Radius*s.Radius)
}

// InRange reports whether p is within reach. The ground-plane test runs first;
// a point outside it is out of range without looking at elevation.
func (t Tester) InRange(src Source, p geometry.Point3d) bool {
	if !src.InRange2D(p.XY()) {
		return false
	}
	if !t.Use3D {
		return true
	}
	return geometry.AtMost(src.Origin.DistanceSquared(p), src.Radius*src.Radius)
}
