package geometry

import (
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

// Point3d is a position in scene units. X and Y are the ground plane, Z is elevation.
type Point3d struct {
	X, Y, Z float64
}

// Pt3 is a shorthand constructor for Point3d.
func Pt3(x, y, z float64) Point3d {
	return Point3d{X: x, Y: y, Z: z}
}

// At places a 2D point at elevation z.
func At(p orb.Point, z float64) Point3d {
	return Point3d{X: p[0], Y: p[1], Z: z}
}

// FromVector converts an r3 vector.
func FromVector(v r3.Vector) Point3d {
	return Point3d{X: v.X, Y: v.Y, Z: v.Z}
}

// Vector returns p as an r3 vector.
func (p Point3d) Vector() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

// XY drops the elevation.
func (p Point3d) XY() orb.Point {
	return orb.Point{p.X, p.Y}
}

// Lerp returns the point at parameter t on the segment from p to q.
func (p Point3d) Lerp(q Point3d, t float64) Point3d {
	return FromVector(p.Vector().Add(q.Vector().Sub(p.Vector()).Mul(t)))
}

// DistanceSquared returns the squared 3D distance from p to q.
func (p Point3d) DistanceSquared(q Point3d) float64 {
	return p.Vector().Sub(q.Vector()).Norm2()
}

// DistanceSquared2D returns the squared distance from p to q ignoring elevation.
func (p Point3d) DistanceSquared2D(q Point3d) float64 {
	dx, dy := q.X-p.X, q.Y-p.Y
	return dx*dx + dy*dy
}

// AlmostEqual compares coordinates component-wise with Epsilon.
func (p Point3d) AlmostEqual(q Point3d) bool {
	return AlmostEqual(p.X, q.X) && AlmostEqual(p.Y, q.Y) && AlmostEqual(p.Z, q.Z)
}

// PointsAlmostEqual compares two 2D points component-wise with Epsilon.
func PointsAlmostEqual(a, b orb.Point) bool {
	return AlmostEqual(a[0], b[0]) && AlmostEqual(a[1], b[1])
}
