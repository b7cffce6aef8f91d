package shadows

import (
	"math"

	"github.com/paulmach/orb"

	"chosenoffset.com/sightline/internal/core/geometry"
)

// ProjectShadow returns the region of the plane at elevation z that the wall hides
// from eye. reach is the farthest ground distance from the eye that the caller
// cares about; unbounded shadows are cut off just beyond it.
// ok is false when the wall hides nothing on that plane.
func ProjectShadow(eye geometry.Point3d, wall Segment, z, reach float64) (geometry.Polygon, bool) {
	if wall.FullHeight() {
		return geometry.Polygon{}, false
	}
	origin := eye.XY()
	if geometry.Colinear(wall.A, wall.B, origin, origin) {
		return geometry.Polygon{}, false
	}

	near, far, ok := shadowSpan(eye.Z, wall.Bottom, wall.Top, z)
	if !ok {
		return geometry.Polygon{}, false
	}
	if math.IsInf(far, 1) {
		far = reach/distanceToLine(origin, wall.A, wall.B) + 1
	}
	if geometry.AtLeast(near, far) {
		return geometry.Polygon{}, false
	}

	at := func(p orb.Point, t float64) orb.Point {
		return orb.Point{origin[0] + t*(p[0]-origin[0]), origin[1] + t*(p[1]-origin[1])}
	}
	return geometry.NewPolygon(
		at(wall.A, near), at(wall.B, near),
		at(wall.B, far), at(wall.A, far),
	), true
}

// shadowSpan returns the range of ray scale factors (1 is the wall itself) along
// which a point on plane z is hidden by a wall spanning [bottom, top] seen from
// eye height ez. A sightline from the eye to a point at scale t crosses the wall
// at height ez + (z-ez)/t.
func shadowSpan(ez, bottom, top, z float64) (near, far float64, ok bool) {
	dz := z - ez
	if geometry.AlmostEqual(dz, 0) {
		if geometry.AtLeast(ez, bottom) && geometry.AtMost(ez, top) {
			return 1, math.Inf(1), true
		}
		return 0, 0, false
	}

	lo, hi := math.Min(z, ez), math.Max(z, ez)
	hmin, hmax := math.Max(bottom, lo), math.Min(top, hi)
	if geometry.AtLeast(hmin, hmax) {
		return 0, 0, false
	}

	scale := func(h float64) float64 {
		if geometry.AlmostEqual(h, ez) {
			return math.Inf(1)
		}
		return dz / (h - ez)
	}
	if dz > 0 {
		near, far = scale(hmax), scale(hmin)
	} else {
		near, far = scale(hmin), scale(hmax)
	}
	return math.Max(near, 1), far, true
}

func distanceToLine(p, a, b orb.Point) float64 {
	return math.Abs(geometry.Orient(a, b, p)) / math.Hypot(b[0]-a[0], b[1]-a[1])
}

// ShadowPolygonForElevation returns the part of los still visible from eye at
// elevation z once every finite-height wall's shadow is removed. los is returned
// unchanged when no wall casts a shadow.
func ShadowPolygonForElevation(eye geometry.Point3d, los geometry.Shape, walls []Segment, z float64) geometry.Shape {
	set := ShadowSet(eye, los, walls, z)
	if len(set) == 0 {
		return los
	}
	return geometry.Difference(los, geometry.Union(set...))
}

// ShadowSet projects every wall onto plane z, sized to cover los.
func ShadowSet(eye geometry.Point3d, los geometry.Shape, walls []Segment, z float64) []geometry.Shape {
	if los == nil || los.IsEmpty() {
		return nil
	}
	reach := farthestCorner(eye.XY(), los.Bound())

	var out []geometry.Shape
	for _, w := range walls {
		if w.FullHeight() {
			continue
		}
		if poly, ok := ProjectShadow(eye, w, z, reach); ok {
			out = append(out, poly)
		}
	}
	return out
}

func farthestCorner(p orb.Point, b orb.Bound) float64 {
	far := 0.0
	for _, c := range b.ToRing() {
		far = math.Max(far, math.Hypot(c[0]-p[0], c[1]-p[1]))
	}
	return far
}

// SightlineBlocked reports whether wall interrupts the 3D sightline from one point
// to another. The crossing must lie strictly between the two points and on the
// wall, at a height the wall spans. Colinear walls never block.
func SightlineBlocked(from, to geometry.Point3d, wall Segment) bool {
	t, u, ok := geometry.SegmentIntersection(from.XY(), to.XY(), wall.A, wall.B)
	if !ok {
		return false
	}
	if !(t > geometry.Epsilon && t < 1-geometry.Epsilon) {
		return false
	}
	if !geometry.AtLeast(u, 0) || !geometry.AtMost(u, 1) {
		return false
	}
	return wall.BlocksAt(from.Lerp(to, t).Z)
}

// AnyBlocks reports whether any wall interrupts the sightline.
func AnyBlocks(from, to geometry.Point3d, walls []Segment) bool {
	for _, w := range walls {
		if SightlineBlocked(from, to, w) {
			return true
		}
	}
	return false
}
