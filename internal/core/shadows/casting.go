package shadows

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"chosenoffset.com/sightline/internal/core/geometry"
)

// rayNudge is the angular offset used to look just past each wall vertex.
const rayNudge = 0.0001

// ComputeVisibilityPolygon calculates the region visible from origin, enclosed by
// boundary. Walls are treated as full height; anything outside boundary is cut off.
func ComputeVisibilityPolygon(origin orb.Point, segments []Segment, boundary geometry.Rect) geometry.Polygon {
	walls := make([]Segment, 0, len(segments)+4)
	for _, s := range segments {
		if geometry.SegmentTouchesBound(s.A, s.B, boundary.Bound()) {
			walls = append(walls, s)
		}
	}
	walls = append(walls, BoundarySegments(boundary)...)

	angles := castAngles(origin, collectVertices(walls, boundary))

	reach := 2 * math.Hypot(boundary.Width(), boundary.Height())
	var points []orb.Point
	for _, angle := range angles {
		dx, dy := math.Cos(angle), math.Sin(angle)
		closest := math.Inf(1)
		var hit orb.Point
		for _, w := range walls {
			if ok, dist, p := raySegmentIntersection(origin, dx, dy, w); ok && dist < closest {
				closest = dist
				hit = p
			}
		}
		if math.IsInf(closest, 1) {
			hit = orb.Point{origin[0] + dx*reach, origin[1] + dy*reach}
		}
		if n := len(points); n > 0 && geometry.PointsAlmostEqual(points[n-1], hit) {
			continue
		}
		points = append(points, hit)
	}
	if n := len(points); n > 1 && geometry.PointsAlmostEqual(points[0], points[n-1]) {
		points = points[:n-1]
	}

	return geometry.NewPolygon(points...)
}

// BoundarySegments returns the four edges of r as full-height walls.
func BoundarySegments(r geometry.Rect) []Segment {
	edges := r.Edges()
	out := make([]Segment, 0, len(edges))
	for _, e := range edges {
		s := NewSegment(e[0], e[1])
		s.EdgeType = "boundary"
		out = append(out, s)
	}
	return out
}

// RaySweeper computes unobstructed regions with ComputeVisibilityPolygon.
type RaySweeper struct{}

// UnobstructedRegion implements the footprint sweeper contract.
func (RaySweeper) UnobstructedRegion(origin orb.Point, walls []Segment, boundary geometry.Rect) geometry.Polygon {
	return ComputeVisibilityPolygon(origin, walls, boundary)
}

// collectVertices gathers wall endpoints and wall-wall crossings inside boundary.
func collectVertices(walls []Segment, boundary geometry.Rect) []orb.Point {
	seen := make(map[orb.Point]bool)
	var out []orb.Point
	add := func(p orb.Point) {
		if !boundary.Contains(p) || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	for i, a := range walls {
		add(a.A)
		add(a.B)
		for _, b := range walls[i+1:] {
			t, u, ok := geometry.SegmentIntersection(a.A, a.B, b.A, b.B)
			if !ok || t < 0 || t > 1 || u < 0 || u > 1 {
				continue
			}
			add(orb.Point{a.A[0] + t*(a.B[0]-a.A[0]), a.A[1] + t*(a.B[1]-a.A[1])})
		}
	}
	return out
}

// castAngles returns the sorted, de-duplicated ray angles toward each vertex and
// just either side of it.
func castAngles(origin orb.Point, vertices []orb.Point) []float64 {
	seen := make(map[float64]bool)
	var angles []float64
	for _, v := range vertices {
		if geometry.PointsAlmostEqual(v, origin) {
			continue
		}
		base := math.Atan2(v[1]-origin[1], v[0]-origin[0])
		for _, a := range [3]float64{base - rayNudge, base, base + rayNudge} {
			a = math.Mod(a, 2*math.Pi)
			if a < 0 {
				a += 2 * math.Pi
			}
			if !seen[a] {
				seen[a] = true
				angles = append(angles, a)
			}
		}
	}
	sort.Float64s(angles)
	return angles
}

// raySegmentIntersection checks if a ray intersects a line segment.
// Walls passing through the origin itself do not stop the ray.
func raySegmentIntersection(origin orb.Point, dx, dy float64, seg Segment) (bool, float64, orb.Point) {
	segDX := seg.B[0] - seg.A[0]
	segDY := seg.B[1] - seg.A[1]

	denominator := dx*segDY - dy*segDX
	if math.Abs(denominator) < 1e-10 {
		return false, 0, orb.Point{}
	}

	diffX := seg.A[0] - origin[0]
	diffY := seg.A[1] - origin[1]

	t := (diffX*segDY - diffY*segDX) / denominator
	u := (diffX*dy - diffY*dx) / denominator

	if u >= 0 && u <= 1 && t > geometry.Epsilon {
		return true, t, orb.Point{origin[0] + t*dx, origin[1] + t*dy}
	}
	return false, 0, orb.Point{}
}
