package geometry

import (
	"math"

	polyclip "github.com/ctessum/polyclip-go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"
)

// Intersect returns the region covered by both a and b.
// Empty or disjoint inputs produce an empty region.
func Intersect(a, b Shape) Region {
	if a.IsEmpty() || b.IsEmpty() || !a.Bound().Intersects(b.Bound()) {
		return Region{}
	}
	if ra, ok := a.(Rect); ok {
		if rb, ok := b.(Rect); ok {
			return intersectRects(ra, rb).Region()
		}
	}
	return construct(polyclip.INTERSECTION, a, b)
}

// Union merges any number of shapes into one normalized region.
func Union(shapes ...Shape) Region {
	var acc polyclip.Polygon
	for _, s := range shapes {
		if s == nil || s.IsEmpty() {
			continue
		}
		p := toPolyclip(s.Region())
		if len(acc) == 0 {
			acc = p
			continue
		}
		acc = acc.Construct(polyclip.UNION, p)
	}
	if len(acc) == 0 {
		return Region{}
	}
	return fromPolyclip(acc)
}

// Difference returns the part of a not covered by b.
func Difference(a, b Shape) Region {
	if a.IsEmpty() {
		return Region{}
	}
	if b == nil || b.IsEmpty() || !a.Bound().Intersects(b.Bound()) {
		return a.Region()
	}
	return construct(polyclip.DIFFERENCE, a, b)
}

// IntersectionArea returns the area of a ∩ b. When either side is a rectangle a
// copy of the other side is clipped to it directly, which is exact for area.
func IntersectionArea(a, b Shape) float64 {
	if a.IsEmpty() || b.IsEmpty() || !a.Bound().Intersects(b.Bound()) {
		return 0
	}
	ra, aRect := a.(Rect)
	rb, bRect := b.(Rect)
	switch {
	case aRect && bRect:
		return intersectRects(ra, rb).Area()
	case aRect:
		return Region{Parts: clip.MultiPolygon(ra.Bound(), b.Region().Parts.Clone())}.Area()
	case bRect:
		return Region{Parts: clip.MultiPolygon(rb.Bound(), a.Region().Parts.Clone())}.Area()
	}
	return Intersect(a, b).Area()
}

func intersectRects(a, b Rect) Rect {
	r := Rect{
		Left:   math.Max(a.Left, b.Left),
		Top:    math.Max(a.Top, b.Top),
		Right:  math.Min(a.Right, b.Right),
		Bottom: math.Min(a.Bottom, b.Bottom),
	}
	if r.Right < r.Left || r.Bottom < r.Top {
		return Rect{}
	}
	return r
}

func construct(op polyclip.Op, a, b Shape) Region {
	subject := toPolyclip(a.Region())
	clipping := toPolyclip(b.Region())
	if len(subject) == 0 {
		return Region{}
	}
	if len(clipping) == 0 {
		if op == polyclip.INTERSECTION {
			return Region{}
		}
		return fromPolyclip(subject)
	}
	return fromPolyclip(subject.Construct(op, clipping))
}

func toPolyclip(r Region) polyclip.Polygon {
	var out polyclip.Polygon
	for _, ring := range r.Contours() {
		verts := Polygon{Ring: ring}.Vertices()
		if len(verts) < 3 {
			continue
		}
		c := make(polyclip.Contour, 0, len(verts))
		for _, v := range verts {
			c = append(c, polyclip.Point{X: v[0], Y: v[1]})
		}
		out = append(out, c)
	}
	return out
}

func fromPolyclip(p polyclip.Polygon) Region {
	rings := make([]orb.Ring, 0, len(p))
	for _, c := range p {
		if len(c) < 3 {
			continue
		}
		ring := make(orb.Ring, 0, len(c)+1)
		for _, pt := range c {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		ring = closeRing(ring)
		if AlmostEqual(ringArea(ring), 0) {
			continue
		}
		rings = append(rings, ring)
	}
	return nestRings(rings)
}

// nestRings turns an unordered set of contours into outer rings with their holes.
// A contour nested inside an odd number of others is a hole of its smallest container.
func nestRings(rings []orb.Ring) Region {
	n := len(rings)
	depth := make([]int, n)
	parent := make([]int, n)
	areas := make([]float64, n)
	for i, r := range rings {
		areas[i] = ringArea(r)
		parent[i] = -1
	}
	for i := range rings {
		for j := range rings {
			if i == j || !ringInside(rings[i], rings[j]) {
				continue
			}
			depth[i]++
			if parent[i] < 0 || areas[j] < areas[parent[i]] {
				parent[i] = j
			}
		}
	}

	var region Region
	partOf := make(map[int]int, n)
	for i, r := range rings {
		if depth[i]%2 != 0 {
			continue
		}
		if r.Orientation() != orb.CCW {
			r.Reverse()
		}
		partOf[i] = len(region.Parts)
		region.Parts = append(region.Parts, orb.Polygon{r})
	}
	for i, r := range rings {
		if depth[i]%2 == 0 {
			continue
		}
		k, ok := partOf[parent[i]]
		if !ok {
			continue
		}
		if r.Orientation() != orb.CW {
			r.Reverse()
		}
		region.Parts[k] = append(region.Parts[k], r)
	}
	return region
}

// ringInside reports whether inner lies within outer. Vertices on outer's boundary
// are skipped in favour of one that decides the question.
func ringInside(inner, outer orb.Ring) bool {
	ib, ob := inner.Bound(), outer.Bound()
	if ib.Min[0] < ob.Min[0]-Epsilon || ib.Min[1] < ob.Min[1]-Epsilon ||
		ib.Max[0] > ob.Max[0]+Epsilon || ib.Max[1] > ob.Max[1]+Epsilon {
		return false
	}
	verts := Polygon{Ring: inner}.Vertices()
	probes := make([]orb.Point, 0, 2*len(verts))
	probes = append(probes, verts...)
	for i := 0; i+1 < len(inner); i++ {
		probes = append(probes, Midpoint(inner[i], inner[i+1]))
	}
	for _, p := range probes {
		if onRing(p, outer) {
			continue
		}
		return planar.RingContains(outer, p)
	}
	return false
}

func onRing(p orb.Point, r orb.Ring) bool {
	for i := 0; i+1 < len(r); i++ {
		if PointOnSegment(p, r[i], r[i+1]) {
			return true
		}
	}
	return false
}
