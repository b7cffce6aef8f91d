package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Shape is any 2D area the engine reasons about: an axis-aligned rectangle, a
// simple polygon, or a multi-contour region with holes.
type Shape interface {
	// Area is exact for the shape, holes subtracted.
	Area() float64
	Bound() orb.Bound
	// Contains is boundary-inclusive.
	Contains(p orb.Point) bool
	Region() Region
	IsEmpty() bool
}

// Rect is an axis-aligned box in scene coordinates (y grows downward).
type Rect struct {
	Left, Top, Right, Bottom float64
}

// NewRect builds a rectangle from its edges, normalizing swapped edges.
func NewRect(left, top, right, bottom float64) Rect {
	return Rect{
		Left:   math.Min(left, right),
		Top:    math.Min(top, bottom),
		Right:  math.Max(left, right),
		Bottom: math.Max(top, bottom),
	}
}

// RectXYWH builds a rectangle from its top-left corner and size.
func RectXYWH(x, y, w, h float64) Rect {
	return NewRect(x, y, x+w, y+h)
}

// RectFromBound converts an orb bound.
func RectFromBound(b orb.Bound) Rect {
	return NewRect(b.Min[0], b.Min[1], b.Max[0], b.Max[1])
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() orb.Point {
	return orb.Point{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]orb.Point {
	return [4]orb.Point{
		{r.Left, r.Top},
		{r.Right, r.Top},
		{r.Right, r.Bottom},
		{r.Left, r.Bottom},
	}
}

// Edges returns the four boundary edges in corner order.
func (r Rect) Edges() [4][2]orb.Point {
	c := r.Corners()
	return [4][2]orb.Point{{c[0], c[1]}, {c[1], c[2]}, {c[2], c[3]}, {c[3], c[0]}}
}

func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

func (r Rect) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{r.Left, r.Top}, Max: orb.Point{r.Right, r.Bottom}}
}

func (r Rect) Contains(p orb.Point) bool {
	return AtLeast(p[0], r.Left) && AtMost(p[0], r.Right) &&
		AtLeast(p[1], r.Top) && AtMost(p[1], r.Bottom)
}

// Ring returns the closed clockwise ring of the rectangle.
func (r Rect) Ring() orb.Ring {
	c := r.Corners()
	return orb.Ring{c[0], c[1], c[2], c[3], c[0]}
}

func (r Rect) Region() Region {
	if r.IsEmpty() {
		return Region{}
	}
	return Region{Parts: orb.MultiPolygon{orb.Polygon{r.Ring()}}}
}

func (r Rect) IsEmpty() bool {
	return AtMost(r.Width(), 0) || AtMost(r.Height(), 0)
}

// AlmostEqual compares edges with Epsilon.
func (r Rect) AlmostEqual(o Rect) bool {
	return AlmostEqual(r.Left, o.Left) && AlmostEqual(r.Top, o.Top) &&
		AlmostEqual(r.Right, o.Right) && AlmostEqual(r.Bottom, o.Bottom)
}

// OnBoundary reports whether p lies on one of the rectangle's edges.
func (r Rect) OnBoundary(p orb.Point) bool {
	if !r.Contains(p) {
		return false
	}
	return AlmostEqual(p[0], r.Left) || AlmostEqual(p[0], r.Right) ||
		AlmostEqual(p[1], r.Top) || AlmostEqual(p[1], r.Bottom)
}

// Polygon is a simple polygon stored as a closed ring.
type Polygon struct {
	Ring orb.Ring
}

// NewPolygon builds a polygon from its vertices, closing the ring if needed.
func NewPolygon(pts ...orb.Point) Polygon {
	return Polygon{Ring: closeRing(orb.Ring(pts))}
}

// Vertices returns the polygon's vertices without the closing duplicate.
func (p Polygon) Vertices() []orb.Point {
	if len(p.Ring) > 1 && p.Ring[0] == p.Ring[len(p.Ring)-1] {
		return p.Ring[:len(p.Ring)-1]
	}
	return p.Ring
}

func (p Polygon) Area() float64 {
	if len(p.Ring) < 3 {
		return 0
	}
	return ringArea(p.Ring)
}

func (p Polygon) Bound() orb.Bound {
	return p.Ring.Bound()
}

func (p Polygon) Contains(pt orb.Point) bool {
	if len(p.Ring) < 3 {
		return false
	}
	return planar.RingContains(p.Ring, pt)
}

func (p Polygon) Region() Region {
	if p.IsEmpty() {
		return Region{}
	}
	return Region{Parts: orb.MultiPolygon{orb.Polygon{p.Ring}}}
}

func (p Polygon) IsEmpty() bool {
	return len(p.Vertices()) < 3 || AlmostEqual(p.Area(), 0)
}

// Region is a normalized multi-contour area: each part is an outer ring followed
// by the holes inside it.
type Region struct {
	Parts orb.MultiPolygon
}

func (r Region) Area() float64 {
	total := 0.0
	for _, part := range r.Parts {
		for i, ring := range part {
			if len(ring) < 3 {
				continue
			}
			if i == 0 {
				total += ringArea(ring)
			} else {
				total -= ringArea(ring)
			}
		}
	}
	return math.Max(total, 0)
}

func (r Region) Bound() orb.Bound {
	if len(r.Parts) == 0 {
		return orb.Bound{}
	}
	return r.Parts.Bound()
}

func (r Region) Contains(p orb.Point) bool {
	if len(r.Parts) == 0 {
		return false
	}
	return planar.MultiPolygonContains(r.Parts, p)
}

func (r Region) Region() Region { return r }

func (r Region) IsEmpty() bool {
	return AlmostEqual(r.Area(), 0)
}

// Contours returns every ring of the region, outers and holes alike.
func (r Region) Contours() []orb.Ring {
	var rings []orb.Ring
	for _, part := range r.Parts {
		rings = append(rings, part...)
	}
	return rings
}

// Holes counts the hole rings.
func (r Region) Holes() int {
	n := 0
	for _, part := range r.Parts {
		n += len(part) - 1
	}
	return n
}

// Edges lists every boundary edge of s.
func Edges(s Shape) [][2]orb.Point {
	if r, ok := s.(Rect); ok {
		e := r.Edges()
		return e[:]
	}
	var edges [][2]orb.Point
	for _, ring := range s.Region().Contours() {
		ring = closeRing(ring)
		for i := 0; i+1 < len(ring); i++ {
			if ring[i] == ring[i+1] {
				continue
			}
			edges = append(edges, [2]orb.Point{ring[i], ring[i+1]})
		}
	}
	return edges
}

// Vertices lists every vertex of s, without closing duplicates.
func Vertices(s Shape) []orb.Point {
	if r, ok := s.(Rect); ok {
		c := r.Corners()
		return c[:]
	}
	var pts []orb.Point
	for _, ring := range s.Region().Contours() {
		pts = append(pts, Polygon{Ring: ring}.Vertices()...)
	}
	return pts
}

// OnBoundary reports whether p lies on an edge of s.
func OnBoundary(s Shape, p orb.Point) bool {
	if r, ok := s.(Rect); ok {
		return r.OnBoundary(p)
	}
	for _, e := range Edges(s) {
		if PointOnSegment(p, e[0], e[1]) {
			return true
		}
	}
	return false
}

// StrictlyInside reports whether p is inside s and not on its boundary.
func StrictlyInside(s Shape, p orb.Point) bool {
	return s.Contains(p) && !OnBoundary(s, p)
}

func closeRing(r orb.Ring) orb.Ring {
	if len(r) == 0 || r[0] == r[len(r)-1] {
		return r
	}
	closed := make(orb.Ring, len(r), len(r)+1)
	copy(closed, r)
	return append(closed, r[0])
}

func ringArea(r orb.Ring) float64 {
	return math.Abs(planar.Area(r))
}
