// Package footprint builds a target's footprint constrained by the walls that cut
// through it: the part of the boundary box reachable in a straight line from the
// target's own center.
package footprint

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/shadows"
)

// collapseTolerance is the relative area difference under which a swept
// polygon counts as the whole box.
const collapseTolerance = 1e-9

// WallQuerier returns the walls whose extent may touch bound.
type WallQuerier interface {
	QueryWalls(bound orb.Bound) []shadows.Segment
}

// Sweeper computes the region visible from origin, enclosed by boundary.
type Sweeper interface {
	UnobstructedRegion(origin orb.Point, walls []shadows.Segment, boundary geometry.Rect) geometry.Polygon
}

// Builder derives constrained footprints. It holds no state between calls.
type Builder struct {
	walls WallQuerier
	sweep Sweeper
}

// NewBuilder returns a Builder. A nil sweeper falls back to shadows.RaySweeper.
func NewBuilder(walls WallQuerier, sweep Sweeper) *Builder {
	if sweep == nil {
		sweep = shadows.RaySweeper{}
	}
	return &Builder{walls: walls, sweep: sweep}
}

// Build returns the footprint for boundary scaled by scale. The result is the
// scaled rectangle itself unless a wall cuts into it.
func (b *Builder) Build(boundary geometry.Rect, scale float64) geometry.Shape {
	box := ScaleRect(boundary, scale)
	if b.walls == nil {
		return box
	}
	walls := QualifyingWalls(box, b.walls.QueryWalls(box.Bound()))
	if len(walls) == 0 {
		return box
	}
	return collapse(b.sweep.UnobstructedRegion(box.Center(), walls, box), box)
}

// ScaleRect grows or shrinks r about its center. Edges round outward to whole
// units so the result never collapses below one unit wide or tall.
// A scale of 1 (or a non-positive scale) returns r untouched.
func ScaleRect(r geometry.Rect, scale float64) geometry.Rect {
	if scale <= 0 || geometry.AlmostEqual(scale, 1) {
		return r
	}
	c := r.Center()
	hw, hh := r.Width()*scale/2, r.Height()*scale/2

	left, right := math.Floor(c[0]-hw), math.Ceil(c[0]+hw)
	top, bottom := math.Floor(c[1]-hh), math.Ceil(c[1]+hh)
	if right-left < 1 {
		right = left + 1
	}
	if bottom-top < 1 {
		bottom = top + 1
	}
	return geometry.NewRect(left, top, right, bottom)
}

// QualifyingWalls keeps the walls that pass through the interior of box: ones
// that cross it or have an endpoint inside. Walls that only touch the boundary,
// or run along one of its edges, are dropped.
func QualifyingWalls(box geometry.Rect, walls []shadows.Segment) []shadows.Segment {
	var out []shadows.Segment
	for _, w := range walls {
		if entersInterior(box, w) {
			out = append(out, w)
		}
	}
	return out
}

func entersInterior(box geometry.Rect, w shadows.Segment) bool {
	if geometry.StrictlyInside(box, w.A) || geometry.StrictlyInside(box, w.B) {
		return true
	}
	for _, e := range box.Edges() {
		if geometry.Colinear(e[0], e[1], w.A, w.B) {
			return false
		}
	}
	for _, piece := range clip.LineString(box.Bound(), orb.LineString{w.A, w.B}) {
		if len(piece) < 2 {
			continue
		}
		mid := geometry.Midpoint(piece[0], piece[len(piece)-1])
		if geometry.StrictlyInside(box, mid) {
			return true
		}
	}
	return false
}

// collapse returns box when poly covers all of it. A degenerate sweep also
// falls back to the box.
func collapse(poly geometry.Polygon, box geometry.Rect) geometry.Shape {
	if poly.IsEmpty() {
		return box
	}
	if geometry.AlmostEqualEps(poly.Area(), box.Area(), box.Area()*collapseTolerance) {
		return box
	}
	return poly
}
