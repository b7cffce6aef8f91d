package shadows

import (
	"math"

	"github.com/paulmach/orb"

	"chosenoffset.com/sightline/internal/core/geometry"
)

// Coord represents a tile coordinate
type Coord struct {
	X, Y int
}

// Segment represents a wall segment that can block sight.
// Bottom and Top bound the wall vertically; ±Inf means the wall is unbounded
// in that direction.
type Segment struct {
	ID           string
	A, B         orb.Point
	Bottom, Top  float64
	TilesCovered []Coord // tiles this segment was extracted from, if any
	EdgeType     string  // "top", "bottom", "left", "right" for grid walls
}

// NewSegment returns a full-height wall from a to b.
func NewSegment(a, b orb.Point) Segment {
	return Segment{A: a, B: b, Bottom: math.Inf(-1), Top: math.Inf(1)}
}

// FullHeight reports whether the wall is unbounded both above and below.
func (s Segment) FullHeight() bool {
	return math.IsInf(s.Bottom, -1) && math.IsInf(s.Top, 1)
}

// BlocksAt reports whether the wall spans elevation z.
func (s Segment) BlocksAt(z float64) bool {
	return geometry.AtLeast(z, s.Bottom) && geometry.AtMost(z, s.Top)
}

func (s Segment) Bound() orb.Bound {
	return orb.MultiPoint{s.A, s.B}.Bound()
}

func (s Segment) Midpoint() orb.Point {
	return geometry.Midpoint(s.A, s.B)
}

func (s Segment) Length() float64 {
	return math.Hypot(s.B[0]-s.A[0], s.B[1]-s.A[1])
}
