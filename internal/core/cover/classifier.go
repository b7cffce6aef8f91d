package cover

import (
	"github.com/paulmach/orb"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/shadows"
)

// Level maps the fraction of a target that is hidden to a level. Thresholds are
// inclusive within geometry.Epsilon.
func (t AreaTriggers) Level(blocked float64) Level {
	switch {
	case geometry.AtLeast(blocked, t.High):
		return High
	case geometry.AtLeast(blocked, t.Medium):
		return Medium
	case geometry.AtLeast(blocked, t.Low):
		return Low
	}
	return None
}

// Token is the part of a game object the classifier looks at.
type Token struct {
	Bound       geometry.Rect
	Bottom, Top float64
	// Occupied lists the corners of the space the token occupies. The corners
	// of Bound are used when it is empty.
	Occupied []orb.Point
}

// Corners returns the occupied-space corners.
func (t Token) Corners() []orb.Point {
	if len(t.Occupied) > 0 {
		return t.Occupied
	}
	c := t.Bound.Corners()
	return c[:]
}

// Input bundles one observer/target evaluation.
type Input struct {
	Observer Token
	// Eye is the observer's eye elevation; two-dimensional algorithms cast
	// every line at this height.
	Eye    float64
	Target Token
	Walls  []shadows.Segment
	// VisibleRatio returns the fraction of the target visible to the observer.
	// Only the area algorithms call it.
	VisibleRatio func() float64
	// Trace, when set, sees every line cast and whether it was blocked.
	Trace func(from, to geometry.Point3d, blocked bool)
}

// Classifier runs the configured algorithm.
type Classifier struct {
	Settings Settings
}

// Classify returns the cover the target has from the observer.
func (c Classifier) Classify(in Input) Level {
	s := c.Settings
	if s.Algorithm.UsesArea() {
		if in.VisibleRatio == nil {
			return None
		}
		return s.AreaTriggers.Level(1 - in.VisibleRatio())
	}
	if s.Algorithm == CenterToCenter {
		from := geometry.At(in.Observer.Bound.Center(), in.Eye)
		to := geometry.At(in.Target.Bound.Center(), in.Eye)
		if in.blocked(from, to) {
			return s.CenterLevel
		}
		return None
	}
	return s.Triggers.Level(c.Count(in))
}

// Count returns how many target points are blocked for the line-count algorithms.
func (c Classifier) Count(in Input) int {
	var targets []geometry.Point3d
	switch c.Settings.Algorithm {
	case CenterToCube, CornerToCube:
		targets = cubeCorners(in.Target)
	default:
		targets = atElevation(in.Target.Corners(), in.Eye)
	}

	var origins []geometry.Point3d
	switch c.Settings.Algorithm {
	case CornerToCorners, CornerToCube:
		origins = atElevation(in.Observer.Corners(), in.Eye)
	default:
		origins = []geometry.Point3d{geometry.At(in.Observer.Bound.Center(), in.Eye)}
	}

	n := 0
	for _, to := range targets {
		if in.allBlocked(origins, to) {
			n++
		}
	}
	return n
}

// allBlocked reports whether every line from origins to to is blocked.
func (in Input) allBlocked(origins []geometry.Point3d, to geometry.Point3d) bool {
	for _, from := range origins {
		if !in.blocked(from, to) {
			return false
		}
	}
	return len(origins) > 0
}

func (in Input) blocked(from, to geometry.Point3d) bool {
	b := shadows.AnyBlocks(from, to, in.Walls)
	if in.Trace != nil {
		in.Trace(from, to, b)
	}
	return b
}

func atElevation(pts []orb.Point, z float64) []geometry.Point3d {
	out := make([]geometry.Point3d, len(pts))
	for i, p := range pts {
		out[i] = geometry.At(p, z)
	}
	return out
}

func cubeCorners(t Token) []geometry.Point3d {
	corners := t.Corners()
	return append(atElevation(corners, t.Bottom), atElevation(corners, t.Top)...)
}
