package visibility

import (
	"github.com/paulmach/orb"

	"chosenoffset.com/sightline/internal/core/cover"
	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/rangecheck"
)

// Token is a game object as the engine sees it: already resolved to plain
// geometry, with no reference back to the host's object model.
type Token struct {
	ID string
	// Bound is the token's ground-plane boundary.
	Bound geometry.Rect
	// Bottom and Top are the token's vertical extent.
	Bottom, Top float64
	// Occupied lists the corners of the grid space the token fills. The corners
	// of Bound are used when it is empty.
	Occupied []orb.Point
}

// Center returns the middle of the token's boundary.
func (t Token) Center() orb.Point { return t.Bound.Center() }

func (t Token) coverToken() cover.Token {
	return cover.Token{Bound: t.Bound, Bottom: t.Bottom, Top: t.Top, Occupied: t.Occupied}
}

// VisionSource is one observer's sense: where its eye is, how far it reaches and
// the 2D line-of-sight polygon the host computed for it.
type VisionSource struct {
	// Position is the eye point; Z is the eye elevation.
	Position geometry.Point3d
	Radius   float64
	// Range, if set, replaces the radius circle for ground-plane range checks.
	Range geometry.Shape
	// LOS is the unshadowed line-of-sight region.
	LOS geometry.Shape
}

func (s VisionSource) rangeSource() rangecheck.Source {
	return rangecheck.Source{Origin: s.Position, Radius: s.Radius, Range: s.Range}
}

// Observer pairs a token with the vision source that looks out of it.
type Observer struct {
	Token  Token
	Vision VisionSource
}
