// Package overlap decides whether enough of a footprint lies inside a line of
// sight region.
package overlap

import (
	"github.com/paulmach/orb"

	"chosenoffset.com/sightline/internal/core/geometry"
)

// Ratio returns the fraction of fp covered by los, or 0 when either the
// intersection or the footprint has no area.
func Ratio(los, fp geometry.Shape) float64 {
	if los == nil || fp == nil {
		return 0
	}
	inter := geometry.IntersectionArea(fp, los)
	if geometry.AlmostEqual(inter, 0) {
		return 0
	}
	area := fp.Area()
	if geometry.AlmostEqual(area, 0) {
		return 0
	}
	return inter / area
}

// Visible reports whether at least the fraction p of fp lies inside los. The
// threshold is inclusive. With p == 0 any real overlap is enough, decided by
// Crosses without computing areas.
func Visible(los, fp geometry.Shape, p float64) bool {
	if geometry.AtMost(p, 0) {
		return Crosses(los, fp)
	}
	return AnyMeets([]float64{Ratio(los, fp)}, p)
}

// AnyMeets reports whether any of the ratios meets p. A zero ratio never does.
func AnyMeets(ratios []float64, p float64) bool {
	for _, r := range ratios {
		if r > 0 && geometry.AtLeast(r, p) {
			return true
		}
	}
	return false
}

// Crosses reports whether fp and los genuinely overlap. Shared or colinear
// edges and vertices resting on the other shape's boundary do not count.
func Crosses(los, fp geometry.Shape) bool {
	if los == nil || fp == nil || los.IsEmpty() || fp.IsEmpty() {
		return false
	}
	if !los.Bound().Intersects(fp.Bound()) {
		return false
	}

	losEdges := geometry.Edges(los)
	fpEdges := geometry.Edges(fp)
	for _, f := range fpEdges {
		for _, l := range losEdges {
			if geometry.SegmentsCross(f[0], f[1], l[0], l[1]) {
				return true
			}
		}
	}

	probes := geometry.Vertices(fp)
	if c := fp.Bound().Center(); geometry.StrictlyInside(fp, c) {
		probes = append(probes, c)
	}
	for _, e := range fpEdges {
		probes = append(probes, geometry.Midpoint(e[0], e[1]))
	}
	if anyStrictlyInside(los, probes) {
		return true
	}
	return anyStrictlyInside(fp, geometry.Vertices(los))
}

func anyStrictlyInside(s geometry.Shape, pts []orb.Point) bool {
	for _, p := range pts {
		if geometry.StrictlyInside(s, p) {
			return true
		}
	}
	return false
}
