package visibility

import (
	"math"

	"github.com/paulmach/orb"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/geometry"
)

// SamplePoints returns the points tested on target for the given density:
// the center alone, the center plus four corners, or those plus the four edge
// midpoints. Corners and midpoints are pulled inward by a quarter of the
// token's smaller side. In 3D mode every point appears at both the token's
// bottom and top; otherwise at its bottom only.
func SamplePoints(target Token, density config.PointDensity, use3D bool) []geometry.Point3d {
	b := target.Bound
	c := b.Center()
	inset := math.Min(b.Width(), b.Height()) / 4
	l, r := b.Left+inset, b.Right-inset
	t, bt := b.Top+inset, b.Bottom-inset

	pts := []orb.Point{c}
	switch density {
	case config.PointsFive:
		pts = append(pts, orb.Point{l, t}, orb.Point{r, t}, orb.Point{r, bt}, orb.Point{l, bt})
	case config.PointsNine:
		pts = append(pts,
			orb.Point{l, t}, orb.Point{r, t}, orb.Point{r, bt}, orb.Point{l, bt},
			orb.Point{c[0], t}, orb.Point{r, c[1]}, orb.Point{c[0], bt}, orb.Point{l, c[1]},
		)
	}

	out := make([]geometry.Point3d, 0, 2*len(pts))
	for _, p := range pts {
		out = append(out, geometry.At(p, target.Bottom))
	}
	if use3D && !geometry.AlmostEqual(target.Bottom, target.Top) {
		for _, p := range pts {
			out = append(out, geometry.At(p, target.Top))
		}
	}
	return out
}

// Planes returns the elevations at which a target is tested in 3D. An eye
// strictly inside the target's vertical extent checks both top and bottom;
// an eye at or above the top checks the top, otherwise the bottom.
func Planes(eye float64, target Token) []float64 {
	switch {
	case eye > target.Bottom && eye < target.Top &&
		!geometry.AlmostEqual(eye, target.Bottom) && !geometry.AlmostEqual(eye, target.Top):
		return []float64{target.Top, target.Bottom}
	case geometry.AtLeast(eye, target.Top):
		return []float64{target.Top}
	}
	return []float64{target.Bottom}
}
