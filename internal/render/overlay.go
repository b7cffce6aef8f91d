package render

import (
	"image/color"

	"github.com/paulmach/orb"

	"chosenoffset.com/sightline/internal/core/debug"
	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/shadows"
)

// Camera maps scene coordinates to screen pixels.
type Camera struct {
	X, Y  float64 // scene point drawn at the screen origin
	Scale float64 // pixels per scene unit; zero means 1
}

// ToScreen converts a scene point to pixels.
func (c Camera) ToScreen(p orb.Point) (float32, float32) {
	s := c.Scale
	if s == 0 {
		s = 1
	}
	return float32((p[0] - c.X) * s), float32((p[1] - c.Y) * s)
}

// Length converts a scene length to pixels.
func (c Camera) Length(d float64) float32 {
	if c.Scale == 0 {
		return float32(d)
	}
	return float32(d * c.Scale)
}

var (
	ColorWall       = color.NRGBA{230, 230, 230, 255}
	ColorFiniteWall = color.NRGBA{150, 150, 170, 255}
	ColorPass       = color.NRGBA{80, 220, 120, 255}
	ColorFail       = color.NRGBA{230, 70, 70, 255}
)

// KindColor returns the overlay color for a debug item.
func KindColor(kind debug.Kind, ok bool) color.NRGBA {
	switch kind {
	case debug.KindLOS:
		return color.NRGBA{240, 220, 90, 200}
	case debug.KindShadow:
		return color.NRGBA{90, 90, 200, 200}
	case debug.KindFootprint:
		return color.NRGBA{230, 140, 40, 255}
	}
	if ok {
		return ColorPass
	}
	return ColorFail
}

// Overlay draws scene geometry and recorded debug output.
type Overlay struct {
	Renderer Renderer
	Camera   Camera
}

// Replay draws every recorded op in order.
func (o Overlay) Replay(dst Image, ops []debug.Op) {
	for _, op := range ops {
		clr := KindColor(op.Kind, op.OK)
		switch {
		case op.IsShape():
			o.Shape(dst, op.Shape, clr)
		case op.Kind == debug.KindSightline:
			o.line(dst, op.A, op.B, 1, clr)
		default:
			x, y := o.Camera.ToScreen(op.A)
			o.Renderer.FillCircle(dst, x, y, 3, clr)
		}
	}
}

// Shape outlines every contour of s.
func (o Overlay) Shape(dst Image, s geometry.Shape, clr color.Color) {
	for _, e := range geometry.Edges(s) {
		o.line(dst, e[0], e[1], 1, clr)
	}
}

// Walls draws full-height walls solid and finite walls thinner.
func (o Overlay) Walls(dst Image, walls []shadows.Segment) {
	for _, w := range walls {
		if w.FullHeight() {
			o.line(dst, w.A, w.B, 3, ColorWall)
		} else {
			o.line(dst, w.A, w.B, 2, ColorFiniteWall)
		}
	}
}

// Box outlines a rectangle.
func (o Overlay) Box(dst Image, r geometry.Rect, clr color.Color) {
	x, y := o.Camera.ToScreen(orb.Point{r.Left, r.Top})
	o.Renderer.StrokeRect(dst, x, y, o.Camera.Length(r.Width()), o.Camera.Length(r.Height()), 2, clr)
}

func (o Overlay) line(dst Image, a, b orb.Point, width float32, clr color.Color) {
	x0, y0 := o.Camera.ToScreen(a)
	x1, y1 := o.Camera.ToScreen(b)
	o.Renderer.StrokeLine(dst, x0, y0, x1, y1, width, clr)
}
