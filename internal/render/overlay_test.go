package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"chosenoffset.com/sightline/internal/core/debug"
	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/shadows"
)

type line struct {
	x0, y0, x1, y1, width float32
	clr                   color.Color
}

type fakeRenderer struct {
	lines   []line
	circles int
	rects   int
}

func (f *fakeRenderer) NewImage(int, int) Image { return fakeImage{} }
func (f *fakeRenderer) StrokeLine(_ Image, x0, y0, x1, y1, w float32, clr color.Color) {
	f.lines = append(f.lines, line{x0, y0, x1, y1, w, clr})
}
func (f *fakeRenderer) FillRect(Image, float32, float32, float32, float32, color.Color) {}
func (f *fakeRenderer) StrokeRect(Image, float32, float32, float32, float32, float32, color.Color) {
	f.rects++
}
func (f *fakeRenderer) FillCircle(Image, float32, float32, float32, color.Color) { f.circles++ }
func (f *fakeRenderer) StrokeCircle(Image, float32, float32, float32, float32, color.Color) {}
func (f *fakeRenderer) DrawText(Image, string, int, int)                                {}
func (f *fakeRenderer) MeasureText(string) (int, int)                                   { return 0, 0 }

type fakeImage struct{}

func (fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, 100, 100) }
func (fakeImage) Size() (int, int)        { return 100, 100 }
func (fakeImage) Fill(color.Color)        {}
func (fakeImage) Clear()                  {}
func (fakeImage) Dispose()                {}

func TestCameraToScreen(t *testing.T) {
	c := Camera{X: 10, Y: 20, Scale: 2}
	x, y := c.ToScreen(orb.Point{15, 25})
	assert.Equal(t, float32(10), x)
	assert.Equal(t, float32(10), y)
	assert.Equal(t, float32(8), c.Length(4))

	x, y = Camera{}.ToScreen(orb.Point{3, 4})
	assert.Equal(t, float32(3), x)
	assert.Equal(t, float32(4), y, "zero scale is identity")
}

func TestReplayDrawsEveryOp(t *testing.T) {
	rec := &debug.Recorder{}
	rec.Shape(debug.KindLOS, geometry.NewRect(0, 0, 10, 10), true)
	rec.Line(debug.KindSightline, orb.Point{0, 0}, orb.Point{5, 5}, false)
	rec.Point(debug.KindTestPoint, orb.Point{1, 1}, true)

	r := &fakeRenderer{}
	Overlay{Renderer: r}.Replay(fakeImage{}, rec.Ops())

	assert.Len(t, r.lines, 5, "four rectangle edges and one sightline")
	assert.Equal(t, ColorFail, r.lines[4].clr)
	assert.Equal(t, 1, r.circles)
}

func TestWallsStyleByHeight(t *testing.T) {
	full := shadows.NewSegment(orb.Point{0, 0}, orb.Point{10, 0})
	low := full
	low.Bottom, low.Top = 0, 3

	r := &fakeRenderer{}
	Overlay{Renderer: r}.Walls(fakeImage{}, []shadows.Segment{full, low})
	assert.Equal(t, ColorWall, r.lines[0].clr)
	assert.Equal(t, ColorFiniteWall, r.lines[1].clr)
	assert.Greater(t, r.lines[0].width, r.lines[1].width)
}

func TestKindColor(t *testing.T) {
	assert.Equal(t, ColorPass, KindColor(debug.KindCenter, true))
	assert.Equal(t, ColorFail, KindColor(debug.KindCenter, false))
	assert.Equal(t, KindColor(debug.KindLOS, true), KindColor(debug.KindLOS, false), "regions keep their color")
}
