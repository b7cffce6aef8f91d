package viewer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/cover"
	"chosenoffset.com/sightline/internal/render"
	"chosenoffset.com/sightline/internal/world/scene"
)

const hall = `
name: hall
tile_size: 10
tiles:
  - "########"
  - "#......#"
  - "#......#"
  - "########"
tokens:
  - {id: knight, x: 10, y: 10, height: 6}
  - {id: archer, x: 60, y: 20, height: 6}
  - {id: wolf, x: 30, y: 20, height: 3}
`

type fakeInput struct {
	pressed map[render.Key]bool
}

func (f *fakeInput) press(k render.Key)                          { f.pressed = map[render.Key]bool{k: true} }
func (f *fakeInput) IsKeyPressed(k render.Key) bool              { return f.pressed[k] }
func (f *fakeInput) IsKeyJustPressed(k render.Key) bool          { return f.pressed[k] }
func (f *fakeInput) GetCursorPosition() (int, int)               { return 0, 0 }
func (f *fakeInput) IsMouseButtonPressed(render.MouseButton) bool { return false }

type fakeRenderer struct {
	lines, texts int
}

func (f *fakeRenderer) NewImage(int, int) render.Image { return fakeImage{} }
func (f *fakeRenderer) StrokeLine(render.Image, float32, float32, float32, float32, float32, color.Color) {
	f.lines++
}
func (f *fakeRenderer) FillRect(render.Image, float32, float32, float32, float32, color.Color) {}
func (f *fakeRenderer) StrokeRect(render.Image, float32, float32, float32, float32, float32, color.Color) {}
func (f *fakeRenderer) FillCircle(render.Image, float32, float32, float32, color.Color)            {}
func (f *fakeRenderer) StrokeCircle(render.Image, float32, float32, float32, float32, color.Color) {}
func (f *fakeRenderer) DrawText(render.Image, string, int, int)                                    { f.texts++ }
func (f *fakeRenderer) MeasureText(s string) (int, int)                                             { return len(s) * 6, 16 }

type fakeImage struct{}

func (fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, 256, 168) }
func (fakeImage) Size() (int, int)        { return 256, 168 }
func (fakeImage) Fill(color.Color)        {}
func (fakeImage) Clear()                  {}
func (fakeImage) Dispose()                {}

func newViewer(t *testing.T) (*Viewer, *fakeInput, *fakeRenderer) {
	t.Helper()
	s, err := scene.Parse([]byte(hall))
	require.NoError(t, err)
	in := &fakeInput{}
	r := &fakeRenderer{}
	v, err := New(s, nil, r, in)
	require.NoError(t, err)
	return v, in, r
}

func TestNewNeedsTwoTokens(t *testing.T) {
	s, err := scene.Parse([]byte("tile_size: 10\ntiles: ['##']\ntokens: [{id: solo}]"))
	require.NoError(t, err)
	_, err = New(s, nil, &fakeRenderer{}, &fakeInput{})
	assert.Error(t, err)
}

func TestFirstUpdateEvaluates(t *testing.T) {
	v, _, _ := newViewer(t)
	require.NoError(t, v.Update())
	assert.True(t, v.Visible)
	assert.Equal(t, cover.None, v.Cover)
	assert.InDelta(t, 1, v.Ratio, 1e-6)
	assert.NotEmpty(t, v.Recorder().Ops(), "debug drawing is forced on")
	assert.True(t, v.Config().Debug)
}

func TestMoveAndRaiseObserver(t *testing.T) {
	v, in, _ := newViewer(t)
	before := v.Observer().Bound

	in.press(render.KeyD)
	require.NoError(t, v.Update())
	assert.Equal(t, before.Left+5, v.Observer().Bound.Left)

	in.press(render.KeyE)
	require.NoError(t, v.Update())
	assert.Equal(t, 5.0, v.Observer().Bottom)

	in.press(render.KeyQ)
	require.NoError(t, v.Update())
	assert.Equal(t, 0.0, v.Observer().Bottom)
}

func TestCycleTokens(t *testing.T) {
	v, in, _ := newViewer(t)
	assert.Equal(t, "archer", v.Target().ID)

	in.press(render.KeyTab)
	require.NoError(t, v.Update())
	assert.Equal(t, "wolf", v.Target().ID)

	in.press(render.KeyTab)
	require.NoError(t, v.Update())
	assert.Equal(t, "archer", v.Target().ID, "the observer is skipped")

	in.press(render.KeySpace)
	require.NoError(t, v.Update())
	assert.Equal(t, "wolf", v.Observer().ID)
}

func TestCycleAlgorithms(t *testing.T) {
	v, in, _ := newViewer(t)

	in.press(render.KeyV)
	require.NoError(t, v.Update())
	assert.Equal(t, config.LOSArea, v.Config().LOS.Algorithm)

	in.press(render.KeyC)
	require.NoError(t, v.Update())
	assert.Equal(t, string(cover.CornerToCorners), v.Config().Cover.Algorithm)
}

func TestEscapeQuits(t *testing.T) {
	v, in, _ := newViewer(t)
	in.press(render.KeyEscape)
	assert.ErrorIs(t, v.Update(), ErrQuit)
}

func TestDraw(t *testing.T) {
	v, _, r := newViewer(t)
	require.NoError(t, v.Update())
	v.Draw(fakeImage{})

	assert.NotZero(t, r.lines)
	assert.Equal(t, len(v.Scene.Tokens())+2, r.texts, "a label per token and two status lines")

	w, h := v.Layout(0, 0)
	assert.Equal(t, 256, w)
	assert.Equal(t, 128+statusHeight, h)
}
