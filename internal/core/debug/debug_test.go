package debug

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"chosenoffset.com/sightline/internal/core/geometry"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	var d Drawer = &r

	d.Shape(KindLOS, geometry.NewRect(0, 0, 1, 1), true)
	d.Line(KindSightline, orb.Point{0, 0}, orb.Point{1, 1}, false)
	d.Point(KindTestPoint, orb.Point{2, 2}, true)
	d.Point(KindTestPoint, orb.Point{3, 3}, false)

	ops := r.Ops()
	assert.Len(t, ops, 4)
	assert.True(t, ops[0].IsShape())
	assert.False(t, ops[1].IsShape())
	assert.Equal(t, orb.Point{1, 1}, ops[1].B)
	assert.Equal(t, 2, r.Count(KindTestPoint))

	ops[0].Kind = KindShadow
	assert.Equal(t, KindLOS, r.Ops()[0].Kind, "Ops returns a copy")

	r.Reset()
	assert.Empty(t, r.Ops())
}

func TestNopIsADrawer(t *testing.T) {
	var d Drawer = Nop{}
	d.Shape(KindLOS, geometry.Region{}, true)
	d.Line(KindSightline, orb.Point{}, orb.Point{}, true)
	d.Point(KindCenter, orb.Point{}, true)
}
