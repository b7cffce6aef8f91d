package overlap

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"chosenoffset.com/sightline/internal/core/geometry"
)

var footprint = geometry.NewRect(0, 0, 10, 10)

func TestHalfVisibleMeetsHalf(t *testing.T) {
	los := geometry.NewRect(0, 0, 5, 10)
	assert.InDelta(t, 0.5, Ratio(los, footprint), 1e-12)
	assert.True(t, Visible(los, footprint, 0.5), "ratio exactly at the threshold is visible")
}

func TestJustBelowThreshold(t *testing.T) {
	los := geometry.NewRect(0, 0, 4.9, 10)
	assert.False(t, Visible(los, footprint, 0.5))
	assert.True(t, Visible(los, footprint, 0.49))
}

func TestPolygonLOSInclusive(t *testing.T) {
	// Triangle covering exactly half the footprint.
	los := geometry.NewPolygon(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{0, 10})
	assert.True(t, Visible(los, footprint, 0.5))
	assert.False(t, Visible(los, footprint, 0.51))
}

func TestMonotonicInThreshold(t *testing.T) {
	los := geometry.NewPolygon(orb.Point{-5, -5}, orb.Point{12, 3}, orb.Point{2, 14})
	seenInvisible := false
	for i := 0; i <= 20; i++ {
		p := float64(i) / 20
		v := Visible(los, footprint, p)
		if seenInvisible {
			assert.False(t, v, "p=%v turned visible after a lower threshold failed", p)
		}
		if !v {
			seenInvisible = true
		}
	}
	assert.True(t, seenInvisible)
}

func TestDegenerateInputs(t *testing.T) {
	assert.False(t, Visible(geometry.Region{}, footprint, 0.5), "empty LOS")
	assert.False(t, Visible(footprint, geometry.NewRect(5, 5, 5, 8), 0.5), "zero-area footprint")
	assert.False(t, Visible(geometry.NewRect(20, 20, 30, 30), footprint, 0.1), "disjoint")
	assert.Zero(t, Ratio(nil, footprint))
	assert.Zero(t, Ratio(geometry.Region{}, footprint))
}

func TestZeroThresholdUsesStrictCrossing(t *testing.T) {
	// Sharing an edge is not overlap.
	assert.False(t, Visible(geometry.NewRect(10, 0, 20, 10), footprint, 0))
	// Touching at a corner is not overlap.
	assert.False(t, Visible(geometry.NewRect(10, 10, 20, 20), footprint, 0))
	// Any real sliver is.
	assert.True(t, Visible(geometry.NewRect(9.5, 0, 20, 10), footprint, 0))
	// Identical shapes overlap.
	assert.True(t, Visible(footprint, footprint, 0))
	// LOS entirely inside the footprint.
	assert.True(t, Visible(geometry.NewRect(4, 4, 6, 6), footprint, 0))
	// Footprint entirely inside the LOS.
	assert.True(t, Visible(geometry.NewRect(-50, -50, 50, 50), footprint, 0))
}

func TestCrossesProperEdges(t *testing.T) {
	// A thin diamond whose vertices all lie outside the footprint but whose edges
	// cross it.
	diamond := geometry.NewPolygon(orb.Point{5, -5}, orb.Point{15, 5}, orb.Point{5, 15}, orb.Point{-5, 5})
	assert.True(t, Crosses(diamond, footprint))
}

func TestCrossesRegionWithHole(t *testing.T) {
	outer := geometry.NewRect(-20, -20, 30, 30)
	hole := geometry.NewRect(-1, -1, 11, 11)
	los := geometry.Difference(outer, hole)

	assert.False(t, Crosses(los, footprint), "footprint sits in the hole")
	assert.Zero(t, Ratio(los, footprint))
}

func TestCrossesConcaveFootprintNotch(t *testing.T) {
	// The footprint's bounding-box center (10, 10) lies in the cut-away corner.
	notched := geometry.NewPolygon(
		orb.Point{0, 0}, orb.Point{20, 0}, orb.Point{20, 8},
		orb.Point{8, 8}, orb.Point{8, 20}, orb.Point{0, 20},
	)
	los := geometry.NewRect(9, 9, 19, 19)

	assert.Zero(t, Ratio(los, notched))
	assert.False(t, Crosses(los, notched))
	assert.False(t, Visible(los, notched, 0))

	// Reaching into the footprint's arm is overlap again.
	assert.True(t, Visible(geometry.NewRect(7, 9, 19, 19), notched, 0))
}

func TestRatioLeavesLOSUntouched(t *testing.T) {
	los := geometry.NewPolygon(orb.Point{0, 0}, orb.Point{20, 0}, orb.Point{20, 20}, orb.Point{0, 20})
	before := los.Ring.Clone()

	assert.InDelta(t, 225.0/400, Ratio(los, geometry.NewRect(5, 5, 25, 25)), 1e-12)
	assert.Equal(t, before, los.Ring)
	assert.InDelta(t, 400, los.Area(), 1e-9)
}

func TestAnyMeets(t *testing.T) {
	assert.True(t, AnyMeets([]float64{0.6, 0.2}, 0.5))
	assert.True(t, AnyMeets([]float64{0.2, 0.5}, 0.5))
	assert.False(t, AnyMeets([]float64{0.2, 0.3}, 0.5))
	assert.False(t, AnyMeets(nil, 0.5))
	assert.False(t, AnyMeets([]float64{0}, 0), "no area is never visible")
}
