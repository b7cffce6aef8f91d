package rangecheck

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"chosenoffset.com/sightline/internal/core/geometry"
)

type countingShape struct {
	geometry.Rect
	calls int
}

func (c *countingShape) Contains(p orb.Point) bool {
	c.calls++
	return c.Rect.Contains(p)
}

func TestInRange2D(t *testing.T) {
	src := Source{Origin: geometry.Pt3(0, 0, 0), Radius: 10}
	tester := Tester{}

	assert.True(t, tester.InRange(src, geometry.Pt3(6, 8, 1000)), "2D ignores elevation")
	assert.True(t, tester.InRange(src, geometry.Pt3(10, 0, 0)), "boundary is inclusive")
	assert.False(t, tester.InRange(src, geometry.Pt3(10.01, 0, 0)))
}

func TestInRange3D(t *testing.T) {
	src := Source{Origin: geometry.Pt3(0, 0, 0), Radius: 13}
	tester := Tester{Use3D: true}

	assert.True(t, tester.InRange(src, geometry.Pt3(3, 4, 12)), "exactly 13 away")
	assert.False(t, tester.InRange(src, geometry.Pt3(3, 4, 12.5)))
	assert.True(t, Tester{}.InRange(src, geometry.Pt3(3, 4, 12.5)))
}

func TestThreeDNeverExceedsTwoD(t *testing.T) {
	src := Source{Origin: geometry.Pt3(0, 0, 5), Radius: 20}
	for x := -30.0; x <= 30; x += 2.5 {
		for _, z := range []float64{-10, 0, 5, 30} {
			p := geometry.Pt3(x, x/2, z)
			if (Tester{Use3D: true}).InRange(src, p) {
				assert.True(t, Tester{}.InRange(src, p), "3D in range implies 2D in range at %v", p)
			}
		}
	}
}

func TestRangeShapeReplacesRadius(t *testing.T) {
	shape := &countingShape{Rect: geometry.NewRect(-5, -5, 5, 5)}
	src := Source{Origin: geometry.Pt3(0, 0, 0), Radius: math.Inf(1), Range: shape}

	assert.False(t, Tester{Use3D: true}.InRange(src, geometry.Pt3(6, 0, 0)))
	assert.Equal(t, 1, shape.calls)
	assert.True(t, Tester{Use3D: true}.InRange(src, geometry.Pt3(4, 4, 100)), "infinite radius in 3D")
}
