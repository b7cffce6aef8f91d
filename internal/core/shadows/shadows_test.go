package shadows

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/sightline/internal/core/geometry"
)

type fakeGrid struct {
	w, h    int
	blocked map[Coord]bool
	tops    map[Coord]float64
}

func newFakeGrid(w, h int, blocked ...Coord) *fakeGrid {
	g := &fakeGrid{w: w, h: h, blocked: map[Coord]bool{}, tops: map[Coord]float64{}}
	for _, c := range blocked {
		g.blocked[c] = true
	}
	return g
}

func (g *fakeGrid) Width() int                { return g.w }
func (g *fakeGrid) Height() int               { return g.h }
func (g *fakeGrid) BlocksSight(x, y int) bool { return g.blocked[Coord{X: x, Y: y}] }

func (g *fakeGrid) WallExtent(x, y int) (float64, float64) {
	if top, ok := g.tops[Coord{X: x, Y: y}]; ok {
		return math.Inf(-1), top
	}
	return math.Inf(-1), math.Inf(1)
}

// lowWall is a 10-unit wall at x=10 spanning heights 0 to 5.
func lowWall() Segment {
	return Segment{A: orb.Point{10, -5}, B: orb.Point{10, 5}, Bottom: 0, Top: 5}
}

func TestSingleTileProducesFourWalls(t *testing.T) {
	segs := CreateWallSegmentsFromGrid(newFakeGrid(3, 3, Coord{X: 1, Y: 1}), 10)
	require.Len(t, segs, 4)
	for _, s := range segs {
		assert.InDelta(t, 10, s.Length(), 1e-9)
		assert.True(t, s.FullHeight())
		assert.NotEmpty(t, s.ID)
	}
}

func TestAdjacentTilesMerge(t *testing.T) {
	segs := CreateWallSegmentsFromGrid(newFakeGrid(3, 3, Coord{X: 0, Y: 0}, Coord{X: 1, Y: 0}), 10)
	require.Len(t, segs, 4)

	lengths := map[string]float64{}
	for _, s := range segs {
		lengths[s.EdgeType] = s.Length()
	}
	assert.InDelta(t, 20, lengths["top"], 1e-9)
	assert.InDelta(t, 20, lengths["bottom"], 1e-9)
	assert.InDelta(t, 10, lengths["left"], 1e-9)
	assert.InDelta(t, 10, lengths["right"], 1e-9)
}

func TestDifferentHeightsDoNotMerge(t *testing.T) {
	g := newFakeGrid(3, 3, Coord{X: 0, Y: 0}, Coord{X: 1, Y: 0})
	g.tops[Coord{X: 1, Y: 0}] = 5

	segs := CreateWallSegmentsFromGrid(g, 10)
	// Two tops, two bottoms, the outer left and right, plus the tall tile's side
	// facing the short one.
	assert.Len(t, segs, 7)
	var short int
	for _, s := range segs {
		if s.Top == 5 {
			short++
		}
	}
	assert.Equal(t, 3, short)
}

func TestVisibilityPolygonEmptyRoom(t *testing.T) {
	room := geometry.NewRect(0, 0, 100, 100)
	poly := ComputeVisibilityPolygon(orb.Point{50, 50}, nil, room)

	assert.InDelta(t, room.Area(), poly.Area(), 1e-3)
	for _, v := range poly.Vertices() {
		assert.True(t, room.OnBoundary(v), "vertex %v should lie on the room boundary", v)
	}
}

func TestVisibilityPolygonBehindWall(t *testing.T) {
	room := geometry.NewRect(0, 0, 100, 100)
	wall := NewSegment(orb.Point{60, 20}, orb.Point{60, 80})
	poly := ComputeVisibilityPolygon(orb.Point{50, 50}, []Segment{wall}, room)

	assert.True(t, poly.Contains(orb.Point{40, 50}))
	assert.True(t, poly.Contains(orb.Point{55, 50}))
	assert.False(t, poly.Contains(orb.Point{90, 50}))
	assert.Less(t, poly.Area(), room.Area())
}

func TestVisibilityPolygonIgnoresFarWalls(t *testing.T) {
	room := geometry.NewRect(0, 0, 10, 10)
	far := NewSegment(orb.Point{50, 0}, orb.Point{50, 10})
	poly := ComputeVisibilityPolygon(orb.Point{5, 5}, []Segment{far}, room)
	assert.InDelta(t, 100, poly.Area(), 1e-3)
}

func TestRaySweeperMatchesCompute(t *testing.T) {
	room := geometry.NewRect(0, 0, 10, 10)
	a := RaySweeper{}.UnobstructedRegion(orb.Point{5, 5}, nil, room)
	b := ComputeVisibilityPolygon(orb.Point{5, 5}, nil, room)
	assert.Equal(t, a, b)
}

func TestProjectShadowLookingDown(t *testing.T) {
	eye := geometry.Pt3(0, 0, 10)
	poly, ok := ProjectShadow(eye, lowWall(), 0, 100)
	require.True(t, ok)
	// Hidden from the wall at x=10 out to x=20.
	assert.InDelta(t, 150, poly.Area(), 1e-6)
	assert.True(t, poly.Contains(orb.Point{15, 0}))
	assert.False(t, poly.Contains(orb.Point{25, 0}))
}

func TestProjectShadowLookingUp(t *testing.T) {
	eye := geometry.Pt3(0, 0, 0)
	hanging := Segment{A: orb.Point{10, -5}, B: orb.Point{10, 5}, Bottom: 5, Top: math.Inf(1)}
	poly, ok := ProjectShadow(eye, hanging, 10, 100)
	require.True(t, ok)
	assert.InDelta(t, 150, poly.Area(), 1e-6)
}

func TestProjectShadowAtEyeLevel(t *testing.T) {
	// The wall tops out below the eye: nothing hidden at eye height.
	_, ok := ProjectShadow(geometry.Pt3(0, 0, 10), lowWall(), 10, 100)
	assert.False(t, ok)

	// A wall spanning eye height hides everything behind it out to reach.
	tall := lowWall()
	tall.Top = 20
	poly, ok := ProjectShadow(geometry.Pt3(0, 0, 10), tall, 10, 100)
	require.True(t, ok)
	assert.True(t, poly.Contains(orb.Point{90, 0}))
}

func TestProjectShadowSkipsFullHeightAndColinear(t *testing.T) {
	_, ok := ProjectShadow(geometry.Pt3(0, 0, 10), NewSegment(orb.Point{10, -5}, orb.Point{10, 5}), 0, 100)
	assert.False(t, ok)

	colinear := Segment{A: orb.Point{10, 0}, B: orb.Point{20, 0}, Bottom: 0, Top: 5}
	_, ok = ProjectShadow(geometry.Pt3(0, 0, 10), colinear, 0, 100)
	assert.False(t, ok)
}

func TestProjectShadowAboveWall(t *testing.T) {
	// Eye and plane both above the wall top.
	_, ok := ProjectShadow(geometry.Pt3(0, 0, 10), lowWall(), 8, 100)
	assert.False(t, ok)
}

func TestShadowPolygonForElevation(t *testing.T) {
	los := geometry.NewRect(-50, -50, 50, 50)
	eye := geometry.Pt3(0, 0, 10)

	visible := ShadowPolygonForElevation(eye, los, []Segment{lowWall()}, 0)
	assert.InDelta(t, los.Area()-150, visible.Area(), 1e-6)
	assert.False(t, visible.Contains(orb.Point{15, 0}))
	assert.True(t, visible.Contains(orb.Point{25, 0}))
}

func TestShadowPolygonUnchangedWithoutFiniteWalls(t *testing.T) {
	los := geometry.NewRect(-50, -50, 50, 50)
	full := NewSegment(orb.Point{10, -5}, orb.Point{10, 5})

	got := ShadowPolygonForElevation(geometry.Pt3(0, 0, 10), los, []Segment{full}, 0)
	assert.Equal(t, los, got)

	got = ShadowPolygonForElevation(geometry.Pt3(0, 0, 10), los, nil, 0)
	assert.Equal(t, los, got)
}

func TestSightlineBlocked(t *testing.T) {
	w := lowWall()

	assert.True(t, SightlineBlocked(geometry.Pt3(0, 0, 0), geometry.Pt3(20, 0, 0), w))
	assert.False(t, SightlineBlocked(geometry.Pt3(0, 0, 10), geometry.Pt3(20, 0, 10), w), "passes over the top")
	assert.True(t, SightlineBlocked(geometry.Pt3(0, 0, 10), geometry.Pt3(20, 0, 0), w), "grazing the top edge blocks")
	assert.False(t, SightlineBlocked(geometry.Pt3(0, 0, 0), geometry.Pt3(10, 0, 0), w), "ending on the wall does not block")
	assert.False(t, SightlineBlocked(geometry.Pt3(0, 20, 0), geometry.Pt3(20, 20, 0), w), "misses the wall")

	colinear := NewSegment(orb.Point{5, 0}, orb.Point{15, 0})
	assert.False(t, SightlineBlocked(geometry.Pt3(0, 0, 0), geometry.Pt3(20, 0, 0), colinear))
}

func TestAnyBlocks(t *testing.T) {
	walls := []Segment{lowWall(), NewSegment(orb.Point{100, 0}, orb.Point{100, 10})}
	assert.True(t, AnyBlocks(geometry.Pt3(0, 0, 0), geometry.Pt3(20, 0, 0), walls))
	assert.False(t, AnyBlocks(geometry.Pt3(0, 0, 50), geometry.Pt3(20, 0, 50), walls))
}

func TestSegmentHelpers(t *testing.T) {
	s := NewSegment(orb.Point{0, 0}, orb.Point{3, 4})
	assert.True(t, s.FullHeight())
	assert.True(t, s.BlocksAt(1e9))
	assert.InDelta(t, 5, s.Length(), 1e-9)
	assert.Equal(t, orb.Point{1.5, 2}, s.Midpoint())

	w := lowWall()
	assert.False(t, w.FullHeight())
	assert.True(t, w.BlocksAt(5))
	assert.False(t, w.BlocksAt(5.1))
}
