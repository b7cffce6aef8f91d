package scene

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"

	"chosenoffset.com/sightline/internal/core/shadows"
)

// wallRef is a wall's entry in the quadtree, keyed by its midpoint.
type wallRef struct {
	mid orb.Point
	idx int
}

func (w wallRef) Point() orb.Point { return w.mid }

// WallIndex answers bound queries over a fixed wall set. Walls are indexed by
// midpoint; queries are padded by the longest half-length so no wall reaching
// into the bound is missed.
type WallIndex struct {
	walls []shadows.Segment
	tree  *quadtree.Quadtree
	pad   float64
}

// NewWallIndex indexes walls.
func NewWallIndex(walls []shadows.Segment) *WallIndex {
	idx := &WallIndex{walls: walls}
	if len(walls) == 0 {
		return idx
	}

	bound := walls[0].Bound()
	for _, w := range walls[1:] {
		bound = bound.Union(w.Bound())
	}
	idx.tree = quadtree.New(bound.Pad(1))
	for i, w := range walls {
		idx.pad = max(idx.pad, w.Length()/2)
		// Every midpoint lies inside the padded bound, so Add cannot fail.
		_ = idx.tree.Add(wallRef{mid: w.Midpoint(), idx: i})
	}
	return idx
}

// QueryWalls returns the walls whose extent intersects b, in index order.
func (x *WallIndex) QueryWalls(b orb.Bound) []shadows.Segment {
	if x.tree == nil {
		return nil
	}
	hits := x.tree.InBound(nil, b.Pad(x.pad))

	seen := make([]bool, len(x.walls))
	for _, h := range hits {
		ref := h.(wallRef)
		if x.walls[ref.idx].Bound().Intersects(b) {
			seen[ref.idx] = true
		}
	}
	var out []shadows.Segment
	for i, ok := range seen {
		if ok {
			out = append(out, x.walls[i])
		}
	}
	return out
}

// All returns every indexed wall.
func (x *WallIndex) All() []shadows.Segment {
	return x.walls
}
