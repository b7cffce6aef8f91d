// Package debug lets the sight engine describe what it tested without changing
// any result. Drawers only observe.
package debug

import (
	"sync"

	"github.com/paulmach/orb"

	"chosenoffset.com/sightline/internal/core/geometry"
)

// Kind labels what a drawn item represents.
type Kind string

const (
	KindLOS        Kind = "los"
	KindShadow     Kind = "shadow"
	KindVisible    Kind = "visible"
	KindFootprint  Kind = "footprint"
	KindSightline  Kind = "sightline"
	KindTestPoint  Kind = "test-point"
	KindCenter     Kind = "center-guard"
	KindRangeLimit Kind = "range"
)

// Drawer receives debug geometry. ok carries the test outcome for that item.
type Drawer interface {
	Shape(kind Kind, s geometry.Shape, ok bool)
	Line(kind Kind, a, b orb.Point, ok bool)
	Point(kind Kind, p orb.Point, ok bool)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Shape(Kind, geometry.Shape, bool) {}
func (Nop) Line(Kind, orb.Point, orb.Point, bool) {}
func (Nop) Point(Kind, orb.Point, bool) {}

// Op is one recorded draw call. Only the fields relevant to the call are set.
type Op struct {
	Kind  Kind
	Shape geometry.Shape
	A, B  orb.Point
	OK    bool
}

// IsShape reports whether the op came from Shape.
func (o Op) IsShape() bool { return o.Shape != nil }

// Recorder keeps every draw call so a renderer can replay them later.
type Recorder struct {
	mu  sync.Mutex
	ops []Op
}

func (r *Recorder) Shape(kind Kind, s geometry.Shape, ok bool) {
	r.add(Op{Kind: kind, Shape: s, OK: ok})
}

func (r *Recorder) Line(kind Kind, a, b orb.Point, ok bool) {
	r.add(Op{Kind: kind, A: a, B: b, OK: ok})
}

func (r *Recorder) Point(kind Kind, p orb.Point, ok bool) {
	r.add(Op{Kind: kind, A: p, B: p, OK: ok})
}

func (r *Recorder) add(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

// Ops returns a copy of the recorded calls in order.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Count returns how many calls of kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = r.ops[:0]
	r.mu.Unlock()
}
