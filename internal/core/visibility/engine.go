// Package visibility is the sight engine's host-facing API. It refines a host's
// 2D line-of-sight answer into range, visibility and cover verdicts that account
// for token footprint area, vertical extent and finite-height walls.
package visibility

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/paulmach/orb"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/cover"
	"chosenoffset.com/sightline/internal/core/debug"
	"chosenoffset.com/sightline/internal/core/footprint"
	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/overlap"
	"chosenoffset.com/sightline/internal/core/rangecheck"
	"chosenoffset.com/sightline/internal/core/shadows"
	"chosenoffset.com/sightline/internal/logger"
)

// Engine answers visibility and cover questions for one wall layout. It is safe
// for concurrent use; the only shared state is the footprint cache, which the
// host must invalidate when a target moves.
type Engine struct {
	cfg        config.Config
	cover      cover.Settings
	walls      footprint.WallQuerier
	builder    *footprint.Builder
	footprints *footprint.Cache
	log        *slog.Logger
	draw       debug.Drawer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug-level decision tracing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithDrawer sets where debug geometry goes. Drawing only happens when the
// config's Debug flag is on.
func WithDrawer(d debug.Drawer) Option {
	return func(e *Engine) { e.draw = d }
}

// New validates cfg and returns an engine over walls. A nil cfg means the
// defaults; a nil sweep means shadows.RaySweeper.
func New(cfg *config.Config, walls footprint.WallQuerier, sweep footprint.Sweeper, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to configure engine: %w", err)
	}
	cs, err := cfg.CoverSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to configure cover: %w", err)
	}

	builder := footprint.NewBuilder(walls, sweep)
	e := &Engine{
		cfg:        *cfg,
		cover:      cs,
		walls:      walls,
		builder:    builder,
		footprints: footprint.NewCache(builder),
		log:        logger.L(),
		draw:       debug.Nop{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.cfg.Debug {
		e.draw = debug.Nop{}
	}
	return e, nil
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() config.Config { return e.cfg }

// IsTargetVisible reports whether src can see target. testPoints are the
// host's pre-elevated sample points (see SamplePoints). Range is checked first;
// only points in range take part in the line-of-sight test.
func (e *Engine) IsTargetVisible(src VisionSource, target Token, testPoints []geometry.Point3d) bool {
	tester := rangecheck.Tester{Use3D: e.cfg.Range.Distance3D}
	rs := src.rangeSource()

	var inRange []geometry.Point3d
	for _, p := range testPoints {
		ok := tester.InRange(rs, p)
		e.draw.Point(debug.KindRangeLimit, p.XY(), ok)
		if ok {
			inRange = append(inRange, p)
		}
	}
	if len(inRange) == 0 {
		e.log.Debug("target out of range", "target", target.ID, "points", len(testPoints))
		return false
	}
	if src.LOS == nil || src.LOS.IsEmpty() {
		e.log.Debug("empty line of sight", "target", target.ID)
		return false
	}
	e.draw.Shape(debug.KindLOS, src.LOS, true)

	switch e.cfg.LOS.Algorithm {
	case config.LOSArea, config.LOSArea3D:
		return e.areaVisible(src, target)
	}
	return e.pointsVisible(src, target, inRange)
}

func (e *Engine) pointsVisible(src VisionSource, target Token, pts []geometry.Point3d) bool {
	walls := e.finiteWalls(bounds(src.Position.XY(), target.Bound))
	for _, p := range pts {
		ok := e.pointVisible(src, p, walls)
		e.draw.Point(debug.KindTestPoint, p.XY(), ok)
		if ok {
			return true
		}
	}
	e.log.Debug("no test point visible", "target", target.ID, "points", len(pts))
	return false
}

func (e *Engine) pointVisible(src VisionSource, p geometry.Point3d, walls []shadows.Segment) bool {
	if !src.LOS.Contains(p.XY()) {
		return false
	}
	return !shadows.AnyBlocks(src.Position, p, walls)
}

// areaVisible runs the center guard and then the footprint area test on each
// plane the target is checked at, passing if any plane passes.
func (e *Engine) areaVisible(src VisionSource, target Token) bool {
	p := e.cfg.LOS.PercentArea
	centerOK := e.centerVisible(src, target)
	e.draw.Point(debug.KindCenter, target.Center(), centerOK)

	switch {
	case centerOK && !geometry.AtLeast(p, 0.5):
		e.log.Debug("center visible, accepting", "target", target.ID, "percent", p)
		return true
	case !centerOK && geometry.AtLeast(p, 0.5):
		e.log.Debug("center hidden, rejecting", "target", target.ID, "percent", p)
		return false
	}

	fp := e.ConstrainedFootprint(target, e.cfg.Footprint.BoundaryScale)
	e.draw.Shape(debug.KindFootprint, fp, true)
	for _, z := range e.planes(src, target) {
		region := e.ShadowPolygonForElevation(src, z)
		ok := overlap.Visible(region, fp, p)
		e.draw.Shape(debug.KindVisible, region, ok)
		e.log.Debug("area test", "target", target.ID, "plane", z, "percent", p, "visible", ok)
		if ok {
			return true
		}
	}
	return false
}

func (e *Engine) centerVisible(src VisionSource, target Token) bool {
	z := math.Min(math.Max(src.Position.Z, target.Bottom), target.Top)
	if e.cfg.LOS.Algorithm == config.LOSArea {
		z = target.Bottom
	}
	c := geometry.At(target.Center(), z)
	return e.pointVisible(src, c, e.finiteWalls(bounds(src.Position.XY(), target.Bound)))
}

// planes returns the elevations the area test runs at: the target's bottom in
// 2D, or the planes picked by Planes in 3D.
func (e *Engine) planes(src VisionSource, target Token) []float64 {
	if e.cfg.LOS.Algorithm == config.LOSArea3D {
		return Planes(src.Position.Z, target)
	}
	return []float64{target.Bottom}
}

// VisibleRatio returns the largest fraction of target's constrained footprint
// that src sees across the tested planes.
func (e *Engine) VisibleRatio(src VisionSource, target Token) float64 {
	return e.visibleRatioAt(src, target, e.planes(src, target))
}

// ConstrainedFootprint returns target's footprint, scaled and cut down by any
// wall passing through it. Results are cached by target ID until Invalidate.
func (e *Engine) ConstrainedFootprint(target Token, scale float64) geometry.Shape {
	if target.ID == "" {
		return e.builder.Build(target.Bound, scale)
	}
	fp := e.footprints.Get(target.ID, target.Bound, scale)
	if _, ok := fp.(geometry.Rect); !ok {
		e.log.Debug("footprint constrained by walls", "target", target.ID, "area", fp.Area())
	}
	return fp
}

// ShadowPolygonForElevation returns src's line of sight at elevation z with the
// shadows of finite-height walls removed.
func (e *Engine) ShadowPolygonForElevation(src VisionSource, z float64) geometry.Shape {
	if src.LOS == nil || src.LOS.IsEmpty() {
		return geometry.Region{}
	}
	walls := e.finiteWalls(src.LOS.Bound().Extend(src.Position.XY()))
	if len(walls) == 0 {
		return src.LOS
	}
	set := shadows.ShadowSet(src.Position, src.LOS, walls, z)
	for _, s := range set {
		e.draw.Shape(debug.KindShadow, s, false)
	}
	e.log.Debug("shadows projected", "plane", z, "walls", len(walls), "shadows", len(set))
	if len(set) == 0 {
		return src.LOS
	}
	return geometry.Difference(src.LOS, geometry.Union(set...))
}

// ClassifyCover returns the cover target has from observer under the engine's
// configured cover settings.
func (e *Engine) ClassifyCover(observer Observer, target Token) cover.Level {
	return e.ClassifyCoverWith(e.cover, observer, target)
}

// ClassifyCoverWith classifies with explicit settings, which must already be
// valid (see cover.NewSettings).
func (e *Engine) ClassifyCoverWith(s cover.Settings, observer Observer, target Token) cover.Level {
	in := cover.Input{
		Observer: observer.Token.coverToken(),
		Eye:      observer.Vision.Position.Z,
		Target:   target.coverToken(),
		Walls:    e.query(observer.Token.Bound.Bound().Union(target.Bound.Bound())),
		VisibleRatio: func() float64 {
			if s.Algorithm == cover.Area3D {
				return e.visibleRatioAt(observer.Vision, target, Planes(observer.Vision.Position.Z, target))
			}
			return e.visibleRatioAt(observer.Vision, target, []float64{target.Bottom})
		},
		Trace: func(from, to geometry.Point3d, blocked bool) {
			e.draw.Line(debug.KindSightline, from.XY(), to.XY(), !blocked)
		},
	}
	level := cover.Classifier{Settings: s}.Classify(in)
	e.log.Debug("cover classified", "target", target.ID, "algorithm", s.Algorithm, "level", level)
	return level
}

func (e *Engine) visibleRatioAt(src VisionSource, target Token, planes []float64) float64 {
	if src.LOS == nil || src.LOS.IsEmpty() {
		return 0
	}
	fp := e.ConstrainedFootprint(target, e.cfg.Footprint.BoundaryScale)
	best := 0.0
	for _, z := range planes {
		best = math.Max(best, overlap.Ratio(e.ShadowPolygonForElevation(src, z), fp))
	}
	return best
}

// Invalidate drops the cached footprint of target id. Call it whenever the
// target moves or its vision is recomputed.
func (e *Engine) Invalidate(id string) {
	e.footprints.Invalidate(id)
}

// Reset drops every cached footprint, e.g. after walls change.
func (e *Engine) Reset() {
	e.footprints.Reset()
}

func (e *Engine) query(b orb.Bound) []shadows.Segment {
	if e.walls == nil {
		return nil
	}
	return e.walls.QueryWalls(b)
}

func (e *Engine) finiteWalls(b orb.Bound) []shadows.Segment {
	var out []shadows.Segment
	for _, w := range e.query(b) {
		if !w.FullHeight() {
			out = append(out, w)
		}
	}
	return out
}

func bounds(p orb.Point, r geometry.Rect) orb.Bound {
	return r.Bound().Extend(p)
}
