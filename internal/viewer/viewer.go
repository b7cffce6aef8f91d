// Package viewer is an interactive debug view of a scene: one token observes
// another while the sight engine's decisions are drawn over the map.
package viewer

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/cover"
	"chosenoffset.com/sightline/internal/core/debug"
	"chosenoffset.com/sightline/internal/core/visibility"
	"chosenoffset.com/sightline/internal/logger"
	"chosenoffset.com/sightline/internal/render"
	"chosenoffset.com/sightline/internal/world/scene"
)

// ErrQuit is returned from Update when the user closes the viewer.
var ErrQuit = errors.New("viewer closed")

var background = color.NRGBA{20, 20, 28, 255}

const pixelsPerTile = 32

// Viewer holds the scene being inspected and the engine judging it.
type Viewer struct {
	Scene    *scene.Scene
	Renderer render.Renderer
	InputMgr render.InputManager
	Overlay  render.Overlay

	cfg      config.Config
	engine   *visibility.Engine
	recorder *debug.Recorder
	log      *slog.Logger

	observer, target int
	step             float64
	width, height    int

	// Last evaluation
	Visible bool
	Cover   cover.Level
	Ratio   float64
	dirty   bool
}

// New builds a viewer over s. It needs at least two tokens.
func New(s *scene.Scene, cfg *config.Config, r render.Renderer, in render.InputManager) (*Viewer, error) {
	if len(s.Tokens()) < 2 {
		return nil, fmt.Errorf("scene %q needs an observer and a target, has %d tokens", s.Name, len(s.Tokens()))
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	scale := pixelsPerTile / s.TileSize
	v := &Viewer{
		Scene:    s,
		Renderer: r,
		InputMgr: in,
		Overlay: render.Overlay{
			Renderer: r,
			Camera:   render.Camera{X: s.Bounds.Left, Y: s.Bounds.Top, Scale: scale},
		},
		cfg:      *cfg,
		recorder: &debug.Recorder{},
		log:      logger.L(),
		target:   1,
		step:     s.TileSize / 2,
		width:    int(s.Bounds.Width() * scale),
		height:   int(s.Bounds.Height()*scale) + statusHeight,
	}
	v.cfg.Debug = true
	if err := v.rebuild(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Viewer) rebuild() error {
	e, err := v.Scene.NewEngine(&v.cfg, visibility.WithDrawer(v.recorder), visibility.WithLogger(v.log))
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	v.engine = e
	v.dirty = true
	return nil
}

// Observer returns the observing token.
func (v *Viewer) Observer() *scene.Token { return v.Scene.Tokens()[v.observer] }

// Target returns the observed token.
func (v *Viewer) Target() *scene.Token { return v.Scene.Tokens()[v.target] }

// Config returns the configuration currently in use.
func (v *Viewer) Config() config.Config { return v.cfg }

// Update handles input and re-evaluates after any change.
func (v *Viewer) Update() error {
	in := v.InputMgr
	if in.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}

	var dx, dy float64
	switch {
	case in.IsKeyJustPressed(render.KeyW):
		dy = -v.step
	case in.IsKeyJustPressed(render.KeyS):
		dy = v.step
	case in.IsKeyJustPressed(render.KeyA):
		dx = -v.step
	case in.IsKeyJustPressed(render.KeyD):
		dx = v.step
	}
	if dx != 0 || dy != 0 {
		v.move(dx, dy)
	}

	switch {
	case in.IsKeyJustPressed(render.KeyQ):
		v.raise(-v.step)
	case in.IsKeyJustPressed(render.KeyE):
		v.raise(v.step)
	}

	if in.IsKeyJustPressed(render.KeyTab) {
		v.target = v.next(v.target, v.observer)
		v.dirty = true
	}
	if in.IsKeyJustPressed(render.KeySpace) {
		v.observer = v.next(v.observer, v.target)
		v.dirty = true
	}
	if in.IsKeyJustPressed(render.KeyV) {
		if err := v.cycleLOS(); err != nil {
			return err
		}
	}
	if in.IsKeyJustPressed(render.KeyC) {
		if err := v.cycleCover(); err != nil {
			return err
		}
	}

	if v.dirty {
		v.Evaluate()
	}
	return nil
}

func (v *Viewer) move(dx, dy float64) {
	id := v.Observer().ID
	if err := v.Scene.MoveToken(id, dx, dy); err != nil {
		v.log.Warn("move failed", "token", id, "error", err)
		return
	}
	v.engine.Invalidate(id)
	v.dirty = true
}

func (v *Viewer) raise(dz float64) {
	id := v.Observer().ID
	if err := v.Scene.Raise(id, dz); err != nil {
		v.log.Warn("raise failed", "token", id, "error", err)
		return
	}
	v.dirty = true
}

// next returns the token index after i, skipping skip.
func (v *Viewer) next(i, skip int) int {
	n := len(v.Scene.Tokens())
	for {
		i = (i + 1) % n
		if i != skip {
			return i
		}
	}
}

var losCycle = []config.LOSAlgorithm{config.LOSPoints, config.LOSArea, config.LOSArea3D}

func (v *Viewer) cycleLOS() error {
	for i, a := range losCycle {
		if a == v.cfg.LOS.Algorithm {
			v.cfg.LOS.Algorithm = losCycle[(i+1)%len(losCycle)]
			break
		}
	}
	v.log.Info("los algorithm", "algorithm", v.cfg.LOS.Algorithm)
	return v.rebuild()
}

func (v *Viewer) cycleCover() error {
	algs := cover.Algorithms
	for i, a := range algs {
		if string(a) == v.cfg.Cover.Algorithm {
			v.cfg.Cover.Algorithm = string(algs[(i+1)%len(algs)])
			break
		}
	}
	v.log.Info("cover algorithm", "algorithm", v.cfg.Cover.Algorithm)
	return v.rebuild()
}

// Evaluate re-runs visibility and cover for the current pair, recording the
// debug geometry drawn by the next frame.
func (v *Viewer) Evaluate() {
	v.recorder.Reset()
	obs, tgt := v.Observer(), v.Target()

	src := v.Scene.VisionSource(obs)
	pts := visibility.SamplePoints(tgt.Token, v.cfg.Range.Points, v.cfg.Range.Distance3D)
	v.Visible = v.engine.IsTargetVisible(src, tgt.Token, pts)
	v.Cover = v.engine.ClassifyCover(v.Scene.Observer(obs), tgt.Token)
	v.Ratio = v.engine.VisibleRatio(src, tgt.Token)
	v.dirty = false

	v.log.Debug("evaluated", "observer", obs.Name, "target", tgt.Name,
		"visible", v.Visible, "cover", v.Cover, "ratio", v.Ratio)
}

// Recorder exposes the debug geometry of the last evaluation.
func (v *Viewer) Recorder() *debug.Recorder { return v.recorder }

// Layout implements render.Game.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.width, v.height
}

// Size returns the preferred window size.
func (v *Viewer) Size() (int, int) {
	return v.width, v.height
}
