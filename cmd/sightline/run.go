package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/cover"
	"chosenoffset.com/sightline/internal/core/visibility"
	"chosenoffset.com/sightline/internal/logger"
	ebitenrender "chosenoffset.com/sightline/internal/render/ebiten"
	"chosenoffset.com/sightline/internal/viewer"
	"chosenoffset.com/sightline/internal/world/scene"
)

// session is a loaded scene with an engine configured for it.
type session struct {
	cfg    *config.Config
	scene  *scene.Scene
	engine *visibility.Engine
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.los != "" {
		cfg.LOS.Algorithm = config.LOSAlgorithm(opts.los)
	}
	if opts.percent >= 0 {
		cfg.LOS.PercentArea = opts.percent
	}
	if opts.scale > 0 {
		cfg.Footprint.BoundaryScale = opts.scale
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func openSession(opts *options, scenePath string) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	s, err := scene.Load(scenePath)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}

	if opts.debug {
		logger.SetupWriter(os.Stderr, "debug", os.Getenv("SIGHTLINE_LOG_FORMAT"))
	}
	e, err := s.NewEngine(cfg, visibility.WithLogger(logger.L().With("scene", s.Name)))
	if err != nil {
		return nil, err
	}
	logger.L().Debug("scene loaded", "scene", s.Name, "walls", len(s.Walls()), "tokens", len(s.Tokens()))
	return &session{cfg: cfg, scene: s, engine: e}, nil
}

func (s *session) pair(observerID, targetID string) (*scene.Token, *scene.Token, error) {
	obs, err := s.scene.Token(observerID)
	if err != nil {
		return nil, nil, err
	}
	tgt, err := s.scene.Token(targetID)
	if err != nil {
		return nil, nil, err
	}
	return obs, tgt, nil
}

func (s *session) visible(obs, tgt *scene.Token) (bool, float64) {
	src := s.scene.VisionSource(obs)
	pts := visibility.SamplePoints(tgt.Token, s.cfg.Range.Points, s.cfg.Range.Distance3D)
	return s.engine.IsTargetVisible(src, tgt.Token, pts), s.engine.VisibleRatio(src, tgt.Token)
}

func runVisible(w io.Writer, opts *options, scenePath, observerID, targetID string) error {
	sess, err := openSession(opts, scenePath)
	if err != nil {
		return err
	}
	obs, tgt, err := sess.pair(observerID, targetID)
	if err != nil {
		return err
	}
	ok, ratio := sess.visible(obs, tgt)
	printVisibility(w, sess.cfg, obs, tgt, ok, ratio)
	return nil
}

func runCover(w io.Writer, opts *options, scenePath, observerID, targetID, algorithm string, all bool) error {
	sess, err := openSession(opts, scenePath)
	if err != nil {
		return err
	}
	obs, tgt, err := sess.pair(observerID, targetID)
	if err != nil {
		return err
	}

	base, err := sess.cfg.CoverSettings()
	if err != nil {
		return err
	}
	algs := []cover.Algorithm{base.Algorithm}
	switch {
	case all:
		algs = cover.Algorithms
	case algorithm != "":
		a, err := cover.ParseAlgorithm(algorithm)
		if err != nil {
			return err
		}
		algs = []cover.Algorithm{a}
	}

	observer := sess.scene.Observer(obs)
	rows := make([]coverRow, 0, len(algs))
	for _, a := range algs {
		s := base
		s.Algorithm = a
		rows = append(rows, coverRow{algorithm: a, level: sess.engine.ClassifyCoverWith(s, observer, tgt.Token)})
	}
	printCover(w, obs, tgt, rows)
	return nil
}

func runFootprint(w io.Writer, opts *options, scenePath, tokenID string) error {
	sess, err := openSession(opts, scenePath)
	if err != nil {
		return err
	}
	t, err := sess.scene.Token(tokenID)
	if err != nil {
		return err
	}
	fp := sess.engine.ConstrainedFootprint(t.Token, sess.cfg.Footprint.BoundaryScale)
	printFootprint(w, t, fp)
	return nil
}

func runShadow(w io.Writer, opts *options, scenePath, observerID string, z float64) error {
	sess, err := openSession(opts, scenePath)
	if err != nil {
		return err
	}
	obs, err := sess.scene.Token(observerID)
	if err != nil {
		return err
	}
	src := sess.scene.VisionSource(obs)
	region := sess.engine.ShadowPolygonForElevation(src, z)
	printShadow(w, obs, z, src.LOS, region)
	return nil
}

func runMatrix(w io.Writer, opts *options, scenePath string) error {
	sess, err := openSession(opts, scenePath)
	if err != nil {
		return err
	}
	var rows []matrixRow
	for _, obs := range sess.scene.Tokens() {
		observer := sess.scene.Observer(obs)
		for _, tgt := range sess.scene.Tokens() {
			if obs == tgt {
				continue
			}
			ok, ratio := sess.visible(obs, tgt)
			rows = append(rows, matrixRow{
				observer: obs.Name,
				target:   tgt.Name,
				visible:  ok,
				ratio:    ratio,
				cover:    sess.engine.ClassifyCover(observer, tgt.Token),
			})
		}
	}
	printMatrix(w, rows)
	return nil
}

func runList(w io.Writer, dir string) error {
	entries, err := scene.ScanDirectory(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		s, err := scene.Load(e.Path)
		if err != nil {
			fmt.Fprintf(w, "%-20s  invalid: %v\n", e.Name, err)
			continue
		}
		fmt.Fprintf(w, "%-20s  %s (%d walls, %d tokens)\n", e.Name, s.Name, len(s.Walls()), len(s.Tokens()))
	}
	return nil
}

func runView(opts *options, scenePath string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	s, err := scene.Load(scenePath)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}

	v, err := viewer.New(s, cfg, ebitenrender.NewRenderer(), ebitenrender.NewInputManager())
	if err != nil {
		return err
	}

	engine := ebitenrender.NewEngine()
	w, h := v.Size()
	engine.SetWindowSize(w, h)
	engine.SetWindowTitle("sightline - " + s.Name)
	engine.SetWindowResizable(false)

	logger.L().Info("starting viewer", "scene", s.Name)
	if err := engine.RunGame(v); err != nil && !errors.Is(err, viewer.ErrQuit) {
		return err
	}
	return nil
}
