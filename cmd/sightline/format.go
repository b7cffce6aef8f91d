package main

import (
	"fmt"
	"io"
	"math"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/cover"
	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/world/scene"
)

type coverRow struct {
	algorithm cover.Algorithm
	level     cover.Level
}

type matrixRow struct {
	observer, target string
	visible          bool
	ratio            float64
	cover            cover.Level
}

func verdict(ok bool) string {
	if ok {
		return "VISIBLE"
	}
	return "HIDDEN"
}

func formatVision(r float64) string {
	if math.IsInf(r, 1) {
		return "unlimited"
	}
	return fmt.Sprintf("%.1f", r)
}

func printVisibility(w io.Writer, cfg *config.Config, obs, tgt *scene.Token, ok bool, ratio float64) {
	fmt.Fprintf(w, "%s -> %s\n", obs.Name, tgt.Name)
	fmt.Fprintf(w, "  eye:        %.1f (vision %s)\n", obs.EyePoint().Z, formatVision(obs.Vision))
	fmt.Fprintf(w, "  target:     %.1f-%.1f\n", tgt.Bottom, tgt.Top)
	fmt.Fprintf(w, "  algorithm:  %s", cfg.LOS.Algorithm)
	if cfg.LOS.Algorithm != config.LOSPoints {
		fmt.Fprintf(w, " (needs %.0f%%)", cfg.LOS.PercentArea*100)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  seen:       %.1f%%\n", ratio*100)
	fmt.Fprintf(w, "Result: %s\n", verdict(ok))
}

func printCover(w io.Writer, obs, tgt *scene.Token, rows []coverRow) {
	fmt.Fprintf(w, "Cover of %s from %s\n", tgt.Name, obs.Name)
	for _, r := range rows {
		fmt.Fprintf(w, "  %-18s %s\n", r.algorithm, r.level)
	}
}

func printFootprint(w io.Writer, t *scene.Token, fp geometry.Shape) {
	b := fp.Bound()
	fmt.Fprintf(w, "Footprint of %s\n", t.Name)
	fmt.Fprintf(w, "  box:    %.1f x %.1f (area %.1f)\n", t.Bound.Width(), t.Bound.Height(), t.Bound.Area())
	fmt.Fprintf(w, "  bounds: (%.1f, %.1f) - (%.1f, %.1f)\n", b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y())
	fmt.Fprintf(w, "  area:   %.1f\n", fp.Area())
	if _, ok := fp.(geometry.Rect); ok {
		fmt.Fprintln(w, "  unconstrained")
	} else {
		fmt.Fprintln(w, "  cut by walls")
	}
}

func printShadow(w io.Writer, obs *scene.Token, z float64, los, region geometry.Shape) {
	fmt.Fprintf(w, "Line of sight of %s at elevation %.1f\n", obs.Name, z)
	if los == nil || los.IsEmpty() {
		fmt.Fprintln(w, "  no line of sight")
		return
	}
	total := los.Area()
	seen := region.Area()
	fmt.Fprintf(w, "  los area:      %.1f\n", total)
	fmt.Fprintf(w, "  visible area:  %.1f (%.1f%%)\n", seen, seen/total*100)
	fmt.Fprintf(w, "  shadowed area: %.1f\n", total-seen)
}

func printMatrix(w io.Writer, rows []matrixRow) {
	fmt.Fprintf(w, "%-16s %-16s %-8s %7s  %s\n", "OBSERVER", "TARGET", "RESULT", "SEEN", "COVER")
	for _, r := range rows {
		fmt.Fprintf(w, "%-16s %-16s %-8s %6.1f%%  %s\n", r.observer, r.target, verdict(r.visible), r.ratio*100, r.cover)
	}
}
