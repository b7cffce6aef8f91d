package viewer

import (
	"fmt"
	"image/color"

	"chosenoffset.com/sightline/internal/render"
)

const statusHeight = 40

var (
	colorObserver = color.NRGBA{90, 170, 255, 255}
	colorTarget   = color.NRGBA{255, 200, 60, 255}
	colorToken    = color.NRGBA{140, 140, 140, 255}
)

// Draw renders the scene, the last evaluation's debug geometry and a status line.
func (v *Viewer) Draw(screen render.Image) {
	screen.Fill(background)

	v.Overlay.Walls(screen, v.Scene.Walls())
	v.Overlay.Replay(screen, v.recorder.Ops())
	v.drawTokens(screen)
	v.drawStatus(screen)
}

func (v *Viewer) drawTokens(screen render.Image) {
	for i, t := range v.Scene.Tokens() {
		clr := colorToken
		switch i {
		case v.observer:
			clr = colorObserver
		case v.target:
			clr = colorTarget
		}
		v.Overlay.Box(screen, t.Bound, clr)

		x, y := v.Overlay.Camera.ToScreen(t.Center())
		label := fmt.Sprintf("%s %.0f-%.0f", t.Name, t.Bottom, t.Top)
		w, h := v.Renderer.MeasureText(label)
		v.Renderer.DrawText(screen, label, int(x)-w/2, int(y)-h/2)
	}
}

func (v *Viewer) drawStatus(screen render.Image) {
	_, h := screen.Size()
	y := h - statusHeight + 4

	verdict := "hidden"
	if v.Visible {
		verdict = "visible"
	}
	obs := v.Observer()
	v.Renderer.DrawText(screen, fmt.Sprintf("%s -> %s: %s, cover %s, %.0f%% seen",
		obs.Name, v.Target().Name, verdict, v.Cover, v.Ratio*100), 4, y)
	v.Renderer.DrawText(screen, fmt.Sprintf("eye %.1f  los %s  cover %s  [WASD move, Q/E height, Tab target, Space observer, V/C algorithm]",
		obs.EyePoint().Z, v.cfg.LOS.Algorithm, v.cfg.Cover.Algorithm), 4, y+16)
}
