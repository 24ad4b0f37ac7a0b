// Package gui hosts the wave background and the sine demo in raylib
// windows. Each window drives a frame.Queue from its draw loop.
package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUD colours. The dark set is used over the dark palette and the light
// set over the light one.
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColInk     = rl.NewColor(40, 40, 40, 255)
	ColInkDim  = rl.NewColor(120, 120, 120, 255)
)

func drawText(text string, x, y, size int, c color.RGBA) {
	rl.DrawText(text, int32(x), int32(y), int32(size), c)
}

func initWindow(title string, width, height, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// windowDPR is the configured ratio, or the monitor's scale when unset.
func windowDPR(configured float64) float64 {
	if configured > 0 {
		return configured
	}
	scale := rl.GetWindowScaleDPI()
	if scale.X <= 0 {
		return 1
	}
	return float64(scale.X)
}

func quitPressed() bool {
	return rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape)
}
