package gui

import (
	"context"
	"fmt"
	"image/color"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/wavefield/internal/config"
	"github.com/san-kum/wavefield/internal/frame"
	"github.com/san-kum/wavefield/internal/raster"
	"github.com/san-kum/wavefield/internal/sim"
	"github.com/san-kum/wavefield/internal/theme"
	"github.com/san-kum/wavefield/internal/viz"
)

// BackgroundWindow shows the wave background. The compositor draws into a
// software surface whose pixels are streamed into a texture every frame.
type BackgroundWindow struct {
	cfg   *config.Config
	log   *zap.Logger
	queue *frame.Queue
	hub   *sim.EventHub
	modes *theme.Switch
	pref  *theme.StaticPreference
	surf  *raster.Surface
	bg    *sim.Background

	tex     rl.Texture2D
	texW    int
	texH    int
	pixels  []color.RGBA
	mouse   rl.Vector2
	paused  bool
	showHUD bool
	start   time.Time
}

func NewBackgroundWindow(cfg *config.Config, log *zap.Logger, obs sim.Observer) *BackgroundWindow {
	if log == nil {
		log = zap.NewNop()
	}
	w := &BackgroundWindow{
		cfg:     cfg,
		log:     log,
		queue:   frame.NewQueue(),
		hub:     sim.NewEventHub(),
		modes:   theme.NewSwitch(cfg.Theme),
		pref:    theme.EnvPreference(nil),
		showHUD: true,
	}
	w.surf = raster.New(viz.Viewport{
		Width:  float64(cfg.Window.Width),
		Height: float64(cfg.Window.Height),
		DPR:    cfg.Window.DPR,
	})
	w.bg = sim.NewBackground(w.surf, w.queue, w.hub, w.modes, w.pref, sim.Options{
		Physics:  cfg.Physics,
		Styles:   cfg.Styles,
		Layout:   cfg.Layout,
		Logger:   log,
		Observer: obs,
	})
	return w
}

// Queue is the window's refresh queue. Other goroutines hand work to the
// window with Queue().Post.
func (w *BackgroundWindow) Queue() *frame.Queue { return w.queue }

// Apply takes a reloaded configuration: physics constants, styles, layout
// and theme mode. Window geometry keeps its startup values. It must run on
// the window's loop.
func (w *BackgroundWindow) Apply(cfg *config.Config) {
	next := *cfg
	next.Window = w.cfg.Window
	w.cfg = &next
	w.bg.SetPhysics(next.Physics)
	w.bg.SetStyles(next.Styles)
	w.bg.SetLayout(next.Layout)
	w.modes.Set(next.Theme)
}

// Run opens the window and blocks until it is closed or ctx is done.
func (w *BackgroundWindow) Run(ctx context.Context) error {
	initWindow(w.cfg.Window.Title, w.cfg.Window.Width, w.cfg.Window.Height, w.cfg.Window.FPS)
	defer rl.CloseWindow()

	w.syncViewport()
	if err := w.bg.Start(); err != nil {
		return fmt.Errorf("background window: %w", err)
	}
	defer w.bg.Stop()
	defer w.unloadTexture()

	w.start = time.Now()
	w.mouse = rl.GetMousePosition()
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if quitPressed() {
			break
		}
		w.handleInput()
		w.queue.Flush(time.Since(w.start))
		w.upload()
		w.draw()
	}
	return nil
}

func (w *BackgroundWindow) syncViewport() {
	w.surf.SetViewport(viz.Viewport{
		Width:  float64(rl.GetScreenWidth()),
		Height: float64(rl.GetScreenHeight()),
		DPR:    windowDPR(w.cfg.Window.DPR),
	})
}

func (w *BackgroundWindow) handleInput() {
	if rl.IsWindowResized() {
		w.syncViewport()
		w.hub.EmitResize()
	}

	if m := rl.GetMousePosition(); m != w.mouse {
		w.mouse = m
		w.hub.EmitPointerMove(float64(m.X), float64(m.Y))
	}

	switch {
	case rl.IsKeyPressed(rl.KeyT):
		mode := w.modes.Toggle()
		w.log.Debug("Theme toggled", zap.Stringer("mode", mode))
	case rl.IsKeyPressed(rl.KeyD):
		w.pref.Set(!w.pref.PrefersDark())
	case rl.IsKeyPressed(rl.KeyH):
		w.showHUD = !w.showHUD
	case rl.IsKeyPressed(rl.KeySpace):
		w.paused = !w.paused
		if w.paused {
			w.bg.Stop()
		} else if err := w.bg.Start(); err != nil {
			w.log.Warn("Resume failed", zap.Error(err))
		}
	}
}

// upload copies the backing store into the texture, recreating it when
// the backing size changed.
func (w *BackgroundWindow) upload() {
	img := w.surf.Image()
	pw, ph := img.Rect.Dx(), img.Rect.Dy()
	if pw != w.texW || ph != w.texH {
		w.unloadTexture()
		rlImg := rl.NewImageFromImage(img)
		w.tex = rl.LoadTextureFromImage(rlImg)
		rl.UnloadImage(rlImg)
		rl.SetTextureFilter(w.tex, rl.FilterBilinear)
		w.texW, w.texH = pw, ph
		w.pixels = make([]color.RGBA, pw*ph)
	}

	for y := 0; y < ph; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < pw; x++ {
			i := x * 4
			w.pixels[y*pw+x] = color.RGBA{R: row[i], G: row[i+1], B: row[i+2], A: row[i+3]}
		}
	}
	rl.UpdateTexture(w.tex, w.pixels)
}

func (w *BackgroundWindow) unloadTexture() {
	if w.texW == 0 && w.texH == 0 {
		return
	}
	rl.UnloadTexture(w.tex)
	w.texW, w.texH = 0, 0
}

func (w *BackgroundWindow) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	src := rl.NewRectangle(0, 0, float32(w.texW), float32(w.texH))
	dst := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	rl.DrawTexturePro(w.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)

	if w.showHUD {
		w.drawHUD()
	}
	rl.EndDrawing()
}

func (w *BackgroundWindow) drawHUD() {
	text, dim := ColSelect, ColText
	if !w.bg.Scheme().IsDark() {
		text, dim = ColInk, ColInkDim
	}
	h := rl.GetScreenHeight()

	out := w.bg.State().Outputs(&w.cfg.Physics)
	drawText("wavefield", 30, 30, 24, text)
	drawText(fmt.Sprintf(":: %s/%s", w.modes.Mode(), w.bg.Scheme()), 170, 34, 16, dim)
	drawText(fmt.Sprintf("v %.3f  stretch %.3f  offset %.1f", out.PhaseSpeed, out.Stretch, out.XOffset), 30, 60, 14, dim)

	status := "RUNNING"
	if w.paused {
		status = "PAUSED"
	}
	drawText(status, 30, h-70, 16, text)
	drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, h-40, 14, dim)
	drawText("[T] THEME  [D] SYSTEM DARK  [SPACE] PAUSE  [H] HUD  [Q] QUIT", 140, h-40, 14, dim)
}
