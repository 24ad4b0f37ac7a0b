package gui

import (
	"context"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/frame"
	"github.com/san-kum/wavefield/internal/shader"
	"github.com/san-kum/wavefield/internal/shader/glcore"
	"github.com/san-kum/wavefield/internal/sim"
)

// SineWindow runs the shader sine demo on the window's core-profile
// context. Arrow keys move speed and amplitude.
type SineWindow struct {
	title string
	w, h  int
	fps   int
	cfg   shader.WaveConfig
	log   *zap.Logger
	queue *frame.Queue
}

func NewSineWindow(title string, width, height, fps int, cfg shader.WaveConfig, log *zap.Logger) *SineWindow {
	if log == nil {
		log = zap.NewNop()
	}
	return &SineWindow{title: title, w: width, h: height, fps: fps, cfg: cfg, log: log, queue: frame.NewQueue()}
}

func (s *SineWindow) Queue() *frame.Queue { return s.queue }

// Run blocks until the window closes or ctx is done. Shader setup
// failures are returned with the driver's log attached.
func (s *SineWindow) Run(ctx context.Context) error {
	initWindow(s.title, s.w, s.h, s.fps)
	defer rl.CloseWindow()

	dev, err := glcore.New()
	if err != nil {
		return err
	}
	s.log.Info("OpenGL ready", zap.String("version", dev.Version()))

	size := func() (int, int) { return rl.GetRenderWidth(), rl.GetRenderHeight() }
	wave, err := shader.NewSineWave(dev, size, s.cfg, dynamo.NewSystemClock())
	if err != nil {
		return fmt.Errorf("sine window: %w", err)
	}
	defer wave.Release()

	driver := sim.NewDriver(s.queue, func(time.Duration) { wave.Render() })
	driver.Start()
	defer driver.Stop()

	start := time.Now()
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if quitPressed() {
			break
		}
		if rl.IsWindowResized() {
			wave.Resize()
		}
		if steerSine(wave, pressedKey) {
			s.log.Debug("Sine changed",
				zap.Float64("speed", wave.Speed()),
				zap.Float64("amplitude", wave.Amplitude()),
			)
		}

		rl.BeginDrawing()
		s.queue.Flush(time.Since(start))
		drawText(fmt.Sprintf("speed %.0f  amplitude %.0f", wave.Speed(), wave.Amplitude()), 20, 20, 16, ColText)
		drawText("[←→] SPEED  [↑↓] AMPLITUDE  [Q] QUIT", 20, rl.GetScreenHeight()-30, 14, ColTextDim)
		rl.EndDrawing()
	}
	return nil
}

// sineSteering is what steerSine needs from a SineWave.
type sineSteering interface {
	ChangeSpeed(delta float64)
	ChangeAmplitude(delta float64)
}

func pressedKey(key int32) bool { return rl.IsKeyPressed(key) }

// steerSine applies the arrow keys reported by pressed and reports whether
// anything changed.
func steerSine(w sineSteering, pressed func(int32) bool) bool {
	changed := false
	if pressed(rl.KeyRight) {
		w.ChangeSpeed(shader.SpeedStep)
		changed = true
	}
	if pressed(rl.KeyLeft) {
		w.ChangeSpeed(-shader.SpeedStep)
		changed = true
	}
	if pressed(rl.KeyUp) {
		w.ChangeAmplitude(shader.AmplitudeStep)
		changed = true
	}
	if pressed(rl.KeyDown) {
		w.ChangeAmplitude(-shader.AmplitudeStep)
		changed = true
	}
	return changed
}
