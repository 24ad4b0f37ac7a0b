//go:build js && wasm
// +build js,wasm

package web

import (
	"fmt"
	"syscall/js"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/shader"
	"github.com/san-kum/wavefield/internal/sim"
	"github.com/san-kum/wavefield/internal/theme"
	"github.com/san-kum/wavefield/internal/viz"
)

// StartBackground runs the wave background on el until Stop is called on
// the returned Background.
func StartBackground(el js.Value, modes theme.Source, opts sim.Options) (*sim.Background, error) {
	bg := sim.NewBackground(NewCanvas(el), NewAnimationFrames(), NewWindow(), modes, NewMediaPreference(), opts)
	if err := bg.Start(); err != nil {
		return nil, err
	}
	return bg, nil
}

// Sine runs the shader sine demo on a WebGL2 canvas.
type Sine struct {
	wave    *shader.SineWave
	driver  *sim.Driver
	cancels []func()
}

var sineKeys = map[string]struct{ speed, amplitude float64 }{
	"ArrowRight": {shader.SpeedStep, 0},
	"ArrowLeft":  {-shader.SpeedStep, 0},
	"ArrowUp":    {0, shader.AmplitudeStep},
	"ArrowDown":  {0, -shader.AmplitudeStep},
}

func StartSine(el js.Value, cfg shader.WaveConfig, log *zap.Logger) (*Sine, error) {
	canvas := NewCanvas(el)
	gl, err := NewGL(el)
	if err != nil {
		return nil, fmt.Errorf("sine: %w", err)
	}

	fit := func() {
		st := viz.NewSurfaceState(canvas.Viewport())
		canvas.SetBackingSize(st.PixelWidth, st.PixelHeight)
	}
	fit()

	wave, err := shader.NewSineWave(gl, canvas.BufferSize, cfg, dynamo.NewSystemClock())
	if err != nil {
		log.Error("Shader setup failed", zap.Error(err))
		return nil, err
	}

	s := &Sine{wave: wave}
	s.driver = sim.NewDriver(NewAnimationFrames(), func(time.Duration) { wave.Render() })

	win := NewWindow()
	s.cancels = append(s.cancels,
		win.OnResize(func() {
			fit()
			wave.Resize()
		}),
		win.OnKey(func(key string) {
			d, ok := sineKeys[key]
			if !ok {
				return
			}
			wave.ChangeSpeed(d.speed)
			wave.ChangeAmplitude(d.amplitude)
		}),
	)
	s.driver.Start()
	return s, nil
}

func (s *Sine) Wave() *shader.SineWave { return s.wave }

// Stop removes the listeners, cancels the next frame and frees the GPU
// objects.
func (s *Sine) Stop() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	s.driver.Stop()
	s.wave.Release()
}
