package shader

import (
	"fmt"

	"github.com/san-kum/wavefield/internal/dynamo"
)

type WaveConfig struct {
	BaseAmplitude float64 `yaml:"base_amplitude"`
	Wavelength    float64 `yaml:"wavelength"`
	BaseSpeed     float64 `yaml:"base_speed"`
}

func DefaultWaveConfig() WaveConfig {
	return WaveConfig{BaseAmplitude: 100, Wavelength: 400, BaseSpeed: 200}
}

func (c *WaveConfig) Validate() error {
	if !(c.Wavelength > 0) {
		return fmt.Errorf("%w: wavelength must be positive, got %g", dynamo.ErrInvalidConfig, c.Wavelength)
	}
	return nil
}

// SizeFunc reports the drawing buffer size in device pixels.
type SizeFunc func() (width, height int)

// SineWave owns one program, vertex array and vertex buffer. Speed and
// amplitude start at the configured bases and move only through
// ChangeSpeed and ChangeAmplitude.
type SineWave struct {
	dev   Device
	size  SizeFunc
	cfg   WaveConfig
	clock dynamo.Clock

	program Handle
	vao     Handle
	vbo     Handle

	amplitudeLoc  Handle
	wavelengthLoc Handle
	timeLoc       Handle
	speedLoc      Handle
	widthLoc      Handle
	heightLoc     Handle
	position      int

	vertices  []float32
	speed     float64
	amplitude float64
}

// NewSineWave compiles and links the program and uploads the first vertex
// set. On failure every object created so far is deleted, no program is
// left bound, and the error wraps dynamo.ErrShaderCompile or
// dynamo.ErrShaderLink with the driver's log.
func NewSineWave(dev Device, size SizeFunc, cfg WaveConfig, clock dynamo.Clock) (*SineWave, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	program, err := buildProgram(dev)
	if err != nil {
		return nil, err
	}

	w := &SineWave{
		dev:       dev,
		size:      size,
		cfg:       cfg,
		clock:     clock,
		program:   program,
		speed:     cfg.BaseSpeed,
		amplitude: cfg.BaseAmplitude,
	}
	dev.UseProgram(program)

	w.vao = dev.CreateVertexArray()
	dev.BindVertexArray(w.vao)
	w.vbo = dev.CreateBuffer()

	w.amplitudeLoc = dev.UniformLocation(program, "amplitude")
	w.wavelengthLoc = dev.UniformLocation(program, "wavelength")
	w.timeLoc = dev.UniformLocation(program, "time")
	w.speedLoc = dev.UniformLocation(program, "speed")
	w.widthLoc = dev.UniformLocation(program, "canvas_width")
	w.heightLoc = dev.UniformLocation(program, "canvas_height")
	w.position = dev.AttribLocation(program, "position")

	dev.Uniform1f(w.wavelengthLoc, float32(cfg.Wavelength))
	w.Resize()
	return w, nil
}

func buildProgram(dev Device) (Handle, error) {
	vs, err := compile(dev, VertexStage)
	if err != nil {
		return nil, err
	}
	fs, err := compile(dev, FragmentStage)
	if err != nil {
		dev.DeleteShader(vs)
		return nil, err
	}

	p := dev.CreateProgram()
	dev.AttachShader(p, vs)
	dev.AttachShader(p, fs)
	dev.LinkProgram(p)

	// linked programs keep their own copy
	dev.DeleteShader(vs)
	dev.DeleteShader(fs)

	if !dev.ProgramLinked(p) {
		log := dev.ProgramInfoLog(p)
		dev.DeleteProgram(p)
		dev.UseProgram(nil)
		return nil, &dynamo.DiagnosticError{Stage: "program", Log: log, Wrapped: dynamo.ErrShaderLink}
	}
	return p, nil
}

func compile(dev Device, stage Stage) (Handle, error) {
	src, err := Source(dev.Dialect(), stage)
	if err != nil {
		return nil, err
	}
	s := dev.CreateShader(stage)
	dev.ShaderSource(s, src)
	dev.CompileShader(s)
	if !dev.ShaderCompiled(s) {
		log := dev.ShaderInfoLog(s)
		dev.DeleteShader(s)
		return nil, &dynamo.DiagnosticError{Stage: stage.String(), Log: log, Wrapped: dynamo.ErrShaderCompile}
	}
	return s, nil
}

// Resize picks up the current buffer size: size uniforms, one vertex per
// pixel column, attribute binding and viewport.
func (w *SineWave) Resize() {
	width, height := w.size()
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	w.dev.UseProgram(w.program)
	w.dev.Uniform1f(w.widthLoc, float32(width))
	w.dev.Uniform1f(w.heightLoc, float32(height))

	w.vertices = Vertices(width)
	w.dev.BindVertexArray(w.vao)
	w.dev.BindArrayBuffer(w.vbo)
	w.dev.BufferData(w.vertices)

	if w.position >= 0 {
		w.dev.EnableVertexAttribArray(w.position)
		w.dev.VertexAttribPointer(w.position, 2)
	}
	w.dev.Viewport(0, 0, width, height)
}

// Vertices returns (x, 0) for every pixel column 0..width-1.
func Vertices(width int) []float32 {
	if width <= 0 {
		return nil
	}
	v := make([]float32, 0, width*2)
	for x := 0; x < width; x++ {
		v = append(v, float32(x), 0)
	}
	return v
}

// Render draws one frame with time taken from the clock, in seconds.
func (w *SineWave) Render() {
	w.dev.ClearColor(0, 0, 0, 1)
	w.dev.Clear()

	w.dev.UseProgram(w.program)
	w.dev.BindVertexArray(w.vao)
	w.dev.Uniform1f(w.timeLoc, float32(w.clock.Now().Seconds()))
	w.dev.Uniform1f(w.speedLoc, float32(w.speed))
	w.dev.Uniform1f(w.amplitudeLoc, float32(w.amplitude))

	w.dev.DrawLineStrip(0, len(w.vertices)/2)
}

// Steps the demo hosts apply per arrow key press.
const (
	SpeedStep     = 20.0
	AmplitudeStep = 10.0
)

// ChangeSpeed adds delta to the speed. There is no bound.
func (w *SineWave) ChangeSpeed(delta float64) { w.speed += delta }

// ChangeAmplitude adds delta to the amplitude. There is no bound.
func (w *SineWave) ChangeAmplitude(delta float64) { w.amplitude += delta }

func (w *SineWave) Speed() float64 { return w.speed }

func (w *SineWave) Amplitude() float64 { return w.amplitude }

func (w *SineWave) Config() WaveConfig { return w.cfg }

// VertexCount is the number of vertices the next Render draws.
func (w *SineWave) VertexCount() int { return len(w.vertices) / 2 }

// Release deletes the GPU objects. The SineWave is unusable afterwards.
func (w *SineWave) Release() {
	if w.program == nil {
		return
	}
	w.dev.UseProgram(nil)
	w.dev.DeleteBuffer(w.vbo)
	w.dev.DeleteVertexArray(w.vao)
	w.dev.DeleteProgram(w.program)
	w.program, w.vao, w.vbo = nil, nil, nil
}
