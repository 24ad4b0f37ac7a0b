// Package shader draws the standalone sine-wave demo through a vertex and
// fragment shader pair.
//
// The renderer talks to the GPU through [Device], a narrow, WebGL2-shaped
// interface. The browser host implements it on a WebGL2 context and
// [github.com/san-kum/wavefield/internal/shader/glcore] on desktop OpenGL.
package shader

// Handle is an opaque GPU object: shader, program, buffer, vertex array or
// uniform location. A nil Handle is never a valid object.
type Handle any

type Dialect int

const (
	// GLSL330 is desktop OpenGL 3.3 core.
	GLSL330 Dialect = iota
	// GLSLES300 is WebGL2 / OpenGL ES 3.0.
	GLSLES300
)

type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	if s == FragmentStage {
		return "fragment"
	}
	return "vertex"
}

// Device is the subset of a GL context the renderer uses. Methods mirror
// their WebGL2 namesakes; DrawLineStrip is drawArrays(LINE_STRIP, ...).
type Device interface {
	Dialect() Dialect

	CreateShader(stage Stage) Handle
	ShaderSource(s Handle, src string)
	CompileShader(s Handle)
	ShaderCompiled(s Handle) bool
	ShaderInfoLog(s Handle) string
	DeleteShader(s Handle)

	CreateProgram() Handle
	AttachShader(p, s Handle)
	LinkProgram(p Handle)
	ProgramLinked(p Handle) bool
	ProgramInfoLog(p Handle) string
	DeleteProgram(p Handle)
	// UseProgram binds p; a nil p unbinds.
	UseProgram(p Handle)

	UniformLocation(p Handle, name string) Handle
	AttribLocation(p Handle, name string) int
	Uniform1f(loc Handle, v float32)

	CreateVertexArray() Handle
	BindVertexArray(vao Handle)
	DeleteVertexArray(vao Handle)

	CreateBuffer() Handle
	BindArrayBuffer(buf Handle)
	// BufferData uploads data to the bound array buffer with STATIC_DRAW.
	BufferData(data []float32)
	DeleteBuffer(buf Handle)

	EnableVertexAttribArray(loc int)
	// VertexAttribPointer describes tightly packed float components.
	VertexAttribPointer(loc, size int)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawLineStrip(first, count int)
}
