// Package glcore implements shader.Device on desktop OpenGL 3.3 core via
// go-gl. A context must be current on the calling thread.
package glcore

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/san-kum/wavefield/internal/shader"
)

type Device struct{}

// New loads the GL function pointers for the current context.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to init opengl: %w", err)
	}
	return &Device{}, nil
}

// Version reports the driver's version string.
func (d *Device) Version() string { return gl.GoStr(gl.GetString(gl.VERSION)) }

func (d *Device) Dialect() shader.Dialect { return shader.GLSL330 }

func id(h shader.Handle) uint32 {
	if h == nil {
		return 0
	}
	return h.(uint32)
}

func (d *Device) CreateShader(stage shader.Stage) shader.Handle {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == shader.FragmentStage {
		kind = gl.FRAGMENT_SHADER
	}
	return gl.CreateShader(kind)
}

func (d *Device) ShaderSource(s shader.Handle, src string) {
	csources, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(id(s), 1, csources, nil)
}

func (d *Device) CompileShader(s shader.Handle) { gl.CompileShader(id(s)) }

func (d *Device) ShaderCompiled(s shader.Handle) bool {
	var status int32
	gl.GetShaderiv(id(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ShaderInfoLog(s shader.Handle) string {
	var logLength int32
	gl.GetShaderiv(id(s), gl.INFO_LOG_LENGTH, &logLength)
	logMsg := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(id(s), logLength, nil, gl.Str(logMsg))
	return strings.TrimSpace(strings.TrimRight(logMsg, "\x00"))
}

func (d *Device) DeleteShader(s shader.Handle) { gl.DeleteShader(id(s)) }

func (d *Device) CreateProgram() shader.Handle { return gl.CreateProgram() }

func (d *Device) AttachShader(p, s shader.Handle) { gl.AttachShader(id(p), id(s)) }

func (d *Device) LinkProgram(p shader.Handle) { gl.LinkProgram(id(p)) }

func (d *Device) ProgramLinked(p shader.Handle) bool {
	var status int32
	gl.GetProgramiv(id(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ProgramInfoLog(p shader.Handle) string {
	var logLength int32
	gl.GetProgramiv(id(p), gl.INFO_LOG_LENGTH, &logLength)
	logMsg := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id(p), logLength, nil, gl.Str(logMsg))
	return strings.TrimSpace(strings.TrimRight(logMsg, "\x00"))
}

func (d *Device) DeleteProgram(p shader.Handle) { gl.DeleteProgram(id(p)) }

func (d *Device) UseProgram(p shader.Handle) { gl.UseProgram(id(p)) }

func (d *Device) UniformLocation(p shader.Handle, name string) shader.Handle {
	return gl.GetUniformLocation(id(p), gl.Str(name+"\x00"))
}

func (d *Device) AttribLocation(p shader.Handle, name string) int {
	return int(gl.GetAttribLocation(id(p), gl.Str(name+"\x00")))
}

func (d *Device) Uniform1f(loc shader.Handle, v float32) {
	l, ok := loc.(int32)
	if !ok || l < 0 {
		return
	}
	gl.Uniform1f(l, v)
}

func (d *Device) CreateVertexArray() shader.Handle {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Device) BindVertexArray(vao shader.Handle) { gl.BindVertexArray(id(vao)) }

func (d *Device) DeleteVertexArray(vao shader.Handle) {
	v := id(vao)
	gl.DeleteVertexArrays(1, &v)
}

func (d *Device) CreateBuffer() shader.Handle {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (d *Device) BindArrayBuffer(buf shader.Handle) { gl.BindBuffer(gl.ARRAY_BUFFER, id(buf)) }

func (d *Device) BufferData(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Device) DeleteBuffer(buf shader.Handle) {
	b := id(buf)
	gl.DeleteBuffers(1, &b)
}

func (d *Device) EnableVertexAttribArray(loc int) { gl.EnableVertexAttribArray(uint32(loc)) }

func (d *Device) VertexAttribPointer(loc, size int) {
	gl.VertexAttribPointerWithOffset(uint32(loc), int32(size), gl.FLOAT, false, 0, 0)
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Device) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT) }

func (d *Device) DrawLineStrip(first, count int) {
	if count <= 0 {
		return
	}
	gl.DrawArrays(gl.LINE_STRIP, int32(first), int32(count))
}

var _ shader.Device = (*Device)(nil)
