//go:build js && wasm
// +build js,wasm

package web

import (
	"encoding/binary"
	"math"
	"syscall/js"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/shader"
)

// GL is a shader.Device on a WebGL2 rendering context. Handles are
// js.Values.
type GL struct {
	gl js.Value
}

// NewGL asks el for a webgl2 context.
func NewGL(el js.Value) (*GL, error) {
	ctx := el.Call("getContext", "webgl2")
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, dynamo.ErrNoContext
	}
	return &GL{gl: ctx}, nil
}

func (g *GL) Dialect() shader.Dialect { return shader.GLSLES300 }

func (g *GL) enum(name string) js.Value { return g.gl.Get(name) }

func value(h shader.Handle) js.Value {
	if v, ok := h.(js.Value); ok {
		return v
	}
	return js.Null()
}

func handle(v js.Value) shader.Handle {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return v
}

func (g *GL) CreateShader(stage shader.Stage) shader.Handle {
	kind := g.enum("VERTEX_SHADER")
	if stage == shader.FragmentStage {
		kind = g.enum("FRAGMENT_SHADER")
	}
	return handle(g.gl.Call("createShader", kind))
}

func (g *GL) ShaderSource(s shader.Handle, src string) { g.gl.Call("shaderSource", value(s), src) }
func (g *GL) CompileShader(s shader.Handle)            { g.gl.Call("compileShader", value(s)) }

func (g *GL) ShaderCompiled(s shader.Handle) bool {
	return g.gl.Call("getShaderParameter", value(s), g.enum("COMPILE_STATUS")).Truthy()
}

func (g *GL) ShaderInfoLog(s shader.Handle) string {
	return g.gl.Call("getShaderInfoLog", value(s)).String()
}

func (g *GL) DeleteShader(s shader.Handle) { g.gl.Call("deleteShader", value(s)) }

func (g *GL) CreateProgram() shader.Handle    { return handle(g.gl.Call("createProgram")) }
func (g *GL) AttachShader(p, s shader.Handle) { g.gl.Call("attachShader", value(p), value(s)) }
func (g *GL) LinkProgram(p shader.Handle)     { g.gl.Call("linkProgram", value(p)) }
func (g *GL) DeleteProgram(p shader.Handle)   { g.gl.Call("deleteProgram", value(p)) }
func (g *GL) UseProgram(p shader.Handle)      { g.gl.Call("useProgram", value(p)) }

func (g *GL) ProgramLinked(p shader.Handle) bool {
	return g.gl.Call("getProgramParameter", value(p), g.enum("LINK_STATUS")).Truthy()
}

func (g *GL) ProgramInfoLog(p shader.Handle) string {
	return g.gl.Call("getProgramInfoLog", value(p)).String()
}

func (g *GL) UniformLocation(p shader.Handle, name string) shader.Handle {
	return handle(g.gl.Call("getUniformLocation", value(p), name))
}

func (g *GL) AttribLocation(p shader.Handle, name string) int {
	return g.gl.Call("getAttribLocation", value(p), name).Int()
}

func (g *GL) Uniform1f(loc shader.Handle, v float32) {
	if loc == nil {
		return
	}
	g.gl.Call("uniform1f", value(loc), v)
}

func (g *GL) CreateVertexArray() shader.Handle  { return handle(g.gl.Call("createVertexArray")) }
func (g *GL) BindVertexArray(vao shader.Handle) { g.gl.Call("bindVertexArray", value(vao)) }
func (g *GL) DeleteVertexArray(vao shader.Handle) {
	g.gl.Call("deleteVertexArray", value(vao))
}

func (g *GL) CreateBuffer() shader.Handle { return handle(g.gl.Call("createBuffer")) }

func (g *GL) BindArrayBuffer(buf shader.Handle) {
	g.gl.Call("bindBuffer", g.enum("ARRAY_BUFFER"), value(buf))
}

// BufferData copies data into a Float32Array through its bytes.
func (g *GL) BufferData(data []float32) {
	raw := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(f))
	}
	u8 := js.Global().Get("Uint8Array").New(len(raw))
	js.CopyBytesToJS(u8, raw)
	f32 := js.Global().Get("Float32Array").New(u8.Get("buffer"))
	g.gl.Call("bufferData", g.enum("ARRAY_BUFFER"), f32, g.enum("STATIC_DRAW"))
}

func (g *GL) DeleteBuffer(buf shader.Handle) { g.gl.Call("deleteBuffer", value(buf)) }

func (g *GL) EnableVertexAttribArray(loc int) { g.gl.Call("enableVertexAttribArray", loc) }

func (g *GL) VertexAttribPointer(loc, size int) {
	g.gl.Call("vertexAttribPointer", loc, size, g.enum("FLOAT"), false, 0, 0)
}

func (g *GL) Viewport(x, y, w, h int)        { g.gl.Call("viewport", x, y, w, h) }
func (g *GL) ClearColor(r, gg, b, a float32) { g.gl.Call("clearColor", r, gg, b, a) }
func (g *GL) Clear()                         { g.gl.Call("clear", g.enum("COLOR_BUFFER_BIT")) }

func (g *GL) DrawLineStrip(first, count int) {
	if count <= 0 {
		return
	}
	g.gl.Call("drawArrays", g.enum("LINE_STRIP"), first, count)
}

var _ shader.Device = (*GL)(nil)
