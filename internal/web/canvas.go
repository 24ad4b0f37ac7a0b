//go:build js && wasm
// +build js,wasm

// Package web hosts the background and the sine demo in a browser through
// syscall/js: a 2D canvas surface, a WebGL2 device, requestAnimationFrame
// and DOM events.
package web

import (
	"syscall/js"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/viz"
)

// Canvas is a full-window <canvas> element used as a viz.Surface.
type Canvas struct {
	el  js.Value
	win js.Value
}

func NewCanvas(el js.Value) *Canvas {
	style := el.Get("style")
	style.Set("position", "fixed")
	style.Set("left", "0")
	style.Set("top", "0")
	style.Set("width", "100vw")
	style.Set("height", "100vh")
	return &Canvas{el: el, win: js.Global().Get("window")}
}

func (c *Canvas) Context() (viz.Context, error) {
	ctx := c.el.Call("getContext", "2d")
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, dynamo.ErrNoContext
	}
	return context2D{ctx}, nil
}

// Viewport is the window's inner size and devicePixelRatio.
func (c *Canvas) Viewport() viz.Viewport {
	dpr := 1.0
	if v := c.win.Get("devicePixelRatio"); v.Truthy() {
		dpr = v.Float()
	}
	return viz.Viewport{
		Width:  c.win.Get("innerWidth").Float(),
		Height: c.win.Get("innerHeight").Float(),
		DPR:    dpr,
	}
}

func (c *Canvas) Bounds() dynamo.Rect {
	r := c.el.Call("getBoundingClientRect")
	return dynamo.Rect{
		Left:   r.Get("left").Float(),
		Top:    r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}

func (c *Canvas) SetBackingSize(w, h int) {
	c.el.Set("width", w)
	c.el.Set("height", h)
}

// BufferSize is the backing store size, for the WebGL renderer.
func (c *Canvas) BufferSize() (int, int) {
	return c.el.Get("width").Int(), c.el.Get("height").Int()
}

type context2D struct {
	v js.Value
}

func (c context2D) Save()    { c.v.Call("save") }
func (c context2D) Restore() { c.v.Call("restore") }

func (c context2D) SetTransform(a, b, cc, d, e, f float64) {
	c.v.Call("setTransform", a, b, cc, d, e, f)
}

func (c context2D) Scale(x, y float64)                  { c.v.Call("scale", x, y) }
func (c context2D) ClearRect(x, y, w, h float64)        { c.v.Call("clearRect", x, y, w, h) }
func (c context2D) FillRect(x, y, w, h float64)         { c.v.Call("fillRect", x, y, w, h) }
func (c context2D) SetFillStyle(color string)           { c.v.Set("fillStyle", color) }
func (c context2D) SetGlobalAlpha(alpha float64)        { c.v.Set("globalAlpha", alpha) }
func (c context2D) BeginPath()                          { c.v.Call("beginPath") }
func (c context2D) MoveTo(x, y float64)                 { c.v.Call("moveTo", x, y) }
func (c context2D) LineTo(x, y float64)                 { c.v.Call("lineTo", x, y) }
func (c context2D) QuadraticCurveTo(a, b, x, y float64) { c.v.Call("quadraticCurveTo", a, b, x, y) }
func (c context2D) ClosePath()                          { c.v.Call("closePath") }
func (c context2D) Fill()                               { c.v.Call("fill") }

var (
	_ viz.Surface = (*Canvas)(nil)
	_ viz.Context = context2D{}
)
