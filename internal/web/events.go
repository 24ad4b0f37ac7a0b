//go:build js && wasm
// +build js,wasm

package web

import (
	"syscall/js"

	"github.com/san-kum/wavefield/internal/sim"
	"github.com/san-kum/wavefield/internal/theme"
)

// Window delivers the window's mousemove and resize events.
type Window struct {
	win js.Value
}

func NewWindow() Window { return Window{win: js.Global().Get("window")} }

func (w Window) listen(event string, fn func(js.Value)) func() {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		var e js.Value
		if len(args) > 0 {
			e = args[0]
		}
		fn(e)
		return nil
	})
	w.win.Call("addEventListener", event, f)
	return func() {
		w.win.Call("removeEventListener", event, f)
		f.Release()
	}
}

func (w Window) OnPointerMove(fn func(x, y float64)) func() {
	return w.listen("mousemove", func(e js.Value) {
		fn(e.Get("clientX").Float(), e.Get("clientY").Float())
	})
}

func (w Window) OnResize(fn func()) func() {
	return w.listen("resize", func(js.Value) { fn() })
}

// OnKey reports keydown events by their key name.
func (w Window) OnKey(fn func(key string)) func() {
	return w.listen("keydown", func(e js.Value) { fn(e.Get("key").String()) })
}

// MediaPreference follows (prefers-color-scheme: dark).
type MediaPreference struct {
	mql js.Value
}

func NewMediaPreference() *MediaPreference {
	return &MediaPreference{
		mql: js.Global().Get("window").Call("matchMedia", "(prefers-color-scheme: dark)"),
	}
}

func (p *MediaPreference) PrefersDark() bool { return p.mql.Get("matches").Bool() }

func (p *MediaPreference) Subscribe(fn func(dark bool)) func() {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(args[0].Get("matches").Bool())
		return nil
	})
	p.mql.Call("addEventListener", "change", f)
	return func() {
		p.mql.Call("removeEventListener", "change", f)
		f.Release()
	}
}

var (
	_ sim.Events       = Window{}
	_ theme.Preference = (*MediaPreference)(nil)
)
