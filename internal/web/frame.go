//go:build js && wasm
// +build js,wasm

package web

import (
	"syscall/js"
	"time"

	"github.com/san-kum/wavefield/internal/frame"
)

type request struct {
	id js.Value
	fn js.Func
}

// AnimationFrames is a frame.Scheduler on requestAnimationFrame. The
// timestamp passed to callbacks is the browser's high resolution time.
type AnimationFrames struct {
	win     js.Value
	next    frame.Handle
	pending map[frame.Handle]request
}

func NewAnimationFrames() *AnimationFrames {
	return &AnimationFrames{
		win:     js.Global().Get("window"),
		pending: make(map[frame.Handle]request),
	}
}

func (a *AnimationFrames) Request(cb frame.Callback) frame.Handle {
	a.next++
	h := a.next
	var fn js.Func
	fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		delete(a.pending, h)
		fn.Release()
		ms := 0.0
		if len(args) > 0 {
			ms = args[0].Float()
		}
		cb(time.Duration(ms * float64(time.Millisecond)))
		return nil
	})
	id := a.win.Call("requestAnimationFrame", fn)
	a.pending[h] = request{id: id, fn: fn}
	return h
}

func (a *AnimationFrames) Cancel(h frame.Handle) {
	r, ok := a.pending[h]
	if !ok {
		return
	}
	delete(a.pending, h)
	a.win.Call("cancelAnimationFrame", r.id)
	r.fn.Release()
}

var _ frame.Scheduler = (*AnimationFrames)(nil)
