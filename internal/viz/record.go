package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/wavefield/internal/dynamo"
)

// Op is one recorded context call.
type Op struct {
	Name string
	Args []float64
	Str  string
}

func (o Op) String() string {
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = fmt.Sprintf("%.3f", a)
	}
	if o.Str != "" {
		parts = append(parts, o.Str)
	}
	return o.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Recorder is a Context that remembers every call. It backs the headless
// "ops" dump and tests.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) rec(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}

func (r *Recorder) Save()                                 { r.rec("save") }
func (r *Recorder) Restore()                              { r.rec("restore") }
func (r *Recorder) SetTransform(a, b, c, d, e, f float64) { r.rec("setTransform", a, b, c, d, e, f) }
func (r *Recorder) Scale(x, y float64)                    { r.rec("scale", x, y) }
func (r *Recorder) ClearRect(x, y, w, h float64)          { r.rec("clearRect", x, y, w, h) }
func (r *Recorder) FillRect(x, y, w, h float64)           { r.rec("fillRect", x, y, w, h) }
func (r *Recorder) SetGlobalAlpha(a float64)              { r.rec("globalAlpha", a) }
func (r *Recorder) BeginPath()                            { r.rec("beginPath") }
func (r *Recorder) MoveTo(x, y float64)                   { r.rec("moveTo", x, y) }
func (r *Recorder) LineTo(x, y float64)                   { r.rec("lineTo", x, y) }
func (r *Recorder) ClosePath()                            { r.rec("closePath") }
func (r *Recorder) Fill()                                 { r.rec("fill") }

func (r *Recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.rec("quadraticCurveTo", cpx, cpy, x, y)
}

func (r *Recorder) SetFillStyle(color string) {
	r.Ops = append(r.Ops, Op{Name: "fillStyle", Str: color})
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Find returns the first call named name.
func (r *Recorder) Find(name string) (Op, bool) {
	for _, op := range r.Ops {
		if op.Name == name {
			return op, true
		}
	}
	return Op{}, false
}

// Discard is a Context that drops every call. Headless replays draw into it.
type Discard struct{}

func (Discard) Save()                                 {}
func (Discard) Restore()                              {}
func (Discard) SetTransform(_, _, _, _, _, _ float64) {}
func (Discard) Scale(_, _ float64)                    {}
func (Discard) ClearRect(_, _, _, _ float64)          {}
func (Discard) FillRect(_, _, _, _ float64)           {}
func (Discard) SetFillStyle(string)                   {}
func (Discard) SetGlobalAlpha(float64)                {}
func (Discard) BeginPath()                            {}
func (Discard) MoveTo(_, _ float64)                   {}
func (Discard) LineTo(_, _ float64)                   {}
func (Discard) QuadraticCurveTo(_, _, _, _ float64)   {}
func (Discard) ClosePath()                            {}
func (Discard) Fill()                                 {}

// MemSurface is an in-memory Surface around any Context. A nil Ctx makes
// Context fail with dynamo.ErrNoContext.
type MemSurface struct {
	Ctx    Context
	View   Viewport
	Origin dynamo.Vec2

	BackingWidth, BackingHeight int
}

func (s *MemSurface) Context() (Context, error) {
	if s.Ctx == nil {
		return nil, dynamo.ErrNoContext
	}
	return s.Ctx, nil
}

func (s *MemSurface) Viewport() Viewport { return s.View }

func (s *MemSurface) Bounds() dynamo.Rect {
	return dynamo.Rect{Left: s.Origin.X, Top: s.Origin.Y, Width: s.View.Width, Height: s.View.Height}
}

func (s *MemSurface) SetBackingSize(w, h int) {
	s.BackingWidth, s.BackingHeight = w, h
}
