package viz

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/physics"
	"github.com/san-kum/wavefield/internal/theme"
)

const tol = 1e-9

func restFrame() Frame {
	return Frame{
		T:       0,
		Physics: physics.Outputs{PhaseSpeed: 0.22},
		Pointer: dynamo.Vec2{X: 0.5, Y: 0.5},
	}
}

func newCompositor(t *testing.T, v Viewport, st theme.Style) (*Compositor, *Recorder, *MemSurface) {
	t.Helper()
	rec := &Recorder{}
	surf := &MemSurface{Ctx: rec, View: v}
	c, err := New(surf, st, DefaultLayout())
	if err != nil {
		t.Fatal(err)
	}
	return c, rec, surf
}

func TestLayerShape_FirstSampleAtRest(t *testing.T) {
	l := DefaultLayout()
	dark := theme.DefaultStyles().Dark

	s := LayerShape(0, restFrame(), 800, 600, dark, &l)

	if math.Abs(s.YOffset-120) > tol {
		t.Errorf("YOffset = %g, want 120", s.YOffset)
	}
	if s.Mouse != 0 {
		t.Errorf("mouse term = %g, want 0 with centred pointer", s.Mouse)
	}
	if math.Abs(s.Amplitude-35) > tol {
		t.Errorf("amplitude = %g, want 35", s.Amplitude)
	}
	want := 120 + math.Sin(1)*35
	if got := s.Points[0]; got.X != 0 || math.Abs(got.Y-want) > tol {
		t.Errorf("first sample = %v, want (0, %g)", got, want)
	}
}

func TestLayerShape_SampleCount(t *testing.T) {
	l := DefaultLayout()
	st := theme.DefaultStyles().Light

	tests := []struct {
		width float64
		want  int
	}{
		{800, 15}, // ceil(800/60) = 14 segments
		{60, 2},   // exactly one segment
		{61, 3},
		{1920, 33},
	}
	for _, tt := range tests {
		s := LayerShape(0, restFrame(), tt.width, 600, st, &l)
		if len(s.Points) != tt.want {
			t.Errorf("width %g: %d points, want %d", tt.width, len(s.Points), tt.want)
		}
		for j, p := range s.Points {
			if p.X != float64(j)*60 {
				t.Errorf("width %g: point %d at x=%g", tt.width, j, p.X)
				break
			}
		}
	}
}

func TestLayerShape_Degenerate(t *testing.T) {
	l := DefaultLayout()
	st := theme.DefaultStyles().Light
	nan, inf := math.NaN(), math.Inf(1)
	for _, wh := range [][2]float64{{0, 600}, {800, 0}, {-1, -1}, {nan, 600}, {800, nan}, {inf, 600}, {800, -inf}} {
		if s := LayerShape(3, restFrame(), wh[0], wh[1], st, &l); len(s.Points) != 0 {
			t.Errorf("%v: expected empty shape, got %d points", wh, len(s.Points))
		}
	}
}

func TestLayerShape_PerLayerSteps(t *testing.T) {
	l := DefaultLayout()
	st := theme.DefaultStyles().Dark
	f := restFrame()
	f.Physics.Stretch = 0.5
	f.Pointer.Y = 1

	for i := 0; i < 8; i++ {
		fi := float64(i)
		s := LayerShape(i, f, 800, 600, st, &l)

		amp := 35 + fi*18 + math.Sin(fi)*10 + 0.5*(60-3*fi)
		if math.Abs(s.Amplitude-amp) > tol {
			t.Errorf("layer %d amplitude = %g, want %g", i, s.Amplitude, amp)
		}
		if math.Abs(s.Speed-(0.22+0.08*fi)) > tol {
			t.Errorf("layer %d speed = %g", i, s.Speed)
		}
		y := 600*(0.2+0.12*fi) + math.Sin(fi)*12 + 0.5*(40-2*fi)
		if math.Abs(s.YOffset-y) > tol {
			t.Errorf("layer %d yOffset = %g, want %g", i, s.YOffset, y)
		}
		if m := 0.5 * 60 * (1 + 0.15*fi); math.Abs(s.Mouse-m) > tol {
			t.Errorf("layer %d mouse = %g, want %g", i, s.Mouse, m)
		}
	}
}

func TestLayerShape_SlopeIgnoresAspect(t *testing.T) {
	l := DefaultLayout()
	st := theme.DefaultStyles().Light
	f := restFrame()

	// the slope term at a given x must not depend on the surface height
	a := LayerShape(0, f, 600, 400, st, &l)
	b := LayerShape(0, f, 600, 4000, st, &l)
	da := (a.Points[10].Y - a.YOffset) - (a.Points[0].Y - a.YOffset)
	db := (b.Points[10].Y - b.YOffset) - (b.Points[0].Y - b.YOffset)
	if math.Abs(da-db) > tol {
		t.Errorf("slope depends on height: %g vs %g", da, db)
	}
}

func TestCompositor_Resize(t *testing.T) {
	c, rec, surf := newCompositor(t, Viewport{Width: 801, Height: 600, DPR: 1.5}, theme.DefaultStyles().Light)

	st := c.Resize()
	if st.PixelWidth != 1201 || st.PixelHeight != 900 {
		t.Errorf("backing = %dx%d, want 1201x900", st.PixelWidth, st.PixelHeight)
	}
	if surf.BackingWidth != 1201 || surf.BackingHeight != 900 {
		t.Errorf("surface backing = %dx%d", surf.BackingWidth, surf.BackingHeight)
	}
	if len(rec.Ops) != 2 || rec.Ops[0].Name != "setTransform" || rec.Ops[1].Name != "scale" {
		t.Fatalf("ops = %v", rec.Ops)
	}
	if rec.Ops[1].Args[0] != 1.5 || rec.Ops[1].Args[1] != 1.5 {
		t.Errorf("scale = %v", rec.Ops[1].Args)
	}

	// repeated resizes never compound the scale
	rec.Reset()
	c.Resize()
	if op := rec.Ops[0]; op.Args[0] != 1 || op.Args[3] != 1 {
		t.Errorf("transform not reset: %v", op)
	}
}

func TestCompositor_Draw(t *testing.T) {
	dark := theme.DefaultStyles().Dark
	c, rec, _ := newCompositor(t, Viewport{Width: 800, Height: 600, DPR: 2}, dark)
	c.Resize()
	rec.Reset()

	c.Draw(restFrame())

	clear, ok := rec.Find("clearRect")
	if !ok || clear.Args[2] != 1600 || clear.Args[3] != 1200 {
		t.Errorf("clearRect = %v", clear)
	}
	if rec.Ops[1].Str != "#2c2320" || rec.Ops[2].Name != "fillRect" {
		t.Errorf("background fill = %v %v", rec.Ops[1], rec.Ops[2])
	}
	if n := rec.Count("fill"); n != 8 {
		t.Errorf("fills = %d, want 8", n)
	}
	if n := rec.Count("moveTo"); n != 8 {
		t.Errorf("moveTo = %d, want 8", n)
	}
	if n := rec.Count("quadraticCurveTo"); n != 8*13 {
		t.Errorf("quadraticCurveTo = %d, want %d", n, 8*13)
	}

	// layers are filled back to front in palette order
	var colors []string
	for _, op := range rec.Ops[3:] {
		if op.Name == "fillStyle" {
			colors = append(colors, op.Str)
		}
	}
	for i, want := range dark.Palette {
		if colors[i] != want {
			t.Errorf("layer %d colour = %s, want %s", i, colors[i], want)
		}
	}

	alpha, _ := rec.Find("globalAlpha")
	if alpha.Args[0] != 0.25 {
		t.Errorf("alpha = %g, want 0.25", alpha.Args[0])
	}
	if rec.Count("save") != rec.Count("restore") {
		t.Error("unbalanced save/restore")
	}
}

func TestCompositor_DrawEmptySurface(t *testing.T) {
	c, rec, _ := newCompositor(t, Viewport{Width: 0, Height: 600, DPR: 1}, theme.DefaultStyles().Light)
	c.Resize()
	rec.Reset()

	c.Draw(restFrame())
	if len(rec.Ops) != 0 {
		t.Errorf("drew %d ops on empty surface", len(rec.Ops))
	}
}

func TestCompositor_DrawNonFiniteSurface(t *testing.T) {
	for _, v := range []Viewport{
		{Width: math.NaN(), Height: 600, DPR: 1},
		{Width: 800, Height: math.Inf(1), DPR: 2},
		{Width: math.Inf(-1), Height: math.NaN(), DPR: math.NaN()},
	} {
		c, rec, _ := newCompositor(t, v, theme.DefaultStyles().Light)
		if st := c.Resize(); !st.Empty() || st.PixelWidth != 0 || st.PixelHeight != 0 {
			t.Errorf("%+v: state = %+v, want empty", v, st)
		}
		rec.Reset()
		c.Draw(restFrame())
		if len(rec.Ops) != 0 {
			t.Errorf("%+v: drew %d ops", v, len(rec.Ops))
		}
	}
}

func TestLayout_SamplesNonFinite(t *testing.T) {
	l := DefaultLayout()
	for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -5} {
		if n := l.Samples(w); n != 0 {
			t.Errorf("Samples(%v) = %d, want 0", w, n)
		}
	}
}

func TestCompositor_SetStyleKeepsGeometryInputs(t *testing.T) {
	styles := theme.DefaultStyles()
	c, rec, _ := newCompositor(t, Viewport{Width: 800, Height: 600, DPR: 1}, styles.Light)
	c.Resize()

	c.SetStyle(styles.Dark)
	rec.Reset()
	c.Draw(restFrame())

	move, _ := rec.Find("moveTo")
	if want := 120 + math.Sin(1)*35; math.Abs(move.Args[1]-want) > tol {
		t.Errorf("first moveTo y = %g, want %g", move.Args[1], want)
	}
	if c.State().PixelWidth != 800 {
		t.Error("style swap touched surface state")
	}
}

func TestNew_NoContext(t *testing.T) {
	_, err := New(&MemSurface{}, theme.DefaultStyles().Light, DefaultLayout())
	if !errors.Is(err, dynamo.ErrNoContext) {
		t.Errorf("err = %v, want ErrNoContext", err)
	}
}

func TestLayout_Validate(t *testing.T) {
	l := DefaultLayout()
	if err := l.Validate(); err != nil {
		t.Fatal(err)
	}
	l.SegmentWidth = 0
	if err := l.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewSurfaceState(t *testing.T) {
	s := NewSurfaceState(Viewport{Width: 333.3, Height: 100, DPR: 0})
	if s.DPR != 1 || s.PixelWidth != 333 || s.PixelHeight != 100 {
		t.Errorf("state = %+v", s)
	}
}
