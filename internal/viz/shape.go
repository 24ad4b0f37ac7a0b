package viz

import (
	"math"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/physics"
	"github.com/san-kum/wavefield/internal/theme"
)

// Frame is everything one draw depends on.
type Frame struct {
	T       float64 // animation time, see Layout.Time
	Physics physics.Outputs
	Pointer dynamo.Vec2 // normalized pointer position
}

// Shape is one layer's outline. Controls[j] is the quadratic control point
// leading into Points[j]; it is unused for the first two points, which are
// joined by a move and a straight line.
type Shape struct {
	Amplitude float64
	Speed     float64
	YOffset   float64
	Mouse     float64
	Points    []dynamo.Vec2
	Controls  []dynamo.Vec2
}

// LayerShape computes the outline of layer i on a surface of CSS size w x h.
// It returns an empty Shape for degenerate surfaces.
func LayerShape(i int, f Frame, w, h float64, st theme.Style, l *Layout) Shape {
	if !drawable(w, h) {
		return Shape{}
	}
	fi := float64(i)
	t := f.T
	stretch := f.Physics.Stretch

	s := Shape{
		Amplitude: st.BaseAmplitude + fi*l.AmplitudeStep +
			math.Sin(t/l.AmplitudePeriod+fi)*l.AmplitudeWobble +
			math.Abs(stretch)*(l.StretchAmplitude-fi*l.StretchAmpStep),
		Speed: f.Physics.PhaseSpeed + fi*l.SpeedStep,
		YOffset: h*(st.BaseYOffset+fi*l.YOffsetStep) +
			math.Sin(t/l.YPeriod+fi)*l.YWobble +
			stretch*(l.StretchOffset-fi*l.StretchOffsetStep),
		Mouse: (f.Pointer.Y - 0.5) * l.MouseInfluence * (1 + fi*l.MouseInfluenceStep),
	}

	n := l.Samples(w)
	s.Points = make([]dynamo.Vec2, n+1)
	s.Controls = make([]dynamo.Vec2, n+1)

	drift := math.Sin(t/4+fi*2.2) * 0.8
	bend := math.Cos(t/2.8 + fi)
	parallax := f.Physics.XOffset * (1 + fi*l.ParallaxStep)

	for j := 0; j <= n; j++ {
		x := float64(j) * l.SegmentWidth
		px := x / w
		phase := t*s.Speed - fi*l.PhaseLayerShift + px*5 + drift + parallax
		y := s.YOffset +
			math.Sin(phase+px*7+bend)*s.Amplitude +
			s.Mouse*math.Sin(px*math.Pi*1.2) +
			x*l.Slope

		s.Points[j] = dynamo.Vec2{X: x, Y: y}
		if j >= 2 {
			prev := float64(j-1) * l.SegmentWidth
			s.Controls[j] = dynamo.Vec2{
				X: (prev + x) / 2,
				Y: y + math.Sin(phase*0.5)*s.Amplitude*l.Ripple,
			}
		}
	}
	return s
}

// Trace replays the shape as a closed path reaching down to the bottom
// edge of a w x h surface. The caller fills it.
func (s Shape) Trace(ctx Context, w, h float64) {
	if len(s.Points) == 0 {
		return
	}
	ctx.BeginPath()
	for j, p := range s.Points {
		switch j {
		case 0:
			ctx.MoveTo(p.X, p.Y)
		case 1:
			ctx.LineTo(p.X, p.Y)
		default:
			c := s.Controls[j]
			ctx.QuadraticCurveTo(c.X, c.Y, p.X, p.Y)
		}
	}
	ctx.LineTo(w, h)
	ctx.LineTo(0, h)
	ctx.ClosePath()
}
