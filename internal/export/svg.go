// Package export writes frames and traces as SVG documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/viz"
)

type affine struct{ a, b, c, d, e, f float64 }

var identity = affine{1, 0, 0, 1, 0, 0}

func (m affine) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

type paint struct {
	m     affine
	fill  string
	alpha float64
}

// SVG is a viz.Surface whose context records filled paths as SVG elements
// in backing-store pixels.
type SVG struct {
	view   viz.Viewport
	width  int
	height int

	cur   paint
	stack []paint
	path  strings.Builder
	body  strings.Builder
	elems int
}

func NewSVG(v viz.Viewport) *SVG {
	return &SVG{
		view: v,
		cur:  paint{m: identity, fill: "#000000", alpha: 1},
	}
}

func (s *SVG) Context() (viz.Context, error) { return s, nil }

func (s *SVG) Viewport() viz.Viewport { return s.view }

func (s *SVG) Bounds() dynamo.Rect {
	return dynamo.Rect{Width: s.view.Width, Height: s.view.Height}
}

func (s *SVG) SetBackingSize(w, h int) { s.width, s.height = w, h }

// Elements is the number of shapes recorded since the last full clear.
func (s *SVG) Elements() int { return s.elems }

func (s *SVG) Save() { s.stack = append(s.stack, s.cur) }

func (s *SVG) Restore() {
	if n := len(s.stack); n > 0 {
		s.cur = s.stack[n-1]
		s.stack = s.stack[:n-1]
	}
}

func (s *SVG) SetTransform(a, b, c, d, e, f float64) { s.cur.m = affine{a, b, c, d, e, f} }

func (s *SVG) Scale(x, y float64) {
	m := s.cur.m
	s.cur.m = affine{m.a * x, m.b * x, m.c * y, m.d * y, m.e, m.f}
}

func (s *SVG) SetFillStyle(color string) { s.cur.fill = color }

func (s *SVG) SetGlobalAlpha(alpha float64) { s.cur.alpha = alpha }

// ClearRect discards everything drawn so far when it covers the whole
// backing store; partial clears are not representable and are ignored.
func (s *SVG) ClearRect(x, y, w, h float64) {
	x0, y0 := s.cur.m.apply(x, y)
	x1, y1 := s.cur.m.apply(x+w, y+h)
	if x0 <= 0 && y0 <= 0 && x1 >= float64(s.width) && y1 >= float64(s.height) {
		s.body.Reset()
		s.elems = 0
	}
}

func (s *SVG) FillRect(x, y, w, h float64) {
	x0, y0 := s.cur.m.apply(x, y)
	x1, y1 := s.cur.m.apply(x+w, y+h)
	fmt.Fprintf(&s.body, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s/>`+"\n",
		x0, y0, x1-x0, y1-y0, s.cur.fill, s.opacity())
	s.elems++
}

func (s *SVG) BeginPath() { s.path.Reset() }

func (s *SVG) MoveTo(x, y float64) {
	x, y = s.cur.m.apply(x, y)
	fmt.Fprintf(&s.path, "M%.2f,%.2f ", x, y)
}

func (s *SVG) LineTo(x, y float64) {
	x, y = s.cur.m.apply(x, y)
	fmt.Fprintf(&s.path, "L%.2f,%.2f ", x, y)
}

func (s *SVG) QuadraticCurveTo(cpx, cpy, x, y float64) {
	cpx, cpy = s.cur.m.apply(cpx, cpy)
	x, y = s.cur.m.apply(x, y)
	fmt.Fprintf(&s.path, "Q%.2f,%.2f %.2f,%.2f ", cpx, cpy, x, y)
}

func (s *SVG) ClosePath() { s.path.WriteString("Z") }

func (s *SVG) Fill() {
	d := strings.TrimSpace(s.path.String())
	if d == "" {
		return
	}
	fmt.Fprintf(&s.body, `<path d="%s" fill="%s"%s/>`+"\n", d, s.cur.fill, s.opacity())
	s.elems++
}

func (s *SVG) opacity() string {
	if s.cur.alpha >= 1 {
		return ""
	}
	return fmt.Sprintf(` fill-opacity="%.3f"`, s.cur.alpha)
}

// String renders the document.
func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.width, s.height, s.width, s.height)
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// SeriesToSVG plots a sampled series, such as a physics trace column, as a
// polyline scaled to fit width x height.
func SeriesToSVG(values []float64, width, height int, strokeColor, background string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
