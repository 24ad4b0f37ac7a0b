// Package raster is an in-memory viz.Surface backed by the software
// renderer of tfriedel6/canvas.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/viz"
)

type Surface struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	view    viz.Viewport
	origin  dynamo.Vec2
}

// New creates a surface with the given CSS viewport. The backing store
// starts at CSS size; the compositor resizes it on its first Resize.
func New(v viz.Viewport) *Surface {
	w, h := int(v.Width), int(v.Height)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	b := softwarebackend.New(w, h)
	return &Surface{backend: b, cv: canvas.New(b), view: v}
}

func (s *Surface) Context() (viz.Context, error) {
	if s.cv == nil {
		return nil, dynamo.ErrNoContext
	}
	return context{s.cv}, nil
}

func (s *Surface) Viewport() viz.Viewport { return s.view }

// SetViewport records a new CSS size or DPR. Callers follow it with
// Compositor.Resize.
func (s *Surface) SetViewport(v viz.Viewport) { s.view = v }

// SetOrigin places the surface in client coordinates for Bounds.
func (s *Surface) SetOrigin(x, y float64) { s.origin = dynamo.Vec2{X: x, Y: y} }

func (s *Surface) Bounds() dynamo.Rect {
	return dynamo.Rect{Left: s.origin.X, Top: s.origin.Y, Width: s.view.Width, Height: s.view.Height}
}

func (s *Surface) SetBackingSize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	s.backend.SetSize(w, h)
}

// Image is the backing store. It is overwritten by the next draw.
func (s *Surface) Image() *image.RGBA { return s.backend.Image }

// Pixels returns the backing store as tightly packed RGBA bytes.
func (s *Surface) Pixels() []byte {
	img := s.backend.Image
	w := img.Rect.Dx() * 4
	if img.Stride == w {
		return img.Pix
	}
	out := make([]byte, 0, w*img.Rect.Dy())
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride:]
		out = append(out, row[:w]...)
	}
	return out
}

// At returns the colour of backing pixel (x, y).
func (s *Surface) At(x, y int) colorful.Color {
	c, _ := colorful.MakeColor(s.backend.Image.RGBAAt(x, y))
	return c
}

func (s *Surface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.backend.Image)
}

func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// context narrows canvas.Canvas to viz.Context; only SetFillStyle differs
// in signature.
type context struct {
	*canvas.Canvas
}

func (c context) SetFillStyle(color string) { c.Canvas.SetFillStyle(color) }
