package viz

import (
	"math"

	"github.com/san-kum/wavefield/internal/dynamo"
)

// Context is the subset of a canvas 2D rendering context the compositor
// draws with. Coordinates are CSS pixels once the DPR scale is applied.
type Context interface {
	Save()
	Restore()
	SetTransform(a, b, c, d, e, f float64)
	Scale(x, y float64)

	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	SetFillStyle(color string)
	SetGlobalAlpha(alpha float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
	ClosePath()
	Fill()
}

// Viewport is the CSS size of a surface and its device pixel ratio.
type Viewport struct {
	Width, Height float64
	DPR           float64
}

// Surface is a resizable drawing target.
type Surface interface {
	// Context returns the 2D context, or an error wrapping
	// dynamo.ErrNoContext when the surface cannot provide one.
	Context() (Context, error)
	Viewport() Viewport
	// Bounds is the surface's bounding rectangle in client coordinates.
	Bounds() dynamo.Rect
	SetBackingSize(width, height int)
}

// SurfaceState is the geometry the compositor last sized the surface to.
type SurfaceState struct {
	Width, Height float64 // CSS pixels
	DPR           float64
	PixelWidth    int // backing store
	PixelHeight   int
}

// NewSurfaceState derives backing dimensions as floor(CSS * DPR). A
// non-positive DPR counts as 1; a non-finite size counts as zero.
func NewSurfaceState(v Viewport) SurfaceState {
	dpr := v.DPR
	if !(dpr > 0) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	if !drawable(v.Width, v.Height) {
		v.Width, v.Height = 0, 0
	}
	return SurfaceState{
		Width:       v.Width,
		Height:      v.Height,
		DPR:         dpr,
		PixelWidth:  int(math.Floor(v.Width * dpr)),
		PixelHeight: int(math.Floor(v.Height * dpr)),
	}
}

func (s SurfaceState) Empty() bool { return !drawable(s.Width, s.Height) }

// drawable reports whether w and h are both positive and finite.
func drawable(w, h float64) bool {
	return w > 0 && h > 0 && !math.IsInf(w, 0) && !math.IsInf(h, 0)
}
