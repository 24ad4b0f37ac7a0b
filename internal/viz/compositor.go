package viz

import (
	"fmt"

	"github.com/san-kum/wavefield/internal/theme"
)

// Compositor draws the wave layers. It owns the surface's context for the
// lifetime of the background.
type Compositor struct {
	surface Surface
	ctx     Context
	style   theme.Style
	layout  Layout
	state   SurfaceState
}

// New resolves the surface's context. The returned error wraps
// dynamo.ErrNoContext when the surface has none.
func New(surface Surface, style theme.Style, layout Layout) (*Compositor, error) {
	ctx, err := surface.Context()
	if err != nil {
		return nil, fmt.Errorf("compositor: %w", err)
	}
	return &Compositor{
		surface: surface,
		ctx:     ctx,
		style:   style,
		layout:  layout,
	}, nil
}

// Resize resizes the backing store to the surface's current viewport and
// resets the transform to a plain DPR scale.
func (c *Compositor) Resize() SurfaceState {
	c.state = NewSurfaceState(c.surface.Viewport())
	c.surface.SetBackingSize(c.state.PixelWidth, c.state.PixelHeight)
	c.ctx.SetTransform(1, 0, 0, 1, 0, 0)
	c.ctx.Scale(c.state.DPR, c.state.DPR)
	return c.state
}

// SetStyle swaps the scheme-dependent values. Nothing else changes.
func (c *Compositor) SetStyle(st theme.Style) { c.style = st }

func (c *Compositor) Style() theme.Style { return c.style }

func (c *Compositor) Layout() Layout { return c.layout }

// SetLayout swaps the per-layer constants for the next Draw.
func (c *Compositor) SetLayout(l Layout) { c.layout = l }

func (c *Compositor) State() SurfaceState { return c.state }

// Layers is the number of layers Draw fills.
func (c *Compositor) Layers() int { return len(c.style.Palette) }

// Draw renders one frame: background fill, then every layer back to front.
func (c *Compositor) Draw(f Frame) {
	if c.state.Empty() {
		return
	}
	pw, ph := float64(c.state.PixelWidth), float64(c.state.PixelHeight)
	c.ctx.ClearRect(0, 0, pw, ph)
	c.ctx.SetFillStyle(c.style.Background())
	c.ctx.FillRect(0, 0, pw, ph)

	for i, color := range c.style.Palette {
		c.drawLayer(i, color, f)
	}
}

func (c *Compositor) drawLayer(i int, color string, f Frame) {
	w, h := c.state.Width, c.state.Height
	shape := LayerShape(i, f, w, h, c.style, &c.layout)

	c.ctx.Save()
	shape.Trace(c.ctx, w, h)
	c.ctx.SetFillStyle(color)
	c.ctx.SetGlobalAlpha(c.style.Alpha)
	c.ctx.Fill()
	c.ctx.SetGlobalAlpha(1)
	c.ctx.Restore()
}
