package dynamo

import (
	"math"
	"time"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Norm() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Rect is an axis-aligned rectangle in CSS pixels, shaped like a DOMRect.
type Rect struct {
	Left, Top, Width, Height float64
}

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Normalize maps a client-space point into [0,1]x[0,1] relative to r.
// Points outside the rectangle map outside the unit square.
func (r Rect) Normalize(clientX, clientY float64) Vec2 {
	return Vec2{(clientX - r.Left) / r.Width, (clientY - r.Top) / r.Height}
}

// Clock is a monotonic time source measured from an arbitrary epoch.
type Clock interface {
	Now() time.Duration
}

type systemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock whose epoch is the moment of the call.
func NewSystemClock() Clock {
	return &systemClock{start: time.Now()}
}

func (c *systemClock) Now() time.Duration { return time.Since(c.start) }

// ManualClock only moves when told to.
type ManualClock struct {
	now time.Duration
}

func (c *ManualClock) Now() time.Duration { return c.now }

func (c *ManualClock) Set(d time.Duration) { c.now = d }

func (c *ManualClock) Advance(d time.Duration) { c.now += d }

// Millis converts a duration to fractional milliseconds, the unit the
// browser hands to frame callbacks.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
