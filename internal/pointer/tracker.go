// Package pointer samples pointer movement over a render surface and turns
// it into physics impulses.
package pointer

import (
	"math"
	"time"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/frame"
	"github.com/san-kum/wavefield/internal/physics"
)

const (
	// ReferenceFrame is the 60 Hz frame length velocities are normalized to, in ms.
	ReferenceFrame = 16.67
	// Smoothing is the weight kept from the previous velocity.
	Smoothing = 0.7
)

// Sink receives impulses derived from pointer movement.
type Sink interface {
	ApplyImpulse(physics.Impulse)
}

type SinkFunc func(physics.Impulse)

func (f SinkFunc) ApplyImpulse(imp physics.Impulse) { f(imp) }

// Sample is the tracker's view of the pointer.
type Sample struct {
	Position dynamo.Vec2 // normalized to the surface bounds
	Velocity dynamo.Vec2 // smoothed, per 60 Hz frame
	At       time.Duration
}

// Tracker coalesces pointer-move events so that at most one impulse is
// computed per display refresh, however fast events arrive.
type Tracker struct {
	sched frame.Scheduler
	cfg   *physics.Config
	sink  Sink

	bounds dynamo.Rect
	sample Sample

	pending   frame.Handle
	scheduled bool
	clientX   float64
	clientY   float64
}

func NewTracker(sched frame.Scheduler, cfg *physics.Config, sink Sink) *Tracker {
	return &Tracker{
		sched:  sched,
		cfg:    cfg,
		sink:   sink,
		sample: Sample{Position: dynamo.Vec2{X: 0.5, Y: 0.5}},
	}
}

// SetBounds refreshes the cached bounding rectangle. Hosts call it on resize.
func (t *Tracker) SetBounds(r dynamo.Rect) { t.bounds = r }

func (t *Tracker) Bounds() dynamo.Rect { return t.bounds }

func (t *Tracker) Sample() Sample { return t.sample }

func (t *Tracker) Position() dynamo.Vec2 { return t.sample.Position }

func (t *Tracker) Velocity() dynamo.Vec2 { return t.sample.Velocity }

// Pending reports whether a coalesced update is waiting for the next frame.
func (t *Tracker) Pending() bool { return t.scheduled }

// Move records a pointer-move event in client coordinates. It returns false
// when the event was dropped because an update is already scheduled for the
// coming frame; the first event of a frame wins.
func (t *Tracker) Move(clientX, clientY float64) bool {
	if t.scheduled {
		return false
	}
	t.clientX, t.clientY = clientX, clientY
	t.scheduled = true
	t.pending = t.sched.Request(t.update)
	return true
}

// Cancel drops a scheduled update, if any.
func (t *Tracker) Cancel() {
	if !t.scheduled {
		return
	}
	t.sched.Cancel(t.pending)
	t.scheduled = false
	t.pending = 0
}

func (t *Tracker) update(now time.Duration) {
	t.scheduled = false
	t.pending = 0
	if t.bounds.Empty() {
		return
	}

	pos := t.bounds.Normalize(t.clientX, t.clientY)
	step := math.Max(dynamo.Millis(now-t.sample.At), 1) / ReferenceFrame

	instant := pos.Sub(t.sample.Position).Scale(1 / step)
	vel := t.sample.Velocity.Scale(Smoothing).Add(instant.Scale(1 - Smoothing))

	t.sample = Sample{Position: pos, Velocity: vel, At: now}
	if t.sink != nil {
		t.sink.ApplyImpulse(physics.ImpulseFromVelocity(vel, t.cfg))
	}
}
