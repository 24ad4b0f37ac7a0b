package sim

import (
	"testing"
	"time"

	"github.com/san-kum/wavefield/internal/frame"
)

func TestDriver_TicksOncePerFlush(t *testing.T) {
	q := frame.NewQueue()
	var stamps []time.Duration
	d := NewDriver(q, func(now time.Duration) { stamps = append(stamps, now) })

	d.Start()
	d.Start() // idempotent
	if q.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", q.Pending())
	}

	for i := 1; i <= 3; i++ {
		q.Flush(time.Duration(i) * 16 * time.Millisecond)
	}
	if len(stamps) != 3 || d.Ticks() != 3 {
		t.Fatalf("ticks = %d (%v)", d.Ticks(), stamps)
	}
	if stamps[2] != 48*time.Millisecond {
		t.Errorf("timestamp = %s", stamps[2])
	}
}

func TestDriver_StopCancelsPending(t *testing.T) {
	q := frame.NewQueue()
	n := 0
	d := NewDriver(q, func(time.Duration) { n++ })

	d.Start()
	q.Flush(0)
	d.Stop()
	q.Flush(1)
	q.Flush(2)

	if n != 1 {
		t.Errorf("ticks after stop: %d", n)
	}
	if q.Pending() != 0 {
		t.Errorf("pending after stop = %d", q.Pending())
	}
	if d.Running() {
		t.Error("driver still running")
	}
}

func TestDriver_StopFromTick(t *testing.T) {
	q := frame.NewQueue()
	var d *Driver
	n := 0
	d = NewDriver(q, func(time.Duration) {
		n++
		if n == 2 {
			d.Stop()
		}
	})

	d.Start()
	for i := 0; i < 5; i++ {
		q.Flush(time.Duration(i))
	}
	if n != 2 {
		t.Errorf("ticks = %d, want 2", n)
	}
}

func TestDriver_Restart(t *testing.T) {
	q := frame.NewQueue()
	n := 0
	d := NewDriver(q, func(time.Duration) { n++ })

	d.Start()
	d.Stop()
	d.Start()
	q.Flush(0)
	if n != 1 || q.Pending() != 1 {
		t.Errorf("n = %d pending = %d", n, q.Pending())
	}
}

func TestEventHub(t *testing.T) {
	h := NewEventHub()
	var moves, resizes int
	c1 := h.OnPointerMove(func(x, y float64) { moves++ })
	c2 := h.OnResize(func() { resizes++ })

	h.EmitPointerMove(1, 2)
	h.EmitResize()
	c1()
	c2()
	h.EmitPointerMove(1, 2)
	h.EmitResize()

	if moves != 1 || resizes != 1 || h.Listeners() != 0 {
		t.Errorf("moves=%d resizes=%d listeners=%d", moves, resizes, h.Listeners())
	}
}
