package sim

import (
	"time"

	"github.com/san-kum/wavefield/internal/frame"
)

// Driver keeps exactly one frame callback outstanding while running. The
// tick function runs once per refresh; the next callback is requested after
// it returns, so a tick that stops the driver is its last.
type Driver struct {
	sched   frame.Scheduler
	tick    frame.Callback
	handle  frame.Handle
	running bool
	ticks   uint64
}

func NewDriver(sched frame.Scheduler, tick frame.Callback) *Driver {
	return &Driver{sched: sched, tick: tick}
}

// Start is a no-op on a running driver.
func (d *Driver) Start() {
	if d.running {
		return
	}
	d.running = true
	d.handle = d.sched.Request(d.loop)
}

// Stop cancels the pending callback.
func (d *Driver) Stop() {
	if !d.running {
		return
	}
	d.running = false
	d.sched.Cancel(d.handle)
	d.handle = 0
}

func (d *Driver) Running() bool { return d.running }

// Ticks counts completed ticks since construction.
func (d *Driver) Ticks() uint64 { return d.ticks }

func (d *Driver) loop(now time.Duration) {
	d.handle = 0
	if !d.running {
		return
	}
	d.tick(now)
	d.ticks++
	if d.running {
		d.handle = d.sched.Request(d.loop)
	}
}
