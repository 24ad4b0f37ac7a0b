// Package frame models the display refresh signal.
//
// A [Scheduler] runs a callback once, just before the next repaint, and can
// cancel a callback that has not run yet. Browsers provide this natively
// (requestAnimationFrame); desktop and terminal hosts drive a [Queue] from
// their own vsync or tick loop.
package frame

import (
	"sync"
	"time"
)

// Callback receives the frame timestamp, measured from the scheduler's epoch.
type Callback func(now time.Duration)

// Handle identifies a requested callback. The zero Handle is never issued.
type Handle uint64

type Scheduler interface {
	Request(cb Callback) Handle
	Cancel(h Handle)
}

type entry struct {
	handle Handle
	cb     Callback
}

// Queue is a Scheduler flushed by its host once per refresh.
//
// Callbacks requested while a flush is running are deferred to the next
// flush, matching requestAnimationFrame. Post is the only method meant to
// be called from other goroutines; everything else belongs to the host loop.
type Queue struct {
	mu      sync.Mutex
	next    Handle
	pending []entry
	inbox   []func()
	// handles of the batch currently being flushed that are still live
	live map[Handle]bool
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Request(cb Callback) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending = append(q.pending, entry{handle: q.next, cb: cb})
	return q.next
}

func (q *Queue) Cancel(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.pending {
		if e.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	delete(q.live, h)
}

// Post queues fn to run on the host loop at the start of the next flush.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.inbox = append(q.inbox, fn)
	q.mu.Unlock()
}

// Pending reports how many callbacks are waiting for the next flush.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush drains posted work, then runs every callback requested before the
// flush began, in request order. It returns the number of callbacks run.
func (q *Queue) Flush(now time.Duration) int {
	q.mu.Lock()
	inbox := q.inbox
	q.inbox = nil
	q.mu.Unlock()

	for _, fn := range inbox {
		fn()
	}

	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.live = make(map[Handle]bool, len(batch))
	for _, e := range batch {
		q.live[e.handle] = true
	}
	q.mu.Unlock()

	ran := 0
	for _, e := range batch {
		if !q.take(e.handle) {
			continue
		}
		e.cb(now)
		ran++
	}
	return ran
}

// take claims h from the running batch; false means it was cancelled by an
// earlier callback of the same flush.
func (q *Queue) take(h Handle) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.live[h] {
		return false
	}
	delete(q.live, h)
	return true
}
