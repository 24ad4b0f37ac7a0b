package frame

import (
	"testing"
	"time"
)

func TestQueue_FlushRunsInOrder(t *testing.T) {
	q := NewQueue()
	var order []int
	q.Request(func(time.Duration) { order = append(order, 1) })
	q.Request(func(time.Duration) { order = append(order, 2) })

	if n := q.Flush(16 * time.Millisecond); n != 2 {
		t.Fatalf("expected 2 callbacks, ran %d", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("unexpected order %v", order)
	}
	if q.Pending() != 0 {
		t.Errorf("expected empty queue, got %d pending", q.Pending())
	}
}

func TestQueue_RequestDuringFlushDefers(t *testing.T) {
	q := NewQueue()
	runs := 0
	var loop Callback
	loop = func(time.Duration) {
		runs++
		q.Request(loop)
	}
	q.Request(loop)

	q.Flush(0)
	q.Flush(16 * time.Millisecond)

	if runs != 2 {
		t.Errorf("expected one run per flush, got %d", runs)
	}
	if q.Pending() != 1 {
		t.Errorf("expected the rescheduled callback to be pending, got %d", q.Pending())
	}
}

func TestQueue_Cancel(t *testing.T) {
	q := NewQueue()
	ran := false
	h := q.Request(func(time.Duration) { ran = true })
	q.Cancel(h)
	q.Flush(0)
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestQueue_CancelWithinBatch(t *testing.T) {
	q := NewQueue()
	ran := false
	var second Handle
	q.Request(func(time.Duration) { q.Cancel(second) })
	second = q.Request(func(time.Duration) { ran = true })

	if n := q.Flush(0); n != 1 {
		t.Errorf("expected 1 callback, ran %d", n)
	}
	if ran {
		t.Error("callback cancelled mid-flush still ran")
	}
}

func TestQueue_PostRunsBeforeCallbacks(t *testing.T) {
	q := NewQueue()
	var order []string
	q.Request(func(time.Duration) { order = append(order, "frame") })

	done := make(chan struct{})
	go func() {
		q.Post(func() { order = append(order, "posted") })
		close(done)
	}()
	<-done

	q.Flush(0)
	if len(order) != 2 || order[0] != "posted" || order[1] != "frame" {
		t.Errorf("unexpected order %v", order)
	}
}

func TestQueue_TimestampPassedThrough(t *testing.T) {
	q := NewQueue()
	var got time.Duration
	q.Request(func(now time.Duration) { got = now })
	q.Flush(1234 * time.Millisecond)
	if got != 1234*time.Millisecond {
		t.Errorf("callback saw %v, want 1.234s", got)
	}
}
