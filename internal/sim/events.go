package sim

// Events is where a host announces pointer and resize events. The
// background subscribes on Start and unsubscribes on Stop.
type Events interface {
	OnPointerMove(fn func(clientX, clientY float64)) (cancel func())
	OnResize(fn func()) (cancel func())
}

// EventHub is an in-process Events. Hosts call the Emit methods from their
// event loop; it is not safe for concurrent use.
type EventHub struct {
	next   int
	moves  map[int]func(float64, float64)
	resize map[int]func()
}

func NewEventHub() *EventHub {
	return &EventHub{
		moves:  make(map[int]func(float64, float64)),
		resize: make(map[int]func()),
	}
}

func (h *EventHub) OnPointerMove(fn func(x, y float64)) func() {
	id := h.id()
	h.moves[id] = fn
	return func() { delete(h.moves, id) }
}

func (h *EventHub) OnResize(fn func()) func() {
	id := h.id()
	h.resize[id] = fn
	return func() { delete(h.resize, id) }
}

func (h *EventHub) id() int {
	h.next++
	return h.next
}

func (h *EventHub) EmitPointerMove(x, y float64) {
	for _, fn := range h.moves {
		fn(x, y)
	}
}

func (h *EventHub) EmitResize() {
	for _, fn := range h.resize {
		fn()
	}
}

// Listeners reports how many callbacks are registered.
func (h *EventHub) Listeners() int { return len(h.moves) + len(h.resize) }
