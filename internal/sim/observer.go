package sim

import (
	"time"

	"github.com/san-kum/wavefield/internal/physics"
)

// Observer is told about the background's activity. Implementations must
// return promptly; they run on the host loop.
type Observer interface {
	OnTick(now time.Duration, s physics.State)
	OnImpulse(imp physics.Impulse)
	// OnCoalesced reports a pointer event dropped because an update was
	// already pending for the frame.
	OnCoalesced()
}

// Observers fans out to several observers.
type Observers []Observer

func (o Observers) OnTick(now time.Duration, s physics.State) {
	for _, obs := range o {
		obs.OnTick(now, s)
	}
}

func (o Observers) OnImpulse(imp physics.Impulse) {
	for _, obs := range o {
		obs.OnImpulse(imp)
	}
}

func (o Observers) OnCoalesced() {
	for _, obs := range o {
		obs.OnCoalesced()
	}
}

type nopObserver struct{}

func (nopObserver) OnTick(time.Duration, physics.State) {}
func (nopObserver) OnImpulse(physics.Impulse)           {}
func (nopObserver) OnCoalesced()                        {}
