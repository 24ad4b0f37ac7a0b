package metrics

import (
	"math"
	"time"

	"github.com/san-kum/wavefield/internal/physics"
)

// Settling reports the time, in seconds, after which the wave velocity last
// entered and stayed within tolerance of its idle equilibrium. It is -1
// while the velocity is still outside the band.
type Settling struct {
	target    float64
	tolerance float64
	settledAt time.Duration
	inside    bool
	samples   int
}

func NewSettling(cfg *physics.Config, tolerance float64) *Settling {
	return &Settling{target: cfg.EquilibriumVelocity(), tolerance: tolerance}
}

func (s *Settling) Name() string { return "settling_time" }

func (s *Settling) Observe(st physics.State, _ physics.Outputs, now time.Duration) {
	s.samples++
	if math.Abs(st.WaveVelocity-s.target) <= s.tolerance {
		if !s.inside {
			s.inside = true
			s.settledAt = now
		}
		return
	}
	s.inside = false
}

func (s *Settling) Value() float64 {
	if !s.inside {
		return -1
	}
	return s.settledAt.Seconds()
}

func (s *Settling) Reset() {
	s.inside = false
	s.settledAt = 0
	s.samples = 0
}
