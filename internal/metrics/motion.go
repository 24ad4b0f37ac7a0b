package metrics

import (
	"math"
	"time"

	"github.com/san-kum/wavefield/internal/physics"
)

// MeanSpeed averages the clamped phase speed the compositor draws with.
type MeanSpeed struct {
	samples int
	total   float64
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_phase_speed" }

func (m *MeanSpeed) Observe(_ physics.State, out physics.Outputs, _ time.Duration) {
	m.total += out.PhaseSpeed
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.total = 0
	m.samples = 0
}

// PeakStretch tracks the largest stretch magnitude.
type PeakStretch struct {
	peak float64
}

func NewPeakStretch() *PeakStretch { return &PeakStretch{} }

func (p *PeakStretch) Name() string { return "peak_stretch" }

func (p *PeakStretch) Observe(s physics.State, _ physics.Outputs, _ time.Duration) {
	p.peak = math.Max(p.peak, math.Abs(s.StretchAmount))
}

func (p *PeakStretch) Value() float64 { return p.peak }

func (p *PeakStretch) Reset() { p.peak = 0 }

// ClampedFraction is the share of ticks whose phase speed was raised to the
// configured minimum.
type ClampedFraction struct {
	min     float64
	clamped int
	samples int
}

func NewClampedFraction(cfg *physics.Config) *ClampedFraction {
	return &ClampedFraction{min: cfg.MinPhaseSpeed}
}

func (c *ClampedFraction) Name() string { return "clamped_fraction" }

func (c *ClampedFraction) Observe(s physics.State, _ physics.Outputs, _ time.Duration) {
	if s.WaveVelocity < c.min {
		c.clamped++
	}
	c.samples++
}

func (c *ClampedFraction) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.clamped) / float64(c.samples)
}

func (c *ClampedFraction) Reset() {
	c.clamped = 0
	c.samples = 0
}
