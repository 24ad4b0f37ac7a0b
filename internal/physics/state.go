package physics

import (
	"math"

	"github.com/san-kum/wavefield/internal/dynamo"
)

type State struct {
	WaveVelocity     float64 // phase speed before clamping
	WaveAcceleration float64 // leftward drift
	StretchVelocity  float64
	StretchAmount    float64 // vertical modulation
	WaveXOffset      float64 // accumulated horizontal phase shift
}

// Rest returns the state the background starts from.
func Rest() State {
	return State{}
}

func (s State) IsValid() bool {
	for _, v := range [...]float64{s.WaveVelocity, s.WaveAcceleration, s.StretchVelocity, s.StretchAmount, s.WaveXOffset} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Outputs are the integrated values the compositor consumes.
type Outputs struct {
	PhaseSpeed float64
	Stretch    float64
	XOffset    float64
}

func (s State) Outputs(cfg *Config) Outputs {
	return Outputs{
		PhaseSpeed: math.Max(cfg.MinPhaseSpeed, s.WaveVelocity),
		Stretch:    s.StretchAmount,
		XOffset:    s.WaveXOffset,
	}
}

// Impulse is a momentum-scaled perturbation waiting to be folded into the
// next integration step.
type Impulse struct {
	Acceleration    float64
	StretchVelocity float64
}

func (i Impulse) Add(o Impulse) Impulse {
	return Impulse{i.Acceleration + o.Acceleration, i.StretchVelocity + o.StretchVelocity}
}

func (i Impulse) IsZero() bool { return i.Acceleration == 0 && i.StretchVelocity == 0 }

// ImpulseFromVelocity converts a smoothed pointer velocity into an impulse.
// Any horizontal motion biases leftward; vertical motion is signed and capped.
func ImpulseFromVelocity(v dynamo.Vec2, cfg *Config) Impulse {
	x := math.Max(-math.Abs(v.X)*cfg.XSensitivity, -cfg.MaxXAcceleration)
	y := clamp(v.Y*cfg.YSensitivity, -cfg.MaxYStretch, cfg.MaxYStretch)
	return Impulse{
		Acceleration:    x * cfg.MomentumTransfer,
		StretchVelocity: y * cfg.MomentumTransfer,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
