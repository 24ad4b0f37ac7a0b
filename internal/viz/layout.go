package viz

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/wavefield/internal/dynamo"
)

// Layout holds the constants each layer's geometry steps through. Layer i
// uses base + i*step for every stepped quantity.
type Layout struct {
	AmplitudeStep      float64 `yaml:"amplitude_step"`
	AmplitudeWobble    float64 `yaml:"amplitude_wobble"`
	AmplitudePeriod    float64 `yaml:"amplitude_period"`
	StretchAmplitude   float64 `yaml:"stretch_amplitude"`
	StretchAmpStep     float64 `yaml:"stretch_amplitude_step"`
	SpeedStep          float64 `yaml:"speed_step"`
	YOffsetStep        float64 `yaml:"y_offset_step"`
	YWobble            float64 `yaml:"y_wobble"`
	YPeriod            float64 `yaml:"y_period"`
	StretchOffset      float64 `yaml:"stretch_offset"`
	StretchOffsetStep  float64 `yaml:"stretch_offset_step"`
	MouseInfluence     float64 `yaml:"mouse_influence"`
	MouseInfluenceStep float64 `yaml:"mouse_influence_step"`
	PhaseLayerShift    float64 `yaml:"phase_layer_shift"`
	ParallaxStep       float64 `yaml:"parallax_step"`
	SegmentWidth       float64 `yaml:"segment_width"`
	Slope              float64 `yaml:"slope"`
	Ripple             float64 `yaml:"ripple"`
	TimeDivisor        float64 `yaml:"time_divisor"` // milliseconds per unit of t
}

// DefaultLayout returns the constants of the reference background.
func DefaultLayout() Layout {
	return Layout{
		AmplitudeStep:      18,
		AmplitudeWobble:    10,
		AmplitudePeriod:    2.5,
		StretchAmplitude:   60,
		StretchAmpStep:     3,
		SpeedStep:          0.08,
		YOffsetStep:        0.12,
		YWobble:            12,
		YPeriod:            3,
		StretchOffset:      40,
		StretchOffsetStep:  2,
		MouseInfluence:     60,
		MouseInfluenceStep: 0.15,
		PhaseLayerShift:    1.5,
		ParallaxStep:       0.1,
		SegmentWidth:       60,
		Slope:              0.4 * 9 / 16,
		Ripple:             0.1,
		TimeDivisor:        1400,
	}
}

func (l *Layout) Validate() error {
	if !(l.SegmentWidth > 0) {
		return fmt.Errorf("%w: segment_width must be positive", dynamo.ErrInvalidConfig)
	}
	if !(l.TimeDivisor > 0) {
		return fmt.Errorf("%w: time_divisor must be positive", dynamo.ErrInvalidConfig)
	}
	if !(l.AmplitudePeriod > 0) || !(l.YPeriod > 0) {
		return fmt.Errorf("%w: wobble periods must be positive", dynamo.ErrInvalidConfig)
	}
	return nil
}

// Time converts a frame timestamp to the animation's time unit.
func (l *Layout) Time(now time.Duration) float64 {
	return dynamo.Millis(now) / l.TimeDivisor
}

// Samples is the number of segments across a surface of the given CSS
// width. Sample indices run 0..Samples inclusive.
func (l *Layout) Samples(width float64) int {
	if !drawable(width, 1) || !(l.SegmentWidth > 0) {
		return 0
	}
	return int(math.Ceil(width / l.SegmentWidth))
}
