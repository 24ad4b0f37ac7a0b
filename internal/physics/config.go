package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/wavefield/internal/dynamo"
)

const (
	DefaultBaseLeftwardAcceleration = 0.001337
	DefaultMaxXAcceleration         = 0.15
	DefaultXFriction                = 0.98
	DefaultXReturnForce             = 0.005
	DefaultXSensitivity             = 0.3
	DefaultMaxYStretch              = 0.5
	DefaultYFriction                = 0.92
	DefaultYSensitivity             = 0.3
	DefaultWaveMass                 = 0.85
	DefaultMomentumTransfer         = 0.25
	DefaultStretchDecay             = 0.95
	DefaultBaseSpeed                = 0.22
	DefaultMinPhaseSpeed            = 0.1
	DefaultTimeUnit                 = 0.016
)

// Config holds the integrator constants. It is treated as immutable once an
// engine is running; callers pass it by pointer and never mutate it in place.
type Config struct {
	// X axis: constant leftward drift plus pointer-driven acceleration.
	BaseLeftwardAcceleration float64 `yaml:"base_leftward_acceleration"`
	MaxXAcceleration         float64 `yaml:"max_x_acceleration"`
	XFriction                float64 `yaml:"x_friction"`
	XReturnForce             float64 `yaml:"x_return_force"`
	XSensitivity             float64 `yaml:"x_sensitivity"`

	// Y axis: stretch of amplitude and vertical position.
	MaxYStretch  float64 `yaml:"max_y_stretch"`
	YFriction    float64 `yaml:"y_friction"`
	YSensitivity float64 `yaml:"y_sensitivity"`
	StretchDecay float64 `yaml:"stretch_decay"`

	WaveMass         float64 `yaml:"wave_mass"`
	MomentumTransfer float64 `yaml:"momentum_transfer"`

	BaseSpeed     float64 `yaml:"base_speed"`
	MinPhaseSpeed float64 `yaml:"min_phase_speed"`
	TimeUnit      float64 `yaml:"time_unit"`
}

func DefaultConfig() Config {
	return Config{
		BaseLeftwardAcceleration: DefaultBaseLeftwardAcceleration,
		MaxXAcceleration:         DefaultMaxXAcceleration,
		XFriction:                DefaultXFriction,
		XReturnForce:             DefaultXReturnForce,
		XSensitivity:             DefaultXSensitivity,
		MaxYStretch:              DefaultMaxYStretch,
		YFriction:                DefaultYFriction,
		YSensitivity:             DefaultYSensitivity,
		StretchDecay:             DefaultStretchDecay,
		WaveMass:                 DefaultWaveMass,
		MomentumTransfer:         DefaultMomentumTransfer,
		BaseSpeed:                DefaultBaseSpeed,
		MinPhaseSpeed:            DefaultMinPhaseSpeed,
		TimeUnit:                 DefaultTimeUnit,
	}
}

func (c *Config) Validate() error {
	unit := func(name string, v float64, inclusiveTop bool) error {
		if v < 0 || v > 1 || (!inclusiveTop && v == 1) {
			return fmt.Errorf("%w: %s out of range, got %g", dynamo.ErrInvalidConfig, name, v)
		}
		return nil
	}
	checks := []error{
		unit("x_friction", c.XFriction, true),
		unit("y_friction", c.YFriction, true),
		unit("wave_mass", c.WaveMass, false),
		unit("stretch_decay", c.StretchDecay, false),
		unit("momentum_transfer", c.MomentumTransfer, false),
		unit("x_return_force", c.XReturnForce, true),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if c.MaxXAcceleration < 0 || c.MaxYStretch < 0 {
		return fmt.Errorf("%w: impulse caps must be non-negative", dynamo.ErrInvalidConfig)
	}
	if c.MinPhaseSpeed <= 0 {
		return fmt.Errorf("%w: min_phase_speed must be positive, got %g", dynamo.ErrInvalidConfig, c.MinPhaseSpeed)
	}
	if c.TimeUnit <= 0 {
		return fmt.Errorf("%w: time_unit must be positive, got %g", dynamo.ErrInvalidConfig, c.TimeUnit)
	}
	return nil
}

// EquilibriumAcceleration is the fixed point of the acceleration decay under
// constant drift: a = (a - base) * mass.
func (c *Config) EquilibriumAcceleration() float64 {
	return -c.BaseLeftwardAcceleration * c.WaveMass / (1 - c.WaveMass)
}

// EquilibriumVelocity is the velocity the integrator settles at with no
// pointer input: the spring toward BaseSpeed balanced against friction and
// the steady leftward acceleration. With XFriction 1 and no drift it is
// exactly BaseSpeed.
func (c *Config) EquilibriumVelocity() float64 {
	k := c.XFriction * (1 - c.XReturnForce)
	if k >= 1 {
		return c.BaseSpeed
	}
	// the velocity step sees the acceleration before mass decay
	a := -c.BaseLeftwardAcceleration / (1 - c.WaveMass)
	return (a*k + c.BaseSpeed*c.XReturnForce) / (1 - k)
}

func (c *Config) GetParams() map[string]float64 {
	return map[string]float64{
		"base_leftward_acceleration": c.BaseLeftwardAcceleration,
		"max_x_acceleration":         c.MaxXAcceleration,
		"x_friction":                 c.XFriction,
		"x_return_force":             c.XReturnForce,
		"x_sensitivity":              c.XSensitivity,
		"max_y_stretch":              c.MaxYStretch,
		"y_friction":                 c.YFriction,
		"y_sensitivity":              c.YSensitivity,
		"stretch_decay":              c.StretchDecay,
		"wave_mass":                  c.WaveMass,
		"momentum_transfer":          c.MomentumTransfer,
		"base_speed":                 c.BaseSpeed,
		"min_phase_speed":            c.MinPhaseSpeed,
		"time_unit":                  c.TimeUnit,
	}
}

func (c *Config) SetParam(name string, v float64) error {
	fields := map[string]*float64{
		"base_leftward_acceleration": &c.BaseLeftwardAcceleration,
		"max_x_acceleration":         &c.MaxXAcceleration,
		"x_friction":                 &c.XFriction,
		"x_return_force":             &c.XReturnForce,
		"x_sensitivity":              &c.XSensitivity,
		"max_y_stretch":              &c.MaxYStretch,
		"y_friction":                 &c.YFriction,
		"y_sensitivity":              &c.YSensitivity,
		"stretch_decay":              &c.StretchDecay,
		"wave_mass":                  &c.WaveMass,
		"momentum_transfer":          &c.MomentumTransfer,
		"base_speed":                 &c.BaseSpeed,
		"min_phase_speed":            &c.MinPhaseSpeed,
		"time_unit":                  &c.TimeUnit,
	}
	f, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: unknown physics parameter %q", dynamo.ErrInvalidConfig, name)
	}
	*f = v
	return nil
}

// ParamNames lists the SetParam keys in a stable order.
func ParamNames() []string {
	c := DefaultConfig()
	names := make([]string, 0, 14)
	for k := range c.GetParams() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
