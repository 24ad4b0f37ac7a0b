package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/theme"
)

type Preset struct {
	Description string
	apply       func(*Config)
}

var Presets = map[string]Preset{
	"default": {
		Description: "reference background",
		apply:       func(*Config) {},
	},
	"calm": {
		Description: "slower drift, gentler pointer response",
		apply: func(c *Config) {
			c.Physics.BaseLeftwardAcceleration = 0.0006
			c.Physics.XSensitivity = 0.15
			c.Physics.YSensitivity = 0.15
			c.Physics.MomentumTransfer = 0.15
			c.Layout.AmplitudeWobble = 6
			c.Layout.TimeDivisor = 2000
		},
	},
	"lively": {
		Description: "strong pointer response and faster layers",
		apply: func(c *Config) {
			c.Physics.XSensitivity = 0.6
			c.Physics.YSensitivity = 0.6
			c.Physics.MaxYStretch = 0.8
			c.Physics.MomentumTransfer = 0.4
			c.Layout.SpeedStep = 0.12
			c.Layout.TimeDivisor = 1000
		},
	},
	"still": {
		Description: "no drift or friction; velocity settles at base speed",
		apply: func(c *Config) {
			c.Physics.BaseLeftwardAcceleration = 0
			c.Physics.XFriction = 1
		},
	},
	"night": {
		Description: "reference background, always dark",
		apply: func(c *Config) {
			c.Theme = theme.ModeDark
		},
	},
	"day": {
		Description: "reference background, always light",
		apply: func(c *Config) {
			c.Theme = theme.ModeLight
		},
	},
}

// GetPreset returns the defaults with the named preset applied.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	p.apply(cfg)
	return cfg, nil
}

// Apply layers the named preset onto c.
func (c *Config) Apply(name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, name)
	}
	p.apply(c)
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
