package theme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Style holds everything about the background that depends on the scheme.
type Style struct {
	Name          string   `yaml:"name"`
	Palette       []string `yaml:"palette"` // back to front; Palette[0] also fills the background
	Alpha         float64  `yaml:"alpha"`
	BaseAmplitude float64  `yaml:"base_amplitude"`
	BaseYOffset   float64  `yaml:"base_y_offset"` // fraction of surface height
}

// Colors parses the palette tokens.
func (s Style) Colors() ([]colorful.Color, error) {
	out := make([]colorful.Color, len(s.Palette))
	for i, hex := range s.Palette {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette %s[%d]: %w", s.Name, i, err)
		}
		out[i] = c
	}
	return out, nil
}

// Background is the colour the surface is filled with before any layer.
func (s Style) Background() string {
	if len(s.Palette) == 0 {
		return "#000000"
	}
	return s.Palette[0]
}

type Styles struct {
	Light Style `yaml:"light"`
	Dark  Style `yaml:"dark"`
}

func (s Styles) For(scheme Scheme) Style {
	if scheme == Dark {
		return s.Dark
	}
	return s.Light
}

// DefaultStyles returns fresh copies on every call so callers may edit them.
func DefaultStyles() Styles {
	return Styles{
		Light: Style{
			Name: "light",
			Palette: []string{
				"#faebd7", "#f5e3ce", "#f3e0c7", "#f7e8d6",
				"#f1dbc0", "#f8e6d2", "#f6e2c9", "#f2d7b8",
			},
			Alpha:         0.2,
			BaseAmplitude: 42,
			BaseYOffset:   0.25,
		},
		Dark: Style{
			Name: "dark",
			Palette: []string{
				"#2c2320", "#3a2e29", "#44342e", "#382a25",
				"#211a17", "#33251f", "#3d2c27", "#1a1412",
			},
			Alpha:         0.25,
			BaseAmplitude: 35,
			BaseYOffset:   0.2,
		},
	}
}

// Validate checks that every palette token parses.
func (s Styles) Validate() error {
	for _, st := range [...]Style{s.Light, s.Dark} {
		if len(st.Palette) == 0 {
			return fmt.Errorf("palette %s is empty", st.Name)
		}
		if _, err := st.Colors(); err != nil {
			return err
		}
		if st.Alpha < 0 || st.Alpha > 1 {
			return fmt.Errorf("palette %s alpha %g out of range", st.Name, st.Alpha)
		}
	}
	return nil
}
