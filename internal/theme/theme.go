// Package theme resolves the active colour scheme for the wave background.
//
// A [Source] supplies the user's explicit choice (light, dark or follow the
// system) and a [Preference] supplies the system's dark-mode flag. The
// active [Scheme] is the combination of both.
package theme

import (
	"fmt"
	"strings"

	"github.com/san-kum/wavefield/internal/dynamo"
)

type Mode int

const (
	ModeSystem Mode = iota
	ModeLight
	ModeDark
)

var modeNames = [...]string{"system", "light", "dark"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next cycles light -> dark -> system -> light, the order of the toggle button.
func (m Mode) Next() Mode {
	switch m {
	case ModeLight:
		return ModeDark
	case ModeDark:
		return ModeSystem
	default:
		return ModeLight
	}
}

// Resolve picks the concrete scheme, consulting the system preference only
// in system mode.
func (m Mode) Resolve(prefersDark bool) Scheme {
	switch m {
	case ModeLight:
		return Light
	case ModeDark:
		return Dark
	}
	if prefersDark {
		return Dark
	}
	return Light
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "system", "auto":
		return ModeSystem, nil
	case "light":
		return ModeLight, nil
	case "dark":
		return ModeDark, nil
	}
	return ModeSystem, fmt.Errorf("%w: %q", dynamo.ErrUnknownTheme, s)
}

// ModeNames lists the accepted mode spellings.
func ModeNames() []string {
	return modeNames[:]
}

type Scheme int

const (
	Light Scheme = iota
	Dark
)

func (s Scheme) String() string {
	if s == Dark {
		return "dark"
	}
	return "light"
}

func (s Scheme) IsDark() bool { return s == Dark }
