package theme

import (
	"os"
	"strconv"
	"strings"
)

// Source is the user's explicit theme choice.
type Source interface {
	Mode() Mode
	// Subscribe registers fn for mode changes and returns its cancel func.
	Subscribe(fn func(Mode)) (cancel func())
}

// Preference is the platform's dark-mode preference.
type Preference interface {
	PrefersDark() bool
	Subscribe(fn func(dark bool)) (cancel func())
}

// listeners is a small registry shared by the in-process sources. It belongs
// to the host loop and is not safe for concurrent use.
type listeners[T any] struct {
	next int
	fns  map[int]func(T)
}

func (l *listeners[T]) add(fn func(T)) func() {
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() { delete(l.fns, id) }
}

func (l *listeners[T]) emit(v T) {
	for i := 0; i < l.next; i++ {
		if fn, ok := l.fns[i]; ok {
			fn(v)
		}
	}
}

func (l *listeners[T]) len() int { return len(l.fns) }

// Switch is a Source driven by a toggle.
type Switch struct {
	mode Mode
	subs listeners[Mode]
}

func NewSwitch(m Mode) *Switch {
	return &Switch{mode: m}
}

func (s *Switch) Mode() Mode { return s.mode }

func (s *Switch) Set(m Mode) {
	if m == s.mode {
		return
	}
	s.mode = m
	s.subs.emit(m)
}

// Toggle advances to the next mode and returns it.
func (s *Switch) Toggle() Mode {
	s.Set(s.mode.Next())
	return s.mode
}

func (s *Switch) Subscribe(fn func(Mode)) func() { return s.subs.add(fn) }

// Subscribers reports how many listeners are registered.
func (s *Switch) Subscribers() int { return s.subs.len() }

// StaticPreference is a Preference that changes only when told to.
type StaticPreference struct {
	dark bool
	subs listeners[bool]
}

func NewStaticPreference(dark bool) *StaticPreference {
	return &StaticPreference{dark: dark}
}

func (p *StaticPreference) PrefersDark() bool { return p.dark }

func (p *StaticPreference) Set(dark bool) {
	if dark == p.dark {
		return
	}
	p.dark = dark
	p.subs.emit(dark)
}

func (p *StaticPreference) Subscribe(fn func(bool)) func() { return p.subs.add(fn) }

func (p *StaticPreference) Subscribers() int { return p.subs.len() }

// EnvPreference reads the desktop's dark-mode hint from the environment
// once. GTK_THEME ending in ":dark" or a COLORFGBG background below 7
// count as dark.
func EnvPreference(getenv func(string) string) *StaticPreference {
	if getenv == nil {
		getenv = os.Getenv
	}
	return NewStaticPreference(envPrefersDark(getenv))
}

func envPrefersDark(getenv func(string) string) bool {
	if gtk := strings.ToLower(getenv("GTK_THEME")); gtk != "" {
		return strings.HasSuffix(gtk, ":dark") || strings.Contains(gtk, "-dark")
	}
	if fgbg := getenv("COLORFGBG"); fgbg != "" {
		parts := strings.Split(fgbg, ";")
		bg, err := strconv.Atoi(parts[len(parts)-1])
		if err == nil {
			return bg < 7 || bg == 8
		}
	}
	return false
}
