package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
)

// Sweep is a scripted pointer pass: one move every `every` ticks, left to
// right across the surface over `ticks` ticks while y follows one sine
// period around the middle.
func Sweep(ticks, every int) Script {
	if ticks <= 0 || every <= 0 {
		return nil
	}
	var s Script
	for tick := 0; tick < ticks; tick += every {
		p := float64(tick) / float64(ticks)
		s = append(s, Move{
			Tick: tick,
			X:    p,
			Y:    0.5 + 0.3*math.Sin(2*math.Pi*p),
		})
	}
	return s
}

// ReadScript decodes a JSON array of moves.
func ReadScript(r io.Reader) (Script, error) {
	var s Script
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	for i, m := range s {
		if m.Tick < 0 {
			return nil, fmt.Errorf("move %d: negative tick %d", i, m.Tick)
		}
	}
	return s, nil
}

func LoadScript(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadScript(f)
}
