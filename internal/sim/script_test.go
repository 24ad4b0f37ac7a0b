package sim

import (
	"context"
	"strings"
	"testing"

	"github.com/san-kum/wavefield/internal/physics"
)

func TestSweep(t *testing.T) {
	s := Sweep(100, 10)
	if len(s) != 10 {
		t.Fatalf("moves = %d, want 10", len(s))
	}
	if s[0].X != 0 || s[0].Y != 0.5 {
		t.Errorf("first move = %+v", s[0])
	}
	for i := 1; i < len(s); i++ {
		if s[i].X <= s[i-1].X || s[i].Tick != i*10 {
			t.Errorf("move %d = %+v", i, s[i])
		}
		if s[i].Y < 0.2 || s[i].Y > 0.8 {
			t.Errorf("move %d y out of band: %v", i, s[i].Y)
		}
	}
	if Sweep(0, 1) != nil || Sweep(10, 0) != nil {
		t.Error("degenerate sweeps should be empty")
	}
}

func TestSweepDrivesImpulses(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.Ticks = 120
	res, err := New(physics.DefaultConfig()).Run(context.Background(), physics.Rest(), Sweep(cfg.Ticks, 4), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Impulses != 30 {
		t.Errorf("impulses = %d, want 30", res.Impulses)
	}
}

func TestReadScript(t *testing.T) {
	s, err := ReadScript(strings.NewReader(`[{"tick":3,"x":0.25,"y":0.75},{"tick":1,"x":0.5,"y":0.5}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 2 || s[0].Tick != 3 || s[0].X != 0.25 || s[1].Y != 0.5 {
		t.Errorf("script = %+v", s)
	}

	if _, err := ReadScript(strings.NewReader(`[{"tick":-1}]`)); err == nil {
		t.Error("expected error for negative tick")
	}
	if _, err := ReadScript(strings.NewReader(`{`)); err == nil {
		t.Error("expected decode error")
	}
}
