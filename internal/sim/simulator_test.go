package sim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/frame"
	"github.com/san-kum/wavefield/internal/physics"
	"github.com/san-kum/wavefield/internal/viz"
)

type countingMetric struct {
	count int
	sum   float64
}

func (m *countingMetric) Name() string { return "count" }
func (m *countingMetric) Observe(s physics.State, out physics.Outputs, now time.Duration) {
	m.count++
	m.sum += out.PhaseSpeed
}
func (m *countingMetric) Value() float64 { return float64(m.count) }
func (m *countingMetric) Reset()         { m.count, m.sum = 0, 0 }

func TestSimulatorRun_Idle(t *testing.T) {
	cfg := physics.DefaultConfig()
	s := New(cfg)
	m := &countingMetric{}
	s.AddMetric(m)

	res, err := s.Run(context.Background(), physics.Rest(), nil, Config{Ticks: 100, FrameInterval: 16 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	if res.StepsTaken != 100 || len(res.States) != 100 {
		t.Fatalf("steps = %d states = %d", res.StepsTaken, len(res.States))
	}
	if res.Metrics["count"] != 100 {
		t.Errorf("metric = %g", res.Metrics["count"])
	}

	// matches stepping the integrator directly
	want := physics.Run(physics.Rest(), 100, &cfg)
	got := res.States[99]
	if math.Abs(got.WaveVelocity-want.WaveVelocity) > 1e-12 || math.Abs(got.WaveXOffset-want.WaveXOffset) > 1e-12 {
		t.Errorf("state = %+v, want %+v", got, want)
	}
	if res.Times[0] != 16*time.Millisecond {
		t.Errorf("first tick at %s", res.Times[0])
	}
}

func TestSimulatorRun_ScriptCoalesces(t *testing.T) {
	s := New(physics.DefaultConfig())

	script := Script{}
	for i := 0; i < 50; i++ {
		script = append(script, Move{Tick: 5, X: 0.5 + float64(i)*0.005, Y: 0.5})
	}
	script = append(script, Move{Tick: 10, X: 0.9, Y: 0.2})

	res, err := s.Run(context.Background(), physics.Rest(), script, Config{Ticks: 30, FrameInterval: 16 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	if res.Impulses != 2 {
		t.Errorf("impulses = %d, want 2", res.Impulses)
	}
	if res.Coalesced != 49 {
		t.Errorf("coalesced = %d, want 49", res.Coalesced)
	}
	if res.Pointers[29] != (dynamo.Vec2{X: 0.9, Y: 0.2}) {
		t.Errorf("final pointer = %v", res.Pointers[29])
	}

	// a rightward move pushes the wave left of the idle trajectory
	idle, _ := New(physics.DefaultConfig()).Run(context.Background(), physics.Rest(), nil, Config{Ticks: 30, FrameInterval: 16 * time.Millisecond})
	if res.States[29].WaveVelocity >= idle.States[29].WaveVelocity {
		t.Errorf("impulse did not slow the wave: %g >= %g", res.States[29].WaveVelocity, idle.States[29].WaveVelocity)
	}
}

func TestSimulatorRun_MatchesLiveBackground(t *testing.T) {
	cfg := physics.DefaultConfig()
	script := Sweep(90, 3)
	run := Config{Ticks: 90, FrameInterval: 16 * time.Millisecond}

	res, err := New(cfg).Run(context.Background(), physics.Rest(), script, run)
	if err != nil {
		t.Fatal(err)
	}

	hub := NewEventHub()
	queue := frame.NewQueue()
	surf := &viz.MemSurface{Ctx: &viz.Recorder{}, View: viz.Viewport{Width: 1, Height: 1, DPR: 1}}
	opts := DefaultOptions()
	opts.Physics = cfg
	bg := NewBackground(surf, queue, hub, nil, nil, opts)
	if err := bg.Start(); err != nil {
		t.Fatal(err)
	}
	defer bg.Stop()

	next := 0
	for tick := 0; tick < run.Ticks; tick++ {
		for next < len(script) && script[next].Tick <= tick {
			hub.EmitPointerMove(script[next].X, script[next].Y)
			next++
		}
		queue.Flush(time.Duration(tick+1) * run.FrameInterval)
		if got := res.States[tick]; got != bg.State() {
			t.Fatalf("tick %d: replay %+v, live %+v", tick, got, bg.State())
		}
	}
}

func TestSimulatorRun_InvalidConfig(t *testing.T) {
	s := New(physics.DefaultConfig())
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero ticks", Config{Ticks: 0, FrameInterval: time.Millisecond}},
		{"negative interval", Config{Ticks: 10, FrameInterval: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), physics.Rest(), nil, tt.cfg)
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("err = %v", err)
			}
		})
	}
}

func TestSimulatorRun_InvalidState(t *testing.T) {
	s := New(physics.DefaultConfig())
	res, err := s.Run(context.Background(), physics.State{WaveVelocity: math.NaN()}, nil, Config{Ticks: 10, FrameInterval: time.Millisecond, ValidateState: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Errors) != 1 || res.StepsTaken != 0 {
		t.Errorf("errors = %v steps = %d", res.Errors, res.StepsTaken)
	}
	var se SimError
	if !errors.As(res.Errors[0], &se) || se.Tick != 0 {
		t.Errorf("error = %v", res.Errors[0])
	}
}

func TestSimulatorRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(physics.DefaultConfig()).Run(ctx, physics.Rest(), nil, DefaultRunConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}

func TestResult_ColumnsAndFrames(t *testing.T) {
	res, err := New(physics.DefaultConfig()).Run(context.Background(), physics.Rest(), nil, Config{Ticks: 14, FrameInterval: 100 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range ColumnNames() {
		col, err := res.Column(name)
		if err != nil || len(col) != 14 {
			t.Errorf("%s: %v len %d", name, err, len(col))
		}
	}
	if _, err := res.Column("energy"); err == nil {
		t.Error("expected unknown column error")
	}

	l := viz.DefaultLayout()
	frames := res.Frames(&l)
	if math.Abs(frames[13].T-1) > 1e-12 {
		t.Errorf("t at 1400ms = %g", frames[13].T)
	}
}

func TestRenderFrames(t *testing.T) {
	frames := make([]viz.Frame, 20)
	seen := make([]bool, len(frames))
	err := RenderFrames(context.Background(), frames, 4, func(_ context.Context, i int, _ viz.Frame) error {
		seen[i] = true
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("frame %d not rendered", i)
		}
	}

	boom := errors.New("boom")
	err = RenderFrames(context.Background(), frames, 2, func(_ context.Context, i int, _ viz.Frame) error {
		if i == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
}
