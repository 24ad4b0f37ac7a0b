package metrics

import (
	"context"
	"math"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/wavefield/internal/physics"
	"github.com/san-kum/wavefield/internal/sim"
)

var (
	_ sim.Metric   = (*MeanSpeed)(nil)
	_ sim.Metric   = (*PeakStretch)(nil)
	_ sim.Metric   = (*ClampedFraction)(nil)
	_ sim.Metric   = (*Settling)(nil)
	_ sim.Observer = (*Recorder)(nil)
)

func TestMeanSpeed(t *testing.T) {
	m := NewMeanSpeed()
	m.Observe(physics.State{}, physics.Outputs{PhaseSpeed: 0.1}, 0)
	m.Observe(physics.State{}, physics.Outputs{PhaseSpeed: 0.3}, 0)
	if math.Abs(m.Value()-0.2) > 1e-12 {
		t.Errorf("mean = %g", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestPeakStretch(t *testing.T) {
	p := NewPeakStretch()
	for _, v := range []float64{0.1, -0.4, 0.2} {
		p.Observe(physics.State{StretchAmount: v}, physics.Outputs{}, 0)
	}
	if p.Value() != 0.4 {
		t.Errorf("peak = %g", p.Value())
	}
}

func TestRunMetrics(t *testing.T) {
	cfg := physics.DefaultConfig()
	s := sim.New(cfg)
	settling := NewSettling(&cfg, 1e-3)
	clamped := NewClampedFraction(&cfg)
	s.AddMetric(settling)
	s.AddMetric(clamped)
	s.AddMetric(NewMeanSpeed())

	res, err := s.Run(context.Background(), physics.Rest(), nil, sim.Config{Ticks: 3000, FrameInterval: 16 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	if res.Metrics["settling_time"] <= 0 {
		t.Errorf("idle wave never settled: %g", res.Metrics["settling_time"])
	}
	// the idle equilibrium sits below the minimum phase speed
	if res.Metrics["clamped_fraction"] < 0.9 {
		t.Errorf("clamped fraction = %g", res.Metrics["clamped_fraction"])
	}
	if math.Abs(res.Metrics["mean_phase_speed"]-cfg.MinPhaseSpeed) > 0.01 {
		t.Errorf("mean phase speed = %g", res.Metrics["mean_phase_speed"])
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.OnTick(16*time.Millisecond, physics.State{WaveVelocity: 0.2})
	r.OnTick(32*time.Millisecond, physics.State{WaveVelocity: 0.25})
	r.OnImpulse(physics.Impulse{})
	r.OnCoalesced()
	r.OnCoalesced()

	if got := testutil.ToFloat64(r.ticks); got != 2 {
		t.Errorf("ticks = %g", got)
	}
	if got := testutil.ToFloat64(r.coalesced); got != 2 {
		t.Errorf("coalesced = %g", got)
	}
	if got := testutil.ToFloat64(r.state.WithLabelValues("wave_velocity")); got != 0.25 {
		t.Errorf("velocity gauge = %g", got)
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	for _, name := range []string{"wavefield_ticks_total 2", "wavefield_pointer_impulses_total 1", "wavefield_frame_interval_seconds_count 1"} {
		if !strings.Contains(body, name) {
			t.Errorf("missing %q in exposition", name)
		}
	}
}
