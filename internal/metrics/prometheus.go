// Package metrics summarizes and exports the background's motion: plain
// metrics for headless runs and a prometheus observer for live hosts.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/san-kum/wavefield/internal/physics"
)

// Recorder is a sim.Observer that publishes to its own registry.
type Recorder struct {
	registry *prometheus.Registry

	ticks     prometheus.Counter
	impulses  prometheus.Counter
	coalesced prometheus.Counter
	state     *prometheus.GaugeVec
	interval  prometheus.Histogram

	last time.Duration
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wavefield",
			Name:      "ticks_total",
			Help:      "Animation ticks integrated and drawn.",
		}),
		impulses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wavefield",
			Name:      "pointer_impulses_total",
			Help:      "Pointer impulses applied to the physics state.",
		}),
		coalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wavefield",
			Name:      "pointer_events_coalesced_total",
			Help:      "Pointer events dropped because an update was already pending.",
		}),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "wavefield",
			Name:      "physics_state",
			Help:      "Current physics state by field.",
		}, []string{"field"}),
		interval: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wavefield",
			Name:      "frame_interval_seconds",
			Help:      "Time between consecutive ticks.",
			Buckets:   []float64{0.004, 0.008, 0.0167, 0.025, 0.033, 0.05, 0.1, 0.25},
		}),
	}
	r.registry.MustRegister(r.ticks, r.impulses, r.coalesced, r.state, r.interval)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) OnTick(now time.Duration, s physics.State) {
	r.ticks.Inc()
	if r.last > 0 && now > r.last {
		r.interval.Observe((now - r.last).Seconds())
	}
	r.last = now

	r.state.WithLabelValues("wave_velocity").Set(s.WaveVelocity)
	r.state.WithLabelValues("wave_acceleration").Set(s.WaveAcceleration)
	r.state.WithLabelValues("stretch_amount").Set(s.StretchAmount)
	r.state.WithLabelValues("stretch_velocity").Set(s.StretchVelocity)
	r.state.WithLabelValues("wave_x_offset").Set(s.WaveXOffset)
}

func (r *Recorder) OnImpulse(physics.Impulse) { r.impulses.Inc() }

func (r *Recorder) OnCoalesced() { r.coalesced.Inc() }

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func NewServer(addr string, h http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
}

// Serve exposes the recorder on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string, log *zap.Logger) {
	srv := NewServer(addr, r.Handler())
	go func() {
		log.Info("Metrics server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("Metrics server exited", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Warn("Failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
