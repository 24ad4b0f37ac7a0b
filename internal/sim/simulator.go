package sim

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/frame"
	"github.com/san-kum/wavefield/internal/physics"
	"github.com/san-kum/wavefield/internal/viz"
)

// Metric summarizes a run one tick at a time.
type Metric interface {
	Name() string
	Observe(s physics.State, out physics.Outputs, now time.Duration)
	Value() float64
	Reset()
}

// Move is a scripted pointer position, normalized to the surface, delivered
// just before tick Tick.
type Move struct {
	Tick int     `json:"tick"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type Script []Move

type Config struct {
	Ticks         int
	FrameInterval time.Duration
	ValidateState bool
}

func DefaultRunConfig() Config {
	return Config{Ticks: 600, FrameInterval: 16670 * time.Microsecond, ValidateState: true}
}

type Result struct {
	States     []physics.State
	Outputs    []physics.Outputs
	Pointers   []dynamo.Vec2
	Times      []time.Duration
	Impulses   int
	Coalesced  int
	StepsTaken int
	Metrics    map[string]float64
	Errors     []error
}

// Frames turns the recorded ticks into compositor frames.
func (r *Result) Frames(l *viz.Layout) []viz.Frame {
	out := make([]viz.Frame, len(r.States))
	for i := range r.States {
		out[i] = viz.Frame{T: l.Time(r.Times[i]), Physics: r.Outputs[i], Pointer: r.Pointers[i]}
	}
	return out
}

// Column extracts one named series: velocity, acceleration, stretch,
// stretch_velocity, x_offset or phase_speed.
func (r *Result) Column(name string) ([]float64, error) {
	pick, ok := columns[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	out := make([]float64, len(r.States))
	for i := range r.States {
		out[i] = pick(r.States[i], r.Outputs[i])
	}
	return out, nil
}

var columns = map[string]func(physics.State, physics.Outputs) float64{
	"velocity":         func(s physics.State, _ physics.Outputs) float64 { return s.WaveVelocity },
	"acceleration":     func(s physics.State, _ physics.Outputs) float64 { return s.WaveAcceleration },
	"stretch":          func(s physics.State, _ physics.Outputs) float64 { return s.StretchAmount },
	"stretch_velocity": func(s physics.State, _ physics.Outputs) float64 { return s.StretchVelocity },
	"x_offset":         func(s physics.State, _ physics.Outputs) float64 { return s.WaveXOffset },
	"phase_speed":      func(_ physics.State, o physics.Outputs) float64 { return o.PhaseSpeed },
}

func ColumnNames() []string {
	names := make([]string, 0, len(columns))
	for n := range columns {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SimError marks the tick at which a run went invalid.
type SimError struct {
	Tick    int
	Time    time.Duration
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d (t=%s): %s", e.Tick, e.Time, e.Message)
}

// Simulator replays a pointer script through a real Background drawing
// into a discarding 1x1 surface, so positions in the script are already
// normalized.
type Simulator struct {
	cfg       physics.Config
	metrics   []Metric
	observers Observers
}

func New(cfg physics.Config) *Simulator {
	return &Simulator{cfg: cfg}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, s0 physics.State, script Script, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	moves := append(Script(nil), script...)
	sort.SliceStable(moves, func(i, j int) bool { return moves[i].Tick < moves[j].Tick })

	result := &Result{
		States:   make([]physics.State, 0, cfg.Ticks),
		Outputs:  make([]physics.Outputs, 0, cfg.Ticks),
		Pointers: make([]dynamo.Vec2, 0, cfg.Ticks),
		Times:    make([]time.Duration, 0, cfg.Ticks),
		Metrics:  make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	rec := &runRecorder{sim: s, cfg: cfg, result: result}
	hub := NewEventHub()
	q := frame.NewQueue()
	surface := &viz.MemSurface{Ctx: viz.Discard{}, View: viz.Viewport{Width: 1, Height: 1, DPR: 1}}
	opts := DefaultOptions()
	opts.Physics = s.cfg
	opts.Observer = rec
	opts.Initial = &s0
	rec.bg = NewBackground(surface, q, hub, nil, nil, opts)
	if err := rec.bg.Start(); err != nil {
		return nil, err
	}
	defer rec.bg.Stop()

	next := 0
	for rec.tick = 0; rec.tick < cfg.Ticks && !rec.failed; rec.tick++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for next < len(moves) && moves[next].Tick <= rec.tick {
			hub.EmitPointerMove(moves[next].X, moves[next].Y)
			next++
		}
		q.Flush(time.Duration(rec.tick+1) * cfg.FrameInterval)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// runRecorder collects a replay's result from the background it drives.
type runRecorder struct {
	sim    *Simulator
	cfg    Config
	result *Result
	bg     *Background
	tick   int
	failed bool
}

func (r *runRecorder) OnTick(now time.Duration, state physics.State) {
	if r.cfg.ValidateState && !state.IsValid() {
		r.result.Errors = append(r.result.Errors, SimError{Tick: r.tick, Time: now, Message: "invalid state (NaN/Inf)"})
		r.failed = true
		r.bg.Stop()
		return
	}
	pcfg := r.bg.Physics()
	out := state.Outputs(&pcfg)
	for _, m := range r.sim.metrics {
		m.Observe(state, out, now)
	}
	r.sim.observers.OnTick(now, state)

	res := r.result
	res.States = append(res.States, state)
	res.Outputs = append(res.Outputs, out)
	res.Pointers = append(res.Pointers, r.bg.Tracker().Position())
	res.Times = append(res.Times, now)
	res.StepsTaken++
}

func (r *runRecorder) OnImpulse(imp physics.Impulse) {
	r.result.Impulses++
	r.sim.observers.OnImpulse(imp)
}

func (r *runRecorder) OnCoalesced() {
	r.result.Coalesced++
	r.sim.observers.OnCoalesced()
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", dynamo.ErrInvalidConfig, cfg.Ticks)
	}
	if cfg.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame interval must be positive, got %s", dynamo.ErrInvalidConfig, cfg.FrameInterval)
	}
	return nil
}
