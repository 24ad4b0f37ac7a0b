package sim

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/wavefield/internal/frame"
	"github.com/san-kum/wavefield/internal/physics"
	"github.com/san-kum/wavefield/internal/pointer"
	"github.com/san-kum/wavefield/internal/theme"
	"github.com/san-kum/wavefield/internal/viz"
)

type Options struct {
	Physics  physics.Config
	Styles   theme.Styles
	Layout   viz.Layout
	Logger   *zap.Logger
	Observer Observer
	// Initial replaces the rest state the background starts from.
	Initial *physics.State
}

func DefaultOptions() Options {
	return Options{
		Physics: physics.DefaultConfig(),
		Styles:  theme.DefaultStyles(),
		Layout:  viz.DefaultLayout(),
	}
}

// Background owns the wave background: its physics state, pointer tracker,
// compositor and redraw loop, plus every listener they need. Start and Stop
// bracket one lifetime; Stop releases exactly what Start acquired.
//
// All methods run on the host loop.
type Background struct {
	surface viz.Surface
	sched   frame.Scheduler
	events  Events
	source  theme.Source
	pref    theme.Preference

	cfg    physics.Config
	styles theme.Styles
	layout viz.Layout
	log    *zap.Logger
	obs    Observer

	state   physics.State
	pending physics.Impulse
	scheme  theme.Scheme

	tracker *pointer.Tracker
	comp    *viz.Compositor
	driver  *Driver

	cancels    []func()
	prefCancel func()
	running    bool
}

func NewBackground(surface viz.Surface, sched frame.Scheduler, events Events, source theme.Source, pref theme.Preference, opts Options) *Background {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	b := &Background{
		surface: surface,
		sched:   sched,
		events:  events,
		source:  source,
		pref:    pref,
		cfg:     opts.Physics,
		styles:  opts.Styles,
		layout:  opts.Layout,
		log:     opts.Logger,
		obs:     opts.Observer,
		state:   physics.Rest(),
	}
	if opts.Initial != nil {
		b.state = *opts.Initial
	}
	b.tracker = pointer.NewTracker(sched, &b.cfg, pointer.SinkFunc(b.ApplyImpulse))
	b.driver = NewDriver(sched, b.Tick)
	return b
}

// Start brings the background up. When the surface cannot provide a 2D
// context nothing is registered and the error is returned after logging.
func (b *Background) Start() error {
	if b.running {
		return nil
	}
	if b.comp == nil {
		comp, err := viz.New(b.surface, b.styles.For(b.resolveScheme()), b.layout)
		if err != nil {
			b.log.Warn("Background disabled", zap.Error(err))
			return fmt.Errorf("start background: %w", err)
		}
		b.comp = comp
	}
	b.running = true

	b.applyScheme()
	b.Resize()

	if b.events != nil {
		b.cancels = append(b.cancels,
			b.events.OnPointerMove(b.PointerMove),
			b.events.OnResize(b.Resize),
		)
	}
	if b.source != nil {
		b.cancels = append(b.cancels, b.source.Subscribe(b.onMode))
	}
	b.syncPreference()
	b.driver.Start()

	st := b.comp.State()
	b.log.Info("Background started",
		zap.Float64("width", st.Width),
		zap.Float64("height", st.Height),
		zap.Float64("dpr", st.DPR),
		zap.Stringer("scheme", b.scheme),
	)
	return nil
}

// Stop deregisters every listener, drops a pending pointer update and
// cancels the redraw. Physics state survives a restart.
func (b *Background) Stop() {
	if !b.running {
		return
	}
	b.running = false
	for _, cancel := range b.cancels {
		cancel()
	}
	b.cancels = nil
	if b.prefCancel != nil {
		b.prefCancel()
		b.prefCancel = nil
	}
	b.tracker.Cancel()
	b.driver.Stop()
	b.log.Info("Background stopped", zap.Uint64("ticks", b.driver.Ticks()))
}

func (b *Background) Running() bool { return b.running }

// PointerMove is the pointer-move listener.
func (b *Background) PointerMove(clientX, clientY float64) {
	if !b.tracker.Move(clientX, clientY) {
		b.obs.OnCoalesced()
	}
}

// Resize is the resize listener. It also refreshes the tracker's bounds.
func (b *Background) Resize() {
	if b.comp == nil {
		return
	}
	st := b.comp.Resize()
	b.tracker.SetBounds(b.surface.Bounds())
	b.log.Debug("Surface resized",
		zap.Int("pixel_width", st.PixelWidth),
		zap.Int("pixel_height", st.PixelHeight),
	)
}

// ApplyImpulse accumulates an impulse for the next tick.
func (b *Background) ApplyImpulse(imp physics.Impulse) {
	b.pending = b.pending.Add(imp)
	b.obs.OnImpulse(imp)
}

// Tick integrates one physics step and then draws it.
func (b *Background) Tick(now time.Duration) {
	b.state = physics.Integrate(b.state, b.pending, b.cfg.TimeUnit, &b.cfg)
	b.pending = physics.Impulse{}

	if b.comp != nil {
		b.comp.Draw(viz.Frame{
			T:       b.layout.Time(now),
			Physics: b.state.Outputs(&b.cfg),
			Pointer: b.tracker.Position(),
		})
	}
	b.obs.OnTick(now, b.state)
}

// SetPhysics swaps the physics constants without touching the state.
func (b *Background) SetPhysics(cfg physics.Config) { b.cfg = cfg }

func (b *Background) Physics() physics.Config { return b.cfg }

// SetStyles replaces both schemes' styles and redraws with the current one
// on the next tick.
func (b *Background) SetStyles(st theme.Styles) {
	b.styles = st
	b.applyScheme()
}

// SetLayout replaces the per-layer constants.
func (b *Background) SetLayout(l viz.Layout) {
	b.layout = l
	if b.comp != nil {
		b.comp.SetLayout(l)
	}
}

func (b *Background) Styles() theme.Styles { return b.styles }

func (b *Background) State() physics.State { return b.state }

func (b *Background) Scheme() theme.Scheme { return b.scheme }

func (b *Background) Tracker() *pointer.Tracker { return b.tracker }

// Compositor is nil until the first successful Start.
func (b *Background) Compositor() *viz.Compositor { return b.comp }

func (b *Background) onMode(theme.Mode) {
	b.syncPreference()
	b.applyScheme()
}

func (b *Background) onPreference(bool) { b.applyScheme() }

// syncPreference keeps a preference subscription exactly while the mode
// follows the system.
func (b *Background) syncPreference() {
	want := b.running && b.pref != nil && b.mode() == theme.ModeSystem
	switch {
	case want && b.prefCancel == nil:
		b.prefCancel = b.pref.Subscribe(b.onPreference)
	case !want && b.prefCancel != nil:
		b.prefCancel()
		b.prefCancel = nil
	}
}

func (b *Background) applyScheme() {
	next := b.resolveScheme()
	if b.comp != nil {
		b.comp.SetStyle(b.styles.For(next))
	}
	if next != b.scheme {
		b.log.Debug("Scheme changed", zap.Stringer("scheme", next))
	}
	b.scheme = next
}

func (b *Background) mode() theme.Mode {
	if b.source == nil {
		return theme.ModeSystem
	}
	return b.source.Mode()
}

func (b *Background) resolveScheme() theme.Scheme {
	dark := b.pref != nil && b.pref.PrefersDark()
	return b.mode().Resolve(dark)
}
