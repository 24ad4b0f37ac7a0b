package sim

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/frame"
	"github.com/san-kum/wavefield/internal/physics"
	"github.com/san-kum/wavefield/internal/theme"
	"github.com/san-kum/wavefield/internal/viz"
)

type spyObserver struct {
	ticks     int
	impulses  int
	coalesced int
}

func (s *spyObserver) OnTick(time.Duration, physics.State) { s.ticks++ }
func (s *spyObserver) OnImpulse(physics.Impulse)           { s.impulses++ }
func (s *spyObserver) OnCoalesced()                        { s.coalesced++ }

func backgroundFill(rec *viz.Recorder) string {
	for i, op := range rec.Ops {
		if op.Name == "fillRect" && i > 0 {
			return rec.Ops[i-1].Str
		}
	}
	return ""
}

var _ = Describe("Background", func() {
	var (
		rec     *viz.Recorder
		surface *viz.MemSurface
		queue   *frame.Queue
		hub     *EventHub
		sw      *theme.Switch
		pref    *theme.StaticPreference
		spy     *spyObserver
		bg      *Background
		styles  theme.Styles
		now     time.Duration
	)

	flush := func() {
		now += 16 * time.Millisecond
		queue.Flush(now)
	}

	BeforeEach(func() {
		rec = &viz.Recorder{}
		surface = &viz.MemSurface{Ctx: rec, View: viz.Viewport{Width: 800, Height: 600, DPR: 2}}
		queue = frame.NewQueue()
		hub = NewEventHub()
		sw = theme.NewSwitch(theme.ModeSystem)
		pref = theme.NewStaticPreference(true)
		spy = &spyObserver{}
		styles = theme.DefaultStyles()
		now = 0

		opts := DefaultOptions()
		opts.Observer = spy
		bg = NewBackground(surface, queue, hub, sw, pref, opts)
	})

	Describe("Start", func() {
		It("registers every listener and schedules one redraw", func() {
			Expect(bg.Start()).To(Succeed())
			Expect(hub.Listeners()).To(Equal(2))
			Expect(sw.Subscribers()).To(Equal(1))
			Expect(pref.Subscribers()).To(Equal(1))
			Expect(queue.Pending()).To(Equal(1))
			Expect(bg.Running()).To(BeTrue())
		})

		It("sizes the backing store and pointer bounds", func() {
			Expect(bg.Start()).To(Succeed())
			Expect(surface.BackingWidth).To(Equal(1600))
			Expect(surface.BackingHeight).To(Equal(1200))
			Expect(bg.Tracker().Bounds()).To(Equal(dynamo.Rect{Width: 800, Height: 600}))
		})

		It("is idempotent", func() {
			Expect(bg.Start()).To(Succeed())
			Expect(bg.Start()).To(Succeed())
			Expect(hub.Listeners()).To(Equal(2))
			Expect(queue.Pending()).To(Equal(1))
		})

		It("skips everything when the surface has no context", func() {
			surface.Ctx = nil
			err := bg.Start()
			Expect(err).To(MatchError(dynamo.ErrNoContext))
			Expect(hub.Listeners()).To(BeZero())
			Expect(sw.Subscribers()).To(BeZero())
			Expect(queue.Pending()).To(BeZero())
			Expect(bg.Running()).To(BeFalse())
		})
	})

	Describe("Stop", func() {
		It("releases listeners, the pending pointer update and the redraw", func() {
			Expect(bg.Start()).To(Succeed())
			hub.EmitPointerMove(400, 300)
			Expect(queue.Pending()).To(Equal(2))

			bg.Stop()
			Expect(hub.Listeners()).To(BeZero())
			Expect(sw.Subscribers()).To(BeZero())
			Expect(pref.Subscribers()).To(BeZero())
			Expect(queue.Pending()).To(BeZero())

			flush()
			Expect(spy.ticks).To(BeZero())
			Expect(spy.impulses).To(BeZero())
		})

		It("keeps physics state across a restart", func() {
			Expect(bg.Start()).To(Succeed())
			flush()
			flush()
			before := bg.State()
			bg.Stop()
			Expect(bg.Start()).To(Succeed())
			Expect(bg.State()).To(Equal(before))
		})
	})

	Describe("Tick", func() {
		BeforeEach(func() {
			Expect(bg.Start()).To(Succeed())
			rec.Reset()
		})

		It("integrates before drawing", func() {
			flush()
			cfg := physics.DefaultConfig()
			Expect(bg.State()).To(Equal(physics.Integrate(physics.Rest(), physics.Impulse{}, cfg.TimeUnit, &cfg)))
			Expect(rec.Count("fill")).To(Equal(8))
			Expect(spy.ticks).To(Equal(1))
			Expect(queue.Pending()).To(Equal(1))
		})

		It("coalesces pointer events to one impulse per frame", func() {
			for i := 0; i < 100; i++ {
				hub.EmitPointerMove(float64(400+i), 300)
			}
			Expect(spy.coalesced).To(Equal(99))

			flush()
			Expect(spy.impulses).To(Equal(1))
			Expect(bg.Tracker().Position().X).To(BeNumerically("~", 0.5, 1e-12))

			flush()
			Expect(spy.impulses).To(Equal(1))
		})

		It("feeds pointer impulses into the next integration", func() {
			hub.EmitPointerMove(700, 300)
			flush() // driver ticks, then the tracker samples
			flush()

			cfg := physics.DefaultConfig()
			idle := physics.Run(physics.Rest(), 2, &cfg)
			Expect(bg.State().WaveAcceleration).To(BeNumerically("<", idle.WaveAcceleration))
		})
	})

	Describe("theme", func() {
		BeforeEach(func() {
			Expect(bg.Start()).To(Succeed())
		})

		It("follows the system preference in system mode", func() {
			Expect(bg.Scheme()).To(Equal(theme.Dark))
			pref.Set(false)
			Expect(bg.Scheme()).To(Equal(theme.Light))

			rec.Reset()
			flush()
			Expect(backgroundFill(rec)).To(Equal(styles.Light.Palette[0]))
		})

		It("ignores the preference once a mode is chosen", func() {
			sw.Set(theme.ModeLight)
			Expect(pref.Subscribers()).To(BeZero())
			pref.Set(true)
			Expect(bg.Scheme()).To(Equal(theme.Light))

			sw.Set(theme.ModeSystem)
			Expect(pref.Subscribers()).To(Equal(1))
			Expect(bg.Scheme()).To(Equal(theme.Dark))
		})

		It("swaps palettes without resetting physics", func() {
			flush()
			flush()
			before := bg.State()

			sw.Toggle() // system -> light
			Expect(bg.State()).To(Equal(before))
			Expect(bg.Compositor().Style().Alpha).To(Equal(0.2))

			rec.Reset()
			flush()
			Expect(backgroundFill(rec)).To(Equal(styles.Light.Palette[0]))
			cfg := physics.DefaultConfig()
			Expect(bg.State()).To(Equal(physics.Integrate(before, physics.Impulse{}, cfg.TimeUnit, &cfg)))
		})
	})

	It("refreshes bounds on resize", func() {
		Expect(bg.Start()).To(Succeed())
		surface.View = viz.Viewport{Width: 1024, Height: 768, DPR: 1}
		hub.EmitResize()
		Expect(bg.Tracker().Bounds().Width).To(Equal(1024.0))
		Expect(bg.Compositor().State().PixelWidth).To(Equal(1024))
	})

	It("takes reloaded styles and layout without resetting physics", func() {
		sw.Set(theme.ModeDark)
		Expect(bg.Start()).To(Succeed())
		flush()
		before := bg.State()

		next := theme.DefaultStyles()
		next.Dark.Palette[0] = "#101010"
		bg.SetStyles(next)
		layout := viz.DefaultLayout()
		layout.SegmentWidth = 30
		bg.SetLayout(layout)

		Expect(bg.State()).To(Equal(before))
		Expect(bg.Compositor().Layout().SegmentWidth).To(Equal(30.0))
		rec.Reset()
		flush()
		Expect(backgroundFill(rec)).To(Equal("#101010"))
	})

	It("gives the same surface and physics for repeated resizes at one size", func() {
		surface.View = viz.Viewport{Width: 801, Height: 600, DPR: 1.5}
		Expect(bg.Start()).To(Succeed())
		hub.EmitPointerMove(700, 200)
		for i := 0; i < 4; i++ {
			flush()
		}
		before := bg.State()

		hub.EmitResize()
		first := bg.Compositor().State()
		Expect(bg.State()).To(Equal(before))

		hub.EmitResize()
		Expect(bg.Compositor().State()).To(Equal(first))
		Expect(first.PixelWidth).To(Equal(1201))
		Expect(first.PixelHeight).To(Equal(900))
		Expect(bg.State()).To(Equal(before))
		Expect(bg.Tracker().Bounds()).To(Equal(dynamo.Rect{Width: 801, Height: 600}))
	})
})
