package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/wavefield/internal/config"
	"github.com/san-kum/wavefield/internal/frame"
	"github.com/san-kum/wavefield/internal/physics"
	"github.com/san-kum/wavefield/internal/raster"
	"github.com/san-kum/wavefield/internal/sim"
	"github.com/san-kum/wavefield/internal/theme"
	"github.com/san-kum/wavefield/internal/viz"
)

const (
	// CSS pixels covered by one terminal cell. The backing store is one
	// pixel per column and two per row, drawn with upper half blocks.
	cellWidth  = 8
	cellHeight = 16
	statusRows = 3

	historyLen = 60
	halfBlock  = "▀"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type tickMsg time.Time

// Preview runs the wave background inside a terminal. Frames are drawn by
// the software rasteriser and shown as half-block cells.
type Preview struct {
	cfg   *config.Config
	log   *zap.Logger
	queue *frame.Queue
	hub   *sim.EventHub
	modes *theme.Switch
	pref  *theme.StaticPreference
	surf  *raster.Surface
	bg    *sim.Background

	interval time.Duration
	start    time.Time
	last     time.Time
	fps      float64

	cols, rows int
	paused     bool
	history    []float64
	err        error
}

func NewPreview(cfg *config.Config, log *zap.Logger, obs sim.Observer, pref *theme.StaticPreference) *Preview {
	if log == nil {
		log = zap.NewNop()
	}
	if pref == nil {
		pref = theme.NewStaticPreference(true)
	}
	fps := cfg.Window.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}

	p := &Preview{
		cfg:      cfg,
		log:      log,
		queue:    frame.NewQueue(),
		hub:      sim.NewEventHub(),
		modes:    theme.NewSwitch(cfg.Theme),
		pref:     pref,
		surf:     raster.New(viz.Viewport{DPR: 1.0 / cellWidth}),
		interval: time.Second / time.Duration(fps),
		start:    time.Now(),
		history:  make([]float64, 0, historyLen),
	}
	p.bg = sim.NewBackground(p.surf, p.queue, p.hub, p.modes, p.pref, sim.Options{
		Physics:  cfg.Physics,
		Styles:   cfg.Styles,
		Layout:   cfg.Layout,
		Logger:   log,
		Observer: obs,
	})
	return p
}

func (p *Preview) Init() tea.Cmd {
	if err := p.bg.Start(); err != nil {
		p.err = err
		return tea.Quit
	}
	return p.tick()
}

func (p *Preview) tick() tea.Cmd {
	return tea.Tick(p.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (p *Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)
	case tea.WindowSizeMsg:
		p.resize(msg.Width, msg.Height)
		return p, nil
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			p.hub.EmitPointerMove(
				float64(msg.X*cellWidth+cellWidth/2),
				float64(msg.Y*cellHeight+cellHeight/2),
			)
		}
		return p, nil
	case tickMsg:
		p.frame(time.Time(msg))
		return p, p.tick()
	}
	return p, nil
}

func (p *Preview) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		p.bg.Stop()
		return p, tea.Quit
	case "t":
		mode := p.modes.Toggle()
		p.log.Debug("Theme toggled", zap.Stringer("mode", mode))
	case "d":
		p.pref.Set(!p.pref.PrefersDark())
	case " ", "space", "p":
		p.paused = !p.paused
		if p.paused {
			p.bg.Stop()
		} else if err := p.bg.Start(); err != nil {
			p.err = err
			return p, tea.Quit
		}
	}
	return p, nil
}

func (p *Preview) resize(cols, rows int) {
	p.cols, p.rows = cols, rows
	waveRows := rows - statusRows
	if waveRows < 1 {
		waveRows = 1
	}
	p.surf.SetViewport(viz.Viewport{
		Width:  float64(cols * cellWidth),
		Height: float64(waveRows * cellHeight),
		DPR:    1.0 / cellWidth,
	})
	p.hub.EmitResize()
}

func (p *Preview) frame(t time.Time) {
	if !p.last.IsZero() {
		if dt := t.Sub(p.last).Seconds(); dt > 0 {
			p.fps = 1 / dt
		}
	}
	p.last = t

	if p.queue.Flush(t.Sub(p.start)) == 0 {
		return
	}
	out := p.bg.State().Outputs(&p.cfg.Physics)
	p.history = append(p.history, out.PhaseSpeed)
	if len(p.history) > historyLen {
		p.history = p.history[1:]
	}
}

func (p *Preview) View() string {
	if p.cols == 0 {
		return "\n  " + dim.Render("starting…")
	}

	var b strings.Builder
	p.renderWave(&b)

	status := green.Render("●") + " " + cyan.Render("wavefield")
	if p.paused {
		status = yellow.Render("○") + " " + cyan.Render("wavefield") + " " + yellow.Render("paused")
	}
	out := p.bg.State().Outputs(&p.cfg.Physics)
	b.WriteString(fmt.Sprintf(" %s  %s %s  %s%s  %s%s  %s\n",
		status,
		dim.Render("theme"), white.Render(fmt.Sprintf("%s/%s", p.modes.Mode(), p.bg.Scheme())),
		dim.Render("v="), white.Render(fmt.Sprintf("%.3f", out.PhaseSpeed)),
		dim.Render("stretch="), white.Render(fmt.Sprintf("%.3f", out.Stretch)),
		dim.Render(fmt.Sprintf("%.0ffps", p.fps)),
	))
	if len(p.history) > 1 {
		b.WriteString(" " + dim.Render("v ") + cyan.Render(sparkline(p.history, 24)) + "\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString(dim.Render(" move mouse  t theme  d system dark  space pause  q quit"))
	return b.String()
}

// renderWave writes one terminal row per pair of backing rows, merging
// runs of identical cells into a single styled span.
func (p *Preview) renderWave(b *strings.Builder) {
	img := p.surf.Image()
	w, h := img.Rect.Dx(), img.Rect.Dy()
	for y := 0; y+1 < h; y += 2 {
		var top, bottom string
		run := 0
		flush := func() {
			if run == 0 {
				return
			}
			st := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom))
			b.WriteString(st.Render(strings.Repeat(halfBlock, run)))
			run = 0
		}
		for x := 0; x < w; x++ {
			t, bt := p.surf.At(x, y).Hex(), p.surf.At(x, y+1).Hex()
			if run > 0 && (t != top || bt != bottom) {
				flush()
			}
			top, bottom = t, bt
			run++
		}
		flush()
		b.WriteByte('\n')
	}
}

// Queue is the preview's refresh queue. Other goroutines hand work to the
// preview with Queue().Post.
func (p *Preview) Queue() *frame.Queue { return p.queue }

// Apply takes a reloaded configuration: physics constants, styles, layout
// and theme mode. The frame rate keeps its startup value.
func (p *Preview) Apply(cfg *config.Config) {
	next := *cfg
	next.Window = p.cfg.Window
	p.cfg = &next
	p.bg.SetPhysics(next.Physics)
	p.bg.SetStyles(next.Styles)
	p.bg.SetLayout(next.Layout)
	p.modes.Set(next.Theme)
}

// State exposes the physics state for the status line and tests.
func (p *Preview) State() physics.State { return p.bg.State() }

func (p *Preview) Err() error { return p.err }

func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	step := len(data) / width
	if step < 1 {
		step = 1
	}
	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int((data[i*step] - minVal) / rang * 7)
		if idx > 7 {
			idx = 7
		}
		if idx < 0 {
			idx = 0
		}
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}

// Run shows p until the user quits or ctx is done.
func Run(ctx context.Context, p *Preview) error {
	prog := tea.NewProgram(p, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return p.Err()
}
