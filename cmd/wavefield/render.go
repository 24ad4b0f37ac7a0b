package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/wavefield/internal/config"
	"github.com/san-kum/wavefield/internal/export"
	"github.com/san-kum/wavefield/internal/logging"
	"github.com/san-kum/wavefield/internal/physics"
	"github.com/san-kum/wavefield/internal/raster"
	"github.com/san-kum/wavefield/internal/sim"
	"github.com/san-kum/wavefield/internal/theme"
	"github.com/san-kum/wavefield/internal/viz"
)

var (
	outPath    string
	format     string
	renderW    float64
	renderH    float64
	renderDPR  float64
	ticks      int
	every      int
	workers    int
	scriptFile string
	sweep      bool
)

func addScriptFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ticks, "ticks", 0, "ticks to simulate (0 uses the config)")
	cmd.Flags().StringVar(&scriptFile, "script", "", "pointer script (json array of {tick,x,y})")
	cmd.Flags().BoolVar(&sweep, "sweep", false, "drive the pointer with a left-to-right sweep")
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render background frames to png, svg or a draw-op listing",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "wavefield.png", "output file, or directory with --every")
	cmd.Flags().StringVar(&format, "format", "", "png, svg or ops (default from --out extension)")
	cmd.Flags().Float64Var(&renderW, "width", 800, "surface width in CSS pixels")
	cmd.Flags().Float64Var(&renderH, "height", 600, "surface height in CSS pixels")
	cmd.Flags().Float64Var(&renderDPR, "dpr", 1, "device pixel ratio")
	cmd.Flags().IntVar(&every, "every", 0, "render every Nth tick into the --out directory (0 renders the last tick)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel renderers (0 uses GOMAXPROCS)")
	addScriptFlags(cmd)
	return cmd
}

// simulate replays the tick loop headlessly for the configured number of
// ticks.
func simulate(ctx context.Context, cfg *config.Config, extra ...sim.Metric) (*sim.Result, sim.Script, sim.Config, error) {
	run := sim.DefaultRunConfig()
	run.Ticks = cfg.Trace.Ticks
	if ticks > 0 {
		run.Ticks = ticks
	}
	run.FrameInterval = cfg.Trace.FrameInterval()

	var script sim.Script
	switch {
	case scriptFile != "":
		s, err := sim.LoadScript(scriptFile)
		if err != nil {
			return nil, nil, run, err
		}
		script = s
	case sweep:
		script = sim.Sweep(run.Ticks, 4)
	}

	s := sim.New(cfg.Physics)
	for _, m := range extra {
		s.AddMetric(m)
	}
	result, err := s.Run(ctx, physics.Rest(), script, run)
	if err != nil {
		return nil, nil, run, err
	}
	return result, script, run, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logging.Sync(log)

	ctx, cancel := signalContext()
	defer cancel()

	result, _, _, err := simulate(ctx, cfg)
	if err != nil {
		return err
	}
	if len(result.States) == 0 {
		return fmt.Errorf("simulation produced no frames")
	}
	frames := result.Frames(&cfg.Layout)

	scheme := cfg.Theme.Resolve(theme.EnvPreference(nil).PrefersDark())
	style := cfg.Styles.For(scheme)
	view := viz.Viewport{Width: renderW, Height: renderH, DPR: renderDPR}

	kind := format
	if kind == "" {
		kind = strings.TrimPrefix(strings.ToLower(filepath.Ext(outPath)), ".")
		if every > 0 || kind == "" {
			kind = "png"
		}
	}

	if kind == "ops" {
		return printOps(view, style, cfg.Layout, frames[len(frames)-1])
	}

	draw := func(path string, f viz.Frame) error {
		switch kind {
		case "png":
			return drawPNG(path, view, style, cfg.Layout, f)
		case "svg":
			return drawSVG(path, view, style, cfg.Layout, f)
		default:
			return fmt.Errorf("unknown format %q (png, svg, ops)", kind)
		}
	}

	start := time.Now()
	if every <= 0 {
		if err := draw(outPath, frames[len(frames)-1]); err != nil {
			return err
		}
		log.Info("Frame rendered", zap.String("path", outPath), zap.Stringer("scheme", scheme))
		return nil
	}

	if err := os.MkdirAll(outPath, 0755); err != nil {
		return err
	}
	var picked []viz.Frame
	for i := 0; i < len(frames); i += every {
		picked = append(picked, frames[i])
	}
	err = sim.RenderFrames(ctx, picked, workers, func(ctx context.Context, i int, f viz.Frame) error {
		return draw(filepath.Join(outPath, fmt.Sprintf("frame_%05d.%s", i*every, kind)), f)
	})
	if err != nil {
		return err
	}
	log.Info("Frames rendered",
		zap.Int("frames", len(picked)),
		zap.String("dir", outPath),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func drawPNG(path string, v viz.Viewport, st theme.Style, l viz.Layout, f viz.Frame) error {
	surf := raster.New(v)
	comp, err := viz.New(surf, st, l)
	if err != nil {
		return err
	}
	comp.Resize()
	comp.Draw(f)
	return surf.SavePNG(path)
}

func drawSVG(path string, v viz.Viewport, st theme.Style, l viz.Layout, f viz.Frame) error {
	doc := export.NewSVG(v)
	comp, err := viz.New(doc, st, l)
	if err != nil {
		return err
	}
	comp.Resize()
	comp.Draw(f)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := doc.WriteTo(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// printOps lists how many of each draw call one frame issues.
func printOps(v viz.Viewport, st theme.Style, l viz.Layout, f viz.Frame) error {
	rec := &viz.Recorder{}
	comp, err := viz.New(&viz.MemSurface{Ctx: rec, View: v}, st, l)
	if err != nil {
		return err
	}
	comp.Resize()
	rec.Reset()
	comp.Draw(f)

	counts := make(map[string]int)
	for _, op := range rec.Ops {
		counts[op.Name]++
	}
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Printf("%d draw calls, %d layers\n", len(rec.Ops), comp.Layers())
	for _, n := range names {
		fmt.Printf("  %-18s %d\n", n, counts[n])
	}
	return nil
}
