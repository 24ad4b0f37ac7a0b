package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/export"
	"github.com/san-kum/wavefield/internal/metrics"
	"github.com/san-kum/wavefield/internal/sim"
	"github.com/san-kum/wavefield/internal/storage"
)

var (
	columns  []string
	noSave   bool
	svgOut   string
	jsonOut  string
	plotW    int
	plotH    int
	settleTo float64
)

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "simulate the physics headlessly, plot it and store the run",
		Args:  cobra.NoArgs,
		RunE:  runTrace,
	}
	addScriptFlags(cmd)
	addPlotFlags(cmd)
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	cmd.Flags().StringVar(&svgOut, "svg", "", "also write the first plotted column as an svg chart")
	cmd.Flags().Float64Var(&settleTo, "settle-tolerance", 0.02, "relative band for the settling time metric")
	return cmd
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&columns, "column", []string{"phase_speed", "stretch"},
		"columns to plot: "+strings.Join(sim.ColumnNames(), ", "))
	cmd.Flags().IntVar(&plotW, "plot-width", 80, "plot width")
	cmd.Flags().IntVar(&plotH, "plot-height", 10, "plot height")
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Println("running headless trace...")
	start := time.Now()
	result, script, run, err := simulate(ctx, cfg,
		metrics.NewMeanSpeed(),
		metrics.NewPeakStretch(),
		metrics.NewClampedFraction(&cfg.Physics),
		metrics.NewSettling(&cfg.Physics, settleTo),
	)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("ticks: %d  impulses: %d  coalesced: %d\n", result.StepsTaken, result.Impulses, result.Coalesced)
	fmt.Printf("equilibrium velocity: %.5f (base speed %.5f)\n", cfg.Physics.EquilibriumVelocity(), cfg.Physics.BaseSpeed)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	printMetrics(result.Metrics)

	if err := plotColumns(result); err != nil {
		return err
	}

	if svgOut != "" && len(columns) > 0 {
		data, err := result.Column(columns[0])
		if err != nil {
			return err
		}
		bg := cfg.Styles.Dark.Background()
		if err := os.WriteFile(svgOut, []byte(export.SeriesToSVG(data, 800, 240, "#7dd3fc", bg)), 0644); err != nil {
			return err
		}
		fmt.Printf("chart: %s\n", svgOut)
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	name := preset
	if name == "" {
		name = "custom"
	}
	runID, err := st.Save(name, cfg.Physics, script, run, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(m) {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func plotColumns(result *sim.Result) error {
	for _, name := range columns {
		data, err := result.Column(name)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(plotH),
			asciigraph.Width(plotW),
			asciigraph.Caption(name),
		)
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list stored traces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRESET\tTIME\tTICKS\tFRAME\tIMPULSES")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fms\t%d\n",
					run.ID,
					run.Preset,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Ticks,
					run.FrameIntervalMS,
					run.Impulses,
				)
			}
			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			result, err := st.LoadTrace(args[0])
			if err != nil {
				return err
			}
			if len(result.States) == 0 {
				return fmt.Errorf("no data to plot")
			}
			fmt.Printf("run: %s\n", meta.ID)
			fmt.Printf("preset: %s\n", meta.Preset)
			fmt.Printf("samples: %d\n", len(result.States))
			printMetrics(meta.Metrics)
			return plotColumns(result)
		},
	}
	addPlotFlags(cmd)
	return cmd
}

func newExportJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored trace to json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			result, err := st.LoadTrace(args[0])
			if err != nil {
				return err
			}
			result.Metrics = meta.Metrics
			run := sim.Config{
				Ticks:         meta.Ticks,
				FrameInterval: time.Duration(meta.FrameIntervalMS * float64(time.Millisecond)),
			}

			if jsonOut == "" {
				return storage.WriteJSON(os.Stdout, meta.Preset, meta.Physics, run, result)
			}
			if err := storage.ExportJSON(jsonOut, meta.Preset, meta.Physics, run, result); err != nil {
				return err
			}
			fmt.Printf("exported: %s (%.1f ms frames)\n", jsonOut, dynamo.Millis(run.FrameInterval))
			return nil
		},
	}
	cmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default stdout)")
	return cmd
}
