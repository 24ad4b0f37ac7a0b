package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/wavefield/internal/config"
	"github.com/san-kum/wavefield/internal/logging"
	"github.com/san-kum/wavefield/internal/metrics"
	"github.com/san-kum/wavefield/internal/sim"
	"github.com/san-kum/wavefield/internal/theme"
)

var (
	configFile  string
	preset      string
	themeFlag   string
	logLevel    string
	logFile     string
	metricsAddr string
	dataDir     string
)

// main registers the commands and runs the background window when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "wavefield",
		Short:         "interactive wave background and shader sine demo",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBackground,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "apply a named preset")
	pf.StringVar(&themeFlag, "theme", "", "theme mode: system, light or dark")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	pf.StringVar(&dataDir, "data", ".wavefield", "data directory for traces")

	rootCmd.AddCommand(
		newBackgroundCmd(),
		newSineCmd(),
		newLiveCmd(),
		newRenderCmd(),
		newTraceCmd(),
		newRunsCmd(),
		newPlotCmd(),
		newExportJSONCmd(),
		newPresetsCmd(),
		newInitCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the config file, the preset and --theme, in
// that order.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := overlayFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overlayFlags(cfg *config.Config) error {
	if preset != "" {
		if err := cfg.Apply(preset); err != nil {
			return fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}
	if themeFlag != "" {
		mode, err := theme.ParseMode(themeFlag)
		if err != nil {
			return err
		}
		cfg.Theme = mode
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	if logFile != "" {
		return logging.NewFile(logFile, level)
	}
	return logging.New(level, cfg.Log.Development)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// observer starts the metrics endpoint when an address is configured.
func observer(ctx context.Context, cfg *config.Config, log *zap.Logger) sim.Observer {
	if cfg.MetricsAddr == "" {
		return nil
	}
	rec := metrics.NewRecorder()
	rec.Serve(ctx, cfg.MetricsAddr, log)
	return rec
}

// watchConfig reloads --config on change and hands the result to apply
// through post. Flags are layered on every reload.
func watchConfig(ctx context.Context, log *zap.Logger, post func(func()), apply func(*config.Config)) {
	if configFile == "" {
		return
	}
	w, err := config.NewWatcher(configFile, log, func(c *config.Config) {
		if err := overlayFlags(c); err != nil {
			log.Warn("Ignoring reloaded config", zap.Error(err))
			return
		}
		post(func() { apply(c) })
	})
	if err != nil {
		log.Warn("Config watch disabled", zap.Error(err))
		return
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}
