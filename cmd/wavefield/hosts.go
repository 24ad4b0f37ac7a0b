package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/wavefield/internal/gui"
	"github.com/san-kum/wavefield/internal/logging"
	"github.com/san-kum/wavefield/internal/theme"
	"github.com/san-kum/wavefield/internal/tui"
)

var (
	width  int
	height int
	fps    int
)

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", 0, "window width (0 uses the config)")
	cmd.Flags().IntVar(&height, "height", 0, "window height (0 uses the config)")
	cmd.Flags().IntVar(&fps, "fps", 0, "target frame rate (0 uses the config)")
}

func newBackgroundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "background",
		Short: "show the interactive wave background in a window",
		Args:  cobra.NoArgs,
		RunE:  runBackground,
	}
	addWindowFlags(cmd)
	return cmd
}

func runBackground(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyWindowFlags(cmd, &cfg.Window.Width, &cfg.Window.Height, &cfg.Window.FPS)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logging.Sync(log)

	ctx, cancel := signalContext()
	defer cancel()

	win := gui.NewBackgroundWindow(cfg, log, observer(ctx, cfg, log))
	watchConfig(ctx, log, win.Queue().Post, win.Apply)

	log.Info("Opening background window",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Stringer("theme", cfg.Theme),
	)
	return win.Run(ctx)
}

func newSineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sine",
		Short: "run the shader sine demo (arrow keys steer)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyWindowFlags(cmd, &cfg.Window.Width, &cfg.Window.Height, &cfg.Window.FPS)
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logging.Sync(log)

			ctx, cancel := signalContext()
			defer cancel()

			win := gui.NewSineWindow(cfg.Window.Title+" :: sine", cfg.Window.Width, cfg.Window.Height, cfg.Window.FPS, cfg.Shader, log)
			return win.Run(ctx)
		},
	}
	addWindowFlags(cmd)
	return cmd
}

func newLiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "live",
		Short: "preview the wave background in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// stderr belongs to the terminal UI
			log := zap.NewNop()
			if logFile != "" {
				if log, err = newLogger(cfg); err != nil {
					return err
				}
				defer logging.Sync(log)
			}

			ctx, cancel := signalContext()
			defer cancel()

			p := tui.NewPreview(cfg, log, observer(ctx, cfg, log), theme.EnvPreference(nil))
			watchConfig(ctx, log, p.Queue().Post, p.Apply)
			return tui.Run(ctx, p)
		},
	}
}

func applyWindowFlags(cmd *cobra.Command, w, h, rate *int) {
	if cmd.Flags().Changed("width") && width > 0 {
		*w = width
	}
	if cmd.Flags().Changed("height") && height > 0 {
		*h = height
	}
	if cmd.Flags().Changed("fps") && fps > 0 {
		*rate = fps
	}
}
