// Package config loads the YAML configuration shared by every host.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/physics"
	"github.com/san-kum/wavefield/internal/shader"
	"github.com/san-kum/wavefield/internal/theme"
	"github.com/san-kum/wavefield/internal/viz"
)

const (
	DefaultWidth       = 1280
	DefaultHeight      = 720
	DefaultFPS         = 60
	DefaultTraceTicks  = 600
	DefaultTraceDir    = "runs"
	DefaultFrameMS     = 16.67
	DefaultLogLevel    = "info"
	DefaultMetricsAddr = ""
	DefaultWindowTitle = "wavefield"
)

type Config struct {
	Theme   theme.Mode        `yaml:"theme"`
	Physics physics.Config    `yaml:"physics"`
	Layout  viz.Layout        `yaml:"layout"`
	Styles  theme.Styles      `yaml:"palettes"`
	Shader  shader.WaveConfig `yaml:"shader"`
	Window  WindowConfig      `yaml:"window"`
	Trace   TraceConfig       `yaml:"trace"`
	Log     LogConfig         `yaml:"log"`

	MetricsAddr string `yaml:"metrics_addr"`
}

type WindowConfig struct {
	Title  string  `yaml:"title"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	FPS    int     `yaml:"fps"`
	DPR    float64 `yaml:"dpr"` // 0 asks the host
}

type TraceConfig struct {
	Ticks   int     `yaml:"ticks"`
	FrameMS float64 `yaml:"frame_ms"`
	Dir     string  `yaml:"dir"`
}

func (t TraceConfig) FrameInterval() time.Duration {
	return time.Duration(t.FrameMS * float64(time.Millisecond))
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:   theme.ModeSystem,
		Physics: physics.DefaultConfig(),
		Layout:  viz.DefaultLayout(),
		Styles:  theme.DefaultStyles(),
		Shader:  shader.DefaultWaveConfig(),
		Window: WindowConfig{
			Title:  DefaultWindowTitle,
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
		Trace: TraceConfig{
			Ticks:   DefaultTraceTicks,
			FrameMS: DefaultFrameMS,
			Dir:     DefaultTraceDir,
		},
		Log:         LogConfig{Level: DefaultLogLevel},
		MetricsAddr: DefaultMetricsAddr,
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Physics.Validate(); err != nil {
		return err
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if err := c.Styles.Validate(); err != nil {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidConfig, err)
	}
	if err := c.Shader.Validate(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", dynamo.ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", dynamo.ErrInvalidConfig, c.Window.FPS)
	}
	if c.Window.DPR < 0 {
		return fmt.Errorf("%w: dpr must not be negative, got %g", dynamo.ErrInvalidConfig, c.Window.DPR)
	}
	if c.Trace.Ticks <= 0 || c.Trace.FrameMS <= 0 {
		return fmt.Errorf("%w: trace ticks and frame_ms must be positive", dynamo.ErrInvalidConfig)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Styles.Light.Palette = append([]string(nil), c.Styles.Light.Palette...)
	out.Styles.Dark.Palette = append([]string(nil), c.Styles.Dark.Palette...)
	return &out
}
