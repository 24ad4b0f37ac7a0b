package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/physics"
	"github.com/san-kum/wavefield/internal/sim"
)

type ExportData struct {
	Preset          string             `json:"preset"`
	FrameIntervalMS float64            `json:"frame_interval_ms"`
	Steps           int                `json:"steps"`
	Physics         physics.Config     `json:"physics"`
	TimesMS         []float64          `json:"times_ms"`
	States          []physics.State    `json:"states"`
	Metrics         map[string]float64 `json:"metrics"`
}

func newExportData(preset string, cfg physics.Config, run sim.Config, result *sim.Result) ExportData {
	data := ExportData{
		Preset:          preset,
		FrameIntervalMS: dynamo.Millis(run.FrameInterval),
		Steps:           len(result.Times),
		Physics:         cfg,
		TimesMS:         make([]float64, len(result.Times)),
		States:          result.States,
		Metrics:         result.Metrics,
	}
	for i, t := range result.Times {
		data.TimesMS[i] = dynamo.Millis(t)
	}
	return data
}

func WriteJSON(w io.Writer, preset string, cfg physics.Config, run sim.Config, result *sim.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(preset, cfg, run, result))
}

func ExportJSON(path, preset string, cfg physics.Config, run sim.Config, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(file, preset, cfg, run, result); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
