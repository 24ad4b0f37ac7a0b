// Package storage persists headless physics traces: a metadata.json and a
// states.csv per run, under one base directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/wavefield/internal/dynamo"
	"github.com/san-kum/wavefield/internal/physics"
	"github.com/san-kum/wavefield/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID              string             `json:"id"`
	Preset          string             `json:"preset"`
	Timestamp       time.Time          `json:"timestamp"`
	Ticks           int                `json:"ticks"`
	FrameIntervalMS float64            `json:"frame_interval_ms"`
	Physics         physics.Config     `json:"physics"`
	Script          sim.Script         `json:"script,omitempty"`
	Impulses        int                `json:"impulses"`
	Coalesced       int                `json:"coalesced"`
	Metrics         map[string]float64 `json:"metrics"`
}

// Header is the states.csv column order.
var Header = []string{
	"time_ms", "velocity", "acceleration", "stretch_velocity", "stretch",
	"x_offset", "phase_speed", "pointer_x", "pointer_y",
}

func (s *Store) Save(preset string, cfg physics.Config, script sim.Script, run sim.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", preset, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:              runID,
		Preset:          preset,
		Timestamp:       now,
		Ticks:           result.StepsTaken,
		FrameIntervalMS: dynamo.Millis(run.FrameInterval),
		Physics:         cfg,
		Script:          script,
		Impulses:        result.Impulses,
		Coalesced:       result.Coalesced,
		Metrics:         result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result); err != nil {
		return "", err
	}
	return runID, csvFile.Sync()
}

// WriteCSV writes one row per recorded tick.
func WriteCSV(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)
	if err := w.Write(Header); err != nil {
		return err
	}

	for i, st := range result.States {
		o, p := result.Outputs[i], result.Pointers[i]
		row := []string{strconv.FormatFloat(dynamo.Millis(result.Times[i]), 'f', 3, 64)}
		for _, v := range []float64{
			st.WaveVelocity, st.WaveAcceleration, st.StretchVelocity, st.StretchAmount,
			st.WaveXOffset, o.PhaseSpeed, p.X, p.Y,
		} {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrace reads a run's states back into a result. Outputs are taken from
// the recorded phase speed; metrics come from the metadata.
func (s *Store) LoadTrace(runID string) (*sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	res, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read %s states: %w", runID, err)
	}
	res.Impulses = meta.Impulses
	res.Coalesced = meta.Coalesced
	res.Metrics = meta.Metrics
	return res, nil
}

func ReadCSV(in io.Reader) (*sim.Result, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = len(Header)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	res := &sim.Result{Metrics: map[string]float64{}}
	if len(records) < 2 {
		return res, nil
	}

	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i+1, Header[j], err)
			}
			vals[j] = v
		}
		res.Times = append(res.Times, time.Duration(vals[0]*float64(time.Millisecond)))
		res.States = append(res.States, physics.State{
			WaveVelocity:     vals[1],
			WaveAcceleration: vals[2],
			StretchVelocity:  vals[3],
			StretchAmount:    vals[4],
			WaveXOffset:      vals[5],
		})
		res.Outputs = append(res.Outputs, physics.Outputs{
			PhaseSpeed: vals[6],
			Stretch:    vals[4],
			XOffset:    vals[5],
		})
		res.Pointers = append(res.Pointers, dynamo.Vec2{X: vals[7], Y: vals[8]})
	}
	res.StepsTaken = len(res.States)
	return res, nil
}
