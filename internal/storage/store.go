package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

var ErrMalformed = errors.New("malformed samples file")

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
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Nodes     int                `json:"nodes"`
	Edges     int                `json:"edges"`
	K         int                `json:"k"`
	Radius    float64            `json:"radius"`
	Bound     float64            `json:"bound"`
	FPS       int                `json:"fps"`
	Duration  float64            `json:"duration"`
	Ticks     int                `json:"ticks"`
	Graph     [][]int            `json:"graph"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes <id>/metadata.json and <id>/samples.csv and returns the id.
// A failed write removes the partial run directory.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    cfg.Preset,
		Timestamp: time.Now(),
		Seed:      result.Seed,
		Nodes:     result.Nodes,
		Edges:     result.Edges,
		K:         cfg.Nodes.K,
		Radius:    cfg.Nodes.Radius,
		Bound:     result.Bound,
		FPS:       cfg.Render.FPS,
		Duration:  cfg.Run.Duration,
		Ticks:     result.Ticks,
		Graph:     result.Graph,
		Metrics:   result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, "samples.csv"), result.Nodes, result.Samples); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, nodes int, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"tick", "time", "max_radius", "mean_edge"}
	for i := 0; i < nodes; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i), fmt.Sprintf("z%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, smp := range samples {
		row := []string{
			strconv.Itoa(smp.Tick),
			formatFloat(smp.Time),
			formatFloat(smp.MaxRadius),
			formatFloat(smp.MeanEdge),
		}
		for _, p := range smp.Positions {
			row = append(row, formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads a run's samples back.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) < 4 || (len(record)-4)%3 != 0 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformed, line+2, len(record))
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line+2, err)
			}
			vals[j] = v
		}

		smp := sim.Sample{
			Tick:      int(vals[0]),
			Time:      vals[1],
			MaxRadius: vals[2],
			MeanEdge:  vals[3],
			Positions: make([]r3.Vec, 0, (len(vals)-4)/3),
		}
		for j := 4; j < len(vals); j += 3 {
			smp.Positions = append(smp.Positions, r3.Vec{X: vals[j], Y: vals[j+1], Z: vals[j+2]})
		}
		samples = append(samples, smp)
	}
	return samples, nil
}
