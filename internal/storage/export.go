package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/constellation/internal/sim"
)

type ExportData struct {
	RunMetadata
	Samples []ExportSample `json:"samples"`
}

type ExportSample struct {
	Tick      int          `json:"tick"`
	Time      float64      `json:"time"`
	MaxRadius float64      `json:"max_radius"`
	MeanEdge  float64      `json:"mean_edge"`
	Positions [][3]float64 `json:"positions"`
}

// ExportJSON writes a stored run, metadata and samples, as one document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Samples:     make([]ExportSample, len(samples)),
	}
	for i, smp := range samples {
		data.Samples[i] = exportSample(smp)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func exportSample(smp sim.Sample) ExportSample {
	out := ExportSample{
		Tick:      smp.Tick,
		Time:      smp.Time,
		MaxRadius: smp.MaxRadius,
		MeanEdge:  smp.MeanEdge,
		Positions: make([][3]float64, len(smp.Positions)),
	}
	for i, p := range smp.Positions {
		out.Positions[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return out
}
