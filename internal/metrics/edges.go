// Package metrics provides scene observables collected during headless runs.
package metrics

import (
	"math"

	"github.com/san-kum/constellation/internal/render"
	"github.com/san-kum/constellation/internal/scene"
)

// MeanLength returns the average segment length, or zero with no segments.
func MeanLength(segs []render.Segment) float64 {
	if len(segs) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range segs {
		sum += s.Length()
	}
	return sum / float64(len(segs))
}

// MeanEdgeLength averages the per-frame mean segment length.
type MeanEdgeLength struct {
	name    string
	sum     float64
	samples int
}

func NewMeanEdgeLength() *MeanEdgeLength {
	return &MeanEdgeLength{name: "mean_edge_length"}
}

func (m *MeanEdgeLength) Name() string { return m.name }

func (m *MeanEdgeLength) Observe(s *scene.Scene, segs []render.Segment, t float64) {
	m.sum += MeanLength(segs)
	m.samples++
}

func (m *MeanEdgeLength) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanEdgeLength) Reset() {
	m.sum = 0
	m.samples = 0
}

// EdgeStretch tracks how far the mean edge length strays from its value on
// the first observed frame. Edges are never recomputed, so drift stretches
// and shrinks them.
type EdgeStretch struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEdgeStretch() *EdgeStretch {
	return &EdgeStretch{name: "edge_stretch"}
}

func (e *EdgeStretch) Name() string { return e.name }

func (e *EdgeStretch) Observe(s *scene.Scene, segs []render.Segment, t float64) {
	mean := MeanLength(segs)
	if e.samples == 0 {
		e.initial = mean
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(mean-e.initial) / e.initial
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EdgeStretch) Value() float64 {
	return e.maxDrift
}

func (e *EdgeStretch) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
