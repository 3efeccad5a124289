package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/constellation/internal/render"
	"github.com/san-kum/constellation/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

func newScene(t *testing.T, positions ...r3.Vec) *scene.Scene {
	t.Helper()
	s, err := scene.New(positions, nil, scene.Options{Radius: 8})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestMaxRadius(t *testing.T) {
	m := NewMaxRadius()
	m.Observe(newScene(t, r3.Vec{X: 3}, r3.Vec{Y: -4}), nil, 0)
	m.Observe(newScene(t, r3.Vec{Z: 2}), nil, 1)

	if m.Value() != 4 {
		t.Errorf("expected 4, got %v", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestContainment(t *testing.T) {
	c := NewContainment(5)
	if c.Value() != 1 {
		t.Error("expected 1 with no samples")
	}

	c.Observe(newScene(t, r3.Vec{X: 3}), nil, 0)
	c.Observe(newScene(t, r3.Vec{X: 6}), nil, 1)
	if c.Value() != 0.5 {
		t.Errorf("expected 0.5, got %v", c.Value())
	}
}

func TestMeanEdgeLength(t *testing.T) {
	segs := []render.Segment{
		{A: r3.Vec{}, B: r3.Vec{X: 1}},
		{A: r3.Vec{}, B: r3.Vec{Y: 3}},
	}
	if got := MeanLength(segs); got != 2 {
		t.Errorf("MeanLength = %v, want 2", got)
	}
	if MeanLength(nil) != 0 {
		t.Error("MeanLength(nil) should be 0")
	}

	m := NewMeanEdgeLength()
	m.Observe(nil, segs, 0)
	m.Observe(nil, segs[:1], 1)
	if m.Value() != 1.5 {
		t.Errorf("expected 1.5, got %v", m.Value())
	}
}

func TestEdgeStretch(t *testing.T) {
	e := NewEdgeStretch()
	frame := func(l float64) []render.Segment {
		return []render.Segment{{B: r3.Vec{X: l}}}
	}

	e.Observe(nil, frame(2), 0)
	e.Observe(nil, frame(2.5), 1)
	e.Observe(nil, frame(1.8), 2)

	if math.Abs(e.Value()-0.25) > 1e-12 {
		t.Errorf("expected 0.25, got %v", e.Value())
	}
	e.Reset()
	e.Observe(nil, frame(0), 0)
	e.Observe(nil, frame(1), 1)
	if e.Value() != 0 {
		t.Error("zero initial length should not report stretch")
	}
}
