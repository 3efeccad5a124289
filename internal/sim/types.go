// Package sim runs the frame loop headlessly on a fixed frame clock.
package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/constellation/internal/render"
	"github.com/san-kum/constellation/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrCanceled = errors.New("run canceled")
	ErrInvalid  = errors.New("invalid run")
)

type Metric interface {
	Name() string
	Observe(s *scene.Scene, segs []render.Segment, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(tick int, s *scene.Scene, segs []render.Segment, t float64)
}

// Sample is a snapshot of node positions on one tick.
type Sample struct {
	Tick      int
	Time      float64
	MaxRadius float64
	MeanEdge  float64
	Positions []r3.Vec
}

type Result struct {
	Seed     int64
	Nodes    int
	Edges    int
	Graph    [][]int
	Bound    float64
	Ticks    int
	Samples  []Sample
	Segments []int
	Metrics  map[string]float64
}

// RunError records the tick a run failed on.
type RunError struct {
	Seed int64
	Tick int
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("seed %d: tick %d: %v", e.Seed, e.Tick, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
