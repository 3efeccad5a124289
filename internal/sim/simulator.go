package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/frame"
	"github.com/san-kum/constellation/internal/layout"
	"github.com/san-kum/constellation/internal/metrics"
	"github.com/san-kum/constellation/internal/render"
	"github.com/san-kum/constellation/internal/scene"
)

// DefaultAspect is the viewport ratio used when no surface exists.
const DefaultAspect = 16.0 / 9.0

// Origin is the fixed wall-clock start of every headless run, so runs with
// the same seed are reproducible.
var Origin = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Runner drives a frame.Driver with a manual scheduler.
type Runner struct {
	metrics   []Metric
	observers []Observer
	log       *slog.Logger
}

func New(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       logger,
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run builds a scene from cfg and payloads and animates it for
// cfg.Run.Duration seconds at cfg.Render.FPS.
func (r *Runner) Run(ctx context.Context, cfg *config.Config, payloads []scene.Payload) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	s, err := layout.Build(cfg.Layout(), payloads, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, err
	}

	cam := cfg.NewCamera(DefaultAspect)
	rec := render.NewRecorder(1)
	sched := frame.NewManualScheduler()
	d := frame.New(s, cam, cfg.NewOrbit(cam), rec, nil, sched, frame.Options{
		Drift:     cfg.Drift(),
		TimeScale: cfg.Motion.TimeScale,
		Billboard: cfg.Render.Billboard,
		Logger:    r.log,
	})
	defer d.Teardown()

	fps := cfg.Render.FPS
	steps := int(cfg.Run.Duration * float64(fps))
	interval := time.Second / time.Duration(fps)

	result := &Result{
		Seed:     cfg.Seed,
		Nodes:    s.Len(),
		Edges:    s.EdgeCount(),
		Graph:    copyGraph(s),
		Bound:    s.Bound,
		Samples:  make([]Sample, 0, steps/cfg.Run.SampleEvery+1),
		Segments: make([]int, 0, steps),
		Metrics:  make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.log.Debug("run started", "seed", cfg.Seed, "nodes", result.Nodes, "edges", result.Edges, "steps", steps)
	d.Start(nil, Origin)

	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
		default:
		}

		sched.Fire(Origin.Add(time.Duration(i) * interval))
		if err := d.Err(); err != nil {
			return result, &RunError{Seed: cfg.Seed, Tick: i, Err: err}
		}

		t := float64(i) / float64(fps)
		segs := d.Segments()
		for _, m := range r.metrics {
			m.Observe(s, segs, t)
		}
		for _, obs := range r.observers {
			obs.OnFrame(i, s, segs, t)
		}

		result.Ticks++
		result.Segments = append(result.Segments, len(segs))
		if (i-1)%cfg.Run.SampleEvery == 0 {
			result.Samples = append(result.Samples, Sample{
				Tick:      i,
				Time:      t,
				MaxRadius: metrics.Radius(s),
				MeanEdge:  metrics.MeanLength(segs),
				Positions: s.Positions(),
			})
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	r.log.Debug("run finished", "seed", cfg.Seed, "ticks", result.Ticks)
	return result, nil
}

func (r *Runner) validateConfig(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func copyGraph(s *scene.Scene) [][]int {
	g := make([][]int, s.Len())
	for i := range s.Nodes {
		g[i] = append([]int(nil), s.Nodes[i].Connections...)
	}
	return g
}
