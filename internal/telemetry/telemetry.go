// Package telemetry exposes prometheus collectors for the frame loop.
package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// FramesTotal counts completed ticks.
	FramesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "constellation_frames_total",
		Help: "Total number of frame ticks completed",
	})

	// FrameErrors counts ticks that stopped the loop.
	FrameErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "constellation_frame_errors_total",
		Help: "Total number of frame ticks that failed",
	})

	// FrameDuration measures the work done inside one tick.
	FrameDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "constellation_frame_duration_seconds",
		Help: "Time spent integrating, rebuilding and drawing one frame",
		// A 60 Hz budget is ~16.7ms; most ticks should land well below it.
		Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.0167, 0.033, 0.1},
	})

	// Segments is the number of connection segments in the last frame.
	Segments = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "constellation_segments",
		Help: "Connection segments materialized in the last frame",
	})

	// Nodes is the number of nodes in the active scene.
	Nodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "constellation_nodes",
		Help: "Nodes in the active scene",
	})

	// PointerEvents counts resolved pointer events by kind and outcome.
	PointerEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "constellation_pointer_events_total",
			Help: "Pointer events resolved against the scene",
		},
		[]string{"kind", "outcome"},
	)

	// Navigations counts destinations opened by clicks.
	Navigations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "constellation_navigations_total",
		Help: "Destinations opened from node clicks",
	})
)

// ObserveFrame records one completed tick.
func ObserveFrame(d time.Duration, segments, nodes int) {
	FramesTotal.Inc()
	FrameDuration.Observe(d.Seconds())
	Segments.Set(float64(segments))
	Nodes.Set(float64(nodes))
}

// ObservePointer records a pointer event outcome.
func ObservePointer(kind string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	PointerEvents.WithLabelValues(kind, outcome).Inc()
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
