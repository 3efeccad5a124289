package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveFrame(t *testing.T) {
	before := testutil.ToFloat64(FramesTotal)
	ObserveFrame(2*time.Millisecond, 60, 20)

	if got := testutil.ToFloat64(FramesTotal) - before; got != 1 {
		t.Errorf("frames delta %v, want 1", got)
	}
	if got := testutil.ToFloat64(Segments); got != 60 {
		t.Errorf("segments gauge %v, want 60", got)
	}
	if got := testutil.ToFloat64(Nodes); got != 20 {
		t.Errorf("nodes gauge %v, want 20", got)
	}
}

func TestObservePointer(t *testing.T) {
	hit := PointerEvents.WithLabelValues("move", "hit")
	miss := PointerEvents.WithLabelValues("move", "miss")
	h0, m0 := testutil.ToFloat64(hit), testutil.ToFloat64(miss)

	ObservePointer("move", true)
	ObservePointer("move", false)
	ObservePointer("move", false)

	if testutil.ToFloat64(hit)-h0 != 1 || testutil.ToFloat64(miss)-m0 != 2 {
		t.Error("pointer counters not incremented as expected")
	}
}
