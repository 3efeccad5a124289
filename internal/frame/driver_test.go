package frame

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/layout"
	"github.com/san-kum/constellation/internal/motion"
	"github.com/san-kum/constellation/internal/pick"
	"github.com/san-kum/constellation/internal/render"
	"github.com/san-kum/constellation/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func classicDrift(bound float64) motion.Drift {
	return motion.Drift{
		Amplitude:   0.01,
		Frequencies: [3]float64{0.5, 0.7, 0.3},
		PhaseStep:   0.5,
		Bound:       bound,
	}
}

func newDriver(t *testing.T, count int, rec *render.Recorder) (*Driver, *ManualScheduler) {
	t.Helper()
	s, err := layout.Build(layout.Params{Count: count, Radius: 8, K: 3, ProxySize: 0.3}, nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	cam := camera.New(75, 800.0/600.0, 0.1, 1000, 15)
	sched := NewManualScheduler()
	d := New(s, cam, nil, rec, pick.NewResolver(nil, true), sched, Options{
		Drift:     classicDrift(s.Bound),
		TimeScale: 0.001,
	})
	return d, sched
}

func TestDriver_TickSchedulesNext(t *testing.T) {
	rec := render.NewRecorder(0)
	d, sched := newDriver(t, 20, rec)

	d.Start(nil, epoch)
	if sched.Pending() != 1 {
		t.Fatalf("expected 1 pending frame after Start, got %d", sched.Pending())
	}

	for i := 1; i <= 5; i++ {
		if n := sched.Fire(epoch.Add(time.Duration(i) * 16 * time.Millisecond)); n != 1 {
			t.Fatalf("fire %d ran %d callbacks", i, n)
		}
		if sched.Pending() != 1 {
			t.Fatalf("tick %d left %d pending frames", i, sched.Pending())
		}
	}
	if d.Ticks() != 5 || rec.Drawn() != 5 {
		t.Errorf("ticks %d drawn %d, want 5/5", d.Ticks(), rec.Drawn())
	}
	for _, f := range rec.Frames() {
		if f.Segments != 60 {
			t.Errorf("frame had %d segments, want 60", f.Segments)
		}
	}
}

func TestDriver_StartTwice(t *testing.T) {
	d, sched := newDriver(t, 4, render.NewRecorder(0))
	d.Start(nil, epoch)
	d.Start(nil, epoch)
	if sched.Pending() != 1 {
		t.Errorf("second Start queued another frame: %d pending", sched.Pending())
	}
}

func TestDriver_StepBeforeStart(t *testing.T) {
	d, _ := newDriver(t, 4, render.NewRecorder(0))
	if err := d.Step(epoch); !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
}

func TestDriver_SegmentsTrackPositions(t *testing.T) {
	rec := render.NewRecorder(0)
	d, sched := newDriver(t, 10, rec)
	d.Start(nil, epoch)
	sched.Fire(epoch.Add(time.Second))

	s := d.Scene()
	for _, seg := range rec.Segments() {
		if seg.A != s.Nodes[seg.From].Position || seg.B != s.Nodes[seg.To].Position {
			t.Fatalf("segment %d->%d does not match node positions", seg.From, seg.To)
		}
	}
}

func TestDriver_PhaseFromStart(t *testing.T) {
	d, _ := newDriver(t, 1, render.NewRecorder(0))
	d.Start(nil, epoch)
	if got := d.Phase(epoch.Add(2500 * time.Millisecond)); got != 2.5 {
		t.Errorf("Phase = %v, want 2.5", got)
	}
}

func TestDriver_DrawErrorStopsLoop(t *testing.T) {
	rec := render.NewRecorder(0)
	rec.FailAfter = 3
	d, sched := newDriver(t, 8, rec)
	d.Start(nil, epoch)

	for i := 0; i < 10; i++ {
		sched.Fire(epoch.Add(time.Duration(i) * time.Millisecond))
	}
	if d.Running() {
		t.Error("loop still running after draw failure")
	}
	if sched.Pending() != 0 {
		t.Errorf("failed tick left %d pending frames", sched.Pending())
	}
	var te *TickError
	if !errors.As(d.Err(), &te) {
		t.Fatalf("Err() = %v, want *TickError", d.Err())
	}
	if te.Tick != 3 {
		t.Errorf("stopped at tick %d, want 3", te.Tick)
	}
	if d.Ticks() != 3 {
		t.Errorf("completed ticks %d, want 3", d.Ticks())
	}
}

func TestDriver_Teardown(t *testing.T) {
	rec := render.NewRecorder(0)
	d, sched := newDriver(t, 5, rec)
	surface := NewManualSurface(800, 600)
	d.Start(surface, epoch)

	if surface.Listeners() != 3 {
		t.Fatalf("expected 3 listeners, got %d", surface.Listeners())
	}
	if err := d.Teardown(); err != nil {
		t.Fatalf("Teardown failed: %v", err)
	}
	if surface.Listeners() != 0 {
		t.Errorf("teardown left %d listeners", surface.Listeners())
	}
	if sched.Pending() != 0 {
		t.Errorf("teardown left %d pending frames", sched.Pending())
	}
	if !rec.Released() || !d.Scene().Released() {
		t.Error("backend or scene not released")
	}
	if err := d.Teardown(); err != nil {
		t.Errorf("second Teardown = %v, want nil", err)
	}

	defer func() {
		if r := recover(); r != ErrTornDown {
			t.Errorf("tick after teardown recovered %v, want ErrTornDown", r)
		}
	}()
	d.Tick(epoch)
}

func TestDriver_ResizeThroughSurface(t *testing.T) {
	d, _ := newDriver(t, 3, render.NewRecorder(0))
	surface := NewManualSurface(800, 600)
	d.Start(surface, epoch)

	surface.Resize(1200, 400)
	if d.Camera().Aspect != 3 {
		t.Errorf("aspect %v, want 3", d.Camera().Aspect)
	}
	surface.Resize(0, 400)
	if d.Camera().Aspect != 3 {
		t.Error("zero-width resize changed the aspect")
	}
}

func TestDriver_HoverAndClick(t *testing.T) {
	s, err := scene.New([]r3.Vec{{}}, []scene.Payload{{
		Title:       "Notes",
		Date:        "2024",
		Destination: "https://example.com/notes",
	}}, scene.Options{Radius: 8, ProxySize: 0.3})
	if err != nil {
		t.Fatal(err)
	}
	cam := camera.New(75, 1, 0.1, 1000, 15)
	nav := &pick.RecordingNavigator{}
	d := New(s, cam, nil, render.NewRecorder(0), pick.NewResolver(nav, true), NewManualScheduler(), Options{})
	surface := NewManualSurface(600, 600)
	d.Start(surface, epoch)

	surface.Move(300, 300)
	if !d.Resolver().State().Is(0) || d.Resolver().Cursor() != pick.CursorPointer {
		t.Error("pointer over node did not hover it")
	}
	if s.Nodes[0].Appearance != scene.Hover {
		t.Error("hover texture not applied")
	}

	surface.Click(300, 300)
	if len(nav.Opened) != 1 || nav.Opened[0] != "https://example.com/notes" {
		t.Errorf("opened %v", nav.Opened)
	}

	surface.Move(5, 5)
	if d.Resolver().State().Active() || d.Resolver().Cursor() != pick.CursorDefault {
		t.Error("hover not cleared over empty space")
	}
	surface.Click(5, 5)
	if len(nav.Opened) != 1 {
		t.Error("click on empty space navigated")
	}
}

func TestDriver_BillboardFacesCamera(t *testing.T) {
	s, err := scene.New([]r3.Vec{{X: 2}, {Y: -3, Z: 1}}, nil, scene.Options{Radius: 8, Proxy: scene.ProxyPlane, ProxySize: 1})
	if err != nil {
		t.Fatal(err)
	}
	cam := camera.New(75, 1, 0.1, 1000, 15)
	sched := NewManualScheduler()
	d := New(s, cam, nil, render.NewRecorder(0), nil, sched, Options{Billboard: true, Drift: motion.Drift{Bound: s.Bound}})
	d.Start(nil, epoch)
	sched.Fire(epoch)

	for i, n := range s.Nodes {
		want := r3.Unit(r3.Sub(cam.Position, n.Visual))
		if r3.Norm(r3.Sub(n.Facing, want)) > 1e-12 {
			t.Errorf("node %d facing %v, want %v", i, n.Facing, want)
		}
	}
}

func TestDriver_ZeroDriftBoundUsesSceneBound(t *testing.T) {
	s, err := scene.New([]r3.Vec{{X: 3}, {Y: -2, Z: 1}}, nil, scene.Options{Radius: 2})
	if err != nil {
		t.Fatal(err)
	}
	start := []r3.Vec{s.Nodes[0].Position, s.Nodes[1].Position}
	cam := camera.New(75, 1, 0.1, 1000, 15)
	sched := NewManualScheduler()
	d := New(s, cam, nil, render.NewRecorder(0), nil, sched, Options{
		Drift:     motion.Drift{Amplitude: 0.01, Frequencies: [3]float64{0.5, 0.7, 0.3}, PhaseStep: 0.5},
		TimeScale: 0.001,
	})
	d.Start(nil, epoch)
	sched.Fire(epoch.Add(16 * time.Millisecond))

	for i, n := range s.Nodes {
		l := r3.Norm(n.Position)
		if l > s.Bound {
			t.Errorf("node %d at %v outside bound %v", i, l, s.Bound)
		}
		if l < 1 {
			t.Errorf("node %d collapsed to %v", i, n.Position)
		}
		if cos := r3.Cos(n.Position, start[i]); cos < 0.999 {
			t.Errorf("node %d turned away from %v: cos %v", i, start[i], cos)
		}
	}
}

func TestTickerScheduler_StopsWhenIdle(t *testing.T) {
	ts := NewTickerScheduler(1000)
	fired := 0
	ts.RequestFrame(func(time.Time) { fired++ })
	if err := ts.Run(t.Context()); err != nil {
		t.Fatalf("Run = %v", err)
	}
	if fired != 1 {
		t.Errorf("fired %d, want 1", fired)
	}
}
