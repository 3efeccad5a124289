package frame

import (
	"io"
	"log/slog"
	"time"

	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/motion"
	"github.com/san-kum/constellation/internal/pick"
	"github.com/san-kum/constellation/internal/render"
	"github.com/san-kum/constellation/internal/scene"
	"github.com/san-kum/constellation/internal/telemetry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Options configures a Driver.
type Options struct {
	Drift     motion.Drift
	TimeScale float64
	// Billboard turns plane proxies toward the camera every tick.
	Billboard bool
	Logger    *slog.Logger
}

// Driver is the frame loop. It exclusively owns its scene.
type Driver struct {
	scene    *scene.Scene
	cam      *camera.Camera
	orbit    *camera.Orbit
	backend  render.Backend
	resolver *pick.Resolver
	sched    Scheduler
	drift    motion.Drift
	clock    motion.Clock
	conns    render.Connections
	log      *slog.Logger

	timeScale float64
	billboard bool

	pending  FrameID
	removers []func()
	running  bool
	started  bool
	tornDown bool
	ticks    int
	err      error
}

// New wires a driver. orbit and resolver may be nil. A drift without a
// bound uses the scene bound.
func New(s *scene.Scene, cam *camera.Camera, orbit *camera.Orbit, backend render.Backend, resolver *pick.Resolver, sched Scheduler, opts Options) *Driver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if resolver == nil {
		resolver = pick.NewResolver(nil, false)
	}
	drift := opts.Drift
	if drift.Bound <= 0 {
		drift.Bound = s.Bound
	}
	return &Driver{
		scene:     s,
		cam:       cam,
		orbit:     orbit,
		backend:   backend,
		resolver:  resolver,
		sched:     sched,
		drift:     drift,
		log:       logger,
		timeScale: opts.TimeScale,
		billboard: opts.Billboard,
	}
}

// Start records the time origin, registers listeners on surface (which may
// be nil) and requests the first frame.
func (d *Driver) Start(surface Surface, now time.Time) {
	if d.tornDown {
		panic(ErrTornDown)
	}
	if d.started {
		return
	}
	d.started = true
	d.running = true
	d.clock = motion.NewClock(now, d.timeScale)

	if surface != nil {
		d.removers = append(d.removers,
			surface.OnResize(d.Resize),
			surface.OnPointerMove(d.PointerMove),
			surface.OnClick(d.Click),
		)
	}
	d.pending = d.sched.RequestFrame(d.Tick)
	d.log.Info("frame loop started", "nodes", d.scene.Len(), "edges", d.scene.EdgeCount())
}

// Tick is the scheduler callback. It re-registers before doing any work;
// a failed step cancels that registration and stops the loop.
func (d *Driver) Tick(now time.Time) {
	if d.tornDown {
		panic(ErrTornDown)
	}
	if !d.running {
		return
	}
	d.pending = d.sched.RequestFrame(d.Tick)

	if err := d.Step(now); err != nil {
		d.sched.CancelFrame(d.pending)
		d.pending = 0
		d.running = false
		d.err = &TickError{Tick: d.ticks, Time: now, Wrapped: err}
		telemetry.FrameErrors.Inc()
		d.log.Error("frame loop stopped", "tick", d.ticks, "error", err)
	}
}

// Step runs one update-and-draw cycle without touching the scheduler.
func (d *Driver) Step(now time.Time) error {
	if d.tornDown {
		panic(ErrTornDown)
	}
	if !d.started {
		return ErrNotStarted
	}
	start := time.Now()

	if d.orbit != nil {
		d.orbit.Update(d.cam)
	}
	if d.billboard && d.scene.Proxy == scene.ProxyPlane {
		d.faceCamera()
	}
	d.drift.Step(d.scene, d.clock.Phase(now))

	segs := d.conns.Rebuild(d.scene.Nodes)
	d.backend.ReplaceSegments(segs)
	if err := d.backend.Draw(d.scene, d.cam); err != nil {
		return err
	}

	d.ticks++
	telemetry.ObserveFrame(time.Since(start), len(segs), d.scene.Len())
	return nil
}

func (d *Driver) faceCamera() {
	for i := range d.scene.Nodes {
		n := &d.scene.Nodes[i]
		dir := r3.Sub(d.cam.Position, n.Visual)
		if r3.Norm(dir) > 0 {
			n.Facing = r3.Unit(dir)
		}
	}
}

// Resize updates the camera projection for a new viewport.
func (d *Driver) Resize(w, h float64) {
	if d.tornDown {
		panic(ErrTornDown)
	}
	if d.cam.SetAspect(w, h) {
		d.log.Debug("viewport resized", "width", w, "height", h, "aspect", d.cam.Aspect)
	}
}

// PointerMove applies a hover transition.
func (d *Driver) PointerMove(ev pick.PointerEvent, rect camera.Rect) {
	if d.tornDown {
		panic(ErrTornDown)
	}
	hit := d.resolver.Move(ev, rect, d.cam, d.scene)
	telemetry.ObservePointer("move", hit.Found())
}

// Click resolves a click and opens the hit node's destination.
func (d *Driver) Click(ev pick.PointerEvent, rect camera.Rect) {
	if d.tornDown {
		panic(ErrTornDown)
	}
	hit, opened, err := d.resolver.Click(ev, rect, d.cam, d.scene)
	telemetry.ObservePointer("click", hit.Found())
	if err != nil {
		d.log.Warn("navigation failed", "node", hit.Index, "error", err)
		return
	}
	if opened {
		telemetry.Navigations.Inc()
		d.log.Info("opened destination", "node", hit.Index, "destination", d.scene.Nodes[hit.Index].Payload.Destination)
	}
}

// Teardown stops the loop and releases everything the driver holds.
// Calling it again is a no-op.
func (d *Driver) Teardown() error {
	if d.tornDown {
		return nil
	}
	d.tornDown = true
	d.running = false
	if d.pending != 0 {
		d.sched.CancelFrame(d.pending)
		d.pending = 0
	}
	for _, remove := range d.removers {
		remove()
	}
	d.removers = nil

	err := d.backend.Release()
	d.scene.Release()
	d.log.Info("frame loop torn down", "ticks", d.ticks)
	return err
}

// Scene returns the driven scene.
func (d *Driver) Scene() *scene.Scene { return d.scene }

// Camera returns the driven camera.
func (d *Driver) Camera() *camera.Camera { return d.cam }

// Orbit returns the orbit controls, or nil.
func (d *Driver) Orbit() *camera.Orbit { return d.orbit }

// Resolver returns the pick resolver.
func (d *Driver) Resolver() *pick.Resolver { return d.resolver }

// Segments returns the last frame's segments.
func (d *Driver) Segments() []render.Segment { return d.conns.Segments() }

// Ticks returns the number of completed ticks.
func (d *Driver) Ticks() int { return d.ticks }

// Running reports whether the loop is live.
func (d *Driver) Running() bool { return d.running }

// Err returns the error that stopped the loop, if any.
func (d *Driver) Err() error { return d.err }

// Phase returns the oscillation phase for now.
func (d *Driver) Phase(now time.Time) float64 { return d.clock.Phase(now) }
