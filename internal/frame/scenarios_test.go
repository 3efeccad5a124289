package frame

import (
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/layout"
	"github.com/san-kum/constellation/internal/motion"
	"github.com/san-kum/constellation/internal/pick"
	"github.com/san-kum/constellation/internal/render"
	"github.com/san-kum/constellation/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ = Describe("Driver", func() {
	var (
		rec     *render.Recorder
		sched   *ManualScheduler
		surface *ManualSurface
		cam     *camera.Camera
		start   time.Time
	)

	drive := func(s *scene.Scene, drift motion.Drift) *Driver {
		d := New(s, cam, nil, rec, pick.NewResolver(nil, true), sched, Options{Drift: drift, TimeScale: 0.001})
		d.Start(surface, start)
		return d
	}

	BeforeEach(func() {
		rec = render.NewRecorder(0)
		sched = NewManualScheduler()
		surface = NewManualSurface(800, 600)
		cam = camera.New(75, 800.0/600.0, 0.1, 1000, 15)
		start = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	})

	Context("with the classic cloud of 20 nodes", func() {
		var d *Driver

		BeforeEach(func() {
			s, err := layout.Build(layout.Params{Count: 20, Radius: 8, K: 3, ProxySize: 0.3}, nil, rand.New(rand.NewSource(2024)))
			Expect(err).NotTo(HaveOccurred())
			d = drive(s, motion.Drift{Amplitude: 0.01, Frequencies: [3]float64{0.5, 0.7, 0.3}, PhaseStep: 0.5, Bound: s.Bound})
		})

		It("builds 60 directed connections and draws 60 segments on the first frame", func() {
			Expect(d.Scene().EdgeCount()).To(Equal(60))
			for _, n := range d.Scene().Nodes {
				Expect(n.Connections).To(HaveLen(3))
			}

			Expect(sched.Fire(start.Add(16 * time.Millisecond))).To(Equal(1))
			Expect(rec.Frames()).To(HaveLen(1))
			Expect(rec.Frames()[0].Segments).To(Equal(60))
			Expect(d.Segments()).To(HaveLen(60))
		})

		It("keeps every node inside the bound while segments follow the nodes", func() {
			for i := 1; i <= 600; i++ {
				sched.Fire(start.Add(time.Duration(i) * 16 * time.Millisecond))
				for _, n := range d.Scene().Nodes {
					Expect(r3.Norm(n.Position)).To(BeNumerically("<=", d.Scene().Bound))
				}
			}
			Expect(rec.Drawn()).To(Equal(600))
			for _, seg := range d.Segments() {
				Expect(seg.A).To(Equal(d.Scene().Nodes[seg.From].Position))
				Expect(seg.B).To(Equal(d.Scene().Nodes[seg.To].Position))
			}
		})

		It("removes its listeners and refuses ticks after teardown", func() {
			Expect(surface.Listeners()).To(Equal(3))

			Expect(d.Teardown()).To(Succeed())
			Expect(surface.Listeners()).To(BeZero())
			Expect(sched.Pending()).To(BeZero())
			Expect(rec.Released()).To(BeTrue())
			Expect(func() { d.Tick(start) }).To(PanicWith(ErrTornDown))
		})

		It("stops the loop when the backend fails", func() {
			rec.FailAfter = 2
			for i := 0; i < 5; i++ {
				sched.Fire(start.Add(time.Duration(i) * time.Millisecond))
			}
			Expect(d.Running()).To(BeFalse())
			Expect(sched.Pending()).To(BeZero())
			var te *TickError
			Expect(d.Err()).To(BeAssignableToTypeOf(te))
			Expect(rec.Drawn()).To(Equal(2))
		})
	})

	Context("with a single node", func() {
		It("has no connections, draws nothing and still picks the node", func() {
			s, err := layout.Build(layout.Params{Count: 1, Radius: 8, K: 3, ProxySize: 0.3}, nil, rand.New(rand.NewSource(9)))
			Expect(err).NotTo(HaveOccurred())
			d := drive(s, motion.Drift{Bound: s.Bound})

			Expect(d.Scene().Nodes[0].Connections).To(BeEmpty())
			sched.Fire(start)
			Expect(rec.Frames()[0].Segments).To(BeZero())

			nx, ny, _, ok := cam.Project(d.Scene().Nodes[0].Position)
			Expect(ok).To(BeTrue())
			surface.Move((nx+1)/2*800, (1-ny)/2*600)
			Expect(d.Resolver().State().Is(0)).To(BeTrue())
			Expect(d.Resolver().Cursor()).To(Equal(pick.CursorPointer))
		})
	})

	Context("with a node far outside the bound", func() {
		It("rescales it onto the bound without changing direction", func() {
			s, err := scene.New([]r3.Vec{{Z: 16}}, nil, scene.Options{Radius: 8})
			Expect(err).NotTo(HaveOccurred())
			d := drive(s, motion.Drift{Frequencies: [3]float64{0.5, 0.7, 0.3}, PhaseStep: 0.5, Bound: s.Bound})

			sched.Fire(start.Add(time.Second))
			p := d.Scene().Nodes[0].Position
			Expect(r3.Norm(p)).To(Equal(8 * 1.2))
			Expect(p.X).To(BeZero())
			Expect(p.Y).To(BeZero())
			Expect(p.Z).To(BeNumerically(">", 0))
		})
	})

	Context("when the viewport is resized", func() {
		It("casts a different ray through the same screen point", func() {
			s, err := scene.New(nil, nil, scene.Options{Radius: 8})
			Expect(err).NotTo(HaveOccurred())
			drive(s, motion.Drift{Bound: s.Bound})

			slope := func() float64 {
				nx, ny := camera.NDC(300, 300, surface.Rect)
				ray := cam.RayThrough(nx, ny)
				return ray.Dir.X / -ray.Dir.Z
			}
			th := math.Tan(75 * math.Pi / 360)

			Expect(slope()).To(BeNumerically("~", -th/3, 1e-12))

			surface.Resize(400, 600)
			Expect(cam.Aspect).To(BeNumerically("~", 400.0/600.0, 1e-12))
			Expect(slope()).To(BeNumerically("~", th/3, 1e-12))
		})
	})
})
