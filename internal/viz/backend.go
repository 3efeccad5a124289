package viz

import (
	"errors"
	"math"
	"sort"

	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/globe"
	"github.com/san-kum/constellation/internal/render"
	"github.com/san-kum/constellation/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrReleased is returned by a TermBackend used after Release.
var ErrReleased = errors.New("viz: backend released")

// Lines whose endpoints project further than this from the centre are
// skipped so a dollied-in camera cannot make Bresenham walk forever.
const maxNDC = 4

// ToPixel maps normalized device coordinates onto a w by h raster with the
// origin at the top left. It is the inverse of camera.NDC over the same
// rect; pixel (i, j) covers [i, i+1) by [j, j+1).
func ToPixel(nx, ny float64, w, h int) (x, y float64) {
	return (nx + 1) / 2 * float64(w), (1 - ny) / 2 * float64(h)
}

// ProjectedRadius is the on-screen radius, in pixels of a raster h pixels
// high, of a world-space size at depth.
func ProjectedRadius(cam *camera.Camera, size, depth float64, h int) float64 {
	if depth <= 0 {
		return 0
	}
	th := math.Tan(cam.FOV * math.Pi / 360)
	return size / (depth * th) * float64(h) / 2
}

// TermBackend rasterizes frames onto a braille Canvas.
type TermBackend struct {
	Canvas *Canvas

	segments []render.Segment
	drawn    int
	released bool
}

// NewTermBackend returns a backend drawing into a cols by rows canvas.
func NewTermBackend(cols, rows int) *TermBackend {
	return &TermBackend{Canvas: NewCanvas(cols, rows)}
}

func (b *TermBackend) ReplaceSegments(segs []render.Segment) {
	b.segments = segs
}

// Draw clears the canvas, then draws the segments under the nodes. Nodes
// are painted back to front so the nearest one owns a shared cell.
func (b *TermBackend) Draw(s *scene.Scene, cam *camera.Camera) error {
	if b.released {
		return ErrReleased
	}
	c := b.Canvas
	c.Clear()
	w, h := c.Pixels()

	for _, seg := range b.segments {
		ax, ay, _, okA := cam.Project(seg.A)
		bx, by, _, okB := cam.Project(seg.B)
		if !okA || !okB || offscreen(ax, ay) || offscreen(bx, by) {
			continue
		}
		x0, y0 := ToPixel(ax, ay, w, h)
		x1, y1 := ToPixel(bx, by, w, h)
		c.DrawLine(cell(x0), cell(y0), cell(x1), cell(y1), InkLine)
	}

	type dot struct {
		x, y, r float64
		depth   float64
		ink     Ink
	}
	dots := make([]dot, 0, s.Len())
	for i := range s.Nodes {
		n := &s.Nodes[i]
		nx, ny, depth, ok := cam.Project(n.Position)
		if !ok || !camera.InView(nx, ny) {
			continue
		}
		x, y := ToPixel(nx, ny, w, h)
		ink := InkNode
		if n.Appearance == scene.Hover {
			ink = InkHover
		}
		dots = append(dots, dot{x, y, ProjectedRadius(cam, s.ProxySize, depth, h), depth, ink})
	}
	sort.Slice(dots, func(i, j int) bool { return dots[i].depth > dots[j].depth })

	for _, d := range dots {
		if s.Proxy == scene.ProxyPlane {
			c.Square(cell(d.x), cell(d.y), round(d.r), d.ink)
		} else {
			c.Disc(cell(d.x), cell(d.y), round(d.r), d.ink)
		}
	}

	b.drawn++
	return nil
}

func (b *TermBackend) Release() error {
	if b.released {
		return ErrReleased
	}
	b.released = true
	b.segments = nil
	return nil
}

// Resize reallocates the canvas.
func (b *TermBackend) Resize(cols, rows int) { b.Canvas.Resize(cols, rows) }

// Drawn returns how many frames were drawn.
func (b *TermBackend) Drawn() int { return b.drawn }

// DrawGlobe paints the front hemisphere of the ornament onto c with an
// orthographic projection that fits the whole arc on the canvas.
func DrawGlobe(c *Canvas, o *globe.Ornament) {
	c.Clear()
	w, h := c.Pixels()
	scale := float64(min(w, h)-2) / 2 / o.Extent()
	cx, cy := float64(w)/2, float64(h)/2

	plot := func(p r3.Vec, ink Ink) {
		if p.Z < 0 {
			return
		}
		c.Set(round(cx+p.X*scale), round(cy-p.Y*scale), ink)
	}

	dots, arc := o.Points()
	for _, p := range dots {
		plot(p, InkGlobe)
	}
	for _, p := range arc {
		plot(p, InkArc)
	}
}

func offscreen(nx, ny float64) bool {
	return math.Abs(nx) > maxNDC || math.Abs(ny) > maxNDC
}

func round(v float64) int { return int(math.Round(v)) }

// cell is the index of the pixel containing raster coordinate v.
func cell(v float64) int { return int(math.Floor(v)) }
