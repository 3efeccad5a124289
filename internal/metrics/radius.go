package metrics

import (
	"github.com/san-kum/constellation/internal/render"
	"github.com/san-kum/constellation/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// MaxRadius is the largest node distance from the origin seen so far.
type MaxRadius struct {
	name string
	max  float64
}

func NewMaxRadius() *MaxRadius {
	return &MaxRadius{name: "max_radius"}
}

func (m *MaxRadius) Name() string { return m.name }

func (m *MaxRadius) Observe(s *scene.Scene, segs []render.Segment, t float64) {
	if r := Radius(s); r > m.max {
		m.max = r
	}
}

func (m *MaxRadius) Value() float64 { return m.max }

func (m *MaxRadius) Reset() { m.max = 0 }

// Radius returns the largest |Position| in s.
func Radius(s *scene.Scene) float64 {
	largest := 0.0
	for i := range s.Nodes {
		if r := r3.Norm(s.Nodes[i].Position); r > largest {
			largest = r
		}
	}
	return largest
}

// Containment is the fraction of observed frames in which every node was
// inside the bound.
type Containment struct {
	name       string
	bound      float64
	violations int
	samples    int
}

func NewContainment(bound float64) *Containment {
	return &Containment{
		name:  "containment",
		bound: bound,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(s *scene.Scene, segs []render.Segment, t float64) {
	c.samples++
	if Radius(s) > c.bound {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
