// Package motion advances node positions by one animation tick.
package motion

import (
	"math"

	"github.com/san-kum/constellation/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// Drift is the idle oscillation applied to every node.
//
// Each call adds a fixed-size nudge regardless of how much wall time passed
// since the previous call, so displacement per second scales with frame
// rate while the oscillation phase does not.
type Drift struct {
	Amplitude   float64
	Frequencies [3]float64
	PhaseStep   float64
	Bound       float64
}

// Step nudges every node for phase time t and clamps it into the bound.
func (d Drift) Step(s *scene.Scene, t float64) {
	for i := range s.Nodes {
		n := &s.Nodes[i]
		n.Visual = Contain(r3.Add(n.Visual, d.Delta(i, t)), d.Bound)
		n.Position = n.Visual
	}
}

// Delta is the displacement node i receives at phase time t.
func (d Drift) Delta(i int, t float64) r3.Vec {
	off := float64(i) * d.PhaseStep
	return r3.Vec{
		X: math.Sin(t*d.Frequencies[0]+off) * d.Amplitude,
		Y: math.Cos(t*d.Frequencies[1]+off) * d.Amplitude,
		Z: math.Sin(t*d.Frequencies[2]+off) * d.Amplitude,
	}
}

// Contain rescales p onto the sphere of radius bound when it lies outside.
// Points inside the bound are returned unchanged; a non-positive bound
// collapses every point to the origin.
func Contain(p r3.Vec, bound float64) r3.Vec {
	if bound <= 0 {
		return r3.Vec{}
	}
	l := r3.Norm(p)
	if l <= bound {
		return p
	}
	target := bound
	q := r3.Scale(target/l, p)
	// Rounding can leave the rescaled point an ulp or two outside.
	for r3.Norm(q) > bound {
		target = math.Nextafter(target, 0)
		q = r3.Scale(target/l, p)
	}
	return q
}
