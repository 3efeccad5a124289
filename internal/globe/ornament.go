package globe

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Options sizes an Ornament.
type Options struct {
	Radius    float64
	Rows      int
	Density   float64
	Lift      float64
	ArcPoints int
	From, To  Place
}

// DefaultOptions returns the dotted globe with the Dallas to Zurich arc.
func DefaultOptions() Options {
	return Options{
		Radius:    30,
		Rows:      36,
		Density:   0.1,
		Lift:      1.2,
		ArcPoints: 50,
		From:      Dallas,
		To:        Zurich,
	}
}

// Ornament bundles the lattice, its spin and the labelled arc.
type Ornament struct {
	Spin  *Spin
	From  Place
	To    Place
	Label string

	extent float64
	dots   []r3.Vec
	arc  []r3.Vec
}

// NewOrnament precomputes the static geometry.
func NewOrnament(opts Options) *Ornament {
	start := LatLonToVec(opts.From.Lat, opts.From.Lon, opts.Radius)
	end := LatLonToVec(opts.To.Lat, opts.To.Lon, opts.Radius)
	o := &Ornament{
		Spin:   NewSpin(),
		From:   opts.From,
		To:     opts.To,
		Label:  DistanceLabel(GreatCircleKm(opts.From, opts.To)),
		extent: opts.Radius,
		dots:   Lattice(opts.Radius, opts.Rows, opts.Density),
		arc:    Arc(start, end, opts.Radius, opts.Lift, opts.ArcPoints),
	}
	for _, p := range o.arc {
		o.extent = math.Max(o.extent, r3.Norm(p))
	}
	return o
}

// Extent is the largest distance of any point from the centre.
func (o *Ornament) Extent() float64 { return o.extent }

// Points returns the lattice and arc rotated by the current spin angle.
func (o *Ornament) Points() (dots, arc []r3.Vec) {
	rot := r3.NewRotation(o.Spin.Angle, r3.Vec{Y: 1})
	dots = make([]r3.Vec, len(o.dots))
	for i, p := range o.dots {
		dots[i] = rot.Rotate(p)
	}
	arc = make([]r3.Vec, len(o.arc))
	for i, p := range o.arc {
		arc[i] = rot.Rotate(p)
	}
	return dots, arc
}

// Endpoints returns the unrotated first and last arc points.
func (o *Ornament) Endpoints() (start, end r3.Vec) {
	return o.arc[0], o.arc[len(o.arc)-1]
}

// Apex returns the arc point used to anchor the label.
func (o *Ornament) Apex() r3.Vec {
	return o.arc[len(o.arc)/2]
}
