package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const polarEpsilon = 1e-6

// Orbit moves a camera on a sphere around Target.
//
// Input accumulates as pending deltas. With damping, each Update applies
// the damping fraction of what is pending and keeps the rest, so motion
// eases out over several frames.
type Orbit struct {
	Target      r3.Vec
	Azimuth     float64
	Polar       float64
	Distance    float64
	Damping     float64
	AutoRotate  float64
	MinDistance float64
	MaxDistance float64

	dAz, dPolar float64
	scale       float64
}

// NewOrbit derives the spherical state from the camera's current position.
func NewOrbit(cam *Camera, damping float64) *Orbit {
	off := r3.Sub(cam.Position, cam.Target)
	dist := r3.Norm(off)
	o := &Orbit{
		Target:      cam.Target,
		Distance:    dist,
		Damping:     damping,
		MinDistance: 0,
		MaxDistance: math.Inf(1),
		scale:       1,
	}
	if dist > 0 {
		o.Azimuth = math.Atan2(off.X, off.Z)
		o.Polar = math.Acos(clamp(off.Y/dist, -1, 1))
	} else {
		o.Polar = math.Pi / 2
	}
	return o
}

// Rotate queues an azimuth and polar change in radians.
func (o *Orbit) Rotate(dAz, dPolar float64) {
	o.dAz += dAz
	o.dPolar += dPolar
}

// Dolly queues a distance scale; values below 1 move closer.
func (o *Orbit) Dolly(scale float64) {
	if scale > 0 {
		o.scale *= scale
	}
}

// Pending reports whether queued rotation remains.
func (o *Orbit) Pending() bool {
	return math.Abs(o.dAz) > 1e-9 || math.Abs(o.dPolar) > 1e-9
}

// Update applies queued input and auto-rotation to cam. It reports whether
// the camera position changed.
func (o *Orbit) Update(cam *Camera) bool {
	before := cam.Position

	o.Azimuth += o.AutoRotate
	if o.Damping > 0 {
		o.Azimuth += o.dAz * o.Damping
		o.Polar += o.dPolar * o.Damping
		o.dAz *= 1 - o.Damping
		o.dPolar *= 1 - o.Damping
	} else {
		o.Azimuth += o.dAz
		o.Polar += o.dPolar
		o.dAz, o.dPolar = 0, 0
	}
	o.Polar = clamp(o.Polar, polarEpsilon, math.Pi-polarEpsilon)

	o.Distance = clamp(o.Distance*o.scale, o.MinDistance, o.MaxDistance)
	o.scale = 1

	sinP := math.Sin(o.Polar)
	off := r3.Vec{
		X: o.Distance * sinP * math.Sin(o.Azimuth),
		Y: o.Distance * math.Cos(o.Polar),
		Z: o.Distance * sinP * math.Cos(o.Azimuth),
	}
	cam.Target = o.Target
	cam.Position = r3.Add(o.Target, off)

	return r3.Norm(r3.Sub(cam.Position, before)) > 1e-12
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
