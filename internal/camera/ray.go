package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Rect is a viewport's bounding rectangle in screen units.
type Rect struct {
	Left, Top, Width, Height float64
}

// NDC maps a screen point inside r to [-1, 1] on both axes. Screen Y grows
// downward, so it is inverted. A degenerate rect maps to the centre.
func NDC(x, y float64, r Rect) (float64, float64) {
	if r.Width <= 0 || r.Height <= 0 {
		return 0, 0
	}
	nx := (x-r.Left)/r.Width*2 - 1
	ny := -((y-r.Top)/r.Height)*2 + 1
	return nx, ny
}

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin, Dir r3.Vec
}

// At returns the point at parameter t.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Dir))
}

// IntersectSphere returns the nearest non-negative parameter at which the
// ray meets a sphere, or false when it misses.
func (r Ray) IntersectSphere(center r3.Vec, radius float64) (float64, bool) {
	oc := r3.Sub(r.Origin, center)
	b := r3.Dot(oc, r.Dir)
	c := r3.Dot(oc, oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectSquare tests a square of side size centred at center with the
// given normal. The square's in-plane axes are derived from worldUp.
func (r Ray) IntersectSquare(center, normal, worldUp r3.Vec, size float64) (float64, bool) {
	if r3.Norm(normal) == 0 {
		return 0, false
	}
	n := r3.Unit(normal)
	denom := r3.Dot(r.Dir, n)
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	t := r3.Dot(r3.Sub(center, r.Origin), n) / denom
	if t < 0 {
		return 0, false
	}

	u := r3.Cross(worldUp, n)
	if r3.Norm(u) < 1e-9 {
		u = r3.Cross(r3.Vec{X: 1}, n)
	}
	u = r3.Unit(u)
	v := r3.Cross(n, u)

	local := r3.Sub(r.At(t), center)
	half := size / 2
	if math.Abs(r3.Dot(local, u)) > half || math.Abs(r3.Dot(local, v)) > half {
		return 0, false
	}
	return t, true
}
