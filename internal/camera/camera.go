// Package camera implements the perspective camera used for projection and
// picking, and the damped orbit controls that move it.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera is a perspective camera looking at Target. FOV is the vertical
// field of view in degrees.
type Camera struct {
	Position, Target, Up r3.Vec
	FOV, Aspect          float64
	Near, Far            float64
}

// New returns a camera on the +Z axis at distance looking at the origin.
func New(fov, aspect, near, far, distance float64) *Camera {
	return &Camera{
		Position: r3.Vec{Z: distance},
		Up:       r3.Vec{Y: 1},
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
}

// SetAspect updates the projection for a viewport of w by h.
// Non-positive sizes are ignored and reported as false.
func (c *Camera) SetAspect(w, h float64) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	c.Aspect = w / h
	return true
}

// Basis returns the camera's right, up and forward unit vectors.
func (c *Camera) Basis() (right, up, forward r3.Vec) {
	forward = r3.Sub(c.Target, c.Position)
	if r3.Norm(forward) == 0 {
		forward = r3.Vec{Z: -1}
	}
	forward = r3.Unit(forward)

	worldUp := c.Up
	if r3.Norm(r3.Cross(forward, worldUp)) < 1e-9 {
		worldUp = r3.Vec{Z: 1}
		if math.Abs(forward.Z) > 0.9 {
			worldUp = r3.Vec{X: 1}
		}
	}
	right = r3.Unit(r3.Cross(forward, worldUp))
	up = r3.Cross(right, forward)
	return right, up, forward
}

func (c *Camera) tanHalfFOV() float64 {
	return math.Tan(c.FOV * math.Pi / 360)
}

// RayThrough casts a ray from the camera through a normalized device point.
func (c *Camera) RayThrough(nx, ny float64) Ray {
	right, up, forward := c.Basis()
	th := c.tanHalfFOV()
	dir := r3.Add(forward, r3.Add(
		r3.Scale(nx*th*c.Aspect, right),
		r3.Scale(ny*th, up),
	))
	return Ray{Origin: c.Position, Dir: r3.Unit(dir)}
}

// Project maps a world point to normalized device coordinates.
// ok is false when the point lies outside the near and far planes.
func (c *Camera) Project(p r3.Vec) (nx, ny, depth float64, ok bool) {
	right, up, forward := c.Basis()
	v := r3.Sub(p, c.Position)
	depth = r3.Dot(v, forward)
	if depth <= c.Near || depth >= c.Far {
		return 0, 0, depth, false
	}
	th := c.tanHalfFOV()
	nx = r3.Dot(v, right) / (depth * th * c.Aspect)
	ny = r3.Dot(v, up) / (depth * th)
	return nx, ny, depth, true
}

// InView reports whether a normalized device point is on screen.
func InView(nx, ny float64) bool {
	return nx >= -1 && nx <= 1 && ny >= -1 && ny <= 1
}
