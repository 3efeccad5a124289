package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNDC(t *testing.T) {
	rect := Rect{Left: 10, Top: 20, Width: 200, Height: 100}

	tests := []struct {
		name   string
		x, y   float64
		nx, ny float64
	}{
		{"top left", 10, 20, -1, 1},
		{"bottom right", 210, 120, 1, -1},
		{"centre", 110, 70, 0, 0},
		{"quarter", 60, 45, -0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nx, ny := NDC(tt.x, tt.y, rect)
			if math.Abs(nx-tt.nx) > 1e-12 || math.Abs(ny-tt.ny) > 1e-12 {
				t.Errorf("NDC(%v,%v) = (%v,%v), want (%v,%v)", tt.x, tt.y, nx, ny, tt.nx, tt.ny)
			}
		})
	}

	if nx, ny := NDC(5, 5, Rect{}); nx != 0 || ny != 0 {
		t.Errorf("degenerate rect should map to centre, got (%v,%v)", nx, ny)
	}
}

func TestRayThroughCentre(t *testing.T) {
	cam := New(75, 16.0/9.0, 0.1, 1000, 15)
	ray := cam.RayThrough(0, 0)

	if ray.Origin != cam.Position {
		t.Errorf("ray origin %v, want %v", ray.Origin, cam.Position)
	}
	want := r3.Vec{Z: -1}
	if r3.Norm(r3.Sub(ray.Dir, want)) > 1e-12 {
		t.Errorf("centre ray dir %v, want %v", ray.Dir, want)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	cam := New(60, 1.5, 0.1, 1000, 15)
	cam.Position = r3.Vec{X: 4, Y: 3, Z: 12}

	points := []r3.Vec{{}, {X: 2, Y: -1, Z: 3}, {X: -3, Y: 2, Z: -4}}
	for _, p := range points {
		nx, ny, depth, ok := cam.Project(p)
		if !ok {
			t.Fatalf("point %v not projected", p)
		}
		ray := cam.RayThrough(nx, ny)
		// The point must lie on the ray back through its own projection.
		tHit := r3.Dot(r3.Sub(p, ray.Origin), ray.Dir)
		if d := r3.Norm(r3.Sub(ray.At(tHit), p)); d > 1e-9 {
			t.Errorf("point %v is %.3g off its ray (depth %.3f)", p, d, depth)
		}
	}
}

func TestProjectBehindCamera(t *testing.T) {
	cam := New(75, 1, 0.1, 1000, 15)
	if _, _, _, ok := cam.Project(r3.Vec{Z: 20}); ok {
		t.Error("point behind camera should not project")
	}
	if _, _, _, ok := cam.Project(r3.Vec{Z: -2000}); ok {
		t.Error("point beyond far plane should not project")
	}
}

func TestSetAspect(t *testing.T) {
	cam := New(75, 1, 0.1, 1000, 15)
	if cam.SetAspect(0, 10) || cam.Aspect != 1 {
		t.Error("zero width should be ignored")
	}
	if !cam.SetAspect(1920, 1080) {
		t.Fatal("SetAspect rejected valid size")
	}
	if math.Abs(cam.Aspect-1920.0/1080.0) > 1e-12 {
		t.Errorf("aspect %v", cam.Aspect)
	}

	wide := cam.RayThrough(1, 0)
	cam.SetAspect(500, 1000)
	narrow := cam.RayThrough(1, 0)
	if narrow.Dir.X >= wide.Dir.X {
		t.Errorf("narrow viewport should bend edge ray less: %v vs %v", narrow.Dir, wide.Dir)
	}
}

func TestIntersectSphere(t *testing.T) {
	ray := Ray{Origin: r3.Vec{Z: 10}, Dir: r3.Vec{Z: -1}}

	tests := []struct {
		name   string
		center r3.Vec
		radius float64
		hit    bool
		t      float64
	}{
		{"through centre", r3.Vec{}, 1, true, 9},
		{"offset hit", r3.Vec{X: 0.5}, 1, true, 10 - math.Sqrt(0.75)},
		{"miss", r3.Vec{X: 2}, 1, false, 0},
		{"behind", r3.Vec{Z: 20}, 1, false, 0},
		{"inside", r3.Vec{Z: 10}, 2, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ray.IntersectSphere(tt.center, tt.radius)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && math.Abs(got-tt.t) > 1e-9 {
				t.Errorf("t = %v, want %v", got, tt.t)
			}
		})
	}
}

func TestIntersectSquare(t *testing.T) {
	ray := Ray{Origin: r3.Vec{Z: 10}, Dir: r3.Vec{Z: -1}}
	up := r3.Vec{Y: 1}
	facing := r3.Vec{Z: 1}

	if got, ok := ray.IntersectSquare(r3.Vec{}, facing, up, 1); !ok || math.Abs(got-10) > 1e-12 {
		t.Errorf("centre hit = %v,%v want 10,true", got, ok)
	}
	if _, ok := ray.IntersectSquare(r3.Vec{X: 0.4}, facing, up, 1); !ok {
		t.Error("offset within half-size should hit")
	}
	if _, ok := ray.IntersectSquare(r3.Vec{X: 0.6}, facing, up, 1); ok {
		t.Error("offset beyond half-size should miss")
	}
	if _, ok := ray.IntersectSquare(r3.Vec{}, r3.Vec{X: 1}, up, 1); ok {
		t.Error("edge-on square should miss")
	}
	if _, ok := ray.IntersectSquare(r3.Vec{}, r3.Vec{}, up, 1); ok {
		t.Error("zero normal should miss")
	}
}

func TestOrbitDamping(t *testing.T) {
	cam := New(75, 1, 0.1, 1000, 15)
	o := NewOrbit(cam, 0.05)

	if math.Abs(o.Azimuth) > 1e-12 || math.Abs(o.Polar-math.Pi/2) > 1e-12 || o.Distance != 15 {
		t.Fatalf("initial orbit state az=%v polar=%v dist=%v", o.Azimuth, o.Polar, o.Distance)
	}

	o.Rotate(1, 0)
	if !o.Update(cam) {
		t.Error("first update should move camera")
	}
	if math.Abs(o.Azimuth-0.05) > 1e-12 {
		t.Errorf("damped azimuth %v, want 0.05", o.Azimuth)
	}

	for i := 0; i < 1000; i++ {
		o.Update(cam)
	}
	if math.Abs(o.Azimuth-1) > 1e-6 {
		t.Errorf("azimuth should converge to 1, got %v", o.Azimuth)
	}
	if o.Pending() {
		t.Error("rotation should be drained")
	}
	if math.Abs(r3.Norm(cam.Position)-15) > 1e-9 {
		t.Errorf("distance drifted: %v", r3.Norm(cam.Position))
	}
}

func TestOrbitUndampedAndDolly(t *testing.T) {
	cam := New(75, 1, 0.1, 1000, 10)
	o := NewOrbit(cam, 0)
	o.MinDistance = 2

	o.Rotate(math.Pi/2, 0)
	o.Update(cam)
	if math.Abs(cam.Position.X-10) > 1e-9 || math.Abs(cam.Position.Z) > 1e-9 {
		t.Errorf("quarter turn position %v, want (10,0,0)", cam.Position)
	}

	o.Dolly(0.5)
	o.Update(cam)
	if math.Abs(o.Distance-5) > 1e-12 {
		t.Errorf("dolly distance %v, want 5", o.Distance)
	}
	o.Dolly(0.01)
	o.Update(cam)
	if o.Distance != 2 {
		t.Errorf("distance should clamp to 2, got %v", o.Distance)
	}

	o.Rotate(0, 10)
	o.Update(cam)
	if o.Polar >= math.Pi {
		t.Errorf("polar should clamp below pi, got %v", o.Polar)
	}
	if o.Update(cam) {
		t.Error("idle update should not move camera")
	}
}
