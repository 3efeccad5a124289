// Package pick resolves pointer positions to nodes and applies the hover
// and click transitions that follow.
package pick

import (
	"math"

	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cursor is the pointer affordance the host should show.
type Cursor string

const (
	CursorDefault Cursor = "default"
	CursorPointer Cursor = "pointer"
)

// PointerEvent is a pointer position in screen units.
type PointerEvent struct {
	X, Y float64
}

// Hit is the outcome of a pick. Index is -1 when nothing was hit.
type Hit struct {
	Index int
	T     float64
}

// None is the empty hit.
var None = Hit{Index: -1}

// Found reports whether a node was hit.
func (h Hit) Found() bool { return h.Index >= 0 }

// Cast tests a ray against every node proxy and returns the nearest hit.
func Cast(ray camera.Ray, s *scene.Scene, cam *camera.Camera) Hit {
	best := None
	bestT := math.Inf(1)
	for i := range s.Nodes {
		t, ok := intersect(ray, s, i, cam)
		if ok && t < bestT {
			best = Hit{Index: i, T: t}
			bestT = t
		}
	}
	return best
}

func intersect(ray camera.Ray, s *scene.Scene, i int, cam *camera.Camera) (float64, bool) {
	n := &s.Nodes[i]
	switch s.Proxy {
	case scene.ProxyPlane:
		facing := n.Facing
		if r3.Norm(facing) == 0 {
			facing = r3.Sub(cam.Position, n.Visual)
		}
		return ray.IntersectSquare(n.Visual, facing, cam.Up, s.ProxySize)
	default:
		return ray.IntersectSphere(n.Visual, s.ProxySize)
	}
}

// Resolve maps a pointer event inside rect to the node under it.
func Resolve(ev PointerEvent, rect camera.Rect, cam *camera.Camera, s *scene.Scene) Hit {
	if s == nil || s.Len() == 0 {
		return None
	}
	nx, ny := camera.NDC(ev.X, ev.Y, rect)
	return Cast(cam.RayThrough(nx, ny), s, cam)
}
