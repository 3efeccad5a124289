package pick

import (
	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/scene"
)

// Resolver owns the hover state and applies pointer transitions to a scene.
type Resolver struct {
	// SwapTextures switches the hovered node to its hover appearance.
	SwapTextures bool
	Navigator    Navigator

	state  scene.HoverState
	cursor Cursor
}

// NewResolver returns a resolver with nothing hovered.
func NewResolver(nav Navigator, swap bool) *Resolver {
	return &Resolver{Navigator: nav, SwapTextures: swap, cursor: CursorDefault}
}

// State returns the current hover state.
func (r *Resolver) State() scene.HoverState { return r.state }

// Cursor returns the cursor the host should display.
func (r *Resolver) Cursor() Cursor {
	if r.cursor == "" {
		return CursorDefault
	}
	return r.cursor
}

// Move handles a pointer move and returns the hover transition result.
func (r *Resolver) Move(ev PointerEvent, rect camera.Rect, cam *camera.Camera, s *scene.Scene) Hit {
	hit := Resolve(ev, rect, cam, s)
	r.apply(hit, s)
	return hit
}

// Click resolves the pointer and opens the hit node's destination, if any.
// It returns the hit and whether navigation happened.
func (r *Resolver) Click(ev PointerEvent, rect camera.Rect, cam *camera.Camera, s *scene.Scene) (Hit, bool, error) {
	hit := Resolve(ev, rect, cam, s)
	r.apply(hit, s)
	if !hit.Found() || r.Navigator == nil {
		return hit, false, nil
	}
	p := s.Nodes[hit.Index].Payload
	if !p.HasDestination() {
		return hit, false, nil
	}
	if err := r.Navigator.Open(p.Destination); err != nil {
		return hit, false, err
	}
	return hit, true, nil
}

// Reset clears the hover state, as when the pointer leaves the surface.
func (r *Resolver) Reset(s *scene.Scene) {
	r.apply(None, s)
}

func (r *Resolver) apply(hit Hit, s *scene.Scene) {
	r.state = scene.Hovering(hit.Index)
	if hit.Found() {
		r.cursor = CursorPointer
	} else {
		r.cursor = CursorDefault
	}
	if r.SwapTextures && s != nil {
		s.SetAppearance(hit.Index)
	}
}
