package frame

import (
	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/pick"
)

// Surface is the host's event source. Each registration returns a function
// that removes the listener.
type Surface interface {
	OnResize(fn func(w, h float64)) (remove func())
	OnPointerMove(fn func(ev pick.PointerEvent, rect camera.Rect)) (remove func())
	OnClick(fn func(ev pick.PointerEvent, rect camera.Rect)) (remove func())
}

// ManualSurface is a Surface driven directly by callers.
type ManualSurface struct {
	Rect camera.Rect

	next   int
	resize map[int]func(w, h float64)
	move   map[int]func(pick.PointerEvent, camera.Rect)
	click  map[int]func(pick.PointerEvent, camera.Rect)
}

// NewManualSurface returns a surface with the given viewport.
func NewManualSurface(w, h float64) *ManualSurface {
	return &ManualSurface{
		Rect:   camera.Rect{Width: w, Height: h},
		resize: make(map[int]func(w, h float64)),
		move:   make(map[int]func(pick.PointerEvent, camera.Rect)),
		click:  make(map[int]func(pick.PointerEvent, camera.Rect)),
	}
}

func (m *ManualSurface) OnResize(fn func(w, h float64)) func() {
	m.next++
	id := m.next
	m.resize[id] = fn
	return func() { delete(m.resize, id) }
}

func (m *ManualSurface) OnPointerMove(fn func(pick.PointerEvent, camera.Rect)) func() {
	m.next++
	id := m.next
	m.move[id] = fn
	return func() { delete(m.move, id) }
}

func (m *ManualSurface) OnClick(fn func(pick.PointerEvent, camera.Rect)) func() {
	m.next++
	id := m.next
	m.click[id] = fn
	return func() { delete(m.click, id) }
}

// Resize changes the viewport and notifies listeners.
func (m *ManualSurface) Resize(w, h float64) {
	m.Rect.Width, m.Rect.Height = w, h
	for _, fn := range m.resize {
		fn(w, h)
	}
}

// Move dispatches a pointer move at (x, y).
func (m *ManualSurface) Move(x, y float64) {
	for _, fn := range m.move {
		fn(pick.PointerEvent{X: x, Y: y}, m.Rect)
	}
}

// Click dispatches a click at (x, y).
func (m *ManualSurface) Click(x, y float64) {
	for _, fn := range m.click {
		fn(pick.PointerEvent{X: x, Y: y}, m.Rect)
	}
}

// Listeners returns the number of registered listeners.
func (m *ManualSurface) Listeners() int {
	return len(m.resize) + len(m.move) + len(m.click)
}
