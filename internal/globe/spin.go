package globe

const (
	DefaultDamping   = 0.95
	DefaultBaseRate  = 0.001
	DefaultDragScale = 0.001
)

// Spin is the drag-to-rotate state of the globe around its Y axis.
type Spin struct {
	Damping   float64
	BaseRate  float64
	DragScale float64

	Angle float64
	Speed float64

	held  bool
	lastX float64
}

// NewSpin returns a spin with the default damping and rates.
func NewSpin() *Spin {
	return &Spin{Damping: DefaultDamping, BaseRate: DefaultBaseRate, DragScale: DefaultDragScale}
}

// Grab starts a drag at screen x.
func (s *Spin) Grab(x float64) {
	s.held = true
	s.lastX = x
}

// Drag sets the speed from the horizontal movement since the last event.
// It is ignored unless the globe is held.
func (s *Spin) Drag(x float64) {
	if !s.held {
		return
	}
	s.Speed = (x - s.lastX) * s.DragScale
	s.lastX = x
}

// Release ends a drag; the speed then decays.
func (s *Spin) Release() { s.held = false }

// Held reports whether a drag is in progress.
func (s *Spin) Held() bool { return s.held }

// Advance moves the spin by one frame.
func (s *Spin) Advance() {
	if !s.held {
		s.Speed *= s.Damping
	}
	s.Angle += s.Speed + s.BaseRate
}
