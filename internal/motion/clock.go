package motion

import "time"

// Clock converts wall time into the oscillation phase argument.
type Clock struct {
	Origin time.Time
	// Scale is phase units per elapsed millisecond.
	Scale float64
}

// NewClock starts a clock at origin.
func NewClock(origin time.Time, scale float64) Clock {
	return Clock{Origin: origin, Scale: scale}
}

// Phase returns the phase time for now.
func (c Clock) Phase(now time.Time) float64 {
	ms := float64(now.Sub(c.Origin)) / float64(time.Millisecond)
	return ms * c.Scale
}
