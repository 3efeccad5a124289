package render

import (
	"errors"
	"fmt"

	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/scene"
)

// ErrReleased is returned by a backend used after Release.
var ErrReleased = errors.New("render: backend released")

// Frame is what a Recorder saw on one Draw call.
type Frame struct {
	Segments int
	Nodes    int
	Hovered  int
}

// Recorder is an in-memory backend for headless runs and tests.
type Recorder struct {
	// Keep bounds the number of frames retained; zero keeps all.
	Keep int
	// FailAfter makes Draw fail once this many frames were drawn; zero disables.
	FailAfter int

	segments []Segment
	frames   []Frame
	drawn    int
	released bool
}

// NewRecorder returns a recorder retaining at most keep frames.
func NewRecorder(keep int) *Recorder {
	return &Recorder{Keep: keep}
}

func (r *Recorder) ReplaceSegments(segs []Segment) {
	r.segments = segs
}

func (r *Recorder) Draw(s *scene.Scene, cam *camera.Camera) error {
	if r.released {
		return ErrReleased
	}
	if r.FailAfter > 0 && r.drawn >= r.FailAfter {
		return fmt.Errorf("render: draw failed after %d frames", r.drawn)
	}
	hovered := -1
	for i := range s.Nodes {
		if s.Nodes[i].Appearance == scene.Hover {
			hovered = i
			break
		}
	}
	r.frames = append(r.frames, Frame{Segments: len(r.segments), Nodes: s.Len(), Hovered: hovered})
	if r.Keep > 0 && len(r.frames) > r.Keep {
		r.frames = r.frames[len(r.frames)-r.Keep:]
	}
	r.drawn++
	return nil
}

func (r *Recorder) Release() error {
	if r.released {
		return ErrReleased
	}
	r.released = true
	r.segments = nil
	return nil
}

// Segments returns the installed segment set.
func (r *Recorder) Segments() []Segment { return r.segments }

// Frames returns the retained frames, oldest first.
func (r *Recorder) Frames() []Frame { return r.frames }

// Drawn returns how many frames were drawn in total.
func (r *Recorder) Drawn() int { return r.drawn }

// Released reports whether Release was called.
func (r *Recorder) Released() bool { return r.released }
