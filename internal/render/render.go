// Package render turns the neighbour graph into drawable line segments and
// defines the backend contract the frame driver draws through.
package render

import (
	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/scene"
	"gonum.org/v1/gonum/spatial/r3"
)

// Segment is one connection line for the current frame.
type Segment struct {
	From, To int
	A, B     r3.Vec
}

// Length returns the segment's length.
func (s Segment) Length() float64 { return r3.Norm(r3.Sub(s.B, s.A)) }

// Backend is the rasterizing collaborator.
//
// ReplaceSegments discards every segment from the previous frame before
// installing the new set. Draw submits the scene and camera. Release frees
// backend resources; no call may follow it.
type Backend interface {
	ReplaceSegments(segs []Segment)
	Draw(s *scene.Scene, cam *camera.Camera) error
	Release() error
}

// Connections rebuilds the frame's segments from the neighbour lists.
//
// Every call throws away the previous frame's slice and allocates a fresh
// one. Endpoints move every tick, so the segments are never patched in place.
type Connections struct {
	segments []Segment
}

// Rebuild emits one segment per (node, neighbour) pair at current positions.
func (c *Connections) Rebuild(nodes []scene.Node) []Segment {
	c.segments = nil

	total := 0
	for i := range nodes {
		total += len(nodes[i].Connections)
	}
	segs := make([]Segment, 0, total)
	for i := range nodes {
		for _, j := range nodes[i].Connections {
			segs = append(segs, Segment{
				From: i,
				To:   j,
				A:    nodes[i].Position,
				B:    nodes[j].Position,
			})
		}
	}
	c.segments = segs
	return segs
}

// Segments returns the most recent frame's segments.
func (c *Connections) Segments() []Segment { return c.segments }

// Count returns the number of segments in the most recent frame.
func (c *Connections) Count() int { return len(c.segments) }
