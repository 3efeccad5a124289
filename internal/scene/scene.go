package scene

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultBoundFactor scales the sampling radius into the containment bound.
const DefaultBoundFactor = 1.2

// Proxy is the shape used to draw and pick a node.
type Proxy string

const (
	ProxySphere Proxy = "sphere"
	ProxyPlane  Proxy = "plane"
)

// Appearance selects the node texture variant.
type Appearance int

const (
	Default Appearance = iota
	Hover
)

func (a Appearance) String() string {
	if a == Hover {
		return "hover"
	}
	return "default"
}

// Node is one point of the cloud.
//
// Visual is the proxy position mutated by the integrator; Position is
// copied from it after every step so both always agree between ticks.
type Node struct {
	Position    r3.Vec
	Visual      r3.Vec
	Facing      r3.Vec
	Connections []int
	Payload     Payload
	Appearance  Appearance
}

// Options configures scene construction.
type Options struct {
	Radius      float64
	BoundFactor float64
	Proxy       Proxy
	ProxySize   float64
}

// Scene is the node collection and its geometry.
type Scene struct {
	Nodes     []Node
	Radius    float64
	Bound     float64
	Proxy     Proxy
	ProxySize float64

	released bool
}

// New builds a scene from positions and an optional payload list.
// With payloads, both slices must have the same length and every payload
// must validate. Without payloads the nodes carry an empty descriptor.
func New(positions []r3.Vec, payloads []Payload, opts Options) (*Scene, error) {
	if len(payloads) > 0 && len(payloads) != len(positions) {
		return nil, fmt.Errorf("%w: %d payloads, %d positions", ErrCountMismatch, len(payloads), len(positions))
	}
	for i, p := range payloads {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("payload %d: %w", i, err)
		}
	}

	factor := opts.BoundFactor
	if factor <= 0 {
		factor = DefaultBoundFactor
	}
	proxy := opts.Proxy
	if proxy == "" {
		proxy = ProxySphere
	}

	s := &Scene{
		Nodes:     make([]Node, len(positions)),
		Radius:    opts.Radius,
		Bound:     opts.Radius * factor,
		Proxy:     proxy,
		ProxySize: opts.ProxySize,
	}
	for i, p := range positions {
		s.Nodes[i] = Node{Position: p, Visual: p}
		if len(payloads) > 0 {
			s.Nodes[i].Payload = payloads[i]
		}
	}
	return s, nil
}

// Len returns the node count.
func (s *Scene) Len() int { return len(s.Nodes) }

// Connect installs the neighbour lists. The graph must have one entry per node.
func (s *Scene) Connect(graph [][]int) error {
	if len(graph) != len(s.Nodes) {
		return fmt.Errorf("%w: graph has %d lists for %d nodes", ErrCountMismatch, len(graph), len(s.Nodes))
	}
	for i := range s.Nodes {
		s.Nodes[i].Connections = graph[i]
	}
	return nil
}

// EdgeCount is the total number of directed connections.
func (s *Scene) EdgeCount() int {
	n := 0
	for i := range s.Nodes {
		n += len(s.Nodes[i].Connections)
	}
	return n
}

// Positions returns a copy of every logical position.
func (s *Scene) Positions() []r3.Vec {
	out := make([]r3.Vec, len(s.Nodes))
	for i := range s.Nodes {
		out[i] = s.Nodes[i].Position
	}
	return out
}

// SetAppearance marks idx as hovered and every other node as default.
// A negative idx resets all nodes.
func (s *Scene) SetAppearance(idx int) {
	for i := range s.Nodes {
		if i == idx {
			s.Nodes[i].Appearance = Hover
		} else {
			s.Nodes[i].Appearance = Default
		}
	}
}

// Release marks the scene torn down and drops its nodes.
func (s *Scene) Release() {
	s.released = true
	s.Nodes = nil
}

// Released reports whether Release was called.
func (s *Scene) Released() bool { return s.released }
