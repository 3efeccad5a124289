package layout

import (
	"math/rand"

	"github.com/san-kum/constellation/internal/scene"
)

// Params describes a layout to sample.
type Params struct {
	Count       int
	Radius      float64
	YOffset     float64
	K           int
	BoundFactor float64
	Proxy       scene.Proxy
	ProxySize   float64
}

// Build samples positions, validates payloads and wires the neighbour graph.
// When payloads are given their length sets the node count.
func Build(p Params, payloads []scene.Payload, rng *rand.Rand) (*scene.Scene, error) {
	count := p.Count
	if len(payloads) > 0 {
		count = len(payloads)
	}

	positions := SampleSphere(rng, count, p.Radius, p.YOffset)
	s, err := scene.New(positions, payloads, scene.Options{
		Radius:      p.Radius,
		BoundFactor: p.BoundFactor,
		Proxy:       p.Proxy,
		ProxySize:   p.ProxySize,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Connect(BuildNeighbors(positions, p.K)); err != nil {
		return nil, err
	}
	return s, nil
}
