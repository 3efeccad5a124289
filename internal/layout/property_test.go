package layout

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"gonum.org/v1/gonum/spatial/r3"
)

// TestLayoutProperties checks the sampler and neighbour builder over random
// counts, radii, k and seeds.
func TestLayoutProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property tests in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("sampled points lie inside the radius", prop.ForAll(
		func(count int, radius float64, seed int64) bool {
			pts := SampleSphere(rand.New(rand.NewSource(seed)), count, radius, 0)
			if len(pts) != count {
				return false
			}
			for _, p := range pts {
				if r3.Norm(p) > radius*(1+1e-12) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 300),
		gen.Float64Range(0.1, 100),
		gen.Int64(),
	))

	properties.Property("neighbour lists are short, self-free and ascending", prop.ForAll(
		func(count, k int, seed int64) bool {
			pts := SampleSphere(rand.New(rand.NewSource(seed)), count, 8, 0)
			graph := BuildNeighbors(pts, k)
			want := min(k, count-1)
			if want < 0 {
				want = 0
			}
			for i, conns := range graph {
				if len(conns) != want {
					return false
				}
				prev := -1.0
				for _, j := range conns {
					if j == i || j < 0 || j >= count {
						return false
					}
					d := r3.Norm(r3.Sub(pts[i], pts[j]))
					if d < prev {
						return false
					}
					prev = d
				}
			}
			return len(graph) == count
		},
		gen.IntRange(0, 60),
		gen.IntRange(0, 8),
		gen.Int64(),
	))

	properties.Property("neighbour graph is deterministic", prop.ForAll(
		func(count int, seed int64) bool {
			pts := SampleSphere(rand.New(rand.NewSource(seed)), count, 8, 0)
			a := BuildNeighbors(pts, 3)
			b := BuildNeighbors(pts, 3)
			for i := range a {
				for j := range a[i] {
					if a[i][j] != b[i][j] {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(0, 60),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
