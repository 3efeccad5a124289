package layout

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// SampleSphere draws count points uniformly over the volume of a sphere of
// the given radius centred at (0, yOffset, 0).
//
// The radial draw uses the cube root of a uniform variate so that density is
// constant per unit volume rather than per unit radius.
func SampleSphere(rng *rand.Rand, count int, radius, yOffset float64) []r3.Vec {
	if count <= 0 {
		return []r3.Vec{}
	}
	points := make([]r3.Vec, count)
	for i := range points {
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		r := radius * math.Cbrt(rng.Float64())

		sinPhi := math.Sin(phi)
		points[i] = r3.Vec{
			X: r * sinPhi * math.Cos(theta),
			Y: r*sinPhi*math.Sin(theta) + yOffset,
			Z: r * math.Cos(phi),
		}
	}
	return points
}
