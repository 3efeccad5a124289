// Package globe builds the dotted, drag-spun globe ornament with a lifted
// arc between two cities.
package globe

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	deg2rad = math.Pi / 180

	// EarthRadiusKm is the mean radius used for great-circle distances.
	EarthRadiusKm = 6371.0
)

// Place is a named coordinate in degrees.
type Place struct {
	Name string
	Lat  float64
	Lon  float64
}

var (
	Dallas = Place{Name: "Dallas", Lat: 32.7767, Lon: -96.7970}
	Zurich = Place{Name: "Zurich", Lat: 47.3769, Lon: 8.5417}
)

// Lattice places dots on a sphere of the given radius, one ring per latitude
// step of 180/rows degrees, each ring holding round(circumference*density)
// evenly spaced dots.
func Lattice(radius float64, rows int, density float64) []r3.Vec {
	if rows <= 0 || radius <= 0 || density <= 0 {
		return []r3.Vec{}
	}
	var dots []r3.Vec
	step := 180 / float64(rows)
	for i := 0; i <= rows; i++ {
		lat := -90 + float64(i)*step
		theta := lat * deg2rad
		ring := math.Cos(theta) * radius
		n := int(math.Round(2 * math.Pi * ring * density))
		y := radius * math.Sin(theta)
		for j := 0; j < n; j++ {
			phi := (-180 + float64(j)*360/float64(n)) * deg2rad
			dots = append(dots, r3.Vec{
				X: ring * math.Cos(phi),
				Y: y,
				Z: ring * math.Sin(phi),
			})
		}
	}
	if dots == nil {
		dots = []r3.Vec{}
	}
	return dots
}

// LatLonToVec converts a coordinate to a point on a sphere of radius r with
// +Y through the north pole. Longitude 0 lands on +X.
func LatLonToVec(lat, lon, r float64) r3.Vec {
	phi := (90 - lat) * deg2rad
	theta := (lon + 180) * deg2rad
	return r3.Vec{
		X: -(r * math.Sin(phi) * math.Cos(theta)),
		Y: r * math.Cos(phi),
		Z: r * math.Sin(phi) * math.Sin(theta),
	}
}

// Arc samples a cubic Bézier from start to end whose control points sit 40%
// of the way toward the chord midpoint, pushed out to radius*lift.
// It returns samples+1 points including both endpoints.
func Arc(start, end r3.Vec, radius, lift float64, samples int) []r3.Vec {
	if samples < 1 {
		samples = 1
	}
	mid := r3.Scale(0.5, r3.Add(start, end))
	c1 := r3.Add(start, r3.Scale(0.4, r3.Sub(mid, start)))
	c2 := r3.Add(end, r3.Scale(0.4, r3.Sub(mid, end)))
	c1 = r3.Scale(radius*lift, r3.Unit(c1))
	c2 = r3.Scale(radius*lift, r3.Unit(c2))

	pts := make([]r3.Vec, samples+1)
	for i := range pts {
		t := float64(i) / float64(samples)
		pts[i] = bezier(start, c1, c2, end, t)
	}
	return pts
}

func bezier(p0, p1, p2, p3 r3.Vec, t float64) r3.Vec {
	u := 1 - t
	return r3.Add(
		r3.Add(r3.Scale(u*u*u, p0), r3.Scale(3*u*u*t, p1)),
		r3.Add(r3.Scale(3*u*t*t, p2), r3.Scale(t*t*t, p3)),
	)
}

// GreatCircleKm returns the haversine distance between two places.
func GreatCircleKm(a, b Place) float64 {
	lat1, lat2 := a.Lat*deg2rad, b.Lat*deg2rad
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * deg2rad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

var printer = message.NewPrinter(language.English)

// DistanceLabel formats a distance with thousands separators, as "8,413 km".
func DistanceLabel(km float64) string {
	return printer.Sprintf("%d km", int64(math.Round(km)))
}
