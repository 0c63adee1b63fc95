package geo

import "math"

// MetersPerDegree is the length of one degree of arc at the equator.
const MetersPerDegree = 111319.9

// Area estimates the polygon area in square meters.
//
// Latitude and longitude are treated as planar x/y and fed to the shoelace
// formula, with the last vertex joined back to the first. The squared-degree
// result is scaled by MetersPerDegree squared. There is no cos(latitude)
// correction, so the estimate is only close for small polygons near the
// equator. Fewer than three points yield 0.
func Area(points []Point) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}

	var sum float64
	for i := range n {
		j := (i + 1) % n
		sum += points[i].Latitude * points[j].Longitude
		sum -= points[j].Latitude * points[i].Longitude
	}

	return math.Abs(sum) * MetersPerDegree * MetersPerDegree / 2
}
