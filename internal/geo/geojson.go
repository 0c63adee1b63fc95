package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ErrNoPolygon is returned when a GeoJSON feature carries no usable polygon.
var ErrNoPolygon = errors.New("feature has no polygon geometry")

// ToFeature builds a GeoJSON feature for the polygon.
// Coordinates are [Lon, Lat] and the ring is closed by repeating the first point. The estimated area is
// attached as properties using the export document's unit names.
func ToFeature(points []Point) *geojson.Feature {
	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, orb.Point{p.Longitude, p.Latitude})
	}
	// always close, even when the last point repeats the first, so that
	// FromFeature can drop exactly one vertex
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}

	poly := orb.Polygon{ring}
	f := geojson.NewFeature(poly)
	if len(points) > 0 {
		f.BBox = geojson.NewBBox(poly.Bound())
	}

	squareMeters := Area(points)
	units := ConvertUnits(squareMeters)
	f.Properties["squareMeters"] = squareMeters
	f.Properties["squareFeet"] = units.SquareFeet
	f.Properties["squareYards"] = units.SquareYards
	f.Properties["acres"] = units.Acres

	return f
}

// FromFeature extracts the outer ring of a Polygon feature as points.
// The closing vertex is dropped since Area closes the ring implicitly.
func FromFeature(f *geojson.Feature) ([]Point, error) {
	if f == nil || f.Geometry == nil {
		return nil, ErrNoPolygon
	}

	poly, ok := f.Geometry.(orb.Polygon)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNoPolygon, f.Geometry.GeoJSONType())
	}
	if len(poly) == 0 {
		return nil, ErrNoPolygon
	}

	ring := poly[0]
	if len(ring) > 1 && ring.Closed() {
		ring = ring[:len(ring)-1]
	}

	points := make([]Point, 0, len(ring))
	for _, c := range ring {
		points = append(points, Point{Latitude: c.Lat(), Longitude: c.Lon()})
	}

	return points, nil
}
