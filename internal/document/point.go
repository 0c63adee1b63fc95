package document

import (
	"errors"

	"github.com/woozymasta/landarea/internal/geo"
)

// NativePoint is the coordinate shape written by the mobile surface and by Encode.
type NativePoint struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// WebPoint is the coordinate shape used by the web surface.
type WebPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// NewNativePoint converts a point to the latitude/longitude shape.
func NewNativePoint(p geo.Point) NativePoint {
	return NativePoint{Latitude: p.Latitude, Longitude: p.Longitude}
}

// Point converts back to the canonical point.
func (p NativePoint) Point() geo.Point {
	return geo.Point{Latitude: p.Latitude, Longitude: p.Longitude}
}

// NewWebPoint converts a point to the lat/lng shape.
func NewWebPoint(p geo.Point) WebPoint {
	return WebPoint{Lat: p.Latitude, Lng: p.Longitude}
}

// Point converts back to the canonical point.
func (p WebPoint) Point() geo.Point {
	return geo.Point{Latitude: p.Lat, Longitude: p.Lng}
}

// NativePoints converts a sequence for output. The result is never nil.
func NativePoints(points []geo.Point) []NativePoint {
	out := make([]NativePoint, 0, len(points))
	for _, p := range points {
		out = append(out, NewNativePoint(p))
	}
	return out
}

// WebPoints converts a sequence to the lat/lng shape. The result is never nil.
func WebPoints(points []geo.Point) []WebPoint {
	out := make([]WebPoint, 0, len(points))
	for _, p := range points {
		out = append(out, NewWebPoint(p))
	}
	return out
}

// wirePoint accepts either naming convention on read.
type wirePoint struct {
	Latitude  *float64 `json:"latitude" yaml:"latitude"`
	Longitude *float64 `json:"longitude" yaml:"longitude"`
	Lat       *float64 `json:"lat" yaml:"lat"`
	Lng       *float64 `json:"lng" yaml:"lng"`
}

func (w wirePoint) point() (geo.Point, error) {
	var p geo.Point
	switch {
	case w.Latitude != nil && w.Longitude != nil:
		p = NativePoint{Latitude: *w.Latitude, Longitude: *w.Longitude}.Point()
	case w.Lat != nil && w.Lng != nil:
		p = WebPoint{Lat: *w.Lat, Lng: *w.Lng}.Point()
	default:
		return geo.Point{}, errors.New("missing coordinates")
	}

	if !p.Finite() {
		return geo.Point{}, geo.ErrNotFinite
	}

	return p, nil
}
