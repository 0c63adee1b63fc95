// Package geo handles geographic points and planar polygon area estimation.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a coordinate falls outside WGS84 bounds.
var ErrOutOfRange = errors.New("coordinate out of range")

// Point is a polygon vertex in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// ErrNotFinite is returned when a coordinate is NaN or infinite.
var ErrNotFinite = errors.New("coordinate is not a finite number")

// Finite reports whether both coordinates are real numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.Latitude) && !math.IsInf(p.Latitude, 0) &&
		!math.IsNaN(p.Longitude) && !math.IsInf(p.Longitude, 0)
}

// Validate checks both coordinates are finite, latitude is within [-90, 90]
// and longitude within [-180, 180].
func (p Point) Validate() error {
	if !p.Finite() {
		return fmt.Errorf("%w: %v", ErrNotFinite, p)
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrOutOfRange, p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrOutOfRange, p.Longitude)
	}

	return nil
}

func (p Point) String() string {
	return fmt.Sprintf("%g,%g", p.Latitude, p.Longitude)
}
