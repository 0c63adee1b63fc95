// Package session holds the single active point set and its derived area.
package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/woozymasta/landarea/internal/document"
	"github.com/woozymasta/landarea/internal/geo"

	"github.com/rs/zerolog/log"
)

// MinExportPoints is the smallest point set that may be exported.
const MinExportPoints = 3

// ErrTooFewPoints is returned when exporting a set that encloses no area.
var ErrTooFewPoints = errors.New("at least 3 points are required")

// Session owns the active point sequence. The area is recomputed from scratch
// on every change. A Session is not safe for concurrent use.
type Session struct {
	points []geo.Point
	area   float64
}

// New creates a session seeded with a copy of points.
func New(points []geo.Point) *Session {
	s := &Session{}
	s.install(slices.Clone(points))
	return s
}

func (s *Session) install(points []geo.Point) {
	s.points = points
	s.area = geo.Area(points)
}

// Add appends a point and returns the new area in square meters.
func (s *Session) Add(p geo.Point) float64 {
	next := append(slices.Clone(s.points), p)
	s.install(next)

	log.Debug().
		Stringer("point", p).
		Int("points", len(s.points)).
		Float64("area_m2", s.area).
		Msg("Point added")

	return s.area
}

// Replace swaps the whole sequence for a copy of points.
func (s *Session) Replace(points []geo.Point) {
	s.install(slices.Clone(points))
}

// Clear drops every point.
func (s *Session) Clear() {
	s.install(nil)
}

// Len returns the number of points held.
func (s *Session) Len() int { return len(s.points) }

// Points returns a copy of the current sequence.
func (s *Session) Points() []geo.Point {
	return slices.Clone(s.points)
}

// Area returns the current area in square meters.
func (s *Session) Area() float64 { return s.area }

// Units returns the current area in display units.
func (s *Session) Units() geo.Units { return geo.ConvertUnits(s.area) }

// Import replaces the sequence with the points of a serialized document.
// If the document cannot be read the session is left untouched.
func (s *Session) Import(data []byte, format document.Format) error {
	points, err := document.Decode(data, format)
	if err != nil {
		log.Warn().Err(err).Int("points", len(s.points)).Msg("Import rejected, keeping current points")
		return err
	}

	s.install(points)

	log.Info().
		Int("points", len(points)).
		Float64("area_m2", s.area).
		Msg("Points imported")

	return nil
}

// Snapshot builds an export document from the current state.
func (s *Session) Snapshot() (document.Document, error) {
	if len(s.points) < MinExportPoints {
		return document.Document{}, fmt.Errorf("export %d points: %w", len(s.points), ErrTooFewPoints)
	}

	return document.New(s.points, s.area), nil
}
