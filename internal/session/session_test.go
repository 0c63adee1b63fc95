package session

import (
	"testing"

	"github.com/woozymasta/landarea/internal/document"
	"github.com/woozymasta/landarea/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var squareCorners = []geo.Point{
	{Latitude: 0, Longitude: 0},
	{Latitude: 0, Longitude: 0.001},
	{Latitude: 0.001, Longitude: 0.001},
	{Latitude: 0.001, Longitude: 0},
}

func TestAddRecomputesArea(t *testing.T) {
	s := New(nil)

	assert.Equal(t, 0.0, s.Add(squareCorners[0]))
	assert.Equal(t, 0.0, s.Add(squareCorners[1]))
	assert.Greater(t, s.Add(squareCorners[2]), 0.0)
	assert.InDelta(t, 12392.12, s.Add(squareCorners[3]), 0.1)
	assert.Equal(t, 4, s.Len())
	assert.InDelta(t, 12392.12*geo.SquareFeetPerSquareMeter, s.Units().SquareFeet, 1)
}

func TestPointsIsCopy(t *testing.T) {
	s := New(squareCorners)

	points := s.Points()
	points[0] = geo.Point{Latitude: 45, Longitude: 45}

	assert.Equal(t, squareCorners, s.Points())
}

func TestImportKeepsStateOnFailure(t *testing.T) {
	s := New(squareCorners)
	before := s.Area()

	err := s.Import([]byte("{ not json"), document.FormatJSON)
	require.Error(t, err)
	assert.ErrorIs(t, err, document.ErrMalformed)

	assert.Equal(t, squareCorners, s.Points())
	assert.Equal(t, before, s.Area())
}

func TestImportReplacesPoints(t *testing.T) {
	s := New([]geo.Point{{Latitude: 5, Longitude: 5}})

	err := s.Import([]byte(`{"points":[{"lat":0,"lng":0},{"lat":0,"lng":0.001},{"lat":0.001,"lng":0.001},{"lat":0.001,"lng":0}]}`), document.FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, squareCorners, s.Points())
	assert.InDelta(t, 12392.12, s.Area(), 0.1)
}

func TestSnapshotRequiresThreePoints(t *testing.T) {
	s := New(squareCorners[:2])

	_, err := s.Snapshot()
	assert.ErrorIs(t, err, ErrTooFewPoints)

	s.Add(squareCorners[2])
	doc, err := s.Snapshot()
	require.NoError(t, err)
	assert.Len(t, doc.Points, 3)
	assert.InDelta(t, s.Units().Acres, doc.Area.Acres, 1e-12)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := New(squareCorners)

	doc, err := s.Snapshot()
	require.NoError(t, err)

	s.Clear()
	assert.Len(t, doc.Points, 4)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0.0, s.Area())
}

func TestExportImportRoundTrip(t *testing.T) {
	s := New(squareCorners)
	doc, err := s.Snapshot()
	require.NoError(t, err)

	data, err := document.Encode(doc, document.FormatJSON)
	require.NoError(t, err)

	other := New(nil)
	require.NoError(t, other.Import(data, document.FormatJSON))
	assert.Equal(t, s.Points(), other.Points())
	assert.Equal(t, s.Area(), other.Area())
}

func TestReplaceCopiesInput(t *testing.T) {
	s := New(nil)

	points := append([]geo.Point(nil), squareCorners...)
	s.Replace(points)
	points[0] = geo.Point{Latitude: 1, Longitude: 1}

	assert.Equal(t, squareCorners, s.Points())
	assert.InDelta(t, 12392.12, s.Area(), 0.1)
}

func TestImportRejectsNaN(t *testing.T) {
	s := New(squareCorners)

	err := s.Import([]byte("points:\n  - lat: .nan\n    lng: 0\n  - lat: 1\n    lng: 1\n  - lat: 0\n    lng: 1\n"), document.FormatYAML)
	assert.ErrorIs(t, err, document.ErrMalformed)

	assert.Equal(t, squareCorners, s.Points())
	assert.InDelta(t, 12392.12, s.Area(), 0.1)
}
