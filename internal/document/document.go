// Package document serializes point sets and their derived area to a portable
// document and reads such documents back.
package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/woozymasta/landarea/internal/geo"

	"github.com/paulmach/orb/geojson"
	"gopkg.in/yaml.v3"
)

// ErrMalformed marks every failure to read a document.
var ErrMalformed = errors.New("malformed document")

// ParseError reports why a document could not be read.
type ParseError struct {
	Err    error
	Format Format
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s document: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ParseError as ErrMalformed.
func (e *ParseError) Is(target error) bool { return target == ErrMalformed }

// Document is a snapshot of a point set and its area. It holds no reference
// to the sequence it was built from.
type Document struct {
	Points []NativePoint `json:"points" yaml:"points"`
	Area   geo.Units     `json:"area" yaml:"area"`
}

// New builds a document from points and their area in square meters.
func New(points []geo.Point, squareMeters float64) Document {
	return Document{
		Points: NativePoints(points),
		Area:   geo.ConvertUnits(squareMeters),
	}
}

// Sequence returns the document points in canonical form.
func (d Document) Sequence() []geo.Point {
	points := make([]geo.Point, 0, len(d.Points))
	for _, p := range d.Points {
		points = append(points, p.Point())
	}
	return points
}

// Encode serializes the document in the given format.
// GeoJSON output carries the polygon and recomputes area properties from it.
func Encode(d Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return json.Marshal(d)
	case FormatYAML:
		return yaml.Marshal(d)
	case FormatGeoJSON:
		return geo.ToFeature(d.Sequence()).MarshalJSON()
	}

	return nil, fmt.Errorf("unknown document format %q", format)
}

type wireDocument struct {
	Points *[]wirePoint `json:"points" yaml:"points"`
}

// Decode reads the point sequence from a document.
// Point objects may use either latitude/longitude or lat/lng keys. The area
// section is ignored since it is always derived from the points. On failure
// no points are returned.
func Decode(data []byte, format Format) ([]geo.Point, error) {
	if format == "" {
		format = FormatJSON
	}

	var (
		doc wireDocument
		err error
	)

	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatGeoJSON:
		return decodeFeature(data)
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}

	if doc.Points == nil {
		return nil, &ParseError{Format: format, Err: errors.New("missing points field")}
	}

	points := make([]geo.Point, 0, len(*doc.Points))
	for i, w := range *doc.Points {
		p, err := w.point()
		if err != nil {
			return nil, &ParseError{Format: format, Err: fmt.Errorf("point %d: %w", i, err)}
		}
		points = append(points, p)
	}

	return points, nil
}

func decodeFeature(data []byte) ([]geo.Point, error) {
	f, err := geojson.UnmarshalFeature(data)
	if err != nil {
		return nil, &ParseError{Format: FormatGeoJSON, Err: err}
	}

	points, err := geo.FromFeature(f)
	if err != nil {
		return nil, &ParseError{Format: FormatGeoJSON, Err: err}
	}
	for i, p := range points {
		if !p.Finite() {
			return nil, &ParseError{Format: FormatGeoJSON, Err: fmt.Errorf("point %d: %w", i, geo.ErrNotFinite)}
		}
	}

	return points, nil
}

// DecodePoint reads a single JSON point object in either naming convention.
func DecodePoint(data []byte) (geo.Point, error) {
	var w wirePoint
	if err := json.Unmarshal(data, &w); err != nil {
		return geo.Point{}, &ParseError{Format: FormatJSON, Err: err}
	}

	p, err := w.point()
	if err != nil {
		return geo.Point{}, &ParseError{Format: FormatJSON, Err: err}
	}

	return p, nil
}
