package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects the textual encoding of a document.
type Format string

// Supported formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatGeoJSON Format = "geojson"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatGeoJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}

	return "", fmt.Errorf("unknown document format %q", s)
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	if f, ok := FormatForPath(path); ok {
		return f
	}
	return FormatJSON
}

// FormatForPath reports the format a known file extension stands for.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".geojson":
		return FormatGeoJSON, true
	}
	return "", false
}

// Ext returns the file extension used for the format, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatGeoJSON:
		return ".geojson"
	default:
		return ".json"
	}
}

// ContentType returns the media type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatGeoJSON:
		return "application/geo+json"
	default:
		return "application/json"
	}
}
