package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/woozymasta/landarea/internal/document"
	"github.com/woozymasta/landarea/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSharer struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingSharer) Available() bool { return true }

func (r *recordingSharer) Share(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
	return nil
}

var triangle = []geo.Point{
	{Latitude: 0, Longitude: 0},
	{Latitude: 0, Longitude: 0.001},
	{Latitude: 0.001, Longitude: 0.001},
}

func TestExportWritesDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	e := &Exporter{Dir: dir, Sharer: NopSharer{}}

	path, err := e.Export(context.Background(), document.New(triangle, geo.Area(triangle)))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultFile), path)

	data, format, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, document.FormatJSON, format)

	points, err := document.Decode(data, format)
	require.NoError(t, err)
	assert.Equal(t, triangle, points)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be renamed away")
}

func TestExportOverwrites(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{Dir: dir, File: "plot.yaml", Format: document.FormatYAML}

	_, err := e.Export(context.Background(), document.New(triangle[:1], 0))
	require.NoError(t, err)
	path, err := e.Export(context.Background(), document.New(triangle, geo.Area(triangle)))
	require.NoError(t, err)

	data, format, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, document.FormatYAML, format)

	points, err := document.Decode(data, format)
	require.NoError(t, err)
	assert.Len(t, points, 3)
}

func TestExportShares(t *testing.T) {
	sharer := &recordingSharer{}
	e := &Exporter{Dir: t.TempDir(), Sharer: sharer}

	path, err := e.Export(context.Background(), document.New(triangle, geo.Area(triangle)))
	require.NoError(t, err)
	e.Wait()

	assert.Equal(t, []string{path}, sharer.paths)
}

func TestExportFailsOnUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	e := &Exporter{Dir: filepath.Join(file, "sub")}
	_, err := e.Export(context.Background(), document.New(triangle, geo.Area(triangle)))
	assert.Error(t, err)
}

func TestNewSharer(t *testing.T) {
	assert.IsType(t, NopSharer{}, NewSharer(nil))
	assert.False(t, NewSharer(nil).Available())
	assert.ErrorIs(t, NopSharer{}.Share(context.Background(), "x"), ErrShareUnavailable)

	assert.False(t, CommandSharer{Command: []string{"definitely-not-a-real-share-tool"}}.Available())
}

func TestExportYAMLDefaultFile(t *testing.T) {
	dir := t.TempDir()
	e := &Exporter{Dir: dir, Format: document.FormatYAML}

	path, err := e.Export(context.Background(), document.New(triangle, geo.Area(triangle)))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "land-data.yaml"), path)

	data, format, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, document.FormatYAML, format)

	points, err := document.Decode(data, format)
	require.NoError(t, err)
	assert.Equal(t, triangle, points)
}

func TestSetFormat(t *testing.T) {
	e := &Exporter{Dir: "out"}
	e.SetFormat(document.FormatGeoJSON)
	assert.Equal(t, filepath.Join("out", "land-data.geojson"), e.Path())

	e = &Exporter{Dir: "out", File: "plot.json", Format: document.FormatJSON}
	e.SetFormat(document.FormatYAML)
	assert.Equal(t, filepath.Join("out", "plot.yaml"), e.Path())

	e = &Exporter{Dir: "out", File: "plot.yml", Format: document.FormatYAML}
	e.SetFormat(document.FormatYAML)
	assert.Equal(t, filepath.Join("out", "plot.yml"), e.Path())

	e = &Exporter{Dir: "out", File: "plot.data"}
	e.SetFormat(document.FormatYAML)
	assert.Equal(t, filepath.Join("out", "plot.data"), e.Path())
}
