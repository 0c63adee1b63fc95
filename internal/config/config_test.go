package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/landarea/internal/document"
	"github.com/woozymasta/landarea/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingOptional(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingRequired(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), false)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
export:
  dir: /tmp/exports
  file: plot.yml
share:
  command: [xdg-open]
`)

	cfg, err := Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/exports", cfg.Export.Dir)
	assert.Equal(t, document.FormatYAML, cfg.Export.Format, "format follows the file extension")
	assert.Equal(t, []string{"xdg-open"}, cfg.Share.Command)

	e := cfg.Exporter()
	assert.Equal(t, filepath.Join("/tmp/exports", "plot.yml"), e.Path())
	assert.IsType(t, store.CommandSharer{}, e.Sharer)
}

func TestLoadDefaultsEmptyFields(t *testing.T) {
	cfg, err := Load(writeConfig(t, "export: {}\n"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsFormat(t *testing.T) {
	_, err := Load(writeConfig(t, "export:\n  format: xml\n"), false)
	assert.Error(t, err)
}

func TestLoadFormatNamesDefaultFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "export:\n  format: yaml\n"), false)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(".", "land-data.yaml"), cfg.Exporter().Path())
}

func TestLoadRejectsFileFormatMismatch(t *testing.T) {
	_, err := Load(writeConfig(t, "export:\n  file: plot.json\n  format: yaml\n"), false)
	assert.ErrorContains(t, err, "does not match")
}
