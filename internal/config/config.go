// Package config handles configuration loading.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/woozymasta/landarea/internal/document"
	"github.com/woozymasta/landarea/internal/store"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Export Export `yaml:"export"`
	Share  Share  `yaml:"share,omitempty"`
}

// Export controls where and how export documents are written.
// An empty File means land-data with the extension of Format.
type Export struct {
	Dir    string          `yaml:"dir,omitempty"`
	File   string          `yaml:"file,omitempty"`
	Format document.Format `yaml:"format,omitempty"`
}

// Share configures the command an export is handed to, e.g. ["xdg-open"].
// Sharing is disabled when the command is empty.
type Share struct {
	Command []string `yaml:"command,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Export: Export{
			Dir:    ".",
			Format: document.FormatJSON,
		},
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// If optional is set a missing file yields the defaults.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	// follows export.file unless set explicitly
	cfg.Export.Format = ""
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) normalize() error {
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Export.Format == "" {
		c.Export.Format = document.FormatFromPath(c.Export.File)
	}

	format, err := document.ParseFormat(string(c.Export.Format))
	if err != nil {
		return err
	}
	c.Export.Format = format

	if ext, ok := document.FormatForPath(c.Export.File); ok && ext != format {
		return fmt.Errorf("export file %q does not match export format %s", c.Export.File, format)
	}

	return nil
}

// Exporter builds the exporter described by the configuration.
func (c *Config) Exporter() *store.Exporter {
	return &store.Exporter{
		Dir:    c.Export.Dir,
		File:   c.Export.File,
		Format: c.Export.Format,
		Sharer: store.NewSharer(c.Share.Command),
	}
}
