// Package store persists export documents and hands them to a share mechanism.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/woozymasta/landarea/internal/document"

	"github.com/rs/zerolog/log"
)

// DefaultName is the export file name, without extension, used when none is
// configured. The extension follows the export format.
const DefaultName = "land-data"

// DefaultFile is the default export file for JSON documents.
const DefaultFile = DefaultName + ".json"

// Exporter writes export documents to a fixed location.
type Exporter struct {
	Sharer Sharer
	Dir    string
	File   string
	Format document.Format

	wg sync.WaitGroup
}

// Path returns the destination file path.
func (e *Exporter) Path() string {
	file := e.File
	if file == "" {
		file = DefaultName + e.Format.Ext()
	}
	return filepath.Join(e.Dir, file)
}

// SetFormat switches the export format. A configured file whose extension
// names another format gets the extension of the new one, so the written
// file is read back in the format it holds.
func (e *Exporter) SetFormat(f document.Format) {
	e.Format = f
	if e.File == "" {
		return
	}
	if cur, ok := document.FormatForPath(e.File); ok && cur != f {
		e.File = strings.TrimSuffix(e.File, filepath.Ext(e.File)) + f.Ext()
	}
}

// Export writes the document and, when a sharer is available, shares the
// written file in the background. Share failures are only logged.
func (e *Exporter) Export(ctx context.Context, doc document.Document) (string, error) {
	data, err := document.Encode(doc, e.Format)
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}

	path := e.Path()
	if err := writeFile(path, data); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	log.Info().
		Str("path", path).
		Int("points", len(doc.Points)).
		Int("bytes", len(data)).
		Msg("Export written")

	e.share(ctx, path)

	return path, nil
}

func (e *Exporter) share(ctx context.Context, path string) {
	if e.Sharer == nil || !e.Sharer.Available() {
		log.Debug().Str("path", path).Msg("Sharing unavailable, skipped")
		return
	}

	// the caller's request may end before the share target returns
	ctx = context.WithoutCancel(ctx)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := e.Sharer.Share(ctx, path); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to share export")
			return
		}
		log.Debug().Str("path", path).Msg("Export shared")
	}()
}

// Wait blocks until background shares started by Export have finished.
func (e *Exporter) Wait() {
	e.wg.Wait()
}

// writeFile replaces path atomically so a failed write never leaves a
// truncated document behind.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

// Read loads a document file and guesses its format from the extension.
func Read(path string) ([]byte, document.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	return data, document.FormatFromPath(path), nil
}
