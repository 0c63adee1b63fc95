package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/woozymasta/landarea/internal/document"
)

// MaxDocumentSize caps remote and uploaded documents.
const MaxDocumentSize = 4 << 20

// ErrTooLarge is returned when a document exceeds the size limit.
var ErrTooLarge = errors.New("document too large")

// ReadLimited reads r fully, failing with ErrTooLarge instead of truncating
// when it holds more than limit bytes.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

// IsURL reports whether src names an http(s) resource rather than a file.
func IsURL(src string) bool {
	u, err := url.Parse(src)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch downloads a document. The format is guessed from the URL path.
func Fetch(ctx context.Context, client *http.Client, src string) ([]byte, document.Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := ReadLimited(resp.Body, MaxDocumentSize)
	if err != nil {
		return nil, "", err
	}

	u, _ := url.Parse(src)
	return data, document.FormatFromPath(path.Base(u.Path)), nil
}

// Load reads a document from a URL or a local file.
func Load(ctx context.Context, client *http.Client, src string) ([]byte, document.Format, error) {
	if IsURL(src) {
		return Fetch(ctx, client, src)
	}
	return Read(src)
}
