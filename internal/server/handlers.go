// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/woozymasta/landarea/internal/display"
	"github.com/woozymasta/landarea/internal/document"
	"github.com/woozymasta/landarea/internal/geo"
	"github.com/woozymasta/landarea/internal/session"
	"github.com/woozymasta/landarea/internal/store"

	"github.com/rs/zerolog/log"
)

// AreaResponse is the live area state.
type AreaResponse struct {
	Points       []document.NativePoint `json:"points"`
	Display      display.Formatted      `json:"display"`
	Area         geo.Units              `json:"area"`
	SquareMeters float64                `json:"squareMeters"`
	Exportable   bool                   `json:"exportable"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ExportResponse reports where an export was written.
type ExportResponse struct {
	Path string `json:"path"`
}

func areaResponse(s *session.Session) AreaResponse {
	units := s.Units()
	return AreaResponse{
		Points:       document.NativePoints(s.Points()),
		SquareMeters: s.Area(),
		Area:         units,
		Display:      display.Format(units),
		Exportable:   s.Len() >= session.MinExportPoints,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		status = http.StatusInternalServerError
		data, _ = json.Marshal(ErrorResponse{Error: "encode response: " + err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// HandleArea serves the current points and area.
func (s *ServerContext) HandleArea(w http.ResponseWriter, r *http.Request) {
	var resp AreaResponse
	s.withSession(func(sess *session.Session) { resp = areaResponse(sess) })
	writeJSON(w, http.StatusOK, resp)
}

// HandleAddPoint appends one tapped point. It accepts either coordinate naming.
func (s *ServerContext) HandleAddPoint(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, bodyErrorStatus(err), err)
		return
	}

	p, err := document.DecodePoint(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid point: %w", err))
		return
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	var resp AreaResponse
	s.withSession(func(sess *session.Session) {
		sess.Add(p)
		resp = areaResponse(sess)
	})
	writeJSON(w, http.StatusOK, resp)
}

// HandleClearPoints drops the whole point set.
func (s *ServerContext) HandleClearPoints(w http.ResponseWriter, r *http.Request) {
	var resp AreaResponse
	s.withSession(func(sess *session.Session) {
		sess.Clear()
		resp = areaResponse(sess)
	})

	log.Info().Msg("Points cleared")
	writeJSON(w, http.StatusOK, resp)
}

// HandleImport replaces the point set with an uploaded document.
// The format comes from the ?format= query or the Content-Type header.
func (s *ServerContext) HandleImport(w http.ResponseWriter, r *http.Request) {
	format, err := requestFormat(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	data, err := readBody(r)
	if err != nil {
		writeError(w, bodyErrorStatus(err), err)
		return
	}

	var (
		resp      AreaResponse
		importErr error
	)
	s.withSession(func(sess *session.Session) {
		importErr = sess.Import(data, format)
		resp = areaResponse(sess)
	})

	if importErr != nil {
		writeError(w, http.StatusBadRequest, importErr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleDownload serves the export document without writing it to storage.
func (s *ServerContext) HandleDownload(w http.ResponseWriter, r *http.Request) {
	format, err := requestFormat(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.download(w, format)
}

// HandleDownloadGeoJSON serves the polygon as a GeoJSON feature.
func (s *ServerContext) HandleDownloadGeoJSON(w http.ResponseWriter, r *http.Request) {
	s.download(w, document.FormatGeoJSON)
}

func (s *ServerContext) download(w http.ResponseWriter, format document.Format) {
	doc, ok := s.snapshot(w)
	if !ok {
		return
	}

	data, err := document.Encode(doc, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	base := filepath.Base(s.Exporter.Path())
	name := strings.TrimSuffix(base, filepath.Ext(base)) + format.Ext()

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, name))
	_, _ = w.Write(data)
}

// HandleExport writes the export document to storage and shares it.
func (s *ServerContext) HandleExport(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.snapshot(w)
	if !ok {
		return
	}

	// the snapshot is detached, so writing does not hold the session lock
	path, err := s.Exporter.Export(r.Context(), doc)
	if err != nil {
		log.Error().Err(err).Msg("Failed to export points")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, ExportResponse{Path: path})
}

func (s *ServerContext) snapshot(w http.ResponseWriter) (document.Document, bool) {
	var (
		doc document.Document
		err error
	)
	s.withSession(func(sess *session.Session) { doc, err = sess.Snapshot() })

	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrTooFewPoints) {
			status = http.StatusConflict
		}
		writeError(w, status, err)
		return document.Document{}, false
	}

	return doc, true
}

func readBody(r *http.Request) ([]byte, error) {
	return store.ReadLimited(r.Body, store.MaxDocumentSize)
}

func bodyErrorStatus(err error) int {
	if errors.Is(err, store.ErrTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func requestFormat(r *http.Request) (document.Format, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return document.ParseFormat(f)
	}

	ct := r.Header.Get("Content-Type")
	switch {
	case strings.Contains(ct, "geo+json"):
		return document.FormatGeoJSON, nil
	case strings.Contains(ct, "yaml"):
		return document.FormatYAML, nil
	default:
		return document.FormatJSON, nil
	}
}

// HandleIndex serves the embedded web page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// Routes registers every handler on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/area", s.HandleArea)
	mux.HandleFunc("GET /api/points", s.HandleArea)
	mux.HandleFunc("POST /api/points", s.HandleAddPoint)
	mux.HandleFunc("DELETE /api/points", s.HandleClearPoints)
	mux.HandleFunc("POST /api/import", s.HandleImport)
	mux.HandleFunc("GET /api/export", s.HandleDownload)
	mux.HandleFunc("POST /api/export", s.HandleExport)
	mux.HandleFunc("GET /api/export.geojson", s.HandleDownloadGeoJSON)
	mux.HandleFunc("GET /", s.HandleIndex)
	return mux
}
