package server

import (
	"sync"

	"github.com/woozymasta/landarea/assets"
	"github.com/woozymasta/landarea/internal/geo"
	"github.com/woozymasta/landarea/internal/session"
	"github.com/woozymasta/landarea/internal/store"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
// The server owns one active point set; mu serializes access to it.
type ServerContext struct {
	Exporter  *store.Exporter
	IndexHTML []byte

	mu      sync.Mutex
	session *session.Session
}

// NewServerContext initializes the context with an optional starting point set.
func NewServerContext(exporter *store.Exporter, points []geo.Point) *ServerContext {
	s := &ServerContext{
		Exporter:  exporter,
		IndexHTML: assets.Index,
		session:   session.New(points),
	}

	log.Info().
		Int("points", s.session.Len()).
		Str("export_path", exporter.Path()).
		Bool("share", exporter.Sharer != nil && exporter.Sharer.Available()).
		Msg("Server context initialized")

	return s
}

// withSession runs fn while holding the session lock.
func (s *ServerContext) withSession(fn func(*session.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.session)
}
