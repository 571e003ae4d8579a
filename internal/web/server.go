package web

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"connectivity-monitor/internal/models"
)

// StatusSource reports live monitor state
type StatusSource interface {
	Status() models.Status
}

// SessionSource reads persisted sessions
type SessionSource interface {
	Index() (map[string]models.IndexEntry, error)
	Load(id string) (models.SessionFile, error)
}

// ArchiveSource lists archived sessions
type ArchiveSource interface {
	GetSessions(limit int) ([]models.ArchivedSession, error)
	GetOutages(sessionID string) ([]models.OutageEvent, error)
}

// Server handles web requests
type Server struct {
	status      StatusSource
	sessions    SessionSource
	archive     ArchiveSource
	staticFiles fs.FS
	interval    time.Duration
	upgrader    websocket.Upgrader
	httpServer  *http.Server
}

// New creates a new web server. archive and staticFS may be nil.
func New(status StatusSource, sessions SessionSource, archive ArchiveSource, port int, staticFS fs.FS) *Server {
	s := &Server{
		status:      status,
		sessions:    sessions,
		archive:     archive,
		staticFiles: staticFS,
		interval:    time.Second,
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the routes served by the web server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/sessions", s.handleSessions)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleSession)
	mux.HandleFunc("GET /api/archive", s.handleArchive)
	mux.HandleFunc("GET /api/archive/{id}/outages", s.handleArchivedOutages)
	mux.HandleFunc("GET /ws/status", s.handleStatusStream)

	if s.staticFiles != nil {
		mux.Handle("/", http.FileServer(http.FS(s.staticFiles)))
	}
	return mux
}

// Start starts the web server and blocks until it is shut down
func (s *Server) Start() error {
	log.Printf("Web server starting on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the web server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
