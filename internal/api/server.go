package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server wraps the HTTP server so main can start and stop it cleanly.
type Server struct {
	router *chi.Mux
	server *http.Server
}

// NewServer creates a server around the configured router.
func NewServer(router *chi.Mux) *Server {
	return &Server{router: router}
}

// ListenAndServe starts serving on addr. Blocks until the server stops.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server, letting in-flight submissions
// finish their transport call.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
