package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lukassup/route-ctl/src/internal/log"
	"github.com/lukassup/route-ctl/src/internal/manager"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
}

// NewServer creates an API server for mgr listening on bindAddr.
func NewServer(mgr *manager.Manager, bindAddr string) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         bindAddr,
			Handler:      NewRouter(NewHandler(mgr)),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start serves requests until the server is stopped.
func (s *Server) Start() error {
	log.Infof("[API] Starting server on %s", s.httpServer.Addr)
	log.Infof("[API] Example: curl http://%s/api/v1/routes", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Stop gracefully stops the API server
func (s *Server) Stop(ctx context.Context) error {
	log.Infof("[API] Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}
