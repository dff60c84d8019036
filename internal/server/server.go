package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/config"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	http *http.Server
	log  *zap.Logger
}

// New creates a server listening on the configured host and port
func New(cfg *config.Config, handler http.Handler, log *zap.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		log: log,
	}
}

// Addr returns the address the server listens on
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start serves requests until the server is shut down. It returns nil after
// a graceful shutdown.
func (s *Server) Start() error {
	s.log.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown waits up to ten seconds for in-flight requests, bounded by ctx
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
