package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
)

// Server runs the REST API over a plain net/http server so shutdown stays
// under the caller's control.
type Server struct {
	srv    *http.Server
	logger logging.Logger
}

// NewServer builds a Server around the router for the given deps.
func NewServer(cfg config.ServerConfig, deps RouterDeps) *Server {
	deps.Mode = cfg.Mode
	deps.MaxBodySize = cfg.MaxBodySize
	router := NewRouter(deps)

	return &Server{
		logger: deps.Logger.Named("http_server"),
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start blocks serving requests until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info("http server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.srv.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
