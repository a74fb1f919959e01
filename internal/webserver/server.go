// Package webserver provides the HTTP front end: a question form, a result
// page rendered from the crew's markdown report, and a health endpoint.
package webserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// QuestionRunner runs the full pipeline for one question. Satisfied by
// *crew.Crew; tests substitute fakes.
type QuestionRunner interface {
	Kickoff(ctx context.Context, question string) (string, error)
}

// Config holds the HTTP server configuration.
type Config struct {
	Addr   string
	Crew   QuestionRunner
	Logger *slog.Logger
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg    Config
	srv    *http.Server
	logger *slog.Logger
}

// New creates a new HTTP server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Crew == nil {
		return nil, fmt.Errorf("webserver: a QuestionRunner is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8000"
	}

	mux := http.NewServeMux()
	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	if err := registerRoutes(mux, cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// ListenAndServe starts the HTTP server and shuts it down gracefully when
// the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("HTTP server starting", "address", s.srv.Addr)

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "error", err)
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Handler returns the underlying http.Handler (useful for testing).
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
