// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/H0llyW00dzZ/certtrust/src/config"
	"github.com/H0llyW00dzZ/certtrust/src/engine"
	"github.com/H0llyW00dzZ/certtrust/src/logger"
)

// Server is the HTTP gateway.
type Server struct {
	cfg config.Server
	log logger.Logger
	srv *http.Server
}

// NewServer creates a server for eng using the server section of its configuration.
func NewServer(eng *engine.Engine, version string) *Server {
	cfg := eng.Config().Server
	return &Server{
		cfg: cfg,
		log: eng.Logger(),
		srv: &http.Server{
			Addr:         cfg.Address,
			Handler:      NewRouter(eng, version),
			ReadTimeout:  cfg.ReadTimeout(),
			WriteTimeout: cfg.WriteTimeout(),
			IdleTimeout:  cfg.IdleTimeout(),
		},
	}
}

// Run listens on the configured address and serves until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends, then shuts down
// gracefully within the configured shutdown timeout.
//
// Returns:
//   - error: nil after a graceful shutdown, otherwise the serve or shutdown error
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.srv.Serve(ln)
	}()
	s.log.Printf("certtrust API listening on http://%s", ln.Addr())

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Printf("shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout())
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	<-errChan
	s.log.Printf("API server stopped")
	return nil
}
