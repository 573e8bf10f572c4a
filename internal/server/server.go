// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-transcriber/internal/logger"
)

const shutdownTimeout = 5 * time.Second

type server struct {
	httpServer *httpServer
	logger     *logger.Logger

	// addr receives the bound address once the listener is up.
	addr chan string
}

// NewServer creates an HTTP server for handler listening on addr.
func NewServer(handler http.Handler, addr string, logger *logger.Logger) (Server, error) {
	if addr == "" {
		return nil, errNoAddress
	}
	if handler == nil {
		return nil, errNoHandler
	}

	logger.Info().Str("address", addr).Msg("creating new server...")

	return &server{
		httpServer: newHTTPServer(handler, addr, logger),
		logger:     logger,
		addr:       make(chan string, 1),
	}, nil
}

// BoundAddress returns the address the server listens on once it is ready,
// or "" if it failed to start or ctx ended first.
func BoundAddress(ctx context.Context, s Server) string {
	srv, ok := s.(*server)
	if !ok {
		return ""
	}
	select {
	case a := <-srv.addr:
		return a
	case <-ctx.Done():
		return ""
	}
}

// Run serves until ctx is done or the process receives SIGTERM, SIGINT or
// SIGQUIT, then shuts the listener down gracefully.
func (s *server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	ready := make(chan string, 1)
	errCh := make(chan error, 1)

	s.logger.Info().Msg("Launching HTTP server")
	go func() {
		errCh <- s.httpServer.serve(ready)
	}()

	if a, ok := <-ready; ok {
		s.logger.Info().Str("address", a).Msg("HTTP server is listening")
		s.addr <- a
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return <-errCh
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpServer.shutdown(ctx)
}
