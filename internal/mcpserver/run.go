// ABOUTME: HTTP server lifecycle: listen, wait for cancellation, drain.
// ABOUTME: Graceful shutdown gets a fresh context with a fixed timeout.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// shutdownTimeout bounds the graceful drain on exit.
const shutdownTimeout = 5 * time.Second

// Serve runs the MCP HTTP server on addr until ctx is canceled or the
// listener fails.
func (s *Server) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		s.logger.Error("server error", "error", serveErr)
	}

	// The run context is already canceled here so shutdown gets its own.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := srv.Shutdown(shutdownCtx)

	if serveErr != nil {
		return serveErr
	}
	return shutdownErr
}
