// Package main runs the tasktrack HTTP service: an in-memory to-do tracker
// where users register once and then manage their own todos, identified by a
// username header.
//
// Configuration (see internal/config):
//   - TASKTRACK_CONFIG: optional YAML file
//   - TASKTRACK_ADDR: listen address (default ":8080")
//   - TASKTRACK_IDENTITY_HEADER: username header (default "username")
//   - TASKTRACK_LOG_LEVEL: debug, info, warn, error (default "info")
//   - TASKTRACK_READ_HEADER_TIMEOUT, TASKTRACK_SHUTDOWN_TIMEOUT: durations
//
// Example usage:
//
//	TASKTRACK_ADDR=:8080 ./tasktrack
//
//	curl -X POST localhost:8080/users -d '{"name":"Ana","username":"ana"}'
//	curl -X POST localhost:8080/todos -H 'username: ana' \
//	  -d '{"title":"buy milk","deadline":"2024-01-01"}'
//
// All state is lost when the process exits.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/dreamware/tasktrack/internal/api"
	"github.com/dreamware/tasktrack/internal/config"
	"github.com/dreamware/tasktrack/internal/logging"
	"github.com/dreamware/tasktrack/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server failed", "err", err)
	}
}

// run serves until ctx is cancelled, then shuts the server down within the
// configured grace period.
func run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	srv := newHTTPServer(cfg, storage.NewMemoryStore(), logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "identity_header", cfg.IdentityHeader)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

func newHTTPServer(cfg config.Config, store storage.Store, logger *log.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(store, logger, cfg.IdentityHeader),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
