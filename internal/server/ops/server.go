package ops

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/couplediaries/couplediaries/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server runs the ops router on its own address.
type Server struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

// NewServer constructs the ops HTTP server listening on a.
func NewServer(a string, db Pinger, verifier Verifier, l logging.Logger) *Server {
	l = l.With("module", "ops_server")
	return &Server{address: a, handler: NewRouter(db, verifier, l), logger: l}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting ops server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping ops server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
