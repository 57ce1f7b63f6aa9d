// Package server runs the long-lived parts of the API under a suture
// supervisor: the HTTP listener, the event consumer and housekeeping.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/prayag-camps/magh-mela-api/internal/logging"
)

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

type HTTPService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

func NewHTTPService(server HTTPServer, shutdownTimeout time.Duration) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve blocks until ctx is done, then shuts the listener down gracefully.
func (s *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}

func (s *HTTPService) String() string {
	return "http-server"
}

// Sweeper runs fn every interval until ctx is done.
type Sweeper struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) (int64, error)
}

func NewSweeper(name string, interval time.Duration, fn func(ctx context.Context) (int64, error)) *Sweeper {
	return &Sweeper{name: name, interval: interval, fn: fn}
}

func (s *Sweeper) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := s.fn(ctx)
			if err != nil {
				logging.Warn().Err(err).Str("service", s.name).Msg("Sweep failed")
				continue
			}
			if n > 0 {
				logging.Debug().Int64("removed", n).Str("service", s.name).Msg("Sweep done")
			}
		}
	}
}

func (s *Sweeper) String() string {
	return s.name
}

// NewSupervisor returns the root supervisor with suture events logged
// through zerolog.
func NewSupervisor(name string) *suture.Supervisor {
	return suture.New(name, suture.Spec{
		EventHook: func(e suture.Event) {
			logging.Warn().Str("supervisor", name).Fields(e.Map()).Msg(e.String())
		},
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   5 * time.Second,
		Timeout:          15 * time.Second,
	})
}
