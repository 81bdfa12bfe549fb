// Package server exposes a dashboard over a small JSON HTTP API.
//
// Every request that touches the dashboard holds one mutex for its whole
// duration, so the Store sees the same single-threaded discipline it gets
// from the CLI.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/deskgrid/pkg/dashboard"
	"github.com/matzehuels/deskgrid/pkg/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server serves one dashboard.
type Server struct {
	mu     sync.Mutex
	svc    *dashboard.Service
	logger *log.Logger
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a server for svc.
func New(svc *dashboard.Service, opts ...Option) *Server {
	s := &Server{svc: svc, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", getVersion)
		r.Get("/dashboard", s.getDashboard)
		r.Post("/operations", s.postOperation)
		r.Get("/occupied", s.getOccupied)
		r.Post("/debug-grid", s.postDebugGrid)

		r.Route("/constraints", func(r chi.Router) {
			r.Get("/", s.listConstraints)
			r.Get("/{type}", s.getConstraints)
		})

		r.Route("/widgets", func(r chi.Router) {
			r.Post("/", s.postWidget)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getWidget)
				r.Delete("/", s.deleteWidget)
				r.Put("/position", s.putPosition)
				r.Put("/size", s.putSize)
				r.Put("/lock", s.putLock)
				r.Put("/settings", s.putSettings)
			})
		})
	})
	return r
}

// withStore runs fn while holding the dashboard lock. It returns the
// service's last save error as seen right after fn.
func (s *Server) withStore(fn func(st *store.Store)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.svc.Store())
	return s.svc.LastSaveError()
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
