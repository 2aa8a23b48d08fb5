// Package server exposes the snap engine over HTTP.
//
// Stateless endpoints (align, distribute) compute and return positions.
// Session endpoints keep one engine per canvas in a session.Store so
// hysteresis survives across requests and server instances. Scene endpoints
// persist canvas documents in a scene.Store.
//
// All request and response bodies are JSON. Errors are returned as
//
//	{"error": {"code": "SESSION_NOT_FOUND", "message": "..."}}
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/canvasnap/pkg/scene"
	"github.com/matzehuels/canvasnap/pkg/session"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	Sessions *session.Manager
	Scenes   scene.Store
	Logger   *log.Logger
}

// Server is the canvasnap HTTP API.
type Server struct {
	sessions *session.Manager
	scenes   scene.Store
	logger   *log.Logger
	router   *chi.Mux
}

// New builds the router. Scenes may be nil, in which case scene routes
// answer 501 and session snaps require explicit siblings.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{
		sessions: opts.Sessions,
		scenes:   opts.Scenes,
		logger:   opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	s.RegisterHTTP(r)
	s.router = r
	return s
}

// RegisterHTTP mounts every route on r.
func (s *Server) RegisterHTTP(r chi.Router) {
	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/align/canvas", s.handleAlignCanvas)
		r.Post("/align/element", s.handleAlignElement)
		r.Post("/distribute", s.handleDistribute)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleCloseSession)
				r.Patch("/settings", s.handleConfigureSession)
				r.Post("/snap", s.handleSnap)
				r.Delete("/elements/{elementID}", s.handleForget)
			})
		})

		r.Route("/scenes/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetScene)
			r.Put("/", s.handlePutScene)
			r.Delete("/", s.handleDeleteScene)
			r.Post("/distribute", s.handleDistributeScene)
		})
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
