// Package server exposes one in-memory parking-lot layout over HTTP.
//
// Every request runs under a single mutex, so edits are applied strictly in
// arrival order and each one sees the result of the previous one. After a
// successful edit the layout is optionally written back to its draft file.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lotplan/pkg/buildinfo"
	"github.com/matzehuels/lotplan/pkg/io"
	"github.com/matzehuels/lotplan/pkg/layout"
	"github.com/matzehuels/lotplan/pkg/store"
)

// Options configures a [Server].
type Options struct {
	// Store receives publications. Publishing is unavailable when nil.
	Store store.Store

	// DraftPath, when set, is rewritten after every successful edit.
	DraftPath string

	Logger  *log.Logger
	Metrics *Metrics
}

// Server serves the layout API.
type Server struct {
	mu    sync.Mutex
	state *layout.State

	store     store.Store
	draftPath string
	logger    *log.Logger
	metrics   *Metrics
	router    chi.Router
}

// New wraps state in an HTTP API. The server owns state from now on.
func New(state *layout.State, opts Options) *Server {
	s := &Server{
		state:     state,
		store:     opts.Store,
		draftPath: opts.DraftPath,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.metrics.Spots.Set(float64(state.Len()))
	s.router = s.routes()
	return s
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Get("/layout", s.handleGetLayout)
	r.Get("/layout.svg", s.handleLayoutSVG)
	r.Put("/layout/canvas", s.handleResize)

	r.Post("/spots", s.handleAddSpot)
	r.Route("/spots/{id}", func(r chi.Router) {
		r.Put("/position", s.handleMove)
		r.Post("/rotate", s.handleRotate)
		r.Put("/label", s.handleRelabel)
		r.Delete("/", s.handleRemove)
	})

	r.Get("/suggestion", s.handleSuggest)
	r.Post("/suggestion/accept", s.handleAccept)

	r.Post("/publish", s.handlePublish)
	return r
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
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RequestsTotal.WithLabelValues(route, statusClass(ww.Status())).Inc()
		s.logger.Debug("request", "method", r.Method, "route", route, "status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond))
	})
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Get()})
}

// commit finishes a successful edit: it refreshes the spot gauge and writes
// the draft when autosave is on. Callers hold s.mu.
func (s *Server) commit() {
	s.metrics.Spots.Set(float64(s.state.Len()))
	if s.draftPath == "" {
		return
	}
	if err := io.ExportJSON(s.state, s.draftPath); err != nil {
		s.logger.Error("autosave failed", "path", s.draftPath, "err", err)
	}
}
