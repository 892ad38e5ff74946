// Package server exposes the layout engine and the entity stores over HTTP.
//
// Routes are versioned under /v1. The two layout endpoints are stateless
// (the block travels in the request body); the entity endpoints are a thin
// CRUD layer over the configured store.
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quantpane/quantpane/pkg/buildinfo"
	"github.com/quantpane/quantpane/pkg/config"
	"github.com/quantpane/quantpane/pkg/pipeline"
	"github.com/quantpane/quantpane/pkg/store"
)

// Server wires the pipeline runner and the store behind the HTTP API.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	solver config.SolverConfig
	logger *log.Logger
}

// New creates a server. A nil logger gets the default logger.
func New(st store.Store, runner *pipeline.Runner, solver config.SolverConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:  st,
		runner: runner,
		solver: solver,
		logger: logger,
	}
}

// Handler builds the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout/solve", s.handleSolve)
		r.Post("/layout/resolve", s.handleResolve)

		mountCRUD(r, "/pages", s.store.Pages())
		mountCRUD(r, "/charts", s.store.Charts())
		mountCRUD(r, "/partners", s.store.Partners())
		mountCRUD(r, "/events", s.store.Events())
		mountCRUD(r, "/syncjobs", s.store.SyncJobs())
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}
