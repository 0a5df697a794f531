// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/lobby/internal/adapters/http/middleware"
	"github.com/okian/lobby/internal/adapters/repository"
	service "github.com/okian/lobby/internal/app"
	"github.com/okian/lobby/internal/domain/icons"
	"github.com/okian/lobby/internal/domain/roster"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CatalogProvider
	SessionDependencies
	StatsProvider
}

// Server wires HTTP routes for the JSON API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	catalogHandler  *CatalogHandler
	sessionsHandler *SessionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, resolver *icons.Resolver) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(deps),
		catalogHandler:  NewCatalogHandler(deps),
		sessionsHandler: NewSessionsHandler(deps, resolver),
	}
}

// Register attaches all API routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}

	r.Get("/healthz", middleware.Metrics(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", middleware.Metrics(s.statsHandler.HandleStats, "stats"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", middleware.Metrics(s.catalogHandler.HandleGetCatalog, "catalog"))
		r.Post("/sessions", middleware.Metrics(s.sessionsHandler.HandleCreate, "sessions"))
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", middleware.Metrics(s.sessionsHandler.HandleGet, "session"))
			r.Put("/slots/{slot}", middleware.Metrics(s.sessionsHandler.HandleSelect, "slot"))
			r.Post("/prediction", middleware.Metrics(s.sessionsHandler.HandlePredict, "prediction"))
			r.Post("/reset", middleware.Metrics(s.sessionsHandler.HandleReset, "reset"))
		})
	})
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// statusOf translates domain sentinels into an HTTP status and error code.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, roster.ErrUnknownSlot),
		errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, roster.ErrUnknownChampion):
		return http.StatusUnprocessableEntity, "unknown_champion"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func kindOf(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		return ErrUnprocessable
	case http.StatusServiceUnavailable:
		return ErrUnavailable
	default:
		return ErrInternal
	}
}
