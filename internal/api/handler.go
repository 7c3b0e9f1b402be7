// internal/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	custom_errors "forkfinder/internal/errors"
	"forkfinder/internal/forksort"
	"forkfinder/internal/session"
)

// Handler is the container for API dependencies.
type Handler struct {
	session *session.Session
	fetcher session.Fetcher
	logger  *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
// Routes under /v1/session act on the shared session s; the forks route runs a
// stateless fetch through fetcher.
func NewRouter(s *session.Session, fetcher session.Fetcher, logger *slog.Logger) http.Handler {
	h := &Handler{
		session: s,
		fetcher: fetcher,
		logger:  logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/session", h.getSession)
		r.Post("/session/fetch", h.fetchSession)
		r.Post("/session/sort/{key}", h.sortSession)
		r.Get("/repos/{owner}/{name}/forks", h.getForks)
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getSession returns the current session state.
// GET /v1/session
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.session.Snapshot())
}

type fetchRequest struct {
	Repository string `json:"repository"`
}

// fetchSession runs a fetch cycle on the session. A failed cycle is still a
// 200: its message is part of the returned state.
// POST /v1/session/fetch
func (h *Handler) fetchSession(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body. Expected {\"repository\": \"owner/name\"}.")
		return
	}

	// A started cycle runs to completion even if the caller goes away.
	ctx := context.WithoutCancel(r.Context())
	respondWithJSON(w, http.StatusOK, h.session.Submit(ctx, req.Repository))
}

// sortSession toggles the session's sort on a column.
// POST /v1/session/sort/{key}
func (h *Handler) sortSession(w http.ResponseWriter, r *http.Request) {
	key, err := forksort.ParseKey(chi.URLParam(r, "key"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, h.session.Sort(key))
}

// getForks fetches and sorts the forks of a repository without touching the session.
// GET /v1/repos/{owner}/{name}/forks?sort=stars&direction=desc
func (h *Handler) getForks(w http.ResponseWriter, r *http.Request) {
	repository := chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "name")

	var order forksort.State
	if s := r.URL.Query().Get("sort"); s != "" {
		key, err := forksort.ParseKey(s)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		order.Key = key
	}
	direction, err := forksort.ParseDirection(r.URL.Query().Get("direction"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	order.Direction = direction

	records, err := h.fetcher.Fetch(r.Context(), repository)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadGateway {
			h.logger.Error("Failed to fetch forks", "repository", repository, "error", err)
		}
		respondWithError(w, status, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, forksort.Apply(records, order))
}

// statusFor maps a pipeline error to the status returned to API callers.
func statusFor(err error) int {
	var (
		notFound *custom_errors.ErrNotFound
		limited  *custom_errors.ErrRateLimited
	)
	switch {
	case errors.As(err, &notFound), errors.Is(err, custom_errors.ErrEmptyResult):
		return http.StatusNotFound
	case errors.As(err, &limited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}
