package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(h *Handler, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Ordered rule list; array position is priority.
	r.Get("/rules", h.ListRules)
	r.Post("/rules", h.CreateRule)
	r.Post("/rules/reorder", h.ReorderRules)
	r.Put("/rules/{index}", h.UpdateRule)
	r.Delete("/rules/{index}", h.DeleteRule)
	r.Post("/rules/{index}/enabled", h.SetRuleEnabled)

	// Excluded folders.
	r.Get("/exclusions", h.ListExclusions)
	r.Put("/exclusions", h.SetExclusions)

	// Organization runs.
	r.Post("/organize", h.Organize)
	r.Get("/organize/preview", h.Preview)

	// Run history.
	r.Get("/status", h.Status)
	r.Get("/runs", h.ListRuns)
	r.Get("/runs/{id}/moves", h.RunMoves)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
