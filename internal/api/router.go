package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ladle/internal/recipeservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *recipeservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Recipe record set (read-only; records are produced by generate).
	r.Get("/recipes", h.ListRecipes)
	r.Get("/recipes/*", h.GetRecipe)

	// Search and statistics.
	r.Get("/search", h.Search)
	r.Get("/stats", h.Stats)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
