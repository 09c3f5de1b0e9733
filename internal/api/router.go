package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ostrem/partmatch/internal/reconcile"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// maxUploadBytes bounds multipart request bodies.
func NewRouter(svc *reconcile.Service, authEnabled bool, token string, sseHandler http.Handler, maxUploadBytes int64) chi.Router {
	h := NewHandler(svc, maxUploadBytes)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Catalog lifecycle.
	r.Get("/catalogs", h.ListCatalogs)
	r.Post("/catalogs", h.UploadCatalog)
	r.Get("/catalogs/{id}", h.GetCatalog)
	r.Put("/catalogs/{id}", h.ReplaceCatalog)
	r.Delete("/catalogs/{id}", h.DeleteCatalog)
	r.Post("/catalogs/{id}/activate", h.ActivateCatalog)

	// Client request set.
	r.Post("/requests", h.UploadRequests)

	// Derived views.
	r.Get("/match", h.Match)
	r.Get("/insights", h.Insights)
	r.Get("/export", h.Export)
	r.Post("/brief", h.Brief)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
