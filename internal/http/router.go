package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lexlocate/internal/handlers"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Locator        handlers.Locator
	DB             *sql.DB
	VectorStore    handlers.CollectionChecker
	CollectionName string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	locateHandler := handlers.NewLocateHandler(deps.Locator)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.VectorStore, deps.CollectionName)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/find_paragraph", locateHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
