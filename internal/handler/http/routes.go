package http

import (
	"database/sql"
	"log/slog"
	"net/http"

	harticle "blogforge/internal/handler/http/article"
	"blogforge/internal/handler/http/respond"
	artUC "blogforge/internal/usecase/article"
)

// InfoHandler serves the landing route with basic service information.
type InfoHandler struct {
	Version string
}

func (h InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"service": "blogforge",
		"version": h.Version,
		"endpoints": []string{
			"GET /articles",
			"GET /articles/{id}",
			"DELETE /articles/{id}",
			"POST /articles/generate",
			"POST /articles/generate-stream",
			"GET /health",
			"GET /metrics",
		},
	})
}

// NewRouter builds the ServeMux with all application routes.
// genLimit is the rate limiting middleware applied to generation routes only;
// pass nil to leave them ungated.
func NewRouter(
	database *sql.DB,
	svc *artUC.Service,
	genLimit func(http.Handler) http.Handler,
	version string,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", InfoHandler{Version: version})
	mux.Handle("GET /health", &HealthHandler{DB: database, Version: version})
	mux.Handle("GET /metrics", MetricsHandler())

	harticle.Register(mux, svc, genLimit, logger)

	return mux
}
