package article

import (
	"log/slog"
	"net/http"

	artUC "blogforge/internal/usecase/article"
)

// Register registers all article-related HTTP handlers with the given mux.
// The generation routes are wrapped with the supplied rate limiting
// middleware; read and delete routes are registered unwrapped.
func Register(mux *http.ServeMux, svc *artUC.Service, genLimit func(http.Handler) http.Handler, logger *slog.Logger) {
	if genLimit == nil {
		genLimit = func(next http.Handler) http.Handler { return next }
	}

	mux.Handle("GET    /articles", ListHandler{svc})
	mux.Handle("GET    /articles/", GetHandler{svc})
	mux.Handle("DELETE /articles/", DeleteHandler{svc})

	mux.Handle("POST   /articles/generate", genLimit(GenerateHandler{svc}))
	mux.Handle("POST   /articles/generate-stream", genLimit(StreamHandler{Svc: svc, Logger: logger}))
}
