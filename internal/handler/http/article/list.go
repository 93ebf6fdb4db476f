package article

import (
	"net/http"

	"blogforge/internal/handler/http/respond"
	artUC "blogforge/internal/usecase/article"
)

type ListHandler struct{ Svc *artUC.Service }

// ServeHTTP returns all stored articles, newest first.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toDTO(a))
	}
	respond.JSON(w, http.StatusOK, dtos)
}
