package article

import (
	"errors"
	"net/http"

	"blogforge/internal/handler/http/pathutil"
	"blogforge/internal/handler/http/respond"
	artUC "blogforge/internal/usecase/article"
)

type DeleteHandler struct{ Svc *artUC.Service }

// ServeHTTP deletes the article identified by the path ID and confirms the
// deletion by echoing the removed ID. Deleting an ID that does not exist is
// 404, so a repeated delete of the same article reports success exactly once.
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	deletedID, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, artUC.ErrInvalidArticleID) {
			code = http.StatusBadRequest
		} else if errors.Is(err, artUC.ErrArticleNotFound) {
			code = http.StatusNotFound
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"deletedId": deletedID,
	})
}
