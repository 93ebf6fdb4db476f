package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogforge/internal/domain/entity"
	"blogforge/internal/handler/http/respond"
	artUC "blogforge/internal/usecase/article"
)

type GenerateHandler struct{ Svc *artUC.Service }

// generateRequest is the JSON body for both generation endpoints.
type generateRequest struct {
	Prompt string `json:"prompt"`
}

// ServeHTTP generates a full article from the submitted prompt, persists it,
// and returns the stored article. Prompt validation failures are 400; a
// generation or storage failure is 500 with a generic message.
func (h GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	a, err := h.Svc.Generate(r.Context(), req.Prompt)
	if err != nil {
		code := http.StatusInternalServerError
		if !errors.Is(err, artUC.ErrGenerationFailed) && isValidationError(err) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(a))
}

// isValidationError reports whether err is an input failure that the client
// can fix, as opposed to a server-side generation failure. All prompt
// validation sentinels wrap entity.ErrInvalidInput.
func isValidationError(err error) bool {
	return errors.Is(err, entity.ErrInvalidInput)
}
