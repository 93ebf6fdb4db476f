package article

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"blogforge/internal/handler/http/respond"
	"blogforge/internal/observability/logging"
	artUC "blogforge/internal/usecase/article"
)

// streamErrorSentinel is the single event emitted when the upstream stream
// fails after the SSE response has started. No detail is attached; the full
// error goes to the log instead.
const streamErrorSentinel = "ERROR: Stream failed"

type StreamHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// ServeHTTP streams a generation preview over Server-Sent Events.
//
// Validation runs before the stream starts, so a bad prompt is an ordinary
// 400 JSON response. Once streaming begins the status is already committed:
// each upstream delta is relayed as one `data:` event in receipt order, a
// successful generation ends with the `[DONE]` sentinel, and an upstream
// failure ends with a single generic error event. Nothing is persisted
// either way.
//
// The request context is bound to the upstream call, so a client disconnect
// cancels the in-flight generation.
func (h StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	stream, err := h.Svc.GenerateStream(r.Context(), req.Prompt)
	if err != nil {
		code := http.StatusInternalServerError
		if isValidationError(err) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}
	defer func() { _ = stream.Close() }()

	flusher, ok := w.(http.Flusher)
	if !ok {
		respond.SafeError(w, http.StatusInternalServerError,
			errors.New("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	logger := logging.WithRequestID(r.Context(), h.Logger)

	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			fmt.Fprint(w, "data: [DONE]\n\n")
			flusher.Flush()
			return
		}
		if err != nil {
			logger.Error("generation stream failed",
				slog.Any("error", err))
			fmt.Fprintf(w, "data: %s\n\n", streamErrorSentinel)
			flusher.Flush()
			return
		}

		fmt.Fprintf(w, "data: %s\n\n", delta)
		flusher.Flush()
	}
}
