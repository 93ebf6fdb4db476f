package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "abc-123", FromContext(WithRequestID(context.Background(), "abc-123")))
	assert.Equal(t, "", FromContext(context.Background()))
}

func TestMiddleware_TrustsIncomingID(t *testing.T) {
	const incoming = "proxy-assigned-id-456"
	var captured string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(Header, incoming)
	rec := httptest.NewRecorder()

	Middleware(handler).ServeHTTP(rec, req)

	assert.Equal(t, incoming, captured)
	assert.Equal(t, incoming, rec.Header().Get(Header))
}

func TestMiddleware_GeneratesID(t *testing.T) {
	var captured string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	Middleware(handler).ServeHTTP(rec, req)

	require.NotEmpty(t, captured)
	_, err := uuid.Parse(captured)
	require.NoError(t, err, "generated IDs are UUIDs")
	assert.Equal(t, captured, rec.Header().Get(Header))
}
