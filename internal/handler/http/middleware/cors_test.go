package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() (http.Handler, *int) {
	calls := new(int)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusOK)
	}), calls
}

func allowlistConfig(patterns ...string) CORSConfig {
	return CORSConfig{
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         86400,
		Validator:      NewPatternValidator(patterns),
		Logger:         NoOpLogger{},
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	next, calls := okHandler()
	h := CORS(allowlistConfig("https://blog.example.com"))(next)

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	req.Header.Set("Origin", "https://blog.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	if *calls != 1 {
		t.Fatalf("handler calls=%d, want 1", *calls)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://blog.example.com" {
		t.Fatalf("Allow-Origin=%q", got)
	}
}

func TestCORS_RejectedOrigin(t *testing.T) {
	next, calls := okHandler()
	h := CORS(allowlistConfig("https://blog.example.com"))(next)

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	req.Header.Set("Origin", "https://evil.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status=%d, want 403", rec.Code)
	}
	// The guard short-circuits; the handler never runs
	if *calls != 0 {
		t.Fatalf("handler calls=%d, want 0", *calls)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["origin"] != "https://evil.com" {
		t.Fatalf("body=%v, want rejected origin echoed", body)
	}
	if body["error"] == "" {
		t.Fatalf("body=%v, want error message", body)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("rejected response must not carry CORS headers")
	}
}

func TestCORS_NoOriginPassesThrough(t *testing.T) {
	next, calls := okHandler()
	h := CORS(allowlistConfig("https://blog.example.com"))(next)

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || *calls != 1 {
		t.Fatalf("status=%d calls=%d", rec.Code, *calls)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("same-origin request should not get CORS headers")
	}
}

func TestCORS_OpenMode(t *testing.T) {
	next, calls := okHandler()
	cfg := CORSConfig{
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
		OpenMode:       true,
		Validator:      AllowAllValidator{},
		Logger:         NoOpLogger{},
	}
	h := CORS(cfg)(next)

	req := httptest.NewRequest(http.MethodGet, "/articles", nil)
	req.Header.Set("Origin", "https://anything.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || *calls != 1 {
		t.Fatalf("status=%d calls=%d", rec.Code, *calls)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://anything.test" {
		t.Fatalf("Allow-Origin=%q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	next, calls := okHandler()
	h := CORS(allowlistConfig("https://blog.example.com"))(next)

	req := httptest.NewRequest(http.MethodOptions, "/articles/generate", nil)
	req.Header.Set("Origin", "https://blog.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status=%d, want 204", rec.Code)
	}
	if *calls != 0 {
		t.Fatal("preflight must not reach the handler")
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("missing Allow-Methods on preflight")
	}
	if rec.Header().Get("Access-Control-Max-Age") != "86400" {
		t.Fatalf("Max-Age=%q", rec.Header().Get("Access-Control-Max-Age"))
	}
}
