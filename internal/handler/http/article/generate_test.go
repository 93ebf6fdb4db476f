package article_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	harticle "blogforge/internal/handler/http/article"
	artUC "blogforge/internal/usecase/article"
)

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGenerateHandler(t *testing.T) {
	repo := &stubRepo{}
	gen := &stubGenerator{generateOut: "# Coffee\n\nAn article."}
	svc := artUC.NewService(repo, gen, nil)
	h := harticle.GenerateHandler{Svc: svc}

	rec := postJSON(t, h, "/articles/generate", `{"prompt":"the history of espresso"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200: %s", rec.Code, rec.Body.String())
	}
	var dto harticle.DTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Title != "the history of espresso" {
		t.Fatalf("Title=%q", dto.Title)
	}
	if dto.Body != "# Coffee\n\nAn article." {
		t.Fatalf("Body=%q", dto.Body)
	}
	if dto.Images == nil {
		t.Fatal("Images is nil, want empty array")
	}
	if len(repo.articles) != 1 {
		t.Fatalf("stored %d articles, want 1", len(repo.articles))
	}
}

func TestGenerateHandler_InvalidPrompt(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing prompt", body: `{}`},
		{name: "empty prompt", body: `{"prompt":""}`},
		{name: "too short", body: `{"prompt":"hey"}`},
		{name: "too long", body: `{"prompt":"` + strings.Repeat("x", 181) + `"}`},
		{name: "malformed JSON", body: `{"prompt":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubRepo{}
			gen := &stubGenerator{}
			svc := artUC.NewService(repo, gen, nil)
			h := harticle.GenerateHandler{Svc: svc}

			rec := postJSON(t, h, "/articles/generate", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status=%d, want 400", rec.Code)
			}
			// Invalid input must not consume generation quota
			if gen.generateCalls != 0 {
				t.Fatalf("generator called %d times", gen.generateCalls)
			}
			if len(repo.articles) != 0 {
				t.Fatalf("stored %d articles, want 0", len(repo.articles))
			}
		})
	}
}

func TestGenerateHandler_UpstreamFailure(t *testing.T) {
	gen := &stubGenerator{generateErr: errTest}
	svc := artUC.NewService(&stubRepo{}, gen, nil)
	h := harticle.GenerateHandler{Svc: svc}

	rec := postJSON(t, h, "/articles/generate", `{"prompt":"a valid prompt"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", rec.Code)
	}
	// 500 responses carry a generic message, never upstream detail
	if strings.Contains(rec.Body.String(), "upstream exploded") {
		t.Fatalf("body leaks upstream error: %s", rec.Body.String())
	}
}
