package article_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"blogforge/internal/domain/entity"
	"blogforge/internal/infra/generator"
	artUC "blogforge/internal/usecase/article"
)

// stubRepo implements repository.ArticleRepository in memory.
type stubRepo struct {
	createErr   error
	createCalls int
	lastCreated *entity.Article

	articles  []*entity.Article
	getErr    error
	deleteOK  bool
	deleteErr error
}

func (s *stubRepo) Create(_ context.Context, a *entity.Article) error {
	s.createCalls++
	s.lastCreated = a
	if s.createErr != nil {
		return s.createErr
	}
	a.ID = 42
	return nil
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Article, error) {
	return s.articles, nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Article, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, a := range s.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) Delete(_ context.Context, _ int64) (bool, error) {
	return s.deleteOK, s.deleteErr
}

// stubGenerator counts calls so tests can assert the upstream API is never
// reached on validation failures.
type stubGenerator struct {
	generateCalls int
	generateOut   string
	generateErr   error

	keywordsOut string
	keywordsErr error

	streamErr error
	deltas    []string
}

func (g *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.generateCalls++
	return g.generateOut, g.generateErr
}

func (g *stubGenerator) Keywords(_ context.Context, _ string) (string, error) {
	return g.keywordsOut, g.keywordsErr
}

func (g *stubGenerator) Stream(_ context.Context, _ string) (generator.TokenStream, error) {
	if g.streamErr != nil {
		return nil, g.streamErr
	}
	return &sliceStream{deltas: g.deltas}, nil
}

type sliceStream struct {
	deltas []string
	pos    int
}

func (s *sliceStream) Recv() (string, error) {
	if s.pos >= len(s.deltas) {
		return "", io.EOF
	}
	d := s.deltas[s.pos]
	s.pos++
	return d, nil
}

func (s *sliceStream) Close() error { return nil }

type stubSearcher struct {
	lastQuery string
	images    []string
	err       error
}

func (s *stubSearcher) Search(_ context.Context, query string) ([]string, error) {
	s.lastQuery = query
	return s.images, s.err
}

func TestService_Generate(t *testing.T) {
	repo := &stubRepo{}
	gen := &stubGenerator{generateOut: "# Espresso\n\nBody text.", keywordsOut: "espresso coffee"}
	search := &stubSearcher{images: []string{"https://img.test/1"}}
	svc := artUC.NewService(repo, gen, search)

	a, err := svc.Generate(context.Background(), "  the history of espresso ")
	if err != nil {
		t.Fatalf("Generate err=%v", err)
	}
	if a.ID != 42 {
		t.Fatalf("ID=%d, want 42", a.ID)
	}
	// Title is the trimmed prompt
	if a.Title != "the history of espresso" {
		t.Fatalf("Title=%q", a.Title)
	}
	if a.Body != "# Espresso\n\nBody text." {
		t.Fatalf("Body=%q", a.Body)
	}
	if len(a.Images) != 1 {
		t.Fatalf("Images=%v, want one", a.Images)
	}
	// Image search uses the extracted keywords, not the raw prompt
	if search.lastQuery != "espresso coffee" {
		t.Fatalf("search query=%q", search.lastQuery)
	}
}

func TestService_Generate_InvalidPromptSkipsUpstream(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		wantErr error
	}{
		{name: "empty", prompt: "", wantErr: entity.ErrPromptRequired},
		{name: "too short", prompt: "hey", wantErr: entity.ErrPromptTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubRepo{}
			gen := &stubGenerator{}
			svc := artUC.NewService(repo, gen, &stubSearcher{})

			_, err := svc.Generate(context.Background(), tt.prompt)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v, want %v", err, tt.wantErr)
			}
			// A rejected prompt must never reach the model or the store
			if gen.generateCalls != 0 {
				t.Fatalf("generator called %d times", gen.generateCalls)
			}
			if repo.createCalls != 0 {
				t.Fatalf("repo.Create called %d times", repo.createCalls)
			}
		})
	}
}

func TestService_Generate_UpstreamFailure(t *testing.T) {
	repo := &stubRepo{}
	gen := &stubGenerator{generateErr: errors.New("model overloaded")}
	svc := artUC.NewService(repo, gen, &stubSearcher{})

	_, err := svc.Generate(context.Background(), "a valid prompt")
	if !errors.Is(err, artUC.ErrGenerationFailed) {
		t.Fatalf("err=%v, want ErrGenerationFailed", err)
	}
	if repo.createCalls != 0 {
		t.Fatal("nothing should be stored when generation fails")
	}
}

func TestService_Generate_ImageFailureDegrades(t *testing.T) {
	repo := &stubRepo{}
	gen := &stubGenerator{generateOut: "body", keywordsOut: "kw"}
	search := &stubSearcher{err: errors.New("unsplash down")}
	svc := artUC.NewService(repo, gen, search)

	a, err := svc.Generate(context.Background(), "a valid prompt")
	if err != nil {
		t.Fatalf("Generate err=%v", err)
	}
	// The article is stored regardless, with an empty image list
	if len(a.Images) != 0 || a.Images == nil {
		t.Fatalf("Images=%v, want empty non-nil slice", a.Images)
	}
	if repo.createCalls != 1 {
		t.Fatalf("createCalls=%d, want 1", repo.createCalls)
	}
}

func TestService_Generate_KeywordFailureFallsBackToPrompt(t *testing.T) {
	repo := &stubRepo{}
	gen := &stubGenerator{generateOut: "body", keywordsErr: errors.New("keyword call failed")}
	search := &stubSearcher{images: []string{"https://img.test/1"}}
	svc := artUC.NewService(repo, gen, search)

	a, err := svc.Generate(context.Background(), "winter hiking gear")
	if err != nil {
		t.Fatalf("Generate err=%v", err)
	}
	if search.lastQuery != "winter hiking gear" {
		t.Fatalf("search query=%q, want raw prompt", search.lastQuery)
	}
	if len(a.Images) != 1 {
		t.Fatalf("Images=%v", a.Images)
	}
}

func TestService_Generate_NoSearcherConfigured(t *testing.T) {
	repo := &stubRepo{}
	gen := &stubGenerator{generateOut: "body"}
	svc := artUC.NewService(repo, gen, nil)

	a, err := svc.Generate(context.Background(), "a valid prompt")
	if err != nil {
		t.Fatalf("Generate err=%v", err)
	}
	if a.Images == nil || len(a.Images) != 0 {
		t.Fatalf("Images=%v, want empty non-nil slice", a.Images)
	}
}

func TestService_GenerateStream_Validation(t *testing.T) {
	gen := &stubGenerator{deltas: []string{"Hel", "lo"}}
	svc := artUC.NewService(&stubRepo{}, gen, nil)

	if _, err := svc.GenerateStream(context.Background(), "no"); !errors.Is(err, entity.ErrPromptTooShort) {
		t.Fatalf("err=%v, want ErrPromptTooShort", err)
	}

	stream, err := svc.GenerateStream(context.Background(), "a valid prompt")
	if err != nil {
		t.Fatalf("GenerateStream err=%v", err)
	}
	defer func() { _ = stream.Close() }()

	var got []string
	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Recv err=%v", err)
		}
		got = append(got, delta)
	}
	if len(got) != 2 || got[0] != "Hel" || got[1] != "lo" {
		t.Fatalf("deltas=%v", got)
	}
}

func TestService_Get(t *testing.T) {
	stored := &entity.Article{ID: 3, Title: "t", Body: "b"}
	repo := &stubRepo{articles: []*entity.Article{stored}}
	svc := artUC.NewService(repo, &stubGenerator{}, nil)

	got, err := svc.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got.ID != 3 {
		t.Fatalf("ID=%d", got.ID)
	}

	if _, err := svc.Get(context.Background(), 99); !errors.Is(err, artUC.ErrArticleNotFound) {
		t.Fatalf("err=%v, want ErrArticleNotFound", err)
	}

	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, artUC.ErrInvalidArticleID) {
		t.Fatalf("err=%v, want ErrInvalidArticleID", err)
	}
}

func TestService_Delete(t *testing.T) {
	repo := &stubRepo{deleteOK: true}
	svc := artUC.NewService(repo, &stubGenerator{}, nil)

	id, err := svc.Delete(context.Background(), 7)
	if err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if id != 7 {
		t.Fatalf("deleted id=%d, want 7", id)
	}

	repo.deleteOK = false
	if _, err := svc.Delete(context.Background(), 7); !errors.Is(err, artUC.ErrArticleNotFound) {
		t.Fatalf("err=%v, want ErrArticleNotFound", err)
	}
}
