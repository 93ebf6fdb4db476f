package article_test

import (
	"context"
	"io"

	"blogforge/internal/domain/entity"
	"blogforge/internal/infra/generator"
)

// stubRepo implements repository.ArticleRepository backed by a slice.
type stubRepo struct {
	articles []*entity.Article

	getCalls    int
	deleteCalls int
	createErr   error
}

func (s *stubRepo) Create(_ context.Context, a *entity.Article) error {
	if s.createErr != nil {
		return s.createErr
	}
	a.ID = int64(len(s.articles) + 1)
	s.articles = append(s.articles, a)
	return nil
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Article, error) {
	return s.articles, nil
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Article, error) {
	s.getCalls++
	for _, a := range s.articles {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) (bool, error) {
	s.deleteCalls++
	for i, a := range s.articles {
		if a.ID == id {
			s.articles = append(s.articles[:i], s.articles[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// stubGenerator counts Generate calls and plays back canned deltas for Stream.
type stubGenerator struct {
	generateCalls int
	generateOut   string
	generateErr   error

	streamErr error
	deltas    []string
	recvErr   error // returned after the deltas instead of io.EOF
}

func (g *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.generateCalls++
	return g.generateOut, g.generateErr
}

func (g *stubGenerator) Keywords(_ context.Context, prompt string) (string, error) {
	return prompt, nil
}

func (g *stubGenerator) Stream(_ context.Context, _ string) (generator.TokenStream, error) {
	if g.streamErr != nil {
		return nil, g.streamErr
	}
	return &sliceStream{deltas: g.deltas, finalErr: g.recvErr}, nil
}

type sliceStream struct {
	deltas   []string
	pos      int
	finalErr error
	closed   bool
}

func (s *sliceStream) Recv() (string, error) {
	if s.pos >= len(s.deltas) {
		if s.finalErr != nil {
			return "", s.finalErr
		}
		return "", io.EOF
	}
	d := s.deltas[s.pos]
	s.pos++
	return d, nil
}

func (s *sliceStream) Close() error {
	s.closed = true
	return nil
}
