// Package article implements the article use cases: listing, fetching and
// deleting stored articles, and generating new ones from a prompt.
package article

import (
	"context"
	"fmt"
	"log/slog"

	"blogforge/internal/domain/entity"
	"blogforge/internal/infra/generator"
	"blogforge/internal/infra/imagesearch"
	"blogforge/internal/repository"
)

type Service struct {
	repo     repository.ArticleRepository
	gen      generator.Generator
	searcher imagesearch.Searcher
}

func NewService(repo repository.ArticleRepository, gen generator.Generator, searcher imagesearch.Searcher) *Service {
	return &Service{repo: repo, gen: gen, searcher: searcher}
}

// List returns all stored articles, newest first.
func (s *Service) List(ctx context.Context) ([]*entity.Article, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return articles, nil
}

// Get returns the article with the given ID, or ErrArticleNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	if id <= 0 {
		return nil, ErrInvalidArticleID
	}
	article, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// Delete removes the article with the given ID and returns the deleted ID.
// Deleting an ID that does not exist returns ErrArticleNotFound so the
// handler can report 404 rather than a silent success.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, ErrInvalidArticleID
	}
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("Delete: %w", err)
	}
	if !found {
		return 0, ErrArticleNotFound
	}
	return id, nil
}

// Generate produces a full article from the prompt and persists it.
//
// Only prompt validation and the article generation itself are fatal. The
// keyword extraction and image search are best-effort enrichment: if keyword
// extraction fails the raw prompt is used as the search query, and if the
// image search fails the article is stored with no images.
func (s *Service) Generate(ctx context.Context, rawPrompt string) (*entity.Article, error) {
	prompt, err := entity.ValidatePrompt(rawPrompt)
	if err != nil {
		return nil, err
	}

	body, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	article := &entity.Article{
		Title:  prompt,
		Body:   body,
		Images: s.findImages(ctx, prompt),
	}

	if err := s.repo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("Generate: store: %w", err)
	}

	slog.Info("article generated",
		slog.Int64("article_id", article.ID),
		slog.Int("body_len", len(article.Body)),
		slog.Int("images", len(article.Images)))
	return article, nil
}

// GenerateStream validates the prompt and starts a streaming generation.
// Nothing is persisted; the stream is a preview for the client to render
// live. The caller owns the returned stream and must close it.
func (s *Service) GenerateStream(ctx context.Context, rawPrompt string) (generator.TokenStream, error) {
	prompt, err := entity.ValidatePrompt(rawPrompt)
	if err != nil {
		return nil, err
	}

	stream, err := s.gen.Stream(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return stream, nil
}

// findImages resolves illustration URLs for the prompt. Failures degrade to
// an empty slice and are only logged.
func (s *Service) findImages(ctx context.Context, prompt string) []string {
	if s.searcher == nil {
		return []string{}
	}

	query := prompt
	if keywords, err := s.gen.Keywords(ctx, prompt); err != nil {
		slog.Warn("keyword extraction failed, using prompt as search query",
			slog.Any("error", err))
	} else if keywords != "" {
		query = keywords
	}

	images, err := s.searcher.Search(ctx, query)
	if err != nil {
		slog.Warn("image search failed, storing article without images",
			slog.String("query", query),
			slog.Any("error", err))
		return []string{}
	}
	if images == nil {
		images = []string{}
	}
	return images
}
