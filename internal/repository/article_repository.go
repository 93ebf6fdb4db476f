// Package repository defines persistence interfaces for domain entities.
// Concrete implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"blogforge/internal/domain/entity"
)

// ArticleRepository is the persistence gateway for generated articles.
// Articles are write-once: there is no update operation.
type ArticleRepository interface {
	// Create persists a new article and fills in the assigned ID and
	// CreatedAt on the passed entity.
	Create(ctx context.Context, article *entity.Article) error

	// List retrieves all articles ordered by created_at descending.
	List(ctx context.Context) ([]*entity.Article, error)

	// Get retrieves an article by ID.
	// Returns (nil, nil) if the article is not found.
	Get(ctx context.Context, id int64) (*entity.Article, error)

	// Delete removes an article by ID.
	// Returns false if no article with the given ID existed; deleting a
	// missing article is not an error at this layer.
	Delete(ctx context.Context, id int64) (bool, error)
}
