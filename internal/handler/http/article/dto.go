// Package article provides HTTP handlers for article-related endpoints.
// It includes handlers for listing, fetching, deleting, and generating articles,
// plus the SSE streaming preview.
package article

import (
	"time"

	"blogforge/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(a *entity.Article) DTO {
	images := a.Images
	if images == nil {
		images = []string{}
	}
	return DTO{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		Images:    images,
		CreatedAt: a.CreatedAt,
	}
}
