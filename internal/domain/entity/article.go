// Package entity defines the core domain entities and validation logic for the
// application. It contains the Article record produced by the generation
// pipeline, along with prompt validation rules and domain-specific errors.
package entity

import "time"

// MaxArticleImages is the maximum number of illustration URLs stored per article.
const MaxArticleImages = 3

// Article represents a generated blog article persisted by the system.
// An article is immutable once created: it is only ever read or deleted
// as a whole, never updated.
type Article struct {
	ID        int64
	Title     string
	Body      string
	Images    []string
	CreatedAt time.Time
}
