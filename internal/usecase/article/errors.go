package article

import (
	"errors"
	"fmt"

	"blogforge/internal/domain/entity"
)

var (
	// ErrArticleNotFound is returned when the requested article does not exist.
	ErrArticleNotFound = fmt.Errorf("article %w", entity.ErrNotFound)

	// ErrInvalidArticleID is returned when an article ID is not a positive integer.
	ErrInvalidArticleID = fmt.Errorf("%w: article id must be a positive integer", entity.ErrInvalidInput)

	// ErrGenerationFailed is returned when the language model could not
	// produce an article. Validation errors are reported separately; this
	// error always maps to a server-side failure.
	ErrGenerationFailed = errors.New("article generation failed")
)
