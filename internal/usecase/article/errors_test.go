package article_test

import (
	"errors"
	"testing"

	"blogforge/internal/domain/entity"
	artUC "blogforge/internal/usecase/article"
)

// The usecase sentinels wrap the domain base errors so handlers can classify
// failures without enumerating every variant.
func TestSentinelsWrapDomainErrors(t *testing.T) {
	if !errors.Is(artUC.ErrArticleNotFound, entity.ErrNotFound) {
		t.Fatal("ErrArticleNotFound does not wrap entity.ErrNotFound")
	}
	if !errors.Is(artUC.ErrInvalidArticleID, entity.ErrInvalidInput) {
		t.Fatal("ErrInvalidArticleID does not wrap entity.ErrInvalidInput")
	}
	if errors.Is(artUC.ErrGenerationFailed, entity.ErrInvalidInput) {
		t.Fatal("ErrGenerationFailed must not classify as client input error")
	}
}
