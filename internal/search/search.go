package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/resellerhub/storefront-backend/internal/product"
)

// DefaultLimit caps quick-search results. The endpoint backs a typeahead
// box, so a short list is all the client can show anyway.
const DefaultLimit = 20

// ErrQueryTooShort is returned when the search term has fewer than
// product.MinSearchLength characters. Unlike the product listing, which
// silently ignores short terms, the dedicated endpoint rejects them.
var ErrQueryTooShort = errors.New("search query too short")

// Repository ranks products against a free-text term.
type Repository interface {
	Search(ctx context.Context, term string, limit int) ([]product.Product, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Quick returns the most relevant matches for term, best first.
func (s *Service) Quick(ctx context.Context, term string) ([]product.Product, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < product.MinSearchLength {
		return nil, ErrQueryTooShort
	}
	results, err := s.repo.Search(ctx, term, DefaultLimit)
	if err != nil {
		return nil, fmt.Errorf("quick search %q: %w", term, err)
	}
	return results, nil
}
