package featured

import (
	"context"
	"fmt"

	"github.com/resellerhub/storefront-backend/internal/product"
)

// DefaultLimit is how many highlighted products the storefront home page
// shows when the client does not ask for a specific count.
const DefaultLimit = 5

// MaxLimit keeps the endpoint from being used as a bulk export.
const MaxLimit = 24

// Repository lists flagged products, newest first.
type Repository interface {
	ListFeatured(ctx context.Context, limit int) ([]product.Product, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns up to limit featured products. Out-of-range limits fall
// back to DefaultLimit rather than erroring.
func (s *Service) List(ctx context.Context, limit int) ([]product.Product, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	items, err := s.repo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured: %w", err)
	}
	return items, nil
}
