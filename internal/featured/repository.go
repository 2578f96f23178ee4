package featured

import (
	"context"
	"sort"
	"sync"

	"github.com/resellerhub/storefront-backend/internal/product"
)

// InMemoryRepository serves a fixed product slice for tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	Products []product.Product
}

func (r *InMemoryRepository) ListFeatured(ctx context.Context, limit int) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]product.Product, 0)
	for _, p := range r.Products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.CreatedAt == nil && b.CreatedAt == nil:
			return a.EAN < b.EAN
		case a.CreatedAt == nil:
			return false
		case b.CreatedAt == nil:
			return true
		case *a.CreatedAt != *b.CreatedAt:
			return *a.CreatedAt > *b.CreatedAt
		}
		return a.EAN < b.EAN
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
