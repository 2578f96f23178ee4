package facet

import (
	"context"
	"sync"
)

// Repository provides the raw facet scans. Cleaning (placeholder removal,
// ordering, rounding) happens in the service so every store behaves alike.
type Repository interface {
	DistinctBrands(ctx context.Context) ([]string, error)
	PriceBounds(ctx context.Context) (min, max float64, err error)
	AttributeValues(ctx context.Context) (map[string][]string, error)
	// FlatCategoryNames backs the fallback taxonomy derived from the
	// free-text category name on products.
	FlatCategoryNames(ctx context.Context) ([]NameCount, error)
}

// InMemoryRepository serves fixed facet data for tests.
type InMemoryRepository struct {
	mu        sync.RWMutex
	Brands    []string
	MinPrice  float64
	MaxPrice  float64
	Attrs     map[string][]string
	FlatNames []NameCount
}

func (r *InMemoryRepository) DistinctBrands(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.Brands...), nil
}

func (r *InMemoryRepository) PriceBounds(ctx context.Context) (float64, float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.MinPrice, r.MaxPrice, nil
}

func (r *InMemoryRepository) AttributeValues(ctx context.Context) (map[string][]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]string, len(r.Attrs))
	for k, v := range r.Attrs {
		out[k] = append([]string(nil), v...)
	}
	return out, nil
}

func (r *InMemoryRepository) FlatCategoryNames(ctx context.Context) ([]NameCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]NameCount(nil), r.FlatNames...), nil
}
