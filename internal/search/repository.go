package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/resellerhub/storefront-backend/internal/product"
)

// InMemoryRepository ranks a fixed product slice the way the SQL store
// does, for handler and service tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	Products []product.Product
}

func (r *InMemoryRepository) Search(ctx context.Context, term string, limit int) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type ranked struct {
		p         product.Product
		relevance int
	}
	matches := make([]ranked, 0)
	for _, p := range r.Products {
		rel := relevanceOf(p, term)
		if rel == 0 {
			continue
		}
		matches = append(matches, ranked{p: p, relevance: rel})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].relevance != matches[j].relevance {
			return matches[i].relevance > matches[j].relevance
		}
		return matches[i].p.Name < matches[j].p.Name
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]product.Product, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.p)
	}
	return out, nil
}

func relevanceOf(p product.Product, term string) int {
	switch {
	case containsFold(p.Name, term):
		return 4
	case containsFold(p.EAN, term):
		return 3
	case p.ShortDescription != nil && containsFold(*p.ShortDescription, term):
		return 2
	case p.LongDescription != nil && containsFold(*p.LongDescription, term):
		return 1
	}
	return 0
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
