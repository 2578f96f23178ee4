package product

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
)

var (
	ErrNotFound = errors.New("product not found")
)

// Repository provides read access to the product store. categoryIDs is the
// expanded descendant closure; catalogMax the current catalog-wide maximum
// price (used to drop a redundant upper bound).
type Repository interface {
	Search(ctx context.Context, f FilterRequest, categoryIDs []int, catalogMax float64) ([]Product, int, error)
	GetByEAN(ctx context.Context, ean string) (Product, error)
	MaxPrice(ctx context.Context) (float64, error)
}

// InMemoryRepository implements Repository over a fixed product slice. It
// mirrors the SQL filter semantics and backs handler and service tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	return &InMemoryRepository{storage: append([]Product(nil), seed...)}
}

func (r *InMemoryRepository) Search(ctx context.Context, f FilterRequest, categoryIDs []int, catalogMax float64) ([]Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f = f.normalized()
	matched := make([]Product, 0)
	for _, p := range r.storage {
		if !matchesFilter(p, f, categoryIDs, catalogMax) {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, f)

	total := len(matched)
	start := (f.Page - 1) * f.Limit
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	page := make([]Product, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func matchesFilter(p Product, f FilterRequest, categoryIDs []int, catalogMax float64) bool {
	if f.SearchActive() {
		term := strings.ToLower(strings.TrimSpace(f.Search))
		name := strings.ToLower(p.Name)
		ean := strings.ToLower(p.EAN)
		sku := ""
		if p.SKU != nil {
			sku = strings.ToLower(*p.SKU)
		}
		if !strings.Contains(name, term) && !strings.Contains(ean, term) && !strings.Contains(sku, term) {
			return false
		}
	}
	if len(categoryIDs) > 0 {
		found := false
		for _, ref := range p.Categories {
			for _, id := range categoryIDs {
				if ref.ID == id {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Brands) > 0 {
		if p.Brand == nil {
			return false
		}
		found := false
		for _, b := range f.Brands {
			if *p.Brand == b {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if f.PriceMin != nil && *f.PriceMin > 0 {
		if p.Price == nil || *p.Price < *f.PriceMin {
			return false
		}
	}
	if f.PriceMax != nil && *f.PriceMax > 0 &&
		math.Abs(*f.PriceMax-catalogMax) > maxPriceTolerance {
		if p.Price == nil || *p.Price > *f.PriceMax {
			return false
		}
	}
	if f.Featured && !p.IsFeatured {
		return false
	}
	return true
}

func sortProducts(items []Product, f FilterRequest) {
	less := func(a, b Product) bool { return a.Name < b.Name }
	switch f.SortBy {
	case SortByPrice:
		less = func(a, b Product) bool {
			// nil prices go last, matching NULLS LAST
			switch {
			case a.Price == nil:
				return false
			case b.Price == nil:
				return true
			default:
				return *a.Price < *b.Price
			}
		}
	case SortByCreated:
		less = func(a, b Product) bool {
			av, bv := "", ""
			if a.CreatedAt != nil {
				av = *a.CreatedAt
			}
			if b.CreatedAt != nil {
				bv = *b.CreatedAt
			}
			return av < bv
		}
	}
	desc := f.Order == "desc"
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if less(a, b) {
			return !desc
		}
		if less(b, a) {
			return desc
		}
		return a.EAN < b.EAN
	})
}

func (r *InMemoryRepository) GetByEAN(ctx context.Context, ean string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.EAN == ean {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) MaxPrice(ctx context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	max := 0.0
	for _, p := range r.storage {
		if p.Price != nil && *p.Price > max {
			max = *p.Price
		}
	}
	return max, nil
}
