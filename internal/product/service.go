package product

import "context"

// CategoryExpander widens a category selection to its descendant closure.
// Satisfied by category.Service; wired in main.
type CategoryExpander interface {
	ExpandIDs(ctx context.Context, ids []int) ([]int, error)
}

type Service struct {
	repo       Repository
	categories CategoryExpander
}

func NewService(repo Repository, categories CategoryExpander) *Service {
	return &Service{repo: repo, categories: categories}
}

// List runs one filtered, paginated catalog query. A selected category pulls
// in its whole subtree; an empty result page is a normal success.
func (s *Service) List(ctx context.Context, f FilterRequest) (Page, error) {
	f = f.normalized()

	expanded := []int{}
	if len(f.CategoryIDs) > 0 {
		var err error
		expanded, err = s.categories.ExpandIDs(ctx, f.CategoryIDs)
		if err != nil {
			return Page{}, err
		}
		// the filter was requested but matches no known category
		if len(expanded) == 0 {
			return Page{
				Products:    []Product{},
				CurrentPage: f.Page,
			}, nil
		}
	}

	// the catalog-wide max only matters when an upper bound was requested
	catalogMax := 0.0
	if f.PriceMax != nil && *f.PriceMax > 0 {
		var err error
		catalogMax, err = s.repo.MaxPrice(ctx)
		if err != nil {
			return Page{}, err
		}
	}

	items, total, err := s.repo.Search(ctx, f, expanded, catalogMax)
	if err != nil {
		return Page{}, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + f.Limit - 1) / f.Limit
	}
	return Page{
		Products:      items,
		TotalProducts: total,
		TotalPages:    totalPages,
		CurrentPage:   f.Page,
	}, nil
}

// GetByEAN returns the full product detail.
func (s *Service) GetByEAN(ctx context.Context, ean string) (Product, error) {
	return s.repo.GetByEAN(ctx, ean)
}
