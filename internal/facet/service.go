package facet

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/resellerhub/storefront-backend/internal/category"
)

// CategoryTreeProvider yields the hierarchical taxonomy shown alongside
// the other facet dimensions.
type CategoryTreeProvider interface {
	Tree(ctx context.Context) ([]*category.Node, error)
}

type Service struct {
	repo Repository
	tree CategoryTreeProvider
}

func NewService(repo Repository, tree CategoryTreeProvider) *Service {
	return &Service{repo: repo, tree: tree}
}

// GetFacets assembles every filter dimension in one pass. The four
// scans are independent, so they run concurrently.
func (s *Service) GetFacets(ctx context.Context) (*Facets, error) {
	var (
		brands []string
		min    float64
		max    float64
		attrs  map[string][]string
		nodes  []*category.Node
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		brands, err = s.repo.DistinctBrands(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		min, max, err = s.repo.PriceBounds(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		attrs, err = s.repo.AttributeValues(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		nodes, err = s.tree.Tree(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("collect facets: %w", err)
	}

	if len(nodes) == 0 {
		fallback, err := s.flatCategories(ctx)
		if err != nil {
			return nil, err
		}
		nodes = fallback
	}

	f := &Facets{
		Brands: cleanBrands(brands),
		Price: PriceRange{
			Min: math.Floor(min),
			Max: math.Ceil(max),
		},
		Categories: nodes,
		Attributes: sortAttributes(attrs),
	}
	return f, nil
}

// flatCategories builds a one-level taxonomy from the category names
// stored on products, for stores that never populated the tree tables.
func (s *Service) flatCategories(ctx context.Context) ([]*category.Node, error) {
	names, err := s.repo.FlatCategoryNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("flat categories: %w", err)
	}
	nodes := make([]*category.Node, 0, len(names))
	for _, nc := range names {
		nodes = append(nodes, &category.Node{
			Virtual:     true,
			Name:        nc.Name,
			Path:        nc.Name,
			DirectCount: nc.Count,
			TotalCount:  nc.Count,
		})
	}
	return nodes, nil
}

// cleanBrands drops empty and literal "null" entries that sloppy feeds
// write into the brand column, then sorts the remainder.
func cleanBrands(brands []string) []string {
	seen := make(map[string]bool, len(brands))
	out := make([]string, 0, len(brands))
	for _, b := range brands {
		b = strings.TrimSpace(b)
		if b == "" || strings.EqualFold(b, "null") || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

func sortAttributes(attrs map[string][]string) map[string][]string {
	if attrs == nil {
		return map[string][]string{}
	}
	for name := range attrs {
		sort.Strings(attrs[name])
	}
	return attrs
}
