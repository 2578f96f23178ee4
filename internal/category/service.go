package category

import (
	"context"
	"sort"
)

// Service provides the category taxonomy: the nested tree for listings and
// descendant expansion for product filtering.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Tree builds the nested category tree from the flat feed rows. The tree is
// rebuilt fresh on every call so catalog updates show up immediately.
func (s *Service) Tree(ctx context.Context) ([]*Node, error) {
	rows, err := s.repo.ListRows(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(rows), nil
}

// ExpandIDs widens a category selection to include every descendant
// category, so that selecting a parent covers the whole subtree. Ids with no
// matching category are dropped silently. An empty input returns an empty
// set; it is the caller's job to treat that as "no category filter".
func (s *Service) ExpandIDs(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return []int{}, nil
	}

	pathsByID, err := s.repo.PathsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for id := range pathsByID {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	paths := make([]string, 0, len(pathsByID))
	for _, p := range pathsByID {
		paths = append(paths, p)
	}
	if len(paths) > 0 {
		matches, err := s.repo.IDsByPathPrefixes(ctx, paths)
		if err != nil {
			return nil, err
		}
		for _, id := range matches {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}

	sort.Ints(out)
	return out, nil
}
