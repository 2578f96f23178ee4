package category

import (
	"context"
	"strings"
	"sync"

	"github.com/resellerhub/storefront-backend/internal/catpath"
)

// Repository provides read access to the category table. Categories come
// from an external catalog feed and are never written by this service.
type Repository interface {
	// ListRows returns every category with its direct product count.
	ListRows(ctx context.Context) ([]Row, error)
	// PathsByIDs returns the path of each existing id; unknown ids are
	// simply absent from the result.
	PathsByIDs(ctx context.Context, ids []int) (map[int]string, error)
	// IDsByPathPrefixes returns the ids of all categories whose path equals
	// one of the given paths or sits below it in the hierarchy.
	IDsByPathPrefixes(ctx context.Context, paths []string) ([]int, error)
}

// InMemoryRepository is a Repository over a fixed slice of rows, used in
// tests and local seeding.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows []Row
}

func NewInMemoryRepository(rows []Row) *InMemoryRepository {
	return &InMemoryRepository{rows: append([]Row(nil), rows...)}
}

func (r *InMemoryRepository) ListRows(ctx context.Context) ([]Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Row, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *InMemoryRepository) PathsByIDs(ctx context.Context, ids []int) (map[int]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make(map[int]string)
	for _, row := range r.rows {
		if want[row.ID] {
			out[row.ID] = row.Path
		}
	}
	return out, nil
}

func (r *InMemoryRepository) IDsByPathPrefixes(ctx context.Context, paths []string) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int, 0)
	for _, row := range r.rows {
		for _, p := range paths {
			if row.Path == p || strings.HasPrefix(row.Path, p+catpath.Delimiter) {
				out = append(out, row.ID)
				break
			}
		}
	}
	return out, nil
}
