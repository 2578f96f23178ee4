package category

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/resellerhub/storefront-backend/internal/catpath"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listRowsQuery = `
	SELECT c.categoryid, c.name, c.path, COUNT(pc.product_ean) AS product_count
	FROM categories c
	LEFT JOIN product_categories pc ON c.categoryid = pc.category_id
	GROUP BY c.categoryid, c.name, c.path
	ORDER BY c.path
`

func (r *PostgresRepository) ListRows(ctx context.Context) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, listRowsQuery)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := make([]Row, 0)
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.Name, &row.Path, &row.DirectCount); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) PathsByIDs(ctx context.Context, ids []int) (map[int]string, error) {
	if len(ids) == 0 {
		return map[int]string{}, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT categoryid, path FROM categories WHERE categoryid = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("category paths by ids: %w", err)
	}
	defer rows.Close()

	out := make(map[int]string, len(ids))
	for rows.Next() {
		var id int
		var path string
		if err := rows.Scan(&id, &path); err != nil {
			return nil, fmt.Errorf("scan category path: %w", err)
		}
		out[id] = path
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category paths by ids: %w", err)
	}
	return out, nil
}

// IDsByPathPrefixes matches whole segments only: the prefix `Tools` matches
// `Tools` and `Tools\Drills` but never `ToolsExtra`.
func (r *PostgresRepository) IDsByPathPrefixes(ctx context.Context, paths []string) ([]int, error) {
	if len(paths) == 0 {
		return []int{}, nil
	}

	conds := make([]string, 0, len(paths))
	args := make([]any, 0, len(paths)*2)
	for _, p := range paths {
		conds = append(conds, fmt.Sprintf("(path = $%d OR path LIKE $%d)", len(args)+1, len(args)+2))
		args = append(args, p, escapeLike(p)+`\\`+"%")
	}
	query := `SELECT categoryid FROM categories WHERE ` + strings.Join(conds, " OR ")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("categories by path prefix: %w", err)
	}
	defer rows.Close()

	out := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("categories by path prefix: %w", err)
	}
	return out, nil
}

// escapeLike escapes LIKE metacharacters in a literal path. The path
// delimiter itself is the LIKE escape character, so it doubles too.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, catpath.Delimiter, catpath.Delimiter+catpath.Delimiter)
	s = strings.ReplaceAll(s, "%", catpath.Delimiter+"%")
	s = strings.ReplaceAll(s, "_", catpath.Delimiter+"_")
	return s
}
