package featured

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/resellerhub/storefront-backend/internal/product"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const listFeaturedQuery = `
	SELECT p.ean, p.name, p.brand, p.pricegross, p.created_at,
	       (SELECT url FROM product_images i
	        WHERE i.ean = p.ean ORDER BY is_main DESC, sort_order ASC LIMIT 1) AS image_url
	FROM products p
	WHERE p.is_featured = TRUE
	ORDER BY p.created_at DESC NULLS LAST, p.ean ASC
	LIMIT $1
`

func (r *PostgresRepository) ListFeatured(ctx context.Context, limit int) ([]product.Product, error) {
	rows, err := r.db.QueryContext(ctx, listFeaturedQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	defer rows.Close()

	out := make([]product.Product, 0, limit)
	for rows.Next() {
		var (
			p         product.Product
			brand     sql.NullString
			price     sql.NullFloat64
			createdAt sql.NullString
			imageURL  sql.NullString
		)
		if err := rows.Scan(&p.EAN, &p.Name, &brand, &price, &createdAt, &imageURL); err != nil {
			return nil, fmt.Errorf("scan featured row: %w", err)
		}
		p.IsFeatured = true
		if brand.Valid {
			p.Brand = &brand.String
		}
		if price.Valid {
			p.Price = &price.Float64
		}
		if createdAt.Valid {
			p.CreatedAt = &createdAt.String
		}
		if imageURL.Valid {
			p.ImageURL = &imageURL.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
