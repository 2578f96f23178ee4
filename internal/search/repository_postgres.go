package search

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

// Matches on name, EAN and both descriptions; ranks name hits above EAN
// hits above description hits so the typeahead surfaces exact products
// before incidental mentions.
const searchQuery = `
	SELECT p.ean, p.name, p.brand, p.pricegross,
	       (SELECT url FROM product_images i
	        WHERE i.ean = p.ean ORDER BY is_main DESC, sort_order ASC LIMIT 1) AS image_url,
	       CASE
	         WHEN p.name ILIKE $1 THEN 4
	         WHEN p.ean ILIKE $1 THEN 3
	         WHEN p.shortdescription ILIKE $1 THEN 2
	         ELSE 1
	       END AS relevance
	FROM products p
	WHERE p.name ILIKE $1
	   OR p.ean ILIKE $1
	   OR p.shortdescription ILIKE $1
	   OR p.longdescription ILIKE $1
	ORDER BY relevance DESC, p.name ASC
	LIMIT $2
`

func (r *PostgresRepository) Search(ctx context.Context, term string, limit int) ([]product.Product, error) {
	rows, err := r.db.QueryContext(ctx, searchQuery, "%"+term+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	out := make([]product.Product, 0)
	for rows.Next() {
		var (
			p         product.Product
			brand     sql.NullString
			price     sql.NullFloat64
			imageURL  sql.NullString
			relevance int
		)
		if err := rows.Scan(&p.EAN, &p.Name, &brand, &price, &imageURL, &relevance); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		if brand.Valid {
			p.Brand = &brand.String
		}
		if price.Valid {
			p.Price = &price.Float64
		}
		if imageURL.Valid {
			p.ImageURL = &imageURL.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
