package facet

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const distinctBrandsQuery = `
	SELECT DISTINCT brand FROM products
	WHERE brand IS NOT NULL AND brand <> '' AND lower(brand) <> 'null'
	ORDER BY brand`

func (r *PostgresRepository) DistinctBrands(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, distinctBrandsQuery)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}
	defer rows.Close()

	var brands []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

const priceBoundsQuery = `SELECT MIN(pricegross), MAX(pricegross) FROM products`

func (r *PostgresRepository) PriceBounds(ctx context.Context) (float64, float64, error) {
	var min, max sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, priceBoundsQuery).Scan(&min, &max); err != nil {
		return 0, 0, fmt.Errorf("query price bounds: %w", err)
	}
	return min.Float64, max.Float64, nil
}

const attributeValuesQuery = `
	SELECT DISTINCT name, value FROM product_attributes
	WHERE name <> '' AND value <> ''
	ORDER BY name, value`

func (r *PostgresRepository) AttributeValues(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, attributeValuesQuery)
	if err != nil {
		return nil, fmt.Errorf("query attributes: %w", err)
	}
	defer rows.Close()

	attrs := make(map[string][]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan attribute: %w", err)
		}
		attrs[name] = append(attrs[name], value)
	}
	return attrs, rows.Err()
}

const flatCategoryNamesQuery = `
	SELECT categoryname, COUNT(*) FROM products
	WHERE categoryname IS NOT NULL AND categoryname <> ''
	GROUP BY categoryname
	ORDER BY categoryname`

func (r *PostgresRepository) FlatCategoryNames(ctx context.Context) ([]NameCount, error) {
	rows, err := r.db.QueryContext(ctx, flatCategoryNamesQuery)
	if err != nil {
		return nil, fmt.Errorf("query category names: %w", err)
	}
	defer rows.Close()

	var names []NameCount
	for rows.Next() {
		var nc NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, fmt.Errorf("scan category name: %w", err)
		}
		names = append(names, nc)
	}
	return names, rows.Err()
}
