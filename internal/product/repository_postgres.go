package product

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Search(ctx context.Context, f FilterRequest, categoryIDs []int, catalogMax float64) ([]Product, int, error) {
	listQuery, listArgs := BuildListQuery(f, categoryIDs, catalogMax)
	countQuery, countArgs := BuildCountQuery(f, categoryIDs, catalogMax)

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanListRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return out, total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListRow(scanner rowScanner) (Product, error) {
	var (
		p         Product
		productID sql.NullInt64
		sku       sql.NullString
		brand     sql.NullString
		shortDesc sql.NullString
		price     sql.NullFloat64
		stock     sql.NullInt64
		createdAt sql.NullString
		imageURL  sql.NullString
	)
	if err := scanner.Scan(
		&p.EAN, &productID, &p.Name, &sku, &brand, &shortDesc,
		&price, &stock, &p.IsFeatured, &createdAt, &imageURL,
	); err != nil {
		return Product{}, err
	}
	if productID.Valid {
		v := int(productID.Int64)
		p.ProductID = &v
	}
	if sku.Valid {
		p.SKU = &sku.String
	}
	if brand.Valid {
		p.Brand = &brand.String
	}
	if shortDesc.Valid {
		p.ShortDescription = &shortDesc.String
	}
	if price.Valid {
		p.Price = &price.Float64
	}
	if stock.Valid {
		v := int(stock.Int64)
		p.StockQuantity = &v
	}
	if createdAt.Valid {
		p.CreatedAt = &createdAt.String
	}
	if imageURL.Valid {
		p.ImageURL = &imageURL.String
	}
	return p, nil
}

const getByEANQuery = `
	SELECT p.ean, p.productid, p.name, p.sku, p.brand, p.shortdescription,
	       p.longdescription, p.pricegross, p.stockquantity, p.is_featured,
	       p.created_at
	FROM products p
	WHERE p.ean = $1
`

func (r *PostgresRepository) GetByEAN(ctx context.Context, ean string) (Product, error) {
	var (
		p         Product
		productID sql.NullInt64
		sku       sql.NullString
		brand     sql.NullString
		shortDesc sql.NullString
		longDesc  sql.NullString
		price     sql.NullFloat64
		stock     sql.NullInt64
		createdAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx, getByEANQuery, ean).Scan(
		&p.EAN, &productID, &p.Name, &sku, &brand, &shortDesc,
		&longDesc, &price, &stock, &p.IsFeatured, &createdAt,
	)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("get product %s: %w", ean, err)
	}
	if productID.Valid {
		v := int(productID.Int64)
		p.ProductID = &v
	}
	if sku.Valid {
		p.SKU = &sku.String
	}
	if brand.Valid {
		p.Brand = &brand.String
	}
	if shortDesc.Valid {
		p.ShortDescription = &shortDesc.String
	}
	if longDesc.Valid {
		p.LongDescription = &longDesc.String
	}
	if price.Valid {
		p.Price = &price.Float64
	}
	if stock.Valid {
		v := int(stock.Int64)
		p.StockQuantity = &v
	}
	if createdAt.Valid {
		p.CreatedAt = &createdAt.String
	}

	if p.Images, err = r.imagesByEAN(ctx, ean); err != nil {
		return Product{}, err
	}
	if p.Categories, err = r.categoriesByEAN(ctx, ean); err != nil {
		return Product{}, err
	}
	if p.Attributes, err = r.attributesByEAN(ctx, ean); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) imagesByEAN(ctx context.Context, ean string) ([]Image, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT url, alt, is_main, sort_order FROM product_images
		 WHERE ean = $1 ORDER BY is_main DESC, sort_order ASC, imageid ASC`, ean)
	if err != nil {
		return nil, fmt.Errorf("product images %s: %w", ean, err)
	}
	defer rows.Close()

	out := make([]Image, 0)
	for rows.Next() {
		var img Image
		var alt sql.NullString
		if err := rows.Scan(&img.URL, &alt, &img.IsMain, &img.SortOrder); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		if alt.Valid {
			img.Alt = &alt.String
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) categoriesByEAN(ctx context.Context, ean string) ([]CategoryRef, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.categoryid, c.name, c.path
		 FROM categories c
		 JOIN product_categories pc ON c.categoryid = pc.category_id
		 WHERE pc.product_ean = $1
		 ORDER BY c.path`, ean)
	if err != nil {
		return nil, fmt.Errorf("product categories %s: %w", ean, err)
	}
	defer rows.Close()

	out := make([]CategoryRef, 0)
	for rows.Next() {
		var ref CategoryRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Path); err != nil {
			return nil, fmt.Errorf("scan product category: %w", err)
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) attributesByEAN(ctx context.Context, ean string) ([]Attribute, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, value FROM product_attributes WHERE ean = $1 ORDER BY name, value`, ean)
	if err != nil {
		return nil, fmt.Errorf("product attributes %s: %w", ean, err)
	}
	defer rows.Close()

	out := make([]Attribute, 0)
	for rows.Next() {
		var a Attribute
		if err := rows.Scan(&a.Name, &a.Value); err != nil {
			return nil, fmt.Errorf("scan product attribute: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) MaxPrice(ctx context.Context) (float64, error) {
	var max sql.NullFloat64
	if err := r.db.QueryRowContext(ctx,
		`SELECT MAX(pricegross) FROM products`).Scan(&max); err != nil {
		return 0, fmt.Errorf("catalog max price: %w", err)
	}
	if !max.Valid {
		return 0, nil
	}
	return max.Float64, nil
}
