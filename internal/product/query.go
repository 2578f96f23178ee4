package product

import (
	"fmt"
	"math"
	"strings"

	"github.com/lib/pq"
)

// maxPriceTolerance decides when a requested upper bound equals the
// catalog-wide maximum. When the UI slider sits at its extreme the bound is
// dropped so products priced exactly at the boundary are not lost to display
// rounding; half a cent of slack covers the float round trip.
const maxPriceTolerance = 0.005

const listColumns = `
	p.ean, p.productid, p.name, p.sku, p.brand, p.shortdescription,
	p.pricegross, p.stockquantity, p.is_featured, p.created_at,
	(SELECT pi.url FROM product_images pi
	 WHERE pi.ean = p.ean
	 ORDER BY pi.is_main DESC, pi.sort_order ASC, pi.imageid ASC
	 LIMIT 1) AS image_url`

// buildWhere translates the recognized filter dimensions into parameterized
// conditions. categoryIDs is the already-expanded descendant closure; the
// caller decides whether the category dimension applies at all.
func buildWhere(f FilterRequest, categoryIDs []int, catalogMax float64) ([]string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.SearchActive() {
		term := "%" + strings.TrimSpace(f.Search) + "%"
		conds = append(conds, fmt.Sprintf(
			"(p.name ILIKE $%d OR p.ean ILIKE $%d OR p.sku ILIKE $%d)",
			len(args)+1, len(args)+2, len(args)+3))
		args = append(args, term, term, term)
	}

	if len(categoryIDs) > 0 {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_ean = p.ean AND pc.category_id = ANY($%d))",
			len(args)+1))
		args = append(args, pq.Array(categoryIDs))
	}

	if len(f.Brands) > 0 {
		conds = append(conds, fmt.Sprintf("p.brand = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(f.Brands))
	}

	// a minimum of zero is the floor of the range, not a real filter
	if f.PriceMin != nil && *f.PriceMin > 0 {
		conds = append(conds, fmt.Sprintf("p.pricegross >= $%d", len(args)+1))
		args = append(args, *f.PriceMin)
	}

	// likewise the maximum is skipped when the slider sits at the catalog max
	if f.PriceMax != nil && *f.PriceMax > 0 &&
		math.Abs(*f.PriceMax-catalogMax) > maxPriceTolerance {
		conds = append(conds, fmt.Sprintf("p.pricegross <= $%d", len(args)+1))
		args = append(args, *f.PriceMax)
	}

	if f.Featured {
		conds = append(conds, "p.is_featured = TRUE")
	}

	return conds, args
}

// BuildListQuery assembles the paged listing query and its ordered
// parameters. Pure translation, no I/O; execution belongs to the repository.
func BuildListQuery(f FilterRequest, categoryIDs []int, catalogMax float64) (string, []any) {
	f = f.normalized()
	conds, args := buildWhere(f, categoryIDs, catalogMax)

	query := "SELECT " + listColumns + "\n\tFROM products p"
	if len(conds) > 0 {
		query += "\n\tWHERE " + strings.Join(conds, " AND ")
	}

	var sortExpr string
	switch f.SortBy {
	case SortByPrice:
		sortExpr = "p.pricegross"
	case SortByCreated:
		sortExpr = "p.created_at"
	default:
		sortExpr = "p.name"
	}
	dir := "ASC"
	if f.Order == "desc" {
		dir = "DESC"
	}
	// EAN tie-break keeps pagination deterministic
	query += fmt.Sprintf("\n\tORDER BY %s %s NULLS LAST, p.ean ASC", sortExpr, dir)

	query += fmt.Sprintf("\n\tLIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	return query, args
}

// BuildCountQuery shares the WHERE clause with BuildListQuery so the page
// count always matches the page contents.
func BuildCountQuery(f FilterRequest, categoryIDs []int, catalogMax float64) (string, []any) {
	f = f.normalized()
	conds, args := buildWhere(f, categoryIDs, catalogMax)
	query := "SELECT COUNT(*) FROM products p"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query, args
}
