package product

import (
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildListQuery_EmptyFilterHasNoWhere(t *testing.T) {
	query, args := BuildListQuery(FilterRequest{}, nil, 0)

	// the image subquery carries its own WHERE; only the top-level
	// clause after FROM must be absent
	if strings.Contains(query, "\n\tWHERE ") {
		t.Fatalf("empty filter produced a WHERE clause:\n%s", query)
	}
	if !strings.Contains(query, "ORDER BY p.name ASC NULLS LAST, p.ean ASC") {
		t.Fatalf("default ordering missing:\n%s", query)
	}
	// only limit and offset bound
	if len(args) != 2 {
		t.Fatalf("expected 2 args (limit, offset), got %v", args)
	}
	if args[0] != MaxPageSize || args[1] != 0 {
		t.Fatalf("default pagination args = %v", args)
	}
}

func TestBuildListQuery_SearchMinimumLength(t *testing.T) {
	query, _ := BuildListQuery(FilterRequest{Search: "h"}, nil, 0)
	if strings.Contains(query, "ILIKE") {
		t.Fatalf("one-character search must not apply:\n%s", query)
	}

	// two bytes but one rune, still under the minimum
	query, _ = BuildListQuery(FilterRequest{Search: "é"}, nil, 0)
	if strings.Contains(query, "ILIKE") {
		t.Fatalf("single-rune search must not apply:\n%s", query)
	}

	query, _ = BuildListQuery(FilterRequest{Search: "éa"}, nil, 0)
	if !strings.Contains(query, "p.name ILIKE") {
		t.Fatalf("two-rune search must apply:\n%s", query)
	}

	query, args := BuildListQuery(FilterRequest{Search: "ha"}, nil, 0)
	if !strings.Contains(query, "p.name ILIKE") || !strings.Contains(query, "p.ean ILIKE") || !strings.Contains(query, "p.sku ILIKE") {
		t.Fatalf("two-character search must match name, ean and sku:\n%s", query)
	}
	if args[0] != "%ha%" {
		t.Fatalf("search term arg = %v", args[0])
	}
}

func TestBuildListQuery_PriceMinZeroIsNoFilter(t *testing.T) {
	query, _ := BuildListQuery(FilterRequest{PriceMin: floatPtr(0)}, nil, 0)
	if strings.Contains(query, "pricegross >=") {
		t.Fatalf("priceMin=0 must not add a lower bound:\n%s", query)
	}

	query, args := BuildListQuery(FilterRequest{PriceMin: floatPtr(10.5)}, nil, 0)
	if !strings.Contains(query, "p.pricegross >= $1") {
		t.Fatalf("missing lower bound:\n%s", query)
	}
	if args[0] != 10.5 {
		t.Fatalf("lower bound arg = %v", args[0])
	}
}

func TestBuildListQuery_PriceMaxAtCatalogMaxIsNoFilter(t *testing.T) {
	catalogMax := 745.92

	query, _ := BuildListQuery(FilterRequest{PriceMax: floatPtr(745.92)}, nil, catalogMax)
	if strings.Contains(query, "pricegross <=") {
		t.Fatalf("priceMax at catalog max must not add an upper bound:\n%s", query)
	}

	// just inside the tolerance still counts as "at the max"
	query, _ = BuildListQuery(FilterRequest{PriceMax: floatPtr(745.9201)}, nil, catalogMax)
	if strings.Contains(query, "pricegross <=") {
		t.Fatalf("priceMax within tolerance of catalog max must not add an upper bound:\n%s", query)
	}

	query, args := BuildListQuery(FilterRequest{PriceMax: floatPtr(500)}, nil, catalogMax)
	if !strings.Contains(query, "p.pricegross <= $1") {
		t.Fatalf("missing upper bound:\n%s", query)
	}
	if args[0] != 500.0 {
		t.Fatalf("upper bound arg = %v", args[0])
	}
}

func TestBuildListQuery_CategoryAndBrandDimensions(t *testing.T) {
	f := FilterRequest{Brands: []string{"Bosch", "Makita"}}
	query, args := BuildListQuery(f, []int{1, 2, 4}, 0)

	if !strings.Contains(query, "pc.category_id = ANY($1)") {
		t.Fatalf("category membership clause missing:\n%s", query)
	}
	if !strings.Contains(query, "p.brand = ANY($2)") {
		t.Fatalf("brand clause missing:\n%s", query)
	}
	// categories array, brands array, limit, offset
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %v", args)
	}
}

func TestBuildListQuery_Pagination(t *testing.T) {
	query, args := BuildListQuery(FilterRequest{Page: 3, Limit: 20}, nil, 0)
	if !strings.Contains(query, "LIMIT $1 OFFSET $2") {
		t.Fatalf("pagination clause missing:\n%s", query)
	}
	if args[0] != 20 || args[1] != 40 {
		t.Fatalf("page 3 limit 20 args = %v, want [20 40]", args)
	}

	// a limit above the cap clamps
	_, args = BuildListQuery(FilterRequest{Limit: 500}, nil, 0)
	if args[0] != MaxPageSize {
		t.Fatalf("limit not capped: %v", args[0])
	}
}

func TestBuildListQuery_SortKeys(t *testing.T) {
	query, _ := BuildListQuery(FilterRequest{SortBy: "price", Order: "desc"}, nil, 0)
	if !strings.Contains(query, "ORDER BY p.pricegross DESC NULLS LAST, p.ean ASC") {
		t.Fatalf("price sort wrong:\n%s", query)
	}

	query, _ = BuildListQuery(FilterRequest{SortBy: "created"}, nil, 0)
	if !strings.Contains(query, "ORDER BY p.created_at ASC") {
		t.Fatalf("created sort wrong:\n%s", query)
	}

	// unknown keys fall back to name, never reach the SQL
	query, _ = BuildListQuery(FilterRequest{SortBy: "evil; DROP TABLE products"}, nil, 0)
	if !strings.Contains(query, "ORDER BY p.name ASC") {
		t.Fatalf("unknown sort key not neutralized:\n%s", query)
	}
}

func TestBuildCountQuery_SharesWhereClause(t *testing.T) {
	f := FilterRequest{Search: "drill", Brands: []string{"Bosch"}}
	listQuery, listArgs := BuildListQuery(f, []int{7}, 0)
	countQuery, countArgs := BuildCountQuery(f, []int{7}, 0)

	if !strings.HasPrefix(countQuery, "SELECT COUNT(*) FROM products p WHERE ") {
		t.Fatalf("unexpected count query:\n%s", countQuery)
	}
	wherePart := countQuery[strings.Index(countQuery, "WHERE"):]
	if !strings.Contains(strings.ReplaceAll(listQuery, "\n\t", " "), strings.ReplaceAll(wherePart, "\n\t", " ")) {
		t.Fatalf("count WHERE diverges from list WHERE:\nlist: %s\ncount: %s", listQuery, countQuery)
	}
	// count has no limit/offset args
	if len(countArgs) != len(listArgs)-2 {
		t.Fatalf("count args %v vs list args %v", countArgs, listArgs)
	}
}
