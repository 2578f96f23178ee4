package product

import (
	"strings"
	"unicode/utf8"
)

// Pagination and search bounds for the product listing.
const (
	MaxPageSize     = 60
	MinSearchLength = 2
)

// Sort keys accepted by the listing; anything else falls back to name.
const (
	SortByName    = "name"
	SortByPrice   = "price"
	SortByCreated = "created"
)

// FilterRequest is the multi-dimensional filter for a product listing.
// An empty set on any dimension means "no restriction", not "match nothing".
type FilterRequest struct {
	Search      string
	CategoryIDs []int
	Brands      []string
	PriceMin    *float64
	PriceMax    *float64
	Featured    bool
	Page        int
	Limit       int
	SortBy      string
	Order       string
}

// SearchActive reports whether the free-text dimension applies: the query
// needs at least MinSearchLength characters (runes, not bytes) to count.
func (f FilterRequest) SearchActive() bool {
	return utf8.RuneCountInString(strings.TrimSpace(f.Search)) >= MinSearchLength
}

// normalized clamps pagination and canonicalizes sorting.
func (f FilterRequest) normalized() FilterRequest {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	switch f.SortBy {
	case SortByName, SortByPrice, SortByCreated:
	default:
		f.SortBy = SortByName
	}
	if strings.EqualFold(f.Order, "desc") {
		f.Order = "desc"
	} else {
		f.Order = "asc"
	}
	return f
}
