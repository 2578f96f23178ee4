package facet

import "github.com/resellerhub/storefront-backend/internal/category"

// PriceRange is the floored/ceiled price span of the catalog, used to bound
// the UI price slider.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Facets lists the distinct values available on every filterable dimension.
type Facets struct {
	Brands     []string            `json:"brands"`
	Price      PriceRange          `json:"price"`
	Categories []*category.Node    `json:"categories"`
	Attributes map[string][]string `json:"attributes"`
}

// NameCount is a flat category name with its product count, used by the
// fallback when the taxonomy feed is absent.
type NameCount struct {
	Name  string
	Count int
}
