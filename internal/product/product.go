package product

import "github.com/resellerhub/storefront-backend/internal/auth"

// Product is the catalog product DTO. List responses carry the summary
// fields; GetByEAN fills the detail slices (images, categories, attributes).
type Product struct {
	EAN              string         `json:"ean"`
	ProductID        *int           `json:"productid,omitempty"`
	Name             string         `json:"name"`
	SKU              *string        `json:"sku,omitempty"`
	Brand            *string        `json:"brand,omitempty"`
	ShortDescription *string        `json:"shortdescription,omitempty"`
	LongDescription  *string        `json:"longdescription,omitempty"`
	Price            *float64       `json:"price,omitempty"`
	PriceStatus      string         `json:"priceStatus,omitempty"`
	StockQuantity    *int           `json:"stockQuantity,omitempty"`
	StockStatus      string         `json:"stockStatus,omitempty"`
	IsFeatured       bool           `json:"isFeatured"`
	CreatedAt        *string        `json:"createdAt,omitempty"`
	ImageURL         *string        `json:"imageUrl,omitempty"`
	Images           []Image        `json:"images,omitempty"`
	Categories       []CategoryRef  `json:"categories,omitempty"`
	Attributes       []Attribute    `json:"attributes,omitempty"`
}

// Image is a product image; IsMain marks the listing thumbnail.
type Image struct {
	URL       string  `json:"url"`
	Alt       *string `json:"alt,omitempty"`
	IsMain    bool    `json:"isMain"`
	SortOrder int     `json:"sortOrder"`
}

// CategoryRef is a product's direct category membership.
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Attribute is a dynamic name/value pair from the catalog feed.
type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Sanitize strips the price (and stock) from the payload unless the viewer
// holds the matching permission, and records why the field is missing.
func (p *Product) Sanitize(v auth.Viewer) {
	status := "unauthenticated"
	if v.Authenticated {
		status = "permission_denied"
	}
	if !v.Can(auth.PermViewPrice) {
		p.Price = nil
		p.PriceStatus = status
	}
	if !v.Can(auth.PermViewStock) {
		p.StockQuantity = nil
		p.StockStatus = status
	}
}

// Page is one page of filtered products plus pagination metadata.
type Page struct {
	Products      []Product `json:"products"`
	TotalProducts int       `json:"totalProducts"`
	TotalPages    int       `json:"totalPages"`
	CurrentPage   int       `json:"currentPage"`
	Warnings      []string  `json:"warnings,omitempty"`
}
