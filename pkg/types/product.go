package types

import "github.com/shopspring/decimal"

// Product is the catalog entry as the storefront renders it. The server owns
// the authoritative copy; the client never mutates one except for the
// ephemeral IsFavorite display flag.
type Product struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	ImageURL     string           `json:"image_url"`
	Images       []string         `json:"images,omitempty"`
	IsFavorite   bool             `json:"is_favorite"`
	Rating       float64          `json:"rating"`
	RatingsCount int              `json:"ratings_count"`
	InStock      bool             `json:"in_stock"`
	Category     string           `json:"category"`
	Brand        string           `json:"brand,omitempty"`
	Variants     []ProductVariant `json:"variants,omitempty"`
}

// ProductVariant is a purchasable configuration of a product distinguished by
// its attribute map (e.g. {color: red}).
type ProductVariant struct {
	ID             string            `json:"id"`
	SKU            string            `json:"sku"`
	Name           string            `json:"name,omitempty"`
	Attributes     map[string]string `json:"attributes"`
	Price          decimal.Decimal   `json:"price"`
	CompareAtPrice *decimal.Decimal  `json:"compare_at_price,omitempty"`
	Image          string            `json:"image,omitempty"`
	IsDefault      bool              `json:"is_default"`
	IsActive       bool              `json:"is_active"`
}

// Category is a catalog grouping fetched alongside the product list.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	IsActive    bool   `json:"is_active"`
}
