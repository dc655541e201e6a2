// Package catalog is the derived-view engine: pure transformations over the
// store's product snapshot. Nothing here mutates its inputs or touches the
// network.
package catalog

import (
	"strings"

	"github.com/electrofy/storefront-client/pkg/types"
	"github.com/shopspring/decimal"
)

// CategoryAll bypasses category filtering and returns the full set.
const CategoryAll = "all"

// FilterByCategory returns the products whose category matches, comparing
// case-insensitively. The "all" sentinel returns a copy of the full set. The
// source slice is never mutated.
func FilterByCategory(products []types.Product, category string) []types.Product {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, CategoryAll) {
		out := make([]types.Product, len(products))
		copy(out, products)
		return out
	}

	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// FilterCriteria narrows a product set. Nil or zero fields are inactive;
// active criteria are conjunctive.
type FilterCriteria struct {
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinRating   *float64
	InStockOnly bool
	// FeaturedOnly keeps products rated 4 and above. The product model has
	// no featured field, so rating is used as a stand-in.
	FeaturedOnly bool
	Brands       []string
}

func (c FilterCriteria) matches(p types.Product) bool {
	if c.MinPrice != nil && p.Price.LessThan(*c.MinPrice) {
		return false
	}
	if c.MaxPrice != nil && p.Price.GreaterThan(*c.MaxPrice) {
		return false
	}
	if c.MinRating != nil && p.Rating < *c.MinRating {
		return false
	}
	if c.InStockOnly && !p.InStock {
		return false
	}
	if c.FeaturedOnly && p.Rating < 4 {
		return false
	}
	if len(c.Brands) > 0 {
		found := false
		for _, brand := range c.Brands {
			if strings.EqualFold(p.Brand, brand) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ApplyCriteria returns the products satisfying every active criterion. The
// result is always a subset of the input and the input is never mutated.
func ApplyCriteria(products []types.Product, criteria FilterCriteria) []types.Product {
	out := make([]types.Product, 0, len(products))
	for _, p := range products {
		if criteria.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// PriceBounds returns the lowest and highest price across the set, for
// seeding the filter panel's range control. ok is false on an empty set.
func PriceBounds(products []types.Product) (min, max decimal.Decimal, ok bool) {
	if len(products) == 0 {
		return decimal.Zero, decimal.Zero, false
	}
	min, max = products[0].Price, products[0].Price
	for _, p := range products[1:] {
		if p.Price.LessThan(min) {
			min = p.Price
		}
		if p.Price.GreaterThan(max) {
			max = p.Price
		}
	}
	return min, max, true
}

// Brands returns the distinct brand names across the set, in first-appearance
// order, skipping blanks.
func Brands(products []types.Product) []string {
	seen := make(map[string]struct{}, len(products))
	var out []string
	for _, p := range products {
		brand := strings.TrimSpace(p.Brand)
		if brand == "" {
			continue
		}
		key := strings.ToLower(brand)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, brand)
	}
	return out
}
