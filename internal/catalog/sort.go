package catalog

import (
	"sort"

	"github.com/electrofy/storefront-client/pkg/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption selects the ordering applied after filtering.
type SortOption string

const (
	SortDefault        SortOption = "default"
	SortPriceLowHigh   SortOption = "price-low-high"
	SortPriceHighLow   SortOption = "price-high-low"
	SortRatingHighLow  SortOption = "rating-high-low"
	SortNameAscending  SortOption = "name-asc"
	SortNameDescending SortOption = "name-desc"
	// SortNewest and SortOldest are accepted but leave the input order
	// untouched: the product model carries no creation timestamp to sort by.
	SortNewest SortOption = "newest"
	SortOldest SortOption = "oldest"
)

// Sort returns the products ordered by the given option. The sort is stable
// and the input slice is never mutated. Unknown options behave like
// SortDefault.
func Sort(products []types.Product, option SortOption) []types.Product {
	out := make([]types.Product, len(products))
	copy(out, products)

	switch option {
	case SortPriceLowHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.LessThan(out[j].Price)
		})
	case SortPriceHighLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price.GreaterThan(out[j].Price)
		})
	case SortRatingHighLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	case SortNameAscending:
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortNameDescending:
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return collator.CompareString(out[i].Name, out[j].Name) > 0
		})
	}
	return out
}
