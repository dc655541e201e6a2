package types

import "time"

// WishlistItem wraps a saved product and when it was added.
type WishlistItem struct {
	ID      string    `json:"id"`
	Product Product   `json:"product"`
	AddedAt time.Time `json:"added_at"`
}

// Wishlist is the server-owned wishlist. Unlike the cart it carries no
// computed totals, so mutations patch the local copy instead of reloading.
type Wishlist struct {
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	Items     []WishlistItem `json:"items"`
	IsDefault bool           `json:"is_default"`
}

// Contains reports whether the wishlist already holds the given product.
func (w *Wishlist) Contains(productID string) bool {
	if w == nil {
		return false
	}
	for _, item := range w.Items {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}
