package types

import "github.com/shopspring/decimal"

// CartItem references a product (and optionally one of its variants) with a
// quantity and the unit price the server captured at add time.
type CartItem struct {
	ID        string          `json:"id"`
	Product   Product         `json:"product"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Cart is the server-owned cart snapshot. Local copies are a read-after-write
// cache: every mutation round-trips through the gateway before the copy is
// replaced.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	UserID    string     `json:"user_id,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
