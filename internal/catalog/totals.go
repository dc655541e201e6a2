package catalog

import (
	"github.com/electrofy/storefront-client/pkg/types"
	"github.com/shopspring/decimal"
)

// Summary is a cart or order price breakdown.
type Summary struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
}

// Total is subtotal + shipping + tax - discount, clamped at zero so an
// oversized discount never produces a negative amount.
func (s Summary) Total() decimal.Decimal {
	total := s.Subtotal.Add(s.Shipping).Add(s.Tax).Sub(s.Discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Subtotal sums price times quantity across the cart lines.
func Subtotal(items []types.CartItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// Tax computes the cart-view tax as ratePercent of subtotal, rounded once to
// the nearest whole currency unit. Rounding per line would accumulate drift.
func Tax(subtotal decimal.Decimal, ratePercent float64) decimal.Decimal {
	rate := decimal.NewFromFloat(ratePercent).Div(decimal.NewFromInt(100))
	return subtotal.Mul(rate).Round(0)
}

// NewSummary builds the cart-view breakdown from the cart lines and the
// configured tax rate. Shipping and discount start at zero; callers overlay
// shipping quotes and validated coupon discounts.
func NewSummary(items []types.CartItem, taxRatePercent float64) Summary {
	subtotal := Subtotal(items)
	return Summary{
		Subtotal: subtotal,
		Tax:      Tax(subtotal, taxRatePercent),
		Shipping: decimal.Zero,
		Discount: decimal.Zero,
	}
}

// ShippingLabel renders the shipping line, showing "Free" for exactly zero.
func ShippingLabel(shipping decimal.Decimal) string {
	if shipping.IsZero() {
		return "Free"
	}
	return types.FormatINR(shipping)
}
