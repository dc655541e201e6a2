package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType distinguishes percentage from fixed-amount coupons.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Coupon mirrors the server's coupon record; eligibility rules stay
// server-side, the client only displays the result of validation.
type Coupon struct {
	ID            string           `json:"id"`
	Code          string           `json:"code"`
	Description   string           `json:"description,omitempty"`
	DiscountType  DiscountType     `json:"discount_type"`
	DiscountValue decimal.Decimal  `json:"discount_value"`
	MinOrderValue *decimal.Decimal `json:"min_order_value,omitempty"`
	MaxDiscount   *decimal.Decimal `json:"max_discount,omitempty"`
	ValidFrom     time.Time        `json:"valid_from"`
	ValidUntil    time.Time        `json:"valid_until"`
	IsActive      bool             `json:"is_active"`
}

// CouponValidation is the server's answer to a validate-coupon request.
type CouponValidation struct {
	Valid    bool            `json:"valid"`
	Coupon   *Coupon         `json:"coupon,omitempty"`
	Discount decimal.Decimal `json:"discount"`
}
