// Package coupons validates coupon codes against the server. Eligibility
// rules stay server-side; the client only relays the verdict.
package coupons

import (
	"context"
	"strings"

	"github.com/electrofy/storefront-client/pkg/errors"
	"github.com/electrofy/storefront-client/pkg/types"
	"github.com/shopspring/decimal"
)

type Service interface {
	Validate(ctx context.Context, code string, orderAmount decimal.Decimal) (*types.CouponValidation, error)
}

type Gateway interface {
	ValidateCoupon(ctx context.Context, code string, orderAmount decimal.Decimal) (*types.CouponValidation, error)
}

type service struct {
	gateway Gateway
}

func NewService(gw Gateway) Service {
	return &service{gateway: gw}
}

func (s *service) Validate(ctx context.Context, code string, orderAmount decimal.Decimal) (*types.CouponValidation, error) {
	if s == nil || s.gateway == nil {
		return nil, errors.New(errors.CodeInternal, "coupon gateway unavailable")
	}
	code = strings.TrimSpace(strings.ToUpper(code))
	if code == "" {
		return nil, errors.New(errors.CodeValidation, "coupon code is required")
	}
	if orderAmount.IsNegative() {
		return nil, errors.New(errors.CodeValidation, "order amount must not be negative")
	}
	return s.gateway.ValidateCoupon(ctx, code, orderAmount)
}
