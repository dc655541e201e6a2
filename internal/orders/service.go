// Package orders places and inspects orders. Orders are server-owned and
// fetched per view; nothing here is cached.
package orders

import (
	"context"
	"strings"

	"github.com/electrofy/storefront-client/internal/gateway"
	"github.com/electrofy/storefront-client/pkg/errors"
	"github.com/electrofy/storefront-client/pkg/types"
	"github.com/electrofy/storefront-client/pkg/validate"
)

type Service interface {
	List(ctx context.Context, page, limit int) (*gateway.OrderList, error)
	Get(ctx context.Context, orderID string) (*types.Order, error)
	Place(ctx context.Context, input PlaceInput) (*types.Order, error)
	Cancel(ctx context.Context, orderID, reason string) (*types.Order, error)
}

// PlaceInput creates an order from the current cart.
type PlaceInput struct {
	AddressID     string `json:"address_id" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cod card upi netbanking"`
	CouponCode    string `json:"coupon_code"`
	Notes         string `json:"notes" validate:"max=500"`
}

type Gateway interface {
	ListOrders(ctx context.Context, page, limit int) (*gateway.OrderList, error)
	GetOrder(ctx context.Context, orderID string) (*types.Order, error)
	CreateOrder(ctx context.Context, input gateway.OrderInput) (*types.Order, error)
	CancelOrder(ctx context.Context, orderID, reason string) (*types.Order, error)
}

type service struct {
	gateway Gateway
}

func NewService(gw Gateway) Service {
	return &service{gateway: gw}
}

func (s *service) List(ctx context.Context, page, limit int) (*gateway.OrderList, error) {
	if s == nil || s.gateway == nil {
		return nil, errors.New(errors.CodeInternal, "order gateway unavailable")
	}
	return s.gateway.ListOrders(ctx, page, limit)
}

func (s *service) Get(ctx context.Context, orderID string) (*types.Order, error) {
	if s == nil || s.gateway == nil {
		return nil, errors.New(errors.CodeInternal, "order gateway unavailable")
	}
	if strings.TrimSpace(orderID) == "" {
		return nil, errors.New(errors.CodeValidation, "order id is required")
	}
	return s.gateway.GetOrder(ctx, orderID)
}

func (s *service) Place(ctx context.Context, input PlaceInput) (*types.Order, error) {
	if s == nil || s.gateway == nil {
		return nil, errors.New(errors.CodeInternal, "order gateway unavailable")
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	return s.gateway.CreateOrder(ctx, gateway.OrderInput{
		AddressID:     input.AddressID,
		PaymentMethod: input.PaymentMethod,
		CouponCode:    input.CouponCode,
		Notes:         input.Notes,
	})
}

func (s *service) Cancel(ctx context.Context, orderID, reason string) (*types.Order, error) {
	if s == nil || s.gateway == nil {
		return nil, errors.New(errors.CodeInternal, "order gateway unavailable")
	}
	if strings.TrimSpace(orderID) == "" {
		return nil, errors.New(errors.CodeValidation, "order id is required")
	}
	return s.gateway.CancelOrder(ctx, orderID, reason)
}
