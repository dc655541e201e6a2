package orders

import (
	"context"
	"testing"

	"github.com/electrofy/storefront-client/internal/gateway"
	pkgerrors "github.com/electrofy/storefront-client/pkg/errors"
	"github.com/electrofy/storefront-client/pkg/types"
)

type fakeGateway struct {
	created   []gateway.OrderInput
	cancelled []string
}

func (f *fakeGateway) ListOrders(ctx context.Context, page, limit int) (*gateway.OrderList, error) {
	return &gateway.OrderList{}, nil
}

func (f *fakeGateway) GetOrder(ctx context.Context, orderID string) (*types.Order, error) {
	return &types.Order{ID: orderID}, nil
}

func (f *fakeGateway) CreateOrder(ctx context.Context, input gateway.OrderInput) (*types.Order, error) {
	f.created = append(f.created, input)
	return &types.Order{ID: "o1", OrderNumber: "ORD-1001"}, nil
}

func (f *fakeGateway) CancelOrder(ctx context.Context, orderID, reason string) (*types.Order, error) {
	f.cancelled = append(f.cancelled, orderID)
	return &types.Order{ID: orderID, Status: types.OrderStatusCancelled}, nil
}

func TestPlaceValidatesPaymentMethod(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw)

	_, err := svc.Place(context.Background(), PlaceInput{AddressID: "a1", PaymentMethod: "barter"})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(gw.created) != 0 {
		t.Error("invalid input must not reach the gateway")
	}
}

func TestPlaceRequiresAddress(t *testing.T) {
	svc := NewService(&fakeGateway{})
	_, err := svc.Place(context.Background(), PlaceInput{PaymentMethod: "cod"})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestPlaceForwardsInput(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw)

	order, err := svc.Place(context.Background(), PlaceInput{
		AddressID:     "a1",
		PaymentMethod: "upi",
		CouponCode:    "WELCOME10",
	})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if order.OrderNumber != "ORD-1001" {
		t.Errorf("order = %+v", order)
	}
	if len(gw.created) != 1 || gw.created[0].CouponCode != "WELCOME10" {
		t.Errorf("created = %+v", gw.created)
	}
}

func TestCancelRequiresID(t *testing.T) {
	svc := NewService(&fakeGateway{})
	if _, err := svc.Cancel(context.Background(), "", "changed my mind"); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}
