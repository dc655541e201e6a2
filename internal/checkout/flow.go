package checkout

import (
	"context"
	"fmt"

	"github.com/electrofy/storefront-client/internal/addresses"
	"github.com/electrofy/storefront-client/internal/orders"
	pkgerrors "github.com/electrofy/storefront-client/pkg/errors"
	"github.com/electrofy/storefront-client/pkg/logger"
	"github.com/electrofy/storefront-client/pkg/types"
)

// Step is one of the flow's addressable views. StepCart is not part of the
// flow itself; it is the redirect target when the empty-cart guard fires.
type Step string

const (
	StepCart         Step = "cart"
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

// CartSource exposes the slice of store state the flow guards on.
type CartSource interface {
	Cart() types.Cart
	ClearCartItems(ctx context.Context) error
}

// Notifier surfaces flow outcomes to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Params carries the flow's dependencies.
type Params struct {
	Cart      CartSource
	Slot      Slot
	Orders    orders.Service
	Addresses addresses.Service
	Notifier  Notifier
	Logger    *logger.Logger
	SessionID string
}

// Flow is the checkout state machine. Guard failures are redirects, not
// errors: each entry point returns the step the caller should route to.
type Flow struct {
	cart      CartSource
	slot      Slot
	orders    orders.Service
	addresses addresses.Service
	notifier  Notifier
	logger    *logger.Logger
	sessionID string
}

func NewFlow(params Params) (*Flow, error) {
	if params.Cart == nil {
		return nil, fmt.Errorf("checkout cart source is required")
	}
	if params.Slot == nil {
		return nil, fmt.Errorf("checkout slot is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("checkout orders service is required")
	}
	if params.Addresses == nil {
		return nil, fmt.Errorf("checkout addresses service is required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("checkout notifier is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("checkout logger is required")
	}
	if params.SessionID == "" {
		return nil, fmt.Errorf("checkout session id is required")
	}
	return &Flow{
		cart:      params.Cart,
		slot:      params.Slot,
		orders:    params.Orders,
		addresses: params.Addresses,
		notifier:  params.Notifier,
		logger:    params.Logger,
		sessionID: params.SessionID,
	}, nil
}

// ShippingView is what the shipping step renders.
type ShippingView struct {
	Step      Step
	Addresses []types.Address
}

// BeginShipping enters the shipping step. An empty cart redirects to the
// cart view.
func (f *Flow) BeginShipping(ctx context.Context) (*ShippingView, error) {
	ctx = f.logger.WithSessionID(f.logger.WithOperation(ctx, "checkout_shipping"), f.sessionID)

	cart := f.cart.Cart()
	if cart.IsEmpty() {
		return &ShippingView{Step: StepCart}, nil
	}

	list, err := f.addresses.List(ctx)
	if err != nil {
		f.logger.Error(ctx, "list addresses", err)
		f.notifier.Error(pkgerrors.UserMessage(err))
		return nil, err
	}
	return &ShippingView{Step: StepShipping, Addresses: list}, nil
}

// SelectAddress records the chosen address in the slot and advances to the
// payment step.
func (f *Flow) SelectAddress(ctx context.Context, addressID string) (Step, error) {
	ctx = f.logger.WithSessionID(f.logger.WithOperation(ctx, "checkout_select_address"), f.sessionID)

	if addressID == "" {
		return StepShipping, pkgerrors.New(pkgerrors.CodeValidation, "select a shipping address to continue")
	}
	if err := f.slot.Put(ctx, f.sessionID, addressID); err != nil {
		f.logger.Error(ctx, "store checkout address", err)
		f.notifier.Error(pkgerrors.UserMessage(err))
		return StepShipping, err
	}
	return StepPayment, nil
}

// PaymentView is what the payment step renders.
type PaymentView struct {
	Step    Step
	Address *types.Address
	Cart    types.Cart
}

// BeginPayment enters the payment step. A missing slot redirects back to
// shipping; an empty cart redirects to the cart view. Both are guards, not
// errors.
func (f *Flow) BeginPayment(ctx context.Context) (*PaymentView, error) {
	ctx = f.logger.WithSessionID(f.logger.WithOperation(ctx, "checkout_payment"), f.sessionID)

	cart := f.cart.Cart()
	if cart.IsEmpty() {
		return &PaymentView{Step: StepCart}, nil
	}

	addressID, err := f.slot.Get(ctx, f.sessionID)
	if err != nil {
		if pkgerrors.As(err) == ErrSlotEmpty {
			return &PaymentView{Step: StepShipping}, nil
		}
		f.logger.Error(ctx, "read checkout address", err)
		f.notifier.Error(pkgerrors.UserMessage(err))
		return nil, err
	}

	address, err := f.addresses.Get(ctx, addressID)
	if err != nil {
		f.logger.Error(ctx, "load checkout address", err)
		// The saved address disappeared between steps; restart selection.
		_ = f.slot.Delete(ctx, f.sessionID)
		return &PaymentView{Step: StepShipping}, nil
	}

	return &PaymentView{Step: StepPayment, Address: address, Cart: cart}, nil
}

// PlacementResult reports where the flow moved after a placement attempt.
type PlacementResult struct {
	Step  Step
	Order *types.Order
}

// PlaceOrder submits the order. On success the slot is deleted, the cart is
// cleared, and the flow advances to confirmation. On failure the slot and
// cart stay intact and the flow stays on payment.
func (f *Flow) PlaceOrder(ctx context.Context, paymentMethod, couponCode, notes string) (*PlacementResult, error) {
	ctx = f.logger.WithSessionID(f.logger.WithOperation(ctx, "checkout_place_order"), f.sessionID)

	cart := f.cart.Cart()
	if cart.IsEmpty() {
		return &PlacementResult{Step: StepCart}, nil
	}

	addressID, err := f.slot.Get(ctx, f.sessionID)
	if err != nil {
		if pkgerrors.As(err) == ErrSlotEmpty {
			return &PlacementResult{Step: StepShipping}, nil
		}
		f.logger.Error(ctx, "read checkout address", err)
		f.notifier.Error(pkgerrors.UserMessage(err))
		return nil, err
	}

	order, err := f.orders.Place(ctx, orders.PlaceInput{
		AddressID:     addressID,
		PaymentMethod: paymentMethod,
		CouponCode:    couponCode,
		Notes:         notes,
	})
	if err != nil {
		f.logger.Error(ctx, "place order", err)
		f.notifier.Error("Order failed: " + pkgerrors.UserMessage(err))
		return &PlacementResult{Step: StepPayment}, err
	}

	if err := f.slot.Delete(ctx, f.sessionID); err != nil {
		f.logger.Error(ctx, "delete checkout slot", err)
	}
	if err := f.cart.ClearCartItems(ctx); err != nil {
		// The order exists server-side; a stale local cart self-corrects on
		// the next reload.
		f.logger.Error(ctx, "clear cart after order", err)
	}

	f.notifier.Success("Order " + order.OrderNumber + " placed")
	return &PlacementResult{Step: StepConfirmation, Order: order}, nil
}

// Confirmation loads the placed order for the terminal step.
func (f *Flow) Confirmation(ctx context.Context, orderID string) (*types.Order, error) {
	ctx = f.logger.WithSessionID(f.logger.WithOperation(ctx, "checkout_confirmation"), f.sessionID)

	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		f.logger.Error(ctx, "load order", err)
		f.notifier.Error(pkgerrors.UserMessage(err))
		return nil, err
	}
	return order, nil
}

// Cancel abandons the flow and discards the slot.
func (f *Flow) Cancel(ctx context.Context) error {
	ctx = f.logger.WithSessionID(f.logger.WithOperation(ctx, "checkout_cancel"), f.sessionID)
	return f.slot.Delete(ctx, f.sessionID)
}
