// Package addresses manages the user's saved shipping addresses. Addresses
// are server-owned; this service holds no cache, every call round-trips.
package addresses

import (
	"context"
	"strings"

	"github.com/electrofy/storefront-client/internal/gateway"
	"github.com/electrofy/storefront-client/pkg/errors"
	"github.com/electrofy/storefront-client/pkg/types"
	"github.com/electrofy/storefront-client/pkg/validate"
)

type Service interface {
	List(ctx context.Context) ([]types.Address, error)
	Get(ctx context.Context, addressID string) (*types.Address, error)
	Default(ctx context.Context) (*types.Address, error)
	Create(ctx context.Context, input SaveInput) (*types.Address, error)
	Update(ctx context.Context, addressID string, input SaveInput) (*types.Address, error)
	Delete(ctx context.Context, addressID string) error
	SetDefault(ctx context.Context, addressID string) (*types.Address, error)
}

// SaveInput is the create/update payload validated client-side before the
// round trip.
type SaveInput struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Phone        string `json:"phone" validate:"required,min=7"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Country      string `json:"country" validate:"required"`
	ZipCode      string `json:"zip_code" validate:"required"`
	IsDefault    bool   `json:"is_default"`
	AddressType  string `json:"address_type" validate:"omitempty,oneof=home work other"`
}

type Gateway interface {
	ListAddresses(ctx context.Context) ([]types.Address, error)
	GetAddress(ctx context.Context, addressID string) (*types.Address, error)
	CreateAddress(ctx context.Context, input gateway.AddressInput) (*types.Address, error)
	UpdateAddress(ctx context.Context, addressID string, input gateway.AddressInput) (*types.Address, error)
	DeleteAddress(ctx context.Context, addressID string) error
	SetDefaultAddress(ctx context.Context, addressID string) (*types.Address, error)
}

type service struct {
	gateway Gateway
}

func NewService(gw Gateway) Service {
	return &service{gateway: gw}
}

func (s *service) List(ctx context.Context) ([]types.Address, error) {
	if s == nil || s.gateway == nil {
		return nil, errors.New(errors.CodeInternal, "address gateway unavailable")
	}
	return s.gateway.ListAddresses(ctx)
}

func (s *service) Get(ctx context.Context, addressID string) (*types.Address, error) {
	if s == nil || s.gateway == nil {
		return nil, errors.New(errors.CodeInternal, "address gateway unavailable")
	}
	if strings.TrimSpace(addressID) == "" {
		return nil, errors.New(errors.CodeValidation, "address id is required")
	}
	return s.gateway.GetAddress(ctx, addressID)
}

// Default returns the address flagged default, or the first one when none is
// flagged.
func (s *service) Default(ctx context.Context) (*types.Address, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.New(errors.CodeNotFound, "no saved addresses")
	}
	for i := range list {
		if list[i].IsDefault {
			return &list[i], nil
		}
	}
	return &list[0], nil
}

func (s *service) Create(ctx context.Context, input SaveInput) (*types.Address, error) {
	if s == nil || s.gateway == nil {
		return nil, errors.New(errors.CodeInternal, "address gateway unavailable")
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	return s.gateway.CreateAddress(ctx, toGatewayInput(input))
}

func (s *service) Update(ctx context.Context, addressID string, input SaveInput) (*types.Address, error) {
	if s == nil || s.gateway == nil {
		return nil, errors.New(errors.CodeInternal, "address gateway unavailable")
	}
	if strings.TrimSpace(addressID) == "" {
		return nil, errors.New(errors.CodeValidation, "address id is required")
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	return s.gateway.UpdateAddress(ctx, addressID, toGatewayInput(input))
}

func (s *service) Delete(ctx context.Context, addressID string) error {
	if s == nil || s.gateway == nil {
		return errors.New(errors.CodeInternal, "address gateway unavailable")
	}
	if strings.TrimSpace(addressID) == "" {
		return errors.New(errors.CodeValidation, "address id is required")
	}
	return s.gateway.DeleteAddress(ctx, addressID)
}

func (s *service) SetDefault(ctx context.Context, addressID string) (*types.Address, error) {
	if s == nil || s.gateway == nil {
		return nil, errors.New(errors.CodeInternal, "address gateway unavailable")
	}
	if strings.TrimSpace(addressID) == "" {
		return nil, errors.New(errors.CodeValidation, "address id is required")
	}
	return s.gateway.SetDefaultAddress(ctx, addressID)
}

func toGatewayInput(input SaveInput) gateway.AddressInput {
	return gateway.AddressInput{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		Country:      input.Country,
		ZipCode:      input.ZipCode,
		IsDefault:    input.IsDefault,
		AddressType:  input.AddressType,
	}
}
