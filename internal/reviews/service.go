// Package reviews posts and lists product reviews.
package reviews

import (
	"context"
	"strings"

	"github.com/electrofy/storefront-client/internal/gateway"
	"github.com/electrofy/storefront-client/pkg/errors"
	"github.com/electrofy/storefront-client/pkg/types"
	"github.com/electrofy/storefront-client/pkg/validate"
)

type Service interface {
	List(ctx context.Context, productID string) ([]types.Review, error)
	Create(ctx context.Context, productID string, input CreateInput) (*types.Review, error)
	Delete(ctx context.Context, reviewID string) error
}

// CreateInput is a new review payload.
type CreateInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"max=120"`
	Comment string `json:"comment" validate:"max=2000"`
}

type Gateway interface {
	ListReviews(ctx context.Context, productID string) ([]types.Review, error)
	CreateReview(ctx context.Context, productID string, input gateway.ReviewInput) (*types.Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
}

type service struct {
	gateway Gateway
}

func NewService(gw Gateway) Service {
	return &service{gateway: gw}
}

func (s *service) List(ctx context.Context, productID string) ([]types.Review, error) {
	if s == nil || s.gateway == nil {
		return nil, errors.New(errors.CodeInternal, "review gateway unavailable")
	}
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New(errors.CodeValidation, "product id is required")
	}
	return s.gateway.ListReviews(ctx, productID)
}

func (s *service) Create(ctx context.Context, productID string, input CreateInput) (*types.Review, error) {
	if s == nil || s.gateway == nil {
		return nil, errors.New(errors.CodeInternal, "review gateway unavailable")
	}
	if strings.TrimSpace(productID) == "" {
		return nil, errors.New(errors.CodeValidation, "product id is required")
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	return s.gateway.CreateReview(ctx, productID, gateway.ReviewInput{
		Rating:  input.Rating,
		Title:   input.Title,
		Comment: input.Comment,
	})
}

func (s *service) Delete(ctx context.Context, reviewID string) error {
	if s == nil || s.gateway == nil {
		return errors.New(errors.CodeInternal, "review gateway unavailable")
	}
	if strings.TrimSpace(reviewID) == "" {
		return errors.New(errors.CodeValidation, "review id is required")
	}
	return s.gateway.DeleteReview(ctx, reviewID)
}
