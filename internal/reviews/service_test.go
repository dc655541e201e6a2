package reviews

import (
	"context"
	"testing"

	"github.com/electrofy/storefront-client/internal/gateway"
	pkgerrors "github.com/electrofy/storefront-client/pkg/errors"
	"github.com/electrofy/storefront-client/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	created []gateway.ReviewInput
	deleted []string
}

func (f *fakeGateway) ListReviews(ctx context.Context, productID string) ([]types.Review, error) {
	return []types.Review{{ID: "r1", ProductID: productID, Rating: 5}}, nil
}

func (f *fakeGateway) CreateReview(ctx context.Context, productID string, input gateway.ReviewInput) (*types.Review, error) {
	f.created = append(f.created, input)
	return &types.Review{ID: "r_new", ProductID: productID, Rating: input.Rating}, nil
}

func (f *fakeGateway) DeleteReview(ctx context.Context, reviewID string) error {
	f.deleted = append(f.deleted, reviewID)
	return nil
}

func TestCreateValidatesRating(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw)

	_, err := svc.Create(context.Background(), "p1", CreateInput{Rating: 6})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Empty(t, gw.created)

	review, err := svc.Create(context.Background(), "p1", CreateInput{Rating: 4, Comment: "Solid build"})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Len(t, gw.created, 1)
}

func TestListRequiresProductID(t *testing.T) {
	svc := NewService(&fakeGateway{})
	_, err := svc.List(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDelete(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw)

	require.NoError(t, svc.Delete(context.Background(), "r1"))
	assert.Equal(t, []string{"r1"}, gw.deleted)

	err := svc.Delete(context.Background(), "")
	require.Error(t, err)
}
