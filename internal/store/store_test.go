package store

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/electrofy/storefront-client/internal/gateway"
	pkgerrors "github.com/electrofy/storefront-client/pkg/errors"
	"github.com/electrofy/storefront-client/pkg/logger"
	"github.com/electrofy/storefront-client/pkg/types"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type fakeGateway struct {
	products   []types.Product
	categories []types.Category
	cart       *types.Cart
	wishlist   *types.Wishlist

	failAddCart      error
	failGetCart      error
	failClearCart    error
	failUpdateCart   error
	failMergeCart    error
	failAddWishlist  error
	getCartCalls     int
	mergedSessions   []string
	clearedWishlists []string
}

func (f *fakeGateway) ListProducts(ctx context.Context, q gateway.ProductQuery) (*gateway.ProductList, error) {
	return &gateway.ProductList{Items: f.products}, nil
}

func (f *fakeGateway) ListCategories(ctx context.Context) ([]types.Category, error) {
	return f.categories, nil
}

func (f *fakeGateway) GetCart(ctx context.Context) (*types.Cart, error) {
	f.getCartCalls++
	if f.failGetCart != nil {
		return nil, f.failGetCart
	}
	return f.cart, nil
}

func (f *fakeGateway) AddCartItem(ctx context.Context, productID, variantID string, quantity int) (*types.Cart, error) {
	if f.failAddCart != nil {
		return nil, f.failAddCart
	}
	f.cart.Items = append(f.cart.Items, types.CartItem{
		ID:       "item_" + productID,
		Product:  types.Product{ID: productID},
		Quantity: quantity,
	})
	return f.cart, nil
}

func (f *fakeGateway) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*types.Cart, error) {
	if f.failUpdateCart != nil {
		return nil, f.failUpdateCart
	}
	for i := range f.cart.Items {
		if f.cart.Items[i].ID == itemID {
			f.cart.Items[i].Quantity = quantity
		}
	}
	return f.cart, nil
}

func (f *fakeGateway) MergeCart(ctx context.Context, guestSessionID string) (*types.Cart, error) {
	if f.failMergeCart != nil {
		return nil, f.failMergeCart
	}
	f.mergedSessions = append(f.mergedSessions, guestSessionID)
	return f.cart, nil
}

func (f *fakeGateway) RemoveCartItem(ctx context.Context, itemID string) (*types.Cart, error) {
	items := f.cart.Items[:0]
	for _, item := range f.cart.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	f.cart.Items = items
	return f.cart, nil
}

func (f *fakeGateway) ClearCart(ctx context.Context) error {
	if f.failClearCart != nil {
		return f.failClearCart
	}
	f.cart.Items = nil
	return nil
}

func (f *fakeGateway) GetDefaultWishlist(ctx context.Context) (*types.Wishlist, error) {
	return f.wishlist, nil
}

func (f *fakeGateway) AddWishlistItem(ctx context.Context, wishlistID, productID string) (*types.WishlistItem, error) {
	if f.failAddWishlist != nil {
		return nil, f.failAddWishlist
	}
	item := types.WishlistItem{ID: "wli_" + productID, Product: types.Product{ID: productID}}
	f.wishlist.Items = append(f.wishlist.Items, item)
	return &item, nil
}

func (f *fakeGateway) RemoveWishlistItem(ctx context.Context, wishlistID, itemID string) error {
	items := f.wishlist.Items[:0]
	for _, item := range f.wishlist.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	f.wishlist.Items = items
	return nil
}

func (f *fakeGateway) ClearWishlist(ctx context.Context, wishlistID string) error {
	f.clearedWishlists = append(f.clearedWishlists, wishlistID)
	f.wishlist.Items = nil
	return nil
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Error(message string)   { n.errors = append(n.errors, message) }

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		products: []types.Product{
			{ID: "p1", Name: "Headphones", Category: "Audio", Price: decimal.RequireFromString("2499")},
			{ID: "p2", Name: "Monitor", Category: "Displays", Price: decimal.RequireFromString("12999")},
		},
		categories: []types.Category{{ID: "c1", Name: "Audio"}},
		cart:       &types.Cart{ID: "cart_1", Items: []types.CartItem{}},
		wishlist:   &types.Wishlist{ID: "wl_1", IsDefault: true, Items: []types.WishlistItem{}},
	}
}

func newTestStore(t *testing.T, gw Gateway, notifier Notifier, authed bool) *Store {
	t.Helper()
	s, err := New(Params{
		Gateway:       gw,
		Notifier:      notifier,
		Logger:        logger.New(logger.Options{ServiceName: "store-test", Level: zerolog.Disabled, Output: io.Discard}),
		Authenticated: func() bool { return authed },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewValidatesDependencies(t *testing.T) {
	if _, err := New(Params{}); err == nil {
		t.Fatal("expected an error for missing dependencies")
	}
}

func TestInitializeUnauthenticatedSkipsCartAndWishlist(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStore(t, gw, &recordingNotifier{}, false)

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if len(s.Products()) != 2 {
		t.Errorf("got %d products, want 2", len(s.Products()))
	}
	if len(s.Categories()) != 1 {
		t.Errorf("got %d categories, want 1", len(s.Categories()))
	}
	if gw.getCartCalls != 0 {
		t.Errorf("cart fetched %d times for a guest, want 0", gw.getCartCalls)
	}
}

func TestInitializeAuthenticatedLoadsCartAndWishlist(t *testing.T) {
	gw := newFakeGateway()
	gw.cart.Items = []types.CartItem{{ID: "i1", Product: types.Product{ID: "p1"}, Quantity: 1}}
	gw.wishlist.Items = []types.WishlistItem{{ID: "w1", Product: types.Product{ID: "p2"}}}
	s := newTestStore(t, gw, &recordingNotifier{}, true)

	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got := s.Cart(); len(got.Items) != 1 {
		t.Errorf("cart items = %d, want 1", len(got.Items))
	}
	if got := s.Wishlist(); len(got.Items) != 1 {
		t.Errorf("wishlist items = %d, want 1", len(got.Items))
	}

	// Wishlist membership marks the product favorite.
	for _, p := range s.Products() {
		if p.ID == "p2" && !p.IsFavorite {
			t.Error("wishlisted product not marked favorite")
		}
		if p.ID == "p1" && p.IsFavorite {
			t.Error("non-wishlisted product marked favorite")
		}
	}
}

func TestInitializePartialFailureKeepsWhatLoaded(t *testing.T) {
	gw := newFakeGateway()
	gw.failGetCart = pkgerrors.New(pkgerrors.CodeTransport, "connection refused")
	notifier := &recordingNotifier{}
	s := newTestStore(t, gw, notifier, true)

	err := s.Initialize(context.Background())
	if err == nil {
		t.Fatal("expected the cart failure to surface")
	}
	if len(s.Products()) != 2 {
		t.Errorf("products should still load on cart failure, got %d", len(s.Products()))
	}
	if len(notifier.errors) == 0 {
		t.Error("expected a user-visible error")
	}
}

func TestSetCategoryRecomputesFilteredView(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStore(t, gw, &recordingNotifier{}, false)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	s.SetCategory("Audio")
	filtered := s.FilteredProducts()
	if len(filtered) != 1 || filtered[0].ID != "p1" {
		t.Fatalf("filtered = %+v, want only p1", filtered)
	}

	s.SetCategory("all")
	if got := s.FilteredProducts(); len(got) != 2 {
		t.Fatalf("all sentinel returned %d products, want 2", len(got))
	}
}

func TestAddToCartReloadsFromServer(t *testing.T) {
	gw := newFakeGateway()
	notifier := &recordingNotifier{}
	s := newTestStore(t, gw, notifier, true)

	product := types.Product{ID: "p1", Name: "Headphones"}
	if err := s.AddToCart(context.Background(), product, "", 2); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if gw.getCartCalls != 1 {
		t.Errorf("cart reloaded %d times, want 1", gw.getCartCalls)
	}
	if got := s.Cart(); len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("cart = %+v, want the server's view", got)
	}
	if len(notifier.successes) != 1 {
		t.Errorf("successes = %v, want one", notifier.successes)
	}
}

func TestAddToCartFailureLeavesStateUntouched(t *testing.T) {
	gw := newFakeGateway()
	gw.failAddCart = pkgerrors.New(pkgerrors.CodeGateway, "Insufficient stock")
	notifier := &recordingNotifier{}
	s := newTestStore(t, gw, notifier, true)

	err := s.AddToCart(context.Background(), types.Product{ID: "p1", Name: "Headphones"}, "", 1)
	if err == nil {
		t.Fatal("expected the rejection to surface")
	}
	if got := s.Cart(); len(got.Items) != 0 {
		t.Fatalf("cart mutated on failure: %+v", got)
	}
	if gw.getCartCalls != 0 {
		t.Error("cart should not reload after a failed add")
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("errors = %v, want one", notifier.errors)
	}
	// The server's detail reaches the user for gateway rejections.
	if notifier.errors[0] != "Failed to add to cart: Insufficient stock" {
		t.Errorf("error message = %q", notifier.errors[0])
	}
}

func TestUpdateCartQuantityReloadsFromServer(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStore(t, gw, &recordingNotifier{}, true)
	if err := s.AddToCart(context.Background(), types.Product{ID: "p1", Name: "Headphones"}, "", 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	if err := s.UpdateCartQuantity(context.Background(), "item_p1", 3); err != nil {
		t.Fatalf("UpdateCartQuantity: %v", err)
	}
	if got := s.Cart(); len(got.Items) != 1 || got.Items[0].Quantity != 3 {
		t.Fatalf("cart = %+v, want quantity 3 from the server", got)
	}
	if gw.getCartCalls != 2 {
		t.Errorf("cart reloaded %d times, want 2 (add + update)", gw.getCartCalls)
	}
}

func TestUpdateCartQuantityFailureLeavesStateUntouched(t *testing.T) {
	gw := newFakeGateway()
	notifier := &recordingNotifier{}
	s := newTestStore(t, gw, notifier, true)
	if err := s.AddToCart(context.Background(), types.Product{ID: "p1", Name: "Headphones"}, "", 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	gw.failUpdateCart = pkgerrors.New(pkgerrors.CodeGateway, "Insufficient stock")
	if err := s.UpdateCartQuantity(context.Background(), "item_p1", 99); err == nil {
		t.Fatal("expected the rejection to surface")
	}
	if got := s.Cart(); got.Items[0].Quantity != 1 {
		t.Fatalf("cart mutated on failure: %+v", got)
	}
	if len(notifier.errors) == 0 {
		t.Error("expected a user-visible error")
	}
}

func TestMergeGuestCartReplacesLocalCopy(t *testing.T) {
	gw := newFakeGateway()
	gw.cart.Items = []types.CartItem{{ID: "i1", Product: types.Product{ID: "p1"}, Quantity: 2}}
	s := newTestStore(t, gw, &recordingNotifier{}, true)

	if err := s.MergeGuestCart(context.Background(), "session_guest"); err != nil {
		t.Fatalf("MergeGuestCart: %v", err)
	}
	if len(gw.mergedSessions) != 1 || gw.mergedSessions[0] != "session_guest" {
		t.Fatalf("merged = %v, want the guest session id", gw.mergedSessions)
	}
	if got := s.Cart(); len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("cart = %+v, want the server's merged view", got)
	}
}

func TestMergeGuestCartFailureKeepsLocalCart(t *testing.T) {
	gw := newFakeGateway()
	notifier := &recordingNotifier{}
	s := newTestStore(t, gw, notifier, true)
	if err := s.AddToCart(context.Background(), types.Product{ID: "p1", Name: "Headphones"}, "", 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	gw.failMergeCart = pkgerrors.New(pkgerrors.CodeTransport, "timeout")
	if err := s.MergeGuestCart(context.Background(), "session_guest"); err == nil {
		t.Fatal("expected merge to fail")
	}
	if got := s.Cart(); len(got.Items) != 1 {
		t.Fatalf("cart = %+v, want the pre-merge item intact", got)
	}
	if len(notifier.errors) == 0 {
		t.Error("expected a user-visible error")
	}
}

func TestRemoveFromCartUnknownProductIsNoOp(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStore(t, gw, &recordingNotifier{}, true)
	if err := s.RemoveFromCart(context.Background(), types.Product{ID: "ghost"}); err != nil {
		t.Fatalf("RemoveFromCart: %v", err)
	}
	if gw.getCartCalls != 0 {
		t.Error("no round trip expected for a product not in the cart")
	}
}

func TestClearCartFailureLeavesItems(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStore(t, gw, &recordingNotifier{}, true)
	if err := s.AddToCart(context.Background(), types.Product{ID: "p1", Name: "Headphones"}, "", 1); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	gw.failClearCart = errors.New("boom")
	if err := s.ClearCartItems(context.Background()); err == nil {
		t.Fatal("expected clear to fail")
	}
	if got := s.Cart(); len(got.Items) != 1 {
		t.Fatalf("cart = %+v, want the pre-failure item intact", got)
	}
}

func TestAddToWishlistSetSemantics(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStore(t, gw, &recordingNotifier{}, true)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	product := types.Product{ID: "p1", Name: "Headphones"}
	if err := s.AddToWishlist(context.Background(), product); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	// Second add is a local no-op.
	if err := s.AddToWishlist(context.Background(), product); err != nil {
		t.Fatalf("repeat AddToWishlist: %v", err)
	}
	if got := s.Wishlist(); len(got.Items) != 1 {
		t.Fatalf("wishlist = %+v, want exactly one entry", got)
	}
	if len(gw.wishlist.Items) != 1 {
		t.Errorf("server received %d adds, want 1", len(gw.wishlist.Items))
	}
}

func TestRemoveFromWishlistPatchesLocally(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStore(t, gw, &recordingNotifier{}, true)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	product := types.Product{ID: "p1", Name: "Headphones"}
	if err := s.AddToWishlist(context.Background(), product); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}

	if err := s.RemoveFromWishlist(context.Background(), product); err != nil {
		t.Fatalf("RemoveFromWishlist: %v", err)
	}
	if got := s.Wishlist(); len(got.Items) != 0 {
		t.Fatalf("wishlist = %+v, want empty", got)
	}

	// Favorite flag cleared with the entry.
	for _, p := range s.Products() {
		if p.ID == "p1" && p.IsFavorite {
			t.Error("favorite flag survived wishlist removal")
		}
	}
}

func TestAddToWishlistFailureLeavesStateUntouched(t *testing.T) {
	gw := newFakeGateway()
	gw.failAddWishlist = pkgerrors.New(pkgerrors.CodeTransport, "timeout")
	notifier := &recordingNotifier{}
	s := newTestStore(t, gw, notifier, true)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	err := s.AddToWishlist(context.Background(), types.Product{ID: "p1", Name: "Headphones"})
	if err == nil {
		t.Fatal("expected failure")
	}
	if got := s.Wishlist(); len(got.Items) != 0 {
		t.Fatalf("wishlist mutated on failure: %+v", got)
	}
	if len(notifier.errors) == 0 {
		t.Error("expected a user-visible error")
	}
}

func TestClearWishlist(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStore(t, gw, &recordingNotifier{}, true)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := s.AddToWishlist(context.Background(), types.Product{ID: "p1", Name: "Headphones"}); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}

	if err := s.ClearWishlist(context.Background()); err != nil {
		t.Fatalf("ClearWishlist: %v", err)
	}
	if got := s.Wishlist(); len(got.Items) != 0 {
		t.Fatalf("wishlist = %+v, want empty", got)
	}
	if len(gw.clearedWishlists) != 1 || gw.clearedWishlists[0] != "wl_1" {
		t.Errorf("cleared %v, want [wl_1]", gw.clearedWishlists)
	}
}

func TestToggleSidebar(t *testing.T) {
	s := newTestStore(t, newFakeGateway(), &recordingNotifier{}, false)
	if s.IsSideNavOpened() {
		t.Fatal("sidebar should start closed")
	}
	s.ToggleSidebar()
	if !s.IsSideNavOpened() {
		t.Fatal("sidebar should open on toggle")
	}
	s.ToggleSidebar()
	if s.IsSideNavOpened() {
		t.Fatal("sidebar should close on second toggle")
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	s := newTestStore(t, newFakeGateway(), &recordingNotifier{}, false)

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	s.SetCategory("Audio")
	if calls != 1 {
		t.Fatalf("got %d notifications, want 1", calls)
	}

	unsubscribe()
	s.SetCategory("all")
	if calls != 1 {
		t.Fatalf("notified after unsubscribe: %d", calls)
	}
}

func TestCartSummaryUsesConfiguredTaxRate(t *testing.T) {
	gw := newFakeGateway()
	gw.cart.Items = []types.CartItem{{ID: "i1", Price: decimal.RequireFromString("1000"), Quantity: 1}}
	s := newTestStore(t, gw, &recordingNotifier{}, true)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	summary := s.CartSummary()
	if !summary.Tax.Equal(decimal.RequireFromString("180")) {
		t.Errorf("tax = %s, want 180 at the default rate", summary.Tax)
	}
	if !summary.Total().Equal(decimal.RequireFromString("1180")) {
		t.Errorf("total = %s, want 1180", summary.Total())
	}
}

func TestReset(t *testing.T) {
	gw := newFakeGateway()
	s := newTestStore(t, gw, &recordingNotifier{}, true)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	s.SetCategory("Audio")

	s.Reset()
	if len(s.Products()) != 0 || len(s.Categories()) != 0 {
		t.Error("Reset left catalog state behind")
	}
	if got := s.Cart(); len(got.Items) != 0 {
		t.Error("Reset left cart items behind")
	}
	if s.Category() != "all" {
		t.Errorf("category = %q, want all", s.Category())
	}
}
