// Package store holds the process-wide commerce state: product catalog
// snapshot, active category, cart, wishlist, and the filter panel's UI flag.
// All mutation goes through named operations; reads hand out copies.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/electrofy/storefront-client/internal/catalog"
	"github.com/electrofy/storefront-client/internal/gateway"
	pkgerrors "github.com/electrofy/storefront-client/pkg/errors"
	"github.com/electrofy/storefront-client/pkg/logger"
	"github.com/electrofy/storefront-client/pkg/types"
	"go.uber.org/multierr"
)

// Gateway is the slice of the commerce API the store drives.
type Gateway interface {
	ListProducts(ctx context.Context, q gateway.ProductQuery) (*gateway.ProductList, error)
	ListCategories(ctx context.Context) ([]types.Category, error)
	GetCart(ctx context.Context) (*types.Cart, error)
	AddCartItem(ctx context.Context, productID, variantID string, quantity int) (*types.Cart, error)
	UpdateCartItem(ctx context.Context, itemID string, quantity int) (*types.Cart, error)
	RemoveCartItem(ctx context.Context, itemID string) (*types.Cart, error)
	ClearCart(ctx context.Context) error
	MergeCart(ctx context.Context, guestSessionID string) (*types.Cart, error)
	GetDefaultWishlist(ctx context.Context) (*types.Wishlist, error)
	AddWishlistItem(ctx context.Context, wishlistID, productID string) (*types.WishlistItem, error)
	RemoveWishlistItem(ctx context.Context, wishlistID, itemID string) error
	ClearWishlist(ctx context.Context, wishlistID string) error
}

// Notifier surfaces operation outcomes to the user as transient messages.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Params carries the store's dependencies.
type Params struct {
	Gateway        Gateway
	Notifier       Notifier
	Logger         *logger.Logger
	Authenticated  func() bool
	TaxRatePercent float64
}

// Store owns the commerce state. Mutating operations round-trip through the
// gateway before touching local state, so a rejected call is never visible
// as a partial mutation.
type Store struct {
	gateway        Gateway
	notifier       Notifier
	logger         *logger.Logger
	authenticated  func() bool
	taxRatePercent float64

	mu          sync.RWMutex
	products    []types.Product
	categories  []types.Category
	category    string
	cart        *types.Cart
	wishlist    *types.Wishlist
	loading     bool
	sideNavOpen bool

	subMu       sync.Mutex
	subscribers map[int]func()
	nextSubID   int
}

// New builds the store. Gateway, Notifier and Logger are required.
func New(params Params) (*Store, error) {
	if params.Gateway == nil {
		return nil, fmt.Errorf("store gateway is required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("store notifier is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("store logger is required")
	}
	if params.Authenticated == nil {
		params.Authenticated = func() bool { return false }
	}
	if params.TaxRatePercent <= 0 {
		params.TaxRatePercent = 18
	}

	return &Store{
		gateway:        params.Gateway,
		notifier:       params.Notifier,
		logger:         params.Logger,
		authenticated:  params.Authenticated,
		taxRatePercent: params.TaxRatePercent,
		category:       catalog.CategoryAll,
		cart:           &types.Cart{Items: []types.CartItem{}},
		wishlist:       &types.Wishlist{IsDefault: true, Items: []types.WishlistItem{}},
		subscribers:    map[int]func(){},
	}, nil
}

// Subscribe registers a callback fired after every state change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) notifyChange() {
	s.subMu.Lock()
	callbacks := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		callbacks = append(callbacks, fn)
	}
	s.subMu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
}

// Initialize loads the catalog and categories, plus the cart and wishlist
// when the user is authenticated. Partial failures load what they can and
// return the combined error; each fetch overwrites its slice of state
// independently so a repeated call is safe.
func (s *Store) Initialize(ctx context.Context) error {
	ctx = s.logger.WithOperation(ctx, "store_initialize")
	s.setLoading(true)
	defer s.setLoading(false)

	var combined error

	if list, err := s.gateway.ListProducts(ctx, gateway.ProductQuery{}); err != nil {
		combined = multierr.Append(combined, err)
		s.logger.Error(ctx, "load products", err)
	} else {
		s.mu.Lock()
		s.products = list.Items
		s.mu.Unlock()
	}

	if categories, err := s.gateway.ListCategories(ctx); err != nil {
		combined = multierr.Append(combined, err)
		s.logger.Error(ctx, "load categories", err)
	} else {
		s.mu.Lock()
		s.categories = categories
		s.mu.Unlock()
	}

	if s.authenticated() {
		if cart, err := s.gateway.GetCart(ctx); err != nil {
			combined = multierr.Append(combined, err)
			s.logger.Error(ctx, "load cart", err)
		} else {
			s.mu.Lock()
			s.cart = cart
			s.mu.Unlock()
		}

		if wishlist, err := s.gateway.GetDefaultWishlist(ctx); err != nil {
			combined = multierr.Append(combined, err)
			s.logger.Error(ctx, "load wishlist", err)
		} else {
			s.mu.Lock()
			s.wishlist = wishlist
			s.mu.Unlock()
		}
	}

	s.syncFavorites()
	s.notifyChange()

	if combined != nil {
		s.notifier.Error(pkgerrors.UserMessage(combined))
	}
	return combined
}

// SetCategory switches the active category filter. Pure state change, no
// network call.
func (s *Store) SetCategory(category string) {
	s.mu.Lock()
	if category == "" {
		category = catalog.CategoryAll
	}
	s.category = category
	s.mu.Unlock()
	s.notifyChange()
}

// Category returns the active category filter.
func (s *Store) Category() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.category
}

// FilteredProducts recomputes the category view from the current snapshot.
// It is derived on every call, never cached, so it cannot go stale.
func (s *Store) FilteredProducts() []types.Product {
	s.mu.RLock()
	products := s.products
	category := s.category
	s.mu.RUnlock()
	return catalog.FilterByCategory(products, category)
}

// Products returns a copy of the full catalog snapshot.
func (s *Store) Products() []types.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Categories returns a copy of the category list.
func (s *Store) Categories() []types.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Cart returns a copy of the cart snapshot.
func (s *Store) Cart() types.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCart(s.cart)
}

// Wishlist returns a copy of the wishlist snapshot.
func (s *Store) Wishlist() types.Wishlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyWishlist(s.wishlist)
}

// CartSummary computes the cart price breakdown at the configured tax rate.
func (s *Store) CartSummary() catalog.Summary {
	s.mu.RLock()
	items := s.cart.Items
	s.mu.RUnlock()
	return catalog.NewSummary(items, s.taxRatePercent)
}

// Loading reports whether an Initialize call is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
	s.notifyChange()
}

// AddToCart sends the add command and, on success, reloads the full cart so
// server-computed totals never drift from the local copy. On failure the
// cart is untouched and the user is notified.
func (s *Store) AddToCart(ctx context.Context, product types.Product, variantID string, quantity int) error {
	ctx = s.logger.WithProductID(s.logger.WithOperation(ctx, "add_to_cart"), product.ID)
	if quantity <= 0 {
		quantity = 1
	}

	if _, err := s.gateway.AddCartItem(ctx, product.ID, variantID, quantity); err != nil {
		s.logger.Error(ctx, "add to cart", err)
		s.notifier.Error("Failed to add to cart: " + pkgerrors.UserMessage(err))
		return err
	}
	if err := s.reloadCart(ctx); err != nil {
		return err
	}
	s.notifier.Success(product.Name + " added to cart")
	return nil
}

// RemoveFromCart removes every cart line for the product and reloads the
// cart. On failure the cart is untouched and the user is notified.
func (s *Store) RemoveFromCart(ctx context.Context, product types.Product) error {
	ctx = s.logger.WithProductID(s.logger.WithOperation(ctx, "remove_from_cart"), product.ID)

	s.mu.RLock()
	var itemIDs []string
	for _, item := range s.cart.Items {
		if item.Product.ID == product.ID {
			itemIDs = append(itemIDs, item.ID)
		}
	}
	s.mu.RUnlock()

	if len(itemIDs) == 0 {
		return nil
	}

	for _, itemID := range itemIDs {
		if _, err := s.gateway.RemoveCartItem(ctx, itemID); err != nil {
			s.logger.Error(ctx, "remove from cart", err)
			s.notifier.Error("Failed to remove from cart: " + pkgerrors.UserMessage(err))
			return err
		}
	}
	if err := s.reloadCart(ctx); err != nil {
		return err
	}
	s.notifier.Success(product.Name + " removed from cart")
	return nil
}

// UpdateCartQuantity changes a cart line's quantity and reloads the cart,
// keeping server-computed totals authoritative. On failure the cart is
// untouched and the user is notified.
func (s *Store) UpdateCartQuantity(ctx context.Context, itemID string, quantity int) error {
	ctx = s.logger.WithOperation(ctx, "update_cart_quantity")

	if _, err := s.gateway.UpdateCartItem(ctx, itemID, quantity); err != nil {
		s.logger.Error(ctx, "update cart quantity", err)
		s.notifier.Error("Failed to update cart: " + pkgerrors.UserMessage(err))
		return err
	}
	return s.reloadCart(ctx)
}

// MergeGuestCart folds the guest session's cart into the signed-in user's
// cart and replaces the local copy with the server's merged view. On failure
// the local cart stays as it was.
func (s *Store) MergeGuestCart(ctx context.Context, guestSessionID string) error {
	ctx = s.logger.WithOperation(ctx, "merge_guest_cart")

	cart, err := s.gateway.MergeCart(ctx, guestSessionID)
	if err != nil {
		s.logger.Error(ctx, "merge guest cart", err)
		s.notifier.Error("Failed to merge cart: " + pkgerrors.UserMessage(err))
		return err
	}
	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

// ClearCartItems empties the cart server-side, then locally.
func (s *Store) ClearCartItems(ctx context.Context) error {
	ctx = s.logger.WithOperation(ctx, "clear_cart")
	if err := s.gateway.ClearCart(ctx); err != nil {
		s.logger.Error(ctx, "clear cart", err)
		s.notifier.Error("Failed to clear cart: " + pkgerrors.UserMessage(err))
		return err
	}
	s.mu.Lock()
	s.cart = &types.Cart{ID: s.cart.ID, Items: []types.CartItem{}}
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

func (s *Store) reloadCart(ctx context.Context) error {
	cart, err := s.gateway.GetCart(ctx)
	if err != nil {
		s.logger.Error(ctx, "reload cart", err)
		s.notifier.Error(pkgerrors.UserMessage(err))
		return err
	}
	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

// AddToWishlist saves the product and patches the local wishlist in place.
// A product id appears at most once; adding an already-saved product is a
// no-op.
func (s *Store) AddToWishlist(ctx context.Context, product types.Product) error {
	ctx = s.logger.WithProductID(s.logger.WithOperation(ctx, "add_to_wishlist"), product.ID)

	s.mu.RLock()
	wishlistID := s.wishlist.ID
	already := s.wishlist.Contains(product.ID)
	s.mu.RUnlock()

	if already {
		return nil
	}

	item, err := s.gateway.AddWishlistItem(ctx, s.ensureWishlistID(ctx, wishlistID), product.ID)
	if err != nil {
		s.logger.Error(ctx, "add to wishlist", err)
		s.notifier.Error("Failed to add to wishlist: " + pkgerrors.UserMessage(err))
		return err
	}

	s.mu.Lock()
	if !s.wishlist.Contains(product.ID) {
		s.wishlist.Items = append(s.wishlist.Items, *item)
	}
	s.mu.Unlock()
	s.syncFavorites()
	s.notifyChange()
	s.notifier.Success(product.Name + " added to wishlist")
	return nil
}

// RemoveFromWishlist deletes the product's wishlist entry and patches the
// local list by id.
func (s *Store) RemoveFromWishlist(ctx context.Context, product types.Product) error {
	ctx = s.logger.WithProductID(s.logger.WithOperation(ctx, "remove_from_wishlist"), product.ID)

	s.mu.RLock()
	wishlistID := s.wishlist.ID
	itemID := ""
	for _, item := range s.wishlist.Items {
		if item.Product.ID == product.ID {
			itemID = item.ID
			break
		}
	}
	s.mu.RUnlock()

	if itemID == "" {
		return nil
	}

	if err := s.gateway.RemoveWishlistItem(ctx, wishlistID, itemID); err != nil {
		s.logger.Error(ctx, "remove from wishlist", err)
		s.notifier.Error("Failed to remove from wishlist: " + pkgerrors.UserMessage(err))
		return err
	}

	s.mu.Lock()
	items := s.wishlist.Items[:0]
	for _, item := range s.wishlist.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	s.wishlist.Items = items
	s.mu.Unlock()
	s.syncFavorites()
	s.notifyChange()
	s.notifier.Success(product.Name + " removed from wishlist")
	return nil
}

// ClearWishlist empties the wishlist server-side, then locally.
func (s *Store) ClearWishlist(ctx context.Context) error {
	ctx = s.logger.WithOperation(ctx, "clear_wishlist")

	s.mu.RLock()
	wishlistID := s.wishlist.ID
	s.mu.RUnlock()
	if wishlistID == "" {
		return nil
	}

	if err := s.gateway.ClearWishlist(ctx, wishlistID); err != nil {
		s.logger.Error(ctx, "clear wishlist", err)
		s.notifier.Error("Failed to clear wishlist: " + pkgerrors.UserMessage(err))
		return err
	}
	s.mu.Lock()
	s.wishlist.Items = []types.WishlistItem{}
	s.mu.Unlock()
	s.syncFavorites()
	s.notifyChange()
	return nil
}

// ensureWishlistID lazily fetches the default wishlist when the local copy
// has no id yet (first wishlist action of a session).
func (s *Store) ensureWishlistID(ctx context.Context, current string) string {
	if current != "" {
		return current
	}
	wishlist, err := s.gateway.GetDefaultWishlist(ctx)
	if err != nil {
		return current
	}
	s.mu.Lock()
	wishlist.Items = s.wishlist.Items
	s.wishlist = wishlist
	s.mu.Unlock()
	return wishlist.ID
}

// syncFavorites reconciles each product's display flag with wishlist
// membership.
func (s *Store) syncFavorites() {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make(map[string]struct{}, len(s.wishlist.Items))
	for _, item := range s.wishlist.Items {
		saved[item.Product.ID] = struct{}{}
	}
	for i := range s.products {
		_, ok := saved[s.products[i].ID]
		s.products[i].IsFavorite = ok
	}
}

// ToggleSidebar flips the filter panel's open state.
func (s *Store) ToggleSidebar() {
	s.mu.Lock()
	s.sideNavOpen = !s.sideNavOpen
	s.mu.Unlock()
	s.notifyChange()
}

// IsSideNavOpened reports the filter panel's open state.
func (s *Store) IsSideNavOpened() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sideNavOpen
}

// Reset drops all loaded state back to the initial empty snapshot, for
// sign-out.
func (s *Store) Reset() {
	s.mu.Lock()
	s.products = nil
	s.categories = nil
	s.category = catalog.CategoryAll
	s.cart = &types.Cart{Items: []types.CartItem{}}
	s.wishlist = &types.Wishlist{IsDefault: true, Items: []types.WishlistItem{}}
	s.loading = false
	s.mu.Unlock()
	s.notifyChange()
}

func copyCart(cart *types.Cart) types.Cart {
	if cart == nil {
		return types.Cart{Items: []types.CartItem{}}
	}
	out := *cart
	out.Items = make([]types.CartItem, len(cart.Items))
	copy(out.Items, cart.Items)
	return out
}

func copyWishlist(wishlist *types.Wishlist) types.Wishlist {
	if wishlist == nil {
		return types.Wishlist{Items: []types.WishlistItem{}}
	}
	out := *wishlist
	out.Items = make([]types.WishlistItem, len(wishlist.Items))
	copy(out.Items, wishlist.Items)
	return out
}
