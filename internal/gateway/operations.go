package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	pkgerrors "github.com/electrofy/storefront-client/pkg/errors"
	"github.com/electrofy/storefront-client/pkg/types"
	"github.com/shopspring/decimal"
)

// ProductQuery narrows the product listing. Zero values are omitted from the
// request so the server applies its defaults.
type ProductQuery struct {
	Page     int
	Limit    int
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
}

// ProductList carries one page of products with the envelope paging block.
type ProductList struct {
	Items      []types.Product
	Pagination *Pagination
}

// ListProducts fetches a page of catalog products.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*ProductList, error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", formatInt(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", formatInt(q.Limit))
	}
	if cat := strings.TrimSpace(q.Category); cat != "" && !strings.EqualFold(cat, "all") {
		query.Set("category", cat)
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		query.Set("search", search)
	}
	if q.MinPrice != nil {
		query.Set("minPrice", formatAmount(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		query.Set("maxPrice", formatAmount(*q.MaxPrice))
	}
	if sort := strings.TrimSpace(q.Sort); sort != "" {
		query.Set("sort", sort)
	}

	var wires []wireProduct
	env, err := c.do(ctx, "list_products", http.MethodGet, "/products", query, nil, &wires)
	if err != nil {
		return nil, err
	}

	items := make([]types.Product, 0, len(wires))
	for _, w := range wires {
		items = append(items, w.toProduct())
	}
	return &ProductList{Items: items, Pagination: env.Pagination}, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, productID string) (*types.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var w wireProduct
	if _, err := c.do(ctx, "get_product", http.MethodGet, "/products/"+url.PathEscape(productID), nil, nil, &w); err != nil {
		return nil, err
	}
	product := w.toProduct()
	return &product, nil
}

// ListCategories fetches the catalog categories.
func (c *Client) ListCategories(ctx context.Context) ([]types.Category, error) {
	var wires []wireCategory
	if _, err := c.do(ctx, "list_categories", http.MethodGet, "/categories", nil, nil, &wires); err != nil {
		return nil, err
	}
	categories := make([]types.Category, 0, len(wires))
	for _, w := range wires {
		categories = append(categories, w.toCategory())
	}
	return categories, nil
}

// GetCart fetches the current cart. A successful response with no data means
// the session has no cart yet and an empty cart is returned.
func (c *Client) GetCart(ctx context.Context) (*types.Cart, error) {
	var w wireCart
	env, err := c.do(ctx, "get_cart", http.MethodGet, "/cart", nil, nil, &w)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &types.Cart{Items: []types.CartItem{}}, nil
	}
	return w.toCart(), nil
}

// AddCartItem adds a product (optionally a specific variant) to the cart and
// returns the server's updated cart.
func (c *Client) AddCartItem(ctx context.Context, productID, variantID string, quantity int) (*types.Cart, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	body := map[string]any{
		"productId": productID,
		"quantity":  quantity,
	}
	if variantID != "" {
		body["variantId"] = variantID
	}
	var w wireCart
	if _, err := c.do(ctx, "add_cart_item", http.MethodPost, "/cart/items", nil, body, &w); err != nil {
		return nil, err
	}
	return w.toCart(), nil
}

// UpdateCartItem changes a cart line's quantity.
func (c *Client) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*types.Cart, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart item id is required")
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	body := map[string]any{"quantity": quantity}
	var w wireCart
	if _, err := c.do(ctx, "update_cart_item", http.MethodPut, "/cart/items/"+url.PathEscape(itemID), nil, body, &w); err != nil {
		return nil, err
	}
	return w.toCart(), nil
}

// RemoveCartItem deletes a cart line.
func (c *Client) RemoveCartItem(ctx context.Context, itemID string) (*types.Cart, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart item id is required")
	}
	var w wireCart
	if _, err := c.do(ctx, "remove_cart_item", http.MethodDelete, "/cart/items/"+url.PathEscape(itemID), nil, nil, &w); err != nil {
		return nil, err
	}
	return w.toCart(), nil
}

// ClearCart empties the cart server-side.
func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.do(ctx, "clear_cart", http.MethodDelete, "/cart", nil, nil, nil)
	return err
}

// MergeCart folds the guest session cart into the authenticated user's cart
// after sign-in.
func (c *Client) MergeCart(ctx context.Context, guestSessionID string) (*types.Cart, error) {
	if strings.TrimSpace(guestSessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest session id is required")
	}
	body := map[string]any{"sessionId": guestSessionID}
	var w wireCart
	if _, err := c.do(ctx, "merge_cart", http.MethodPost, "/cart/merge", nil, body, &w); err != nil {
		return nil, err
	}
	return w.toCart(), nil
}

// GetDefaultWishlist fetches the user's default wishlist, creating it
// server-side on first access.
func (c *Client) GetDefaultWishlist(ctx context.Context) (*types.Wishlist, error) {
	var w wireWishlist
	env, err := c.do(ctx, "get_default_wishlist", http.MethodGet, "/wishlists/default", nil, nil, &w)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &types.Wishlist{IsDefault: true, Items: []types.WishlistItem{}}, nil
	}
	return w.toWishlist(), nil
}

// AddWishlistItem saves a product to a wishlist and returns the item the
// server created.
func (c *Client) AddWishlistItem(ctx context.Context, wishlistID, productID string) (*types.WishlistItem, error) {
	if strings.TrimSpace(wishlistID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist id is required")
	}
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	body := map[string]any{"productId": productID}
	var w wireWishlistItem
	path := fmt.Sprintf("/wishlists/%s/items", url.PathEscape(wishlistID))
	if _, err := c.do(ctx, "add_wishlist_item", http.MethodPost, path, nil, body, &w); err != nil {
		return nil, err
	}
	item := types.WishlistItem{ID: string(w.ID), Product: w.Product.toProduct(), AddedAt: w.AddedAt}
	return &item, nil
}

// RemoveWishlistItem deletes a wishlist item.
func (c *Client) RemoveWishlistItem(ctx context.Context, wishlistID, itemID string) error {
	if strings.TrimSpace(wishlistID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "wishlist id is required")
	}
	if strings.TrimSpace(itemID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "wishlist item id is required")
	}
	path := fmt.Sprintf("/wishlists/%s/items/%s", url.PathEscape(wishlistID), url.PathEscape(itemID))
	_, err := c.do(ctx, "remove_wishlist_item", http.MethodDelete, path, nil, nil, nil)
	return err
}

// ClearWishlist removes every item from a wishlist.
func (c *Client) ClearWishlist(ctx context.Context, wishlistID string) error {
	if strings.TrimSpace(wishlistID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "wishlist id is required")
	}
	path := fmt.Sprintf("/wishlists/%s/items", url.PathEscape(wishlistID))
	_, err := c.do(ctx, "clear_wishlist", http.MethodDelete, path, nil, nil, nil)
	return err
}

// ListAddresses fetches the user's saved addresses.
func (c *Client) ListAddresses(ctx context.Context) ([]types.Address, error) {
	var wires []wireAddress
	if _, err := c.do(ctx, "list_addresses", http.MethodGet, "/addresses", nil, nil, &wires); err != nil {
		return nil, err
	}
	addresses := make([]types.Address, 0, len(wires))
	for _, w := range wires {
		addresses = append(addresses, w.toAddress())
	}
	return addresses, nil
}

// GetAddress fetches one saved address.
func (c *Client) GetAddress(ctx context.Context, addressID string) (*types.Address, error) {
	if strings.TrimSpace(addressID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	var w wireAddress
	if _, err := c.do(ctx, "get_address", http.MethodGet, "/addresses/"+url.PathEscape(addressID), nil, nil, &w); err != nil {
		return nil, err
	}
	address := w.toAddress()
	return &address, nil
}

// AddressInput is the payload for creating or updating an address.
type AddressInput struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	ZipCode      string `json:"zipCode"`
	IsDefault    bool   `json:"isDefault"`
	AddressType  string `json:"addressType,omitempty"`
}

// CreateAddress saves a new address.
func (c *Client) CreateAddress(ctx context.Context, input AddressInput) (*types.Address, error) {
	var w wireAddress
	if _, err := c.do(ctx, "create_address", http.MethodPost, "/addresses", nil, input, &w); err != nil {
		return nil, err
	}
	address := w.toAddress()
	return &address, nil
}

// UpdateAddress replaces an existing address.
func (c *Client) UpdateAddress(ctx context.Context, addressID string, input AddressInput) (*types.Address, error) {
	if strings.TrimSpace(addressID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	var w wireAddress
	if _, err := c.do(ctx, "update_address", http.MethodPut, "/addresses/"+url.PathEscape(addressID), nil, input, &w); err != nil {
		return nil, err
	}
	address := w.toAddress()
	return &address, nil
}

// DeleteAddress removes a saved address.
func (c *Client) DeleteAddress(ctx context.Context, addressID string) error {
	if strings.TrimSpace(addressID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	_, err := c.do(ctx, "delete_address", http.MethodDelete, "/addresses/"+url.PathEscape(addressID), nil, nil, nil)
	return err
}

// SetDefaultAddress marks one address as the shipping default.
func (c *Client) SetDefaultAddress(ctx context.Context, addressID string) (*types.Address, error) {
	if strings.TrimSpace(addressID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	var w wireAddress
	path := fmt.Sprintf("/addresses/%s/default", url.PathEscape(addressID))
	if _, err := c.do(ctx, "set_default_address", http.MethodPut, path, nil, nil, &w); err != nil {
		return nil, err
	}
	address := w.toAddress()
	return &address, nil
}

// OrderList carries one page of orders with the envelope paging block.
type OrderList struct {
	Items      []types.Order
	Pagination *Pagination
}

// ListOrders fetches a page of the user's orders.
func (c *Client) ListOrders(ctx context.Context, page, limit int) (*OrderList, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", formatInt(page))
	}
	if limit > 0 {
		query.Set("limit", formatInt(limit))
	}
	var wires []wireOrder
	env, err := c.do(ctx, "list_orders", http.MethodGet, "/orders", query, nil, &wires)
	if err != nil {
		return nil, err
	}
	items := make([]types.Order, 0, len(wires))
	for _, w := range wires {
		items = append(items, *w.toOrder())
	}
	return &OrderList{Items: items, Pagination: env.Pagination}, nil
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*types.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	var w wireOrder
	if _, err := c.do(ctx, "get_order", http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, nil, &w); err != nil {
		return nil, err
	}
	return w.toOrder(), nil
}

// OrderInput is the payload for placing an order from the current cart.
type OrderInput struct {
	AddressID     string `json:"addressId"`
	PaymentMethod string `json:"paymentMethod"`
	CouponCode    string `json:"couponCode,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// CreateOrder places an order from the current cart against a saved address.
func (c *Client) CreateOrder(ctx context.Context, input OrderInput) (*types.Order, error) {
	if strings.TrimSpace(input.AddressID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address id is required")
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	var w wireOrder
	if _, err := c.do(ctx, "create_order", http.MethodPost, "/orders", nil, input, &w); err != nil {
		return nil, err
	}
	return w.toOrder(), nil
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, orderID, reason string) (*types.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	body := map[string]any{}
	if reason != "" {
		body["reason"] = reason
	}
	var w wireOrder
	path := fmt.Sprintf("/orders/%s/cancel", url.PathEscape(orderID))
	if _, err := c.do(ctx, "cancel_order", http.MethodPut, path, nil, body, &w); err != nil {
		return nil, err
	}
	return w.toOrder(), nil
}

// ValidateCoupon asks the server whether a coupon applies to an order amount.
func (c *Client) ValidateCoupon(ctx context.Context, code string, orderAmount decimal.Decimal) (*types.CouponValidation, error) {
	if strings.TrimSpace(code) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	body := map[string]any{
		"code":        code,
		"orderAmount": orderAmount,
	}
	var w wireCouponValidation
	if _, err := c.do(ctx, "validate_coupon", http.MethodPost, "/coupons/validate", nil, body, &w); err != nil {
		return nil, err
	}
	return w.toValidation(), nil
}

// ListReviews fetches the reviews of a product.
func (c *Client) ListReviews(ctx context.Context, productID string) ([]types.Review, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var wires []wireReview
	path := fmt.Sprintf("/products/%s/reviews", url.PathEscape(productID))
	if _, err := c.do(ctx, "list_reviews", http.MethodGet, path, nil, nil, &wires); err != nil {
		return nil, err
	}
	reviews := make([]types.Review, 0, len(wires))
	for _, w := range wires {
		reviews = append(reviews, w.toReview())
	}
	return reviews, nil
}

// ReviewInput is the payload for posting a product review.
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// CreateReview posts a review for a product.
func (c *Client) CreateReview(ctx context.Context, productID string, input ReviewInput) (*types.Review, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	var w wireReview
	path := fmt.Sprintf("/products/%s/reviews", url.PathEscape(productID))
	if _, err := c.do(ctx, "create_review", http.MethodPost, path, nil, input, &w); err != nil {
		return nil, err
	}
	review := w.toReview()
	return &review, nil
}

// DeleteReview removes the user's review.
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	if strings.TrimSpace(reviewID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	_, err := c.do(ctx, "delete_review", http.MethodDelete, "/reviews/"+url.PathEscape(reviewID), nil, nil, nil)
	return err
}
