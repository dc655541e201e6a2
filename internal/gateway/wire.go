package gateway

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/electrofy/storefront-client/pkg/types"
	"github.com/shopspring/decimal"
)

// wireID tolerates the API's mixed identifier encoding: some resources carry
// string ids, seeded ones carry numbers.
type wireID string

func (w *wireID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*w = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*w = wireID(n.String())
	return nil
}

// wireCategoryRef is either a populated category object or a bare name.
type wireCategoryRef struct {
	Name string
}

func (w *wireCategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		w.Name = ""
		return nil
	}
	if data[0] == '{' {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		w.Name = obj.Name
		return nil
	}
	return json.Unmarshal(data, &w.Name)
}

type wireProduct struct {
	ID            wireID           `json:"_id"`
	AltID         wireID           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	BasePrice     *decimal.Decimal `json:"basePrice"`
	Price         *decimal.Decimal `json:"price"`
	Images        []string         `json:"images"`
	ImageURL      string           `json:"imageUrl"`
	AverageRating float64          `json:"averageRating"`
	RatingCount   int              `json:"ratingCount"`
	TotalStock    int              `json:"totalStock"`
	Brand         string           `json:"brand"`
	Category      wireCategoryRef  `json:"category"`
	Variants      []wireVariant    `json:"variants"`
}

type wireVariant struct {
	ID             wireID            `json:"_id"`
	AltID          wireID            `json:"id"`
	SKU            string            `json:"sku"`
	Name           string            `json:"name"`
	Attributes     map[string]string `json:"attributes"`
	Price          decimal.Decimal   `json:"price"`
	CompareAtPrice *decimal.Decimal  `json:"compareAtPrice"`
	Image          string            `json:"image"`
	IsDefault      bool              `json:"isDefault"`
	IsActive       bool              `json:"isActive"`
}

func firstID(primary, fallback wireID) string {
	if primary != "" {
		return string(primary)
	}
	return string(fallback)
}

func (w wireProduct) toProduct() types.Product {
	price := decimal.Zero
	switch {
	case w.BasePrice != nil:
		price = *w.BasePrice
	case w.Price != nil:
		price = *w.Price
	}

	imageURL := w.ImageURL
	if imageURL == "" && len(w.Images) > 0 {
		imageURL = w.Images[0]
	}

	variants := make([]types.ProductVariant, 0, len(w.Variants))
	for _, v := range w.Variants {
		variants = append(variants, v.toVariant())
	}
	if len(variants) == 0 {
		variants = nil
	}

	return types.Product{
		ID:           firstID(w.ID, w.AltID),
		Name:         w.Name,
		Description:  w.Description,
		Price:        price,
		ImageURL:     imageURL,
		Images:       w.Images,
		IsFavorite:   false, // set by the wishlist, never by the API
		Rating:       w.AverageRating,
		RatingsCount: w.RatingCount,
		InStock:      w.TotalStock > 0,
		Category:     w.Category.Name,
		Brand:        w.Brand,
		Variants:     variants,
	}
}

func (w wireVariant) toVariant() types.ProductVariant {
	return types.ProductVariant{
		ID:             firstID(w.ID, w.AltID),
		SKU:            w.SKU,
		Name:           w.Name,
		Attributes:     w.Attributes,
		Price:          w.Price,
		CompareAtPrice: w.CompareAtPrice,
		Image:          w.Image,
		IsDefault:      w.IsDefault,
		IsActive:       w.IsActive,
	}
}

type wireCartItem struct {
	ID       wireID          `json:"_id"`
	Product  wireProduct     `json:"product"`
	Variant  *wireVariant    `json:"variant"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type wireCart struct {
	ID        wireID         `json:"_id"`
	Items     []wireCartItem `json:"items"`
	User      wireID         `json:"user"`
	SessionID string         `json:"sessionId"`
}

func (w wireCart) toCart() *types.Cart {
	items := make([]types.CartItem, 0, len(w.Items))
	for _, item := range w.Items {
		variantID := ""
		if item.Variant != nil {
			variantID = firstID(item.Variant.ID, item.Variant.AltID)
		}
		items = append(items, types.CartItem{
			ID:        string(item.ID),
			Product:   item.Product.toProduct(),
			VariantID: variantID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return &types.Cart{
		ID:        string(w.ID),
		Items:     items,
		UserID:    string(w.User),
		SessionID: w.SessionID,
	}
}

type wireWishlistItem struct {
	ID      wireID      `json:"_id"`
	Product wireProduct `json:"product"`
	AddedAt time.Time   `json:"addedAt"`
}

type wireWishlist struct {
	ID        wireID             `json:"_id"`
	Name      string             `json:"name"`
	Items     []wireWishlistItem `json:"items"`
	IsDefault bool               `json:"isDefault"`
}

func (w wireWishlist) toWishlist() *types.Wishlist {
	items := make([]types.WishlistItem, 0, len(w.Items))
	for _, item := range w.Items {
		items = append(items, types.WishlistItem{
			ID:      string(item.ID),
			Product: item.Product.toProduct(),
			AddedAt: item.AddedAt,
		})
	}
	return &types.Wishlist{
		ID:        string(w.ID),
		Name:      w.Name,
		Items:     items,
		IsDefault: w.IsDefault,
	}
}

type wireCategory struct {
	ID          wireID `json:"_id"`
	AltID       wireID `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    bool   `json:"isActive"`
}

func (w wireCategory) toCategory() types.Category {
	return types.Category{
		ID:          firstID(w.ID, w.AltID),
		Name:        w.Name,
		Slug:        w.Slug,
		Description: w.Description,
		Image:       w.Image,
		IsActive:    w.IsActive,
	}
}

type wireAddress struct {
	ID           wireID `json:"_id"`
	AltID        wireID `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	ZipCode      string `json:"zipCode"`
	IsDefault    bool   `json:"isDefault"`
	AddressType  string `json:"addressType"`
}

func (w wireAddress) toAddress() types.Address {
	return types.Address{
		ID:           firstID(w.ID, w.AltID),
		FirstName:    w.FirstName,
		LastName:     w.LastName,
		Phone:        w.Phone,
		AddressLine1: w.AddressLine1,
		AddressLine2: w.AddressLine2,
		City:         w.City,
		State:        w.State,
		Country:      w.Country,
		ZipCode:      w.ZipCode,
		IsDefault:    w.IsDefault,
		AddressType:  types.AddressType(w.AddressType),
	}
}

type wireOrderItem struct {
	ID                wireID `json:"_id"`
	Product           struct {
		ID    wireID   `json:"_id"`
		AltID wireID   `json:"id"`
		Name  string   `json:"name"`
		Imgs  []string `json:"images"`
	} `json:"product"`
	ProductName       string            `json:"productName"`
	VariantAttributes map[string]string `json:"variantAttributes"`
	SKU               string            `json:"sku"`
	Quantity          int               `json:"quantity"`
	UnitPrice         decimal.Decimal   `json:"unitPrice"`
	TotalPrice        decimal.Decimal   `json:"totalPrice"`
	Image             string            `json:"image"`
}

type wireOrder struct {
	ID              wireID          `json:"_id"`
	AltID           wireID          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Items           []wireOrderItem `json:"items"`
	ShippingAddress wireAddress     `json:"shippingAddress"`
	Status          string          `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	Currency        string          `json:"currency"`
	TrackingNumber  string          `json:"trackingNumber"`
	Notes           string          `json:"notes"`
	CancelledReason string          `json:"cancelledReason"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (w wireOrder) toOrder() *types.Order {
	items := make([]types.OrderItem, 0, len(w.Items))
	for _, item := range w.Items {
		name := item.ProductName
		if name == "" {
			name = item.Product.Name
		}
		image := item.Image
		if image == "" && len(item.Product.Imgs) > 0 {
			image = item.Product.Imgs[0]
		}
		items = append(items, types.OrderItem{
			ID:                string(item.ID),
			ProductID:         firstID(item.Product.ID, item.Product.AltID),
			ProductName:       name,
			VariantAttributes: item.VariantAttributes,
			SKU:               item.SKU,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			TotalPrice:        item.TotalPrice,
			Image:             image,
		})
	}
	return &types.Order{
		ID:              firstID(w.ID, w.AltID),
		OrderNumber:     w.OrderNumber,
		Items:           items,
		ShippingAddress: w.ShippingAddress.toAddress(),
		Status:          types.OrderStatus(w.Status),
		Subtotal:        w.Subtotal,
		Tax:             w.Tax,
		ShippingCost:    w.ShippingCost,
		Discount:        w.Discount,
		Total:           w.Total,
		Currency:        w.Currency,
		TrackingNumber:  w.TrackingNumber,
		Notes:           w.Notes,
		CancelledReason: w.CancelledReason,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

type wireCoupon struct {
	ID            wireID           `json:"_id"`
	AltID         wireID           `json:"id"`
	Code          string           `json:"code"`
	Description   string           `json:"description"`
	DiscountType  string           `json:"discountType"`
	DiscountValue decimal.Decimal  `json:"discountValue"`
	MinOrderValue *decimal.Decimal `json:"minOrderValue"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount"`
	ValidFrom     time.Time        `json:"validFrom"`
	ValidUntil    time.Time        `json:"validUntil"`
	IsActive      bool             `json:"isActive"`
}

func (w wireCoupon) toCoupon() *types.Coupon {
	return &types.Coupon{
		ID:            firstID(w.ID, w.AltID),
		Code:          w.Code,
		Description:   w.Description,
		DiscountType:  types.DiscountType(w.DiscountType),
		DiscountValue: w.DiscountValue,
		MinOrderValue: w.MinOrderValue,
		MaxDiscount:   w.MaxDiscount,
		ValidFrom:     w.ValidFrom,
		ValidUntil:    w.ValidUntil,
		IsActive:      w.IsActive,
	}
}

type wireCouponValidation struct {
	Valid    bool             `json:"valid"`
	Coupon   *wireCoupon      `json:"coupon"`
	Discount *decimal.Decimal `json:"discount"`
}

func (w wireCouponValidation) toValidation() *types.CouponValidation {
	result := &types.CouponValidation{Valid: w.Valid, Discount: decimal.Zero}
	if w.Discount != nil {
		result.Discount = *w.Discount
	}
	if w.Coupon != nil {
		result.Coupon = w.Coupon.toCoupon()
	}
	return result
}

type wireReview struct {
	ID        wireID `json:"_id"`
	AltID     wireID `json:"id"`
	Product   wireID `json:"product"`
	User      struct {
		Name string `json:"name"`
	} `json:"user"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func (w wireReview) toReview() types.Review {
	return types.Review{
		ID:        firstID(w.ID, w.AltID),
		ProductID: string(w.Product),
		UserName:  w.User.Name,
		Rating:    w.Rating,
		Title:     w.Title,
		Comment:   w.Comment,
		CreatedAt: w.CreatedAt,
	}
}

// formatAmount renders a decimal for query parameters.
func formatAmount(d decimal.Decimal) string {
	return d.String()
}

// formatInt renders an int for query parameters.
func formatInt(v int) string {
	return strconv.Itoa(v)
}
